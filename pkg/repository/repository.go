package repository

import (
	"context"
	"errors"

	"github.com/garnizeh/flightlog/pkg/models"
)

// Repository interfaces for domain entities. These are the public contracts
// consumers should depend on; concrete implementations live under internal/.
//
// Getters return (nil, nil) when the row does not exist.

// Constraint violations reported by implementations. They are wrapped, so
// compare with errors.Is.
var (
	ErrUniqueViolation    = errors.New("unique constraint violation")
	ErrReferenceViolation = errors.New("referential integrity violation")
)

type PilotRepo interface {
	CreatePilot(ctx context.Context, p *models.Pilot) (int64, error)
	GetPilot(ctx context.Context, id int64) (*models.Pilot, error)
	ListPilots(ctx context.Context) ([]models.Pilot, error)
	UpdatePilot(ctx context.Context, p *models.Pilot) error
	DeletePilot(ctx context.Context, id int64) error
}

type AircraftRepo interface {
	CreateAircraft(ctx context.Context, a *models.Aircraft) (int64, error)
	GetAircraft(ctx context.Context, id int64) (*models.Aircraft, error)
	ListAircraftByPilot(ctx context.Context, pilotID int64) ([]models.Aircraft, error)
	UpdateAircraft(ctx context.Context, a *models.Aircraft) error
	DeleteAircraft(ctx context.Context, id int64) error
}

type LocationRepo interface {
	CreateLocation(ctx context.Context, l *models.Location) (int64, error)
	GetLocation(ctx context.Context, id int64) (*models.Location, error)
	ListLocations(ctx context.Context) ([]models.Location, error)
	UpdateLocation(ctx context.Context, l *models.Location) error
	DeleteLocation(ctx context.Context, id int64) error
}

type FlightRepo interface {
	CreateFlight(ctx context.Context, f *models.Flight) (int64, error)
	CreateFlights(ctx context.Context, fs []models.Flight) ([]int64, error)
	GetFlight(ctx context.Context, id int64) (*models.Flight, error)
	ListFlightsByPilot(ctx context.Context, pilotID int64, limit, offset int) ([]models.Flight, error)
	CountFlightsByPilot(ctx context.Context, pilotID int64) (int64, error)
	LatestFlightNumber(ctx context.Context, pilotID int64) (*int, error)
	UpdateFlight(ctx context.Context, f *models.Flight) error
	DeleteFlight(ctx context.Context, id int64) error
}

// StatsRepo is the read-only query contract of the statistics engine.
type StatsRepo interface {
	ListFlightFacts(ctx context.Context, pilotID int64) ([]models.FlightFacts, error)
	LocationsWithCount(ctx context.Context, pilotID int64, order models.LocationOrder, limit int) ([]models.LocationWithCount, error)
}
