package stats

import (
	"context"
	"errors"
	"fmt"

	"github.com/garnizeh/flightlog/pkg/models"
)

const (
	DefaultTopLocations = 10
	MaxTopLocations     = 100
)

var ErrUnknownOrder = errors.New("unknown location order")

// ParseOrder maps the query value onto a LocationOrder. Empty means launches.
func ParseOrder(s string) (models.LocationOrder, error) {
	switch models.LocationOrder(s) {
	case "", models.OrderLaunches:
		return models.OrderLaunches, nil
	case models.OrderLandings:
		return models.OrderLandings, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownOrder, s)
}

// TopLocations ranks the pilot's launch or landing sites by number of flights,
// most used first. limit is clamped to [1, MaxTopLocations]; zero or less
// selects DefaultTopLocations.
func (e *Engine) TopLocations(ctx context.Context, pilotID int64, order models.LocationOrder, limit int) ([]models.LocationWithCount, error) {
	if order != models.OrderLaunches && order != models.OrderLandings {
		return nil, fmt.Errorf("%w: %q", ErrUnknownOrder, order)
	}
	if limit <= 0 {
		limit = DefaultTopLocations
	}
	if limit > MaxTopLocations {
		limit = MaxTopLocations
	}

	out, err := e.repo.LocationsWithCount(ctx, pilotID, order, limit)
	if err != nil {
		return nil, fmt.Errorf("top %s of pilot %d: %w", order, pilotID, err)
	}
	if out == nil {
		out = []models.LocationWithCount{}
	}
	return out, nil
}
