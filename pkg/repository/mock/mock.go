package mock

import (
	"context"
	"sort"

	"github.com/garnizeh/flightlog/pkg/models"
	"github.com/garnizeh/flightlog/pkg/repository"
)

var _ repository.PilotRepo = (*mockPilotRepo)(nil)
var _ repository.StatsRepo = (*mockStatsRepo)(nil)

// Test helpers and mocks
type Mocks struct {
	PilotRepo *mockPilotRepo
	StatsRepo *mockStatsRepo
}

func NewMocks() *Mocks {
	return &Mocks{
		PilotRepo: &mockPilotRepo{pilots: map[int64]models.Pilot{}},
		StatsRepo: &mockStatsRepo{Facts: map[int64][]models.FlightFacts{}},
	}
}

type mockPilotRepo struct {
	pilots    map[int64]models.Pilot
	nextID    int64
	CreateErr error
	GetErr    error
}

func (m *mockPilotRepo) CreatePilot(ctx context.Context, p *models.Pilot) (int64, error) {
	if m.CreateErr != nil {
		return 0, m.CreateErr
	}
	m.nextID++
	stored := *p
	stored.ID = m.nextID
	m.pilots[stored.ID] = stored
	return stored.ID, nil
}

func (m *mockPilotRepo) GetPilot(ctx context.Context, id int64) (*models.Pilot, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	if p, ok := m.pilots[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (m *mockPilotRepo) ListPilots(ctx context.Context) ([]models.Pilot, error) {
	out := make([]models.Pilot, 0, len(m.pilots))
	for _, p := range m.pilots {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *mockPilotRepo) UpdatePilot(ctx context.Context, p *models.Pilot) error {
	m.pilots[p.ID] = *p
	return nil
}

func (m *mockPilotRepo) DeletePilot(ctx context.Context, id int64) error {
	delete(m.pilots, id)
	return nil
}

// mockStatsRepo serves canned flight facts and rankings per pilot.
type mockStatsRepo struct {
	Facts     map[int64][]models.FlightFacts
	Ranking   []models.LocationWithCount
	Err       error
	LastOrder models.LocationOrder
	LastLimit int
}

func (m *mockStatsRepo) ListFlightFacts(ctx context.Context, pilotID int64) ([]models.FlightFacts, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Facts[pilotID], nil
}

func (m *mockStatsRepo) LocationsWithCount(ctx context.Context, pilotID int64, order models.LocationOrder, limit int) ([]models.LocationWithCount, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.LastOrder = order
	m.LastLimit = limit
	if limit < len(m.Ranking) {
		return m.Ranking[:limit], nil
	}
	return m.Ranking, nil
}
