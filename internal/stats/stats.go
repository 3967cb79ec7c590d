// Package stats derives per-pilot statistics from flight records.
//
// The engine reads through repository.StatsRepo only and keeps no state
// between calls, so a Summary always reflects the records at query time.
package stats

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"time"

	"github.com/garnizeh/flightlog/internal/metrics"
	"github.com/garnizeh/flightlog/pkg/models"
	"github.com/garnizeh/flightlog/pkg/repository"
)

const secondsPerDay = 24 * 60 * 60

// Summary is the statistics view of one pilot.
type Summary struct {
	PilotID                    int64           `json:"pilot_id"`
	FlightCount                int             `json:"flight_count"`
	FlightCountPerYear         map[int]int     `json:"flight_count_per_year"`
	FlightDurationTotalHours   float64         `json:"flight_duration_total_hours"`
	FlightDurationPerYearHours map[int]float64 `json:"flight_duration_per_year_hours"`
	DistinctLaunchSiteCount    int             `json:"distinct_launch_site_count"`
	DistinctLandingSiteCount   int             `json:"distinct_landing_site_count"`
	CountriesVisited           []string        `json:"countries_visited"`
	ActiveYears                []int           `json:"active_years"`
}

type Engine struct {
	repo   repository.StatsRepo
	logger *slog.Logger
}

func NewEngine(repo repository.StatsRepo, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{repo: repo, logger: logger}
}

// Summarize computes the Summary of pilotID. The caller has already made sure
// the pilot exists; a pilot without flights yields an empty Summary.
func (e *Engine) Summarize(ctx context.Context, pilotID int64) (*Summary, error) {
	facts, err := e.repo.ListFlightFacts(ctx, pilotID)
	if err != nil {
		return nil, fmt.Errorf("summarize pilot %d: %w", pilotID, err)
	}

	s, err := Summarize(pilotID, facts)
	if err != nil {
		return nil, fmt.Errorf("summarize pilot %d: %w", pilotID, err)
	}

	metrics.RecordSummary(s.FlightCount)
	e.logger.Debug("summary computed",
		slog.Int64("pilot_id", pilotID),
		slog.Int("flights", s.FlightCount),
	)

	return s, nil
}

// Summarize aggregates facts into a Summary. It is the pure half of
// Engine.Summarize.
func Summarize(pilotID int64, facts []models.FlightFacts) (*Summary, error) {
	s := &Summary{
		PilotID:                    pilotID,
		FlightCount:                len(facts),
		FlightCountPerYear:         map[int]int{},
		FlightDurationPerYearHours: map[int]float64{},
		CountriesVisited:           []string{},
		ActiveYears:                []int{},
	}

	launchSites := map[int64]struct{}{}
	landingSites := map[int64]struct{}{}
	countries := map[string]struct{}{}
	secondsPerYear := map[int]int64{}
	var totalSeconds int64

	for _, f := range facts {
		date, err := time.Parse(models.DateLayout, f.LaunchDate)
		if err != nil {
			return nil, fmt.Errorf("flight %d: invalid launch date %q: %w", f.FlightID, f.LaunchDate, err)
		}
		year := date.Year()
		s.FlightCountPerYear[year]++

		launchSites[f.LaunchSiteID] = struct{}{}
		if f.LandingSiteID != nil {
			landingSites[*f.LandingSiteID] = struct{}{}
			if f.LandingCountry != nil && *f.LandingCountry != "" {
				countries[*f.LandingCountry] = struct{}{}
			}
		}

		if f.LaunchTime == nil || f.LandingTime == nil {
			continue
		}
		secs, err := ElapsedSeconds(*f.LaunchTime, *f.LandingTime)
		if err != nil {
			return nil, fmt.Errorf("flight %d: %w", f.FlightID, err)
		}
		secondsPerYear[year] += secs
		totalSeconds += secs
	}

	s.FlightDurationTotalHours = hours(totalSeconds)
	for year, secs := range secondsPerYear {
		s.FlightDurationPerYearHours[year] = hours(secs)
	}

	s.DistinctLaunchSiteCount = len(launchSites)
	s.DistinctLandingSiteCount = len(landingSites)

	for c := range countries {
		s.CountriesVisited = append(s.CountriesVisited, c)
	}
	slices.Sort(s.CountriesVisited)

	for year := range s.FlightCountPerYear {
		s.ActiveYears = append(s.ActiveYears, year)
	}
	slices.Sort(s.ActiveYears)

	return s, nil
}

// ElapsedSeconds is the time between launch and landing, both read as times of
// the same day. The difference is taken modulo one day: a landing time before
// the launch time counts as landing after midnight (22:00 -> 01:00 is 3h) and
// equal times are 0. Flights longer than a day cannot be represented.
func ElapsedSeconds(launch, landing string) (int64, error) {
	lt, err := time.Parse(models.TimeLayout, launch)
	if err != nil {
		return 0, fmt.Errorf("invalid launch time %q: %w", launch, err)
	}
	ld, err := time.Parse(models.TimeLayout, landing)
	if err != nil {
		return 0, fmt.Errorf("invalid landing time %q: %w", landing, err)
	}

	diff := int64(ld.Sub(lt) / time.Second)
	return ((diff % secondsPerDay) + secondsPerDay) % secondsPerDay, nil
}

// hours converts to hours with two decimals, ties to even.
func hours(seconds int64) float64 {
	return math.RoundToEven(float64(seconds)/3600*100) / 100
}
