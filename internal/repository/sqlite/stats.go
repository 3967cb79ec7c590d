package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/garnizeh/flightlog/pkg/models"
)

// ListFlightFacts returns one row per flight of the pilot with the fields the
// statistics engine needs, landing country resolved through the join.
func (r *SQLiteRepo) ListFlightFacts(ctx context.Context, pilotID int64) ([]models.FlightFacts, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT f.id, f.launch_date, f.launch_time, f.landing_time,
		f.launch_site_id, f.landing_site_id, l.country
		FROM flights f
		LEFT JOIN locations l ON l.id = f.landing_site_id
		WHERE f.pilot_id = ?
		ORDER BY f.launch_date, f.launch_time, f.id`, pilotID)
	if err != nil {
		return nil, r.translate("list_flight_facts", err)
	}
	defer rows.Close()

	var out []models.FlightFacts
	for rows.Next() {
		var (
			ff            models.FlightFacts
			launchTime    sql.NullString
			landingTime   sql.NullString
			landingSiteID sql.NullInt64
			country       sql.NullString
		)
		if err := rows.Scan(&ff.FlightID, &ff.LaunchDate, &launchTime, &landingTime,
			&ff.LaunchSiteID, &landingSiteID, &country); err != nil {
			return nil, err
		}
		ff.LaunchTime = stringPtr(launchTime)
		ff.LandingTime = stringPtr(landingTime)
		ff.LandingSiteID = int64Ptr(landingSiteID)
		ff.LandingCountry = stringPtr(country)
		out = append(out, ff)
	}

	return out, rows.Err()
}

// LocationsWithCount ranks the locations a pilot launched (or landed) at by
// number of flights. Unused locations are not returned.
func (r *SQLiteRepo) LocationsWithCount(ctx context.Context, pilotID int64, order models.LocationOrder, limit int) ([]models.LocationWithCount, error) {
	var column string
	switch order {
	case models.OrderLaunches:
		column = "launch_site_id"
	case models.OrderLandings:
		column = "landing_site_id"
	default:
		return nil, fmt.Errorf("unknown location order %q", order)
	}
	if limit <= 0 {
		limit = 10
	}

	rows, err := r.conn.QueryRows(ctx, `SELECT l.id, l.name, l.country, l.altitude, COUNT(f.id) AS uses
		FROM flights f
		JOIN locations l ON l.id = f.`+column+`
		WHERE f.pilot_id = ?
		GROUP BY l.id, l.name, l.country, l.altitude
		ORDER BY uses DESC, l.name ASC, l.id ASC
		LIMIT ?`, pilotID, limit)
	if err != nil {
		return nil, r.translate("locations_with_count", err)
	}
	defer rows.Close()

	var out []models.LocationWithCount
	for rows.Next() {
		var lc models.LocationWithCount
		if err := rows.Scan(&lc.ID, &lc.Name, &lc.Country, &lc.Altitude, &lc.Count); err != nil {
			return nil, err
		}
		out = append(out, lc)
	}

	return out, rows.Err()
}
