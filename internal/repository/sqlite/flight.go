package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/garnizeh/flightlog/pkg/models"
)

const flightColumns = `id, pilot_id, aircraft_id, number, launch_site_id, launch_date, launch_time,
	landing_site_id, landing_time, max_altitude, track_distance_km, xcontest_tracktype,
	xcontest_distance_km, xcontest_url, comments, video_url, created`

const insertFlight = `INSERT INTO flights (pilot_id, aircraft_id, number, launch_site_id, launch_date, launch_time,
	landing_site_id, landing_time, max_altitude, track_distance_km, xcontest_tracktype,
	xcontest_distance_km, xcontest_url, comments, video_url, created)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFlight(s rowScanner) (*models.Flight, error) {
	var (
		f             models.Flight
		aircraftID    sql.NullInt64
		number        sql.NullInt64
		launchTime    sql.NullString
		landingSiteID sql.NullInt64
		landingTime   sql.NullString
		maxAltitude   sql.NullInt64
		trackDistance sql.NullInt64
		trackType     sql.NullString
		xcDistance    sql.NullFloat64
		xcURL         sql.NullString
		videoURL      sql.NullString
	)
	if err := s.Scan(&f.ID, &f.PilotID, &aircraftID, &number, &f.LaunchSiteID, &f.LaunchDate, &launchTime,
		&landingSiteID, &landingTime, &maxAltitude, &trackDistance, &trackType,
		&xcDistance, &xcURL, &f.Comments, &videoURL, &f.Created); err != nil {
		return nil, err
	}

	f.AircraftID = int64Ptr(aircraftID)
	f.Number = intPtr(number)
	f.LaunchTime = stringPtr(launchTime)
	f.LandingSiteID = int64Ptr(landingSiteID)
	f.LandingTime = stringPtr(landingTime)
	f.MaxAltitude = intPtr(maxAltitude)
	f.TrackDistanceKm = intPtr(trackDistance)
	if trackType.Valid {
		tt := models.TrackType(trackType.String)
		f.XContestTrackType = &tt
	}
	if xcDistance.Valid {
		v := xcDistance.Float64
		f.XContestDistanceKm = &v
	}
	f.XContestURL = stringPtr(xcURL)
	f.VideoURL = stringPtr(videoURL)

	return &f, nil
}

func flightArgs(f *models.Flight) []any {
	var trackType any
	if f.XContestTrackType != nil {
		trackType = string(*f.XContestTrackType)
	}
	return []any{
		f.PilotID, f.AircraftID, f.Number, f.LaunchSiteID, f.LaunchDate, f.LaunchTime,
		f.LandingSiteID, f.LandingTime, f.MaxAltitude, f.TrackDistanceKm, trackType,
		f.XContestDistanceKm, f.XContestURL, f.Comments, f.VideoURL,
	}
}

func (r *SQLiteRepo) CreateFlight(ctx context.Context, f *models.Flight) (int64, error) {
	if f == nil {
		return 0, fmt.Errorf("flight is nil")
	}

	created := now()
	res, err := r.conn.Exec(ctx, insertFlight, append(flightArgs(f), created)...)
	if err != nil {
		return 0, r.translate("create_flight", err)
	}
	f.Created = created

	return res.LastInsertId()
}

// CreateFlights inserts all flights in one transaction. Either every flight is
// stored or none is.
func (r *SQLiteRepo) CreateFlights(ctx context.Context, fs []models.Flight) ([]int64, error) {
	tx, err := r.conn.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin import: %w", err)
	}

	created := now()
	ids := make([]int64, 0, len(fs))
	for i := range fs {
		res, err := tx.ExecContext(ctx, insertFlight, append(flightArgs(&fs[i]), created)...)
		if err != nil {
			_ = tx.Rollback()
			return nil, fmt.Errorf("insert flight %d: %w", i+1, r.translate("create_flights", err))
		}
		id, err := res.LastInsertId()
		if err != nil {
			_ = tx.Rollback()
			return nil, err
		}
		ids = append(ids, id)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit import: %w", err)
	}

	return ids, nil
}

func (r *SQLiteRepo) GetFlight(ctx context.Context, id int64) (*models.Flight, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+flightColumns+` FROM flights WHERE id = ?`, id)
	f, err := scanFlight(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, r.translate("get_flight", err)
	}

	return f, nil
}

// ListFlightsByPilot returns the pilot's flights, newest first.
func (r *SQLiteRepo) ListFlightsByPilot(ctx context.Context, pilotID int64, limit, offset int) ([]models.Flight, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.conn.QueryRows(ctx, `SELECT `+flightColumns+` FROM flights WHERE pilot_id = ?
		ORDER BY launch_date DESC, launch_time DESC, id DESC LIMIT ? OFFSET ?`, pilotID, limit, offset)
	if err != nil {
		return nil, r.translate("list_flights", err)
	}
	defer rows.Close()

	var out []models.Flight
	for rows.Next() {
		f, err := scanFlight(rows)
		if err != nil {
			return nil, err
		}

		out = append(out, *f)
	}

	return out, rows.Err()
}

func (r *SQLiteRepo) CountFlightsByPilot(ctx context.Context, pilotID int64) (int64, error) {
	row := r.conn.QueryRow(ctx, `SELECT COUNT(*) FROM flights WHERE pilot_id = ?`, pilotID)
	var cnt int64
	if err := row.Scan(&cnt); err != nil {
		return 0, r.translate("count_flights", err)
	}
	return cnt, nil
}

// LatestFlightNumber returns the highest flight number the pilot used, or nil
// when none of their flights carries a number.
func (r *SQLiteRepo) LatestFlightNumber(ctx context.Context, pilotID int64) (*int, error) {
	row := r.conn.QueryRow(ctx, `SELECT MAX(number) FROM flights WHERE pilot_id = ?`, pilotID)
	var n sql.NullInt64
	if err := row.Scan(&n); err != nil {
		return nil, r.translate("latest_flight_number", err)
	}
	return intPtr(n), nil
}

func (r *SQLiteRepo) UpdateFlight(ctx context.Context, f *models.Flight) error {
	if f == nil {
		return fmt.Errorf("flight is nil")
	}

	_, err := r.conn.Exec(ctx, `UPDATE flights SET pilot_id = ?, aircraft_id = ?, number = ?, launch_site_id = ?,
		launch_date = ?, launch_time = ?, landing_site_id = ?, landing_time = ?, max_altitude = ?,
		track_distance_km = ?, xcontest_tracktype = ?, xcontest_distance_km = ?, xcontest_url = ?,
		comments = ?, video_url = ? WHERE id = ?`, append(flightArgs(f), f.ID)...)
	return r.translate("update_flight", err)
}

func (r *SQLiteRepo) DeleteFlight(ctx context.Context, id int64) error {
	_, err := r.conn.Exec(ctx, `DELETE FROM flights WHERE id = ?`, id)
	return r.translate("delete_flight", err)
}

func int64Ptr(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	n := v.Int64
	return &n
}

func intPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}

func stringPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}
