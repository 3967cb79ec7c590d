package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/garnizeh/flightlog/pkg/models"
)

func (r *SQLiteRepo) CreateLocation(ctx context.Context, l *models.Location) (int64, error) {
	if l == nil {
		return 0, fmt.Errorf("location is nil")
	}

	res, err := r.conn.Exec(ctx, `INSERT INTO locations (name, country, altitude) VALUES (?, ?, ?)`, l.Name, l.Country, l.Altitude)
	if err != nil {
		return 0, r.translate("create_location", err)
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) GetLocation(ctx context.Context, id int64) (*models.Location, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, name, country, altitude FROM locations WHERE id = ?`, id)
	var l models.Location
	if err := row.Scan(&l.ID, &l.Name, &l.Country, &l.Altitude); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, r.translate("get_location", err)
	}

	return &l, nil
}

func (r *SQLiteRepo) ListLocations(ctx context.Context) ([]models.Location, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT id, name, country, altitude FROM locations ORDER BY name, id`)
	if err != nil {
		return nil, r.translate("list_locations", err)
	}
	defer rows.Close()

	var out []models.Location
	for rows.Next() {
		var l models.Location
		if err := rows.Scan(&l.ID, &l.Name, &l.Country, &l.Altitude); err != nil {
			return nil, err
		}
		out = append(out, l)
	}

	return out, rows.Err()
}

func (r *SQLiteRepo) UpdateLocation(ctx context.Context, l *models.Location) error {
	if l == nil {
		return fmt.Errorf("location is nil")
	}

	_, err := r.conn.Exec(ctx, `UPDATE locations SET name = ?, country = ?, altitude = ? WHERE id = ?`, l.Name, l.Country, l.Altitude, l.ID)
	return r.translate("update_location", err)
}

// DeleteLocation fails with repository.ErrReferenceViolation while any flight
// launches or lands there.
func (r *SQLiteRepo) DeleteLocation(ctx context.Context, id int64) error {
	_, err := r.conn.Exec(ctx, `DELETE FROM locations WHERE id = ?`, id)
	return r.translate("delete_location", err)
}
