package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/garnizeh/flightlog/pkg/models"
)

func (r *SQLiteRepo) CreateAircraft(ctx context.Context, a *models.Aircraft) (int64, error) {
	if a == nil {
		return 0, fmt.Errorf("aircraft is nil")
	}

	res, err := r.conn.Exec(ctx, `INSERT INTO aircraft (pilot_id, name, brand) VALUES (?, ?, ?)`, a.PilotID, a.Name, a.Brand)
	if err != nil {
		return 0, r.translate("create_aircraft", err)
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) GetAircraft(ctx context.Context, id int64) (*models.Aircraft, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, pilot_id, name, brand FROM aircraft WHERE id = ?`, id)
	var a models.Aircraft
	if err := row.Scan(&a.ID, &a.PilotID, &a.Name, &a.Brand); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, r.translate("get_aircraft", err)
	}

	return &a, nil
}

func (r *SQLiteRepo) ListAircraftByPilot(ctx context.Context, pilotID int64) ([]models.Aircraft, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT id, pilot_id, name, brand FROM aircraft WHERE pilot_id = ? ORDER BY brand, name, id`, pilotID)
	if err != nil {
		return nil, r.translate("list_aircraft", err)
	}
	defer rows.Close()

	var out []models.Aircraft
	for rows.Next() {
		var a models.Aircraft
		if err := rows.Scan(&a.ID, &a.PilotID, &a.Name, &a.Brand); err != nil {
			return nil, err
		}
		out = append(out, a)
	}

	return out, rows.Err()
}

func (r *SQLiteRepo) UpdateAircraft(ctx context.Context, a *models.Aircraft) error {
	if a == nil {
		return fmt.Errorf("aircraft is nil")
	}

	_, err := r.conn.Exec(ctx, `UPDATE aircraft SET pilot_id = ?, name = ?, brand = ? WHERE id = ?`, a.PilotID, a.Name, a.Brand, a.ID)
	return r.translate("update_aircraft", err)
}

// DeleteAircraft removes the aircraft; flights flown with it keep existing
// with an empty aircraft reference.
func (r *SQLiteRepo) DeleteAircraft(ctx context.Context, id int64) error {
	_, err := r.conn.Exec(ctx, `DELETE FROM aircraft WHERE id = ?`, id)
	return r.translate("delete_aircraft", err)
}
