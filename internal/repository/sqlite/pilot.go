package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/garnizeh/flightlog/pkg/models"
)

func (r *SQLiteRepo) CreatePilot(ctx context.Context, p *models.Pilot) (int64, error) {
	if p == nil {
		return 0, fmt.Errorf("pilot is nil")
	}

	created := now()
	res, err := r.conn.Exec(ctx, `INSERT INTO pilots (name, email, created) VALUES (?, ?, ?)`, p.Name, p.Email, created)
	if err != nil {
		return 0, r.translate("create_pilot", err)
	}
	p.Created = created

	return res.LastInsertId()
}

func (r *SQLiteRepo) GetPilot(ctx context.Context, id int64) (*models.Pilot, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, name, email, created FROM pilots WHERE id = ?`, id)
	var p models.Pilot
	if err := row.Scan(&p.ID, &p.Name, &p.Email, &p.Created); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, r.translate("get_pilot", err)
	}

	return &p, nil
}

func (r *SQLiteRepo) ListPilots(ctx context.Context) ([]models.Pilot, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT id, name, email, created FROM pilots ORDER BY name, id`)
	if err != nil {
		return nil, r.translate("list_pilots", err)
	}
	defer rows.Close()

	var out []models.Pilot
	for rows.Next() {
		var p models.Pilot
		if err := rows.Scan(&p.ID, &p.Name, &p.Email, &p.Created); err != nil {
			return nil, err
		}
		out = append(out, p)
	}

	return out, rows.Err()
}

func (r *SQLiteRepo) UpdatePilot(ctx context.Context, p *models.Pilot) error {
	if p == nil {
		return fmt.Errorf("pilot is nil")
	}

	_, err := r.conn.Exec(ctx, `UPDATE pilots SET name = ?, email = ? WHERE id = ?`, p.Name, p.Email, p.ID)
	return r.translate("update_pilot", err)
}

// DeletePilot removes the pilot together with their aircraft and flights.
func (r *SQLiteRepo) DeletePilot(ctx context.Context, id int64) error {
	_, err := r.conn.Exec(ctx, `DELETE FROM pilots WHERE id = ?`, id)
	return r.translate("delete_pilot", err)
}
