package sqlite

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	sqlitedriver "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/garnizeh/flightlog/internal/db"
	"github.com/garnizeh/flightlog/internal/metrics"
	"github.com/garnizeh/flightlog/pkg/repository"
)

// SQLiteRepo implements repository interfaces using the internal DB wrapper.
type SQLiteRepo struct {
	conn   *db.DB
	logger *slog.Logger
}

// Ensure SQLiteRepo implements the public interfaces.
var _ repository.PilotRepo = (*SQLiteRepo)(nil)
var _ repository.AircraftRepo = (*SQLiteRepo)(nil)
var _ repository.LocationRepo = (*SQLiteRepo)(nil)
var _ repository.FlightRepo = (*SQLiteRepo)(nil)
var _ repository.StatsRepo = (*SQLiteRepo)(nil)

func New(conn *db.DB, logger *slog.Logger) *SQLiteRepo {
	if logger == nil {
		logger = slog.Default()
	}
	return &SQLiteRepo{conn: conn, logger: logger}
}

func now() int64 {
	return time.Now().UTC().UnixMilli()
}

// translate maps SQLite constraint failures onto the repository sentinels and
// records failed statements. The driver error stays wrapped.
func (r *SQLiteRepo) translate(op string, err error) error {
	if err == nil {
		return nil
	}
	metrics.RecordStoreError(op)

	var se *sqlitedriver.Error
	if !errors.As(err, &se) {
		return err
	}

	switch se.Code() {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return fmt.Errorf("%w: %w", repository.ErrUniqueViolation, err)
	case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
		return fmt.Errorf("%w: %w", repository.ErrReferenceViolation, err)
	}

	// primary result code only, e.g. when extended codes are off
	if se.Code()&0xff == sqlite3.SQLITE_CONSTRAINT {
		msg := err.Error()
		switch {
		case strings.Contains(msg, "UNIQUE constraint failed"):
			return fmt.Errorf("%w: %w", repository.ErrUniqueViolation, err)
		case strings.Contains(msg, "FOREIGN KEY constraint failed"):
			return fmt.Errorf("%w: %w", repository.ErrReferenceViolation, err)
		}
	}

	r.logger.Debug("sqlite error", slog.String("op", op), slog.Int("code", se.Code()), slog.Any("err", err))
	return err
}
