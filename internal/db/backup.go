package db

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// BackupPath is where backups go when no explicit destination is given.
func BackupPath(databasePath string) string {
	return databasePath + ".bak"
}

// Backup writes a consistent copy of the open database to dst, replacing any
// file already there. VACUUM INTO reads through SQLite itself, so a running
// server does not have to stop.
func Backup(ctx context.Context, d *DB, dst string) error {
	if err := os.Remove(dst); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove old backup: %w", err)
	}
	if _, err := d.Exec(ctx, `VACUUM INTO ?`, dst); err != nil {
		return fmt.Errorf("backup to %s: %w", dst, err)
	}

	d.logger.Info("database backed up", slog.String("path", dst))
	return nil
}

// Restore replaces the database file at dst with the backup at src. The backup
// must pass SQLite's integrity check and carry a migrated schema; dst is
// replaced atomically so a failed restore leaves it untouched.
func Restore(ctx context.Context, src, dst string, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	if err := checkBackup(ctx, src, logger); err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open backup: %w", err)
	}
	defer in.Close()

	tmp, err := os.CreateTemp(filepath.Dir(dst), filepath.Base(dst)+".restore-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, in); err != nil {
		tmp.Close()
		return fmt.Errorf("copy backup: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync restored file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close restored file: %w", err)
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		return fmt.Errorf("replace database: %w", err)
	}

	logger.Info("database restored", slog.String("from", src), slog.String("to", dst))
	return nil
}

func checkBackup(ctx context.Context, src string, logger *slog.Logger) error {
	if _, err := os.Stat(src); err != nil {
		return fmt.Errorf("backup not found: %w", err)
	}

	d, err := New(ctx, "file:"+src+"?mode=ro", logger)
	if err != nil {
		return err
	}
	defer d.Close()

	var result string
	if err := d.QueryRow(ctx, `PRAGMA integrity_check`).Scan(&result); err != nil {
		return fmt.Errorf("check backup %s: %w", src, err)
	}
	if result != "ok" {
		return fmt.Errorf("backup %s failed integrity check: %s", src, result)
	}

	var migrations int
	if err := d.QueryRow(ctx, `SELECT COUNT(1) FROM schema_migrations`).Scan(&migrations); err != nil {
		return fmt.Errorf("backup %s has no flightlog schema: %w", src, err)
	}
	if migrations == 0 {
		return fmt.Errorf("backup %s has no applied migrations", src)
	}
	return nil
}
