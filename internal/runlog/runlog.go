// Package runlog records completed pipeline runs in a local sqlite database:
// the input triple, the configuration that shaped the scene, and the paths
// and digests of the artifacts written. Optional; the pipeline runs without
// it.
package runlog

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// DB wraps the run-history database handle.
type DB struct {
	*sql.DB
}

// Open opens (creating if needed) the run-history database at path and
// applies any pending schema migrations.
func Open(path string) (*DB, error) {
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open run log %s: %w", path, err)
	}

	db := &DB{sqlDB}
	if err := db.migrateUp(); err != nil {
		sqlDB.Close()
		return nil, err
	}
	return db, nil
}

func (db *DB) migrateUp() error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("load embedded migrations: %w", err)
	}

	driver, err := migratesqlite.WithInstance(db.DB, &migratesqlite.Config{})
	if err != nil {
		return fmt.Errorf("create sqlite migrate driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}
	// Closing m would close the underlying DB connection, so it is left to
	// be garbage collected.

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("run log migration failed: %w", err)
	}
	return nil
}

// Run is one recorded pipeline execution.
type Run struct {
	ID        string
	CreatedAt time.Time

	Width, Depth, Height float64
	GridSize             int
	Palette              string

	STLPath, PNGPath, CSVPath       string
	STLDigest, PNGDigest, CSVDigest string
}

// NewRunID returns a fresh run identifier.
func NewRunID() string {
	return uuid.NewString()
}

// Record inserts a completed run. CreatedAt defaults to now if unset.
func (db *DB) Record(r Run) error {
	if r.ID == "" {
		r.ID = NewRunID()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}

	_, err := db.Exec(`
		INSERT INTO runs (
			run_id, created_at,
			width, depth, height,
			grid_size, palette,
			stl_path, png_path, csv_path,
			stl_sha256, png_sha256, csv_sha256
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.CreatedAt.Format(time.RFC3339Nano),
		r.Width, r.Depth, r.Height,
		r.GridSize, r.Palette,
		r.STLPath, r.PNGPath, r.CSVPath,
		r.STLDigest, r.PNGDigest, r.CSVDigest,
	)
	if err != nil {
		return fmt.Errorf("record run %s: %w", r.ID, err)
	}
	return nil
}

// Recent returns up to limit runs, newest first.
func (db *DB) Recent(limit int) ([]Run, error) {
	rows, err := db.Query(`
		SELECT run_id, created_at,
			width, depth, height,
			grid_size, palette,
			stl_path, png_path, csv_path,
			stl_sha256, png_sha256, csv_sha256
		FROM runs
		ORDER BY created_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var createdAt string
		if err := rows.Scan(
			&r.ID, &createdAt,
			&r.Width, &r.Depth, &r.Height,
			&r.GridSize, &r.Palette,
			&r.STLPath, &r.PNGPath, &r.CSVPath,
			&r.STLDigest, &r.PNGDigest, &r.CSVDigest,
		); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if r.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
			return nil, fmt.Errorf("parse run timestamp %q: %w", createdAt, err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
