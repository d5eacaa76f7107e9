package runlog

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestOpenAppliesMigrations(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)

	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM runs").Scan(&count)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestOpenIsIdempotent(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "runs.db")

	db, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	// Reopening an already-migrated database must not fail.
	db, err = Open(path)
	require.NoError(t, err)
	require.NoError(t, db.Close())
}

func TestRecordAndRecent(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)

	first := Run{
		ID:        NewRunID(),
		CreatedAt: time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC),
		Width:     10, Depth: 8, Height: 6,
		GridSize: 400, Palette: "kindlmann",
		STLPath: "out/house_and_box.stl", PNGPath: "out/topography.png", CSVPath: "out/positions_and_distances.csv",
		STLDigest: "aaa", PNGDigest: "bbb", CSVDigest: "ccc",
	}
	second := Run{
		ID:        NewRunID(),
		CreatedAt: time.Date(2026, 8, 2, 10, 0, 0, 0, time.UTC),
		Width:     12, Depth: 10, Height: 8,
		GridSize: 800, Palette: "heat",
	}

	require.NoError(t, db.Record(first))
	require.NoError(t, db.Record(second))

	runs, err := db.Recent(10)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	// Newest first.
	assert.Equal(t, second.ID, runs[0].ID)
	assert.Equal(t, first.ID, runs[1].ID)
	assert.Equal(t, first, runs[1])

	limited, err := db.Recent(1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, second.ID, limited[0].ID)
}

func TestRecordFillsDefaults(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)
	require.NoError(t, db.Record(Run{Width: 1, Depth: 1, Height: 1, GridSize: 400, Palette: "kindlmann"}))

	runs, err := db.Recent(1)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.NotEmpty(t, runs[0].ID)
	assert.False(t, runs[0].CreatedAt.IsZero())
}

func TestRecordRejectsDuplicateID(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)
	r := Run{ID: NewRunID(), Width: 1, Depth: 1, Height: 1}
	require.NoError(t, db.Record(r))
	assert.Error(t, db.Record(r))
}
