package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blockform-data/massing.report/internal/config"
	"github.com/blockform-data/massing.report/internal/mesh"
	"github.com/blockform-data/massing.report/internal/scene"
)

func TestRunPipelineWritesAllArtifacts(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg := config.Default()
	cfg.GridSize = 64 // keep the test fast; fidelity is irrelevant here
	cfg.DPI = 72

	res, err := runPipeline(scene.Dimensions{Width: 10, Depth: 8, Height: 6}, cfg, dir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, config.STLName), res.STLPath)
	assert.FileExists(t, res.STLPath)
	assert.FileExists(t, res.PNGPath)
	assert.FileExists(t, res.CSVPath)
}

func TestRunPipelineUnknownPaletteWritesNothing(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg := config.Default()
	cfg.GridSize = 64
	cfg.Palette = "viridis-but-wrong"

	_, err := runPipeline(scene.Dimensions{Width: 10, Depth: 8, Height: 6}, cfg, dir)
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrInvalid)
	assert.Equal(t, exitValidation, classifyExit(err))

	// Validation failures must abort before the first artifact is written.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRunPipelineCSVIdempotent(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.GridSize = 64
	cfg.DPI = 72
	dims := scene.Dimensions{Width: 10, Depth: 8, Height: 6}

	dirA := t.TempDir()
	dirB := t.TempDir()

	resA, err := runPipeline(dims, cfg, dirA)
	require.NoError(t, err)
	resB, err := runPipeline(dims, cfg, dirB)
	require.NoError(t, err)

	csvA, err := os.ReadFile(resA.CSVPath)
	require.NoError(t, err)
	csvB, err := os.ReadFile(resB.CSVPath)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(csvA, csvB))

	stlA, err := os.ReadFile(resA.STLPath)
	require.NoError(t, err)
	stlB, err := os.ReadFile(resB.STLPath)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(stlA, stlB))
}

func TestGridSizeOnlyAffectsImage(t *testing.T) {
	t.Parallel()

	dims := scene.Dimensions{Width: 12, Depth: 10, Height: 8}

	coarse := config.Default()
	coarse.GridSize = 64
	coarse.DPI = 72
	fine := coarse
	fine.GridSize = 128

	dirA := t.TempDir()
	dirB := t.TempDir()

	resA, err := runPipeline(dims, coarse, dirA)
	require.NoError(t, err)
	resB, err := runPipeline(dims, fine, dirB)
	require.NoError(t, err)

	csvA, err := os.ReadFile(resA.CSVPath)
	require.NoError(t, err)
	csvB, err := os.ReadFile(resB.CSVPath)
	require.NoError(t, err)
	assert.Equal(t, csvA, csvB, "CSV must not depend on grid size")

	stlA, err := os.ReadFile(resA.STLPath)
	require.NoError(t, err)
	stlB, err := os.ReadFile(resB.STLPath)
	require.NoError(t, err)
	assert.Equal(t, stlA, stlB, "STL must not depend on grid size")
}

func TestRunPipelineOptionalOutputs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg := config.Default()
	cfg.GridSize = 64
	cfg.DPI = 72
	dims := scene.Dimensions{Width: 10, Depth: 8, Height: 6}

	res, err := runPipeline(dims, cfg, dir)
	require.NoError(t, err)

	htmlOut := filepath.Join(dir, "topography.html")
	require.NoError(t, writeHTMLChart(res.Grid, htmlOut))
	assert.FileExists(t, htmlOut)

	dbOut := filepath.Join(dir, "runs.db")
	require.NoError(t, recordRun(dbOut, dims, cfg, res))
	assert.FileExists(t, dbOut)
}

func TestClassifyExit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"input", fmt.Errorf("wrap: %w", scene.ErrInput), exitInput},
		{"validation", fmt.Errorf("wrap: %w", scene.ErrValidation), exitValidation},
		{"config", fmt.Errorf("wrap: %w", config.ErrInvalid), exitValidation},
		{"geometry", fmt.Errorf("wrap: %w", mesh.ErrGeometry), exitGeometry},
		{"io", errors.New("disk full"), exitIO},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, classifyExit(tt.err))
		})
	}
}

func TestReadLine(t *testing.T) {
	t.Parallel()

	got, err := readLine(strings.NewReader("10 8 6\n"))
	require.NoError(t, err)
	assert.Equal(t, "10 8 6", got)

	_, err = readLine(strings.NewReader(""))
	assert.Error(t, err)
}
