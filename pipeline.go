package main

import (
	"fmt"
	"io"
	"log"
	"path/filepath"

	"github.com/blockform-data/massing.report/internal/config"
	"github.com/blockform-data/massing.report/internal/fsutil"
	"github.com/blockform-data/massing.report/internal/heightmap"
	"github.com/blockform-data/massing.report/internal/mesh"
	"github.com/blockform-data/massing.report/internal/render"
	"github.com/blockform-data/massing.report/internal/report"
	"github.com/blockform-data/massing.report/internal/runlog"
	"github.com/blockform-data/massing.report/internal/scene"
)

// pipelineResult names the artifacts a successful run produced.
type pipelineResult struct {
	STLPath, PNGPath, CSVPath string

	Scene *scene.Scene
	Grid  *heightmap.Grid
}

// runPipeline executes the linear batch pipeline: derive dimensions, build
// the solids, export the mesh, render the projection, write the report.
// Each stage consumes only the immutable output of its predecessor; any
// failure aborts the run with nothing half-written.
func runPipeline(dims scene.Dimensions, cfg config.Config, outDir string) (*pipelineResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	derived := scene.Derive(dims, cfg.Ratios)
	s, err := scene.Build(derived)
	if err != nil {
		return nil, err
	}
	log.Printf("built scene: %d facets, volume %.3f", len(s.Compound.Triangles), s.Compound.Volume())

	stlPath := filepath.Join(outDir, config.STLName)
	if err := mesh.WriteSTL(s.Compound, stlPath); err != nil {
		return nil, err
	}

	grid, err := heightmap.Sample(s.Compound, cfg.GridSize)
	if err != nil {
		return nil, err
	}
	log.Printf("sampled elevation grid: %dx%d, max height %.3f, coverage %.1f%%",
		cfg.GridSize, cfg.GridSize, grid.MaxHeight(), grid.Coverage()*100)

	pngPath := filepath.Join(outDir, config.PNGName)
	if err := render.HeatMapPNG(grid, cfg.Palette, cfg.DPI, pngPath); err != nil {
		return nil, err
	}

	csvPath := filepath.Join(outDir, config.CSVName)
	rows := report.Build(s.Points)
	err = fsutil.WriteAtomic(csvPath, func(w io.Writer) error {
		return report.WriteCSV(w, rows)
	})
	if err != nil {
		return nil, err
	}

	return &pipelineResult{
		STLPath: stlPath,
		PNGPath: pngPath,
		CSVPath: csvPath,
		Scene:   s,
		Grid:    grid,
	}, nil
}

// writeHTMLChart writes the optional interactive elevation chart.
func writeHTMLChart(grid *heightmap.Grid, path string) error {
	return fsutil.WriteAtomic(path, func(w io.Writer) error {
		return report.WriteHTMLChart(grid, w)
	})
}

// recordRun appends the finished run to the optional run-history database.
func recordRun(dbPath string, dims scene.Dimensions, cfg config.Config, res *pipelineResult) error {
	db, err := runlog.Open(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	run := runlog.Run{
		Width:    dims.Width,
		Depth:    dims.Depth,
		Height:   dims.Height,
		GridSize: cfg.GridSize,
		Palette:  cfg.Palette,
		STLPath:  res.STLPath,
		PNGPath:  res.PNGPath,
		CSVPath:  res.CSVPath,
	}
	for path, dst := range map[string]*string{
		res.STLPath: &run.STLDigest,
		res.PNGPath: &run.PNGDigest,
		res.CSVPath: &run.CSVDigest,
	} {
		digest, err := fsutil.SHA256File(path)
		if err != nil {
			return fmt.Errorf("digest artifact: %w", err)
		}
		*dst = digest
	}

	return db.Record(run)
}
