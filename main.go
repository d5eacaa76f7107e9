// massing-report builds a parametric massing scene (a gable-roofed house
// body plus a detached tall box) from three user dimensions and writes three
// artifacts: a binary STL of the compound solid, a top-down elevation heat
// map PNG, and a CSV of reference point positions and distances.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/blockform-data/massing.report/internal/config"
	"github.com/blockform-data/massing.report/internal/mesh"
	"github.com/blockform-data/massing.report/internal/scene"
)

// Exit codes, one per error class. All errors are terminal; nothing retries.
const (
	exitOK         = 0
	exitInput      = 2
	exitValidation = 3
	exitGeometry   = 4
	exitIO         = 5
)

var (
	dimsFlag    = flag.String("dims", "", "dimensions as \"width depth height\" (skips the stdin prompt)")
	outDir      = flag.String("out", ".", "output directory for the three artifacts")
	gridSize    = flag.Int("grid", 0, "projection grid size (cells per side, default from config)")
	paletteName = flag.String("palette", "", "heat map palette (default from config)")
	dpi         = flag.Int("dpi", 0, "PNG resolution in DPI (default from config)")
	configPath  = flag.String("config", "", "optional JSON config overlay")
	dbPath      = flag.String("db", "", "optional sqlite run-history database")
	htmlPath    = flag.String("html", "", "optional interactive HTML elevation chart")
)

func main() {
	flag.Parse()
	os.Exit(run(os.Stdin, os.Stdout))
}

func run(stdin io.Reader, stdout io.Writer) int {
	cfg, err := loadConfig()
	if err != nil {
		log.Printf("configuration error: %v", err)
		return exitValidation
	}

	line := *dimsFlag
	if line == "" {
		fmt.Fprint(stdout, "Enter house base dimensions (width depth height): ")
		line, err = readLine(stdin)
		if err != nil {
			log.Printf("failed to read input: %v", err)
			return exitInput
		}
	}

	dims, err := scene.Parse(line)
	if err != nil {
		log.Printf("%v", err)
		return classifyExit(err)
	}

	res, err := runPipeline(dims, cfg, *outDir)
	if err != nil {
		log.Printf("pipeline failed: %v", err)
		return classifyExit(err)
	}

	if *htmlPath != "" {
		if err := writeHTMLChart(res.Grid, *htmlPath); err != nil {
			log.Printf("failed to write HTML chart: %v", err)
			return exitIO
		}
		fmt.Fprintf(stdout, "Chart saved as: %s\n", *htmlPath)
	}

	if *dbPath != "" {
		if err := recordRun(*dbPath, dims, cfg, res); err != nil {
			log.Printf("failed to record run: %v", err)
			return exitIO
		}
	}

	fmt.Fprintf(stdout, "STL saved as: %s\n", res.STLPath)
	fmt.Fprintf(stdout, "Topography saved as: %s\n", res.PNGPath)
	fmt.Fprintf(stdout, "CSV saved as: %s\n", res.CSVPath)
	return exitOK
}

// loadConfig assembles the effective configuration: defaults, then the JSON
// overlay, then command-line overrides.
func loadConfig() (config.Config, error) {
	cfg := config.Default()

	if *configPath != "" {
		overlay, err := config.LoadOverlay(*configPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg.Apply(overlay)
	}

	if *gridSize != 0 {
		cfg.GridSize = *gridSize
	}
	if *paletteName != "" {
		cfg.Palette = *paletteName
	}
	if *dpi != 0 {
		cfg.DPI = *dpi
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func readLine(r io.Reader) (string, error) {
	scanner := bufio.NewScanner(r)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", err
		}
		return "", errors.New("no input")
	}
	return scanner.Text(), nil
}

// classifyExit maps an error to its exit code class.
func classifyExit(err error) int {
	switch {
	case errors.Is(err, scene.ErrInput):
		return exitInput
	case errors.Is(err, scene.ErrValidation), errors.Is(err, config.ErrInvalid):
		return exitValidation
	case errors.Is(err, mesh.ErrGeometry):
		return exitGeometry
	default:
		return exitIO
	}
}
