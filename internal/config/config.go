// Package config defines the pipeline configuration: the fixed derivation
// ratios, projection grid size, palette, DPI, and artifact names. Defaults
// are compiled in; a JSON overlay file can override individual fields.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/blockform-data/massing.report/internal/render"
)

// ErrInvalid marks configurations rejected by Validate.
var ErrInvalid = errors.New("invalid configuration")

// Artifact names are fixed relative paths under the output directory.
const (
	STLName = "house_and_box.stl"
	PNGName = "topography.png"
	CSVName = "positions_and_distances.csv"
)

// Grid and DPI guard rails. Outside these ranges the run is rejected rather
// than clamped, so a typo never silently produces a useless image.
const (
	MinGridSize = 16
	MaxGridSize = 4096
	MinDPI      = 72
	MaxDPI      = 1200
)

// maxOverlayBytes caps the JSON overlay file size.
const maxOverlayBytes = 1 << 20

// Ratios holds the multipliers that map the user's (width, depth, height)
// triple onto every derived dimension. They are applied once, up front;
// derived values are never settable on their own.
type Ratios struct {
	RoofHeight   float64 `json:"roof_height"`   // x house height
	RoofDepth    float64 `json:"roof_depth"`    // x house depth
	RoofOverhang float64 `json:"roof_overhang"` // x house width, per side
	BoxSide      float64 `json:"box_side"`      // x house width
	BoxHeight    float64 `json:"box_height"`    // x house height
	BoxOffsetX   float64 `json:"box_offset_x"`  // x house width, box xmin
}

// Config is the full pipeline configuration passed into the dimension
// deriver and the projector.
type Config struct {
	Ratios   Ratios `json:"ratios"`
	GridSize int    `json:"grid_size"`
	Palette  string `json:"palette"`
	DPI      int    `json:"dpi"`
}

// Default returns the compiled-in configuration.
func Default() Config {
	return Config{
		Ratios: Ratios{
			RoofHeight:   0.5,
			RoofDepth:    1.5,
			RoofOverhang: 0.25,
			BoxSide:      0.25,
			BoxHeight:    2.0,
			BoxOffsetX:   2.0,
		},
		GridSize: 400,
		Palette:  "kindlmann",
		DPI:      300,
	}
}

// Overlay mirrors Config with pointer fields so a JSON file can override a
// subset and leave the rest at their defaults.
type Overlay struct {
	Ratios *struct {
		RoofHeight   *float64 `json:"roof_height,omitempty"`
		RoofDepth    *float64 `json:"roof_depth,omitempty"`
		RoofOverhang *float64 `json:"roof_overhang,omitempty"`
		BoxSide      *float64 `json:"box_side,omitempty"`
		BoxHeight    *float64 `json:"box_height,omitempty"`
		BoxOffsetX   *float64 `json:"box_offset_x,omitempty"`
	} `json:"ratios,omitempty"`
	GridSize *int    `json:"grid_size,omitempty"`
	Palette  *string `json:"palette,omitempty"`
	DPI      *int    `json:"dpi,omitempty"`
}

// LoadOverlay reads and decodes a JSON overlay file. The path must end in
// .json and the file must be under 1MB.
func LoadOverlay(path string) (*Overlay, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	info, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("stat config file: %w", err)
	}
	if info.Size() > maxOverlayBytes {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", info.Size(), maxOverlayBytes)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var o Overlay
	if err := json.Unmarshal(data, &o); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", cleanPath, err)
	}
	return &o, nil
}

// Apply copies the overlay's set fields onto c.
func (c *Config) Apply(o *Overlay) {
	if o == nil {
		return
	}
	if o.Ratios != nil {
		if o.Ratios.RoofHeight != nil {
			c.Ratios.RoofHeight = *o.Ratios.RoofHeight
		}
		if o.Ratios.RoofDepth != nil {
			c.Ratios.RoofDepth = *o.Ratios.RoofDepth
		}
		if o.Ratios.RoofOverhang != nil {
			c.Ratios.RoofOverhang = *o.Ratios.RoofOverhang
		}
		if o.Ratios.BoxSide != nil {
			c.Ratios.BoxSide = *o.Ratios.BoxSide
		}
		if o.Ratios.BoxHeight != nil {
			c.Ratios.BoxHeight = *o.Ratios.BoxHeight
		}
		if o.Ratios.BoxOffsetX != nil {
			c.Ratios.BoxOffsetX = *o.Ratios.BoxOffsetX
		}
	}
	if o.GridSize != nil {
		c.GridSize = *o.GridSize
	}
	if o.Palette != nil {
		c.Palette = *o.Palette
	}
	if o.DPI != nil {
		c.DPI = *o.DPI
	}
}

// Validate rejects configurations that could not produce a sane scene or
// image. It runs before any artifact is written, so a bad palette name or
// grid size never leaves a partial output directory behind. All failures
// wrap ErrInvalid.
func (c Config) Validate() error {
	r := c.Ratios
	for name, v := range map[string]float64{
		"roof_height":   r.RoofHeight,
		"roof_depth":    r.RoofDepth,
		"roof_overhang": r.RoofOverhang,
		"box_side":      r.BoxSide,
		"box_height":    r.BoxHeight,
		"box_offset_x":  r.BoxOffsetX,
	} {
		if v <= 0 {
			return fmt.Errorf("%w: ratio %s must be positive, got %g", ErrInvalid, name, v)
		}
	}
	if c.GridSize < MinGridSize || c.GridSize > MaxGridSize {
		return fmt.Errorf("%w: grid_size %d out of range [%d, %d]", ErrInvalid, c.GridSize, MinGridSize, MaxGridSize)
	}
	if c.DPI < MinDPI || c.DPI > MaxDPI {
		return fmt.Errorf("%w: dpi %d out of range [%d, %d]", ErrInvalid, c.DPI, MinDPI, MaxDPI)
	}
	if _, err := render.PaletteByName(c.Palette); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}
