// Package scene turns the user's dimension triple into the three positioned
// solids of the massing scene and their reporting reference points.
package scene

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/blockform-data/massing.report/internal/config"
)

// ErrInput marks malformed input: wrong token count or non-numeric tokens.
var ErrInput = errors.New("invalid input")

// ErrValidation marks degenerate input: a non-positive dimension.
var ErrValidation = errors.New("invalid dimension")

// Dimensions is the user-supplied (width, depth, height) triple. Immutable
// once parsed.
type Dimensions struct {
	Width, Depth, Height float64
}

// Parse reads exactly three positive numbers from a line, split on
// whitespace and/or commas. Anything else is rejected before any geometry
// or file I/O happens.
func Parse(line string) (Dimensions, error) {
	fields := strings.FieldsFunc(line, func(r rune) bool {
		return r == ' ' || r == '\t' || r == ','
	})
	if len(fields) != 3 {
		return Dimensions{}, fmt.Errorf("%w: expected 3 values (width depth height), got %d", ErrInput, len(fields))
	}

	var vals [3]float64
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return Dimensions{}, fmt.Errorf("%w: %q is not a number", ErrInput, f)
		}
		vals[i] = v
	}

	d := Dimensions{Width: vals[0], Depth: vals[1], Height: vals[2]}
	if err := d.validate(); err != nil {
		return Dimensions{}, err
	}
	return d, nil
}

func (d Dimensions) validate() error {
	for name, v := range map[string]float64{
		"width":  d.Width,
		"depth":  d.Depth,
		"height": d.Height,
	} {
		if v <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %g", ErrValidation, name, v)
		}
	}
	return nil
}

// Derived is the complete set of dimensions and placements computed from the
// triple. Every field is a pure function of Dimensions and the configured
// ratios; nothing here is mutated after Derive returns.
type Derived struct {
	Dimensions

	RoofHeight   float64 // rise above the house body
	RoofDepth    float64 // extent along Y, centred on the house
	RoofOverhang float64 // eave beyond the house wall, per side
	RoofWidth    float64 // total extent along X

	BoxSide   float64 // square footprint side
	BoxHeight float64

	BoxXMin, BoxXMax float64
	BoxYMin, BoxYMax float64
}

// Derive applies the fixed ratios to the dimension triple. Input is already
// validated positive, so there are no error conditions.
func Derive(d Dimensions, r config.Ratios) Derived {
	overhang := r.RoofOverhang * d.Width
	boxSide := r.BoxSide * d.Width
	boxXMin := r.BoxOffsetX * d.Width

	return Derived{
		Dimensions: d,

		RoofHeight:   r.RoofHeight * d.Height,
		RoofDepth:    r.RoofDepth * d.Depth,
		RoofOverhang: overhang,
		RoofWidth:    d.Width + 2*overhang,

		BoxSide:   boxSide,
		BoxHeight: r.BoxHeight * d.Height,

		BoxXMin: boxXMin,
		BoxXMax: boxXMin + boxSide,
		BoxYMin: d.Width/2 - boxSide/2,
		BoxYMax: d.Width/2 + boxSide/2,
	}
}
