// Package render rasterises a sampled elevation grid into the topography
// PNG using gonum/plot.
package render

import (
	"fmt"
	"io"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/blockform-data/massing.report/internal/fsutil"
	"github.com/blockform-data/massing.report/internal/heightmap"
)

// imageSize is the rendered image edge length. DPI controls pixel density
// on top of this fixed 6x6 inch figure.
const imageSize = 6 * vg.Inch

// paletteColors is how many discrete steps each colour map is sampled at.
const paletteColors = 255

// palettes maps the configurable colour map names to constructors. All of
// them map elevation 0 (no solid) to a colour clearly distinct from any
// raised surface.
var palettes = map[string]func() palette.Palette{
	"kindlmann":     func() palette.Palette { return moreland.Kindlmann().Palette(paletteColors) },
	"blackbody":     func() palette.Palette { return moreland.ExtendedBlackBody().Palette(paletteColors) },
	"smoothbluered": func() palette.Palette { return moreland.SmoothBlueRed().Palette(paletteColors) },
	"heat":          func() palette.Palette { return palette.Heat(paletteColors, 1) },
}

// PaletteNames returns the supported colour map names, sorted.
func PaletteNames() []string {
	names := make([]string, 0, len(palettes))
	for name := range palettes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PaletteByName resolves a configured colour map name.
func PaletteByName(name string) (palette.Palette, error) {
	ctor, ok := palettes[name]
	if !ok {
		return nil, fmt.Errorf("unknown palette %q (available: %v)", name, PaletteNames())
	}
	return ctor(), nil
}

// HeatMapPNG renders the elevation grid as a colour-mapped heat map and
// writes it atomically as a PNG at the given DPI.
func HeatMapPNG(g *heightmap.Grid, paletteName string, dpi int, path string) error {
	pal, err := PaletteByName(paletteName)
	if err != nil {
		return err
	}

	p := plot.New()
	p.Title.Text = "Topography (Z Projection)"
	p.X.Label.Text = "X"
	p.Y.Label.Text = "Y"

	hm := plotter.NewHeatMap(g, pal)
	hm.Min = 0 // anchor the background colour at elevation zero
	p.Add(hm)

	canvas := vgimg.NewWith(
		vgimg.UseWH(imageSize, imageSize),
		vgimg.UseDPI(dpi),
	)
	p.Draw(draw.New(canvas))

	err = fsutil.WriteAtomic(path, func(w io.Writer) error {
		png := vgimg.PngCanvas{Canvas: canvas}
		_, err := png.WriteTo(w)
		return err
	})
	if err != nil {
		return fmt.Errorf("render topography: %w", err)
	}
	return nil
}
