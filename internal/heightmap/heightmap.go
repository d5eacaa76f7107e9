// Package heightmap samples a mesh's top-down elevation over a uniform grid.
// Each cell holds the maximum solid Z at its sample point, and 0 where
// nothing covers it. This is the elevation map behind the topography image.
package heightmap

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/blockform-data/massing.report/internal/mesh"
)

// Grid is a sampled elevation field. It implements plotter.GridXYZ so the
// renderer can consume it directly.
type Grid struct {
	xs, ys []float64 // sample coordinates, ascending
	z      []float64 // row-major, z[iy*len(xs)+ix]
}

// Sample rasterises the mesh top-down over an n x n grid spanning the mesh
// bounding box. Grid size only affects image fidelity; it never feeds back
// into the mesh or the report.
func Sample(m *mesh.Mesh, n int) (*Grid, error) {
	if n < 2 {
		return nil, fmt.Errorf("grid size must be at least 2, got %d", n)
	}
	bounds, err := m.Bounds()
	if err != nil {
		return nil, err
	}

	g := &Grid{
		xs: floats.Span(make([]float64, n), bounds.Min.X, bounds.Max.X),
		ys: floats.Span(make([]float64, n), bounds.Min.Y, bounds.Max.Y),
		z:  make([]float64, n*n),
	}

	stepX := (bounds.Max.X - bounds.Min.X) / float64(n-1)
	stepY := (bounds.Max.Y - bounds.Min.Y) / float64(n-1)

	// Rasterise each facet: only the sample points under its XY projection
	// are tested, which is equivalent to casting a vertical ray per cell but
	// touches each facet's cells once.
	for _, tri := range m.Triangles {
		tb := tri.Bounds()

		ix0, ix1 := indexRange(tb.Min.X, tb.Max.X, bounds.Min.X, stepX, n)
		iy0, iy1 := indexRange(tb.Min.Y, tb.Max.Y, bounds.Min.Y, stepY, n)

		for iy := iy0; iy <= iy1; iy++ {
			for ix := ix0; ix <= ix1; ix++ {
				z, ok := tri.TopZAt(g.xs[ix], g.ys[iy])
				if !ok {
					continue
				}
				if idx := iy*n + ix; z > g.z[idx] {
					g.z[idx] = z
				}
			}
		}
	}

	return g, nil
}

// indexRange maps a coordinate interval onto the inclusive grid index range
// it covers.
func indexRange(lo, hi, origin, step float64, n int) (int, int) {
	if step <= 0 {
		return 0, n - 1
	}
	i0 := int(math.Ceil((lo - origin) / step))
	i1 := int(math.Floor((hi - origin) / step))
	// An interval narrower than one step can straddle two sample points
	// without containing either, inverting the range. Widen to the two
	// neighbours; the containment test decides whether either counts.
	if i0 > i1 {
		i0, i1 = i1, i0
	}
	if i0 < 0 {
		i0 = 0
	}
	if i1 > n-1 {
		i1 = n - 1
	}
	return i0, i1
}

// Dims returns the number of columns and rows.
func (g *Grid) Dims() (c, r int) { return len(g.xs), len(g.ys) }

// X returns the sample X coordinate of column c.
func (g *Grid) X(c int) float64 { return g.xs[c] }

// Y returns the sample Y coordinate of row r.
func (g *Grid) Y(r int) float64 { return g.ys[r] }

// Z returns the sampled elevation at column c, row r.
func (g *Grid) Z(c, r int) float64 { return g.z[r*len(g.xs)+c] }

// MaxHeight returns the largest sampled elevation.
func (g *Grid) MaxHeight() float64 {
	return floats.Max(g.z)
}

// Coverage returns the fraction of cells covered by any solid.
func (g *Grid) Coverage() float64 {
	covered := 0
	for _, v := range g.z {
		if v > 0 {
			covered++
		}
	}
	return float64(covered) / float64(len(g.z))
}
