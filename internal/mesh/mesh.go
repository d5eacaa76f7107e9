// Package mesh holds the triangulated solids the scene builder produces and
// exports them as binary STL.
package mesh

import (
	"errors"
	"fmt"
	"math"

	"github.com/blockform-data/massing.report/internal/geom"
)

// ErrGeometry marks a mesh that cannot be built or exported: degenerate
// facets, non-finite coordinates, or an empty solid.
var ErrGeometry = errors.New("invalid geometry")

// Mesh is a triangle soup with outward-wound facets.
type Mesh struct {
	Name      string
	Triangles []geom.Triangle
}

// New returns an empty named mesh.
func New(name string) *Mesh {
	return &Mesh{Name: name}
}

// Append adds the other mesh's triangles to m. Used to assemble the compound
// scene from the individual solids.
func (m *Mesh) Append(o *Mesh) {
	m.Triangles = append(m.Triangles, o.Triangles...)
}

// Bounds returns the axis-aligned bounding box of all facets.
func (m *Mesh) Bounds() (geom.Bounds, error) {
	if len(m.Triangles) == 0 {
		return geom.Bounds{}, fmt.Errorf("%w: mesh %q has no facets", ErrGeometry, m.Name)
	}
	b := m.Triangles[0].Bounds()
	for _, t := range m.Triangles[1:] {
		b = b.Union(t.Bounds())
	}
	return b, nil
}

// Volume returns the signed enclosed volume. For a closed outward-wound mesh
// this is positive and equals the solid's volume; for a compound mesh it is
// the sum over the component solids.
func (m *Mesh) Volume() float64 {
	var v float64
	for _, t := range m.Triangles {
		v += t.SignedVolume()
	}
	return v
}

// Validate checks every facet for degeneracy and rejects empty meshes. It is
// run before export so a broken construction aborts the pipeline instead of
// producing a silently corrupt STL file.
func (m *Mesh) Validate() error {
	if len(m.Triangles) == 0 {
		return fmt.Errorf("%w: mesh %q has no facets", ErrGeometry, m.Name)
	}
	for i, t := range m.Triangles {
		if t.IsDegenerate() {
			return fmt.Errorf("%w: mesh %q facet %d is degenerate", ErrGeometry, m.Name, i)
		}
	}
	if v := m.Volume(); v <= 0 || math.IsNaN(v) {
		return fmt.Errorf("%w: mesh %q encloses non-positive volume %g", ErrGeometry, m.Name, v)
	}
	return nil
}

// quad appends the two triangles covering the planar quad a-b-c-d. Vertices
// are given counter-clockwise as seen from outside the solid.
func (m *Mesh) quad(a, b, c, d geom.Vec3) {
	m.Triangles = append(m.Triangles,
		geom.Triangle{A: a, B: b, C: c},
		geom.Triangle{A: a, B: c, C: d},
	)
}

// Box returns the 12-triangle mesh of an axis-aligned box.
func Box(name string, b geom.Bounds) *Mesh {
	m := New(name)
	min, max := b.Min, b.Max

	// bottom, top
	m.quad(geom.Vec3{X: min.X, Y: min.Y, Z: min.Z}, geom.Vec3{X: min.X, Y: max.Y, Z: min.Z},
		geom.Vec3{X: max.X, Y: max.Y, Z: min.Z}, geom.Vec3{X: max.X, Y: min.Y, Z: min.Z})
	m.quad(geom.Vec3{X: min.X, Y: min.Y, Z: max.Z}, geom.Vec3{X: max.X, Y: min.Y, Z: max.Z},
		geom.Vec3{X: max.X, Y: max.Y, Z: max.Z}, geom.Vec3{X: min.X, Y: max.Y, Z: max.Z})
	// front (y=min), back (y=max)
	m.quad(geom.Vec3{X: min.X, Y: min.Y, Z: min.Z}, geom.Vec3{X: max.X, Y: min.Y, Z: min.Z},
		geom.Vec3{X: max.X, Y: min.Y, Z: max.Z}, geom.Vec3{X: min.X, Y: min.Y, Z: max.Z})
	m.quad(geom.Vec3{X: max.X, Y: max.Y, Z: min.Z}, geom.Vec3{X: min.X, Y: max.Y, Z: min.Z},
		geom.Vec3{X: min.X, Y: max.Y, Z: max.Z}, geom.Vec3{X: max.X, Y: max.Y, Z: max.Z})
	// left (x=min), right (x=max)
	m.quad(geom.Vec3{X: min.X, Y: max.Y, Z: min.Z}, geom.Vec3{X: min.X, Y: min.Y, Z: min.Z},
		geom.Vec3{X: min.X, Y: min.Y, Z: max.Z}, geom.Vec3{X: min.X, Y: max.Y, Z: max.Z})
	m.quad(geom.Vec3{X: max.X, Y: min.Y, Z: min.Z}, geom.Vec3{X: max.X, Y: max.Y, Z: min.Z},
		geom.Vec3{X: max.X, Y: max.Y, Z: max.Z}, geom.Vec3{X: max.X, Y: min.Y, Z: max.Z})

	return m
}

// GablePrism returns the 8-triangle mesh of a triangular prism with a
// horizontal ridge running along Y: rectangular footprint
// [xmin,xmax]x[ymin,ymax] at baseZ, ridge at x=ridgeX raised to apexZ.
func GablePrism(name string, xmin, xmax, ymin, ymax, baseZ, apexZ, ridgeX float64) *Mesh {
	m := New(name)

	v0 := geom.Vec3{X: xmin, Y: ymin, Z: baseZ}
	v1 := geom.Vec3{X: xmax, Y: ymin, Z: baseZ}
	v2 := geom.Vec3{X: xmax, Y: ymax, Z: baseZ}
	v3 := geom.Vec3{X: xmin, Y: ymax, Z: baseZ}
	r0 := geom.Vec3{X: ridgeX, Y: ymin, Z: apexZ}
	r1 := geom.Vec3{X: ridgeX, Y: ymax, Z: apexZ}

	// bottom
	m.Triangles = append(m.Triangles,
		geom.Triangle{A: v0, B: v2, C: v1},
		geom.Triangle{A: v0, B: v3, C: v2},
	)
	// gable ends
	m.Triangles = append(m.Triangles,
		geom.Triangle{A: v0, B: v1, C: r0}, // y=ymin, outward -Y
		geom.Triangle{A: v2, B: v3, C: r1}, // y=ymax, outward +Y
	)
	// slopes
	m.quad(v0, r0, r1, v3) // left slope
	m.quad(v1, v2, r1, r0) // right slope

	return m
}
