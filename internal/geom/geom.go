// Package geom provides the small 3D vector and bounding-box toolkit shared
// by the scene builder, the mesh layer, and the elevation sampler.
package geom

import "math"

// degenerateEpsilon is the threshold below which lengths and areas are
// considered effectively zero for validity checks.
const degenerateEpsilon = 1e-12

// Vec3 is a point or direction in world space. World units are whatever the
// user's input dimensions are in; the pipeline never converts units.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale returns v scaled by s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Dot returns the dot product of v and o.
func (v Vec3) Dot(o Vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Cross returns the cross product of v and o.
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

// Length returns the Euclidean length of v.
func (v Vec3) Length() float64 {
	return math.Sqrt(v.Dot(v))
}

// Dist returns the Euclidean distance between v and o.
func (v Vec3) Dist(o Vec3) float64 {
	return v.Sub(o).Length()
}

// IsFinite reports whether all components are finite numbers.
func (v Vec3) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) &&
		!math.IsNaN(v.Y) && !math.IsInf(v.Y, 0) &&
		!math.IsNaN(v.Z) && !math.IsInf(v.Z, 0)
}

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min, Max Vec3
}

// NewBounds returns a Bounds spanning [xmin,xmax]x[ymin,ymax]x[zmin,zmax].
func NewBounds(xmin, ymin, zmin, xmax, ymax, zmax float64) Bounds {
	return Bounds{
		Min: Vec3{xmin, ymin, zmin},
		Max: Vec3{xmax, ymax, zmax},
	}
}

// Union returns the smallest Bounds containing both b and o.
func (b Bounds) Union(o Bounds) Bounds {
	return Bounds{
		Min: Vec3{
			X: math.Min(b.Min.X, o.Min.X),
			Y: math.Min(b.Min.Y, o.Min.Y),
			Z: math.Min(b.Min.Z, o.Min.Z),
		},
		Max: Vec3{
			X: math.Max(b.Max.X, o.Max.X),
			Y: math.Max(b.Max.Y, o.Max.Y),
			Z: math.Max(b.Max.Z, o.Max.Z),
		},
	}
}

// Extend grows the bounds to contain p.
func (b Bounds) Extend(p Vec3) Bounds {
	return b.Union(Bounds{Min: p, Max: p})
}

// Center returns the volumetric centre of the bounds.
func (b Bounds) Center() Vec3 {
	return Vec3{
		X: (b.Min.X + b.Max.X) / 2,
		Y: (b.Min.Y + b.Max.Y) / 2,
		Z: (b.Min.Z + b.Max.Z) / 2,
	}
}

// Size returns the extent along each axis.
func (b Bounds) Size() Vec3 {
	return b.Max.Sub(b.Min)
}

// Corners returns the eight corners in a fixed enumeration order: X varies
// slowest, then Y, then Z (min before max on each axis). Reporting relies on
// this order being stable.
func (b Bounds) Corners() [8]Vec3 {
	return [8]Vec3{
		{b.Min.X, b.Min.Y, b.Min.Z},
		{b.Min.X, b.Min.Y, b.Max.Z},
		{b.Min.X, b.Max.Y, b.Min.Z},
		{b.Min.X, b.Max.Y, b.Max.Z},
		{b.Max.X, b.Min.Y, b.Min.Z},
		{b.Max.X, b.Min.Y, b.Max.Z},
		{b.Max.X, b.Max.Y, b.Min.Z},
		{b.Max.X, b.Max.Y, b.Max.Z},
	}
}

// Triangle is a single mesh facet. Vertex order A, B, C is counter-clockwise
// when viewed from outside the solid, so Normal points outward.
type Triangle struct {
	A, B, C Vec3
}

// Normal returns the (unnormalised) face normal (B-A) x (C-A).
func (t Triangle) Normal() Vec3 {
	return t.B.Sub(t.A).Cross(t.C.Sub(t.A))
}

// UnitNormal returns the normalised face normal, or the zero vector for a
// degenerate triangle.
func (t Triangle) UnitNormal() Vec3 {
	n := t.Normal()
	l := n.Length()
	if l < degenerateEpsilon {
		return Vec3{}
	}
	return n.Scale(1 / l)
}

// Area returns the triangle's area.
func (t Triangle) Area() float64 {
	return t.Normal().Length() / 2
}

// SignedVolume returns the signed volume of the tetrahedron spanned by the
// triangle and the origin. Summing over a closed outward-wound mesh gives the
// enclosed volume.
func (t Triangle) SignedVolume() float64 {
	return t.A.Dot(t.B.Cross(t.C)) / 6
}

// IsDegenerate reports whether the triangle has effectively zero area or a
// non-finite vertex.
func (t Triangle) IsDegenerate() bool {
	if !t.A.IsFinite() || !t.B.IsFinite() || !t.C.IsFinite() {
		return true
	}
	return t.Area() < degenerateEpsilon
}

// Bounds returns the triangle's axis-aligned bounding box.
func (t Triangle) Bounds() Bounds {
	b := Bounds{Min: t.A, Max: t.A}
	return b.Extend(t.B).Extend(t.C)
}

// TopZAt returns the Z height of the triangle's plane at (x, y) and whether
// the point lies within the triangle's XY projection. Triangles that project
// to a line or point (vertical facets) never cover any sample point.
func (t Triangle) TopZAt(x, y float64) (float64, bool) {
	// Barycentric coordinates in the XY projection.
	denom := (t.B.Y-t.C.Y)*(t.A.X-t.C.X) + (t.C.X-t.B.X)*(t.A.Y-t.C.Y)
	if math.Abs(denom) < degenerateEpsilon {
		return 0, false
	}
	l1 := ((t.B.Y-t.C.Y)*(x-t.C.X) + (t.C.X-t.B.X)*(y-t.C.Y)) / denom
	l2 := ((t.C.Y-t.A.Y)*(x-t.C.X) + (t.A.X-t.C.X)*(y-t.C.Y)) / denom
	l3 := 1 - l1 - l2

	// Small tolerance so sample points on shared edges land in a facet on
	// both sides rather than falling through the seam.
	const edgeTol = 1e-9
	if l1 < -edgeTol || l2 < -edgeTol || l3 < -edgeTol {
		return 0, false
	}
	return l1*t.A.Z + l2*t.B.Z + l3*t.C.Z, true
}
