package scene

import (
	"math"

	"github.com/blockform-data/massing.report/internal/geom"
	"github.com/blockform-data/massing.report/internal/mesh"
)

// World coordinate convention: the house body occupies [0,w]x[0,d]x[0,h]
// with its south-west-bottom corner at the origin. The roof prism is centred
// on the house in X and Y with its ridge along Y; the detached box sits on
// the ground at x >= 2w, centred on y = w/2. Export, projection, and
// reporting all share this frame.

// SolidPoints holds the reporting reference points of one named solid.
type SolidPoints struct {
	Name    string
	Bounds  geom.Bounds
	Center  geom.Vec3
	Corners [8]geom.Vec3
}

// ReferencePoints is the full reporting set, one entry per solid, in the
// fixed enumeration order house, roof, box.
type ReferencePoints struct {
	House, Roof, Box SolidPoints
}

// Scene is the built compound mesh plus its reference points.
type Scene struct {
	Compound *mesh.Mesh
	Points   ReferencePoints
}

// Build constructs the three solids from the derived dimensions, assembles
// them into one compound mesh, and computes the per-solid reference points.
// Construction failures (degenerate facets) surface as mesh.ErrGeometry.
func Build(d Derived) (*Scene, error) {
	houseBounds := geom.NewBounds(0, 0, 0, d.Width, d.Depth, d.Height)
	roofBounds := geom.NewBounds(
		-d.RoofOverhang, (d.Depth-d.RoofDepth)/2, d.Height,
		d.Width+d.RoofOverhang, (d.Depth+d.RoofDepth)/2, d.Height+d.RoofHeight,
	)
	boxBounds := geom.NewBounds(d.BoxXMin, d.BoxYMin, 0, d.BoxXMax, d.BoxYMax, d.BoxHeight)

	house := mesh.Box("house", houseBounds)
	roof := mesh.GablePrism("roof",
		roofBounds.Min.X, roofBounds.Max.X,
		roofBounds.Min.Y, roofBounds.Max.Y,
		d.Height, d.Height+d.RoofHeight,
		d.Width/2,
	)
	box := mesh.Box("box", boxBounds)

	compound := mesh.New("house_and_box")
	compound.Append(house)
	compound.Append(roof)
	compound.Append(box)
	if err := compound.Validate(); err != nil {
		return nil, err
	}

	return &Scene{
		Compound: compound,
		Points: ReferencePoints{
			House: pointsFor("house", houseBounds),
			Roof:  pointsFor("roof", roofBounds),
			Box:   pointsFor("box", boxBounds),
		},
	}, nil
}

func pointsFor(name string, b geom.Bounds) SolidPoints {
	return SolidPoints{
		Name:    name,
		Bounds:  b,
		Center:  b.Center(),
		Corners: b.Corners(),
	}
}

// Distance is a named straight-line measurement between two reference
// points.
type Distance struct {
	Label  string
	Meters float64
}

// Distances returns the fixed, documented set of pairwise measurements, in
// stable order: the three centre-to-centre distances, then the closest
// corner pair between house and box.
func (p ReferencePoints) Distances() []Distance {
	return []Distance{
		{Label: "house_center_to_box_center", Meters: p.House.Center.Dist(p.Box.Center)},
		{Label: "roof_center_to_box_center", Meters: p.Roof.Center.Dist(p.Box.Center)},
		{Label: "house_center_to_roof_center", Meters: p.House.Center.Dist(p.Roof.Center)},
		{Label: "house_box_nearest_corners", Meters: nearestCorners(p.House.Corners, p.Box.Corners)},
	}
}

// nearestCorners returns the minimum pairwise distance. Iteration order is
// fixed so ties resolve identically on every run.
func nearestCorners(a, b [8]geom.Vec3) float64 {
	best := math.Inf(1)
	for _, pa := range a {
		for _, pb := range b {
			if d := pa.Dist(pb); d < best {
				best = d
			}
		}
	}
	return best
}
