// Package report writes the positions-and-distances table: one row per
// reference point, then one row per pairwise distance, in a fixed order so
// identical input always produces byte-identical CSV.
package report

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/blockform-data/massing.report/internal/geom"
	"github.com/blockform-data/massing.report/internal/scene"
)

// Header is the fixed CSV column schema. Point rows fill x/y/z and leave
// distance empty; distance rows do the opposite.
var Header = []string{"label", "x", "y", "z", "distance"}

// Row is a single table entry. Exactly one of Point or Distance is set.
type Row struct {
	Label    string
	Point    *geom.Vec3
	Distance *float64
}

// Build flattens the reference points into rows: house centre and corners,
// roof centre and corners, box centre and corners, then the distance set.
func Build(p scene.ReferencePoints) []Row {
	rows := make([]Row, 0, 3*9+4)
	for _, sp := range []scene.SolidPoints{p.House, p.Roof, p.Box} {
		center := sp.Center
		rows = append(rows, Row{Label: sp.Name + "_center", Point: &center})
		for i := range sp.Corners {
			corner := sp.Corners[i]
			rows = append(rows, Row{Label: fmt.Sprintf("%s_corner_%d", sp.Name, i), Point: &corner})
		}
	}
	for _, d := range p.Distances() {
		dist := d.Meters
		rows = append(rows, Row{Label: d.Label, Distance: &dist})
	}
	return rows
}

// WriteCSV writes the header and rows. Numeric cells use %.6f so output is
// stable across runs and platforms.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write CSV header: %w", err)
	}
	for _, r := range rows {
		record := []string{r.Label, "", "", "", ""}
		if r.Point != nil {
			record[1] = fmt.Sprintf("%.6f", r.Point.X)
			record[2] = fmt.Sprintf("%.6f", r.Point.Y)
			record[3] = fmt.Sprintf("%.6f", r.Point.Z)
		}
		if r.Distance != nil {
			record[4] = fmt.Sprintf("%.6f", *r.Distance)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write CSV row %q: %w", r.Label, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
