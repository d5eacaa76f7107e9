package mesh

import (
	"fmt"
	"io"

	"github.com/hschendel/stl"

	"github.com/blockform-data/massing.report/internal/fsutil"
)

// WriteSTL validates the mesh and writes it as binary STL at path. The write
// goes through a temp file and rename so a failed export never leaves a
// half-written artifact behind.
func WriteSTL(m *Mesh, path string) error {
	if err := m.Validate(); err != nil {
		return err
	}

	solid := &stl.Solid{
		Name:      m.Name,
		IsAscii:   false,
		Triangles: make([]stl.Triangle, len(m.Triangles)),
	}
	for i, t := range m.Triangles {
		n := t.UnitNormal()
		solid.Triangles[i] = stl.Triangle{
			Normal: stl.Vec3{float32(n.X), float32(n.Y), float32(n.Z)},
			Vertices: [3]stl.Vec3{
				{float32(t.A.X), float32(t.A.Y), float32(t.A.Z)},
				{float32(t.B.X), float32(t.B.Y), float32(t.B.Z)},
				{float32(t.C.X), float32(t.C.Y), float32(t.C.Z)},
			},
		}
	}

	err := fsutil.WriteAtomic(path, func(w io.Writer) error {
		return solid.WriteAll(w)
	})
	if err != nil {
		return fmt.Errorf("export STL: %w", err)
	}
	return nil
}
