package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blockform-data/massing.report/internal/config"
	"github.com/blockform-data/massing.report/internal/heightmap"
	"github.com/blockform-data/massing.report/internal/scene"
)

func referencePoints(t *testing.T) scene.ReferencePoints {
	t.Helper()
	d := scene.Derive(scene.Dimensions{Width: 10, Depth: 8, Height: 6}, config.Default().Ratios)
	s, err := scene.Build(d)
	require.NoError(t, err)
	return s.Points
}

func TestBuildRowOrder(t *testing.T) {
	t.Parallel()

	rows := Build(referencePoints(t))
	require.Len(t, rows, 31) // 3 solids x (1 centre + 8 corners) + 4 distances

	assert.Equal(t, "house_center", rows[0].Label)
	assert.Equal(t, "house_corner_0", rows[1].Label)
	assert.Equal(t, "house_corner_7", rows[8].Label)
	assert.Equal(t, "roof_center", rows[9].Label)
	assert.Equal(t, "box_center", rows[18].Label)
	assert.Equal(t, "box_corner_7", rows[26].Label)
	assert.Equal(t, "house_center_to_box_center", rows[27].Label)
	assert.Equal(t, "house_box_nearest_corners", rows[30].Label)

	for i, r := range rows {
		if i < 27 {
			assert.NotNil(t, r.Point, r.Label)
			assert.Nil(t, r.Distance, r.Label)
		} else {
			assert.Nil(t, r.Point, r.Label)
			assert.NotNil(t, r.Distance, r.Label)
		}
	}
}

func TestWriteCSVContent(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, Build(referencePoints(t))))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 32) // header + 31 rows

	assert.Equal(t, "label,x,y,z,distance", lines[0])
	assert.Equal(t, "house_center,5.000000,4.000000,3.000000,", lines[1])
	assert.Equal(t, "house_corner_0,0.000000,0.000000,0.000000,", lines[2])
	// Roof corners carry the overhang.
	assert.Equal(t, "roof_corner_0,-2.500000,-2.000000,6.000000,", lines[11])
	// Distance rows leave coordinates empty.
	assert.Equal(t, "house_center_to_roof_center,,,,4.500000", lines[30])
}

func TestWriteCSVByteIdentical(t *testing.T) {
	t.Parallel()

	var a, b bytes.Buffer
	require.NoError(t, WriteCSV(&a, Build(referencePoints(t))))
	require.NoError(t, WriteCSV(&b, Build(referencePoints(t))))

	assert.Empty(t, cmp.Diff(a.Bytes(), b.Bytes()))
}

func TestWriteHTMLChart(t *testing.T) {
	t.Parallel()

	d := scene.Derive(scene.Dimensions{Width: 10, Depth: 8, Height: 6}, config.Default().Ratios)
	s, err := scene.Build(d)
	require.NoError(t, err)

	g, err := heightmap.Sample(s.Compound, 64)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteHTMLChart(g, &buf))

	html := buf.String()
	assert.Contains(t, html, "echarts")
	assert.Contains(t, html, "Topography (Z Projection)")
}
