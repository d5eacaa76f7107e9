package report

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/blockform-data/massing.report/internal/heightmap"
)

// maxChartPoints caps the number of covered cells shipped into the HTML
// chart; above it the grid is stride-downsampled.
const maxChartPoints = 20000

// viridis hex ramp used for the interactive chart's colour scale.
var chartColorRamp = []string{
	"#440154", "#482777", "#3e4989", "#31688e", "#26828e",
	"#1f9e89", "#35b779", "#6ece58", "#b5de2b", "#fde725",
}

// WriteHTMLChart renders the elevation grid as an interactive scatter chart
// coloured by height. This is a browse-friendly companion to the PNG, not a
// replacement for it.
func WriteHTMLChart(g *heightmap.Grid, w io.Writer) error {
	cols, rows := g.Dims()

	stride := 1
	if cols*rows > maxChartPoints {
		for (cols/stride)*(rows/stride) > maxChartPoints {
			stride++
		}
	}

	maxZ := g.MaxHeight()
	if maxZ == 0 {
		maxZ = 1
	}

	data := make([]opts.ScatterData, 0, (cols/stride+1)*(rows/stride+1))
	for iy := 0; iy < rows; iy += stride {
		for ix := 0; ix < cols; ix += stride {
			z := g.Z(ix, iy)
			if z <= 0 {
				continue
			}
			data = append(data, opts.ScatterData{Value: []interface{}{g.X(ix), g.Y(iy), z}})
		}
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Topography (Z Projection)",
			Width:     "900px",
			Height:    "900px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Topography (Z Projection)",
			Subtitle: fmt.Sprintf("cells=%d stride=%d", len(data), stride),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "X", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Y", NameLocation: "middle", NameGap: 30}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Show:       opts.Bool(true),
			Calculable: opts.Bool(true),
			Min:        0,
			Max:        float32(maxZ),
			Dimension:  "2",
			InRange:    &opts.VisualMapInRange{Color: chartColorRamp},
		}),
	)

	scatter.AddSeries("elevation", data, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 3}))

	if err := scatter.Render(w); err != nil {
		return fmt.Errorf("render elevation chart: %w", err)
	}
	return nil
}
