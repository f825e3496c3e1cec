package cli

import (
	"io"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/Fepozopo/histeq/pkg/stdimg"
)

const (
	chartWidth  = 1024
	chartHeight = 512
)

// histogramSeries turns a histogram into a line series over levels 0..255.
func histogramSeries(name string, h stdimg.Histogram, style chart.Style) chart.ContinuousSeries {
	xvalues := make([]float64, stdimg.Levels)
	yvalues := make([]float64, stdimg.Levels)
	for k, n := range h {
		xvalues[k] = float64(k)
		yvalues[k] = float64(n)
	}
	return chart.ContinuousSeries{
		Name:    name,
		Style:   style,
		XValues: xvalues,
		YValues: yvalues,
	}
}

// WriteHistogramChart renders the grayscale histogram before and after
// equalization as a PNG line chart.
func WriteHistogramChart(w io.Writer, title string, before, after stdimg.Histogram) error {
	graph := chart.Chart{
		Title:  title,
		Width:  chartWidth,
		Height: chartHeight,
		XAxis: chart.XAxis{
			Name: "Level",
			Range: &chart.ContinuousRange{
				Min: 0.0,
				Max: stdimg.Levels - 1,
			},
		},
		YAxis: chart.YAxis{
			Name: "Pixels",
		},
		Series: []chart.Series{
			histogramSeries("original", before, chart.Style{
				StrokeColor: chart.ColorBlue,
				FillColor:   chart.ColorAlternateBlue,
			}),
			histogramSeries("equalized", after, chart.Style{
				StrokeColor: chart.ColorRed,
			}),
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	return graph.Render(chart.PNG, w)
}
