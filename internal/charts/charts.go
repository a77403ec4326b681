// Package charts renders the pipeline's fixed PNG artifacts with gonum/plot.
// Chart rendering is a side effect of the analysis jobs; nothing downstream
// reads the images back.
package charts

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

var defaultSize = struct{ W, H vg.Length }{W: 10 * vg.Inch, H: 5 * vg.Inch}

// Bar renders a labeled bar chart.
func Bar(path, title, xLabel, yLabel string, labels []string, values []float64) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel

	bars, err := plotter.NewBarChart(plotter.Values(values), vg.Points(30))
	if err != nil {
		return fmt.Errorf("bar chart %s: %w", path, err)
	}
	p.Add(bars)
	p.NominalX(labels...)

	return save(p, path)
}

// TimeSeries renders one line over dates.
func TimeSeries(path, title, yLabel string, dates []time.Time, values []float64) error {
	p := newTimePlot(title, yLabel)

	line, err := plotter.NewLine(timeXYs(dates, values))
	if err != nil {
		return fmt.Errorf("time series %s: %w", path, err)
	}
	p.Add(line, plotter.NewGrid())

	return save(p, path)
}

// Series is one named line of a multi-line chart.
type Series struct {
	Name   string
	Values []float64
	Dashed bool
}

// MultiTimeSeries overlays several lines over the same dates, with a legend.
// NaN values (rolling-mean boundaries) are skipped rather than drawn.
func MultiTimeSeries(path, title, yLabel string, dates []time.Time, series []Series) error {
	p := newTimePlot(title, yLabel)
	p.Legend.Top = true

	for i, s := range series {
		line, err := plotter.NewLine(timeXYs(dates, s.Values))
		if err != nil {
			return fmt.Errorf("series %q in %s: %w", s.Name, path, err)
		}
		line.LineStyle.Color = plotColor(i)
		if s.Dashed {
			line.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
		}
		p.Add(line)
		p.Legend.Add(s.Name, line)
	}
	p.Add(plotter.NewGrid())

	return save(p, path)
}

// ScatterWithTrend renders daily points with the fitted trend line on top.
func ScatterWithTrend(path, title, yLabel string, dates []time.Time, actual, fitted []float64) error {
	p := newTimePlot(title, yLabel)
	p.Legend.Top = true

	scatter, err := plotter.NewScatter(timeXYs(dates, actual))
	if err != nil {
		return fmt.Errorf("scatter %s: %w", path, err)
	}
	scatter.GlyphStyle.Radius = vg.Points(2)

	line, err := plotter.NewLine(timeXYs(dates, fitted))
	if err != nil {
		return fmt.Errorf("trend line %s: %w", path, err)
	}
	line.LineStyle.Color = plotColor(1)
	line.LineStyle.Width = vg.Points(2)

	p.Add(scatter, line, plotter.NewGrid())
	p.Legend.Add("actual", scatter)
	p.Legend.Add("trend", line)

	return save(p, path)
}

// Histogram renders the distribution of one numeric column.
func Histogram(path, title, xLabel string, values []float64, bins int) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = "Frequency"

	h, err := plotter.NewHist(plotter.Values(values), bins)
	if err != nil {
		return fmt.Errorf("histogram %s: %w", path, err)
	}
	p.Add(h)

	return save(p, path)
}

// HistogramGroup is one tile of a tiled histogram figure.
type HistogramGroup struct {
	Title  string
	Values []float64
}

// TiledHistograms renders one histogram per group side by side in a single
// image, one tile per store.
func TiledHistograms(path, xLabel string, groups []HistogramGroup, bins int) error {
	if len(groups) == 0 {
		return fmt.Errorf("tiled histograms %s: no groups", path)
	}

	plots := make([][]*plot.Plot, 1)
	plots[0] = make([]*plot.Plot, len(groups))
	for i, g := range groups {
		p := plot.New()
		p.Title.Text = g.Title
		p.X.Label.Text = xLabel
		p.Y.Label.Text = "Frequency"
		h, err := plotter.NewHist(plotter.Values(g.Values), bins)
		if err != nil {
			return fmt.Errorf("histogram %q in %s: %w", g.Title, path, err)
		}
		p.Add(h)
		plots[0][i] = p
	}

	img := vgimg.New(vg.Length(len(groups))*5*vg.Inch, 4*vg.Inch)
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows: 1,
		Cols: len(groups),
		PadX: vg.Points(10),
	}
	canvases := plot.Align(plots, tiles, dc)
	for i := range plots[0] {
		plots[0][i].Draw(canvases[0][i])
	}

	return writePNG(img, path)
}

// HeatMap renders a square matrix (the correlation matrix) with shared axis
// labels.
func HeatMap(path, title string, labels []string, matrix [][]float64) error {
	if len(matrix) == 0 || len(matrix) != len(labels) {
		return fmt.Errorf("heat map %s: labels and matrix disagree", path)
	}

	p := plot.New()
	p.Title.Text = title

	pal := moreland.SmoothBlueRed().Palette(64)
	hm := plotter.NewHeatMap(matrixGrid{values: matrix}, pal)
	p.Add(hm)

	ticks := make([]plot.Tick, len(labels))
	for i, label := range labels {
		ticks[i] = plot.Tick{Value: float64(i), Label: label}
	}
	p.X.Tick.Marker = plot.ConstantTicks(ticks)
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = draw.XRight
	p.Y.Tick.Marker = plot.ConstantTicks(ticks)

	return save(p, path)
}

// matrixGrid adapts a row-major matrix to plotter.GridXYZ. Row 0 renders at
// the top, matching the usual matrix orientation.
type matrixGrid struct {
	values [][]float64
}

func (g matrixGrid) Dims() (int, int) { return len(g.values[0]), len(g.values) }
func (g matrixGrid) X(c int) float64  { return float64(c) }
func (g matrixGrid) Y(r int) float64  { return float64(r) }
func (g matrixGrid) Z(c, r int) float64 {
	return g.values[len(g.values)-1-r][c]
}

func newTimePlot(title, yLabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Date"
	p.Y.Label.Text = yLabel
	p.X.Tick.Marker = plot.TimeTicks{Format: "2006-01-02"}
	return p
}

// timeXYs pairs dates with values, skipping NaN entries.
func timeXYs(dates []time.Time, values []float64) plotter.XYs {
	xys := make(plotter.XYs, 0, len(values))
	for i, v := range values {
		if i >= len(dates) || math.IsNaN(v) {
			continue
		}
		xys = append(xys, plotter.XY{X: float64(dates[i].Unix()), Y: v})
	}
	return xys
}

func plotColor(i int) color.RGBA {
	colors := []color.RGBA{
		{R: 0x2e, G: 0x86, B: 0xab, A: 0xff},
		{R: 0xa2, G: 0x3b, B: 0x72, A: 0xff},
		{R: 0xf1, G: 0x8f, B: 0x01, A: 0xff},
		{R: 0x3d, G: 0x3d, B: 0x3d, A: 0xff},
	}
	return colors[i%len(colors)]
}

func save(p *plot.Plot, path string) error {
	if err := p.Save(defaultSize.W, defaultSize.H, path); err != nil {
		return fmt.Errorf("save chart %s: %w", path, err)
	}
	return nil
}

func writePNG(img *vgimg.Canvas, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(f); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
