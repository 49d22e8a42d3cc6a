// Package charts renders the dashboard figures as PNG images: the mpg
// trend line, the cylinder bar chart, the per-origin box plot, and the
// scatter plots on the analysis page.
package charts

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	png "image/png"
	"sort"
	"strconv"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"mpgdash/domain/car"
	"mpgdash/internal/analysis"
	apperrors "mpgdash/internal/errors"
)

// originPalette assigns series colors by position, so the same origin
// keeps its color across charts as long as the origin set is stable.
var originPalette = []drawing.Color{
	chart.ColorBlue,
	chart.ColorRed,
	chart.ColorGreen,
	chart.ColorOrange,
	chart.ColorAlternateGray,
}

func colorFor(i int) drawing.Color {
	return originPalette[i%len(originPalette)]
}

// pointStyle renders points only, with no connecting line.
func pointStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth: 0,
		DotWidth:    4,
		DotColor:    col,
	}
}

// Renderer draws charts at a fixed pixel size.
type Renderer struct {
	width  int
	height int
}

// NewRenderer creates a renderer with the dashboard's default chart size.
func NewRenderer() *Renderer {
	return &Renderer{width: 900, height: 360}
}

// TrendLine draws average mpg per model year, one line per origin.
func (r *Renderer) TrendLine(summary analysis.Summary) ([]byte, error) {
	if len(summary.Trend) == 0 {
		return placeholder(r.width, r.height)
	}

	byOrigin := make(map[string][]analysis.TrendPoint)
	var origins []string
	for _, p := range summary.Trend {
		if _, ok := byOrigin[p.Origin]; !ok {
			origins = append(origins, p.Origin)
		}
		byOrigin[p.Origin] = append(byOrigin[p.Origin], p)
	}
	sort.Strings(origins)

	series := make([]chart.Series, 0, len(origins))
	for i, origin := range origins {
		points := byOrigin[origin]
		xs := make([]float64, len(points))
		ys := make([]float64, len(points))
		for j, p := range points {
			xs[j] = float64(p.Year)
			ys[j] = p.AvgMPG
		}
		// go-chart needs at least two X values per series.
		if len(xs) == 1 {
			xs = append(xs, xs[0]+1)
			ys = append(ys, ys[0])
		}
		col := colorFor(i)
		series = append(series, chart.ContinuousSeries{
			Name:    origin,
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeColor: col,
				StrokeWidth: 2,
				DotColor:    col,
				DotWidth:    3,
			},
		})
	}

	ch := chart.Chart{
		Title:      "Average MPG by model year",
		Width:      r.width,
		Height:     r.height,
		Background: chart.Style{Padding: chart.Box{Top: 14, Left: 16, Right: 12, Bottom: 28}},
		XAxis:      chart.XAxis{Name: "model year", ValueFormatter: chart.IntValueFormatter},
		YAxis:      chart.YAxis{Name: "mpg"},
		Series:     series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, apperrors.RenderError("trend", err)
	}
	return buf.Bytes(), nil
}

// CylinderBars draws average mpg per cylinder count.
func (r *Renderer) CylinderBars(summary analysis.Summary) ([]byte, error) {
	if len(summary.CylinderAverages) == 0 {
		return placeholder(r.width, r.height)
	}

	bars := make([]chart.Value, 0, len(summary.CylinderAverages))
	maxAvg := 0.0
	for _, g := range summary.CylinderAverages {
		bars = append(bars, chart.Value{
			Label: strconv.Itoa(g.Cylinders),
			Value: g.AvgMPG,
		})
		if g.AvgMPG > maxAvg {
			maxAvg = g.AvgMPG
		}
	}

	ch := chart.BarChart{
		Title:      "Average MPG by cylinders",
		Width:      r.width,
		Height:     r.height,
		BarWidth:   60,
		Background: chart.Style{Padding: chart.Box{Top: 14, Left: 16, Right: 12, Bottom: 28}},
		YAxis: chart.YAxis{
			Name:  "mpg",
			Range: &chart.ContinuousRange{Min: 0, Max: maxAvg * 1.1},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, apperrors.RenderError("cylinders", err)
	}
	return buf.Bytes(), nil
}

// OriginBox draws the mpg distribution per origin as box plots.
func (r *Renderer) OriginBox(summary analysis.Summary) ([]byte, error) {
	if len(summary.Distributions) == 0 {
		return placeholder(r.width, r.height)
	}

	p := plot.New()
	p.Title.Text = "MPG distribution by origin"
	p.Y.Label.Text = "mpg"

	labels := make([]string, 0, len(summary.Distributions))
	for i, d := range summary.Distributions {
		box, err := plotter.NewBoxPlot(vg.Points(40), float64(i), plotter.Values(d.MPGs))
		if err != nil {
			return nil, apperrors.RenderError("box", err)
		}
		p.Add(box)
		labels = append(labels, d.Origin)
	}
	p.NominalX(labels...)

	wt, err := p.WriterTo(8*vg.Inch, 4*vg.Inch, "png")
	if err != nil {
		return nil, apperrors.RenderError("box", err)
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return nil, apperrors.RenderError("box", err)
	}
	return buf.Bytes(), nil
}

// Scatter draws one x value per car against mpg, colored by origin, with
// the correlation stats in the title when they exist.
func (r *Renderer) Scatter(view car.View, x func(car.Record) float64, xLabel string, corr analysis.Correlation) ([]byte, error) {
	if view.Len() == 0 {
		return placeholder(r.width, r.height)
	}

	type points struct {
		xs []float64
		ys []float64
	}
	byOrigin := make(map[string]*points)
	var origins []string
	for i := 0; i < view.Len(); i++ {
		rec := view.At(i)
		pts, ok := byOrigin[rec.Origin]
		if !ok {
			pts = &points{}
			byOrigin[rec.Origin] = pts
			origins = append(origins, rec.Origin)
		}
		pts.xs = append(pts.xs, x(rec))
		pts.ys = append(pts.ys, rec.MPG)
	}
	sort.Strings(origins)

	series := make([]chart.Series, 0, len(origins))
	for i, origin := range origins {
		pts := byOrigin[origin]
		xs, ys := pts.xs, pts.ys
		if len(xs) == 1 {
			xs = append(xs, xs[0]+1)
			ys = append(ys, ys[0])
		}
		series = append(series, chart.ContinuousSeries{
			Name:    origin,
			XValues: xs,
			YValues: ys,
			Style:   pointStyle(colorFor(i)),
		})
	}

	title := fmt.Sprintf("%s vs MPG", xLabel)
	if corr.Valid {
		title = fmt.Sprintf("%s vs MPG (r=%.2f, p=%.3g)", xLabel, corr.R, corr.P)
	}

	ch := chart.Chart{
		Title:      title,
		Width:      r.width,
		Height:     r.height,
		Background: chart.Style{Padding: chart.Box{Top: 14, Left: 16, Right: 12, Bottom: 28}},
		XAxis:      chart.XAxis{Name: xLabel},
		YAxis:      chart.YAxis{Name: "mpg"},
		Series:     series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, apperrors.RenderError("scatter", err)
	}
	return buf.Bytes(), nil
}

// placeholder returns a labeled PNG at the given size, served when the
// current selection has no cars to draw.
func placeholder(w, h int) ([]byte, error) {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	bg := color.RGBA{R: 248, G: 248, B: 248, A: 255}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, bg)
		}
	}

	const msg = "No cars match the current selection"
	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.RGBA{R: 107, G: 114, B: 128, A: 255}),
		Face: face,
		Dot:  fixed.P((w-len(msg)*face.Advance)/2, h/2),
	}
	d.DrawString(msg)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, apperrors.RenderError("placeholder", err)
	}
	return buf.Bytes(), nil
}
