// Package app wires the dataset, filters, analysis, and renderers into
// one service consumed by both the web UI and the CLI.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"mpgdash/adapters/charts"
	"mpgdash/adapters/csvdata"
	"mpgdash/adapters/report"
	"mpgdash/adapters/xlsx"
	"mpgdash/domain/car"
	"mpgdash/internal/analysis"
	"mpgdash/internal/catalog"
	"mpgdash/internal/metrics"
	"mpgdash/ports"
)

// Scatter axis names accepted by ScatterChart.
const (
	AxisWeight     = "weight"
	AxisHorsepower = "horsepower"
)

// Snapshot bundles everything one dashboard request needs: the full
// dataset, the clamped filter, the filtered view, and its summary.
type Snapshot struct {
	Dataset *car.Dataset
	State   car.FilterState
	View    car.View
	Summary analysis.Summary
}

// Dashboard orchestrates the filter pipeline over a single dataset file.
type Dashboard struct {
	loaderPort ports.DatasetPort
	storePort  ports.ViewStorePort
	renderer   *charts.Renderer
	dataPath   string
	about      catalog.Entry
}

// NewDashboard creates a dashboard service. storePort may be nil when
// saved views are not available, such as read-only CLI commands.
func NewDashboard(loaderPort ports.DatasetPort, storePort ports.ViewStorePort, dataPath string) *Dashboard {
	return &Dashboard{
		loaderPort: loaderPort,
		storePort:  storePort,
		renderer:   charts.NewRenderer(),
		dataPath:   dataPath,
	}
}

// Dataset returns the loaded dataset.
func (d *Dashboard) Dataset() (*car.Dataset, error) {
	return d.loaderPort.Load(d.dataPath)
}

// Views returns the saved-view store, or nil when none is configured.
func (d *Dashboard) Views() ports.ViewStorePort {
	return d.storePort
}

// SetAbout attaches catalog metadata describing the dataset.
func (d *Dashboard) SetAbout(entry catalog.Entry) {
	d.about = entry
}

// About returns the catalog metadata for the dataset, zero when the
// dataset was loaded without a catalog.
func (d *Dashboard) About() catalog.Entry {
	return d.about
}

// Snapshot loads the dataset, clamps the filter to its bounds, and
// applies it.
func (d *Dashboard) Snapshot(state car.FilterState) (Snapshot, error) {
	ds, err := d.Dataset()
	if err != nil {
		return Snapshot{}, err
	}
	state = state.Clamp(ds)
	view := car.Apply(ds, state)
	metrics.ObserveFilter(view.Len())
	return Snapshot{
		Dataset: ds,
		State:   state,
		View:    view,
		Summary: analysis.Summarize(view),
	}, nil
}

// DefaultSnapshot applies the filter that selects the whole dataset.
func (d *Dashboard) DefaultSnapshot() (Snapshot, error) {
	ds, err := d.Dataset()
	if err != nil {
		return Snapshot{}, err
	}
	return d.Snapshot(car.DefaultFilter(ds))
}

// ExportCSV writes the filtered cars as CSV.
func (d *Dashboard) ExportCSV(w io.Writer, snap Snapshot) error {
	metrics.CountExport("csv")
	return csvdata.WriteCSV(w, snap.View)
}

// ExportXLSX writes the filtered cars and their summary as a workbook.
func (d *Dashboard) ExportXLSX(w io.Writer, snap Snapshot) error {
	metrics.CountExport("xlsx")
	return xlsx.Write(w, snap.View, snap.Summary)
}

// WriteReport writes the markdown report for the snapshot.
func (d *Dashboard) WriteReport(w io.Writer, title string, snap Snapshot, images []report.Image) error {
	metrics.CountExport("report")
	return report.NewWriter(w).Write(title, snap.State, snap.Summary, images)
}

// TrendChart renders the mpg-by-year line chart.
func (d *Dashboard) TrendChart(snap Snapshot) ([]byte, error) {
	metrics.CountRender("trend")
	return d.renderer.TrendLine(snap.Summary)
}

// CylinderChart renders the mpg-by-cylinders bar chart.
func (d *Dashboard) CylinderChart(snap Snapshot) ([]byte, error) {
	metrics.CountRender("cylinders")
	return d.renderer.CylinderBars(snap.Summary)
}

// BoxChart renders the per-origin mpg box plot.
func (d *Dashboard) BoxChart(snap Snapshot) ([]byte, error) {
	metrics.CountRender("origins")
	return d.renderer.OriginBox(snap.Summary)
}

// axisSelector maps an axis name to its column selector and label.
// Unknown names fall back to weight.
func axisSelector(axis string) (func(car.Record) float64, string) {
	if axis == AxisHorsepower {
		return func(r car.Record) float64 { return r.Horsepower }, "Horsepower"
	}
	return func(r car.Record) float64 { return r.Weight }, "Weight (lbs)"
}

// Correlation computes the Pearson correlation between the chosen axis
// and mpg over the snapshot's view.
func (d *Dashboard) Correlation(snap Snapshot, axis string) analysis.Correlation {
	x, _ := axisSelector(axis)
	return analysis.Correlate(snap.View, x, func(r car.Record) float64 { return r.MPG })
}

// ScatterChart renders the chosen axis against mpg, with correlation
// stats in the title.
func (d *Dashboard) ScatterChart(snap Snapshot, axis string) ([]byte, error) {
	metrics.CountRender("scatter")
	x, label := axisSelector(axis)
	corr := analysis.Correlate(snap.View, x, func(r car.Record) float64 { return r.MPG })
	return d.renderer.Scatter(snap.View, x, label, corr)
}

// RenderChartFiles renders every chart into dir concurrently and returns
// images suitable for embedding in a markdown report one level above dir.
func (d *Dashboard) RenderChartFiles(ctx context.Context, dir string, snap Snapshot) ([]report.Image, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create chart directory %s: %w", dir, err)
	}

	specs := []struct {
		file   string
		title  string
		render func() ([]byte, error)
	}{
		{"trend.png", "Average MPG by model year", func() ([]byte, error) { return d.TrendChart(snap) }},
		{"cylinders.png", "Average MPG by cylinders", func() ([]byte, error) { return d.CylinderChart(snap) }},
		{"origins.png", "MPG distribution by origin", func() ([]byte, error) { return d.BoxChart(snap) }},
		{"weight.png", "Weight vs MPG", func() ([]byte, error) { return d.ScatterChart(snap, AxisWeight) }},
		{"horsepower.png", "Horsepower vs MPG", func() ([]byte, error) { return d.ScatterChart(snap, AxisHorsepower) }},
	}

	g, _ := errgroup.WithContext(ctx)
	images := make([]report.Image, len(specs))
	for i, spec := range specs {
		i, spec := i, spec
		g.Go(func() error {
			data, err := spec.render()
			if err != nil {
				return err
			}
			path := filepath.Join(dir, spec.file)
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return fmt.Errorf("write chart %s: %w", path, err)
			}
			images[i] = report.Image{
				Title: spec.title,
				Path:  filepath.Join(filepath.Base(dir), spec.file),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return images, nil
}
