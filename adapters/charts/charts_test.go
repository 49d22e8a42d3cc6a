package charts

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	"mpgdash/domain/car"
	"mpgdash/internal/analysis"
	"mpgdash/internal/testkit"
)

func decodePNG(t *testing.T, data []byte, err error) image.Image {
	t.Helper()
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode rendered png: %v", err)
	}
	if img.Bounds().Dx() == 0 || img.Bounds().Dy() == 0 {
		t.Fatal("rendered image is empty")
	}
	return img
}

func fullSummary() analysis.Summary {
	return analysis.Summarize(testkit.FixtureDataset().All())
}

func emptySummary() analysis.Summary {
	ds := testkit.FixtureDataset()
	state := car.NewFilterState(nil, ds.Cylinders(), 1970, 1982)
	return analysis.Summarize(car.Apply(ds, state))
}

func TestTrendLine(t *testing.T) {
	r := NewRenderer()
	data, err := r.TrendLine(fullSummary())
	decodePNG(t, data, err)
	data, err = r.TrendLine(emptySummary())
	decodePNG(t, data, err)
}

func TestTrendLineSinglePoint(t *testing.T) {
	// One origin in one year exercises the two-value padding go-chart
	// needs to render a series.
	ds := testkit.FixtureDataset()
	state := car.NewFilterState([]string{"Usa"}, ds.Cylinders(), 1970, 1970)
	summary := analysis.Summarize(car.Apply(ds, state))
	if len(summary.Trend) != 1 {
		t.Fatalf("fixture gave %d trend points, want 1", len(summary.Trend))
	}
	data, err := NewRenderer().TrendLine(summary)
	decodePNG(t, data, err)
}

func TestCylinderBars(t *testing.T) {
	r := NewRenderer()
	data, err := r.CylinderBars(fullSummary())
	decodePNG(t, data, err)
	data, err = r.CylinderBars(emptySummary())
	decodePNG(t, data, err)
}

func TestOriginBox(t *testing.T) {
	r := NewRenderer()
	data, err := r.OriginBox(fullSummary())
	decodePNG(t, data, err)
	data, err = r.OriginBox(emptySummary())
	decodePNG(t, data, err)
}

func TestScatter(t *testing.T) {
	ds := testkit.FixtureDataset()
	view := ds.All()
	weight := func(rec car.Record) float64 { return rec.Weight }

	r := NewRenderer()
	data, err := r.Scatter(view, weight, "Weight", analysis.Correlate(view, weight, func(rec car.Record) float64 { return rec.MPG }))
	decodePNG(t, data, err)
	data, err = r.Scatter(car.View{}, weight, "Weight", analysis.Correlation{})
	decodePNG(t, data, err)
}
