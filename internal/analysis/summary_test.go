package analysis

import (
	"math"
	"testing"

	"mpgdash/domain/car"
	"mpgdash/internal/testkit"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestSummarizeMetrics(t *testing.T) {
	ds := testkit.FixtureDataset()

	// Japanese 4-cylinder cars across the full year range.
	state := car.NewFilterState([]string{"Japan"}, []int{4}, 1970, 1982)
	summary := Summarize(car.Apply(ds, state))

	if summary.TotalCount != 4 {
		t.Fatalf("TotalCount = %d, want 4", summary.TotalCount)
	}
	if !summary.AverageMPG.Valid || !almostEqual(summary.AverageMPG.Value, 31.525) {
		t.Errorf("AverageMPG = %+v, want 31.525", summary.AverageMPG)
	}
	if !summary.BestMPG.Valid || !almostEqual(summary.BestMPG.Value, 36.1) {
		t.Errorf("BestMPG = %+v, want 36.1", summary.BestMPG)
	}
	if !summary.AverageHorsepower.Valid || !almostEqual(summary.AverageHorsepower.Value, 71) {
		t.Errorf("AverageHorsepower = %+v, want 71", summary.AverageHorsepower)
	}
}

func TestSummarizeEmptyView(t *testing.T) {
	ds := testkit.FixtureDataset()

	// No cylinders selected: an empty view, not an error.
	state := car.NewFilterState(ds.Origins(), nil, 1970, 1982)
	summary := Summarize(car.Apply(ds, state))

	if summary.TotalCount != 0 {
		t.Fatalf("TotalCount = %d, want 0", summary.TotalCount)
	}
	for name, m := range map[string]Metric{
		"AverageMPG":        summary.AverageMPG,
		"BestMPG":           summary.BestMPG,
		"AverageHorsepower": summary.AverageHorsepower,
	} {
		if m.Valid {
			t.Errorf("%s.Valid = true on empty view", name)
		}
		if math.IsNaN(m.Value) {
			t.Errorf("%s.Value is NaN; empty input must not produce NaN", name)
		}
		if got := m.Format(1); got != "—" {
			t.Errorf("%s.Format(1) = %q, want em dash placeholder", name, got)
		}
	}
	if len(summary.Trend) != 0 || len(summary.CylinderAverages) != 0 || len(summary.Distributions) != 0 {
		t.Error("grouped aggregates should be empty for an empty view")
	}
}

func TestMetricFormat(t *testing.T) {
	m := Metric{Value: 31.525, Valid: true}
	if got := m.Format(1); got != "31.5" {
		t.Errorf("Format(1) = %q, want 31.5", got)
	}
	if got := m.Format(0); got != "32" {
		t.Errorf("Format(0) = %q, want 32", got)
	}
}

func TestTrendGroupingAndOrder(t *testing.T) {
	ds := testkit.FixtureDataset()
	summary := Summarize(ds.All())

	if len(summary.Trend) != 13 {
		t.Fatalf("got %d trend points, want 13", len(summary.Trend))
	}

	// Sorted by year ascending, then origin ascending.
	for i := 1; i < len(summary.Trend); i++ {
		prev, cur := summary.Trend[i-1], summary.Trend[i]
		if prev.Year > cur.Year || (prev.Year == cur.Year && prev.Origin >= cur.Origin) {
			t.Errorf("trend not ordered at %d: (%d,%s) then (%d,%s)",
				i, prev.Year, prev.Origin, cur.Year, cur.Origin)
		}
	}

	first := summary.Trend[0]
	if first.Year != 1970 || first.Origin != "Europe" || !almostEqual(first.AvgMPG, 26) {
		t.Errorf("first trend point = %+v, want 1970/Europe/26", first)
	}

	// Two USA cars in 1970 average together.
	for _, p := range summary.Trend {
		if p.Year == 1970 && p.Origin == "Usa" {
			if !almostEqual(p.AvgMPG, 17.5) || p.Count != 2 {
				t.Errorf("1970/Usa = %+v, want avg 17.5 over 2 cars", p)
			}
		}
		if p.Year == 1978 && p.Origin == "Europe" {
			if !almostEqual(p.AvgMPG, 18.65) || p.Count != 2 {
				t.Errorf("1978/Europe = %+v, want avg 18.65 over 2 cars", p)
			}
		}
	}
}

func TestCylinderAverages(t *testing.T) {
	ds := testkit.FixtureDataset()
	summary := Summarize(ds.All())

	wantOrder := []int{3, 4, 5, 6, 8}
	if len(summary.CylinderAverages) != len(wantOrder) {
		t.Fatalf("got %d cylinder groups, want %d", len(summary.CylinderAverages), len(wantOrder))
	}
	for i, want := range wantOrder {
		if summary.CylinderAverages[i].Cylinders != want {
			t.Errorf("group %d has cylinders %d, want %d", i, summary.CylinderAverages[i].Cylinders, want)
		}
	}

	for _, g := range summary.CylinderAverages {
		switch g.Cylinders {
		case 8:
			if !almostEqual(g.AvgMPG, 17.5) || g.Count != 2 {
				t.Errorf("8-cylinder group = %+v, want avg 17.5 over 2", g)
			}
		case 6:
			if !almostEqual(g.AvgMPG, 18.5) || g.Count != 2 {
				t.Errorf("6-cylinder group = %+v, want avg 18.5 over 2", g)
			}
		}
	}
}

func TestDistributionsByOrigin(t *testing.T) {
	ds := testkit.FixtureDataset()
	summary := Summarize(ds.All())

	if len(summary.Distributions) != 3 {
		t.Fatalf("got %d distributions, want 3", len(summary.Distributions))
	}
	wantOrigins := []string{"Europe", "Japan", "Usa"}
	total := 0
	for i, d := range summary.Distributions {
		if d.Origin != wantOrigins[i] {
			t.Errorf("distribution %d is %q, want %q", i, d.Origin, wantOrigins[i])
		}
		total += len(d.MPGs)
	}
	if total != ds.Len() {
		t.Errorf("distributions carry %d values, want every record's mpg (%d)", total, ds.Len())
	}

	// Values stay in record order within a group.
	japan := summary.Distributions[1]
	want := []float64{24, 19, 32, 36.1, 34}
	if len(japan.MPGs) != len(want) {
		t.Fatalf("japan group has %d values, want %d", len(japan.MPGs), len(want))
	}
	for i := range want {
		if !almostEqual(japan.MPGs[i], want[i]) {
			t.Errorf("japan mpg[%d] = %v, want %v", i, japan.MPGs[i], want[i])
		}
	}
}
