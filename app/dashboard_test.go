package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mpgdash/domain/car"
	"mpgdash/internal/testkit"
)

// fixtureLoader serves the in-memory fixture regardless of path.
type fixtureLoader struct {
	ds *car.Dataset
}

func (l *fixtureLoader) Load(string) (*car.Dataset, error) {
	return l.ds, nil
}

func newTestDashboard() *Dashboard {
	return NewDashboard(&fixtureLoader{ds: testkit.FixtureDataset()}, nil, "fixture.csv")
}

func TestDefaultSnapshotSelectsEverything(t *testing.T) {
	d := newTestDashboard()

	snap, err := d.DefaultSnapshot()
	if err != nil {
		t.Fatalf("DefaultSnapshot: %v", err)
	}
	if snap.View.Len() != snap.Dataset.Len() {
		t.Errorf("default snapshot shows %d of %d cars", snap.View.Len(), snap.Dataset.Len())
	}
	if snap.Summary.TotalCount != snap.Dataset.Len() {
		t.Errorf("summary count = %d", snap.Summary.TotalCount)
	}
}

func TestSnapshotClampsYears(t *testing.T) {
	d := newTestDashboard()
	ds := testkit.FixtureDataset()

	// Years outside the dataset clamp to its bounds.
	state := car.NewFilterState(ds.Origins(), ds.Cylinders(), 1900, 2100)
	snap, err := d.Snapshot(state)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	minYear, maxYear := ds.YearBounds()
	if snap.State.YearMin != minYear || snap.State.YearMax != maxYear {
		t.Errorf("clamped range = %d-%d, want %d-%d", snap.State.YearMin, snap.State.YearMax, minYear, maxYear)
	}
	if snap.View.Len() != ds.Len() {
		t.Errorf("view has %d cars, want all %d", snap.View.Len(), ds.Len())
	}
}

func TestExportCSVWritesView(t *testing.T) {
	d := newTestDashboard()
	snap, err := d.DefaultSnapshot()
	if err != nil {
		t.Fatalf("DefaultSnapshot: %v", err)
	}

	var buf bytes.Buffer
	if err := d.ExportCSV(&buf, snap); err != nil {
		t.Fatalf("ExportCSV: %v", err)
	}
	lines := strings.Count(buf.String(), "\n")
	if lines != snap.View.Len()+1 {
		t.Errorf("export has %d lines, want %d", lines, snap.View.Len()+1)
	}
}

func TestRenderChartFiles(t *testing.T) {
	d := newTestDashboard()
	snap, err := d.DefaultSnapshot()
	if err != nil {
		t.Fatalf("DefaultSnapshot: %v", err)
	}

	dir := filepath.Join(t.TempDir(), "charts")
	images, err := d.RenderChartFiles(context.Background(), dir, snap)
	if err != nil {
		t.Fatalf("RenderChartFiles: %v", err)
	}
	if len(images) != 5 {
		t.Fatalf("got %d images, want 5", len(images))
	}
	for _, img := range images {
		if !strings.HasPrefix(img.Path, "charts/") {
			t.Errorf("image path %q should be relative to the report", img.Path)
		}
		data, err := os.ReadFile(filepath.Join(dir, filepath.Base(img.Path)))
		if err != nil {
			t.Errorf("chart file missing: %v", err)
			continue
		}
		if len(data) == 0 {
			t.Errorf("chart %s is empty", img.Path)
		}
	}
}
