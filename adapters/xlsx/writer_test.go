package xlsx

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"

	"mpgdash/domain/car"
	"mpgdash/internal/analysis"
	"mpgdash/internal/testkit"
)

func TestWriteWorkbook(t *testing.T) {
	ds := testkit.FixtureDataset()
	view := ds.All()
	summary := analysis.Summarize(view)

	var buf bytes.Buffer
	if err := Write(&buf, view, summary); err != nil {
		t.Fatalf("Write: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(dataSheet)
	if err != nil {
		t.Fatalf("read %s sheet: %v", dataSheet, err)
	}
	if len(rows) != view.Len()+1 {
		t.Fatalf("Data sheet has %d rows, want %d", len(rows), view.Len()+1)
	}
	if rows[0][0] != "name" || rows[0][6] != "mpg" {
		t.Errorf("header row = %v", rows[0])
	}
	if rows[1][0] != "chevrolet chevelle malibu" {
		t.Errorf("first data row = %v", rows[1])
	}

	srows, err := f.GetRows(summarySheet)
	if err != nil {
		t.Fatalf("read %s sheet: %v", summarySheet, err)
	}
	if len(srows) == 0 || srows[0][0] != "cars" {
		t.Errorf("Summary sheet starts with %v", srows)
	}
}

func TestWriteEmptyView(t *testing.T) {
	ds := testkit.FixtureDataset()
	state := car.NewFilterState(nil, ds.Cylinders(), 1970, 1982)
	view := car.Apply(ds, state)
	summary := analysis.Summarize(view)

	var buf bytes.Buffer
	if err := Write(&buf, view, summary); err != nil {
		t.Fatalf("Write: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(dataSheet)
	if err != nil {
		t.Fatalf("read %s sheet: %v", dataSheet, err)
	}
	if len(rows) != 1 {
		t.Errorf("empty view wrote %d data rows, want header only", len(rows))
	}

	// Metrics on an empty selection export as placeholders.
	value, err := f.GetCellValue(summarySheet, "B2")
	if err != nil {
		t.Fatalf("read summary cell: %v", err)
	}
	if value != "—" {
		t.Errorf("average mpg cell = %q, want placeholder", value)
	}
}
