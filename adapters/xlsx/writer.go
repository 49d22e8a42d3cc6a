// Package xlsx exports the filtered view as an Excel workbook with a
// Data sheet for the cars and a Summary sheet for the headline numbers.
package xlsx

import (
	"io"

	"github.com/xuri/excelize/v2"

	"mpgdash/adapters/csvdata"
	"mpgdash/domain/car"
	"mpgdash/internal/analysis"
	apperrors "mpgdash/internal/errors"
)

const (
	dataSheet    = "Data"
	summarySheet = "Summary"
)

// Write writes the workbook to w.
func Write(w io.Writer, view car.View, summary analysis.Summary) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", dataSheet); err != nil {
		return apperrors.ExportError("xlsx", err)
	}
	if err := writeData(f, view); err != nil {
		return err
	}
	if err := writeSummary(f, summary); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return apperrors.ExportError("xlsx", err)
	}
	return nil
}

func writeData(f *excelize.File, view car.View) error {
	for i, header := range csvdata.Columns {
		if err := setCell(f, dataSheet, i+1, 1, header); err != nil {
			return err
		}
	}
	for i := 0; i < view.Len(); i++ {
		r := view.At(i)
		values := []interface{}{r.Name, r.Origin, r.Cylinders, r.ModelYear, r.Weight, r.Horsepower, r.MPG}
		for j, v := range values {
			if err := setCell(f, dataSheet, j+1, i+2, v); err != nil {
				return err
			}
		}
	}
	if err := f.SetColWidth(dataSheet, "A", "A", 30); err != nil {
		return apperrors.ExportError("xlsx", err)
	}
	return nil
}

func writeSummary(f *excelize.File, summary analysis.Summary) error {
	if _, err := f.NewSheet(summarySheet); err != nil {
		return apperrors.ExportError("xlsx", err)
	}

	rows := [][]interface{}{
		{"cars", summary.TotalCount},
		{"average mpg", metricCell(summary.AverageMPG)},
		{"best mpg", metricCell(summary.BestMPG)},
		{"average horsepower", metricCell(summary.AverageHorsepower)},
		{},
		{"cylinders", "average mpg", "cars"},
	}
	for _, g := range summary.CylinderAverages {
		rows = append(rows, []interface{}{g.Cylinders, g.AvgMPG, g.Count})
	}

	for i, row := range rows {
		for j, v := range row {
			if err := setCell(f, summarySheet, j+1, i+1, v); err != nil {
				return err
			}
		}
	}
	if err := f.SetColWidth(summarySheet, "A", "B", 20); err != nil {
		return apperrors.ExportError("xlsx", err)
	}
	return nil
}

// metricCell leaves the placeholder for metrics with no data, so empty
// selections export without NaN values.
func metricCell(m analysis.Metric) interface{} {
	if !m.Valid {
		return m.Format(1)
	}
	return m.Value
}

func setCell(f *excelize.File, sheet string, col, row int, value interface{}) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return apperrors.ExportError("xlsx", err)
	}
	if err := f.SetCellValue(sheet, cell, value); err != nil {
		return apperrors.ExportError("xlsx", err)
	}
	return nil
}
