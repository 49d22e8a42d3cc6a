package csvdata

import (
	"encoding/csv"
	"io"
	"strconv"

	"mpgdash/domain/car"
	apperrors "mpgdash/internal/errors"
)

// WriteCSV writes the view to w in the dataset schema. Output written
// here round-trips through Loader without change.
func WriteCSV(w io.Writer, view car.View) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return apperrors.ExportError("csv", err)
	}
	for i := 0; i < view.Len(); i++ {
		r := view.At(i)
		row := []string{
			r.Name,
			r.Origin,
			strconv.Itoa(r.Cylinders),
			strconv.Itoa(r.ModelYear),
			formatFloat(r.Weight),
			formatFloat(r.Horsepower),
			formatFloat(r.MPG),
		}
		if err := cw.Write(row); err != nil {
			return apperrors.ExportError("csv", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return apperrors.ExportError("csv", err)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
