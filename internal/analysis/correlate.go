package analysis

import (
	"math"

	"mpgdash/domain/car"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Correlation describes the linear relationship between two numeric record
// fields across a view. Undefined (Valid=false) when the view has fewer than
// three records or either field has zero variance.
type Correlation struct {
	R     float64 `json:"r"`
	P     float64 `json:"p"`
	N     int     `json:"n"`
	Valid bool    `json:"valid"`
}

// Correlate computes the Pearson correlation between two fields of the view
// plus a two-sided p-value from the Student's-t transform of r.
func Correlate(view car.View, x, y func(car.Record) float64) Correlation {
	n := view.Len()
	if n < 3 {
		return Correlation{N: n}
	}

	xs := view.Column(x)
	ys := view.Column(y)

	r := stat.Correlation(xs, ys, nil)
	if math.IsNaN(r) {
		// Zero variance in either column.
		return Correlation{N: n}
	}

	// Perfectly collinear input makes the t statistic diverge; the
	// p-value is exactly zero there.
	p := 0.0
	if r2 := r * r; r2 < 1 {
		t := r * math.Sqrt(float64(n-2)/(1-r2))
		dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(n - 2)}
		p = 2 * dist.CDF(-math.Abs(t))
	}

	return Correlation{R: r, P: p, N: n, Valid: true}
}
