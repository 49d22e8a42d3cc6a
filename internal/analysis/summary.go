package analysis

import (
	"sort"
	"strconv"

	"mpgdash/domain/car"

	"github.com/montanaflynn/stats"
)

// Metric is a scalar statistic that may be undefined. Statistics over an
// empty view carry Valid=false instead of NaN, so an empty filter result
// degrades to placeholders rather than propagating NaN into the UI.
type Metric struct {
	Value float64 `json:"value"`
	Valid bool    `json:"valid"`
}

// Format renders the metric with the given number of decimals, or an em dash
// when the metric is undefined.
func (m Metric) Format(decimals int) string {
	if !m.Valid {
		return "—"
	}
	return strconv.FormatFloat(m.Value, 'f', decimals, 64)
}

// TrendPoint is the mean mpg of one (model year, origin) group.
type TrendPoint struct {
	Year   int     `json:"year"`
	Origin string  `json:"origin"`
	AvgMPG float64 `json:"avg_mpg"`
	Count  int     `json:"count"`
}

// CylinderAverage is the mean mpg of one cylinder-count group.
type CylinderAverage struct {
	Cylinders int     `json:"cylinders"`
	AvgMPG    float64 `json:"avg_mpg"`
	Count     int     `json:"count"`
}

// OriginDistribution carries every mpg value of one origin group, in record
// order, as source data for distribution displays.
type OriginDistribution struct {
	Origin string    `json:"origin"`
	MPGs   []float64 `json:"mpgs"`
}

// Summary bundles the derived statistics of one filtered view. It has no
// identity of its own: it is recomputed from scratch on every filter change.
type Summary struct {
	TotalCount        int                  `json:"total_count"`
	AverageMPG        Metric               `json:"average_mpg"`
	BestMPG           Metric               `json:"best_mpg"`
	AverageHorsepower Metric               `json:"average_horsepower"`
	Trend             []TrendPoint         `json:"trend"`
	CylinderAverages  []CylinderAverage    `json:"cylinder_averages"`
	Distributions     []OriginDistribution `json:"distributions"`
}

// Summarize computes all summary statistics over the view. Scalar metrics
// are undefined (Valid=false) when the view is empty; grouped slices are
// empty. The stats library reports an error for empty input, which maps
// directly onto the Valid flag.
func Summarize(view car.View) Summary {
	s := Summary{TotalCount: view.Len()}

	mpgs := view.Column(func(r car.Record) float64 { return r.MPG })
	horsepowers := view.Column(func(r car.Record) float64 { return r.Horsepower })

	s.AverageMPG = metricOf(stats.Mean(mpgs))
	s.BestMPG = metricOf(stats.Max(mpgs))
	s.AverageHorsepower = metricOf(stats.Mean(horsepowers))

	s.Trend = trendByYearAndOrigin(view)
	s.CylinderAverages = averageMPGByCylinders(view)
	s.Distributions = mpgDistributionByOrigin(view)

	return s
}

func metricOf(value float64, err error) Metric {
	if err != nil {
		return Metric{}
	}
	return Metric{Value: value, Valid: true}
}

type trendKey struct {
	year   int
	origin string
}

// trendByYearAndOrigin groups by (model year, origin) and averages mpg per
// group. Groups are ordered year ascending, then origin ascending, so the
// output is deterministic and line series come out pre-sorted.
func trendByYearAndOrigin(view car.View) []TrendPoint {
	sums := make(map[trendKey]float64)
	counts := make(map[trendKey]int)
	for i := 0; i < view.Len(); i++ {
		r := view.At(i)
		k := trendKey{year: r.ModelYear, origin: r.Origin}
		sums[k] += r.MPG
		counts[k]++
	}

	points := make([]TrendPoint, 0, len(sums))
	for k, sum := range sums {
		points = append(points, TrendPoint{
			Year:   k.year,
			Origin: k.origin,
			AvgMPG: sum / float64(counts[k]),
			Count:  counts[k],
		})
	}
	sort.Slice(points, func(i, j int) bool {
		if points[i].Year != points[j].Year {
			return points[i].Year < points[j].Year
		}
		return points[i].Origin < points[j].Origin
	})
	return points
}

func averageMPGByCylinders(view car.View) []CylinderAverage {
	sums := make(map[int]float64)
	counts := make(map[int]int)
	for i := 0; i < view.Len(); i++ {
		r := view.At(i)
		sums[r.Cylinders] += r.MPG
		counts[r.Cylinders]++
	}

	averages := make([]CylinderAverage, 0, len(sums))
	for cyl, sum := range sums {
		averages = append(averages, CylinderAverage{
			Cylinders: cyl,
			AvgMPG:    sum / float64(counts[cyl]),
			Count:     counts[cyl],
		})
	}
	sort.Slice(averages, func(i, j int) bool {
		return averages[i].Cylinders < averages[j].Cylinders
	})
	return averages
}

func mpgDistributionByOrigin(view car.View) []OriginDistribution {
	values := make(map[string][]float64)
	for i := 0; i < view.Len(); i++ {
		r := view.At(i)
		values[r.Origin] = append(values[r.Origin], r.MPG)
	}

	origins := make([]string, 0, len(values))
	for origin := range values {
		origins = append(origins, origin)
	}
	sort.Strings(origins)

	dists := make([]OriginDistribution, 0, len(origins))
	for _, origin := range origins {
		dists = append(dists, OriginDistribution{Origin: origin, MPGs: values[origin]})
	}
	return dists
}
