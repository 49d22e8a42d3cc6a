package car

import "sort"

// Record is a single car observation. Records are immutable after load.
type Record struct {
	Name       string  `json:"name"`
	Origin     string  `json:"origin"`
	Cylinders  int     `json:"cylinders"`
	ModelYear  int     `json:"model_year"`
	Weight     float64 `json:"weight"`
	Horsepower float64 `json:"horsepower"`
	MPG        float64 `json:"mpg"`
}

// Dataset holds the complete record collection together with its cached
// domain values (distinct origins, distinct cylinder counts, year bounds).
// A Dataset is built once at load time and never mutated afterwards, so it
// can be shared across sessions without locking.
type Dataset struct {
	records   []Record
	origins   []string
	cylinders []int
	minYear   int
	maxYear   int
}

// NewDataset builds a Dataset from records and computes its domains.
func NewDataset(records []Record) *Dataset {
	ds := &Dataset{records: records}

	originSeen := make(map[string]bool)
	cylinderSeen := make(map[int]bool)
	for i, r := range records {
		if !originSeen[r.Origin] {
			originSeen[r.Origin] = true
			ds.origins = append(ds.origins, r.Origin)
		}
		if !cylinderSeen[r.Cylinders] {
			cylinderSeen[r.Cylinders] = true
			ds.cylinders = append(ds.cylinders, r.Cylinders)
		}
		if i == 0 || r.ModelYear < ds.minYear {
			ds.minYear = r.ModelYear
		}
		if i == 0 || r.ModelYear > ds.maxYear {
			ds.maxYear = r.ModelYear
		}
	}
	sort.Strings(ds.origins)
	sort.Ints(ds.cylinders)

	return ds
}

// Len returns the number of records in the dataset.
func (d *Dataset) Len() int { return len(d.records) }

// At returns the record at index i.
func (d *Dataset) At(i int) Record { return d.records[i] }

// Origins returns the sorted distinct origin values present in the dataset.
func (d *Dataset) Origins() []string {
	out := make([]string, len(d.origins))
	copy(out, d.origins)
	return out
}

// Cylinders returns the sorted distinct cylinder counts present in the dataset.
func (d *Dataset) Cylinders() []int {
	out := make([]int, len(d.cylinders))
	copy(out, d.cylinders)
	return out
}

// YearBounds returns the minimum and maximum model year in the dataset.
// Both are zero for an empty dataset.
func (d *Dataset) YearBounds() (min, max int) {
	return d.minYear, d.maxYear
}

// All returns a view covering every record.
func (d *Dataset) All() View {
	idx := make([]int, len(d.records))
	for i := range idx {
		idx[i] = i
	}
	return View{ds: d, idx: idx}
}

// View is a read-only subset of a Dataset, held as indices into it rather
// than copied records. Views are cheap to build and live for a single
// recomputation cycle.
type View struct {
	ds  *Dataset
	idx []int
}

// Len returns the number of records in the view.
func (v View) Len() int { return len(v.idx) }

// At returns the record at position i of the view, in dataset order.
func (v View) At(i int) Record { return v.ds.At(v.idx[i]) }

// Records materializes the view into a record slice. The slice is a copy
// and safe to hold past the view's lifetime.
func (v View) Records() []Record {
	out := make([]Record, len(v.idx))
	for i, ix := range v.idx {
		out[i] = v.ds.At(ix)
	}
	return out
}

// Column extracts one numeric field across the view.
func (v View) Column(field func(Record) float64) []float64 {
	out := make([]float64, len(v.idx))
	for i, ix := range v.idx {
		out[i] = field(v.ds.At(ix))
	}
	return out
}
