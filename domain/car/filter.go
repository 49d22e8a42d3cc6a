package car

import "sort"

// FilterState is one session's current selection: which origins and cylinder
// counts to include, and an inclusive model-year range. The zero value
// selects nothing; use DefaultFilter for the unfiltered initial state.
type FilterState struct {
	Origins   map[string]bool
	Cylinders map[int]bool
	YearMin   int
	YearMax   int
}

// NewFilterState builds a state from explicit selections. Empty slices mean
// an empty selection, not "everything".
func NewFilterState(origins []string, cylinders []int, yearMin, yearMax int) FilterState {
	s := FilterState{
		Origins:   make(map[string]bool, len(origins)),
		Cylinders: make(map[int]bool, len(cylinders)),
		YearMin:   yearMin,
		YearMax:   yearMax,
	}
	for _, o := range origins {
		s.Origins[o] = true
	}
	for _, c := range cylinders {
		s.Cylinders[c] = true
	}
	return s
}

// DefaultFilter returns the initial state for ds: every origin, every
// cylinder value, and the full year range selected.
func DefaultFilter(ds *Dataset) FilterState {
	min, max := ds.YearBounds()
	return NewFilterState(ds.Origins(), ds.Cylinders(), min, max)
}

// SelectedOrigins returns the selected origins in sorted order.
func (s FilterState) SelectedOrigins() []string {
	out := make([]string, 0, len(s.Origins))
	for o := range s.Origins {
		out = append(out, o)
	}
	sort.Strings(out)
	return out
}

// SelectedCylinders returns the selected cylinder counts in sorted order.
func (s FilterState) SelectedCylinders() []int {
	out := make([]int, 0, len(s.Cylinders))
	for c := range s.Cylinders {
		out = append(out, c)
	}
	sort.Ints(out)
	return out
}

// Clamp returns a copy of s with the year range clamped to the bounds of ds.
// Selection sets are unchanged; unknown origins or cylinder values are
// harmless since membership predicates never match them.
func (s FilterState) Clamp(ds *Dataset) FilterState {
	min, max := ds.YearBounds()
	if s.YearMin < min {
		s.YearMin = min
	}
	if s.YearMax > max {
		s.YearMax = max
	}
	if s.YearMin > s.YearMax {
		s.YearMin, s.YearMax = s.YearMax, s.YearMin
	}
	return s
}

// Apply returns the subset of ds matching state. A record is included iff
// its origin is selected, its cylinder count is selected, and its model year
// falls inside the inclusive year range. An empty origin or cylinder
// selection therefore yields an empty view.
func Apply(ds *Dataset, state FilterState) View {
	idx := make([]int, 0, ds.Len())
	for i := 0; i < ds.Len(); i++ {
		r := ds.At(i)
		if !state.Origins[r.Origin] {
			continue
		}
		if !state.Cylinders[r.Cylinders] {
			continue
		}
		if r.ModelYear < state.YearMin || r.ModelYear > state.YearMax {
			continue
		}
		idx = append(idx, i)
	}
	return View{ds: ds, idx: idx}
}
