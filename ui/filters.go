package ui

import (
	"net/url"
	"strconv"

	"mpgdash/domain/car"
)

// Query parameter names shared by the filter form, chart URLs, and
// export links.
const (
	paramOrigin    = "origin"
	paramCylinder  = "cyl"
	paramYearFrom  = "from"
	paramYearTo    = "to"
	paramSubmitted = "f"
)

// filterFromValues rebuilds the filter selection from query parameters.
// A bare URL selects the whole dataset, and so does a URL that omits a
// parameter group. Submitted forms always carry the f marker, so
// unchecking every origin or cylinder yields an empty selection instead
// of falling back to the full set.
func filterFromValues(values url.Values, ds *car.Dataset) car.FilterState {
	submitted := values.Get(paramSubmitted) != ""

	origins := values[paramOrigin]
	if !submitted && len(origins) == 0 {
		origins = ds.Origins()
	}

	var cylinders []int
	for _, raw := range values[paramCylinder] {
		if v, err := strconv.Atoi(raw); err == nil {
			cylinders = append(cylinders, v)
		}
	}
	if !submitted && len(values[paramCylinder]) == 0 {
		cylinders = ds.Cylinders()
	}

	minYear, maxYear := ds.YearBounds()
	from := intOrDefault(values.Get(paramYearFrom), minYear)
	to := intOrDefault(values.Get(paramYearTo), maxYear)

	return car.NewFilterState(origins, cylinders, from, to).Clamp(ds)
}

// stateQuery encodes a filter selection as its canonical query string.
func stateQuery(state car.FilterState) url.Values {
	values := url.Values{}
	for _, origin := range state.SelectedOrigins() {
		values.Add(paramOrigin, origin)
	}
	for _, cyl := range state.SelectedCylinders() {
		values.Add(paramCylinder, strconv.Itoa(cyl))
	}
	values.Set(paramYearFrom, strconv.Itoa(state.YearMin))
	values.Set(paramYearTo, strconv.Itoa(state.YearMax))
	values.Set(paramSubmitted, "1")
	return values
}

func intOrDefault(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
