// Package csvdata reads car datasets from CSV files and writes filtered
// views back out in the same schema, so an exported file loads again
// unchanged.
package csvdata

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"mpgdash/domain/car"
	apperrors "mpgdash/internal/errors"
)

// Columns is the dataset schema in file order, shared by the loader and
// the CSV exporter.
var Columns = []string{"name", "origin", "cylinders", "model_year", "weight", "horsepower", "mpg"}

// Loader reads car datasets from disk. Parsed datasets are cached for the
// lifetime of the Loader, keyed by path, so every request after the first
// serves from memory.
type Loader struct {
	mu    sync.Mutex
	cache map[string]*car.Dataset
}

// NewLoader creates a loader with an empty cache.
func NewLoader() *Loader {
	return &Loader{cache: make(map[string]*car.Dataset)}
}

// Load parses the CSV file at path into a Dataset. Rows with blank or
// unparseable fields are dropped. Repeated calls for the same path return
// the cached dataset.
func (l *Loader) Load(path string) (*car.Dataset, error) {
	l.mu.Lock()
	ds, ok := l.cache[path]
	l.mu.Unlock()
	if ok {
		return ds, nil
	}

	ds, err := l.read(path)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	l.cache[path] = ds
	l.mu.Unlock()
	return ds, nil
}

func (l *Loader) read(path string) (*car.Dataset, error) {
	startTime := time.Now()

	file, err := os.Open(path)
	if err != nil {
		return nil, apperrors.LoadError(fmt.Sprintf("open dataset %s", path), err)
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, apperrors.LoadError(fmt.Sprintf("parse dataset %s", path), err)
	}
	if len(rows) < 2 {
		return nil, apperrors.LoadError(fmt.Sprintf("dataset %s needs a header row and at least one data row", path), nil)
	}

	col := make(map[string]int, len(rows[0]))
	for i, header := range rows[0] {
		col[strings.ToLower(strings.TrimSpace(header))] = i
	}
	for _, name := range Columns {
		if _, ok := col[name]; !ok {
			return nil, apperrors.LoadError(fmt.Sprintf("dataset %s is missing column %q", path, name), nil)
		}
	}

	title := cases.Title(language.English)
	records := make([]car.Record, 0, len(rows)-1)
	dropped := 0
	for _, row := range rows[1:] {
		rec, ok := parseRow(row, col, title)
		if !ok {
			dropped++
			continue
		}
		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, apperrors.LoadError(fmt.Sprintf("dataset %s has no usable rows", path), nil)
	}

	loadTime := time.Since(startTime)
	log.Printf("[Dataset] Loaded %d cars from %s in %.2fms (%d incomplete rows dropped)",
		len(records), path, float64(loadTime.Nanoseconds())/1e6, dropped)

	return car.NewDataset(records), nil
}

// parseRow converts one CSV row into a Record. Origins are normalized to
// title case and two-digit model years shifted into the 1900s, so "usa"
// in year 70 comes out as "Usa" in 1970.
func parseRow(row []string, col map[string]int, title cases.Caser) (car.Record, bool) {
	field := func(name string) string { return strings.TrimSpace(row[col[name]]) }

	name := field("name")
	origin := field("origin")
	if name == "" || origin == "" {
		return car.Record{}, false
	}

	cylinders, errCyl := strconv.Atoi(field("cylinders"))
	year, errYear := strconv.Atoi(field("model_year"))
	weight, errWeight := strconv.ParseFloat(field("weight"), 64)
	horsepower, errHP := strconv.ParseFloat(field("horsepower"), 64)
	mpg, errMPG := strconv.ParseFloat(field("mpg"), 64)
	if errCyl != nil || errYear != nil || errWeight != nil || errHP != nil || errMPG != nil {
		return car.Record{}, false
	}

	if year < 100 {
		year += 1900
	}

	return car.Record{
		Name:       name,
		Origin:     title.String(strings.ToLower(origin)),
		Cylinders:  cylinders,
		ModelYear:  year,
		Weight:     weight,
		Horsepower: horsepower,
		MPG:        mpg,
	}, true
}
