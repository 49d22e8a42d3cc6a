// Package testkit provides deterministic fixtures shared by package tests:
// a small in-memory car dataset covering every origin, cylinder count, and
// model year the filters care about, plus helpers for writing raw CSV
// fixtures to disk.
package testkit

import (
	"os"
	"path/filepath"
	"testing"

	"mpgdash/domain/car"
)

// FixtureRecords returns the post-normalization fixture set: capitalized
// origins and four-digit model years, the shape records have after load.
func FixtureRecords() []car.Record {
	return []car.Record{
		{Name: "chevrolet chevelle malibu", Origin: "Usa", Cylinders: 8, ModelYear: 1970, Weight: 3504, Horsepower: 130, MPG: 18},
		{Name: "ford torino", Origin: "Usa", Cylinders: 8, ModelYear: 1970, Weight: 3449, Horsepower: 140, MPG: 17},
		{Name: "toyota corona mark ii", Origin: "Japan", Cylinders: 4, ModelYear: 1970, Weight: 2372, Horsepower: 95, MPG: 24},
		{Name: "volkswagen 1131 deluxe sedan", Origin: "Europe", Cylinders: 4, ModelYear: 1970, Weight: 1835, Horsepower: 46, MPG: 26},
		{Name: "saab 99e", Origin: "Europe", Cylinders: 4, ModelYear: 1971, Weight: 2130, Horsepower: 87, MPG: 25},
		{Name: "mazda rx2 coupe", Origin: "Japan", Cylinders: 3, ModelYear: 1972, Weight: 2330, Horsepower: 97, MPG: 19},
		{Name: "plymouth duster", Origin: "Usa", Cylinders: 6, ModelYear: 1974, Weight: 3102, Horsepower: 95, MPG: 20},
		{Name: "datsun 710", Origin: "Japan", Cylinders: 4, ModelYear: 1974, Weight: 2003, Horsepower: 61, MPG: 32},
		{Name: "mercedes-benz 240d", Origin: "Europe", Cylinders: 4, ModelYear: 1976, Weight: 3193, Horsepower: 67, MPG: 30},
		{Name: "honda civic cvcc", Origin: "Japan", Cylinders: 4, ModelYear: 1977, Weight: 1825, Horsepower: 53, MPG: 36.1},
		{Name: "volvo 264gl", Origin: "Europe", Cylinders: 6, ModelYear: 1978, Weight: 3140, Horsepower: 125, MPG: 17},
		{Name: "audi 5000", Origin: "Europe", Cylinders: 5, ModelYear: 1978, Weight: 2830, Horsepower: 103, MPG: 20.3},
		{Name: "pontiac phoenix", Origin: "Usa", Cylinders: 4, ModelYear: 1980, Weight: 2556, Horsepower: 90, MPG: 33.5},
		{Name: "toyota corolla", Origin: "Japan", Cylinders: 4, ModelYear: 1982, Weight: 2245, Horsepower: 75, MPG: 34},
		{Name: "chevrolet camaro", Origin: "Usa", Cylinders: 4, ModelYear: 1982, Weight: 2950, Horsepower: 90, MPG: 27},
	}
}

// FixtureDataset returns a dataset built from FixtureRecords.
func FixtureDataset() *car.Dataset {
	return car.NewDataset(FixtureRecords())
}

// RawCSV is a raw dataset file the loader can ingest: lowercase origins,
// two-digit model years, and two rows that must be dropped (one with a
// missing horsepower field, one with garbage in a numeric column).
const RawCSV = `name,origin,cylinders,model_year,weight,horsepower,mpg
chevrolet chevelle malibu,usa,8,70,3504,130,18
buick skylark 320,usa,8,70,3693,165,15
toyota corona mark ii,japan,4,70,2372,95,24
volkswagen 1131 deluxe sedan,europe,4,70,1835,46,26
ford pinto,usa,4,71,2046,,25
saab 99e,europe,4,71,2130,87,25
datsun 710,japan,4,74,2003,61,32
bad row,usa,4,74,not-a-number,90,21
honda civic cvcc,japan,4,77,1825,53,36.1
volvo 264gl,europe,6,78,3140,125,17
chevrolet camaro,usa,4,82,2950,90,27
`

// RawCSVValidRows is the number of rows of RawCSV that survive loading.
const RawCSVValidRows = 9

// WriteFile writes content into a fresh temp directory and returns the file
// path. The file is cleaned up with the test.
func WriteFile(t testing.TB, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture %s: %v", name, err)
	}
	return path
}
