// Package main provides the mpgdash command line interface.
//
// mpgdash explores the classic Auto MPG dataset: filter cars by origin,
// cylinders, and model year, summarize their fuel efficiency, and export
// the result as CSV, Excel, or a markdown report with charts.
//
// Usage:
//
//	mpgdash serve
//	mpgdash summary --origin Japan --cylinders 4
//	mpgdash export --format xlsx --output cars.xlsx
//	mpgdash report --output report/
//	mpgdash views list
//
// See --help for all available options.
package main

// main is the entry point for mpgdash.
func main() {
	Execute()
}
