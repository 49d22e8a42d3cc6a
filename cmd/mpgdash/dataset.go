package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"mpgdash/adapters/csvdata"
	"mpgdash/app"
	"mpgdash/domain/car"
	"mpgdash/internal/catalog"
	"mpgdash/internal/config"
)

// resolveDataset decides which CSV to load and returns the catalog
// metadata describing it, zero when the dataset has no catalog entry.
// Priority: --dataset flag > catalog entry > configured default.
func resolveDataset(cmd *cobra.Command, cfg *config.Config) (string, catalog.Entry, error) {
	if path, _ := cmd.Flags().GetString("dataset"); path != "" {
		return path, catalog.Entry{}, nil
	}

	catalogPath, _ := cmd.Flags().GetString("catalog")
	if catalogPath == "" {
		catalogPath = cfg.Data.CatalogFile
	}
	name, _ := cmd.Flags().GetString("name")

	file, err := catalog.LoadFile(catalogPath)
	if err != nil {
		if errors.Is(err, catalog.ErrCatalogNotFound) {
			if name != "" {
				return "", catalog.Entry{}, fmt.Errorf("dataset %q requested but catalog %s does not exist", name, catalogPath)
			}
			return cfg.Data.DatasetFile, catalog.Entry{}, nil
		}
		return "", catalog.Entry{}, err
	}

	entry, err := file.Resolve(name)
	if err != nil {
		return "", catalog.Entry{}, err
	}
	return entry.Path, entry, nil
}

// newDashboard loads configuration, resolves the dataset, and builds the
// shared dashboard service without a saved-view store.
func newDashboard(cmd *cobra.Command) (*app.Dashboard, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	path, about, err := resolveDataset(cmd, cfg)
	if err != nil {
		return nil, err
	}
	dashboard := app.NewDashboard(csvdata.NewLoader(), nil, path)
	dashboard.SetAbout(about)
	return dashboard, nil
}

// addFilterFlags registers the selection flags shared by summary,
// export, and report.
func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().StringSlice("origin", nil, "Origins to include (default: all)")
	cmd.Flags().IntSlice("cylinders", nil, "Cylinder counts to include (default: all)")
	cmd.Flags().Int("from", 0, "First model year to include")
	cmd.Flags().Int("to", 0, "Last model year to include")
}

// filterFromFlags builds the selection from flags. Flags that are not
// set keep the default of selecting everything.
func filterFromFlags(cmd *cobra.Command, ds *car.Dataset) car.FilterState {
	state := car.DefaultFilter(ds)

	if origins, _ := cmd.Flags().GetStringSlice("origin"); len(origins) > 0 {
		title := cases.Title(language.English)
		state.Origins = make(map[string]bool, len(origins))
		for _, o := range origins {
			state.Origins[title.String(strings.ToLower(strings.TrimSpace(o)))] = true
		}
	}
	if cylinders, _ := cmd.Flags().GetIntSlice("cylinders"); len(cylinders) > 0 {
		state.Cylinders = make(map[int]bool, len(cylinders))
		for _, c := range cylinders {
			state.Cylinders[c] = true
		}
	}
	if from, _ := cmd.Flags().GetInt("from"); from > 0 {
		state.YearMin = from
	}
	if to, _ := cmd.Flags().GetInt("to"); to > 0 {
		state.YearMax = to
	}
	return state.Clamp(ds)
}

// snapshotFromFlags resolves the dataset and applies the flag selection.
func snapshotFromFlags(cmd *cobra.Command) (*app.Dashboard, app.Snapshot, error) {
	dashboard, err := newDashboard(cmd)
	if err != nil {
		return nil, app.Snapshot{}, err
	}

	ds, err := dashboard.Dataset()
	if err != nil {
		return nil, app.Snapshot{}, err
	}

	snap, err := dashboard.Snapshot(filterFromFlags(cmd, ds))
	if err != nil {
		return nil, app.Snapshot{}, err
	}
	return dashboard, snap, nil
}
