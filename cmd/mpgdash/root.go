package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for mpgdash.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mpgdash",
		Short: "Fuel efficiency dashboard for the Auto MPG dataset",
		Long: `mpgdash loads a CSV of car records and lets you filter them by origin,
cylinder count, and model year, then summarize, chart, and export the
selection.

The dataset is resolved from --dataset, a catalog entry (--name against
the YAML catalog), or the MPGDASH_DATASET environment variable, in that
order.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Dataset resolution flags shared by all commands
	cmd.PersistentFlags().StringP("dataset", "d", "", "Path to a dataset CSV (overrides the catalog)")
	cmd.PersistentFlags().StringP("catalog", "c", "", "Path to the dataset catalog YAML")
	cmd.PersistentFlags().StringP("name", "n", "", "Dataset name to resolve from the catalog")

	// Add subcommands
	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewSummaryCmd())
	cmd.AddCommand(NewExportCmd())
	cmd.AddCommand(NewReportCmd())
	cmd.AddCommand(NewViewsCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
