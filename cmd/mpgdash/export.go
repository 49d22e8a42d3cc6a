package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// NewExportCmd creates the export command.
func NewExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the filtered selection as CSV or Excel",
		Long: `Export writes the filtered cars to a file, or CSV to stdout when no
output path is given.

Examples:
  # CSV to stdout
  mpgdash export --origin usa

  # Excel workbook with a summary sheet
  mpgdash export --format xlsx --output usa_cars.xlsx`,
		RunE: runExportCmd,
	}

	addFilterFlags(cmd)
	cmd.Flags().StringP("format", "f", "csv", "Export format: csv or xlsx")
	cmd.Flags().StringP("output", "o", "", "Output file path (default: stdout for csv)")
	return cmd
}

// runExportCmd executes the export command.
func runExportCmd(cmd *cobra.Command, _ []string) error {
	format, _ := cmd.Flags().GetString("format")
	output, _ := cmd.Flags().GetString("output")

	if format != "csv" && format != "xlsx" {
		return fmt.Errorf("unknown export format %q (want csv or xlsx)", format)
	}
	if format == "xlsx" && output == "" {
		return fmt.Errorf("xlsx export needs --output")
	}

	dashboard, snap, err := snapshotFromFlags(cmd)
	if err != nil {
		return err
	}

	if output == "" {
		return dashboard.ExportCSV(cmd.OutOrStdout(), snap)
	}

	if dir := filepath.Dir(output); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory %s: %w", dir, err)
		}
	}
	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("create %s: %w", output, err)
	}
	defer f.Close()

	if format == "xlsx" {
		err = dashboard.ExportXLSX(f, snap)
	} else {
		err = dashboard.ExportCSV(f, snap)
	}
	if err != nil {
		return err
	}

	color.Green("Exported %d cars to %s", snap.View.Len(), output)
	return nil
}
