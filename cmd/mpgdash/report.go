package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// NewReportCmd creates the report command.
func NewReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Write a markdown report with charts for the filtered selection",
		Long: `Report renders every chart as PNG and writes a markdown report that
embeds them, all into the output directory.

The directory ends up with report.md and a charts/ subdirectory.

Examples:
  mpgdash report --output report/
  mpgdash report --origin europe --from 1975 --output europe75/`,
		RunE: runReportCmd,
	}

	addFilterFlags(cmd)
	cmd.Flags().StringP("output", "o", "report", "Output directory")
	cmd.Flags().StringP("title", "t", "Fuel Efficiency Report", "Report title")
	return cmd
}

// runReportCmd executes the report command.
func runReportCmd(cmd *cobra.Command, _ []string) error {
	output, _ := cmd.Flags().GetString("output")
	title, _ := cmd.Flags().GetString("title")

	dashboard, snap, err := snapshotFromFlags(cmd)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(output, 0o755); err != nil {
		return fmt.Errorf("create report directory %s: %w", output, err)
	}

	images, err := dashboard.RenderChartFiles(cmd.Context(), filepath.Join(output, "charts"), snap)
	if err != nil {
		return err
	}

	reportPath := filepath.Join(output, "report.md")
	f, err := os.Create(reportPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", reportPath, err)
	}
	defer f.Close()

	if err := dashboard.WriteReport(f, title, snap, images); err != nil {
		return err
	}

	color.Green("Wrote %s with %d charts (%d cars)", reportPath, len(images), snap.View.Len())
	return nil
}
