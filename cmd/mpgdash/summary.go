package main

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"mpgdash/domain/car"
)

// NewSummaryCmd creates the summary command.
func NewSummaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Summarize the filtered selection in the terminal",
		Long: `Summary prints headline metrics, the mpg trend by model year, and the
per-cylinder averages for the filtered selection.

Examples:
  # Whole dataset
  mpgdash summary

  # Japanese 4-cylinder cars of the late seventies
  mpgdash summary --origin japan --cylinders 4 --from 1976 --to 1979`,
		RunE: runSummaryCmd,
	}

	addFilterFlags(cmd)
	return cmd
}

// runSummaryCmd executes the summary command.
func runSummaryCmd(cmd *cobra.Command, _ []string) error {
	_, snap, err := snapshotFromFlags(cmd)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	heading := color.New(color.FgCyan, color.Bold)
	label := color.New(color.Bold)

	heading.Fprintln(w, "=== Fuel Efficiency Summary ===")
	fmt.Fprintf(w, "Selection: origins %s; cylinders %s; years %d-%d\n\n",
		joinOrigins(snap.State), joinCylinders(snap.State), snap.State.YearMin, snap.State.YearMax)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "  Cars shown\t%d of %d\n", snap.View.Len(), snap.Dataset.Len())
	fmt.Fprintf(tw, "  Average MPG\t%s\n", snap.Summary.AverageMPG.Format(1))
	fmt.Fprintf(tw, "  Best MPG\t%s\n", snap.Summary.BestMPG.Format(1))
	fmt.Fprintf(tw, "  Average horsepower\t%s\n", snap.Summary.AverageHorsepower.Format(0))
	tw.Flush()

	if snap.View.Len() == 0 {
		color.New(color.FgYellow).Fprintln(w, "\nThe current selection matches no cars.")
		return nil
	}

	fmt.Fprintln(w)
	label.Fprintln(w, "Average MPG by model year")
	tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "  YEAR\tORIGIN\tAVG MPG\tCARS")
	for _, p := range snap.Summary.Trend {
		fmt.Fprintf(tw, "  %d\t%s\t%.1f\t%d\n", p.Year, p.Origin, p.AvgMPG, p.Count)
	}
	tw.Flush()

	fmt.Fprintln(w)
	label.Fprintln(w, "Average MPG by cylinders")
	tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "  CYLINDERS\tAVG MPG\tCARS")
	for _, c := range snap.Summary.CylinderAverages {
		fmt.Fprintf(tw, "  %d\t%.1f\t%d\n", c.Cylinders, c.AvgMPG, c.Count)
	}
	tw.Flush()

	return nil
}

func joinOrigins(state car.FilterState) string {
	origins := state.SelectedOrigins()
	if len(origins) == 0 {
		return "none"
	}
	return strings.Join(origins, ", ")
}

func joinCylinders(state car.FilterState) string {
	cylinders := state.SelectedCylinders()
	if len(cylinders) == 0 {
		return "none"
	}
	parts := make([]string, len(cylinders))
	for i, c := range cylinders {
		parts[i] = strconv.Itoa(c)
	}
	return strings.Join(parts, ", ")
}
