// Package report writes a markdown summary of the current selection, so
// a slice of the dataset can be shared outside the dashboard.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"

	"mpgdash/domain/car"
	"mpgdash/internal/analysis"
)

// Image references a chart file to embed in the report.
type Image struct {
	Title string
	Path  string
}

// Writer outputs selection reports in Markdown format.
type Writer struct {
	output io.Writer
}

// NewWriter creates a Writer that outputs to the given writer.
func NewWriter(output io.Writer) *Writer {
	return &Writer{output: output}
}

// Write outputs the full report: the active selection, the headline
// metrics, the grouped aggregates, and any rendered chart images.
func (w *Writer) Write(title string, state car.FilterState, summary analysis.Summary, images []Image) error {
	md := markdown.NewMarkdown(w.output)

	writeHeader(md, title, state, summary)
	writeMetrics(md, summary)
	writeTrend(md, summary)
	writeCylinders(md, summary)
	writeImages(md, images)

	md.HorizontalRule()
	md.PlainText("*Generated by mpgdash*")
	return md.Build()
}

func writeHeader(md *markdown.Markdown, title string, state car.FilterState, summary analysis.Summary) {
	md.H1(title)
	md.PlainText("")

	origins := strings.Join(state.SelectedOrigins(), ", ")
	if origins == "" {
		origins = "none"
	}
	cylinders := joinInts(state.SelectedCylinders())
	if cylinders == "" {
		cylinders = "none"
	}

	md.Table(markdown.TableSet{
		Header: []string{"Selection", "Value"},
		Rows: [][]string{
			{"Origins", origins},
			{"Cylinders", cylinders},
			{"Model years", fmt.Sprintf("%d-%d", state.YearMin, state.YearMax)},
			{"Cars", strconv.Itoa(summary.TotalCount)},
		},
	})
	md.PlainText("")

	if summary.TotalCount == 0 {
		md.Note("The current selection matches no cars.")
		md.PlainText("")
	}
}

func writeMetrics(md *markdown.Markdown, summary analysis.Summary) {
	md.H2("Fleet summary")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Average MPG", summary.AverageMPG.Format(1)},
			{"Best MPG", summary.BestMPG.Format(1)},
			{"Average horsepower", summary.AverageHorsepower.Format(0)},
		},
	})
	md.PlainText("")
}

func writeTrend(md *markdown.Markdown, summary analysis.Summary) {
	if len(summary.Trend) == 0 {
		return
	}
	md.H2("Average MPG by model year")
	md.PlainText("")

	rows := make([][]string, len(summary.Trend))
	for i, p := range summary.Trend {
		rows[i] = []string{
			strconv.Itoa(p.Year),
			p.Origin,
			strconv.FormatFloat(p.AvgMPG, 'f', 1, 64),
			strconv.Itoa(p.Count),
		}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Year", "Origin", "Avg MPG", "Cars"},
		Rows:   rows,
	})
	md.PlainText("")
}

func writeCylinders(md *markdown.Markdown, summary analysis.Summary) {
	if len(summary.CylinderAverages) == 0 {
		return
	}
	md.H2("Average MPG by cylinders")
	md.PlainText("")

	rows := make([][]string, len(summary.CylinderAverages))
	for i, g := range summary.CylinderAverages {
		rows[i] = []string{
			strconv.Itoa(g.Cylinders),
			strconv.FormatFloat(g.AvgMPG, 'f', 1, 64),
			strconv.Itoa(g.Count),
		}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Cylinders", "Avg MPG", "Cars"},
		Rows:   rows,
	})
	md.PlainText("")
}

func writeImages(md *markdown.Markdown, images []Image) {
	if len(images) == 0 {
		return
	}
	md.H2("Charts")
	md.PlainText("")
	for _, img := range images {
		md.PlainTextf("![%s](%s)", img.Title, img.Path)
		md.PlainText("")
	}
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ", ")
}
