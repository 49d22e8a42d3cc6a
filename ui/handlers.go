package ui

import (
	"html/template"
	"log"
	"net/http"

	"mpgdash/adapters/csvdata"
	"mpgdash/app"
	"mpgdash/domain/car"
	"mpgdash/internal/analysis"
	"mpgdash/internal/catalog"
	"mpgdash/ports"

	"github.com/gin-gonic/gin"
)

type originOption struct {
	Name    string
	Checked bool
}

type cylinderOption struct {
	Value   int
	Checked bool
}

// filterForm carries the selectable options and the current selection
// for the filter sidebar.
type filterForm struct {
	Origins   []originOption
	Cylinders []cylinderOption
	Years     []int
	YearFrom  int
	YearTo    int
}

// pageData is the shared template payload for all dashboard pages.
type pageData struct {
	Title      string
	Active     string
	Summary    analysis.Summary
	Shown      int
	Total      int
	Query      template.URL
	Form       filterForm
	SavedViews []ports.SavedView

	WeightCorr     analysis.Correlation
	HorsepowerCorr analysis.Correlation

	About   catalog.Entry
	Columns []string
	Rows    []car.Record
}

// snapshotFromRequest resolves the request's query parameters into a
// filtered snapshot. On failure it writes the error response itself.
func (s *Server) snapshotFromRequest(c *gin.Context) (app.Snapshot, bool) {
	ds, err := s.dashboard.Dataset()
	if err != nil {
		log.Printf("[Snapshot] ERROR: dataset unavailable: %v", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "dataset unavailable"})
		return app.Snapshot{}, false
	}

	state := filterFromValues(c.Request.URL.Query(), ds)
	snap, err := s.dashboard.Snapshot(state)
	if err != nil {
		log.Printf("[Snapshot] ERROR: %v", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to apply filter"})
		return app.Snapshot{}, false
	}
	return snap, true
}

// pageData assembles the common payload for a snapshot.
func (s *Server) pageData(c *gin.Context, snap app.Snapshot, title, active string) pageData {
	var saved []ports.SavedView
	if store := s.dashboard.Views(); store != nil {
		views, err := store.List(c.Request.Context())
		if err != nil {
			log.Printf("[Views] ERROR: listing saved views: %v", err)
		} else {
			saved = views
		}
	}

	return pageData{
		Title:      title,
		Active:     active,
		Summary:    snap.Summary,
		Shown:      snap.View.Len(),
		Total:      snap.Dataset.Len(),
		Query:      template.URL(stateQuery(snap.State).Encode()),
		Form:       buildForm(snap.Dataset, snap.State),
		SavedViews: saved,
	}
}

func buildForm(ds *car.Dataset, state car.FilterState) filterForm {
	var origins []originOption
	for _, o := range ds.Origins() {
		origins = append(origins, originOption{Name: o, Checked: state.Origins[o]})
	}

	var cylinders []cylinderOption
	for _, cyl := range ds.Cylinders() {
		cylinders = append(cylinders, cylinderOption{Value: cyl, Checked: state.Cylinders[cyl]})
	}

	minYear, maxYear := ds.YearBounds()
	years := make([]int, 0, maxYear-minYear+1)
	for y := minYear; y <= maxYear; y++ {
		years = append(years, y)
	}

	return filterForm{
		Origins:   origins,
		Cylinders: cylinders,
		Years:     years,
		YearFrom:  state.YearMin,
		YearTo:    state.YearMax,
	}
}

// handleOverview renders the metric cards and trend charts for the
// current selection.
func (s *Server) handleOverview(c *gin.Context) {
	snap, ok := s.snapshotFromRequest(c)
	if !ok {
		return
	}
	data := s.pageData(c, snap, "Overview", "overview")
	s.renderTemplate(c, "overview.html", data)
}

// handleAnalysis renders the distribution and correlation views.
func (s *Server) handleAnalysis(c *gin.Context) {
	snap, ok := s.snapshotFromRequest(c)
	if !ok {
		return
	}
	data := s.pageData(c, snap, "Analysis", "analysis")
	data.WeightCorr = s.dashboard.Correlation(snap, app.AxisWeight)
	data.HorsepowerCorr = s.dashboard.Correlation(snap, app.AxisHorsepower)
	s.renderTemplate(c, "analysis.html", data)
}

// handleData renders the filtered records as a table with export links.
func (s *Server) handleData(c *gin.Context) {
	snap, ok := s.snapshotFromRequest(c)
	if !ok {
		return
	}
	data := s.pageData(c, snap, "Data", "data")
	data.About = s.dashboard.About()
	data.Columns = csvdata.Columns
	data.Rows = snap.View.Records()
	s.renderTemplate(c, "data.html", data)
}
