package ui

import (
	"net/http"

	"mpgdash/internal/analysis"

	"github.com/gin-gonic/gin"
)

// metricJSON returns the metric value, or nil when the selection was
// empty. JSON has no NaN, so invalid metrics become null.
func metricJSON(m analysis.Metric) interface{} {
	if !m.Valid {
		return nil
	}
	return m.Value
}

// handleAPISummary reports the summary for the current selection as
// JSON.
func (s *Server) handleAPISummary(c *gin.Context) {
	snap, ok := s.snapshotFromRequest(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"cars_shown":         snap.View.Len(),
		"cars_total":         snap.Dataset.Len(),
		"average_mpg":        metricJSON(snap.Summary.AverageMPG),
		"best_mpg":           metricJSON(snap.Summary.BestMPG),
		"average_horsepower": metricJSON(snap.Summary.AverageHorsepower),
		"origins":            snap.State.SelectedOrigins(),
		"cylinders":          snap.State.SelectedCylinders(),
		"year_range":         gin.H{"from": snap.State.YearMin, "to": snap.State.YearMax},
	})
}

// handleHealthz reports whether the dataset is loadable.
func (s *Server) handleHealthz(c *gin.Context) {
	ds, err := s.dashboard.Dataset()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "cars": ds.Len()})
}
