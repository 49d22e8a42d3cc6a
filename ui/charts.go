package ui

import (
	"log"
	"net/http"

	"mpgdash/app"

	"github.com/gin-gonic/gin"
)

// serveChart renders a chart for the request's filter selection and
// writes it as PNG.
func (s *Server) serveChart(c *gin.Context, name string, render func(app.Snapshot) ([]byte, error)) {
	snap, ok := s.snapshotFromRequest(c)
	if !ok {
		return
	}

	png, err := render(snap)
	if err != nil {
		log.Printf("[Chart] ERROR: rendering %s: %v", name, err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "chart rendering failed"})
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

func (s *Server) handleTrendChart(c *gin.Context) {
	s.serveChart(c, "trend", s.dashboard.TrendChart)
}

func (s *Server) handleCylinderChart(c *gin.Context) {
	s.serveChart(c, "cylinders", s.dashboard.CylinderChart)
}

func (s *Server) handleBoxChart(c *gin.Context) {
	s.serveChart(c, "origins", s.dashboard.BoxChart)
}

func (s *Server) handleScatterChart(c *gin.Context) {
	axis := c.DefaultQuery("x", app.AxisWeight)
	s.serveChart(c, "scatter "+axis, func(snap app.Snapshot) ([]byte, error) {
		return s.dashboard.ScatterChart(snap, axis)
	})
}
