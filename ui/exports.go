package ui

import (
	"bytes"
	"fmt"
	"log"
	"net/http"

	"mpgdash/app"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// serveExport renders an export into a buffer and sends it as an
// attachment. Buffering keeps failed exports from leaking a partial
// body after the headers are written.
func (s *Server) serveExport(c *gin.Context, filename, contentType string, write func(*bytes.Buffer, app.Snapshot) error) {
	snap, ok := s.snapshotFromRequest(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := write(&buf, snap); err != nil {
		log.Printf("[Export] ERROR: writing %s: %v", filename, err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
		return
	}

	log.Printf("[Export] Wrote %s (%d cars, %d bytes)", filename, snap.View.Len(), buf.Len())
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

func (s *Server) handleExportCSV(c *gin.Context) {
	s.serveExport(c, "mpg_filtered.csv", "text/csv; charset=utf-8", func(buf *bytes.Buffer, snap app.Snapshot) error {
		return s.dashboard.ExportCSV(buf, snap)
	})
}

func (s *Server) handleExportXLSX(c *gin.Context) {
	s.serveExport(c, "mpg_filtered.xlsx", xlsxContentType, func(buf *bytes.Buffer, snap app.Snapshot) error {
		return s.dashboard.ExportXLSX(buf, snap)
	})
}

func (s *Server) handleExportReport(c *gin.Context) {
	s.serveExport(c, "mpg_report.md", "text/markdown; charset=utf-8", func(buf *bytes.Buffer, snap app.Snapshot) error {
		return s.dashboard.WriteReport(buf, "Fuel Efficiency Report", snap, nil)
	})
}
