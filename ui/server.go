package ui

import (
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"

	"mpgdash/app"
	"mpgdash/internal/metrics"

	"github.com/gin-gonic/gin"
)

// Server is the web front end for the dashboard.
type Server struct {
	router    *gin.Engine
	dashboard *app.Dashboard
	templates *template.Template
	metricsOn bool
}

// NewServer creates a new web server instance around the dashboard
// service.
func NewServer(dashboard *app.Dashboard) *Server {
	return &Server{
		router:    gin.Default(),
		dashboard: dashboard,
	}
}

// Initialize parses the embedded templates and wires middleware and
// routes. metricsOn exposes /metrics and request instrumentation.
func (s *Server) Initialize(metricsOn bool) error {
	s.metricsOn = metricsOn

	funcMap := template.FuncMap{
		"add": func(a, b int) int { return a + b },
	}

	templates, err := template.New("").Funcs(funcMap).ParseFS(embeddedFiles, "templates/*.html")
	if err != nil {
		return fmt.Errorf("failed to parse templates: %w", err)
	}
	s.templates = templates

	s.setupMiddleware()
	s.setupRoutes()
	return nil
}

// setupMiddleware configures Gin middleware
func (s *Server) setupMiddleware() {
	if s.metricsOn {
		s.router.Use(metrics.Middleware())
	}

	staticFS, err := fs.Sub(embeddedFiles, "static")
	if err != nil {
		log.Printf("[setupMiddleware] Error creating static filesystem: %v", err)
		return
	}
	s.router.StaticFS("/static", http.FS(staticFS))
}

// setupRoutes configures the application routes
func (s *Server) setupRoutes() {
	s.router.GET("/", s.handleOverview)
	s.router.GET("/analysis", s.handleAnalysis)
	s.router.GET("/data", s.handleData)

	s.router.GET("/charts/trend.png", s.handleTrendChart)
	s.router.GET("/charts/cylinders.png", s.handleCylinderChart)
	s.router.GET("/charts/origins.png", s.handleBoxChart)
	s.router.GET("/charts/scatter.png", s.handleScatterChart)

	s.router.GET("/export/csv", s.handleExportCSV)
	s.router.GET("/export/xlsx", s.handleExportXLSX)
	s.router.GET("/export/report.md", s.handleExportReport)

	s.router.POST("/views", s.handleSaveView)
	s.router.GET("/views/:ref/apply", s.handleApplyView)
	s.router.POST("/views/:ref/delete", s.handleDeleteView)

	s.router.GET("/api/summary", s.handleAPISummary)
	s.router.GET("/healthz", s.handleHealthz)
	if s.metricsOn {
		s.router.GET("/metrics", metrics.Handler())
	}
}

// Start starts the web server
func (s *Server) Start(addr string) error {
	log.Printf("Starting mpgdash on http://%s", addr)
	return s.router.Run(addr)
}

// Router exposes the underlying handler, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}
