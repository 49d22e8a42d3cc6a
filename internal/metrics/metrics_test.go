package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCountExport(t *testing.T) {
	before := testutil.ToFloat64(exportsTotal.WithLabelValues("csv"))
	CountExport("csv")
	after := testutil.ToFloat64(exportsTotal.WithLabelValues("csv"))
	if after != before+1 {
		t.Errorf("exports counter went %v -> %v, want +1", before, after)
	}
}

func TestCountRender(t *testing.T) {
	before := testutil.ToFloat64(chartRenders.WithLabelValues("trend"))
	CountRender("trend")
	after := testutil.ToFloat64(chartRenders.WithLabelValues("trend"))
	if after != before+1 {
		t.Errorf("chart renders counter went %v -> %v, want +1", before, after)
	}
}

func TestMiddlewareRecordsRequests(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware())
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	if got := testutil.ToFloat64(requestsTotal.WithLabelValues("/ping", "200")); got < 1 {
		t.Errorf("requests counter = %v, want at least 1", got)
	}
}

func TestHandlerServesScrape(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ObserveFilter(42)

	r := gin.New()
	r.GET("/metrics", Handler())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if body := w.Body.String(); body == "" {
		t.Error("scrape body is empty")
	}
}
