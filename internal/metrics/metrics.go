// Package metrics exposes Prometheus instrumentation for the dashboard.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mpgdash",
		Name:      "http_requests_total",
		Help:      "HTTP requests handled, by route and status.",
	}, []string{"route", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "mpgdash",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency, by route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route"})

	filteredCars = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "mpgdash",
		Name:      "filtered_cars",
		Help:      "Cars remaining after applying the active filter.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
	})

	exportsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mpgdash",
		Name:      "exports_total",
		Help:      "Dataset exports served, by format.",
	}, []string{"format"})

	chartRenders = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mpgdash",
		Name:      "chart_renders_total",
		Help:      "Chart images rendered, by chart.",
	}, []string{"chart"})
)

// ObserveFilter records the size of a filtered view.
func ObserveFilter(count int) {
	filteredCars.Observe(float64(count))
}

// CountExport records one export download in the given format.
func CountExport(format string) {
	exportsTotal.WithLabelValues(format).Inc()
}

// CountRender records one rendered chart image.
func CountRender(chart string) {
	chartRenders.WithLabelValues(chart).Inc()
}

// Middleware records request counts and latencies per matched route.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		requestsTotal.WithLabelValues(route, strconv.Itoa(c.Writer.Status())).Inc()
		requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}

// Handler adapts the Prometheus scrape handler for gin.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
