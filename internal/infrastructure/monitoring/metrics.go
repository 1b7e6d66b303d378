// Package monitoring handles Prometheus metrics collection for the
// HTTP surface and the discovery engine.
package monitoring

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// MetricsCollector handles Prometheus metrics collection
type MetricsCollector struct {
	logger *zap.Logger

	// HTTP metrics
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Discovery metrics
	searchesTotal   *prometheus.CounterVec
	searchDuration  *prometheus.HistogramVec
	searchResults   *prometheus.HistogramVec
	backendFailures *prometheus.CounterVec

	// Catalog metrics
	recipesIndexedTotal prometheus.Counter
	recipesRemovedTotal prometheus.Counter
	recipesCreatedTotal prometheus.Counter
}

// NewMetricsCollector creates a new metrics collector using the given
// registerer; pass prometheus.NewRegistry() in tests to avoid clashes
// on the default registry.
func NewMetricsCollector(reg prometheus.Registerer, logger *zap.Logger) *MetricsCollector {
	factory := promauto.With(reg)

	return &MetricsCollector{
		logger: logger,

		httpRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		httpRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status_code"},
		),

		searchesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "recipe_searches_total",
				Help: "Total number of discovery engine queries",
			},
			[]string{"mode", "status"},
		),
		searchDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "recipe_search_duration_seconds",
				Help:    "Discovery engine query duration in seconds",
				Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0},
			},
			[]string{"mode"},
		),
		searchResults: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "recipe_search_results",
				Help:    "Number of results returned per query",
				Buckets: []float64{0, 1, 5, 10, 25, 50},
			},
			[]string{"mode"},
		),
		backendFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "search_backend_failures_total",
				Help: "Total number of search backend failures",
			},
			[]string{"reason"},
		),

		recipesIndexedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "recipes_indexed_total",
				Help: "Total number of recipe documents written to the index",
			},
		),
		recipesRemovedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "recipes_removed_total",
				Help: "Total number of recipe documents removed from the index",
			},
		),
		recipesCreatedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "recipes_created_total",
				Help: "Total number of recipes created",
			},
		),
	}
}

// HTTPMiddleware creates a Gin middleware for HTTP metrics collection
func (m *MetricsCollector) HTTPMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		statusCode := strconv.Itoa(c.Writer.Status())

		m.httpRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			statusCode,
		).Inc()

		m.httpRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			statusCode,
		).Observe(duration)
	}
}

// SearchExecuted records the outcome of one discovery engine query.
func (m *MetricsCollector) SearchExecuted(mode, status string, results int, duration time.Duration) {
	m.searchesTotal.WithLabelValues(mode, status).Inc()
	m.searchDuration.WithLabelValues(mode).Observe(duration.Seconds())
	if status == "ok" {
		m.searchResults.WithLabelValues(mode).Observe(float64(results))
	}
}

// BackendFailure records a failed search backend round trip.
func (m *MetricsCollector) BackendFailure(reason string) {
	m.backendFailures.WithLabelValues(reason).Inc()
}

func (m *MetricsCollector) RecipeIndexed() {
	m.recipesIndexedTotal.Inc()
}

func (m *MetricsCollector) RecipeRemoved() {
	m.recipesRemovedTotal.Inc()
}

func (m *MetricsCollector) RecipeCreated() {
	m.recipesCreatedTotal.Inc()
}

// Handler returns the Prometheus metrics HTTP handler
func (m *MetricsCollector) Handler() http.Handler {
	return promhttp.Handler()
}
