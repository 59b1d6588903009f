// Package monitoring provides Prometheus metrics collection
package monitoring

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
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

	// Business metrics
	recipesCreatedTotal  prometheus.Counter
	recipesDeletedTotal  prometheus.Counter
	bringExportsTotal    prometheus.Counter
	aiRequestsTotal      *prometheus.CounterVec
	imageLookupsTotal    *prometheus.CounterVec

	// Cache metrics
	cacheOperations *prometheus.CounterVec
}

// NewMetricsCollector creates a new metrics collector
func NewMetricsCollector(logger *zap.Logger) *MetricsCollector {
	return &MetricsCollector{
		logger: logger,

		httpRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		httpRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		recipesCreatedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "recipes_created_total",
				Help: "Total number of recipes created",
			},
		),
		recipesDeletedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "recipes_deleted_total",
				Help: "Total number of recipes deleted",
			},
		),
		bringExportsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "bring_exports_total",
				Help: "Total number of Bring! recipe exports served",
			},
		),
		aiRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ai_requests_total",
				Help: "Total number of AI requests",
			},
			[]string{"operation", "status"},
		),
		imageLookupsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "image_lookups_total",
				Help: "Total number of recipe image lookups",
			},
			[]string{"source"},
		),

		cacheOperations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cache_operations_total",
				Help: "Total number of cache operations",
			},
			[]string{"operation", "status"},
		),
	}
}

// HTTPMiddleware returns chi middleware that records request metrics.
// The chi route pattern is used as the path label to keep cardinality
// bounded.
func (m *MetricsCollector) HTTPMiddleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			wrapped := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(wrapped, r)

			path := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if pattern := rctx.RoutePattern(); pattern != "" {
					path = pattern
				}
			}

			m.httpRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(wrapped.status)).Inc()
			m.httpRequestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
		})
	}
}

// Handler returns the Prometheus metrics endpoint handler
func (m *MetricsCollector) Handler() http.Handler {
	return promhttp.Handler()
}

// RecordRecipeCreated increments the recipe creation counter
func (m *MetricsCollector) RecordRecipeCreated() {
	m.recipesCreatedTotal.Inc()
}

// RecordRecipeDeleted increments the recipe deletion counter
func (m *MetricsCollector) RecordRecipeDeleted() {
	m.recipesDeletedTotal.Inc()
}

// RecordBringExport increments the Bring! export counter
func (m *MetricsCollector) RecordBringExport() {
	m.bringExportsTotal.Inc()
}

// RecordAIRequest records an AI request with its outcome
func (m *MetricsCollector) RecordAIRequest(operation string, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	m.aiRequestsTotal.WithLabelValues(operation, status).Inc()
}

// RecordImageLookup records a resolved image by source
func (m *MetricsCollector) RecordImageLookup(source string) {
	m.imageLookupsTotal.WithLabelValues(source).Inc()
}

// RecordCacheOperation records a cache operation with its outcome
func (m *MetricsCollector) RecordCacheOperation(operation string, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	m.cacheOperations.WithLabelValues(operation, status).Inc()
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}
