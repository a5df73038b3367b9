package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "monitoring",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "monitoring",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "monitoring",
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "Number of HTTP requests currently being served",
		},
	)

	// Check metrics
	checksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "monitoring",
			Subsystem: "check",
			Name:      "total",
			Help:      "Total number of executed checks",
		},
		[]string{"kind", "status"},
	)

	checkDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "monitoring",
			Subsystem: "check",
			Name:      "duration_seconds",
			Help:      "Duration of check executions in seconds",
			Buckets:   []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"kind"},
	)

	// Incident metrics
	incidentsOpenedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "monitoring",
			Subsystem: "incident",
			Name:      "opened_total",
			Help:      "Total number of opened incidents",
		},
	)

	incidentsResolvedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "monitoring",
			Subsystem: "incident",
			Name:      "resolved_total",
			Help:      "Total number of resolved incidents",
		},
	)

	openIncidents = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "monitoring",
			Subsystem: "incident",
			Name:      "open_count",
			Help:      "Number of currently open incidents",
		},
	)

	// Notification metrics
	notificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "monitoring",
			Subsystem: "notification",
			Name:      "total",
			Help:      "Total number of notification send attempts",
		},
		[]string{"kind", "outcome"},
	)
)

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Middleware returns a middleware that records Prometheus metrics
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		httpRequestsInFlight.Inc()
		defer httpRequestsInFlight.Dec()

		wrapped := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(wrapped, r)

		duration := time.Since(start).Seconds()

		routePattern := chi.RouteContext(r.Context()).RoutePattern()
		if routePattern == "" {
			routePattern = "unknown"
		}

		status := strconv.Itoa(wrapped.statusCode)

		httpRequestsTotal.WithLabelValues(r.Method, routePattern, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, routePattern, status).Observe(duration)
	})
}

// Handler returns the Prometheus metrics HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordCheck records one check execution
func RecordCheck(kind, status string, duration time.Duration) {
	checksTotal.WithLabelValues(kind, status).Inc()
	checkDuration.WithLabelValues(kind).Observe(duration.Seconds())
}

// RecordIncidentOpened records an opened incident
func RecordIncidentOpened() {
	incidentsOpenedTotal.Inc()
	openIncidents.Inc()
}

// RecordIncidentResolved records a resolved incident
func RecordIncidentResolved() {
	incidentsResolvedTotal.Inc()
	openIncidents.Dec()
}

// SetOpenIncidents sets the open incident gauge from a store count
func SetOpenIncidents(count float64) {
	openIncidents.Set(count)
}

// RecordNotification records one notification send attempt
func RecordNotification(kind, outcome string) {
	notificationsTotal.WithLabelValues(kind, outcome).Inc()
}
