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
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "path"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)

	// Workspace metrics
	alertsInjected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "caseroom_alerts_injected_total",
			Help: "Alerts folded into the workspace state",
		},
		[]string{"domain", "severity"},
	)

	roomsActivated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "caseroom_rooms_activated_total",
			Help: "Case room activations caused by alerts",
		},
		[]string{"outcome"},
	)

	documentSearches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "caseroom_document_searches_total",
			Help: "Clinical document searches",
		},
		[]string{"result"},
	)

	feedConnected = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "caseroom_feed_connected",
			Help: "1 when the alert feed reports connected, 0 otherwise",
		},
	)
)

// Handler returns the Prometheus metrics HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware creates HTTP metrics middleware
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		httpRequestsInFlight.Inc()
		defer httpRequestsInFlight.Dec()

		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		duration := time.Since(start).Seconds()
		path := routePattern(r)

		httpRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(wrapped.statusCode)).Inc()
		httpRequestDuration.WithLabelValues(r.Method, path).Observe(duration)
	})
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// routePattern prefers the chi route template over the raw path so that room
// and patient ids do not explode label cardinality.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	if len(r.URL.Path) > 100 {
		return "/api/..."
	}
	return r.URL.Path
}

// --- Workspace metric helpers ---

// RecordAlertInjected records an alert folded into the workspace.
func RecordAlertInjected(domain, severity string) {
	alertsInjected.WithLabelValues(domain, severity).Inc()
}

// RecordRoomActivation records whether an alert created or updated a room.
func RecordRoomActivation(created bool) {
	outcome := "updated"
	if created {
		outcome = "created"
	}
	roomsActivated.WithLabelValues(outcome).Inc()
}

// RecordDocumentSearch records a document search and whether it matched.
func RecordDocumentSearch(hits int) {
	result := "miss"
	if hits > 0 {
		result = "hit"
	}
	documentSearches.WithLabelValues(result).Inc()
}

// SetFeedConnected records the feed connection state.
func SetFeedConnected(connected bool) {
	if connected {
		feedConnected.Set(1)
		return
	}
	feedConnected.Set(0)
}
