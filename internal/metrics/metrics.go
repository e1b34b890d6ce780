package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "proppilot_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "proppilot_http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	backendRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "proppilot_backend_requests_total",
		Help: "Calls to the rental backend by operation and outcome",
	}, []string{"operation", "outcome"})

	backendRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "proppilot_backend_request_duration_seconds",
		Help:    "Duration of calls to the rental backend",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})

	formSubmissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "proppilot_form_submissions_total",
		Help: "Form submissions by form and resulting status",
	}, []string{"form", "status"})

	searchesSuperseded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "proppilot_search_superseded_total",
		Help: "Search requests dropped because a newer keystroke replaced them",
	})

	eventsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "proppilot_events_published_total",
		Help: "Activity events handed to the message broker by result",
	}, []string{"result"})

	activeSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "proppilot_active_sessions",
		Help: "Number of browser sessions held in memory",
	})
)

// ObserveHTTPRequest records an HTTP request metric
func ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	httpRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// ObserveBackendCall records one backend call. outcome is "ok" or the
// failure kind.
func ObserveBackendCall(operation, outcome string, duration time.Duration) {
	backendRequestsTotal.WithLabelValues(operation, outcome).Inc()
	backendRequestDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// ObserveFormSubmission counts a submit and the status it ended in.
func ObserveFormSubmission(form, status string) {
	formSubmissions.WithLabelValues(form, status).Inc()
}

// ObserveSearchSuperseded counts a debounced search that never ran.
func ObserveSearchSuperseded() {
	searchesSuperseded.Inc()
}

// ObserveEventPublished counts an activity event publish attempt.
func ObserveEventPublished(result string) {
	eventsPublished.WithLabelValues(result).Inc()
}

// SetActiveSessions sets the session gauge.
func SetActiveSessions(count int) {
	if count < 0 {
		count = 0
	}
	activeSessions.Set(float64(count))
}
