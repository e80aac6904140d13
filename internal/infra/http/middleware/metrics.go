package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "API requests by method, route pattern and status code",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "API latency by method and route pattern, including data API round trips",
			Buckets: []float64{.025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"method", "route"},
	)

	inFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "API requests currently being served",
		},
	)

	leadConversions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lead_conversions_total",
			Help: "Total number of lead conversions by outcome",
		},
		[]string{"outcome"},
	)

	meetingsUpdated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "meetings_updated_total",
			Help: "Total number of meetings rescheduled",
		},
	)

	creatorErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "creator_api_errors_total",
			Help: "Total number of failed data API calls",
		},
		[]string{"operation"},
	)
)

// statusRecorder keeps the first status written so handlers that only call
// Write are counted as 200.
type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (sr *statusRecorder) WriteHeader(code int) {
	if !sr.wroteHeader {
		sr.status = code
		sr.wroteHeader = true
	}
	sr.ResponseWriter.WriteHeader(code)
}

func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		inFlight.Inc()
		defer inFlight.Dec()

		sr := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sr, r)

		// The pattern is only complete after routing has run.
		route := routePattern(r)
		httpRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(sr.status)).Inc()
		httpRequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

// routePattern labels by route template so record ids do not explode the
// label space.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}

func RecordConversion(outcome string) {
	leadConversions.WithLabelValues(outcome).Inc()
}

func RecordMeetingUpdated() {
	meetingsUpdated.Inc()
}

// RecordCreatorError matches creator.Client.OnError.
func RecordCreatorError(operation string, _ int) {
	creatorErrors.WithLabelValues(operation).Inc()
}
