// Package metrics exposes Prometheus metrics for the scoreboard service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Submission outcomes used as the "result" label.
const (
	ResultAccepted     = "accepted"
	ResultInvalid      = "invalid_parameters"
	ResultNoSession    = "no_session"
	ResultUnauthorized = "unauthorized"
	ResultBadScore     = "bad_score"
	ResultError        = "error"
)

// Registry holds all application metrics.
type Registry struct {
	registry *prometheus.Registry

	SessionsCreated prometheus.Counter
	ScoresSubmitted *prometheus.CounterVec
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	StorageErrors   prometheus.Counter
}

// NewRegistry creates the metrics on a private registry, together with the
// Go runtime and process collectors.
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
		SessionsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "scoreboard",
			Name:      "sessions_created_total",
			Help:      "Sessions issued or refreshed.",
		}),
		ScoresSubmitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "scoreboard",
			Name:      "score_submissions_total",
			Help:      "Score submissions by result.",
		}, []string{"result"}),
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "scoreboard",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, path and status code.",
		}, []string{"method", "path", "code"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "scoreboard",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path"}),
		StorageErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "scoreboard",
			Name:      "storage_errors_total",
			Help:      "Backend failures surfaced to clients as 500.",
		}),
	}
	r.registry.MustRegister(
		r.SessionsCreated,
		r.ScoresSubmitted,
		r.RequestsTotal,
		r.RequestDuration,
		r.StorageErrors,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// RegisterSessionGauge exposes the current session count, read from fn at
// scrape time.
func (r *Registry) RegisterSessionGauge(fn func() float64) {
	r.registry.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "scoreboard",
		Name:      "sessions_registered",
		Help:      "Addresses currently holding a session.",
	}, fn))
}

// ObserveRequest records one finished HTTP request.
func (r *Registry) ObserveRequest(method, path string, code int, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.RequestsTotal.WithLabelValues(method, path, strconv.Itoa(code)).Inc()
	r.RequestDuration.WithLabelValues(method, path).Observe(elapsed.Seconds())
}

// Handler returns an HTTP handler for the /metrics endpoint.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// Gatherer exposes the underlying registry for tests and custom exporters.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}
