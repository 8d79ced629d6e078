// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Grading run outcomes.
const (
	OutcomeOK          = "ok"
	OutcomeMissingData = "missing_data"
	OutcomeFailed      = "failed"
)

// Metrics is a private registry plus the service's collectors. Each server
// owns one so tests do not share global state.
type Metrics struct {
	Registry *prometheus.Registry

	RequestDuration   *prometheus.HistogramVec
	GradingRuns       *prometheus.CounterVec
	ScoreRatio        prometheus.Histogram
	FeedbackFallbacks prometheus.Counter
}

// New creates and registers the collectors.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "erdgrade",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route and status.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		}, []string{"route", "method", "status"}),
		GradingRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "erdgrade",
			Name:      "grading_runs_total",
			Help:      "Grading requests by outcome.",
		}, []string{"outcome"}),
		ScoreRatio: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "erdgrade",
			Name:      "grading_score_ratio",
			Help:      "Total score divided by max score for successful gradings.",
			Buckets:   prometheus.LinearBuckets(0, 0.1, 11),
		}),
		FeedbackFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "erdgrade",
			Name:      "feedback_fallbacks_total",
			Help:      "Gradings whose feedback text came from the template instead of the model.",
		}),
	}

	m.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.RequestDuration,
		m.GradingRuns,
		m.ScoreRatio,
		m.FeedbackFallbacks,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}

// ObserveScore records a successful grading.
func (m *Metrics) ObserveScore(total, maxScore float64) {
	m.GradingRuns.WithLabelValues(OutcomeOK).Inc()
	if maxScore > 0 {
		m.ScoreRatio.Observe(total / maxScore)
	}
}

// Middleware times each request under its chi route pattern. Unmatched
// requests are labeled "unmatched" to keep label cardinality bounded.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil {
			if p := rc.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.RequestDuration.
			WithLabelValues(route, r.Method, strconv.Itoa(status)).
			Observe(time.Since(start).Seconds())
	})
}
