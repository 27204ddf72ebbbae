// Package metrics defines the Prometheus collectors textprobe exports.
//
// All methods are safe on a nil *Metrics, so components can be built
// without instrumentation in tests and one-shot CLI runs.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "textprobe"

// Metrics holds the collectors and the private registry they live on
type Metrics struct {
	registry *prometheus.Registry

	analyses          prometheus.Counter
	sentences         *prometheus.CounterVec
	analysisDuration  prometheus.Histogram
	vectorizeFailures prometheus.Counter
	claimChecks       *prometheus.CounterVec
	wikipediaLookups  *prometheus.CounterVec
	httpRequests      *prometheus.CounterVec
}

// New creates the collectors on a fresh registry along with Go and process collectors
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		analyses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analyses_total",
			Help:      "Completed similarity analyses.",
		}),
		sentences: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sentences_total",
			Help:      "Analyzed sentences by status.",
		}, []string{"status"}),
		analysisDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "analysis_duration_seconds",
			Help:      "Wall time of one document analysis.",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		}),
		vectorizeFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "vectorize_failures_total",
			Help:      "Sentences scored as zero similarity because vectorization failed.",
		}),
		claimChecks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "claim_checks_total",
			Help:      "Claim checks by verdict.",
		}, []string{"verdict"}),
		wikipediaLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "wikipedia_lookups_total",
			Help:      "Wikipedia summary lookups by outcome.",
		}, []string{"outcome"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP API requests by route and status code.",
		}, []string{"route", "code"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.analyses,
		m.sentences,
		m.analysisDuration,
		m.vectorizeFailures,
		m.claimChecks,
		m.wikipediaLookups,
		m.httpRequests,
	)
	return m
}

// Registry exposes the underlying registry (for tests and custom handlers)
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler serves the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveAnalysis records one finished analysis and its sentence statuses
func (m *Metrics) ObserveAnalysis(elapsed time.Duration, statuses map[string]int) {
	if m == nil {
		return
	}
	m.analyses.Inc()
	m.analysisDuration.Observe(elapsed.Seconds())
	for status, n := range statuses {
		m.sentences.WithLabelValues(status).Add(float64(n))
	}
}

// VectorizeFailed counts a sentence that fell back to zero similarity
func (m *Metrics) VectorizeFailed() {
	if m == nil {
		return
	}
	m.vectorizeFailures.Inc()
}

// ClaimChecked counts a claim check by verdict
func (m *Metrics) ClaimChecked(verdict string) {
	if m == nil {
		return
	}
	m.claimChecks.WithLabelValues(verdict).Inc()
}

// WikipediaLookup counts one summary lookup by outcome
func (m *Metrics) WikipediaLookup(outcome string) {
	if m == nil {
		return
	}
	m.wikipediaLookups.WithLabelValues(outcome).Inc()
}

// HTTPRequest counts one API request
func (m *Metrics) HTTPRequest(route string, code int) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(route, strconv.Itoa(code)).Inc()
}
