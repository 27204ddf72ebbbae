package metrics

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveAnalysis(time.Second, map[string]int{"ok": 1})
		m.VectorizeFailed()
		m.ClaimChecked("probable")
		m.WikipediaLookup("found")
		m.HTTPRequest("/v1/analyze", 200)
	})
	assert.Nil(t, m.Registry())
}

func TestCounters(t *testing.T) {
	m := New()

	m.ObserveAnalysis(10*time.Millisecond, map[string]int{"high_risk": 2, "ok": 3})
	m.VectorizeFailed()
	m.ClaimChecked("probable")
	m.ClaimChecked("probable")
	m.WikipediaLookup("not_found")
	m.HTTPRequest("/v1/analyze", 422)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.analyses))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.sentences.WithLabelValues("high_risk")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.sentences.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.vectorizeFailures))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.claimChecks.WithLabelValues("probable")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.wikipediaLookups.WithLabelValues("not_found")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("/v1/analyze", "422")))
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := New()
	m.VectorizeFailed()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	require.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), "textprobe_vectorize_failures_total 1")
}
