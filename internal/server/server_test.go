package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ppiankov/textprobe/internal/corpus"
	"github.com/ppiankov/textprobe/internal/factcheck"
	"github.com/ppiankov/textprobe/internal/metrics"
	"github.com/ppiankov/textprobe/internal/model"
	"github.com/ppiankov/textprobe/internal/pipeline"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

const verbatimReference = "Algoritmos de IA são usados em reconhecimento de imagem, processamento de fala e tomada de decisões automatizada."

type stubChecker struct{}

func (stubChecker) Check(_ context.Context, claim string) (*model.ClaimReport, error) {
	if strings.TrimSpace(claim) == "" {
		return nil, factcheck.ErrEmptyClaim
	}
	return &model.ClaimReport{Claim: claim, Verdict: model.VerdictUncertain, AverageScore: 0.2}, nil
}

func newTestRouter(t *testing.T, logger *zap.Logger, m *metrics.Metrics) http.Handler {
	t.Helper()
	p, err := pipeline.NewPipeline(model.DefaultConfig(), nil, nil)
	require.NoError(t, err)

	return NewRouter(Deps{
		Analyzer:         p,
		Checker:          stubChecker{},
		Corpus:           corpus.Default(),
		DefaultThreshold: model.DefaultThreshold,
		Metrics:          m,
		Logger:           logger,
	})
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestAnalyze_HighRisk(t *testing.T) {
	h := newTestRouter(t, nil, nil)

	w := do(t, h, http.MethodPost, "/v1/analyze", map[string]any{"text": verbatimReference})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var report model.Report
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	require.Len(t, report.Sentences, 1)
	assert.Equal(t, model.StatusHighRisk, report.Sentences[0].Status)
	assert.Equal(t, "api", report.Source)
	assert.Equal(t, model.DefaultThreshold, report.Threshold)
	assert.NotEmpty(t, report.Suggestions)
}

func TestAnalyze_CustomThreshold(t *testing.T) {
	h := newTestRouter(t, nil, nil)

	w := do(t, h, http.MethodPost, "/v1/analyze", map[string]any{"text": verbatimReference, "threshold": 0.5, "source": "essay.txt"})
	require.Equal(t, http.StatusOK, w.Code)

	var report model.Report
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.Equal(t, 0.5, report.Threshold)
	assert.Equal(t, "essay.txt", report.Source)
}

func TestAnalyze_StatusCodes(t *testing.T) {
	h := newTestRouter(t, nil, nil)

	tests := []struct {
		name string
		body any
		want int
	}{
		{"empty text", map[string]any{"text": "  "}, http.StatusBadRequest},
		{"threshold too low", map[string]any{"text": verbatimReference, "threshold": 0.05}, http.StatusBadRequest},
		{"threshold too high", map[string]any{"text": verbatimReference, "threshold": 0.9}, http.StatusBadRequest},
		{"malformed json", "{not json", http.StatusBadRequest},
		{"no valid sentences", map[string]any{"text": "Curto. Também."}, http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, h, http.MethodPost, "/v1/analyze", tt.body)
			assert.Equal(t, tt.want, w.Code, w.Body.String())
			assert.Contains(t, w.Body.String(), `"error"`)
		})
	}
}

func TestCheckClaim(t *testing.T) {
	h := newTestRouter(t, nil, nil)

	w := do(t, h, http.MethodPost, "/v1/claims/check", map[string]string{"claim": "Python foi criado em 1991"})
	require.Equal(t, http.StatusOK, w.Code)

	var report model.ClaimReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.Equal(t, model.VerdictUncertain, report.Verdict)

	w = do(t, h, http.MethodPost, "/v1/claims/check", map[string]string{"claim": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdjustEmotion(t *testing.T) {
	h := newTestRouter(t, nil, nil)

	w := do(t, h, http.MethodPost, "/v1/emotion/adjust", map[string]any{
		"emotion": "sad", "confidence": 90, "context": []string{"office"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var adj model.EmotionAdjustment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &adj))
	assert.Equal(t, "focused", adj.AdjustedEmotion)
	assert.Equal(t, 95.0, adj.AdjustedConfidence)

	w = do(t, h, http.MethodPost, "/v1/emotion/adjust", map[string]any{"emotion": "happy", "confidence": 40})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &adj))
	assert.Equal(t, []string{model.ContextUndefined}, adj.Context)
	assert.Equal(t, "happy", adj.AdjustedEmotion)

	w = do(t, h, http.MethodPost, "/v1/emotion/adjust", map[string]any{"emotion": "", "confidence": 40})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, h, http.MethodPost, "/v1/emotion/adjust", map[string]any{"emotion": "sad", "confidence": 140})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCorpusAndHealth(t *testing.T) {
	h := newTestRouter(t, nil, nil)

	w := do(t, h, http.MethodGet, "/v1/corpus", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp corpusResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 12, resp.Sentences)
	assert.Len(t, resp.Categories, 3)
	assert.Equal(t, corpus.Default().Fingerprint(), resp.Fingerprint)

	w = do(t, h, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestMetricsAndRequestLogging(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	m := metrics.New()
	h := newTestRouter(t, zap.New(core), m)

	do(t, h, http.MethodGet, "/healthz", nil)
	do(t, h, http.MethodPost, "/v1/claims/check", map[string]string{"claim": ""})
	do(t, h, http.MethodGet, "/nowhere", nil)

	expected := `
# HELP textprobe_http_requests_total HTTP API requests by route and status code.
# TYPE textprobe_http_requests_total counter
textprobe_http_requests_total{code="200",route="/healthz"} 1
textprobe_http_requests_total{code="400",route="/v1/claims/check"} 1
textprobe_http_requests_total{code="404",route="unmatched"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "textprobe_http_requests_total"))

	entries := logs.FilterMessage("http request").All()
	require.Len(t, entries, 3)
	assert.Equal(t, zap.DebugLevel, entries[0].Level)
	assert.Equal(t, zap.WarnLevel, entries[1].Level)
	assert.Equal(t, "/v1/claims/check", entries[1].ContextMap()["route"])

	w := do(t, h, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "textprobe_http_requests_total")
}
