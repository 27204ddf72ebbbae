package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ppiankov/textprobe/internal/corpus"
	"github.com/ppiankov/textprobe/internal/metrics"
	"github.com/ppiankov/textprobe/internal/model"
	"github.com/ppiankov/textprobe/internal/rewrite"
	"github.com/ppiankov/textprobe/internal/score"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAnalyzer() *Analyzer {
	return NewAnalyzer(corpus.Default(), nil, nil, nil, nil)
}

func TestAnalyze_VerbatimReferenceIsHighRisk(t *testing.T) {
	ref := corpus.Default().Flatten()[6]
	require.Contains(t, ref, "Algoritmos de IA são usados")

	report, err := newTestAnalyzer().Analyze(context.Background(), TextDocument(ref, ""), model.DefaultThreshold)
	require.NoError(t, err)

	require.Len(t, report.Sentences, 1)
	res := report.Sentences[0]
	assert.Equal(t, model.StatusHighRisk, res.Status)
	assert.InDelta(t, 1.0, res.MaxSimilarity, 1e-9)
	assert.Equal(t, strings.TrimSuffix(ref, "."), res.Sentence)
	assert.Equal(t, ref, res.MatchedReference)
	assert.Equal(t, "inteligencia_artificial", res.MatchedCategory)

	suggestions := report.SuggestionsFor(0)
	require.NotEmpty(t, suggestions)
	assert.Equal(t, model.SuggestionTermSubstitution, suggestions[0].Kind)
	assert.Contains(t, suggestions[0].Suggestion, "usam-se")
	assert.Equal(t, model.SuggestionRestructuring, suggestions[len(suggestions)-1].Kind)

	assert.Equal(t, 1, report.Summary.HighRisk)
	assert.Equal(t, 100.0, report.Summary.HighRiskPercent)
	assert.Equal(t, "inline", report.Source)
	assert.NotEmpty(t, report.ID)
	assert.Equal(t, corpus.Default().Fingerprint(), report.CorpusFingerprint)
}

func TestAnalyze_UnrelatedSentenceIsOK(t *testing.T) {
	report, err := newTestAnalyzer().Analyze(context.Background(),
		TextDocument("O céu está azul hoje e os pássaros cantam.", ""), model.DefaultThreshold)
	require.NoError(t, err)

	require.Len(t, report.Sentences, 1)
	assert.Equal(t, model.StatusOK, report.Sentences[0].Status)
	assert.Less(t, report.Sentences[0].MaxSimilarity, 0.1)
	assert.Empty(t, report.Suggestions)
	assert.Equal(t, 1, report.Summary.OK)
}

func TestAnalyze_NoValidSentences(t *testing.T) {
	_, err := newTestAnalyzer().Analyze(context.Background(), TextDocument("Curto. Demais!", ""), model.DefaultThreshold)
	assert.True(t, errors.Is(err, ErrNoSentences))

	_, err = newTestAnalyzer().Analyze(context.Background(), TextDocument("", ""), model.DefaultThreshold)
	assert.ErrorIs(t, err, ErrNoSentences)
}

func TestAnalyze_RejectsThresholdOutOfRange(t *testing.T) {
	_, err := newTestAnalyzer().Analyze(context.Background(), TextDocument("Uma frase longa o suficiente para análise.", ""), 0.95)
	assert.ErrorIs(t, err, model.ErrInvalidThreshold)
}

func TestAnalyze_MixedDocument(t *testing.T) {
	refs := corpus.Default().Flatten()
	text := refs[0] + " Hoje fui à feira comprar frutas frescas e legumes. " + refs[8]

	m := metrics.New()
	a := NewAnalyzer(corpus.Default(), nil, rewrite.NewSuggester("Em outras palavras, "), nil, m)

	report, err := a.Analyze(context.Background(), TextDocument(text, "mixed.txt"), model.DefaultThreshold)
	require.NoError(t, err)

	require.Len(t, report.Sentences, 3)
	for i, res := range report.Sentences {
		assert.Equal(t, i, res.Position)
	}
	assert.Equal(t, model.StatusHighRisk, report.Sentences[0].Status)
	assert.Equal(t, model.StatusOK, report.Sentences[1].Status)
	assert.Equal(t, model.StatusHighRisk, report.Sentences[2].Status)

	// Only high-risk positions carry suggestions
	assert.Nil(t, report.SuggestionsFor(1))
	require.NotEmpty(t, report.SuggestionsFor(2))
	last := report.SuggestionsFor(2)[len(report.SuggestionsFor(2))-1]
	assert.True(t, strings.HasPrefix(last.Suggestion, "Em outras palavras, "))

	assert.Equal(t, 3, report.Summary.Total)
	assert.Equal(t, 2, report.Summary.HighRisk)

	expected := `
# HELP textprobe_sentences_total Analyzed sentences by status.
# TYPE textprobe_sentences_total counter
textprobe_sentences_total{status="high_risk"} 2
textprobe_sentences_total{status="ok"} 1
textprobe_sentences_total{status="suspect"} 0
`
	assert.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "textprobe_sentences_total"))
}

func TestAnalyze_StatusFollowsThreshold(t *testing.T) {
	words := strings.Fields(corpus.Default().Flatten()[9])
	partial := strings.Join(words[:len(words)/2], " ") + " e outras coisas diferentes aqui."

	a := newTestAnalyzer()
	for _, threshold := range []float64{0.1, 0.3, 0.5, 0.8} {
		report, err := a.Analyze(context.Background(), TextDocument(partial, ""), threshold)
		require.NoError(t, err)

		res := report.Sentences[0]
		assert.Equal(t, score.Classify(res.MaxSimilarity, threshold), res.Status, "threshold %.1f", threshold)
		assert.Equal(t, threshold, report.Threshold)
	}
}

func TestAnalyze_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestAnalyzer().Analyze(ctx, TextDocument("Uma frase longa o suficiente para análise.", ""), model.DefaultThreshold)
	assert.ErrorIs(t, err, context.Canceled)
}
