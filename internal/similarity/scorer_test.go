package similarity

import (
	"strings"
	"testing"
	"time"

	"github.com/ppiankov/textprobe/internal/cache"
	"github.com/ppiankov/textprobe/internal/corpus"
	"github.com/ppiankov/textprobe/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestScore_IdenticalSentence(t *testing.T) {
	refs := corpus.Default().Flatten()
	scores := NewScorer().Score(refs[0], refs)

	require.Len(t, scores, len(refs))
	assert.InDelta(t, 1.0, scores[0], 1e-9)
	for i, s := range scores {
		assert.GreaterOrEqual(t, s, 0.0, "score %d", i)
		assert.LessOrEqual(t, s, 1.0, "score %d", i)
	}
}

func TestScore_ConvergingTextIsMonotonic(t *testing.T) {
	refs := corpus.Default().Flatten()
	words := strings.Fields(refs[0])
	scorer := NewScorer()

	prev := -1.0
	for k := 2; k <= len(words); k++ {
		sentence := strings.Join(words[:k], " ")
		got := scorer.Score(sentence, refs)[0]
		assert.GreaterOrEqual(t, got, prev, "prefix of %d words", k)
		prev = got
	}
	assert.InDelta(t, 1.0, prev, 1e-9)
}

func TestScore_UnrelatedSentenceIsLow(t *testing.T) {
	refs := corpus.Default().Flatten()
	scores := NewScorer().Score("O céu está azul hoje e os pássaros cantam", refs)

	for i, s := range scores {
		assert.Less(t, s, 0.3, "reference %d", i)
	}
}

func TestScore_EmptyVocabularyGivesZeroVector(t *testing.T) {
	m := metrics.New()
	scorer := NewScorer(WithMetrics(m))

	scores := scorer.Score("a b c d", []string{"x y", "z"})
	assert.Equal(t, []float64{0, 0}, scores)

	expected := `
# HELP textprobe_vectorize_failures_total Sentences scored as zero similarity because vectorization failed.
# TYPE textprobe_vectorize_failures_total counter
textprobe_vectorize_failures_total 1
`
	assert.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "textprobe_vectorize_failures_total"))
}

func TestScore_VectorizeFailureLogsWarning(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	scorer := NewScorer(WithLogger(zap.New(core)))

	scorer.Score("a b c d", []string{"x y"})

	entries := logs.FilterMessage("vectorization failed, scoring as zero").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zap.WarnLevel, entries[0].Level)
	assert.Equal(t, "a b c d", entries[0].ContextMap()["sentence"])
}

func TestScore_NoReferences(t *testing.T) {
	assert.Empty(t, NewScorer().Score("anything long enough here", nil))
}

func TestScoreCorpus_Memoizes(t *testing.T) {
	c := corpus.Default()
	memo := cache.NewMemoryCache(time.Minute, time.Minute)
	scorer := NewScorer(WithMemo(memo))

	sentence := "Python é uma linguagem de programação"
	first := scorer.ScoreCorpus(sentence, c)
	assert.Equal(t, 1, memo.Len())

	second := scorer.ScoreCorpus(sentence, c)
	assert.Equal(t, first, second)
	assert.Equal(t, NewScorer().Score(sentence, c.Flatten()), first)
}
