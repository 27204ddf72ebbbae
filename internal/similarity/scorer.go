package similarity

import (
	"github.com/ppiankov/textprobe/internal/cache"
	"github.com/ppiankov/textprobe/internal/corpus"
	"github.com/ppiankov/textprobe/internal/metrics"
	"go.uber.org/zap"
)

// Scorer computes one similarity per reference sentence.
// Each call re-fits the vectorizer on the sentence plus the references.
type Scorer struct {
	vectorizer *Vectorizer
	logger     *zap.Logger
	metrics    *metrics.Metrics
	memo       cache.Cache
}

// Option configures a Scorer
type Option func(*Scorer)

// WithLogger sets the logger used for vectorization failures
func WithLogger(logger *zap.Logger) Option {
	return func(s *Scorer) { s.logger = logger }
}

// WithMetrics counts vectorization failures
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Scorer) { s.metrics = m }
}

// WithMemo stores vectors from ScoreCorpus keyed by corpus fingerprint and sentence
func WithMemo(c cache.Cache) Option {
	return func(s *Scorer) { s.memo = c }
}

// NewScorer creates a scorer with the default vocabulary cap
func NewScorer(opts ...Option) *Scorer {
	s := &Scorer{
		vectorizer: NewVectorizer(DefaultMaxFeatures),
		logger:     zap.NewNop(),
		memo:       cache.Noop{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Score returns the similarity of sentence to each reference, in order.
// If vectorization fails the result is all zeros; it never errors.
func (s *Scorer) Score(sentence string, references []string) []float64 {
	scores := make([]float64, len(references))
	if len(references) == 0 {
		return scores
	}

	docs := make([]string, 0, len(references)+1)
	docs = append(docs, sentence)
	docs = append(docs, references...)

	m, err := s.vectorizer.FitTransform(docs)
	if err != nil {
		s.logger.Warn("vectorization failed, scoring as zero",
			zap.String("sentence", sentence), zap.Error(err))
		s.metrics.VectorizeFailed()
		return scores
	}

	for i := range references {
		scores[i] = m.Cosine(0, i+1)
	}
	return scores
}

// ScoreCorpus scores sentence against the flattened corpus
func (s *Scorer) ScoreCorpus(sentence string, c *corpus.Corpus) []float64 {
	key := cache.Key("sim", c.Fingerprint(), sentence)

	var cached []float64
	if cache.GetJSON(s.memo, key, &cached) && len(cached) == c.Len() {
		return cached
	}

	scores := s.Score(sentence, c.Flatten())
	if err := cache.SetJSON(s.memo, key, scores, 0); err != nil {
		s.logger.Debug("similarity memo write failed", zap.Error(err))
	}
	return scores
}
