package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ppiankov/textprobe/internal/corpus"
	"github.com/ppiankov/textprobe/internal/extract"
	"github.com/ppiankov/textprobe/internal/metrics"
	"github.com/ppiankov/textprobe/internal/model"
	"github.com/ppiankov/textprobe/internal/rewrite"
	"github.com/ppiankov/textprobe/internal/score"
	"github.com/ppiankov/textprobe/internal/similarity"
	"go.uber.org/zap"
)

// ErrNoSentences is returned when a document has no sentence long enough to analyze
var ErrNoSentences = errors.New("no valid sentences")

// Analyzer runs the similarity pipeline over one document:
// segment, score, classify, suggest, tally
type Analyzer struct {
	corpus     *corpus.Corpus
	references []string
	segmenter  *extract.Segmenter
	scorer     *similarity.Scorer
	classifier *score.Classifier
	suggester  *rewrite.Suggester
	logger     *zap.Logger
	metrics    *metrics.Metrics
	now        func() time.Time
}

// NewAnalyzer creates an analyzer over the given corpus. Nil scorer,
// suggester, or logger use defaults; m may be nil.
func NewAnalyzer(c *corpus.Corpus, scorer *similarity.Scorer, suggester *rewrite.Suggester, logger *zap.Logger, m *metrics.Metrics) *Analyzer {
	if scorer == nil {
		scorer = similarity.NewScorer()
	}
	if suggester == nil {
		suggester = rewrite.NewSuggester("")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	references := c.Flatten()
	return &Analyzer{
		corpus:     c,
		references: references,
		segmenter:  extract.NewSegmenter(),
		scorer:     scorer,
		classifier: score.NewClassifier(references, c.CategoryAt),
		suggester:  suggester,
		logger:     logger,
		metrics:    m,
		now:        time.Now,
	}
}

// Corpus returns the reference corpus
func (a *Analyzer) Corpus() *corpus.Corpus {
	return a.corpus
}

// Analyze produces a report for doc with the given suspect cutoff.
// The context is checked between sentences.
func (a *Analyzer) Analyze(ctx context.Context, doc Document, threshold float64) (*model.Report, error) {
	if err := model.ValidateThreshold(threshold); err != nil {
		return nil, err
	}

	start := a.now()
	sentences := a.segmenter.Split(doc.Text)
	if len(sentences) == 0 {
		return nil, ErrNoSentences
	}

	report := &model.Report{
		ID:                uuid.NewString(),
		Source:            doc.Source,
		CreatedAt:         start.UTC(),
		Threshold:         threshold,
		CorpusFingerprint: a.corpus.Fingerprint(),
		Sentences:         make([]model.SentenceResult, 0, len(sentences)),
	}

	for i, sentence := range sentences {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("analysis interrupted after %d of %d sentences: %w", i, len(sentences), err)
		}

		scores := a.scorer.ScoreCorpus(sentence, a.corpus)
		result := a.classifier.Result(sentence, i, scores, threshold)
		report.Sentences = append(report.Sentences, result)

		if result.Status != model.StatusHighRisk {
			continue
		}
		if suggestions := a.suggester.Suggest(sentence); len(suggestions) > 0 {
			if report.Suggestions == nil {
				report.Suggestions = make(map[int][]model.RewriteSuggestion)
			}
			report.Suggestions[i] = suggestions
		}
	}

	report.Summary = score.Aggregate(report.Sentences)

	elapsed := a.now().Sub(start)
	a.metrics.ObserveAnalysis(elapsed, score.StatusCounts(report.Summary))
	a.logger.Debug("analysis complete",
		zap.String("id", report.ID),
		zap.String("source", report.Source),
		zap.Int("sentences", report.Summary.Total),
		zap.Int("high_risk", report.Summary.HighRisk),
		zap.Int("suspect", report.Summary.Suspect),
		zap.Duration("elapsed", elapsed))

	return report, nil
}
