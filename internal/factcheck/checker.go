package factcheck

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ppiankov/textprobe/internal/extract"
	"github.com/ppiankov/textprobe/internal/metrics"
	"github.com/ppiankov/textprobe/internal/model"
	"github.com/ppiankov/textprobe/internal/validate"
	"go.uber.org/zap"
)

// ErrEmptyClaim is returned when the claim has no text
var ErrEmptyClaim = errors.New("empty claim")

// Defaults for keyword selection
const (
	DefaultDisplayKeywords = 3
	DefaultSearchKeywords  = 2
)

// Summarizer writes an optional LLM summary of a finished claim report
type Summarizer interface {
	IsEnabled() bool
	GenerateSummary(ctx context.Context, report model.ClaimReport) (*model.LLMSummary, error)
}

// Checker runs the full claim check
type Checker struct {
	searcher   *Searcher
	authority  *validate.AuthorityClassifier
	summarizer Summarizer
	display    int
	search     int
	logger     *zap.Logger
	metrics    *metrics.Metrics
	now        func() time.Time
}

// Option configures a Checker
type Option func(*Checker)

// WithSummarizer attaches an LLM summarizer
func WithSummarizer(s Summarizer) Option {
	return func(c *Checker) { c.summarizer = s }
}

// WithKeywordCounts overrides how many keywords are displayed and searched
func WithKeywordCounts(display, search int) Option {
	return func(c *Checker) {
		if display > 0 {
			c.display = display
		}
		if search > 0 {
			c.search = search
		}
	}
}

// WithLogger sets the logger
func WithLogger(l *zap.Logger) Option {
	return func(c *Checker) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMetrics sets the metrics sink
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Checker) { c.metrics = m }
}

// NewChecker creates a checker. A nil authority classifier uses the default domain lists.
func NewChecker(searcher *Searcher, authority *validate.AuthorityClassifier, opts ...Option) *Checker {
	if authority == nil {
		authority = validate.NewAuthorityClassifier(nil)
	}
	c := &Checker{
		searcher:  searcher,
		authority: authority,
		display:   DefaultDisplayKeywords,
		search:    DefaultSearchKeywords,
		logger:    zap.NewNop(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Check searches the claim's keywords, scores the sources and draws a verdict.
// Lookup failures end up in the report's notes, not in the error.
func (c *Checker) Check(ctx context.Context, claim string) (*model.ClaimReport, error) {
	claim = strings.TrimSpace(claim)
	if claim == "" {
		return nil, ErrEmptyClaim
	}

	keywords := extract.ExtractKeywords(claim)
	sources, notes := c.searcher.Search(ctx, extract.Head(keywords, c.search))
	analyzed := Analyze(claim, sources, c.authority)
	synthesis := Synthesize(claim, analyzed)

	report := &model.ClaimReport{
		ID:           uuid.NewString(),
		Claim:        claim,
		CheckedAt:    c.now().UTC(),
		Keywords:     append([]string{}, extract.Head(keywords, c.display)...),
		Lookups:      notes,
		Sources:      analyzed,
		Verdict:      synthesis.Verdict,
		AverageScore: synthesis.AverageScore,
		BestSource:   synthesis.Best,
		BestEvidence: synthesis.Evidence,
	}

	if c.summarizer != nil && c.summarizer.IsEnabled() {
		summary, err := c.summarizer.GenerateSummary(ctx, *report)
		if err != nil {
			c.logger.Warn("llm summary failed", zap.Error(err))
		}
		report.LLM = summary
	}

	c.metrics.ClaimChecked(string(report.Verdict))
	c.logger.Debug("claim checked",
		zap.String("id", report.ID),
		zap.Strings("keywords", report.Keywords),
		zap.Int("sources", len(analyzed)),
		zap.String("verdict", string(report.Verdict)),
		zap.Float64("average_score", report.AverageScore),
	)
	return report, nil
}
