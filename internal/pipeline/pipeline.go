// Package pipeline wires document loading, the similarity analyzer, and
// report rendering together.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ppiankov/textprobe/internal/cache"
	"github.com/ppiankov/textprobe/internal/corpus"
	"github.com/ppiankov/textprobe/internal/extract/adapters"
	"github.com/ppiankov/textprobe/internal/llm"
	"github.com/ppiankov/textprobe/internal/metrics"
	"github.com/ppiankov/textprobe/internal/model"
	"github.com/ppiankov/textprobe/internal/rewrite"
	"github.com/ppiankov/textprobe/internal/similarity"
	"github.com/ppiankov/textprobe/internal/util"
	"go.uber.org/zap"
)

// Pipeline orchestrates loading and analyzing documents
type Pipeline struct {
	analyzer *Analyzer
	loader   *Loader
	renderer *Renderer
	config   *model.Config
	logger   *zap.Logger
}

// NewPipeline creates a pipeline from configuration. m may be nil.
func NewPipeline(cfg *model.Config, logger *zap.Logger, m *metrics.Metrics) (*Pipeline, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	c, err := corpus.FromFileOrDefault(cfg.Corpus.File)
	if err != nil {
		return nil, fmt.Errorf("load corpus: %w", err)
	}

	scorerOpts := []similarity.Option{
		similarity.WithLogger(logger.Named("similarity")),
		similarity.WithMetrics(m),
	}
	if cfg.Analysis.MemoizeSimilarity {
		// Vectors depend on the corpus fingerprint, so memory is enough
		scorerOpts = append(scorerOpts, similarity.WithMemo(cache.NewMemoryCache(cfg.Cache.MemoryTTL, 10*time.Minute)))
	}

	fetcher := NewFetcher(cfg.HTTP.Timeout, cfg.HTTP.UserAgent, cfg.HTTP.MaxBodyBytes,
		cfg.HTTP.InsecureTLS, cfg.HTTP.HTTPProxy, cfg.HTTP.HTTPSProxy, cfg.HTTP.NoProxy)
	if cfg.HTTP.RespectRobots {
		fetcher.WithRobots(util.NewRobotsChecker(cfg.HTTP.UserAgent, cfg.HTTP.Timeout))
	}

	return &Pipeline{
		analyzer: NewAnalyzer(c, similarity.NewScorer(scorerOpts...), rewrite.NewSuggester(cfg.Rewrite.ParaphrasePrefix), logger.Named("analyzer"), m),
		loader:   NewLoader(fetcher, adapters.NewRegistry()),
		renderer: NewRenderer(cfg.Output.IncludeFooter),
		config:   cfg,
		logger:   logger,
	}, nil
}

// Analyzer exposes the underlying analyzer
func (p *Pipeline) Analyzer() *Analyzer {
	return p.analyzer
}

// Renderer exposes the renderer
func (p *Pipeline) Renderer() *Renderer {
	return p.renderer
}

// AnalyzeText analyzes literal text with the given cutoff
func (p *Pipeline) AnalyzeText(ctx context.Context, text, source string, threshold float64) (*model.Report, error) {
	return p.analyzer.Analyze(ctx, TextDocument(text, source), threshold)
}

// AnalyzeRef loads a file path, URL, or "-" and analyzes it with the configured cutoff
func (p *Pipeline) AnalyzeRef(ctx context.Context, ref string) (*model.Report, error) {
	doc, err := p.loader.Load(ctx, ref)
	if err != nil {
		return nil, err
	}
	return p.analyzer.Analyze(ctx, doc, p.config.Analysis.Threshold)
}

// RenderReport writes the requested outputs and prints the terminal summary
func (p *Pipeline) RenderReport(report *model.Report, jsonPath string, mdPath string, verbose bool) error {
	if jsonPath != "" {
		if err := p.renderer.RenderJSON(report, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote JSON: %s\n", jsonPath)
		}
	}

	if mdPath != "" {
		if err := p.renderer.RenderMarkdown(report, mdPath); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote Markdown: %s\n", mdPath)
		}
	}

	p.renderer.RenderSummary(report)
	return nil
}

// RenderClaimReport writes a claim report and, when present, its LLM summary
// next to the Markdown path
func (p *Pipeline) RenderClaimReport(report *model.ClaimReport, jsonPath string, mdPath string, verbose bool) error {
	if jsonPath != "" {
		if err := p.renderer.RenderJSON(report, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote JSON: %s\n", jsonPath)
		}
	}

	if mdPath != "" {
		if err := p.renderer.RenderClaimMarkdown(report, mdPath); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote Markdown: %s\n", mdPath)
		}
	}

	if report.LLM != nil && report.LLM.Enabled && mdPath != "" {
		llmPath := strings.TrimSuffix(mdPath, ".md") + ".llm.md"
		if err := p.renderer.RenderLLMMarkdown(llm.RenderSeparateMarkdown(report.LLM), llmPath); err != nil {
			p.logger.Warn("failed to write LLM summary", zap.String("path", llmPath), zap.Error(err))
		} else if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote LLM Summary: %s\n", llmPath)
		}
	}

	p.renderer.RenderClaimSummary(report)
	return nil
}
