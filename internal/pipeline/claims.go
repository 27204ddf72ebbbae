package pipeline

import (
	"fmt"
	"net/http"

	"github.com/ppiankov/textprobe/internal/cache"
	"github.com/ppiankov/textprobe/internal/factcheck"
	"github.com/ppiankov/textprobe/internal/llm"
	"github.com/ppiankov/textprobe/internal/metrics"
	"github.com/ppiankov/textprobe/internal/model"
	"github.com/ppiankov/textprobe/internal/util"
	"github.com/ppiankov/textprobe/internal/validate"
	"github.com/ppiankov/textprobe/internal/worker"
	"go.uber.org/zap"
)

// NewClaimChecker builds a claim checker from configuration: a cached,
// rate-limited Wikipedia searcher, the configured authority lists, and
// the LLM summarizer when a provider is set. m may be nil.
func NewClaimChecker(cfg *model.Config, logger *zap.Logger, m *metrics.Metrics) (*factcheck.Checker, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var c cache.Cache = cache.Noop{}
	if cfg.Cache.Enabled {
		c = cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
	}

	transport := util.NewTransport(cfg.HTTP.InsecureTLS, cfg.HTTP.HTTPProxy, cfg.HTTP.HTTPSProxy, cfg.HTTP.NoProxy)
	searcher := factcheck.NewSearcher(factcheck.SearcherConfig{
		BaseURL:   cfg.Wikipedia.BaseURL,
		Timeout:   cfg.Wikipedia.Timeout,
		UserAgent: cfg.HTTP.UserAgent,
		Client:    &http.Client{Transport: transport},
		Cache:     c,
		CacheTTL:  cfg.Cache.DiskTTL,
		Limiter:   worker.NewLimiter(cfg.RateLimiting.RequestsPerSecond, cfg.RateLimiting.BurstSize),
		Logger:    logger.Named("wikipedia"),
		Metrics:   m,
	})

	opts := []factcheck.Option{
		factcheck.WithKeywordCounts(cfg.FactCheck.DisplayKeywords, cfg.FactCheck.SearchKeywords),
		factcheck.WithLogger(logger.Named("factcheck")),
		factcheck.WithMetrics(m),
	}

	if cfg.LLM.Provider != "" {
		llmCfg := llm.ConfigFromModel(cfg.LLM, cfg.HTTP)
		llmCfg.Logger = logger.Named("llm")
		if llmCfg.Timeout <= 0 {
			llmCfg.Timeout = llm.DefaultConfig().Timeout
		}
		summarizer, err := llm.NewSummarizer(llmCfg)
		if err != nil {
			return nil, fmt.Errorf("create LLM summarizer: %w", err)
		}
		opts = append(opts, factcheck.WithSummarizer(summarizer))
	}

	return factcheck.NewChecker(searcher, validate.NewAuthorityClassifier(&cfg.Authority), opts...), nil
}
