// Package factcheck checks a short claim against Wikipedia page summaries.
//
// A check runs in three stages: the Searcher looks up claim keywords, the
// analyzer scores each source by word overlap and authority, and the
// synthesizer turns the scores into a verdict.
package factcheck

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ppiankov/textprobe/internal/cache"
	"github.com/ppiankov/textprobe/internal/metrics"
	"github.com/ppiankov/textprobe/internal/model"
	"github.com/ppiankov/textprobe/internal/worker"
	"go.uber.org/zap"
)

const maxSummaryBytes = 1 << 20

// summaryResponse is the subset of the REST page summary we use
type summaryResponse struct {
	Title       string `json:"title"`
	Extract     string `json:"extract"`
	ContentURLs struct {
		Desktop struct {
			Page string `json:"page"`
		} `json:"desktop"`
	} `json:"content_urls"`
}

// SearcherConfig configures a Searcher
type SearcherConfig struct {
	BaseURL   string
	Timeout   time.Duration // per lookup
	UserAgent string
	Client    *http.Client
	Cache     cache.Cache
	CacheTTL  time.Duration
	Limiter   *worker.Limiter
	Logger    *zap.Logger
	Metrics   *metrics.Metrics
}

// Searcher fetches page summaries from the Wikipedia REST API
type Searcher struct {
	baseURL   string
	timeout   time.Duration
	userAgent string
	client    *http.Client
	cache     cache.Cache
	cacheTTL  time.Duration
	limiter   *worker.Limiter
	logger    *zap.Logger
	metrics   *metrics.Metrics
}

// NewSearcher creates a searcher; zero fields take defaults
func NewSearcher(cfg SearcherConfig) *Searcher {
	s := &Searcher{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		timeout:   cfg.Timeout,
		userAgent: cfg.UserAgent,
		client:    cfg.Client,
		cache:     cfg.Cache,
		cacheTTL:  cfg.CacheTTL,
		limiter:   cfg.Limiter,
		logger:    cfg.Logger,
		metrics:   cfg.Metrics,
	}
	if s.baseURL == "" {
		s.baseURL = "https://en.wikipedia.org"
	}
	if s.timeout <= 0 {
		s.timeout = 5 * time.Second
	}
	if s.client == nil {
		s.client = &http.Client{}
	}
	if s.cache == nil {
		s.cache = cache.Noop{}
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	return s
}

// Search looks up each keyword in order. Failures are recorded as notes
// and never stop the remaining lookups.
func (s *Searcher) Search(ctx context.Context, keywords []string) ([]model.Source, []model.LookupNote) {
	var sources []model.Source
	notes := make([]model.LookupNote, 0, len(keywords))

	for _, kw := range keywords {
		src, note := s.Lookup(ctx, kw)
		notes = append(notes, note)
		s.metrics.WikipediaLookup(string(note.Outcome))
		if src != nil {
			sources = append(sources, *src)
		}
	}
	return sources, notes
}

// Lookup fetches the summary for one keyword
func (s *Searcher) Lookup(ctx context.Context, keyword string) (*model.Source, model.LookupNote) {
	note := model.LookupNote{Keyword: keyword}
	endpoint := s.baseURL + "/api/rest_v1/page/summary/" + url.PathEscape(keyword)
	key := cache.Key("wiki", endpoint)

	var resp summaryResponse
	if cache.GetJSON(s.cache, key, &resp) {
		note.Outcome = model.LookupFound
		note.Detail = "cached"
		return s.toSource(keyword, resp), note
	}

	status, err := s.fetch(ctx, endpoint, &resp)
	switch {
	case err != nil:
		s.logger.Debug("wikipedia lookup failed", zap.String("keyword", keyword), zap.Error(err))
		note.Outcome = model.LookupError
		note.Detail = err.Error()
		return nil, note
	case status != http.StatusOK:
		note.Outcome = model.LookupNotFound
		note.Detail = fmt.Sprintf("status %d", status)
		return nil, note
	}

	if err := cache.SetJSON(s.cache, key, resp, s.cacheTTL); err != nil {
		s.logger.Debug("wikipedia cache write failed", zap.Error(err))
	}

	note.Outcome = model.LookupFound
	return s.toSource(keyword, resp), note
}

func (s *Searcher) fetch(ctx context.Context, endpoint string, out *summaryResponse) (int, error) {
	if s.limiter != nil {
		if err := s.limiter.Wait(ctx, endpoint); err != nil {
			return 0, fmt.Errorf("rate limit: %w", err)
		}
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if s.userAgent != "" {
		req.Header.Set("User-Agent", s.userAgent)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxSummaryBytes))
		return resp.StatusCode, nil
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxSummaryBytes)).Decode(out); err != nil {
		return resp.StatusCode, fmt.Errorf("decode summary: %w", err)
	}
	return resp.StatusCode, nil
}

func (s *Searcher) toSource(keyword string, resp summaryResponse) *model.Source {
	link := resp.ContentURLs.Desktop.Page
	if link == "" {
		title := resp.Title
		if title == "" {
			title = keyword
		}
		link = s.baseURL + "/wiki/" + url.PathEscape(strings.ReplaceAll(title, " ", "_"))
	}
	return &model.Source{
		Title:   resp.Title,
		Extract: resp.Extract,
		Link:    link,
		Keyword: keyword,
	}
}
