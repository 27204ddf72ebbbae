package model

import (
	"errors"
	"fmt"
	"time"
)

// Threshold bounds accepted for the suspect cutoff
const (
	MinThreshold     = 0.1
	MaxThreshold     = 0.8
	DefaultThreshold = 0.3
)

// ErrInvalidThreshold is returned when the suspect cutoff is out of range
var ErrInvalidThreshold = errors.New("threshold out of range")

// Config is the complete textprobe configuration
type Config struct {
	Analysis     AnalysisConfig     `yaml:"analysis" mapstructure:"analysis"`
	Corpus       CorpusConfig       `yaml:"corpus" mapstructure:"corpus"`
	Rewrite      RewriteConfig      `yaml:"rewrite" mapstructure:"rewrite"`
	HTTP         HTTPConfig         `yaml:"http" mapstructure:"http"`
	Cache        CacheConfig        `yaml:"cache" mapstructure:"cache"`
	Wikipedia    WikipediaConfig    `yaml:"wikipedia" mapstructure:"wikipedia"`
	FactCheck    FactCheckConfig    `yaml:"factcheck" mapstructure:"factcheck"`
	Authority    AuthorityConfig    `yaml:"authority" mapstructure:"authority"`
	LLM          LLMConfig          `yaml:"llm" mapstructure:"llm"`
	Concurrency  ConcurrencyConfig  `yaml:"concurrency" mapstructure:"concurrency"`
	RateLimiting RateLimitingConfig `yaml:"rate_limiting" mapstructure:"rate_limiting"`
	Server       ServerConfig       `yaml:"server" mapstructure:"server"`
	Log          LogConfig          `yaml:"log" mapstructure:"log"`
	Output       OutputConfig       `yaml:"output" mapstructure:"output"`
}

// AnalysisConfig controls the similarity pipeline
type AnalysisConfig struct {
	Threshold         float64 `yaml:"threshold" mapstructure:"threshold"`                   // Suspect cutoff (0.1-0.8)
	MemoizeSimilarity bool    `yaml:"memoize_similarity" mapstructure:"memoize_similarity"` // Cache per-sentence similarity vectors
}

// CorpusConfig selects the reference corpus
type CorpusConfig struct {
	File string `yaml:"file" mapstructure:"file"` // YAML corpus file; empty uses the built-in corpus
}

// RewriteConfig controls rewrite suggestions
type RewriteConfig struct {
	ParaphrasePrefix string `yaml:"paraphrase_prefix" mapstructure:"paraphrase_prefix"`
}

// HTTPConfig controls outbound document fetches
type HTTPConfig struct {
	Timeout       time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent     string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes  int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	InsecureTLS   bool          `yaml:"insecure_tls" mapstructure:"insecure_tls"`
	HTTPProxy     string        `yaml:"http_proxy" mapstructure:"http_proxy"`
	HTTPSProxy    string        `yaml:"https_proxy" mapstructure:"https_proxy"`
	NoProxy       string        `yaml:"no_proxy" mapstructure:"no_proxy"`
	RespectRobots bool          `yaml:"respect_robots" mapstructure:"respect_robots"`
}

// CacheConfig controls the response cache
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir       string        `yaml:"dir" mapstructure:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl" mapstructure:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" mapstructure:"disk_ttl"`
}

// WikipediaConfig controls the claim-check source lookups
type WikipediaConfig struct {
	BaseURL string        `yaml:"base_url" mapstructure:"base_url"`
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// FactCheckConfig controls keyword selection for claim checks
type FactCheckConfig struct {
	DisplayKeywords int `yaml:"display_keywords" mapstructure:"display_keywords"`
	SearchKeywords  int `yaml:"search_keywords" mapstructure:"search_keywords"`
}

// AuthorityConfig configures source authority classification
type AuthorityConfig struct {
	PrimaryDomains   []string          `yaml:"primary_domains" mapstructure:"primary_domains"`
	SecondaryDomains []string          `yaml:"secondary_domains" mapstructure:"secondary_domains"`
	DomainMap        map[string]string `yaml:"domain_map,omitempty" mapstructure:"domain_map"`
	PathPatterns     []PathPattern     `yaml:"path_patterns,omitempty" mapstructure:"path_patterns"`
}

// PathPattern maps a URL path regex onto a tier name
type PathPattern struct {
	Pattern string `yaml:"pattern" mapstructure:"pattern"`
	Tier    string `yaml:"tier" mapstructure:"tier"`
}

// LLMConfig configures the optional claim-report summarizer
type LLMConfig struct {
	Provider       string `yaml:"provider" mapstructure:"provider"`
	Model          string `yaml:"model" mapstructure:"model"`
	APIKey         string `yaml:"-" mapstructure:"api_key"`
	BaseURL        string `yaml:"base_url,omitempty" mapstructure:"base_url"`
	Timeout        int    `yaml:"timeout" mapstructure:"timeout"` // seconds
	StrictEvidence bool   `yaml:"strict_evidence" mapstructure:"strict_evidence"`
	MaxTokens      int    `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// ConcurrencyConfig controls batch parallelism
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// RateLimitingConfig controls per-host outbound rate limits
type RateLimitingConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	BurstSize         int     `yaml:"burst_size" mapstructure:"burst_size"`
}

// ServerConfig controls the HTTP API
type ServerConfig struct {
	Addr            string        `yaml:"addr" mapstructure:"addr"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" mapstructure:"shutdown_timeout"`
}

// LogConfig controls the zap logger
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // console or json
}

// OutputConfig controls rendering
type OutputConfig struct {
	Verbose       bool `yaml:"verbose" mapstructure:"verbose"`
	IncludeFooter bool `yaml:"include_footer" mapstructure:"include_footer"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Analysis: AnalysisConfig{
			Threshold:         DefaultThreshold,
			MemoizeSimilarity: true,
		},
		Rewrite: RewriteConfig{
			ParaphrasePrefix: "In other words, ",
		},
		HTTP: HTTPConfig{
			Timeout:      30 * time.Second,
			UserAgent:    "textprobe/0.1 (+https://github.com/ppiankov/textprobe)",
			MaxBodyBytes: 2_000_000,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       ".textprobe-cache",
			MemoryTTL: 15 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		Wikipedia: WikipediaConfig{
			BaseURL: "https://en.wikipedia.org",
			Timeout: 5 * time.Second,
		},
		FactCheck: FactCheckConfig{
			DisplayKeywords: 3,
			SearchKeywords:  2,
		},
		Authority: AuthorityConfig{
			PrimaryDomains: []string{
				"gov", "gov.uk", "europa.eu", "legislation.gov.uk",
				"doi.org", "arxiv.org", "nih.gov", "who.int",
			},
			SecondaryDomains: []string{
				"wikipedia.org", "britannica.com", "bbc.co.uk", "reuters.com",
				"apnews.com", "nature.com", "sciencedirect.com",
			},
		},
		LLM: LLMConfig{
			Timeout:        30,
			StrictEvidence: true,
			MaxTokens:      1000,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		RateLimiting: RateLimitingConfig{
			RequestsPerSecond: 2,
			BurstSize:         5,
		},
		Server: ServerConfig{
			Addr:            ":8080",
			ShutdownTimeout: 10 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		Output: OutputConfig{
			IncludeFooter: true,
		},
	}
}

// ValidateThreshold checks the suspect cutoff against the accepted range
func ValidateThreshold(threshold float64) error {
	if threshold < MinThreshold || threshold > MaxThreshold {
		return fmt.Errorf("%w: %.2f (expected %.1f-%.1f)", ErrInvalidThreshold, threshold, MinThreshold, MaxThreshold)
	}
	return nil
}

// Validate checks the configuration for values the pipeline cannot run with
func (c *Config) Validate() error {
	if err := ValidateThreshold(c.Analysis.Threshold); err != nil {
		return fmt.Errorf("analysis.threshold: %w", err)
	}
	if c.HTTP.Timeout <= 0 {
		return fmt.Errorf("http.timeout must be positive")
	}
	if c.HTTP.MaxBodyBytes <= 0 {
		return fmt.Errorf("http.max_body_bytes must be positive")
	}
	if c.Wikipedia.BaseURL == "" {
		return fmt.Errorf("wikipedia.base_url is required")
	}
	if c.FactCheck.SearchKeywords <= 0 || c.FactCheck.DisplayKeywords <= 0 {
		return fmt.Errorf("factcheck keyword counts must be positive")
	}
	if c.Concurrency.Workers <= 0 {
		return fmt.Errorf("concurrency.workers must be positive")
	}
	return nil
}
