package llm

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/ppiankov/textprobe/internal/model"
	"go.uber.org/zap"
)

// ErrCitationLeak is returned when a summary cites a URL outside the evidence allowlist
var ErrCitationLeak = errors.New("citation leak")

// Provider defines the interface for LLM providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Summarize generates a summary of the claim report with strict evidence mode
	Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// SummarizeRequest contains the input for LLM summarization
type SummarizeRequest struct {
	// Report is the claim check to summarize
	Report model.ClaimReport

	// EvidenceURLs is the allowlist of URLs the LLM may cite
	EvidenceURLs []string

	// Prompt is an optional custom prompt (if empty, use default)
	Prompt string

	// Model is the specific model to use (provider-specific)
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// SummarizeResponse contains the LLM's summary output
type SummarizeResponse struct {
	Summary    string
	CitedURLs  []string // URLs the LLM actually cited
	Model      string
	TokensUsed int
}

// Config holds LLM provider configuration
type Config struct {
	// Provider name: "openai", "ollama", ""
	Provider string

	Model   string
	APIKey  string // OpenAI only
	BaseURL string // Custom endpoint (Ollama, OpenAI-compatible gateways)
	Timeout int    // seconds

	// StrictEvidence enforces the URL allowlist
	StrictEvidence bool

	MaxTokens int

	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string

	Logger *zap.Logger // nil discards provider diagnostics
}

const defaultMaxTokens = 1000

// callParams is a request resolved against provider config
type callParams struct {
	prompt    string
	model     string
	maxTokens int
}

// resolve fills prompt, model, and token limit from the request, then the
// config, then fallbackModel
func (c Config) resolve(req SummarizeRequest, fallbackModel string) callParams {
	p := callParams{prompt: req.Prompt, model: req.Model, maxTokens: req.MaxTokens}
	if p.prompt == "" {
		p.prompt = BuildPrompt(req.Report, req.EvidenceURLs)
	}
	if p.model == "" {
		p.model = c.Model
	}
	if p.model == "" {
		p.model = fallbackModel
	}
	if p.maxTokens <= 0 {
		p.maxTokens = c.MaxTokens
	}
	if p.maxTokens <= 0 {
		p.maxTokens = defaultMaxTokens
	}
	return p
}

func (c Config) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:       "", // Disabled by default
		Timeout:        30,
		StrictEvidence: true,
		MaxTokens:      defaultMaxTokens,
	}
}

const systemPrompt = "You summarize textprobe claim checks and only describe how well the sources support the claim."

// BuildPrompt constructs the default prompt for a claim report
func BuildPrompt(report model.ClaimReport, evidenceURLs []string) string {
	var b strings.Builder

	fmt.Fprintf(&b, `You are summarizing a textprobe claim check. textprobe measures word overlap between a claim and reference summaries. It NEVER asserts truth or correctness.

CRITICAL RULES:
1. You MUST ONLY cite URLs from this allowed list:
%s

2. DO NOT infer, speculate, or cite external sources beyond this list.
3. If evidence is insufficient or missing, state that explicitly.
4. Focus on SUPPORT QUALITY, not truth.
5. Never say "this is true" or "this is false" - only describe evidence.

Claim: %s
Verdict: %s
Average score: %.2f
Keywords: %s
Sources analyzed: %d
`, joinURLs(evidenceURLs), report.Claim, report.Verdict.Label(), report.AverageScore,
		strings.Join(report.Keywords, ", "), len(report.Sources))

	for i, s := range report.Sources {
		if i >= 3 {
			break
		}
		fmt.Fprintf(&b, "- %s (relevance %.2f, credibility %.2f)\n", s.Title, s.Relevance, s.Credibility)
	}

	if len(report.BestEvidence) > 0 {
		b.WriteString("\nBest evidence:\n")
		for _, e := range report.BestEvidence {
			fmt.Fprintf(&b, "> %s\n", e)
		}
	}

	b.WriteString("\nProvide a 3-4 sentence summary focusing on evidence quality, not truth.")
	return b.String()
}

func joinURLs(urls []string) string {
	if len(urls) == 0 {
		return "(No evidence URLs available)"
	}
	var b strings.Builder
	for i, u := range urls {
		if i >= 20 {
			fmt.Fprintf(&b, "\n... and %d more URLs", len(urls)-20)
			break
		}
		fmt.Fprintf(&b, "\n- %s", u)
	}
	return b.String()
}

var urlPattern = regexp.MustCompile(`https?://[^\s\)]+`)

// extractURLs returns the distinct http(s) URLs in text, trailing punctuation removed
func extractURLs(text string) []string {
	seen := make(map[string]bool)
	var unique []string
	for _, u := range urlPattern.FindAllString(text, -1) {
		u = strings.TrimRight(u, ".,;:!?")
		if !seen[u] {
			seen[u] = true
			unique = append(unique, u)
		}
	}
	return unique
}

// verifyCitations fails on the first cited URL not in allowed
func verifyCitations(cited, allowed []string) error {
	allow := make(map[string]bool, len(allowed))
	for _, u := range allowed {
		allow[u] = true
	}
	for _, u := range cited {
		if !allow[u] {
			return fmt.Errorf("%w: LLM cited disallowed URL: %s", ErrCitationLeak, u)
		}
	}
	return nil
}
