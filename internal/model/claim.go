package model

import "time"

// Verdict is the outcome of a claim check
type Verdict string

const (
	VerdictProbable     Verdict = "probable"     // Average source score above 0.3
	VerdictUncertain    Verdict = "uncertain"    // Average source score above 0.1
	VerdictUnlikely     Verdict = "unlikely"     // Anything lower
	VerdictInsufficient Verdict = "insufficient" // No sources could be analyzed
)

// Label returns the display label for the verdict
func (v Verdict) Label() string {
	switch v {
	case VerdictProbable:
		return "PROBABLE"
	case VerdictUncertain:
		return "UNCERTAIN"
	case VerdictUnlikely:
		return "UNLIKELY"
	default:
		return "INSUFFICIENT EVIDENCE"
	}
}

// Source is a reference summary fetched for one keyword
type Source struct {
	Title     string        `json:"title"`
	Extract   string        `json:"extract"`
	Link      string        `json:"link,omitempty"`
	Keyword   string        `json:"keyword"`
	Authority AuthorityTier `json:"authority"`
}

// AnalyzedSource is a source with its relevance and credibility scores
type AnalyzedSource struct {
	Source
	Relevance   float64 `json:"relevance"`
	Credibility float64 `json:"credibility"`
	Score       float64 `json:"score"` // relevance * credibility
}

// LookupOutcome classifies what happened when searching one keyword
type LookupOutcome string

const (
	LookupFound    LookupOutcome = "found"
	LookupNotFound LookupOutcome = "not_found"
	LookupError    LookupOutcome = "error"
)

// LookupNote records the outcome of one keyword lookup
type LookupNote struct {
	Keyword string        `json:"keyword"`
	Outcome LookupOutcome `json:"outcome"`
	Detail  string        `json:"detail,omitempty"`
}

// ClaimReport is the complete output of one claim check
type ClaimReport struct {
	ID        string    `json:"id"`
	Claim     string    `json:"claim"`
	CheckedAt time.Time `json:"checked_at"`

	Keywords []string     `json:"keywords"` // Display keywords (first three)
	Lookups  []LookupNote `json:"lookups"`

	Sources      []AnalyzedSource `json:"sources"`
	Verdict      Verdict          `json:"verdict"`
	AverageScore float64          `json:"average_score"`
	BestSource   *AnalyzedSource  `json:"best_source,omitempty"`
	BestEvidence []string         `json:"best_evidence,omitempty"`

	LLM *LLMSummary `json:"llm,omitempty"` // Optional LLM summary (separate, never affects the verdict)
}

// SourceLinks returns the links of all analyzed sources, in order
func (r *ClaimReport) SourceLinks() []string {
	var links []string
	for _, s := range r.Sources {
		if s.Link != "" {
			links = append(links, s.Link)
		}
	}
	return links
}

// LLMSummary contains optional LLM-generated summary
// CRITICAL: This never affects the verdict and is clearly separated
type LLMSummary struct {
	Enabled        bool     `json:"enabled"`
	Provider       string   `json:"provider,omitempty"` // openai, ollama
	Model          string   `json:"model,omitempty"`
	StrictEvidence bool     `json:"strict_evidence"` // Whether citation enforcement was enabled
	SummaryMD      string   `json:"summary_md,omitempty"`
	Warnings       []string `json:"warnings,omitempty"`
}
