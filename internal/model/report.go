package model

import "time"

// Status is the risk label assigned to a single sentence
type Status string

const (
	StatusHighRisk Status = "high_risk" // Similarity above the fixed high-risk cutoff
	StatusSuspect  Status = "suspect"   // Similarity above the caller's suspect cutoff
	StatusOK       Status = "ok"        // Everything else
)

// Label returns the display label for the status
func (s Status) Label() string {
	switch s {
	case StatusHighRisk:
		return "HIGH RISK"
	case StatusSuspect:
		return "SUSPECT"
	default:
		return "OK"
	}
}

// Icon returns the terminal/Markdown marker for the status
func (s Status) Icon() string {
	switch s {
	case StatusHighRisk:
		return "🔴"
	case StatusSuspect:
		return "🟡"
	default:
		return "🟢"
	}
}

// SentenceResult is the similarity verdict for one input sentence
type SentenceResult struct {
	Sentence         string  `json:"sentence"`                   // The analyzed sentence
	MaxSimilarity    float64 `json:"max_similarity"`             // Highest cosine similarity across the corpus
	MatchedReference string  `json:"matched_reference"`          // Most similar reference sentence
	MatchedCategory  string  `json:"matched_category,omitempty"` // Category of the matched reference (display only)
	Status           Status  `json:"status"`                     // Derived risk label
	Position         int     `json:"position"`                   // Sentence index in the document (0-based)
}

// SuggestionKind classifies a rewrite suggestion
type SuggestionKind string

const (
	SuggestionTermSubstitution SuggestionKind = "term_substitution" // Regex rule table applied
	SuggestionRestructuring    SuggestionKind = "restructuring"     // Generic paraphrase wrapper
)

// RewriteSuggestion is one proposed rewrite of a flagged sentence
type RewriteSuggestion struct {
	Kind       SuggestionKind `json:"kind"`
	Original   string         `json:"original"`
	Suggestion string         `json:"suggestion"`
	Changes    []string       `json:"changes"` // Human-readable "pattern → replacement" descriptions
}

// Summary tallies sentence statuses across a report
type Summary struct {
	Total           int     `json:"total"`
	HighRisk        int     `json:"high_risk"`
	Suspect         int     `json:"suspect"`
	OK              int     `json:"ok"`
	HighRiskPercent float64 `json:"high_risk_percent"`
	SuspectPercent  float64 `json:"suspect_percent"`
	OKPercent       float64 `json:"ok_percent"`
}

// Report is the complete output of one similarity analysis
type Report struct {
	ID                string    `json:"id"`
	Source            string    `json:"source"`             // Where the text came from (file, URL, "stdin", "inline")
	CreatedAt         time.Time `json:"created_at"`         // When the analysis ran
	Threshold         float64   `json:"threshold"`          // Suspect cutoff used
	CorpusFingerprint string    `json:"corpus_fingerprint"` // Identifies the reference corpus

	Sentences   []SentenceResult            `json:"sentences"`
	Suggestions map[int][]RewriteSuggestion `json:"suggestions,omitempty"` // Keyed by sentence position

	Summary Summary `json:"summary"`
}

// SuggestionsFor returns the rewrite suggestions for a sentence position
func (r *Report) SuggestionsFor(position int) []RewriteSuggestion {
	if r.Suggestions == nil {
		return nil
	}
	return r.Suggestions[position]
}
