package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/ppiankov/textprobe/internal/model"
)

// MetadataAnalyzeText describes the analyze_text tool
var MetadataAnalyzeText = &mcp.Tool{
	Name: "analyze_text",
	Description: "Split text into sentences and score each one against the reference corpus with TF-IDF " +
		"cosine similarity. Sentences above 0.6 are high_risk, above the threshold suspect, otherwise ok. " +
		"High-risk sentences come with rewrite suggestions.",
	InputSchema: map[string]interface{}{
		"type":     "object",
		"required": []string{"text"},
		"properties": map[string]interface{}{
			"text": map[string]interface{}{
				"type":        "string",
				"description": "Text to analyze",
			},
			"threshold": map[string]interface{}{
				"type":        "number",
				"description": "Suspect cutoff between 0.1 and 0.8 (default 0.3)",
				"minimum":     model.MinThreshold,
				"maximum":     model.MaxThreshold,
			},
		},
	},
}

// MetadataCheckClaim describes the check_claim tool
var MetadataCheckClaim = &mcp.Tool{
	Name: "check_claim",
	Description: "Look up the claim's keywords on Wikipedia and score how much of the claim the summaries cover. " +
		"The verdict (probable, uncertain, unlikely, insufficient) describes support, not truth.",
	InputSchema: map[string]interface{}{
		"type":     "object",
		"required": []string{"claim"},
		"properties": map[string]interface{}{
			"claim": map[string]interface{}{
				"type":        "string",
				"description": "Short factual claim to check",
			},
		},
	},
}

// InputAnalyzeText is the input for analyze_text
type InputAnalyzeText struct {
	Text      string   `json:"text"`
	Threshold *float64 `json:"threshold,omitempty"`
}

// OutputAnalyzeText is the structured result of analyze_text
type OutputAnalyzeText struct {
	ReportID  string        `json:"report_id"`
	Threshold float64       `json:"threshold"`
	Summary   model.Summary `json:"summary"`
	Sentences []Sentence    `json:"sentences"`
}

// Sentence is one classified sentence with its suggestions
type Sentence struct {
	Position         int          `json:"position"`
	Sentence         string       `json:"sentence"`
	Status           string       `json:"status"`
	MaxSimilarity    float64      `json:"max_similarity"`
	MatchedReference string       `json:"matched_reference,omitempty"`
	MatchedCategory  string       `json:"matched_category,omitempty"`
	Suggestions      []Suggestion `json:"suggestions"`
}

// Suggestion is one rewrite proposal
type Suggestion struct {
	Kind       string   `json:"kind"`
	Suggestion string   `json:"suggestion"`
	Changes    []string `json:"changes"`
}

// InputCheckClaim is the input for check_claim
type InputCheckClaim struct {
	Claim string `json:"claim"`
}

// OutputCheckClaim is the structured result of check_claim
type OutputCheckClaim struct {
	ReportID     string   `json:"report_id"`
	Claim        string   `json:"claim"`
	Verdict      string   `json:"verdict"`
	VerdictLabel string   `json:"verdict_label"`
	AverageScore float64  `json:"average_score"`
	Keywords     []string `json:"keywords"`
	Sources      []Source `json:"sources"`
	Evidence     []string `json:"evidence"`
	Lookups      []Lookup `json:"lookups"`
	Summary      string   `json:"summary,omitempty"`
}

// Source is one analyzed reference summary
type Source struct {
	Title       string  `json:"title"`
	Link        string  `json:"link"`
	Keyword     string  `json:"keyword"`
	Authority   string  `json:"authority"`
	Relevance   float64 `json:"relevance"`
	Credibility float64 `json:"credibility"`
	Score       float64 `json:"score"`
}

// Lookup is the outcome of one keyword search
type Lookup struct {
	Keyword string `json:"keyword"`
	Outcome string `json:"outcome"`
	Detail  string `json:"detail,omitempty"`
}

// AnalyzeText runs the similarity analysis
func (s *Server) AnalyzeText(ctx context.Context, _ *mcp.CallToolRequest, input InputAnalyzeText) (*mcp.CallToolResult, OutputAnalyzeText, error) {
	if strings.TrimSpace(input.Text) == "" {
		return nil, OutputAnalyzeText{}, fmt.Errorf("text is required")
	}

	threshold := s.threshold
	if input.Threshold != nil {
		threshold = *input.Threshold
	}
	if err := model.ValidateThreshold(threshold); err != nil {
		return nil, OutputAnalyzeText{}, err
	}

	report, err := s.analyzer.AnalyzeText(ctx, input.Text, "mcp", threshold)
	if err != nil {
		return nil, OutputAnalyzeText{}, err
	}
	return nil, analyzeOutput(report), nil
}

// CheckClaim runs a claim check
func (s *Server) CheckClaim(ctx context.Context, _ *mcp.CallToolRequest, input InputCheckClaim) (*mcp.CallToolResult, OutputCheckClaim, error) {
	report, err := s.checker.Check(ctx, input.Claim)
	if err != nil {
		return nil, OutputCheckClaim{}, err
	}
	return nil, claimOutput(report), nil
}

func analyzeOutput(report *model.Report) OutputAnalyzeText {
	out := OutputAnalyzeText{
		ReportID:  report.ID,
		Threshold: report.Threshold,
		Summary:   report.Summary,
		Sentences: make([]Sentence, 0, len(report.Sentences)),
	}
	for _, res := range report.Sentences {
		sent := Sentence{
			Position:         res.Position,
			Sentence:         res.Sentence,
			Status:           string(res.Status),
			MaxSimilarity:    res.MaxSimilarity,
			MatchedReference: res.MatchedReference,
			MatchedCategory:  res.MatchedCategory,
			Suggestions:      []Suggestion{},
		}
		for _, sug := range report.SuggestionsFor(res.Position) {
			sent.Suggestions = append(sent.Suggestions, Suggestion{
				Kind:       string(sug.Kind),
				Suggestion: sug.Suggestion,
				Changes:    append([]string{}, sug.Changes...),
			})
		}
		out.Sentences = append(out.Sentences, sent)
	}
	return out
}

func claimOutput(report *model.ClaimReport) OutputCheckClaim {
	out := OutputCheckClaim{
		ReportID:     report.ID,
		Claim:        report.Claim,
		Verdict:      string(report.Verdict),
		VerdictLabel: report.Verdict.Label(),
		AverageScore: report.AverageScore,
		Keywords:     append([]string{}, report.Keywords...),
		Sources:      make([]Source, 0, len(report.Sources)),
		Evidence:     append([]string{}, report.BestEvidence...),
		Lookups:      make([]Lookup, 0, len(report.Lookups)),
	}
	for _, src := range report.Sources {
		out.Sources = append(out.Sources, Source{
			Title:       src.Title,
			Link:        src.Link,
			Keyword:     src.Keyword,
			Authority:   src.Authority.String(),
			Relevance:   src.Relevance,
			Credibility: src.Credibility,
			Score:       src.Score,
		})
	}
	for _, note := range report.Lookups {
		out.Lookups = append(out.Lookups, Lookup{Keyword: note.Keyword, Outcome: string(note.Outcome), Detail: note.Detail})
	}
	if report.LLM != nil && report.LLM.Enabled {
		out.Summary = report.LLM.SummaryMD
	}
	return out
}
