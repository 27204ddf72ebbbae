package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ppiankov/textprobe/internal/model"
)

const footer = "_textprobe flags similarity to known texts. A high-risk sentence is a prompt to review, not proof of copying._\n"

// Renderer writes reports as JSON, Markdown, and terminal summaries
type Renderer struct {
	includeFooter bool
	out           io.Writer
}

// NewRenderer creates a renderer that prints summaries to stdout
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter, out: os.Stdout}
}

// WithOutput redirects terminal summaries
func (r *Renderer) WithOutput(w io.Writer) *Renderer {
	r.out = w
	return r
}

// RenderJSON writes v as indented JSON to path
func (r *Renderer) RenderJSON(v any, path string) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal JSON: %w", err)
	}
	return writeFile(path, append(data, '\n'))
}

// RenderMarkdown writes the Markdown form of report to path
func (r *Renderer) RenderMarkdown(report *model.Report, path string) error {
	return writeFile(path, []byte(r.Markdown(report)))
}

// RenderLLMMarkdown writes an already rendered LLM summary to path
func (r *Renderer) RenderLLMMarkdown(markdown string, path string) error {
	return writeFile(path, []byte(markdown))
}

// Markdown renders the summary table and one section per sentence
func (r *Renderer) Markdown(report *model.Report) string {
	var b strings.Builder
	s := report.Summary

	b.WriteString("# Similarity report\n\n")
	fmt.Fprintf(&b, "- **Source:** %s\n", report.Source)
	fmt.Fprintf(&b, "- **Analyzed:** %s\n", report.CreatedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(&b, "- **Suspect threshold:** %.2f\n", report.Threshold)
	fmt.Fprintf(&b, "- **Corpus:** `%s`\n\n", report.CorpusFingerprint)

	b.WriteString("## Summary\n\n")
	b.WriteString("| Status | Sentences | Share |\n|---|---:|---:|\n")
	fmt.Fprintf(&b, "| %s %s | %d | %s |\n", model.StatusHighRisk.Icon(), model.StatusHighRisk.Label(), s.HighRisk, formatPercent(s.HighRiskPercent))
	fmt.Fprintf(&b, "| %s %s | %d | %s |\n", model.StatusSuspect.Icon(), model.StatusSuspect.Label(), s.Suspect, formatPercent(s.SuspectPercent))
	fmt.Fprintf(&b, "| %s %s | %d | %s |\n", model.StatusOK.Icon(), model.StatusOK.Label(), s.OK, formatPercent(s.OKPercent))
	fmt.Fprintf(&b, "| **Total** | %d | |\n\n", s.Total)

	b.WriteString("## Sentences\n\n")
	for _, res := range report.Sentences {
		fmt.Fprintf(&b, "### %s Sentence %d: %s (%s)\n\n", res.Status.Icon(), res.Position+1, res.Status.Label(), formatPercent(res.MaxSimilarity*100))
		fmt.Fprintf(&b, "> %s\n\n", res.Sentence)

		if res.Status == model.StatusOK {
			continue
		}

		b.WriteString("**Similar reference")
		if res.MatchedCategory != "" {
			fmt.Fprintf(&b, " (%s)", res.MatchedCategory)
		}
		b.WriteString(":**\n\n")
		fmt.Fprintf(&b, "> %s\n\n", res.MatchedReference)

		suggestions := report.SuggestionsFor(res.Position)
		if len(suggestions) == 0 {
			continue
		}
		b.WriteString("**Rewrite suggestions:**\n\n")
		for _, sug := range suggestions {
			fmt.Fprintf(&b, "- _%s_: %s\n", suggestionTitle(sug.Kind), sug.Suggestion)
			if len(sug.Changes) > 0 {
				fmt.Fprintf(&b, "  - Changes: %s\n", strings.Join(sug.Changes, ", "))
			}
		}
		b.WriteString("\n")
	}

	if r.includeFooter {
		b.WriteString("---\n\n")
		b.WriteString(footer)
	}
	return b.String()
}

// RenderClaimMarkdown writes the Markdown form of a claim report to path
func (r *Renderer) RenderClaimMarkdown(report *model.ClaimReport, path string) error {
	return writeFile(path, []byte(r.ClaimMarkdown(report)))
}

// ClaimMarkdown renders the verdict, the lookups and the analyzed sources
func (r *Renderer) ClaimMarkdown(report *model.ClaimReport) string {
	var b strings.Builder

	b.WriteString("# Claim check\n\n")
	fmt.Fprintf(&b, "> %s\n\n", report.Claim)
	fmt.Fprintf(&b, "- **Verdict:** %s\n", report.Verdict.Label())
	if report.Verdict != model.VerdictInsufficient {
		fmt.Fprintf(&b, "- **Average score:** %.2f\n", report.AverageScore)
	}
	fmt.Fprintf(&b, "- **Keywords:** %s\n", strings.Join(report.Keywords, ", "))
	fmt.Fprintf(&b, "- **Checked:** %s\n\n", report.CheckedAt.Format("2006-01-02 15:04:05 MST"))

	if len(report.Lookups) > 0 {
		b.WriteString("## Lookups\n\n| Keyword | Outcome | Detail |\n|---|---|---|\n")
		for _, note := range report.Lookups {
			fmt.Fprintf(&b, "| %s | %s | %s |\n", note.Keyword, note.Outcome, note.Detail)
		}
		b.WriteString("\n")
	}

	if len(report.Sources) > 0 {
		b.WriteString("## Sources\n\n| Source | Authority | Relevance | Credibility | Score |\n|---|---|---:|---:|---:|\n")
		for _, src := range report.Sources {
			fmt.Fprintf(&b, "| [%s](%s) | %s | %.2f | %.2f | %.2f |\n",
				src.Title, src.Link, src.Authority, src.Relevance, src.Credibility, src.Score)
		}
		b.WriteString("\n")
	}

	if len(report.BestEvidence) > 0 {
		b.WriteString("## Evidence\n\n")
		for _, e := range report.BestEvidence {
			fmt.Fprintf(&b, "> %s\n\n", e)
		}
	}

	if r.includeFooter {
		b.WriteString("---\n\n")
		b.WriteString("_The verdict reflects word overlap with reference summaries. It does not establish whether the claim is true._\n")
	}
	return b.String()
}

// RenderSummary prints the report to the terminal
func (r *Renderer) RenderSummary(report *model.Report) {
	s := report.Summary
	w := r.out

	fmt.Fprintf(w, "\nSource: %s\n", report.Source)
	fmt.Fprintf(w, "Sentences: %d   %s %d (%s)   %s %d (%s)   %s %d (%s)\n\n",
		s.Total,
		model.StatusHighRisk.Icon(), s.HighRisk, formatPercent(s.HighRiskPercent),
		model.StatusSuspect.Icon(), s.Suspect, formatPercent(s.SuspectPercent),
		model.StatusOK.Icon(), s.OK, formatPercent(s.OKPercent))

	for _, res := range report.Sentences {
		fmt.Fprintf(w, "%s %3d  %-9s %6s  %s\n",
			res.Status.Icon(), res.Position+1, res.Status.Label(), formatPercent(res.MaxSimilarity*100), truncate(res.Sentence, 80))
		if res.Status == model.StatusOK {
			continue
		}
		fmt.Fprintf(w, "        ↳ %s\n", truncate(res.MatchedReference, 80))
		for _, sug := range report.SuggestionsFor(res.Position) {
			fmt.Fprintf(w, "        ✎ %s\n", truncate(sug.Suggestion, 80))
		}
	}
	fmt.Fprintln(w)
}

// RenderClaimSummary prints a claim check result to the terminal
func (r *Renderer) RenderClaimSummary(report *model.ClaimReport) {
	w := r.out

	fmt.Fprintf(w, "\nClaim: %s\n", report.Claim)
	fmt.Fprintf(w, "Keywords: %s\n", strings.Join(report.Keywords, ", "))
	fmt.Fprintf(w, "Verdict: %s", report.Verdict.Label())
	if report.Verdict != model.VerdictInsufficient {
		fmt.Fprintf(w, " (average score %.2f)", report.AverageScore)
	}
	fmt.Fprintln(w)

	for _, note := range report.Lookups {
		if note.Outcome != model.LookupFound {
			fmt.Fprintf(w, "  ! %s: %s %s\n", note.Keyword, note.Outcome, note.Detail)
		}
	}

	for _, src := range report.Sources {
		fmt.Fprintf(w, "  • %s  relevance %.2f × credibility %.2f = %.2f\n    %s\n",
			src.Title, src.Relevance, src.Credibility, src.Score, src.Link)
	}

	if len(report.BestEvidence) > 0 {
		fmt.Fprintln(w, "Evidence:")
		for _, e := range report.BestEvidence {
			fmt.Fprintf(w, "  \"%s\"\n", e)
		}
	}

	if report.LLM != nil && report.LLM.Enabled && report.LLM.SummaryMD != "" {
		fmt.Fprintf(w, "\nSummary (%s/%s):\n%s\n", report.LLM.Provider, report.LLM.Model, report.LLM.SummaryMD)
	}
	fmt.Fprintln(w)
}

// RenderEmotion prints an emotion adjustment to the terminal
func (r *Renderer) RenderEmotion(adj *model.EmotionAdjustment) {
	w := r.out
	fmt.Fprintf(w, "\nContext: %s\n", strings.Join(adj.Context, ", "))
	fmt.Fprintf(w, "Detected: %s (%.0f%%)\n", adj.OriginalEmotion, adj.OriginalConfidence)
	fmt.Fprintf(w, "Adjusted: %s (%.0f%%)\n", adj.AdjustedEmotion, adj.AdjustedConfidence)
	fmt.Fprintf(w, "Reason: %s\n\n", adj.Reason)
}

func suggestionTitle(kind model.SuggestionKind) string {
	switch kind {
	case model.SuggestionTermSubstitution:
		return "Term substitution"
	case model.SuggestionRestructuring:
		return "Restructuring"
	default:
		return string(kind)
	}
}

func formatPercent(p float64) string {
	return fmt.Sprintf("%.1f%%", p)
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	return os.WriteFile(path, data, 0o644)
}
