package factcheck

import (
	"strings"

	"github.com/ppiankov/textprobe/internal/model"
	"github.com/ppiankov/textprobe/internal/validate"
)

// Analyze scores each source: relevance is the share of distinct claim
// words that also appear in the extract, weighted by the source's authority.
// A nil classifier uses the default domain lists.
func Analyze(claim string, sources []model.Source, authority *validate.AuthorityClassifier) []model.AnalyzedSource {
	if authority == nil {
		authority = validate.NewAuthorityClassifier(nil)
	}
	claimWords := wordSet(claim)

	analyzed := make([]model.AnalyzedSource, 0, len(sources))
	for _, src := range sources {
		relevance := 0.0
		if len(claimWords) > 0 {
			sourceWords := wordSet(src.Extract)
			overlap := 0
			for w := range claimWords {
				if sourceWords[w] {
					overlap++
				}
			}
			relevance = float64(overlap) / float64(len(claimWords))
		}

		src.Authority = authority.Classify(src.Link)
		credibility := src.Authority.Credibility()

		analyzed = append(analyzed, model.AnalyzedSource{
			Source:      src,
			Relevance:   relevance,
			Credibility: credibility,
			Score:       relevance * credibility,
		})
	}
	return analyzed
}

// wordSet lowercases s and splits it on whitespace
func wordSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(s)) {
		set[w] = true
	}
	return set
}
