package rewrite

import (
	"strings"

	"github.com/ppiankov/textprobe/internal/model"
)

const (
	// DefaultParaphrasePrefix opens the restructuring suggestion
	DefaultParaphrasePrefix = "In other words, "

	// restructureMinWords is the word count a sentence must exceed to get a paraphrase
	restructureMinWords = 10

	restructureChange = "added explanatory connective"
)

// Suggester applies the rule table and the paraphrase wrapper
type Suggester struct {
	rules  []Rule
	prefix string
}

// NewSuggester creates a suggester with the default rules.
// An empty prefix falls back to DefaultParaphrasePrefix.
func NewSuggester(prefix string) *Suggester {
	if prefix == "" {
		prefix = DefaultParaphrasePrefix
	}
	return &Suggester{rules: DefaultRules, prefix: prefix}
}

// Suggest returns zero, one or two suggestions for a sentence
func (s *Suggester) Suggest(sentence string) []model.RewriteSuggestion {
	var suggestions []model.RewriteSuggestion

	if rewritten, changes := s.substitute(sentence); len(changes) > 0 {
		suggestions = append(suggestions, model.RewriteSuggestion{
			Kind:       model.SuggestionTermSubstitution,
			Original:   sentence,
			Suggestion: rewritten,
			Changes:    changes,
		})
	}

	if len(strings.Fields(sentence)) > restructureMinWords {
		suggestions = append(suggestions, model.RewriteSuggestion{
			Kind:       model.SuggestionRestructuring,
			Original:   sentence,
			Suggestion: s.prefix + strings.ToLower(sentence),
			Changes:    []string{restructureChange},
		})
	}

	return suggestions
}

// substitute applies every rule cumulatively. A rule is recorded when it
// matches the text as rewritten by the rules before it.
func (s *Suggester) substitute(text string) (string, []string) {
	var changes []string
	for _, r := range s.rules {
		if r.re.MatchString(text) {
			text = r.re.ReplaceAllLiteralString(text, r.Replacement)
			changes = append(changes, r.Change())
		}
	}
	return text, changes
}
