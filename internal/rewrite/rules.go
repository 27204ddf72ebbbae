// Package rewrite proposes rewordings for sentences flagged as high risk.
package rewrite

import "regexp"

// Rule is one case-insensitive substitution
type Rule struct {
	Pattern     string
	Replacement string
	re          *regexp.Regexp
}

func newRule(pattern, replacement string) Rule {
	return Rule{
		Pattern:     pattern,
		Replacement: replacement,
		re:          regexp.MustCompile("(?i)" + pattern),
	}
}

// Change describes the rule in the form shown to users
func (r Rule) Change() string {
	return "'" + r.Pattern + "' → '" + r.Replacement + "'"
}

// DefaultRules is the Portuguese rule table, applied in order
var DefaultRules = []Rule{
	// passive voice to impersonal active
	newRule(`é (usado|utilizado|empregado)`, "usa-se"),
	newRule(`são (usados|utilizados|empregados)`, "usam-se"),

	// common synonyms
	newRule(`utilizar`, "usar"),
	newRule(`realizar`, "fazer"),
	newRule(`desenvolver`, "criar"),
	newRule(`implementar`, "aplicar"),

	// alternative structures
	newRule(`é possível`, "pode-se"),
	newRule(`é importante`, "cabe destacar"),
	newRule(`é necessário`, "deve-se"),
}
