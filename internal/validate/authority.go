// Package validate classifies claim-check sources by authority.
package validate

import (
	"net/url"
	"regexp"
	"sort"
	"strings"

	"github.com/ppiankov/textprobe/internal/model"
)

// AuthorityClassifier maps a source URL onto an authority tier
type AuthorityClassifier struct {
	domainMap    map[string]model.AuthorityTier
	suffixes     []domainSuffix
	pathPatterns []compiledPattern
}

type domainSuffix struct {
	domain string
	tier   model.AuthorityTier
}

type compiledPattern struct {
	pattern *regexp.Regexp
	tier    model.AuthorityTier
}

// NewAuthorityClassifier creates a classifier; nil uses the default domain lists.
// Invalid path patterns are skipped.
func NewAuthorityClassifier(config *model.AuthorityConfig) *AuthorityClassifier {
	if config == nil {
		config = &model.DefaultConfig().Authority
	}

	classifier := &AuthorityClassifier{
		domainMap: make(map[string]model.AuthorityTier, len(config.DomainMap)),
	}

	for host, tier := range config.DomainMap {
		classifier.domainMap[strings.ToLower(host)] = ParseTier(tier)
	}

	for _, d := range config.PrimaryDomains {
		classifier.suffixes = append(classifier.suffixes, domainSuffix{strings.ToLower(d), model.TierPrimary})
	}
	for _, d := range config.SecondaryDomains {
		classifier.suffixes = append(classifier.suffixes, domainSuffix{strings.ToLower(d), model.TierSecondary})
	}
	// Longest suffix wins, so "legislation.gov.uk" beats "gov.uk"
	sort.SliceStable(classifier.suffixes, func(i, j int) bool {
		return len(classifier.suffixes[i].domain) > len(classifier.suffixes[j].domain)
	})

	for _, p := range config.PathPatterns {
		if re, err := regexp.Compile(p.Pattern); err == nil {
			classifier.pathPatterns = append(classifier.pathPatterns, compiledPattern{pattern: re, tier: ParseTier(p.Tier)})
		}
	}

	return classifier
}

// Classify classifies a URL into an authority tier. Unparsable URLs are tertiary.
func (a *AuthorityClassifier) Classify(rawURL string) model.AuthorityTier {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return model.TierTertiary
	}

	host := strings.ToLower(parsed.Hostname())

	if tier, ok := a.domainMap[host]; ok {
		return tier
	}

	for _, s := range a.suffixes {
		if host == s.domain || strings.HasSuffix(host, "."+s.domain) {
			return s.tier
		}
	}

	for _, cp := range a.pathPatterns {
		if cp.pattern.MatchString(parsed.Path) {
			return cp.tier
		}
	}

	if strings.HasSuffix(host, ".gov") || strings.HasSuffix(host, ".edu") ||
		strings.HasSuffix(host, ".ac.uk") || strings.HasSuffix(host, ".gov.br") {
		return model.TierPrimary
	}

	return model.TierTertiary
}

// Credibility returns the claim-analyzer weight for a URL
func (a *AuthorityClassifier) Credibility(rawURL string) float64 {
	return a.Classify(rawURL).Credibility()
}

// ParseTier converts a tier name or number to AuthorityTier, defaulting to tertiary
func ParseTier(tier string) model.AuthorityTier {
	switch strings.ToLower(strings.TrimSpace(tier)) {
	case "primary", "1":
		return model.TierPrimary
	case "secondary", "2":
		return model.TierSecondary
	default:
		return model.TierTertiary
	}
}
