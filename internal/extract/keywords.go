package extract

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// minKeywordLength is the rune count a word must exceed to be a keyword
const minKeywordLength = 3

// ExtractKeywords returns the purely alphabetic words of a claim that are
// longer than three letters, in order of appearance. Duplicates are kept.
func ExtractKeywords(claim string) []string {
	var keywords []string
	for _, word := range strings.Fields(claim) {
		if utf8.RuneCountInString(word) > minKeywordLength && isAlpha(word) {
			keywords = append(keywords, word)
		}
	}
	return keywords
}

// Head returns at most n leading keywords
func Head(keywords []string, n int) []string {
	if n < 0 {
		n = 0
	}
	if len(keywords) <= n {
		return keywords
	}
	return keywords[:n]
}

func isAlpha(word string) bool {
	if word == "" {
		return false
	}
	for _, r := range word {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
