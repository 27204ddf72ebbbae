package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// MinSentenceLength is the rune count a sentence must exceed to be analyzed
const MinSentenceLength = 20

// sentenceBreak matches a run of terminal punctuation
var sentenceBreak = regexp.MustCompile(`[.!?]+`)

// Segmenter splits raw text into analyzable sentences
type Segmenter struct {
	minLength int
}

// NewSegmenter creates a segmenter with the default length filter
func NewSegmenter() *Segmenter {
	return &Segmenter{minLength: MinSentenceLength}
}

// Split splits text on runs of '.', '!' and '?', trims each piece and drops
// pieces not longer than the minimum length. Order is preserved.
func (s *Segmenter) Split(text string) []string {
	var sentences []string
	for _, piece := range sentenceBreak.Split(text, -1) {
		piece = strings.TrimSpace(piece)
		if utf8.RuneCountInString(piece) > s.minLength {
			sentences = append(sentences, piece)
		}
	}
	return sentences
}

// SplitSentences splits text with the default segmenter
func SplitSentences(text string) []string {
	return NewSegmenter().Split(text)
}
