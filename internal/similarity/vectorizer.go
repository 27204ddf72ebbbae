// Package similarity scores sentences against reference texts using
// TF-IDF vectors over unigrams and bigrams.
package similarity

import (
	"errors"
	"math"
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// DefaultMaxFeatures caps the vocabulary size
const DefaultMaxFeatures = 1000

// ErrEmptyVocabulary is returned when no document yields a single token
var ErrEmptyVocabulary = errors.New("empty vocabulary")

// tokenPattern matches word runs of at least two runes
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}\p{M}_]{2,}`)

// Vectorizer builds L2-normalised TF-IDF vectors with smoothed IDF
type Vectorizer struct {
	maxFeatures int
	maxN        int
}

// NewVectorizer creates a unigram+bigram vectorizer capped at maxFeatures terms.
// A non-positive cap means unlimited.
func NewVectorizer(maxFeatures int) *Vectorizer {
	return &Vectorizer{maxFeatures: maxFeatures, maxN: 2}
}

// Matrix is a fitted vocabulary plus one vector per input document
type Matrix struct {
	Vocabulary []string
	IDF        []float64
	Rows       [][]float64
}

// Tokenize lowercases NFC-normalised text and returns its word tokens
func Tokenize(text string) []string {
	return tokenPattern.FindAllString(strings.ToLower(norm.NFC.String(text)), -1)
}

// terms returns the n-grams of tokens for n in 1..maxN, unigrams first
func (v *Vectorizer) terms(tokens []string) []string {
	out := append([]string(nil), tokens...)
	for n := 2; n <= v.maxN; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			out = append(out, strings.Join(tokens[i:i+n], " "))
		}
	}
	return out
}

// FitTransform learns the vocabulary and IDF weights from docs and returns
// their vectors in input order
func (v *Vectorizer) FitTransform(docs []string) (*Matrix, error) {
	counts := make([]map[string]int, len(docs))
	total := make(map[string]int)
	df := make(map[string]int)

	for i, doc := range docs {
		counts[i] = make(map[string]int)
		for _, term := range v.terms(Tokenize(doc)) {
			counts[i][term]++
			total[term]++
		}
		for term := range counts[i] {
			df[term]++
		}
	}

	if len(total) == 0 {
		return nil, ErrEmptyVocabulary
	}

	vocab := v.limitFeatures(total)
	index := make(map[string]int, len(vocab))
	for i, term := range vocab {
		index[term] = i
	}

	n := float64(len(docs))
	idf := make([]float64, len(vocab))
	for i, term := range vocab {
		idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}

	rows := make([][]float64, len(docs))
	for i := range docs {
		row := make([]float64, len(vocab))
		for term, c := range counts[i] {
			if j, ok := index[term]; ok {
				row[j] = float64(c) * idf[j]
			}
		}
		normalize(row)
		rows[i] = row
	}

	return &Matrix{Vocabulary: vocab, IDF: idf, Rows: rows}, nil
}

// limitFeatures keeps the most frequent terms; ties break alphabetically.
// The result is sorted alphabetically.
func (v *Vectorizer) limitFeatures(total map[string]int) []string {
	vocab := make([]string, 0, len(total))
	for term := range total {
		vocab = append(vocab, term)
	}
	sort.Strings(vocab)

	if v.maxFeatures <= 0 || len(vocab) <= v.maxFeatures {
		return vocab
	}

	sort.SliceStable(vocab, func(i, j int) bool {
		return total[vocab[i]] > total[vocab[j]]
	})
	vocab = vocab[:v.maxFeatures]
	sort.Strings(vocab)
	return vocab
}

func normalize(row []float64) {
	var sum float64
	for _, x := range row {
		sum += x * x
	}
	if sum == 0 {
		return
	}
	l := math.Sqrt(sum)
	for i := range row {
		row[i] /= l
	}
}

// Cosine returns the cosine similarity of rows i and j, clamped to [0,1]
func (m *Matrix) Cosine(i, j int) float64 {
	return clamp(dot(m.Rows[i], m.Rows[j]))
}

// Rows are unit length (or zero), so the dot product is the cosine
func dot(a, b []float64) float64 {
	var sum float64
	for k := range a {
		sum += a[k] * b[k]
	}
	return sum
}

func clamp(x float64) float64 {
	switch {
	case x < 0, math.IsNaN(x):
		return 0
	case x > 1:
		return 1
	}
	return x
}
