// Package score turns similarity vectors into per-sentence risk labels and
// tallies them across a document.
package score

import "github.com/ppiankov/textprobe/internal/model"

// HighRiskCutoff is the fixed similarity above which a sentence is high risk
const HighRiskCutoff = 0.6

// Best returns the maximum of scores and the first index holding it.
// An empty vector gives (0, -1).
func Best(scores []float64) (float64, int) {
	if len(scores) == 0 {
		return 0, -1
	}
	best, idx := scores[0], 0
	for i, s := range scores[1:] {
		if s > best {
			best, idx = s, i+1
		}
	}
	return best, idx
}

// Classify labels a similarity score. Both comparisons are strict, so a
// score equal to a cutoff falls into the lower bucket.
func Classify(score, suspectCutoff float64) model.Status {
	switch {
	case score > HighRiskCutoff:
		return model.StatusHighRisk
	case score > suspectCutoff:
		return model.StatusSuspect
	default:
		return model.StatusOK
	}
}

// Classifier builds sentence results against one reference list
type Classifier struct {
	references []string
	categoryOf func(int) string
}

// NewClassifier creates a classifier for the flattened references.
// categoryOf may be nil.
func NewClassifier(references []string, categoryOf func(int) string) *Classifier {
	return &Classifier{references: references, categoryOf: categoryOf}
}

// Result classifies one sentence from its similarity vector
func (c *Classifier) Result(sentence string, position int, scores []float64, suspectCutoff float64) model.SentenceResult {
	best, idx := Best(scores)

	result := model.SentenceResult{
		Sentence:      sentence,
		MaxSimilarity: best,
		Status:        Classify(best, suspectCutoff),
		Position:      position,
	}
	if idx >= 0 && idx < len(c.references) {
		result.MatchedReference = c.references[idx]
		if c.categoryOf != nil {
			result.MatchedCategory = c.categoryOf(idx)
		}
	}
	return result
}
