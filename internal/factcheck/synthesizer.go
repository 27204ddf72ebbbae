package factcheck

import (
	"strings"

	"github.com/ppiankov/textprobe/internal/model"
)

// Verdict cutoffs on the average source score
const (
	probableCutoff  = 0.3
	uncertainCutoff = 0.1

	evidencePieces = 2
)

// Synthesis is the verdict drawn from analyzed sources
type Synthesis struct {
	Verdict      model.Verdict
	AverageScore float64
	Best         *model.AnalyzedSource
	Evidence     []string
}

// Synthesize averages the source scores and picks the best source.
// With no sources the verdict is insufficient.
func Synthesize(claim string, analyzed []model.AnalyzedSource) Synthesis {
	if len(analyzed) == 0 {
		return Synthesis{Verdict: model.VerdictInsufficient}
	}

	var sum float64
	bestIdx := 0
	for i, a := range analyzed {
		sum += a.Score
		if a.Score > analyzed[bestIdx].Score {
			bestIdx = i
		}
	}
	avg := sum / float64(len(analyzed))
	best := analyzed[bestIdx]

	return Synthesis{
		Verdict:      verdictFor(avg),
		AverageScore: avg,
		Best:         &best,
		Evidence:     evidence(claim, best.Extract),
	}
}

func verdictFor(avg float64) model.Verdict {
	switch {
	case avg > probableCutoff:
		return model.VerdictProbable
	case avg > uncertainCutoff:
		return model.VerdictUncertain
	default:
		return model.VerdictUnlikely
	}
}

// evidence returns those of the first two '.'-separated pieces of extract
// that contain any claim word as a case-insensitive substring
func evidence(claim, extract string) []string {
	words := strings.Fields(strings.ToLower(claim))
	pieces := strings.Split(extract, ".")
	if len(pieces) > evidencePieces {
		pieces = pieces[:evidencePieces]
	}

	var out []string
	for _, piece := range pieces {
		lower := strings.ToLower(piece)
		for _, w := range words {
			if strings.Contains(lower, w) {
				if trimmed := strings.TrimSpace(piece); trimmed != "" {
					out = append(out, trimmed)
				}
				break
			}
		}
	}
	return out
}
