package score

import "github.com/ppiankov/textprobe/internal/model"

// Aggregate counts statuses and their share of the total (0-100)
func Aggregate(results []model.SentenceResult) model.Summary {
	var s model.Summary
	s.Total = len(results)

	for _, r := range results {
		switch r.Status {
		case model.StatusHighRisk:
			s.HighRisk++
		case model.StatusSuspect:
			s.Suspect++
		default:
			s.OK++
		}
	}

	s.HighRiskPercent = percent(s.HighRisk, s.Total)
	s.SuspectPercent = percent(s.Suspect, s.Total)
	s.OKPercent = percent(s.OK, s.Total)
	return s
}

// StatusCounts returns the summary counts keyed by status string
func StatusCounts(s model.Summary) map[string]int {
	return map[string]int{
		string(model.StatusHighRisk): s.HighRisk,
		string(model.StatusSuspect):  s.Suspect,
		string(model.StatusOK):       s.OK,
	}
}

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total) * 100
}
