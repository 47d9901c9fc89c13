package ranking

import (
	"math"

	"github.com/jonathan/resume-matcher/internal/types"
)

// Summarize computes the aggregate statistics of a result list. An empty list
// yields all zeros.
func Summarize(results []types.ScoreResult) types.Statistics {
	stats := types.Statistics{Total: len(results)}
	if len(results) == 0 {
		return stats
	}

	sum := 0
	stats.Highest = results[0].FinalScore
	stats.Lowest = results[0].FinalScore
	for _, r := range results {
		score := r.FinalScore
		sum += score
		stats.Highest = max(stats.Highest, score)
		stats.Lowest = min(stats.Lowest, score)

		switch {
		case score >= 80:
			stats.Distribution.Excellent++
		case score >= 60:
			stats.Distribution.Good++
		case score >= 40:
			stats.Distribution.Fair++
		default:
			stats.Distribution.Poor++
		}
	}
	// Halves round up here, unlike per-resume scores.
	stats.Average = int(math.Floor(float64(sum)/float64(len(results)) + 0.5))
	return stats
}

// Band classifies a score for display.
func Band(score int) string {
	switch {
	case score >= 80:
		return "high"
	case score >= 60:
		return "mid-high"
	case score >= 40:
		return "mid-low"
	default:
		return "low"
	}
}

// Label returns the human-readable verdict for a score.
func Label(score int) string {
	switch {
	case score >= 90:
		return "Excellent Match"
	case score >= 80:
		return "Very Good Match"
	case score >= 70:
		return "Good Match"
	case score >= 60:
		return "Fair Match"
	case score >= 50:
		return "Partial Match"
	default:
		return "Poor Match"
	}
}
