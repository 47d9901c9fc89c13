// Package ranking fuses keyword and semantic scores and ranks a batch of resumes
// against one job description.
package ranking

import "math"

// Fuse blends a keyword score and a semantic score with keyword share weight and
// rounds half to even. Inputs are not range checked.
func Fuse(keywordScore, semanticScore, weight float64) int {
	return roundScore(weight*keywordScore + (1-weight)*semanticScore)
}

func roundScore(score float64) int {
	return int(math.RoundToEven(score))
}
