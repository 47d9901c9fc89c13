// Package keyword computes the heuristic keyword score of a resume against a job
// description: five independent sub-scores combined by a role-specific weight vector.
package keyword

import (
	"github.com/jonathan/resume-matcher/internal/types"
)

// Scorer computes KeywordScoreBreakdowns. It is safe for concurrent use.
type Scorer struct {
	weights *WeightTable
}

// NewScorer creates a Scorer over weights. A nil table uses DefaultWeightTable.
func NewScorer(weights *WeightTable) *Scorer {
	if weights == nil {
		weights = DefaultWeightTable()
	}
	return &Scorer{weights: weights}
}

// Weights returns the scorer's role table.
func (s *Scorer) Weights() *WeightTable {
	return s.weights
}

// Score computes all sub-scores from the raw texts and their weighted total.
// The total is not clamped. It returns *UnknownRoleError when role is not in the table.
func (s *Scorer) Score(resumeText, jobDescription, role string) (types.KeywordScoreBreakdown, error) {
	weights, err := s.weights.Lookup(role)
	if err != nil {
		return types.KeywordScoreBreakdown{}, err
	}

	breakdown := types.KeywordScoreBreakdown{
		Experience:       computeExperienceScore(resumeText),
		KeywordMatch:     computeKeywordMatchScore(resumeText, jobDescription),
		Certifications:   computeCertificationsScore(resumeText),
		Communication:    computeCommunicationScore(resumeText),
		ProjectRelevance: computeProjectRelevanceScore(resumeText, jobDescription),
	}

	for i, sub := range breakdown.Components() {
		breakdown.Total += weights[i] * sub
	}
	return breakdown, nil
}
