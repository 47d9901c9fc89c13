package types

// KeywordScoreBreakdown holds the heuristic sub-scores of a resume and their
// role-weighted combination.
//
// Experience and Certifications are unbounded before weighting; the others are 0-100.
type KeywordScoreBreakdown struct {
	Experience       float64 `json:"experience"`
	KeywordMatch     float64 `json:"keyword_match"`
	Certifications   float64 `json:"certifications"`
	Communication    float64 `json:"communication"`
	ProjectRelevance float64 `json:"project_relevance"`
	Total            float64 `json:"total"`
}

// Components returns the sub-scores in weight vector order.
func (b KeywordScoreBreakdown) Components() [5]float64 {
	return [5]float64{b.Experience, b.KeywordMatch, b.Certifications, b.Communication, b.ProjectRelevance}
}
