package types

// FilterRequest narrows a result list by literal keyword presence.
type FilterRequest struct {
	Results []ScoreResult `json:"results"`
	// Keywords is a comma-separated list of search terms.
	Keywords string `json:"keywords"`
}

// FilteredResult is a ScoreResult annotated with the search terms found in its excerpt.
type FilteredResult struct {
	ScoreResult
	MatchedKeywords []string `json:"matchedKeywords"`
}

// FilterResponse is the response for a keyword filter.
type FilterResponse struct {
	FilteredResults []FilteredResult `json:"filtered_results"`
	TotalMatches    int              `json:"total_matches"`
}
