// Package filtering narrows scored results to those whose excerpt mentions any of a
// set of search terms.
package filtering

import (
	"slices"
	"strings"

	"github.com/jonathan/resume-matcher/internal/types"
)

// ParseTerms splits a comma-separated keyword list into trimmed, lowercased,
// non-empty terms. Repeated terms are kept once, at their first position.
func ParseTerms(keywords string) []string {
	var terms []string
	for _, part := range strings.Split(keywords, ",") {
		term := strings.ToLower(strings.TrimSpace(part))
		if term != "" && !slices.Contains(terms, term) {
			terms = append(terms, term)
		}
	}
	return terms
}

// Filter returns the results whose lowercased excerpt contains at least one term,
// in input order, each annotated with the terms it matched. Matching is literal
// substring containment. No terms means no results.
func Filter(results []types.ScoreResult, keywords string) []types.FilteredResult {
	filtered := make([]types.FilteredResult, 0)
	terms := ParseTerms(keywords)
	if len(terms) == 0 {
		return filtered
	}

	for _, result := range results {
		text := strings.ToLower(result.Excerpt)
		var matched []string
		for _, term := range terms {
			if strings.Contains(text, term) {
				matched = append(matched, term)
			}
		}
		if len(matched) > 0 {
			filtered = append(filtered, types.FilteredResult{
				ScoreResult:     result,
				MatchedKeywords: matched,
			})
		}
	}
	return filtered
}
