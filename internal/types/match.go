// Package types provides type definitions for structured data used throughout the resume-matcher system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"github.com/go-playground/validator/v10"
)

// DefaultKeywordWeight is the keyword share of the final score when a request omits it.
const DefaultKeywordWeight = 0.5

// ResumeInput is one already-extracted plain-text resume.
type ResumeInput struct {
	ID   string `json:"id" validate:"required"`
	Text string `json:"text"`
}

// MatchRequest is the unit of work for a batch match.
type MatchRequest struct {
	Resumes        []ResumeInput `json:"resumes" validate:"required,min=1,dive"`
	JobDescription string        `json:"job_description" validate:"required"`
	JobRole        string        `json:"job_role" validate:"required"`
	// KeywordWeight is the fraction of the final score taken from the keyword score.
	// Nil means DefaultKeywordWeight.
	KeywordWeight *float64 `json:"keyword_weight,omitempty" validate:"omitempty,min=0,max=1"`
}

// Validate validates the MatchRequest using the validator.
func (r *MatchRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Weight returns the keyword weight, falling back to DefaultKeywordWeight.
func (r *MatchRequest) Weight() float64 {
	if r.KeywordWeight == nil {
		return DefaultKeywordWeight
	}
	return *r.KeywordWeight
}

// ScoreResult is the scored outcome for a single resume.
type ScoreResult struct {
	SourceID      string `json:"id"`
	FinalScore    int    `json:"score"`
	KeywordScore  int    `json:"keyword_score"`
	SemanticScore int    `json:"semantic_score"`
	// Excerpt is the leading part of the raw resume text kept for keyword filtering.
	Excerpt string `json:"text"`
	// SemanticError is set when the semantic score could not be computed and was
	// counted as zero.
	SemanticError string `json:"semantic_error,omitempty"`
}

// MatchResponse is the response for a batch match.
type MatchResponse struct {
	RunID          string        `json:"run_id"`
	Results        []ScoreResult `json:"results"`
	TotalProcessed int           `json:"total_processed"`
	JobRole        string        `json:"job_role"`
	Statistics     Statistics    `json:"statistics"`
}

// Statistics summarises the final scores of a result list.
type Statistics struct {
	Total        int          `json:"total"`
	Average      int          `json:"average"`
	Highest      int          `json:"highest"`
	Lowest       int          `json:"lowest"`
	Distribution Distribution `json:"distribution"`
}

// Distribution counts results per score bucket.
type Distribution struct {
	Excellent int `json:"excellent"`
	Good      int `json:"good"`
	Fair      int `json:"fair"`
	Poor      int `json:"poor"`
}
