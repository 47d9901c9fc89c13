package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/filtering"
	"github.com/jonathan/resume-matcher/internal/keyword"
	"github.com/jonathan/resume-matcher/internal/schemas"
	"github.com/jonathan/resume-matcher/internal/types"
	schemafiles "github.com/jonathan/resume-matcher/schemas"
)

// RoleWeights is the weight vector of a role keyed by sub-score name.
type RoleWeights struct {
	Experience       float64 `json:"experience"`
	KeywordMatch     float64 `json:"keyword_match"`
	Certifications   float64 `json:"certifications"`
	Communication    float64 `json:"communication"`
	ProjectRelevance float64 `json:"project_relevance"`
}

// RoleInfo describes one known job role.
type RoleInfo struct {
	Name    string      `json:"name"`
	Weights RoleWeights `json:"weights"`
}

// RolesResponse represents the response for /roles
type RolesResponse struct {
	Roles []RoleInfo `json:"roles"`
}

// handleMatch scores a batch of resumes against a job description.
func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.errorResponse(w, http.StatusRequestEntityTooLarge, "Request body too large")
		return
	}

	var req types.MatchRequest
	if err := json.Unmarshal(body, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := schemas.ValidateDocument(schemafiles.MatchRequest, body); err != nil {
		s.handleError(w, validationError(err))
		return
	}
	if req.KeywordWeight == nil {
		weight := s.keywordWeight
		req.KeywordWeight = &weight
	}
	if err := req.Validate(); err != nil {
		s.handleError(w, validationError(err))
		return
	}

	ctx := r.Context()
	if s.requestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.requestTimeout)
		defer cancel()
	}

	resp, err := s.matcher.Match(ctx, req)
	if err != nil {
		s.handleError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// handleFilter narrows previously returned results by keyword presence.
func (s *Server) handleFilter(w http.ResponseWriter, r *http.Request) {
	var req types.FilterRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	filtered := filtering.Filter(req.Results, req.Keywords)
	s.jsonResponse(w, http.StatusOK, types.FilterResponse{
		FilteredResults: filtered,
		TotalMatches:    len(filtered),
	})
}

// handleRoles lists the known job roles and their weights.
func (s *Server) handleRoles(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, rolesResponse(s.matcher.Roles()))
}

func rolesResponse(table *keyword.WeightTable) RolesResponse {
	resp := RolesResponse{Roles: []RoleInfo{}}
	for _, name := range table.Roles() {
		wv, err := table.Lookup(name)
		if err != nil {
			continue
		}
		resp.Roles = append(resp.Roles, RoleInfo{
			Name: name,
			Weights: RoleWeights{
				Experience:       wv[keyword.ComponentExperience],
				KeywordMatch:     wv[keyword.ComponentKeywordMatch],
				Certifications:   wv[keyword.ComponentCertifications],
				Communication:    wv[keyword.ComponentCommunication],
				ProjectRelevance: wv[keyword.ComponentProjectRelevance],
			},
		})
	}
	return resp
}

// handleError maps err to a status code and writes it; server faults are logged.
func (s *Server) handleError(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", zap.Error(err))
	}
	s.errorResponse(w, status, err.Error())
}
