package server

import (
	"bytes"
	"context"
	"encoding/json"
	"hash/fnv"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-matcher/internal/keyword"
	"github.com/jonathan/resume-matcher/internal/ranking"
	"github.com/jonathan/resume-matcher/internal/semantic"
	"github.com/jonathan/resume-matcher/internal/textnorm"
	"github.com/jonathan/resume-matcher/internal/types"
)

// hashEmbedder maps words into a fixed bag-of-words vector.
type hashEmbedder struct{}

func (hashEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	v := make([]float32, 32)
	for _, word := range strings.Fields(text) {
		h := fnv.New32a()
		_, _ = h.Write([]byte(word))
		v[h.Sum32()%32]++
	}
	return v, nil
}

func newTestServer(cfg Config) *Server {
	sem := semantic.NewScorer(textnorm.New(), hashEmbedder{})
	matcher := ranking.NewMatcher(keyword.NewScorer(nil), sem, ranking.WithWorkers(2))
	return New(cfg, matcher, nil)
}

func doRequest(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Buffer
	if body != "" {
		reader = bytes.NewBufferString(body)
	} else {
		reader = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

const matchBody = `{
	"resumes": [
		{"id": "weak.txt", "text": "Experience\nCashier at a grocery store\n\nSkills: customer service"},
		{"id": "strong.txt", "text": "Experience\n6 years of experience building Go services on Kubernetes. Led a team and presented designs.\n\nSkills: Go, Kubernetes"}
	],
	"job_description": "Senior Go engineer for Kubernetes platform work. Must lead a team and present designs.",
	"job_role": "Software Engineer"
}`

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(Config{})

	w := doRequest(t, s, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
}

func TestMatchEndpoint(t *testing.T) {
	s := newTestServer(Config{RequestTimeout: time.Minute})

	w := doRequest(t, s, http.MethodPost, "/match", matchBody)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp types.MatchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Results, 2)
	assert.Equal(t, "strong.txt", resp.Results[0].SourceID)
	assert.GreaterOrEqual(t, resp.Results[0].FinalScore, resp.Results[1].FinalScore)
	assert.Equal(t, 2, resp.TotalProcessed)
	assert.Equal(t, "Software Engineer", resp.JobRole)
	assert.NotEmpty(t, resp.RunID)
	assert.Equal(t, 2, resp.Statistics.Total)
}

func TestMatchEndpoint_DefaultWeightFromConfig(t *testing.T) {
	keywordOnly := 1.0
	s := newTestServer(Config{KeywordWeight: &keywordOnly})

	w := doRequest(t, s, http.MethodPost, "/match", matchBody)
	require.Equal(t, http.StatusOK, w.Code)

	var resp types.MatchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	for _, r := range resp.Results {
		assert.Equal(t, r.KeywordScore, r.FinalScore, r.SourceID)
	}
}

func TestMatchEndpoint_ExplicitWeightWins(t *testing.T) {
	keywordOnly := 1.0
	s := newTestServer(Config{KeywordWeight: &keywordOnly})

	body := strings.Replace(matchBody, `"job_role": "Software Engineer"`, `"job_role": "Software Engineer", "keyword_weight": 0`, 1)
	w := doRequest(t, s, http.MethodPost, "/match", body)
	require.Equal(t, http.StatusOK, w.Code)

	var resp types.MatchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	for _, r := range resp.Results {
		assert.Equal(t, r.SemanticScore, r.FinalScore, r.SourceID)
	}
}

func TestMatchEndpoint_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"invalid json", `{invalid json}`},
		{"no resumes", `{"resumes": [], "job_description": "Go", "job_role": "Software Engineer"}`},
		{"missing role", `{"resumes": [{"id": "a", "text": "Go"}], "job_description": "Go"}`},
		{"weight out of range", `{"resumes": [{"id": "a", "text": "Go"}], "job_description": "Go", "job_role": "Software Engineer", "keyword_weight": 1.5}`},
		{"unknown role", `{"resumes": [{"id": "a", "text": "Go"}], "job_description": "Go", "job_role": "Astronaut"}`},
		{"blank job description", `{"resumes": [{"id": "a", "text": "Go"}], "job_description": "   ", "job_role": "Software Engineer"}`},
	}

	s := newTestServer(Config{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(t, s, http.MethodPost, "/match", tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			var resp map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp["error"])
		})
	}
}

func TestMatchEndpoint_UnknownRoleMessage(t *testing.T) {
	s := newTestServer(Config{})

	w := doRequest(t, s, http.MethodPost, "/match",
		`{"resumes": [{"id": "a", "text": "Go"}], "job_description": "Go", "job_role": "Astronaut"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "unknown job role")
}

// blockingEmbedder waits for the request context to end.
type blockingEmbedder struct{}

func (blockingEmbedder) Embed(ctx context.Context, _ string) ([]float32, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestMatchEndpoint_RequestTimeout(t *testing.T) {
	sem := semantic.NewScorer(textnorm.New(), blockingEmbedder{})
	matcher := ranking.NewMatcher(keyword.NewScorer(nil), sem)
	s := New(Config{RequestTimeout: 20 * time.Millisecond}, matcher, nil)

	w := doRequest(t, s, http.MethodPost, "/match", matchBody)

	assert.Equal(t, http.StatusGatewayTimeout, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "deadline exceeded")
}

func TestMatchEndpoint_MethodNotAllowed(t *testing.T) {
	s := newTestServer(Config{})

	w := doRequest(t, s, http.MethodGet, "/match", "")

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestFilterEndpoint(t *testing.T) {
	s := newTestServer(Config{})

	body := `{
		"results": [
			{"id": "a", "score": 80, "keyword_score": 70, "semantic_score": 90, "text": "Go and Kafka engineer"},
			{"id": "b", "score": 60, "keyword_score": 50, "semantic_score": 70, "text": "Python developer"}
		],
		"keywords": " Kafka , rust,"
	}`
	w := doRequest(t, s, http.MethodPost, "/filter", body)
	require.Equal(t, http.StatusOK, w.Code)

	var resp types.FilterResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.FilteredResults, 1)
	assert.Equal(t, "a", resp.FilteredResults[0].SourceID)
	assert.Equal(t, []string{"kafka"}, resp.FilteredResults[0].MatchedKeywords)
	assert.Equal(t, 1, resp.TotalMatches)
}

func TestFilterEndpoint_BlankKeywords(t *testing.T) {
	s := newTestServer(Config{})

	w := doRequest(t, s, http.MethodPost, "/filter", `{"results": [{"id": "a", "text": "Go"}], "keywords": "  "}`)
	require.Equal(t, http.StatusOK, w.Code)

	assert.JSONEq(t, `{"filtered_results": [], "total_matches": 0}`, w.Body.String())
}

func TestFilterEndpoint_InvalidJSON(t *testing.T) {
	s := newTestServer(Config{})

	w := doRequest(t, s, http.MethodPost, "/filter", `{nope`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRolesEndpoint(t *testing.T) {
	s := newTestServer(Config{})

	w := doRequest(t, s, http.MethodGet, "/roles", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp RolesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Roles, 4)
	assert.Equal(t, "Software Engineer", resp.Roles[0].Name)
	assert.Equal(t, RoleWeights{KeywordMatch: 0.5, Communication: 0.5}, resp.Roles[0].Weights)
	assert.Equal(t, "HR Manager", resp.Roles[3].Name)
	assert.InDelta(t, 0.25, resp.Roles[3].Weights.ProjectRelevance, 1e-9)
}

func TestCORSMiddleware(t *testing.T) {
	s := newTestServer(Config{})

	w := doRequest(t, s, http.MethodGet, "/health", "")

	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.NotEmpty(t, w.Header().Get("Access-Control-Allow-Methods"))
}

func TestCORSMiddleware_OPTIONS(t *testing.T) {
	s := newTestServer(Config{})

	handler := s.withCORS(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("should not reach here")) //nolint:errcheck
	}))

	req := httptest.NewRequest(http.MethodOptions, "/match", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, w.Body.Len(), "OPTIONS response should have empty body")
}

func TestLoggingMiddleware(t *testing.T) {
	s := newTestServer(Config{})

	called := false
	handler := s.withLogging(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		called = true
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.True(t, called)
	assert.Equal(t, http.StatusTeapot, w.Code)
}
