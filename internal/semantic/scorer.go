// Package semantic scores the embedding similarity between a resume's experience and
// skills and a job description.
package semantic

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/jonathan/resume-matcher/internal/textnorm"
	"gonum.org/v1/gonum/floats"
)

var (
	// ErrEmptyInput is returned when text is empty after cleaning.
	ErrEmptyInput = errors.New("nothing left to embed after cleaning")
	// ErrDimensionMismatch is returned when two vectors have different lengths.
	ErrDimensionMismatch = errors.New("embedding dimensions differ")
	// ErrZeroVector is returned when a vector has no magnitude.
	ErrZeroVector = errors.New("embedding has zero norm")
)

// Embedder maps text to a fixed-size vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Result is the outcome of one semantic comparison. A failed Result has Score 0
// and a non-nil Err.
type Result struct {
	Score float64
	Err   error
}

// OK reports whether the score was computed.
func (r Result) OK() bool {
	return r.Err == nil
}

// Reason describes the failure, or returns "" for a successful Result.
func (r Result) Reason() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}

func failed(err error) Result {
	return Result{Err: err}
}

// JobVector is an embedded job description, reusable across resumes.
type JobVector struct {
	vector []float32
	err    error
}

// Err returns the error that prevented the job description from being embedded.
func (j JobVector) Err() error {
	return j.err
}

// Scorer compares cleaned texts by cosine similarity of their embeddings.
type Scorer struct {
	normalizer *textnorm.Normalizer
	embedder   Embedder
}

// NewScorer creates a Scorer. A nil embedder makes every comparison fail with
// *textnorm.ResourceUnavailableError.
func NewScorer(normalizer *textnorm.Normalizer, embedder Embedder) *Scorer {
	if normalizer == nil {
		normalizer = textnorm.New()
	}
	return &Scorer{normalizer: normalizer, embedder: embedder}
}

// EmbedJob cleans and embeds a job description once for use with ScoreWithJob.
func (s *Scorer) EmbedJob(ctx context.Context, jobDescription string) JobVector {
	vector, err := s.embed(ctx, s.normalizer.Clean(jobDescription))
	if err != nil {
		return JobVector{err: fmt.Errorf("job description: %w", err)}
	}
	return JobVector{vector: vector}
}

// Score returns the similarity of experience and skills to jobDescription in [0,100].
func (s *Scorer) Score(ctx context.Context, experience, skills, jobDescription string) Result {
	return s.ScoreWithJob(ctx, experience, skills, s.EmbedJob(ctx, jobDescription))
}

// ScoreWithJob is Score against an already embedded job description.
func (s *Scorer) ScoreWithJob(ctx context.Context, experience, skills string, job JobVector) Result {
	if job.err != nil {
		return failed(job.err)
	}
	vector, err := s.embed(ctx, s.resumeText(experience, skills))
	if err != nil {
		return failed(fmt.Errorf("resume: %w", err))
	}

	sim, err := Cosine(vector, job.vector)
	if err != nil {
		return failed(err)
	}
	return Result{Score: toPercent(sim)}
}

// resumeText cleans both sections separately and joins what remains.
func (s *Scorer) resumeText(experience, skills string) string {
	parts := make([]string, 0, 2)
	for _, raw := range []string{experience, skills} {
		if cleaned := s.normalizer.Clean(raw); cleaned != "" {
			parts = append(parts, cleaned)
		}
	}
	return strings.Join(parts, " ")
}

func (s *Scorer) embed(ctx context.Context, cleaned string) ([]float32, error) {
	if cleaned == "" {
		return nil, ErrEmptyInput
	}
	if s.embedder == nil {
		return nil, &textnorm.ResourceUnavailableError{Resource: "embedding model"}
	}
	vector, err := s.embedder.Embed(ctx, cleaned)
	if err != nil {
		return nil, fmt.Errorf("embed: %w", err)
	}
	return vector, nil
}

// Cosine returns the cosine similarity of a and b in [-1,1].
func Cosine(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d vs %d", ErrDimensionMismatch, len(a), len(b))
	}
	x, y := widen(a), widen(b)
	na, nb := floats.Norm(x, 2), floats.Norm(y, 2)
	if na == 0 || nb == 0 {
		return 0, ErrZeroVector
	}
	return floats.Dot(x, y) / (na * nb), nil
}

// toPercent scales a cosine to [0,100]. Negative similarity counts as no similarity.
func toPercent(sim float64) float64 {
	return math.Min(math.Max(sim, 0), 1) * 100
}

func widen(v []float32) []float64 {
	out := make([]float64, len(v))
	for i, f := range v {
		out[i] = float64(f)
	}
	return out
}
