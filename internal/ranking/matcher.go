package ranking

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-matcher/internal/keyword"
	"github.com/jonathan/resume-matcher/internal/sections"
	"github.com/jonathan/resume-matcher/internal/semantic"
	"github.com/jonathan/resume-matcher/internal/types"
)

// ExcerptRunes is the length of the raw-text excerpt kept on each result.
const ExcerptRunes = 500

// SectionExtractor splits a resume into the spans used for semantic scoring.
type SectionExtractor interface {
	Extract(text string) (sections.Sections, error)
}

// Matcher scores and ranks resumes. It is safe for concurrent use.
type Matcher struct {
	extractor SectionExtractor
	keyword   *keyword.Scorer
	semantic  *semantic.Scorer
	workers   int
	logger    *zap.Logger
}

// Option configures a Matcher.
type Option func(*Matcher)

// WithExtractor replaces the default section extractor.
func WithExtractor(e SectionExtractor) Option {
	return func(m *Matcher) { m.extractor = e }
}

// WithWorkers bounds the number of resumes scored at once. Values below 1 use
// GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(m *Matcher) { m.workers = n }
}

// WithLogger sets the logger for skipped resumes and semantic failures.
func WithLogger(logger *zap.Logger) Option {
	return func(m *Matcher) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// NewMatcher creates a Matcher. A nil keyword scorer uses the default weight table;
// a nil semantic scorer scores every resume semantically as a failure.
func NewMatcher(kw *keyword.Scorer, sem *semantic.Scorer, opts ...Option) *Matcher {
	if kw == nil {
		kw = keyword.NewScorer(nil)
	}
	if sem == nil {
		sem = semantic.NewScorer(nil, nil)
	}
	m := &Matcher{
		extractor: sections.Extractor{},
		keyword:   kw,
		semantic:  sem,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.workers < 1 {
		m.workers = runtime.GOMAXPROCS(0)
	}
	return m
}

// Roles returns the job roles the matcher can score.
func (m *Matcher) Roles() *keyword.WeightTable {
	return m.keyword.Weights()
}

// Run scores every resume in req and returns the surviving results sorted by final
// score, highest first; ties keep input order. Only an unknown role or an empty job
// description fail the batch. Resumes that fail are logged and left out. If ctx is
// cancelled the batch stops early and returns ctx.Err().
func (m *Matcher) Run(ctx context.Context, req types.MatchRequest) ([]types.ScoreResult, error) {
	if strings.TrimSpace(req.JobDescription) == "" {
		return nil, ErrEmptyJobDescription
	}
	if _, err := m.keyword.Weights().Lookup(req.JobRole); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	weight := req.Weight()
	job := m.semantic.EmbedJob(ctx, req.JobDescription)
	if err := job.Err(); err != nil {
		m.logger.Warn("semantic scoring unavailable for batch", zap.String("reason", err.Error()))
	}

	slots := make([]*types.ScoreResult, len(req.Resumes))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.workers)
	for i, resume := range req.Resumes {
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			result, err := m.scoreOne(gctx, resume, req, weight, job)
			if err != nil {
				m.logger.Warn("skipping resume", zap.String("resume_id", resume.ID), zap.Error(err))
				return nil
			}
			slots[i] = &result
			return nil
		})
	}
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	results := make([]types.ScoreResult, 0, len(slots))
	for _, slot := range slots {
		if slot != nil {
			results = append(results, *slot)
		}
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].FinalScore > results[j].FinalScore
	})
	return results, nil
}

// Match runs the batch and wraps the results in a MatchResponse with a fresh run ID
// and summary statistics.
func (m *Matcher) Match(ctx context.Context, req types.MatchRequest) (types.MatchResponse, error) {
	results, err := m.Run(ctx, req)
	if err != nil {
		return types.MatchResponse{}, err
	}
	m.logger.Info("batch matched",
		zap.String("job_role", req.JobRole),
		zap.Int("submitted", len(req.Resumes)),
		zap.Int("processed", len(results)),
	)
	return types.MatchResponse{
		RunID:          uuid.New().String(),
		Results:        results,
		TotalProcessed: len(results),
		JobRole:        req.JobRole,
		Statistics:     Summarize(results),
	}, nil
}

func (m *Matcher) scoreOne(ctx context.Context, resume types.ResumeInput, req types.MatchRequest, weight float64, job semantic.JobVector) (result types.ScoreResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &ItemError{ResumeID: resume.ID, Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	secs, err := m.extractor.Extract(resume.Text)
	if err != nil {
		return types.ScoreResult{}, &ItemError{ResumeID: resume.ID, Err: err}
	}

	breakdown, err := m.keyword.Score(resume.Text, req.JobDescription, req.JobRole)
	if err != nil {
		return types.ScoreResult{}, &ItemError{ResumeID: resume.ID, Err: err}
	}

	sem := m.semantic.ScoreWithJob(ctx, secs.Experience, secs.SkillsText(), job)
	if !sem.OK() && job.Err() == nil {
		m.logger.Warn("semantic score failed",
			zap.String("resume_id", resume.ID),
			zap.String("reason", sem.Reason()),
		)
	}

	result = types.ScoreResult{
		SourceID:      resume.ID,
		FinalScore:    Fuse(breakdown.Total, sem.Score, weight),
		KeywordScore:  roundScore(breakdown.Total),
		SemanticScore: roundScore(sem.Score),
		Excerpt:       excerpt(resume.Text, ExcerptRunes),
		SemanticError: sem.Reason(),
	}
	m.logger.Debug("resume scored",
		zap.String("resume_id", resume.ID),
		zap.Int("score", result.FinalScore),
		zap.Float64("experience", breakdown.Experience),
		zap.Float64("keyword_match", breakdown.KeywordMatch),
		zap.Float64("certifications", breakdown.Certifications),
		zap.Float64("communication", breakdown.Communication),
		zap.Float64("project_relevance", breakdown.ProjectRelevance),
	)
	return result, nil
}

func excerpt(text string, n int) string {
	count := 0
	for i := range text {
		if count == n {
			return text[:i]
		}
		count++
	}
	return text
}
