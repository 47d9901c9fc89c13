package ranking

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-matcher/internal/keyword"
	"github.com/jonathan/resume-matcher/internal/sections"
	"github.com/jonathan/resume-matcher/internal/semantic"
	"github.com/jonathan/resume-matcher/internal/textnorm"
	"github.com/jonathan/resume-matcher/internal/types"
)

// bagEmbedder hashes words into a small bag-of-words vector.
type bagEmbedder struct {
	calls atomic.Int32
}

func (b *bagEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	b.calls.Add(1)
	v := make([]float32, 16)
	for _, word := range strings.Fields(text) {
		h := fnv.New32a()
		_, _ = h.Write([]byte(word))
		v[h.Sum32()%16]++
	}
	return v, nil
}

// flakyExtractor fails on resumes containing CORRUPT and panics on PANIC.
type flakyExtractor struct{}

var errCorrupt = errors.New("unreadable resume")

func (flakyExtractor) Extract(text string) (sections.Sections, error) {
	if strings.Contains(text, "PANIC") {
		panic("extractor blew up")
	}
	if strings.Contains(text, "CORRUPT") {
		return sections.Sections{}, errCorrupt
	}
	return sections.Extractor{}.Extract(text)
}

const testJob = "Senior Go engineer to lead Kubernetes platform work. Must have managed teams and presented designs."

func newTestMatcher(embedder semantic.Embedder, opts ...Option) *Matcher {
	sem := semantic.NewScorer(textnorm.New(), embedder)
	return NewMatcher(keyword.NewScorer(nil), sem, opts...)
}

func weight(w float64) *float64 { return &w }

func TestRun_RanksByScoreDescending(t *testing.T) {
	m := newTestMatcher(&bagEmbedder{}, WithWorkers(3))
	req := types.MatchRequest{
		JobDescription: testJob,
		JobRole:        "Software Engineer",
		Resumes: []types.ResumeInput{
			{ID: "baker", Text: "Experience\nBaked bread for 10 years\n\nSkills: sourdough, pastry"},
			{ID: "gopher", Text: "Experience\nSenior Go engineer. Managed a Kubernetes platform team and presented designs.\n\nSkills: Go, Kubernetes"},
			{ID: "junior", Text: "Experience\nGo intern on a platform team\n\nSkills: Go"},
		},
	}

	results, err := m.Run(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "gopher", results[0].SourceID)
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].FinalScore, results[i].FinalScore)
	}
	for _, r := range results {
		assert.GreaterOrEqual(t, r.FinalScore, 0)
		assert.LessOrEqual(t, r.FinalScore, 100)
		assert.Empty(t, r.SemanticError)
	}
}

func TestRun_TiesKeepInputOrder(t *testing.T) {
	m := newTestMatcher(&bagEmbedder{}, WithWorkers(4))
	req := types.MatchRequest{JobDescription: testJob, JobRole: "Data Scientist"}
	for i := 0; i < 20; i++ {
		req.Resumes = append(req.Resumes, types.ResumeInput{
			ID:   fmt.Sprintf("r%02d", i),
			Text: "Experience\nManaged Go services\n\nSkills: Go",
		})
	}

	results, err := m.Run(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, results, 20)
	for i, r := range results {
		assert.Equal(t, fmt.Sprintf("r%02d", i), r.SourceID)
	}
}

func TestRun_FailingResumeIsSkipped(t *testing.T) {
	m := newTestMatcher(&bagEmbedder{}, WithExtractor(flakyExtractor{}))
	req := types.MatchRequest{
		JobDescription: testJob,
		JobRole:        "Software Engineer",
		Resumes: []types.ResumeInput{
			{ID: "bad", Text: "CORRUPT"},
			{ID: "good", Text: "Experience\nGo engineer\n\nSkills: Go"},
		},
	}

	results, err := m.Run(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "good", results[0].SourceID)
}

func TestRun_PanicIsContained(t *testing.T) {
	m := newTestMatcher(&bagEmbedder{}, WithExtractor(flakyExtractor{}))
	req := types.MatchRequest{
		JobDescription: testJob,
		JobRole:        "Software Engineer",
		Resumes: []types.ResumeInput{
			{ID: "good", Text: "Experience\nGo engineer"},
			{ID: "boom", Text: "PANIC"},
		},
	}

	results, err := m.Run(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "good", results[0].SourceID)
}

func TestRun_EmptyResumeIsSkipped(t *testing.T) {
	m := newTestMatcher(&bagEmbedder{})
	req := types.MatchRequest{
		JobDescription: testJob,
		JobRole:        "HR Manager",
		Resumes:        []types.ResumeInput{{ID: "blank", Text: "   "}},
	}

	results, err := m.Run(context.Background(), req)
	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestRun_UnknownRole(t *testing.T) {
	m := newTestMatcher(&bagEmbedder{})
	req := types.MatchRequest{
		JobDescription: testJob,
		JobRole:        "Astronaut",
		Resumes:        []types.ResumeInput{{ID: "a", Text: "Experience\nGo"}},
	}

	_, err := m.Run(context.Background(), req)
	var roleErr *keyword.UnknownRoleError
	require.ErrorAs(t, err, &roleErr)
	assert.Equal(t, "Astronaut", roleErr.Role)
}

func TestRun_EmptyJobDescription(t *testing.T) {
	m := newTestMatcher(&bagEmbedder{})
	req := types.MatchRequest{
		JobDescription: " \n ",
		JobRole:        "Software Engineer",
		Resumes:        []types.ResumeInput{{ID: "a", Text: "Experience\nGo"}},
	}

	_, err := m.Run(context.Background(), req)
	assert.ErrorIs(t, err, ErrEmptyJobDescription)
}

func TestRun_SemanticFailureCountsAsZero(t *testing.T) {
	m := newTestMatcher(nil)
	req := types.MatchRequest{
		JobDescription: testJob,
		JobRole:        "Software Engineer",
		KeywordWeight:  weight(0.5),
		Resumes: []types.ResumeInput{
			{ID: "a", Text: "Experience\nManaged and presented Go Kubernetes work\n\nSkills: Go"},
		},
	}

	results, err := m.Run(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, results, 1)

	r := results[0]
	assert.Equal(t, 0, r.SemanticScore)
	assert.Contains(t, r.SemanticError, "resource unavailable")
	assert.Greater(t, r.KeywordScore, 0)

	breakdown, err := keyword.NewScorer(nil).Score(req.Resumes[0].Text, testJob, "Software Engineer")
	require.NoError(t, err)
	assert.Equal(t, Fuse(breakdown.Total, 0, 0.5), r.FinalScore)
}

func TestRun_WeightExtremes(t *testing.T) {
	resumes := []types.ResumeInput{
		{ID: "a", Text: "Experience\nLead Go engineer who managed Kubernetes migrations\n\nSkills: Go, Kubernetes"},
		{ID: "b", Text: "Experience\nAccountant\n\nSkills: Excel"},
	}

	t.Run("keyword only", func(t *testing.T) {
		m := newTestMatcher(&bagEmbedder{})
		results, err := m.Run(context.Background(), types.MatchRequest{
			JobDescription: testJob, JobRole: "Software Engineer", KeywordWeight: weight(1), Resumes: resumes,
		})
		require.NoError(t, err)
		for _, r := range results {
			assert.Equal(t, r.KeywordScore, r.FinalScore)
		}
	})

	t.Run("semantic only", func(t *testing.T) {
		m := newTestMatcher(&bagEmbedder{})
		results, err := m.Run(context.Background(), types.MatchRequest{
			JobDescription: testJob, JobRole: "Software Engineer", KeywordWeight: weight(0), Resumes: resumes,
		})
		require.NoError(t, err)
		for _, r := range results {
			assert.Equal(t, r.SemanticScore, r.FinalScore)
		}
	})
}

func TestRun_EmbedsJobDescriptionOnce(t *testing.T) {
	embedder := &bagEmbedder{}
	m := newTestMatcher(embedder, WithWorkers(2))
	req := types.MatchRequest{JobDescription: testJob, JobRole: "Software Engineer"}
	for i := 0; i < 5; i++ {
		req.Resumes = append(req.Resumes, types.ResumeInput{ID: fmt.Sprint(i), Text: "Experience\nGo work"})
	}

	_, err := m.Run(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, int32(6), embedder.calls.Load())
}

func TestRun_ExcerptIsFirst500Runes(t *testing.T) {
	m := newTestMatcher(&bagEmbedder{})
	text := "Experience\n" + strings.Repeat("é", 600)

	results, err := m.Run(context.Background(), types.MatchRequest{
		JobDescription: testJob,
		JobRole:        "Software Engineer",
		Resumes:        []types.ResumeInput{{ID: "long", Text: text}},
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 500, len([]rune(results[0].Excerpt)))
	assert.True(t, strings.HasPrefix(text, results[0].Excerpt))
}

// cancelingEmbedder cancels the batch context once the job description is embedded.
type cancelingEmbedder struct {
	bagEmbedder
	cancel context.CancelFunc
}

func (c *cancelingEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if c.calls.Load() > 0 {
		c.cancel()
		return nil, ctx.Err()
	}
	return c.bagEmbedder.Embed(ctx, text)
}

func TestRun_CancelledContext(t *testing.T) {
	embedder := &bagEmbedder{}
	m := newTestMatcher(embedder)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := m.Run(ctx, types.MatchRequest{
		JobDescription: testJob,
		JobRole:        "Software Engineer",
		Resumes:        []types.ResumeInput{{ID: "a", Text: "Experience\nGo engineer"}},
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, results)
	assert.Zero(t, embedder.calls.Load())
}

func TestRun_CancelledMidBatch(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	embedder := &cancelingEmbedder{cancel: cancel}
	m := newTestMatcher(embedder, WithWorkers(1))

	resumes := make([]types.ResumeInput, 20)
	for i := range resumes {
		resumes[i] = types.ResumeInput{ID: fmt.Sprintf("r%d", i), Text: "Experience\nGo engineer\n\nSkills: Go"}
	}

	results, err := m.Run(ctx, types.MatchRequest{
		JobDescription: testJob,
		JobRole:        "Software Engineer",
		Resumes:        resumes,
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, results)
}

func TestMatch_BuildsResponse(t *testing.T) {
	m := newTestMatcher(&bagEmbedder{})
	req := types.MatchRequest{
		JobDescription: testJob,
		JobRole:        "Software Engineer",
		Resumes: []types.ResumeInput{
			{ID: "a", Text: "Experience\nGo engineer"},
			{ID: "b", Text: "CORRUPT"},
		},
	}

	resp, err := NewMatcher(nil, nil, WithExtractor(flakyExtractor{})).Match(context.Background(), req)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.RunID)
	assert.Equal(t, "Software Engineer", resp.JobRole)
	assert.Equal(t, 1, resp.TotalProcessed)
	assert.Equal(t, 1, resp.Statistics.Total)

	_, err = m.Match(context.Background(), types.MatchRequest{JobDescription: testJob, JobRole: "Nope"})
	assert.Error(t, err)
}

func TestExcerpt(t *testing.T) {
	assert.Equal(t, "abc", excerpt("abc", 5))
	assert.Equal(t, "ab", excerpt("abc", 2))
	assert.Equal(t, "", excerpt("abc", 0))
	assert.Equal(t, "日本", excerpt("日本語", 2))
}
