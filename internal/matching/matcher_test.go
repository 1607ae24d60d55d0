package matching

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentwire/candidate-scorer/internal/embeddings"
	"github.com/talentwire/candidate-scorer/internal/types"
)

// mapEmbedder serves fixed vectors keyed by canonical skill name and fails on
// anything else.
type mapEmbedder map[string][]float64

func (e mapEmbedder) Embed(_ context.Context, text string) ([]float64, error) {
	if v, ok := e[text]; ok {
		return v, nil
	}
	return nil, fmt.Errorf("no vector for %q", text)
}

func testMatcher(t *testing.T, embedder mapEmbedder, threshold float64) *Matcher {
	t.Helper()
	dir := t.TempDir()
	cache, err := embeddings.Open(
		filepath.Join(dir, "skills.json"),
		filepath.Join(dir, "embeddings.json"),
		embedder, nil)
	require.NoError(t, err)
	return NewMatcher(cache, threshold, nil)
}

func TestMatchSkillsEndToEnd(t *testing.T) {
	matcher := testMatcher(t, mapEmbedder{
		"aws":             {1, 0},
		"excel":           {0, 1},
		"budgeting":       {-1, 0},
		"software design": {0, -1},
	}, 0.25)

	candidates := []types.ScoredSkill{
		{Name: "AWS", Score: 0.3},
		{Name: "Excel", Score: 0.5},
	}
	required := []string{"AWS", "Budgeting", "Software Design"}

	matching, err := matcher.MatchSkills(context.Background(), candidates, required)
	require.NoError(t, err)

	// Only AWS matches; requirements with zero matches are absent entirely.
	require.Contains(t, matching, "aws")
	assert.NotContains(t, matching, "budgeting")
	assert.NotContains(t, matching, "software design")
	require.Len(t, matching["aws"], 1)
	assert.Equal(t, "aws", matching["aws"][0].CandidateSkill)
	assert.Equal(t, 0.3, matching["aws"][0].Score)
	assert.Equal(t, 0.0, matching["aws"][0].Distance)

	total, assigned := matcher.AggregateScore(matching, required)
	assert.Equal(t, 0.3, total)
	assert.Equal(t, map[string]string{"aws": "aws"}, assigned)
	assert.Greater(t, total, 0.0)
}

func TestMatchSkillsUnresolvableSkillIsSkipped(t *testing.T) {
	matcher := testMatcher(t, mapEmbedder{
		"aws": {1, 0},
	}, 0.25)

	candidates := []types.ScoredSkill{
		{Name: "AWS", Score: 0.4},
		{Name: "Mystery Skill", Score: 0.9},
	}

	matching, err := matcher.MatchSkills(context.Background(), candidates, []string{"AWS", "Unknown Requirement"})
	require.NoError(t, err)

	require.Contains(t, matching, "aws")
	assert.NotContains(t, matching, "unknown requirement")
	require.Len(t, matching["aws"], 1)
	assert.Equal(t, "aws", matching["aws"][0].CandidateSkill)
}

func TestAggregateScorePrefersBestUnused(t *testing.T) {
	// Two requirements each match the same two candidates. The better-ranked
	// one (higher score, then lower distance) goes to the first requirement;
	// the second requirement gets the remaining unused candidate.
	matches := []types.SkillMatch{
		{CandidateSkill: "python", Score: 0.8, Distance: 0.1},
		{CandidateSkill: "golang", Score: 0.9, Distance: 0.05},
	}
	matching := types.MatchingSkills{
		"backend development": append([]types.SkillMatch(nil), matches...),
		"api design":          append([]types.SkillMatch(nil), matches...),
	}
	required := []string{"Backend Development", "API Design"}

	matcher := testMatcher(t, mapEmbedder{}, 0.25)
	total, assigned := matcher.AggregateScore(matching, required)

	assert.Equal(t, "golang", assigned["backend development"])
	assert.Equal(t, "python", assigned["api design"])
	assert.InDelta(t, 1.7, total, 1e-9)
}

func TestAggregateScoreTiesBrokenByDistance(t *testing.T) {
	matching := types.MatchingSkills{
		"cloud": {
			{CandidateSkill: "azure", Score: 0.7, Distance: 0.2},
			{CandidateSkill: "aws", Score: 0.7, Distance: 0.1},
		},
	}

	matcher := testMatcher(t, mapEmbedder{}, 0.25)
	_, assigned := matcher.AggregateScore(matching, []string{"Cloud"})

	assert.Equal(t, "aws", assigned["cloud"])
}

func TestAggregateScoreReusesWhenAllUsed(t *testing.T) {
	// Every match of the last requirement is already assigned; the best-ranked
	// one is reused rather than leaving the requirement unscored.
	matching := types.MatchingSkills{
		"req one":   {{CandidateSkill: "go", Score: 0.6, Distance: 0.1}},
		"req two":   {{CandidateSkill: "rust", Score: 0.5, Distance: 0.1}},
		"req three": {
			{CandidateSkill: "go", Score: 0.6, Distance: 0.1},
			{CandidateSkill: "rust", Score: 0.5, Distance: 0.1},
		},
	}
	required := []string{"Req One", "Req Two", "Req Three"}

	matcher := testMatcher(t, mapEmbedder{}, 0.25)
	total, assigned := matcher.AggregateScore(matching, required)

	assert.Equal(t, "go", assigned["req three"])
	assert.InDelta(t, 1.7, total, 1e-9)
}

func TestAggregateScoreSkipsUnmatchedRequirements(t *testing.T) {
	matcher := testMatcher(t, mapEmbedder{}, 0.25)

	total, assigned := matcher.AggregateScore(types.MatchingSkills{}, []string{"Anything"})

	assert.Zero(t, total)
	assert.Empty(t, assigned)
}

func TestLearnability(t *testing.T) {
	matcher := testMatcher(t, mapEmbedder{
		"aws":       {1, 0},
		"s3":        {0.99, 0.01},
		"excel":     {0, 1},
		"budgeting": {-1, 0},
	}, 0.25)
	ctx := context.Background()

	// A certification skill close to a requirement makes it learnable.
	got, err := matcher.Learnability(ctx, []string{"S3"}, []string{"AWS"})
	require.NoError(t, err)
	assert.True(t, got)

	// A distant certification does not.
	got, err = matcher.Learnability(ctx, []string{"Excel"}, []string{"Budgeting"})
	require.NoError(t, err)
	assert.False(t, got)

	// Empty inputs short-circuit.
	got, err = matcher.Learnability(ctx, nil, []string{"AWS"})
	require.NoError(t, err)
	assert.False(t, got)
	got, err = matcher.Learnability(ctx, []string{"S3"}, nil)
	require.NoError(t, err)
	assert.False(t, got)
}
