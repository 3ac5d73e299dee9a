package ranking

import (
	"context"
	"testing"

	"github.com/jonathan/job-matcher/internal/skills"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scoredJob struct {
	id    int
	score float64
}

func jobScore(j scoredJob) float64 { return j.score }

func TestSortByScore_StableDescending(t *testing.T) {
	jobs := []scoredJob{
		{1, 40}, {2, 75.5}, {3, 40}, {4, 90}, {5, 75.5}, {6, 0},
	}
	SortByScore(jobs, jobScore)

	ids := make([]int, len(jobs))
	for i, j := range jobs {
		ids[i] = j.id
	}
	assert.Equal(t, []int{4, 2, 5, 1, 3, 6}, ids)
}

func TestSortByScore_Empty(t *testing.T) {
	var jobs []scoredJob
	SortByScore(jobs, jobScore)
	assert.Empty(t, jobs)
}

func TestIsHighMatch(t *testing.T) {
	assert.False(t, IsHighMatch(60, DefaultHighMatchThreshold))
	assert.True(t, IsHighMatch(60.0001, DefaultHighMatchThreshold))
	assert.False(t, IsHighMatch(59.9, DefaultHighMatchThreshold))
	// 59.5 displays as 60 but is still below the threshold.
	assert.Equal(t, 60, Round(59.5))
	assert.False(t, IsHighMatch(59.5, DefaultHighMatchThreshold))
}

func TestCountHighMatches(t *testing.T) {
	jobs := []scoredJob{{1, 61}, {2, 60}, {3, 99}, {4, 10}}
	assert.Equal(t, 2, CountHighMatches(jobs, jobScore, DefaultHighMatchThreshold))
	assert.Equal(t, 0, CountHighMatches([]scoredJob{}, jobScore, DefaultHighMatchThreshold))
}

func TestTopN(t *testing.T) {
	items := []int{5, 4, 3, 2, 1}
	assert.Equal(t, []int{5, 4, 3}, TopN(items, DefaultTopMatches))
	assert.Equal(t, items, TopN(items, 10))
	assert.Empty(t, TopN(items, 0))
	assert.Empty(t, TopN(items, -1))
}

func TestMatch(t *testing.T) {
	candidate := skills.Names{1: "python", 2: "flask"}
	job := skills.Names{1: "python", 3: "docker", 4: "aws"}

	res := Match(candidate, job, Texts{})
	assert.InDelta(t, 0.7*100.0/3.0, res.Score, 1e-9)
	assert.Equal(t, 23, res.DisplayScore)
	assert.Equal(t, []string{"python"}, res.MatchingSkills)
	assert.Equal(t, []string{"aws", "docker"}, res.MissingSkills)
	assert.Contains(t, res.Notes, "weak skill match")
}

func TestMatch_JobWithoutSkills(t *testing.T) {
	res := Match(skills.Names{1: "python"}, skills.Names{}, Texts{})
	assert.InDelta(t, 35, res.Score, 1e-9)
	assert.Equal(t, 35, res.DisplayScore)
	assert.Empty(t, res.MatchingSkills)
	assert.Empty(t, res.MissingSkills)
	assert.Equal(t, "no required skills listed", res.Notes)
}

func TestScoreAll_PreservesOrder(t *testing.T) {
	inputs := make([]Input, 50)
	for i := range inputs {
		job := skills.NewSet(1, 2, 3, 4)
		candidate := skills.NewSet()
		for id := 1; id <= i%5; id++ {
			candidate[skills.SkillID(id)] = struct{}{}
		}
		inputs[i] = Input{CandidateSkills: candidate, JobSkills: job}
	}

	results, err := ScoreAll(context.Background(), inputs, 4)
	require.NoError(t, err)
	require.Len(t, results, len(inputs))
	for i, in := range inputs {
		assert.Equal(t, Breakdown(in), results[i], "input %d", i)
	}
}

func TestScoreAll_DefaultWorkersAndEmpty(t *testing.T) {
	results, err := ScoreAll(context.Background(), nil, 0)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestScoreAll_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ScoreAll(ctx, []Input{{}, {}}, 2)
	assert.ErrorIs(t, err, context.Canceled)
}
