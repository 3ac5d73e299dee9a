package main

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/jonathan/job-matcher/internal/skills"
	"github.com/jonathan/job-matcher/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rankJobJSON = `{
	"title": "Data Engineer",
	"description": "Build data pipelines with Python and Airflow",
	"skills": ["Python", "postgres", "Docker", "python"]
}`

// Expected scores, given 6 description keywords
// (build, data, pipelines, with, python, airflow) and 3 job skills:
//
//	a: all skills, no text                      0.7*100            = 70
//	b: python+docker from text, 4/6 keywords    0.7*200/3 + 0.3*400/6
//	d: no skills, "data" keyword, title boost   0.3*100/6 + 10     = 15
//	c, e: no overlap                            0
const rankCandidatesJSON = `[
	{"id": "c", "name": "Carol", "skills": ["java"]},
	{"id": "a", "name": "Alice", "skills": ["python3", "PostgreSQL", "docker"]},
	{"id": "d", "skills": ["Golang"], "resume_file": "d.txt"},
	{"id": "b", "name": "Bob", "resume_text": "Python and Docker. I build data pipelines."},
	{"id": "e", "skills": ["java"]}
]`

func loadRankFixtures(t *testing.T) (types.RankJob, []types.RankCandidate, string) {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, dir, "d.txt", "Senior Data Engineer")

	var job types.RankJob
	require.NoError(t, json.Unmarshal([]byte(rankJobJSON), &job))
	var candidates []types.RankCandidate
	require.NoError(t, json.Unmarshal([]byte(rankCandidatesJSON), &candidates))
	return job, candidates, dir
}

func rankedIDs(ranked []types.RankedCandidate) []string {
	ids := make([]string, len(ranked))
	for i, r := range ranked {
		ids[i] = r.ID
	}
	return ids
}

func TestRankAll(t *testing.T) {
	job, candidates, dir := loadRankFixtures(t)

	ranked, err := rankAll(context.Background(), skills.Default(), job, candidates, rankOptions{
		Workers:   3,
		Threshold: 60,
		BaseDir:   dir,
	})
	require.NoError(t, err)

	// c and e tie at zero and keep their input order.
	assert.Equal(t, []string{"a", "b", "d", "c", "e"}, rankedIDs(ranked))
	for i, r := range ranked {
		assert.Equal(t, i+1, r.Rank)
	}

	a, b, d := ranked[0], ranked[1], ranked[2]

	assert.InDelta(t, 70.0, a.Score, 1e-9)
	assert.Equal(t, 70, a.DisplayScore)
	assert.True(t, a.HighMatch)
	assert.Equal(t, "Alice", a.Name)
	assert.Equal(t, []string{"docker", "postgresql", "python"}, a.MatchingSkills)
	assert.Empty(t, a.MissingSkills)
	assert.NotNil(t, a.MissingSkills)

	assert.InDelta(t, 0.7*200.0/3+0.3*400.0/6, b.Score, 1e-9)
	assert.Equal(t, 67, b.DisplayScore)
	assert.True(t, b.HighMatch)
	assert.Equal(t, []string{"docker", "python"}, b.MatchingSkills)
	assert.Equal(t, []string{"postgresql"}, b.MissingSkills)

	assert.InDelta(t, 15.0, d.Score, 1e-9)
	assert.Equal(t, 10.0, d.Components.TitleBoost)
	assert.False(t, d.HighMatch)
	assert.Empty(t, d.MatchingSkills)
	assert.Equal(t, []string{"docker", "postgresql", "python"}, d.MissingSkills)

	assert.Zero(t, ranked[3].Score)
	assert.Zero(t, ranked[4].Score)
}

func TestRankAll_WorkerCountDoesNotChangeOrder(t *testing.T) {
	job, candidates, dir := loadRankFixtures(t)

	want, err := rankAll(context.Background(), skills.Default(), job, candidates, rankOptions{Workers: 1, BaseDir: dir})
	require.NoError(t, err)
	for _, workers := range []int{0, 2, 8} {
		got, err := rankAll(context.Background(), skills.Default(), job, candidates, rankOptions{Workers: workers, BaseDir: dir})
		require.NoError(t, err)
		assert.Equal(t, want, got, "workers=%d", workers)
	}
}

func TestRankAll_Top(t *testing.T) {
	job, candidates, dir := loadRankFixtures(t)

	ranked, err := rankAll(context.Background(), skills.Default(), job, candidates, rankOptions{Top: 2, BaseDir: dir})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, rankedIDs(ranked))

	ranked, err = rankAll(context.Background(), skills.Default(), job, candidates, rankOptions{Top: 50, BaseDir: dir})
	require.NoError(t, err)
	assert.Len(t, ranked, 5)
}

func TestRankAll_Errors(t *testing.T) {
	job, _, dir := loadRankFixtures(t)

	_, err := rankAll(context.Background(), skills.Default(), job, []types.RankCandidate{
		{ID: "x", Skills: []string{"go"}},
		{ID: "x", Skills: []string{"rust"}},
	}, rankOptions{BaseDir: dir})
	assert.ErrorContains(t, err, `duplicate candidate id "x"`)

	_, err = rankAll(context.Background(), skills.Default(), job, []types.RankCandidate{
		{ID: "y", ResumeFile: "nope.txt"},
	}, rankOptions{BaseDir: dir})
	assert.ErrorContains(t, err, "candidate y")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = rankAll(ctx, skills.Default(), job, []types.RankCandidate{{ID: "z"}}, rankOptions{BaseDir: dir})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRankAll_EmptyCandidates(t *testing.T) {
	job, _, dir := loadRankFixtures(t)

	ranked, err := rankAll(context.Background(), skills.Default(), job, nil, rankOptions{BaseDir: dir})
	require.NoError(t, err)
	assert.Empty(t, ranked)
}

func TestRankCommand(t *testing.T) {
	dir := t.TempDir()
	jobPath := writeFile(t, dir, "job.json", rankJobJSON)
	candidatesPath := writeFile(t, dir, "candidates.json", rankCandidatesJSON)
	writeFile(t, dir, "d.txt", "Senior Data Engineer")

	out, err := execute(t, "rank", "--job", jobPath, "--candidates", candidatesPath, "--top", "3", "--workers", "2")
	require.NoError(t, err)

	var result rankResult
	require.NoError(t, json.Unmarshal([]byte(out), &result), out)
	assert.Equal(t, "Data Engineer", result.Job)
	assert.Equal(t, []string{"docker", "postgresql", "python"}, result.JobSkills)
	assert.Equal(t, []string{"a", "b", "d"}, rankedIDs(result.Candidates))
}

func TestRankCommand_Verbose(t *testing.T) {
	dir := t.TempDir()
	jobPath := writeFile(t, dir, "job.json", rankJobJSON)
	candidatesPath := writeFile(t, dir, "candidates.json", rankCandidatesJSON)
	writeFile(t, dir, "d.txt", "Senior Data Engineer")

	out, err := execute(t, "rank", "--job", jobPath, "--candidates", candidatesPath,
		"--out", filepath.Join(dir, "ranked.json"), "--verbose")
	require.NoError(t, err)
	assert.Contains(t, out, "CANDIDATE RANKING")
	assert.Contains(t, out, "#1  Alice (a)")
	assert.FileExists(t, filepath.Join(dir, "ranked.json"))
}

func TestRankCommand_SchemaErrors(t *testing.T) {
	dir := t.TempDir()
	goodJob := writeFile(t, dir, "job.json", rankJobJSON)
	goodCandidates := writeFile(t, dir, "candidates.json", rankCandidatesJSON)
	badJob := writeFile(t, dir, "bad_job.json", `{"title": "No description"}`)
	badCandidates := writeFile(t, dir, "bad_candidates.json", `[{"name": "no id"}]`)

	_, err := execute(t, "rank", "--job", badJob, "--candidates", goodCandidates)
	assert.ErrorContains(t, err, "invalid "+badJob)

	_, err = execute(t, "rank", "--job", goodJob, "--candidates", badCandidates)
	assert.ErrorContains(t, err, "invalid "+badCandidates)

	_, err = execute(t, "rank", "--job", goodJob, "--candidates", goodCandidates, "--top", "-1")
	assert.ErrorContains(t, err, "--top must not be negative")

	_, err = execute(t, "rank", "--job", goodJob)
	assert.ErrorContains(t, err, `required flag(s) "candidates" not set`)
}
