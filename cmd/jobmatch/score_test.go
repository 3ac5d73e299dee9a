package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/job-matcher/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreCommand(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "request.json", `{
		"candidate_skills": [1, 2, 3],
		"job_skills": [1, 2],
		"resume_text": "Platform engineer running Kubernetes clusters",
		"job_description": "Operate Kubernetes clusters",
		"job_title": "Platform Engineer"
	}`)

	out, err := execute(t, "score", "--in", in)
	require.NoError(t, err)

	var resp types.ScoreResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp), out)
	assert.Equal(t, 100.0, resp.Components.Skill)
	// "operate" is missing from the resume: 2 of 3 keywords.
	assert.InDelta(t, 200.0/3, resp.Components.Context, 1e-9)
	assert.Equal(t, 10.0, resp.Components.TitleBoost)
	assert.InDelta(t, 0.7*100+0.3*200.0/3, resp.Components.Weighted, 1e-9)
	assert.Equal(t, 100.0, resp.Score, "clamped")
	assert.Equal(t, 100, resp.DisplayScore)
	assert.True(t, resp.HighMatch)
}

func TestScoreCommand_OutputFileAndThreshold(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "request.json", `{"candidate_skills": [1], "job_skills": []}`)
	outPath := filepath.Join(dir, "nested", "score.json")

	out, err := execute(t, "score", "--in", in, "--out", outPath, "--threshold", "40")
	require.NoError(t, err)
	assert.Empty(t, out)

	content, err := os.ReadFile(outPath)
	require.NoError(t, err)
	var resp types.ScoreResponse
	require.NoError(t, json.Unmarshal(content, &resp))
	// No job skills: neutral skill score.
	assert.InDelta(t, 35.0, resp.Score, 1e-9)
	assert.False(t, resp.HighMatch)
}

func TestScoreCommand_Errors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{name: "unknown field", content: `{"candidate_skills":[1],"job_skills":[1],"bonus":5}`, want: "invalid score request"},
		{name: "missing job skills", content: `{"candidate_skills":[1]}`, want: "invalid score request"},
		{name: "negative id", content: `{"candidate_skills":[-3],"job_skills":[1]}`, want: "invalid score request"},
		{name: "not json", content: `{`, want: "invalid score request"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := writeFile(t, dir, "bad.json", tt.content)
			_, err := execute(t, "score", "--in", in)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	_, err := execute(t, "score", "--in", filepath.Join(dir, "missing.json"))
	assert.ErrorContains(t, err, "failed to read score request file")

	_, err = execute(t, "score")
	assert.ErrorContains(t, err, `required flag(s) "in" not set`)
}
