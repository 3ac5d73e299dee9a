package ranking

import (
	"testing"

	"github.com/jonathan/job-matcher/internal/skills"
	"github.com/stretchr/testify/assert"
)

func TestScore_SkillComponent(t *testing.T) {
	tests := []struct {
		name      string
		candidate skills.Set
		job       skills.Set
		expected  float64
	}{
		{"job without skills is neutral", skills.NewSet(1, 2), skills.NewSet(), 35},
		{"nil job skills is neutral", nil, nil, 35},
		{"all job skills present", skills.NewSet(1, 2, 3), skills.NewSet(1, 2), 70},
		{"no overlap", skills.NewSet(4), skills.NewSet(1, 2), 0},
		{"candidate without skills", skills.NewSet(), skills.NewSet(1), 0},
		{"two of three", skills.NewSet(1, 2), skills.NewSet(1, 2, 3), 46.666666666666664},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(Input{CandidateSkills: tt.candidate, JobSkills: tt.job})
			assert.InDelta(t, tt.expected, got, 1e-9)
		})
	}
}

func TestScore_ContextComponent(t *testing.T) {
	tests := []struct {
		name        string
		resume      string
		description string
		expected    float64
	}{
		{
			name:        "partial keyword coverage",
			resume:      "I build scalable python systems",
			description: "Building scalable systems with Python",
			// building, scalable, systems, with, python -> 3 of 5
			expected: 60,
		},
		{"substring containment counts", "JavaScript developer", "Java", 100},
		{"keywords are case-insensitive", "KUBERNETES expert", "kubernetes", 100},
		{"repeated keywords count once", "docker", "docker docker docker images", 50},
		{"only short words", "go is fun", "Go is fun", 0},
		{"empty resume", "", "Building scalable systems", 0},
		{"empty description", "Building scalable systems", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Breakdown(Input{Texts: Texts{ResumeText: tt.resume, JobDescription: tt.description}})
			assert.InDelta(t, tt.expected, c.Context, 1e-9)
		})
	}
}

func TestScore_TitleBoost(t *testing.T) {
	in := Input{
		CandidateSkills: skills.NewSet(1, 2),
		JobSkills:       skills.NewSet(1, 2),
		Texts: Texts{
			ResumeText: "Senior BACKEND engineer at Acme",
			JobTitle:   "Backend Engineer",
		},
	}
	c := Breakdown(in)
	assert.Equal(t, 10.0, c.TitleBoost)
	// Resume text with no description gives a zero context score.
	assert.InDelta(t, 80, c.Final, 1e-9)

	in.JobTitle = "Frontend Engineer"
	assert.InDelta(t, 70, Score(in), 1e-9)

	in.JobTitle = ""
	assert.Equal(t, 0.0, Breakdown(in).TitleBoost)
}

func TestScore_ClampedAtMaximum(t *testing.T) {
	in := Input{
		CandidateSkills: skills.NewSet(1),
		JobSkills:       skills.NewSet(1),
		Texts: Texts{
			ResumeText:     "Platform engineer running kubernetes clusters",
			JobDescription: "Kubernetes clusters",
			JobTitle:       "Platform Engineer",
		},
	}
	c := Breakdown(in)
	assert.InDelta(t, 100, c.Skill, 1e-9)
	assert.InDelta(t, 100, c.Context, 1e-9)
	assert.Equal(t, 10.0, c.TitleBoost)
	assert.Equal(t, 100.0, c.Final)
}

func TestScore_BoundsAndDeterminism(t *testing.T) {
	inputs := []Input{
		{},
		{CandidateSkills: skills.NewSet(1), JobSkills: skills.NewSet(2, 3)},
		{JobSkills: skills.NewSet(1), Texts: Texts{ResumeText: "x", JobDescription: "unrelated words here", JobTitle: "y"}},
		{CandidateSkills: skills.NewSet(1, 2, 3), JobSkills: skills.NewSet(1, 2, 3), Texts: Texts{ResumeText: "data engineer data pipelines", JobDescription: "data pipelines", JobTitle: "data engineer"}},
	}

	for _, in := range inputs {
		first := Score(in)
		assert.GreaterOrEqual(t, first, 0.0)
		assert.LessOrEqual(t, first, 100.0)
		assert.Equal(t, first, Score(in))
	}
}

func TestRound(t *testing.T) {
	tests := []struct {
		input    float64
		expected int
	}{
		{0, 0},
		{46.666666666666664, 47},
		{59.4, 59},
		{59.5, 60},
		{60.49, 60},
		{100, 100},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, Round(tt.input), "Round(%v)", tt.input)
	}
}
