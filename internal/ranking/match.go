package ranking

import (
	"fmt"
	"strings"

	"github.com/jonathan/job-matcher/internal/skills"
)

// Result is a scored (candidate, job) pair ready for display.
type Result struct {
	Score          float64    `json:"score"`
	DisplayScore   int        `json:"display_score"`
	MatchingSkills []string   `json:"matching_skills"`
	MissingSkills  []string   `json:"missing_skills"`
	Components     Components `json:"components"`
	Notes          string     `json:"notes,omitempty"`
}

// Match scores a pair and resolves the matching and missing skill names.
// candidate and job carry the names of each side's skills; their key sets
// are the skill sets used for scoring.
func Match(candidate, job skills.Names, texts Texts) Result {
	candidateIDs := candidate.IDs()
	jobIDs := job.IDs()

	c := Breakdown(Input{
		CandidateSkills: candidateIDs,
		JobSkills:       jobIDs,
		Texts:           texts,
	})

	matching, missing := Overlap(candidate, job)
	return Result{
		Score:          c.Final,
		DisplayScore:   Round(c.Final),
		MatchingSkills: matching,
		MissingSkills:  missing,
		Components:     c,
		Notes:          generateNotes(c, jobIDs.Len()),
	}
}

// Overlap returns the sorted names of job skills the candidate has and of
// those the candidate lacks.
func Overlap(candidate, job skills.Names) (matching, missing []string) {
	candidateIDs := candidate.IDs()
	jobIDs := job.IDs()
	return job.Lookup(candidateIDs.Intersect(jobIDs)), job.Lookup(jobIDs.Difference(candidateIDs))
}

// generateNotes creates a short human-readable explanation of a score.
func generateNotes(c Components, jobSkillCount int) string {
	var notes []string

	switch {
	case jobSkillCount == 0:
		notes = append(notes, "no required skills listed")
	case c.Skill >= 80:
		notes = append(notes, "strong skill match")
	case c.Skill >= 50:
		notes = append(notes, "partial skill match")
	case c.Skill > 0:
		notes = append(notes, "weak skill match")
	default:
		notes = append(notes, "no matching skills")
	}

	if c.Context >= 50 {
		notes = append(notes, fmt.Sprintf("resume covers %d%% of description keywords", Round(c.Context)))
	}
	if c.TitleBoost > 0 {
		notes = append(notes, "job title appears in resume")
	}

	return strings.Join(notes, "; ")
}
