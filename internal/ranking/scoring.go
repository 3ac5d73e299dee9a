// Package ranking scores candidates against jobs and orders the results.
package ranking

import (
	"math"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/job-matcher/internal/skills"
)

// Weights and constants of the match score.
const (
	skillWeight   = 0.7
	contextWeight = 0.3

	// neutralSkillScore is used when a job declares no required skills.
	neutralSkillScore = 50.0
	titleBoost        = 10.0
	maxScore          = 100.0

	minKeywordRunes = 4
)

// keywordPattern matches maximal runs of word characters. Runs shorter than
// minKeywordRunes are discarded, giving \b\w{4,}\b semantics.
var keywordPattern = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// Texts carries the optional free text used by the context score and the
// title boost. Any field may be empty.
type Texts struct {
	ResumeText     string `json:"resume_text"`
	JobDescription string `json:"job_description"`
	JobTitle       string `json:"job_title"`
}

// Input is everything the scorer needs for one (candidate, job) pair.
type Input struct {
	CandidateSkills skills.Set
	JobSkills       skills.Set
	Texts
}

// Components is the score breakdown for one pair. Weighted is the sum
// before the title boost and clamp; TitleBoost is 0 or 10.
type Components struct {
	Skill      float64 `json:"skill_score"`
	Context    float64 `json:"context_score"`
	TitleBoost float64 `json:"title_boost"`
	Weighted   float64 `json:"weighted_score"`
	Final      float64 `json:"final_score"`
}

// Score returns the final match score in [0, 100] at full precision.
func Score(in Input) float64 {
	return Breakdown(in).Final
}

// Breakdown computes every component of the match score.
// The result is never negative: all components are non-negative and only
// an upper clamp is applied.
func Breakdown(in Input) Components {
	c := Components{
		Skill:      computeSkillScore(in.CandidateSkills, in.JobSkills),
		Context:    computeContextScore(in.ResumeText, in.JobDescription),
		TitleBoost: computeTitleBoost(in.JobTitle, in.ResumeText),
	}
	c.Weighted = skillWeight*c.Skill + contextWeight*c.Context
	c.Final = math.Min(c.Weighted+c.TitleBoost, maxScore)
	return c
}

// Round converts a full-precision score to the integer shown to users,
// rounding halves up (59.5 -> 60).
func Round(score float64) int {
	return int(math.Floor(score + 0.5))
}

// computeSkillScore is the percentage of job skills the candidate has.
func computeSkillScore(candidate, job skills.Set) float64 {
	if job.Len() == 0 {
		return neutralSkillScore
	}
	matched := candidate.Intersect(job).Len()
	return 100 * float64(matched) / float64(job.Len())
}

// computeContextScore is the percentage of distinct job description keywords
// that appear anywhere in the resume. Containment is a plain substring test,
// looser than the whole-word rule used for skill extraction; ranked outputs
// depend on it.
func computeContextScore(resumeText, jobDescription string) float64 {
	if resumeText == "" || jobDescription == "" {
		return 0
	}

	keywords := descriptionKeywords(jobDescription)
	if len(keywords) == 0 {
		return 0
	}

	resumeLower := strings.ToLower(resumeText)
	matches := 0
	for kw := range keywords {
		if strings.Contains(resumeLower, kw) {
			matches++
		}
	}
	return 100 * float64(matches) / float64(len(keywords))
}

// descriptionKeywords returns the distinct lower-cased tokens of at least
// minKeywordRunes characters.
func descriptionKeywords(description string) map[string]struct{} {
	keywords := make(map[string]struct{})
	for _, tok := range keywordPattern.FindAllString(strings.ToLower(description), -1) {
		if utf8.RuneCountInString(tok) >= minKeywordRunes {
			keywords[tok] = struct{}{}
		}
	}
	return keywords
}

// computeTitleBoost returns the flat bonus when the job title appears
// verbatim (case-insensitively) in the resume.
func computeTitleBoost(jobTitle, resumeText string) float64 {
	if jobTitle == "" || resumeText == "" {
		return 0
	}
	if strings.Contains(strings.ToLower(resumeText), strings.ToLower(jobTitle)) {
		return titleBoost
	}
	return 0
}
