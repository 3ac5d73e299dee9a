package types

import (
	"github.com/jonathan/job-matcher/internal/ranking"
	"github.com/jonathan/job-matcher/internal/skills"
)

// ScoreRequest scores one (candidate, job) pair from raw skill IDs and text.
// It is the body of POST /match/score and the input document of the score
// command.
type ScoreRequest struct {
	CandidateSkills []int64 `json:"candidate_skills" validate:"dive,gte=0"`
	JobSkills       []int64 `json:"job_skills" validate:"dive,gte=0"`
	ResumeText      string  `json:"resume_text,omitempty"`
	JobDescription  string  `json:"job_description,omitempty"`
	JobTitle        string  `json:"job_title,omitempty"`
}

// Validate validates the ScoreRequest using the validator.
func (r *ScoreRequest) Validate() error {
	return validate.Struct(r)
}

// Input converts the request to scorer input. Duplicate IDs collapse.
func (r *ScoreRequest) Input() ranking.Input {
	return ranking.Input{
		CandidateSkills: toSet(r.CandidateSkills),
		JobSkills:       toSet(r.JobSkills),
		Texts: ranking.Texts{
			ResumeText:     r.ResumeText,
			JobDescription: r.JobDescription,
			JobTitle:       r.JobTitle,
		},
	}
}

func toSet(ids []int64) skills.Set {
	s := make(skills.Set, len(ids))
	for _, id := range ids {
		s[skills.SkillID(id)] = struct{}{}
	}
	return s
}

// ScoreResponse is the scored breakdown of a ScoreRequest.
type ScoreResponse struct {
	Score        float64            `json:"score"`
	DisplayScore int                `json:"display_score"`
	HighMatch    bool               `json:"high_match"`
	Components   ranking.Components `json:"components"`
}

// NewScoreResponse builds the response for a computed breakdown.
func NewScoreResponse(c ranking.Components, highMatchThreshold float64) ScoreResponse {
	return ScoreResponse{
		Score:        c.Final,
		DisplayScore: ranking.Round(c.Final),
		HighMatch:    ranking.IsHighMatch(c.Final, highMatchThreshold),
		Components:   c,
	}
}

// ExtractSkillsRequest is the body of POST /skills/extract. Empty or
// missing text is valid and extracts nothing.
type ExtractSkillsRequest struct {
	Text string `json:"text" validate:"max=1048576"`
}

// Validate validates the ExtractSkillsRequest using the validator.
func (r *ExtractSkillsRequest) Validate() error {
	return validate.Struct(r)
}

// ExtractSkillsResponse lists canonical skill names found in the text.
type ExtractSkillsResponse struct {
	Skills []string `json:"skills"`
}

// RankJob is the job document read by the rank command. Skills are names,
// canonicalized before scoring.
type RankJob struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Skills      []string `json:"skills"`
}

// RankCandidate is one entry of the rank command's candidate list. When
// Skills is empty they are extracted from the resume text. ResumeFile is
// decoded when ResumeText is empty.
type RankCandidate struct {
	ID         string   `json:"id"`
	Name       string   `json:"name,omitempty"`
	Skills     []string `json:"skills,omitempty"`
	ResumeText string   `json:"resume_text,omitempty"`
	ResumeFile string   `json:"resume_file,omitempty"`
}

// RankedCandidate is a RankCandidate with its score and position.
type RankedCandidate struct {
	Rank           int                `json:"rank"`
	ID             string             `json:"id"`
	Name           string             `json:"name,omitempty"`
	Score          float64            `json:"score"`
	DisplayScore   int                `json:"display_score"`
	HighMatch      bool               `json:"high_match"`
	MatchingSkills []string           `json:"matching_skills"`
	MissingSkills  []string           `json:"missing_skills"`
	Components     ranking.Components `json:"components"`
}
