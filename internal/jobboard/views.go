package jobboard

import (
	"github.com/google/uuid"
	"github.com/jonathan/job-matcher/internal/db"
	"github.com/jonathan/job-matcher/internal/ranking"
	"github.com/jonathan/job-matcher/internal/types"
)

// Viewer identifies the caller. The zero value is an anonymous visitor.
type Viewer struct {
	UserID uuid.UUID
	Role   types.Role
}

// IsCandidate reports whether the viewer is a signed-in candidate.
func (v Viewer) IsCandidate() bool {
	return v.UserID != uuid.Nil && v.Role == types.RoleCandidate
}

// IsRecruiter reports whether the viewer is a signed-in recruiter.
func (v Viewer) IsRecruiter() bool {
	return v.UserID != uuid.Nil && v.Role == types.RoleRecruiter
}

// JobMatch is a job scored for one candidate.
type JobMatch struct {
	Job            db.Job   `json:"job"`
	Score          float64  `json:"match_score"`
	DisplayScore   int      `json:"display_score"`
	MatchingSkills []string `json:"matching_skills"`
	MissingSkills  []string `json:"missing_skills"`
}

// JobMatchDetail is one job scored for a candidate with its breakdown.
type JobMatchDetail struct {
	Job       db.Job         `json:"job"`
	Match     ranking.Result `json:"match"`
	HighMatch bool           `json:"high_match"`
}

// CandidateMatch is a candidate scored against one job.
type CandidateMatch struct {
	Candidate      db.CandidateProfile `json:"candidate"`
	Score          float64             `json:"match_score"`
	DisplayScore   int                 `json:"display_score"`
	MatchingSkills []string            `json:"matching_skills"`
	MissingSkills  []string            `json:"missing_skills"`
}

// ApplicationView is an application with the applicant's score for the job.
type ApplicationView struct {
	db.ApplicationDetail
	Score        float64 `json:"match_score"`
	DisplayScore int     `json:"display_score"`
}

// CandidateStats are the counters on the candidate dashboard.
type CandidateStats struct {
	Resumes      int `json:"resumes"`
	HighMatches  int `json:"high_matches"`
	Applications int `json:"applications"`
}

// CandidateDashboard is everything the candidate home page shows.
type CandidateDashboard struct {
	Resumes      []db.Resume            `json:"resumes"`
	Applications []db.ApplicationDetail `json:"applications"`
	TopMatches   []JobMatch             `json:"top_matches"`
	Stats        CandidateStats         `json:"stats"`
}

// RecruiterStats are the counters on the recruiter dashboard.
type RecruiterStats struct {
	ActiveJobs        int `json:"active_jobs"`
	TotalJobs         int `json:"total_jobs"`
	TotalApplications int `json:"total_applications"`
}

// RecruiterDashboard is everything the recruiter home page shows.
type RecruiterDashboard struct {
	Jobs  []db.Job       `json:"jobs"`
	Stats RecruiterStats `json:"stats"`
}

// JobMatches is the recruiter's ranked candidate list for one job.
type JobMatches struct {
	Job     db.Job           `json:"job"`
	Matches []CandidateMatch `json:"matches"`
}

// JobApplications is the recruiter's applicant list for one job.
type JobApplications struct {
	Job          db.Job            `json:"job"`
	Applications []ApplicationView `json:"applications"`
}
