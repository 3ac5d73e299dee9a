package db

import (
	"time"

	"github.com/google/uuid"
)

// User represents an account
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	PasswordHash string    `json:"-"` // Never serialize to JSON
	CreatedAt    time.Time `json:"created_at"`
}

// Job represents a job posting
type Job struct {
	ID          uuid.UUID `json:"id"`
	RecruiterID uuid.UUID `json:"recruiter_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// Resume represents an uploaded resume and its decoded text
type Resume struct {
	ID           uuid.UUID `json:"id"`
	CandidateID  uuid.UUID `json:"candidate_id"`
	Filename     string    `json:"filename"`
	OriginalName string    `json:"original_name"`
	TextContent  string    `json:"-"`
	UploadedAt   time.Time `json:"uploaded_at"`
}

// Application represents a candidate's application to a job
type Application struct {
	ID          uuid.UUID  `json:"id"`
	JobID       uuid.UUID  `json:"job_id"`
	CandidateID uuid.UUID  `json:"candidate_id"`
	ResumeID    *uuid.UUID `json:"resume_id,omitempty"`
	Status      string     `json:"status"`
	AppliedAt   time.Time  `json:"applied_at"`
}

// ApplicationDetail is an application joined with its job, candidate and resume
type ApplicationDetail struct {
	Application
	JobTitle       string `json:"job_title"`
	CandidateName  string `json:"candidate_name"`
	CandidateEmail string `json:"candidate_email"`
	ResumeFilename string `json:"resume_filename,omitempty"`
	ResumeText     string `json:"-"`
}

// CandidateProfile is a candidate with the text of their latest resume
type CandidateProfile struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	ResumeID   uuid.UUID `json:"resume_id"`
	ResumeText string    `json:"-"`
}

// JobFilters holds optional filters for listing jobs
type JobFilters struct {
	Query       string    // case-insensitive match on title, description or location
	RecruiterID uuid.UUID // only jobs posted by this recruiter
	ActiveOnly  bool
	Limit       int
}
