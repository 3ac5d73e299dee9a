package jobboard

import (
	"context"

	"github.com/google/uuid"
	"github.com/jonathan/job-matcher/internal/db"
	"github.com/jonathan/job-matcher/internal/skills"
)

// Store is the persistence the service needs. *db.DB implements it.
type Store interface {
	CreateJob(ctx context.Context, recruiterID uuid.UUID, title, description, location string) (*db.Job, error)
	GetJob(ctx context.Context, id uuid.UUID) (*db.Job, error)
	ListJobs(ctx context.Context, filters db.JobFilters) ([]db.Job, error)

	GetOrCreateSkill(ctx context.Context, name string) (skills.SkillID, error)
	LinkJobSkill(ctx context.Context, jobID uuid.UUID, skillID skills.SkillID) error
	LinkCandidateSkill(ctx context.Context, candidateID uuid.UUID, skillID skills.SkillID) error
	JobSkills(ctx context.Context, jobIDs []uuid.UUID) (map[uuid.UUID]skills.Names, error)
	CandidateSkills(ctx context.Context, candidateIDs []uuid.UUID) (map[uuid.UUID]skills.Names, error)

	CreateResume(ctx context.Context, candidateID uuid.UUID, filename, originalName, text string) (*db.Resume, error)
	ListResumes(ctx context.Context, candidateID uuid.UUID) ([]db.Resume, error)
	LatestResume(ctx context.Context, candidateID uuid.UUID) (*db.Resume, error)
	ListCandidatesWithResumes(ctx context.Context) ([]db.CandidateProfile, error)

	CreateApplication(ctx context.Context, jobID, candidateID uuid.UUID, resumeID *uuid.UUID) (*db.Application, error)
	GetApplication(ctx context.Context, id uuid.UUID) (*db.Application, error)
	UpdateApplicationStatus(ctx context.Context, id uuid.UUID, status string) error
	ListApplications(ctx context.Context, filters db.ApplicationFilters) ([]db.ApplicationDetail, error)
}

var _ Store = (*db.DB)(nil)
