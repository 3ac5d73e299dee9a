package jobboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/job-matcher/internal/db"
	"github.com/jonathan/job-matcher/internal/ingestion"
	"github.com/jonathan/job-matcher/internal/ranking"
	"github.com/jonathan/job-matcher/internal/skills"
	"github.com/jonathan/job-matcher/internal/types"
)

// Options tune ranking summaries and resume uploads.
type Options struct {
	HighMatchThreshold float64
	TopMatches         int
	Workers            int // batch scoring goroutines; < 1 uses GOMAXPROCS
	UploadDir          string
	MaxUploadBytes     int64
}

// DefaultOptions returns the options used when none are configured.
func DefaultOptions() Options {
	return Options{
		HighMatchThreshold: ranking.DefaultHighMatchThreshold,
		TopMatches:         ranking.DefaultTopMatches,
		UploadDir:          "uploads",
		MaxUploadBytes:     16 << 20,
	}
}

// Service implements the job board use cases on top of a Store.
type Service struct {
	store     Store
	extractor *skills.Extractor
	opts      Options
	logger    *slog.Logger
	now       func() time.Time
}

// NewService creates a Service. A nil extractor uses the default synonym
// table and a nil logger uses slog.Default().
func NewService(store Store, extractor *skills.Extractor, opts Options, logger *slog.Logger) *Service {
	if extractor == nil {
		extractor = skills.Default()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:     store,
		extractor: extractor,
		opts:      opts,
		logger:    logger,
		now:       time.Now,
	}
}

// Extractor returns the skill extractor used for resumes and job skills.
func (s *Service) Extractor() *skills.Extractor {
	return s.extractor
}

// CreateJob posts a job for a recruiter and links its canonicalized skills.
// Skill linking is best effort: failures are logged and the job is kept.
// It returns the job and the canonical names of the linked skills.
func (s *Service) CreateJob(ctx context.Context, recruiterID uuid.UUID, req *types.CreateJobRequest) (*db.Job, []string, error) {
	job, err := s.store.CreateJob(ctx, recruiterID,
		strings.TrimSpace(req.Title),
		ingestion.DescriptionText(req.Description),
		strings.TrimSpace(req.Location),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create job: %w", err)
	}

	seen := make(map[string]bool)
	linked := []string{}
	for _, name := range req.SkillNames() {
		canonical := s.extractor.Canonicalize(name)
		if seen[canonical] {
			continue
		}
		seen[canonical] = true

		if err := s.linkSkill(ctx, canonical, func(id skills.SkillID) error {
			return s.store.LinkJobSkill(ctx, job.ID, id)
		}); err != nil {
			s.logger.Warn("failed to link job skill", "job_id", job.ID, "skill", canonical, "error", err)
			continue
		}
		linked = append(linked, canonical)
	}

	s.logger.Info("job created", "job_id", job.ID, "recruiter_id", recruiterID, "skills", len(linked))
	return job, linked, nil
}

func (s *Service) linkSkill(ctx context.Context, name string, link func(skills.SkillID) error) error {
	id, err := s.store.GetOrCreateSkill(ctx, name)
	if err != nil {
		return err
	}
	return link(id)
}

// RecruiterDashboard lists a recruiter's jobs with posting and application counts.
func (s *Service) RecruiterDashboard(ctx context.Context, recruiterID uuid.UUID) (*RecruiterDashboard, error) {
	jobs, err := s.store.ListJobs(ctx, db.JobFilters{RecruiterID: recruiterID})
	if err != nil {
		return nil, fmt.Errorf("failed to list recruiter jobs: %w", err)
	}
	apps, err := s.store.ListApplications(ctx, db.ApplicationFilters{RecruiterID: recruiterID})
	if err != nil {
		return nil, fmt.Errorf("failed to list recruiter applications: %w", err)
	}

	stats := RecruiterStats{TotalJobs: len(jobs), TotalApplications: len(apps)}
	for _, j := range jobs {
		if j.IsActive {
			stats.ActiveJobs++
		}
	}
	return &RecruiterDashboard{Jobs: nonNil(jobs), Stats: stats}, nil
}

// recruiterJob loads a job owned by recruiterID. Jobs of other recruiters
// are reported as not found.
func (s *Service) recruiterJob(ctx context.Context, recruiterID, jobID uuid.UUID) (*db.Job, error) {
	job, err := s.store.GetJob(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	if job == nil || job.RecruiterID != recruiterID {
		return nil, ErrJobNotFound
	}
	return job, nil
}

// JobMatches ranks every candidate with a resume against one of the
// recruiter's jobs, best match first.
func (s *Service) JobMatches(ctx context.Context, recruiterID, jobID uuid.UUID) (*JobMatches, error) {
	job, err := s.recruiterJob(ctx, recruiterID, jobID)
	if err != nil {
		return nil, err
	}

	candidates, err := s.store.ListCandidatesWithResumes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}

	matches, err := s.scoreCandidates(ctx, *job, candidates)
	if err != nil {
		return nil, err
	}
	ranking.SortByScore(matches, func(m CandidateMatch) float64 { return m.Score })
	return &JobMatches{Job: *job, Matches: matches}, nil
}

// JobApplications lists the applications to one of the recruiter's jobs,
// each scored with the resume attached to the application.
func (s *Service) JobApplications(ctx context.Context, recruiterID, jobID uuid.UUID) (*JobApplications, error) {
	job, err := s.recruiterJob(ctx, recruiterID, jobID)
	if err != nil {
		return nil, err
	}

	apps, err := s.store.ListApplications(ctx, db.ApplicationFilters{JobID: jobID})
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}

	views, err := s.scoreApplications(ctx, *job, apps)
	if err != nil {
		return nil, err
	}
	return &JobApplications{Job: *job, Applications: views}, nil
}

// UpdateApplicationStatus accepts or rejects an application to one of the
// recruiter's jobs.
func (s *Service) UpdateApplicationStatus(ctx context.Context, recruiterID, applicationID uuid.UUID, status string) error {
	if status != types.StatusAccepted && status != types.StatusRejected {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	app, err := s.store.GetApplication(ctx, applicationID)
	if err != nil {
		return fmt.Errorf("failed to get application: %w", err)
	}
	if app == nil {
		return ErrApplicationNotFound
	}
	if _, err := s.recruiterJob(ctx, recruiterID, app.JobID); err != nil {
		if errors.Is(err, ErrJobNotFound) {
			return ErrApplicationNotFound
		}
		return err
	}

	if err := s.store.UpdateApplicationStatus(ctx, applicationID, status); err != nil {
		return fmt.Errorf("failed to update application: %w", err)
	}
	s.logger.Info("application status updated", "application_id", applicationID, "status", status)
	return nil
}

// Careers lists active jobs, optionally filtered by a search query. Signed-in
// candidates get every job scored against their skills and latest resume;
// with sortBy "match" the list is ordered by score, otherwise newest first.
// Recruiters may not browse jobs.
func (s *Service) Careers(ctx context.Context, viewer Viewer, query, sortBy string) ([]JobMatch, error) {
	if viewer.IsRecruiter() {
		return nil, ErrForbidden
	}

	jobs, err := s.store.ListJobs(ctx, db.JobFilters{Query: strings.TrimSpace(query), ActiveOnly: true})
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}

	if !viewer.IsCandidate() {
		out := make([]JobMatch, len(jobs))
		for i, j := range jobs {
			out[i] = JobMatch{Job: j, MatchingSkills: []string{}, MissingSkills: []string{}}
		}
		return out, nil
	}

	matches, err := s.scoreJobs(ctx, viewer.UserID, jobs)
	if err != nil {
		return nil, err
	}
	if sortBy == types.SortByMatch {
		ranking.SortByScore(matches, jobMatchScore)
	}
	return matches, nil
}

// CandidateMatches scores every active job for a candidate, best match first.
func (s *Service) CandidateMatches(ctx context.Context, candidateID uuid.UUID) ([]JobMatch, error) {
	jobs, err := s.store.ListJobs(ctx, db.JobFilters{ActiveOnly: true})
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	matches, err := s.scoreJobs(ctx, candidateID, jobs)
	if err != nil {
		return nil, err
	}
	ranking.SortByScore(matches, jobMatchScore)
	return matches, nil
}

// JobMatch scores one active job for a candidate and explains the result.
func (s *Service) JobMatch(ctx context.Context, candidateID, jobID uuid.UUID) (*JobMatchDetail, error) {
	job, err := s.store.GetJob(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	if job == nil || !job.IsActive {
		return nil, ErrJobNotFound
	}

	jobSkills, err := s.store.JobSkills(ctx, []uuid.UUID{jobID})
	if err != nil {
		return nil, fmt.Errorf("failed to get job skills: %w", err)
	}
	candidateSkills, err := s.store.CandidateSkills(ctx, []uuid.UUID{candidateID})
	if err != nil {
		return nil, fmt.Errorf("failed to get candidate skills: %w", err)
	}
	resume, err := s.store.LatestResume(ctx, candidateID)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest resume: %w", err)
	}
	resumeText := ""
	if resume != nil {
		resumeText = resume.TextContent
	}

	res := ranking.Match(candidateSkills[candidateID], jobSkills[jobID], ranking.Texts{
		ResumeText:     resumeText,
		JobDescription: job.Description,
		JobTitle:       job.Title,
	})
	return &JobMatchDetail{
		Job:       *job,
		Match:     res,
		HighMatch: ranking.IsHighMatch(res.Score, s.opts.HighMatchThreshold),
	}, nil
}

// CandidateDashboard collects a candidate's resumes, applications and the
// best active jobs they have not applied to yet.
func (s *Service) CandidateDashboard(ctx context.Context, candidateID uuid.UUID) (*CandidateDashboard, error) {
	resumes, err := s.store.ListResumes(ctx, candidateID)
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	apps, err := s.store.ListApplications(ctx, db.ApplicationFilters{CandidateID: candidateID})
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	jobs, err := s.store.ListJobs(ctx, db.JobFilters{ActiveOnly: true})
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}

	applied := make(map[uuid.UUID]bool, len(apps))
	for _, a := range apps {
		applied[a.JobID] = true
	}
	open := make([]db.Job, 0, len(jobs))
	for _, j := range jobs {
		if !applied[j.ID] {
			open = append(open, j)
		}
	}

	scored, err := s.scoreJobs(ctx, candidateID, open)
	if err != nil {
		return nil, err
	}
	matches := make([]JobMatch, 0, len(scored))
	for _, m := range scored {
		if m.Score > 0 {
			matches = append(matches, m)
		}
	}
	ranking.SortByScore(matches, jobMatchScore)

	return &CandidateDashboard{
		Resumes:      nonNil(resumes),
		Applications: nonNil(apps),
		TopMatches:   ranking.TopN(matches, s.opts.TopMatches),
		Stats: CandidateStats{
			Resumes:      len(resumes),
			HighMatches:  ranking.CountHighMatches(matches, jobMatchScore, s.opts.HighMatchThreshold),
			Applications: len(apps),
		},
	}, nil
}

// Apply records a pending application to an active job, attaching the
// candidate's latest resume when there is one.
func (s *Service) Apply(ctx context.Context, candidateID, jobID uuid.UUID) (*db.Application, error) {
	job, err := s.store.GetJob(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	if job == nil || !job.IsActive {
		return nil, ErrJobNotFound
	}

	resume, err := s.store.LatestResume(ctx, candidateID)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest resume: %w", err)
	}
	var resumeID *uuid.UUID
	if resume != nil {
		resumeID = &resume.ID
	}

	app, err := s.store.CreateApplication(ctx, jobID, candidateID, resumeID)
	if err != nil {
		if errors.Is(err, db.ErrDuplicate) {
			return nil, ErrAlreadyApplied
		}
		return nil, fmt.Errorf("failed to create application: %w", err)
	}
	s.logger.Info("application created", "application_id", app.ID, "job_id", jobID, "candidate_id", candidateID)
	return app, nil
}

func jobMatchScore(m JobMatch) float64 { return m.Score }

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
