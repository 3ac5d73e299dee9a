package jobboard

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jonathan/job-matcher/internal/db"
	"github.com/jonathan/job-matcher/internal/ranking"
)

// scoreJobs scores jobs for one candidate using their skills and latest
// resume. Results are in job order.
func (s *Service) scoreJobs(ctx context.Context, candidateID uuid.UUID, jobs []db.Job) ([]JobMatch, error) {
	if len(jobs) == 0 {
		return []JobMatch{}, nil
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

	jobIDs := make([]uuid.UUID, len(jobs))
	for i, j := range jobs {
		jobIDs[i] = j.ID
	}
	jobSkills, err := s.store.JobSkills(ctx, jobIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get job skills: %w", err)
	}

	candidate := candidateSkills[candidateID]
	candidateIDs := candidate.IDs()
	inputs := make([]ranking.Input, len(jobs))
	for i, j := range jobs {
		inputs[i] = ranking.Input{
			CandidateSkills: candidateIDs,
			JobSkills:       jobSkills[j.ID].IDs(),
			Texts: ranking.Texts{
				ResumeText:     resumeText,
				JobDescription: j.Description,
				JobTitle:       j.Title,
			},
		}
	}

	scores, err := ranking.ScoreAll(ctx, inputs, s.opts.Workers)
	if err != nil {
		return nil, fmt.Errorf("failed to score jobs: %w", err)
	}

	out := make([]JobMatch, len(jobs))
	for i, j := range jobs {
		matching, missing := ranking.Overlap(candidate, jobSkills[j.ID])
		out[i] = JobMatch{
			Job:            j,
			Score:          scores[i].Final,
			DisplayScore:   ranking.Round(scores[i].Final),
			MatchingSkills: matching,
			MissingSkills:  missing,
		}
	}
	return out, nil
}

// scoreCandidates scores candidates against one job using each candidate's
// latest resume. Results are in candidate order.
func (s *Service) scoreCandidates(ctx context.Context, job db.Job, candidates []db.CandidateProfile) ([]CandidateMatch, error) {
	if len(candidates) == 0 {
		return []CandidateMatch{}, nil
	}

	ids := make([]uuid.UUID, len(candidates))
	texts := make([]string, len(candidates))
	for i, c := range candidates {
		ids[i] = c.ID
		texts[i] = c.ResumeText
	}

	results, err := s.scorePairs(ctx, job, ids, texts)
	if err != nil {
		return nil, err
	}

	out := make([]CandidateMatch, len(candidates))
	for i, c := range candidates {
		out[i] = CandidateMatch{
			Candidate:      c,
			Score:          results[i].score,
			DisplayScore:   ranking.Round(results[i].score),
			MatchingSkills: results[i].matching,
			MissingSkills:  results[i].missing,
		}
	}
	return out, nil
}

// scoreApplications scores each applicant against the job using the resume
// attached to the application. Results are in application order.
func (s *Service) scoreApplications(ctx context.Context, job db.Job, apps []db.ApplicationDetail) ([]ApplicationView, error) {
	if len(apps) == 0 {
		return []ApplicationView{}, nil
	}

	ids := make([]uuid.UUID, len(apps))
	texts := make([]string, len(apps))
	for i, a := range apps {
		ids[i] = a.CandidateID
		texts[i] = a.ResumeText
	}

	results, err := s.scorePairs(ctx, job, ids, texts)
	if err != nil {
		return nil, err
	}

	out := make([]ApplicationView, len(apps))
	for i, a := range apps {
		out[i] = ApplicationView{
			ApplicationDetail: a,
			Score:             results[i].score,
			DisplayScore:      ranking.Round(results[i].score),
		}
	}
	return out, nil
}

type pairResult struct {
	score    float64
	matching []string
	missing  []string
}

// scorePairs scores many candidates, given by ID and resume text, against one job.
func (s *Service) scorePairs(ctx context.Context, job db.Job, candidateIDs []uuid.UUID, resumeTexts []string) ([]pairResult, error) {
	jobSkills, err := s.store.JobSkills(ctx, []uuid.UUID{job.ID})
	if err != nil {
		return nil, fmt.Errorf("failed to get job skills: %w", err)
	}
	candidateSkills, err := s.store.CandidateSkills(ctx, candidateIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get candidate skills: %w", err)
	}

	required := jobSkills[job.ID]
	requiredIDs := required.IDs()
	inputs := make([]ranking.Input, len(candidateIDs))
	for i, id := range candidateIDs {
		inputs[i] = ranking.Input{
			CandidateSkills: candidateSkills[id].IDs(),
			JobSkills:       requiredIDs,
			Texts: ranking.Texts{
				ResumeText:     resumeTexts[i],
				JobDescription: job.Description,
				JobTitle:       job.Title,
			},
		}
	}

	scores, err := ranking.ScoreAll(ctx, inputs, s.opts.Workers)
	if err != nil {
		return nil, fmt.Errorf("failed to score candidates: %w", err)
	}

	out := make([]pairResult, len(candidateIDs))
	for i, id := range candidateIDs {
		matching, missing := ranking.Overlap(candidateSkills[id], required)
		out[i] = pairResult{score: scores[i].Final, matching: matching, missing: missing}
	}
	return out, nil
}
