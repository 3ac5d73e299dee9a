// Package jobboardtest provides an in-memory store for tests of the job
// board service and the HTTP server.
package jobboardtest

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/job-matcher/internal/db"
	"github.com/jonathan/job-matcher/internal/skills"
)

// Store is an in-memory implementation of the job board and user
// persistence. Records created later get later timestamps so "newest
// first" orderings are deterministic.
type Store struct {
	mu sync.Mutex

	clock        time.Time
	users        map[uuid.UUID]db.User
	jobs         []db.Job
	skillIDs     map[string]skills.SkillID
	skillNames   map[skills.SkillID]string
	jobSkills    map[uuid.UUID]skills.Set
	candSkills   map[uuid.UUID]skills.Set
	resumes      []db.Resume
	applications []db.Application

	// FailLinks makes every skill link call fail.
	FailLinks bool
	// FailResumes makes CreateResume fail.
	FailResumes bool
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{
		clock:      time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
		users:      make(map[uuid.UUID]db.User),
		skillIDs:   make(map[string]skills.SkillID),
		skillNames: make(map[skills.SkillID]string),
		jobSkills:  make(map[uuid.UUID]skills.Set),
		candSkills: make(map[uuid.UUID]skills.Set),
	}
}

func (f *Store) tick() time.Time {
	f.clock = f.clock.Add(time.Minute)
	return f.clock
}

// AddUser registers a user with a generated email and returns its ID.
func (f *Store) AddUser(name, role string) uuid.UUID {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := uuid.New()
	f.users[id] = db.User{ID: id, Name: name, Email: strings.ToLower(name) + "@example.com", Role: role, CreatedAt: f.tick()}
	return id
}

// AddJob posts an active job and links the named skills.
func (f *Store) AddJob(recruiterID uuid.UUID, title, description string, skillNames ...string) db.Job {
	job, err := f.CreateJob(context.Background(), recruiterID, title, description, "")
	if err != nil {
		panic(err)
	}
	for _, name := range skillNames {
		id, _ := f.GetOrCreateSkill(context.Background(), name)
		_ = f.LinkJobSkill(context.Background(), job.ID, id)
	}
	return *job
}

// AddCandidateSkills links the named skills to a candidate.
func (f *Store) AddCandidateSkills(candidateID uuid.UUID, names ...string) {
	for _, name := range names {
		id, _ := f.GetOrCreateSkill(context.Background(), name)
		_ = f.LinkCandidateSkill(context.Background(), candidateID, id)
	}
}

// SetActive opens or closes a job.
func (f *Store) SetActive(jobID uuid.UUID, active bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.jobs {
		if f.jobs[i].ID == jobID {
			f.jobs[i].IsActive = active
		}
	}
}

// Ping always succeeds.
func (f *Store) Ping(context.Context) error {
	return nil
}

// CreateUser stores a user. A taken email returns db.ErrDuplicate.
func (f *Store) CreateUser(_ context.Context, name, email, role, passwordHash string) (uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if strings.EqualFold(u.Email, email) {
			return uuid.Nil, fmt.Errorf("user %s: %w", email, db.ErrDuplicate)
		}
	}
	id := uuid.New()
	f.users[id] = db.User{ID: id, Name: name, Email: email, Role: role, PasswordHash: passwordHash, CreatedAt: f.tick()}
	return id, nil
}

func (f *Store) GetUser(_ context.Context, id uuid.UUID) (*db.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (f *Store) GetUserByEmail(_ context.Context, email string) (*db.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, nil
}

func (f *Store) CheckEmailExists(ctx context.Context, email string) (bool, error) {
	u, err := f.GetUserByEmail(ctx, email)
	return u != nil, err
}

func (f *Store) CreateJob(_ context.Context, recruiterID uuid.UUID, title, description, location string) (*db.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	j := db.Job{ID: uuid.New(), RecruiterID: recruiterID, Title: title, Description: description, Location: location, IsActive: true, CreatedAt: f.tick()}
	f.jobs = append(f.jobs, j)
	return &j, nil
}

func (f *Store) GetJob(_ context.Context, id uuid.UUID) (*db.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, j := range f.jobs {
		if j.ID == id {
			return &j, nil
		}
	}
	return nil, nil
}

func (f *Store) ListJobs(_ context.Context, filters db.JobFilters) ([]db.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	q := strings.ToLower(filters.Query)
	var out []db.Job
	for i := len(f.jobs) - 1; i >= 0; i-- {
		j := f.jobs[i]
		if filters.ActiveOnly && !j.IsActive {
			continue
		}
		if filters.RecruiterID != uuid.Nil && j.RecruiterID != filters.RecruiterID {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(j.Title+" "+j.Description+" "+j.Location), q) {
			continue
		}
		out = append(out, j)
	}
	return out, nil
}

func (f *Store) GetOrCreateSkill(_ context.Context, name string) (skills.SkillID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if id, ok := f.skillIDs[name]; ok {
		return id, nil
	}
	id := skills.SkillID(len(f.skillIDs) + 1)
	f.skillIDs[name] = id
	f.skillNames[id] = name
	return id, nil
}

func (f *Store) LinkJobSkill(_ context.Context, jobID uuid.UUID, skillID skills.SkillID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailLinks {
		return errors.New("link failed")
	}
	if f.jobSkills[jobID] == nil {
		f.jobSkills[jobID] = skills.NewSet()
	}
	f.jobSkills[jobID][skillID] = struct{}{}
	return nil
}

func (f *Store) LinkCandidateSkill(_ context.Context, candidateID uuid.UUID, skillID skills.SkillID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailLinks {
		return errors.New("link failed")
	}
	if f.candSkills[candidateID] == nil {
		f.candSkills[candidateID] = skills.NewSet()
	}
	f.candSkills[candidateID][skillID] = struct{}{}
	return nil
}

func (f *Store) names(sets map[uuid.UUID]skills.Set, owners []uuid.UUID) map[uuid.UUID]skills.Names {
	out := make(map[uuid.UUID]skills.Names, len(owners))
	for _, owner := range owners {
		n := skills.Names{}
		for id := range sets[owner] {
			n[id] = f.skillNames[id]
		}
		out[owner] = n
	}
	return out
}

func (f *Store) JobSkills(_ context.Context, jobIDs []uuid.UUID) (map[uuid.UUID]skills.Names, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.names(f.jobSkills, jobIDs), nil
}

func (f *Store) CandidateSkills(_ context.Context, candidateIDs []uuid.UUID) (map[uuid.UUID]skills.Names, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.names(f.candSkills, candidateIDs), nil
}

func (f *Store) CreateResume(_ context.Context, candidateID uuid.UUID, filename, originalName, text string) (*db.Resume, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailResumes {
		return nil, errors.New("insert failed")
	}
	r := db.Resume{ID: uuid.New(), CandidateID: candidateID, Filename: filename, OriginalName: originalName, TextContent: text, UploadedAt: f.tick()}
	f.resumes = append(f.resumes, r)
	return &r, nil
}

func (f *Store) ListResumes(_ context.Context, candidateID uuid.UUID) ([]db.Resume, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []db.Resume
	for i := len(f.resumes) - 1; i >= 0; i-- {
		if f.resumes[i].CandidateID == candidateID {
			out = append(out, f.resumes[i])
		}
	}
	return out, nil
}

func (f *Store) LatestResume(ctx context.Context, candidateID uuid.UUID) (*db.Resume, error) {
	resumes, _ := f.ListResumes(ctx, candidateID)
	if len(resumes) == 0 {
		return nil, nil
	}
	return &resumes[0], nil
}

func (f *Store) ListCandidatesWithResumes(ctx context.Context) ([]db.CandidateProfile, error) {
	f.mu.Lock()
	users := make([]db.User, 0, len(f.users))
	for _, u := range f.users {
		if u.Role == "candidate" {
			users = append(users, u)
		}
	}
	f.mu.Unlock()
	sort.Slice(users, func(i, j int) bool { return users[i].CreatedAt.Before(users[j].CreatedAt) })

	var out []db.CandidateProfile
	for _, u := range users {
		r, _ := f.LatestResume(ctx, u.ID)
		if r == nil {
			continue
		}
		out = append(out, db.CandidateProfile{ID: u.ID, Name: u.Name, Email: u.Email, ResumeID: r.ID, ResumeText: r.TextContent})
	}
	return out, nil
}

func (f *Store) CreateApplication(_ context.Context, jobID, candidateID uuid.UUID, resumeID *uuid.UUID) (*db.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.applications {
		if a.JobID == jobID && a.CandidateID == candidateID {
			return nil, fmt.Errorf("application for job %s: %w", jobID, db.ErrDuplicate)
		}
	}
	a := db.Application{ID: uuid.New(), JobID: jobID, CandidateID: candidateID, ResumeID: resumeID, Status: "pending", AppliedAt: f.tick()}
	f.applications = append(f.applications, a)
	return &a, nil
}

func (f *Store) GetApplication(_ context.Context, id uuid.UUID) (*db.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.applications {
		if a.ID == id {
			return &a, nil
		}
	}
	return nil, nil
}

func (f *Store) UpdateApplicationStatus(_ context.Context, id uuid.UUID, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.applications {
		if f.applications[i].ID == id {
			f.applications[i].Status = status
			return nil
		}
	}
	return fmt.Errorf("application not found: %s", id)
}

func (f *Store) ListApplications(_ context.Context, filters db.ApplicationFilters) ([]db.ApplicationDetail, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []db.ApplicationDetail
	for i := len(f.applications) - 1; i >= 0; i-- {
		a := f.applications[i]
		var job db.Job
		for _, j := range f.jobs {
			if j.ID == a.JobID {
				job = j
			}
		}
		if filters.JobID != uuid.Nil && a.JobID != filters.JobID {
			continue
		}
		if filters.CandidateID != uuid.Nil && a.CandidateID != filters.CandidateID {
			continue
		}
		if filters.RecruiterID != uuid.Nil && job.RecruiterID != filters.RecruiterID {
			continue
		}
		d := db.ApplicationDetail{
			Application:    a,
			JobTitle:       job.Title,
			CandidateName:  f.users[a.CandidateID].Name,
			CandidateEmail: f.users[a.CandidateID].Email,
		}
		if a.ResumeID != nil {
			for _, r := range f.resumes {
				if r.ID == *a.ResumeID {
					d.ResumeFilename = r.Filename
					d.ResumeText = r.TextContent
				}
			}
		}
		out = append(out, d)
	}
	return out, nil
}
