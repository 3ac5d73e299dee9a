package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CreateApplication records a pending application. Applying to the same job
// twice returns ErrDuplicate.
func (db *DB) CreateApplication(ctx context.Context, jobID, candidateID uuid.UUID, resumeID *uuid.UUID) (*Application, error) {
	a := Application{JobID: jobID, CandidateID: candidateID, ResumeID: resumeID}
	err := db.pool.QueryRow(ctx,
		`INSERT INTO applications (job_id, candidate_id, resume_id)
		 VALUES ($1, $2, $3)
		 RETURNING id, status, applied_at`,
		jobID, candidateID, resumeID,
	).Scan(&a.ID, &a.Status, &a.AppliedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("application for job %s: %w", jobID, ErrDuplicate)
		}
		return nil, fmt.Errorf("failed to create application: %w", err)
	}
	return &a, nil
}

// GetApplication retrieves an application by ID. Returns nil, nil when not found.
func (db *DB) GetApplication(ctx context.Context, id uuid.UUID) (*Application, error) {
	var a Application
	err := db.pool.QueryRow(ctx,
		`SELECT id, job_id, candidate_id, resume_id, status, applied_at
		 FROM applications WHERE id = $1`, id,
	).Scan(&a.ID, &a.JobID, &a.CandidateID, &a.ResumeID, &a.Status, &a.AppliedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	return &a, nil
}

// UpdateApplicationStatus sets the status of an application.
func (db *DB) UpdateApplicationStatus(ctx context.Context, id uuid.UUID, status string) error {
	result, err := db.pool.Exec(ctx,
		`UPDATE applications SET status = $1 WHERE id = $2`, status, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update application status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("application not found: %s", id)
	}
	return nil
}

// ApplicationFilters selects applications by job or by candidate
type ApplicationFilters struct {
	JobID       uuid.UUID
	CandidateID uuid.UUID
	RecruiterID uuid.UUID // applications to jobs posted by this recruiter
}

// ListApplications retrieves applications with their job, candidate and
// resume details, newest first.
func (db *DB) ListApplications(ctx context.Context, filters ApplicationFilters) ([]ApplicationDetail, error) {
	query := `SELECT a.id, a.job_id, a.candidate_id, a.resume_id, a.status, a.applied_at,
		       j.title, u.name, u.email,
		       COALESCE(r.filename, ''), COALESCE(r.text_content, '')
		FROM applications a
		JOIN jobs j ON j.id = a.job_id
		JOIN users u ON u.id = a.candidate_id
		LEFT JOIN resumes r ON r.id = a.resume_id
		WHERE 1=1`
	args := []any{}
	argNum := 1

	if filters.JobID != uuid.Nil {
		query += fmt.Sprintf(" AND a.job_id = $%d", argNum)
		args = append(args, filters.JobID)
		argNum++
	}
	if filters.CandidateID != uuid.Nil {
		query += fmt.Sprintf(" AND a.candidate_id = $%d", argNum)
		args = append(args, filters.CandidateID)
		argNum++
	}
	if filters.RecruiterID != uuid.Nil {
		query += fmt.Sprintf(" AND j.recruiter_id = $%d", argNum)
		args = append(args, filters.RecruiterID)
	}

	query += " ORDER BY a.applied_at DESC, a.id"

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	var apps []ApplicationDetail
	for rows.Next() {
		var a ApplicationDetail
		if err := rows.Scan(&a.ID, &a.JobID, &a.CandidateID, &a.ResumeID, &a.Status, &a.AppliedAt,
			&a.JobTitle, &a.CandidateName, &a.CandidateEmail, &a.ResumeFilename, &a.ResumeText); err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		apps = append(apps, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	return apps, nil
}
