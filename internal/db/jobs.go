package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const jobColumns = `id, recruiter_id, title, description, location, is_active, created_at`

// CreateJob inserts a job posting and returns it.
func (db *DB) CreateJob(ctx context.Context, recruiterID uuid.UUID, title, description, location string) (*Job, error) {
	var j Job
	err := db.pool.QueryRow(ctx,
		`INSERT INTO jobs (recruiter_id, title, description, location)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+jobColumns,
		recruiterID, title, description, location,
	).Scan(&j.ID, &j.RecruiterID, &j.Title, &j.Description, &j.Location, &j.IsActive, &j.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}
	return &j, nil
}

// GetJob retrieves a job by ID. Returns nil, nil when not found.
func (db *DB) GetJob(ctx context.Context, id uuid.UUID) (*Job, error) {
	var j Job
	err := db.pool.QueryRow(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id,
	).Scan(&j.ID, &j.RecruiterID, &j.Title, &j.Description, &j.Location, &j.IsActive, &j.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return &j, nil
}

// ListJobs retrieves jobs newest first with optional filters.
func (db *DB) ListJobs(ctx context.Context, filters JobFilters) ([]Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE 1=1`
	args := []any{}
	argNum := 1

	if filters.ActiveOnly {
		query += " AND is_active"
	}
	if filters.RecruiterID != uuid.Nil {
		query += fmt.Sprintf(" AND recruiter_id = $%d", argNum)
		args = append(args, filters.RecruiterID)
		argNum++
	}
	if filters.Query != "" {
		query += fmt.Sprintf(" AND (title ILIKE $%d OR description ILIKE $%d OR location ILIKE $%d)", argNum, argNum, argNum)
		args = append(args, "%"+filters.Query+"%")
		argNum++
	}

	query += " ORDER BY created_at DESC, id"
	if filters.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argNum)
		args = append(args, filters.Limit)
	}

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []Job
	for rows.Next() {
		var j Job
		if err := rows.Scan(&j.ID, &j.RecruiterID, &j.Title, &j.Description, &j.Location, &j.IsActive, &j.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	return jobs, nil
}
