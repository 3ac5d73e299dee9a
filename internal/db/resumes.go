package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CreateResume stores an uploaded resume and its decoded text.
func (db *DB) CreateResume(ctx context.Context, candidateID uuid.UUID, filename, originalName, text string) (*Resume, error) {
	r := Resume{
		CandidateID:  candidateID,
		Filename:     filename,
		OriginalName: originalName,
		TextContent:  text,
	}
	err := db.pool.QueryRow(ctx,
		`INSERT INTO resumes (candidate_id, filename, original_name, text_content)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, uploaded_at`,
		candidateID, filename, originalName, text,
	).Scan(&r.ID, &r.UploadedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create resume: %w", err)
	}
	return &r, nil
}

// ListResumes retrieves a candidate's resumes, newest first.
func (db *DB) ListResumes(ctx context.Context, candidateID uuid.UUID) ([]Resume, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, candidate_id, filename, original_name, text_content, uploaded_at
		 FROM resumes WHERE candidate_id = $1
		 ORDER BY uploaded_at DESC, id`,
		candidateID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	defer rows.Close()

	var resumes []Resume
	for rows.Next() {
		var r Resume
		if err := rows.Scan(&r.ID, &r.CandidateID, &r.Filename, &r.OriginalName, &r.TextContent, &r.UploadedAt); err != nil {
			return nil, fmt.Errorf("failed to scan resume: %w", err)
		}
		resumes = append(resumes, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	return resumes, nil
}

// LatestResume retrieves a candidate's most recent resume. Returns nil, nil
// when the candidate has none.
func (db *DB) LatestResume(ctx context.Context, candidateID uuid.UUID) (*Resume, error) {
	var r Resume
	err := db.pool.QueryRow(ctx,
		`SELECT id, candidate_id, filename, original_name, text_content, uploaded_at
		 FROM resumes WHERE candidate_id = $1
		 ORDER BY uploaded_at DESC, id LIMIT 1`,
		candidateID,
	).Scan(&r.ID, &r.CandidateID, &r.Filename, &r.OriginalName, &r.TextContent, &r.UploadedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest resume: %w", err)
	}
	return &r, nil
}

// ListCandidatesWithResumes retrieves every candidate with at least one
// resume, paired with their latest resume, in registration order.
func (db *DB) ListCandidatesWithResumes(ctx context.Context) ([]CandidateProfile, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT u.id, u.name, u.email, r.id, r.text_content
		 FROM users u
		 JOIN LATERAL (
		     SELECT id, text_content FROM resumes
		     WHERE candidate_id = u.id
		     ORDER BY uploaded_at DESC, id LIMIT 1
		 ) r ON TRUE
		 WHERE u.role = 'candidate'
		 ORDER BY u.created_at, u.id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}
	defer rows.Close()

	var candidates []CandidateProfile
	for rows.Next() {
		var c CandidateProfile
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.ResumeID, &c.ResumeText); err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}
	return candidates, nil
}
