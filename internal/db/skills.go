package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jonathan/job-matcher/internal/skills"
)

// GetOrCreateSkill returns the ID of the named skill, inserting it on first sighting.
func (db *DB) GetOrCreateSkill(ctx context.Context, name string) (skills.SkillID, error) {
	var id skills.SkillID
	// DO UPDATE (not DO NOTHING) so RETURNING yields the existing row.
	err := db.pool.QueryRow(ctx,
		`INSERT INTO skills (name) VALUES ($1)
		 ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		 RETURNING id`,
		name,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to get or create skill %q: %w", name, err)
	}
	return id, nil
}

// LinkJobSkill marks a skill as required by a job. Linking twice is a no-op.
func (db *DB) LinkJobSkill(ctx context.Context, jobID uuid.UUID, skillID skills.SkillID) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO job_skills (job_id, skill_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		jobID, skillID,
	)
	if err != nil {
		return fmt.Errorf("failed to link job skill: %w", err)
	}
	return nil
}

// LinkCandidateSkill records a skill found on a candidate's resume. Linking twice is a no-op.
func (db *DB) LinkCandidateSkill(ctx context.Context, candidateID uuid.UUID, skillID skills.SkillID) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO candidate_skills (candidate_id, skill_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		candidateID, skillID,
	)
	if err != nil {
		return fmt.Errorf("failed to link candidate skill: %w", err)
	}
	return nil
}

// JobSkills returns the skills required by each of the given jobs. Jobs
// without skills map to an empty Names.
func (db *DB) JobSkills(ctx context.Context, jobIDs []uuid.UUID) (map[uuid.UUID]skills.Names, error) {
	return db.skillNames(ctx,
		`SELECT js.job_id, s.id, s.name
		 FROM job_skills js JOIN skills s ON s.id = js.skill_id
		 WHERE js.job_id = ANY($1)`,
		jobIDs,
	)
}

// CandidateSkills returns the skills of each of the given candidates.
func (db *DB) CandidateSkills(ctx context.Context, candidateIDs []uuid.UUID) (map[uuid.UUID]skills.Names, error) {
	return db.skillNames(ctx,
		`SELECT cs.candidate_id, s.id, s.name
		 FROM candidate_skills cs JOIN skills s ON s.id = cs.skill_id
		 WHERE cs.candidate_id = ANY($1)`,
		candidateIDs,
	)
}

func (db *DB) skillNames(ctx context.Context, query string, owners []uuid.UUID) (map[uuid.UUID]skills.Names, error) {
	out := make(map[uuid.UUID]skills.Names, len(owners))
	for _, id := range owners {
		out[id] = skills.Names{}
	}
	if len(owners) == 0 {
		return out, nil
	}

	rows, err := db.pool.Query(ctx, query, owners)
	if err != nil {
		return nil, fmt.Errorf("failed to list skills: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			owner uuid.UUID
			sk    skills.Skill
		)
		if err := rows.Scan(&owner, &sk.ID, &sk.Name); err != nil {
			return nil, fmt.Errorf("failed to scan skill: %w", err)
		}
		out[owner][sk.ID] = sk.Name
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list skills: %w", err)
	}
	return out, nil
}
