package db

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jonathan/job-matcher/internal/skills"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestUser(t *testing.T, db *DB, role string) uuid.UUID {
	t.Helper()
	email := role + "-" + uuid.New().String() + "@example.com"
	id, err := db.CreateUser(context.Background(), "Test "+role, email, role, "hash")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.DeleteUser(context.Background(), id) })
	return id
}

func TestIntegration_Users(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	email := "user-" + uuid.New().String() + "@example.com"
	id, err := db.CreateUser(ctx, "Jane", email, "candidate", "hash")
	require.NoError(t, err)
	defer func() { _ = db.DeleteUser(ctx, id) }()

	user, err := db.GetUserByEmail(ctx, email)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, id, user.ID)
	assert.Equal(t, "candidate", user.Role)
	assert.Equal(t, "hash", user.PasswordHash)

	exists, err := db.CheckEmailExists(ctx, email)
	require.NoError(t, err)
	assert.True(t, exists)

	_, err = db.CreateUser(ctx, "Jane Again", email, "candidate", "hash")
	assert.ErrorIs(t, err, ErrDuplicate)

	missing, err := db.GetUser(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, missing)

	empty, err := db.GetUserByEmail(ctx, "")
	require.NoError(t, err)
	assert.Nil(t, empty)
}

func TestIntegration_JobsSkillsAndApplications(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	recruiterID := createTestUser(t, db, "recruiter")
	candidateID := createTestUser(t, db, "candidate")

	job, err := db.CreateJob(ctx, recruiterID, "Go Engineer", "Build distributed systems", "Remote")
	require.NoError(t, err)
	assert.True(t, job.IsActive)

	goID, err := db.GetOrCreateSkill(ctx, "go")
	require.NoError(t, err)
	again, err := db.GetOrCreateSkill(ctx, "go")
	require.NoError(t, err)
	assert.Equal(t, goID, again)

	sqlID, err := db.GetOrCreateSkill(ctx, "sql")
	require.NoError(t, err)

	require.NoError(t, db.LinkJobSkill(ctx, job.ID, goID))
	require.NoError(t, db.LinkJobSkill(ctx, job.ID, sqlID))
	require.NoError(t, db.LinkJobSkill(ctx, job.ID, sqlID))
	require.NoError(t, db.LinkCandidateSkill(ctx, candidateID, goID))

	jobSkills, err := db.JobSkills(ctx, []uuid.UUID{job.ID})
	require.NoError(t, err)
	assert.ElementsMatch(t, []skills.SkillID{goID, sqlID}, jobSkills[job.ID].IDs().Sorted())

	candSkills, err := db.CandidateSkills(ctx, []uuid.UUID{candidateID, uuid.New()})
	require.NoError(t, err)
	assert.Equal(t, skills.Names{goID: "go"}, candSkills[candidateID])
	assert.Len(t, candSkills, 2)

	found, err := db.ListJobs(ctx, JobFilters{Query: "distributed", ActiveOnly: true, RecruiterID: recruiterID})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, job.ID, found[0].ID)

	resume, err := db.CreateResume(ctx, candidateID, "20240101_120000_cv.txt", "cv.txt", "go developer")
	require.NoError(t, err)

	latest, err := db.LatestResume(ctx, candidateID)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, resume.ID, latest.ID)

	profiles, err := db.ListCandidatesWithResumes(ctx)
	require.NoError(t, err)
	var profile *CandidateProfile
	for i := range profiles {
		if profiles[i].ID == candidateID {
			profile = &profiles[i]
		}
	}
	require.NotNil(t, profile)
	assert.Equal(t, "go developer", profile.ResumeText)

	app, err := db.CreateApplication(ctx, job.ID, candidateID, &resume.ID)
	require.NoError(t, err)
	assert.Equal(t, "pending", app.Status)

	_, err = db.CreateApplication(ctx, job.ID, candidateID, nil)
	assert.ErrorIs(t, err, ErrDuplicate)

	require.NoError(t, db.UpdateApplicationStatus(ctx, app.ID, "accepted"))
	got, err := db.GetApplication(ctx, app.ID)
	require.NoError(t, err)
	assert.Equal(t, "accepted", got.Status)

	details, err := db.ListApplications(ctx, ApplicationFilters{JobID: job.ID})
	require.NoError(t, err)
	require.Len(t, details, 1)
	assert.Equal(t, "20240101_120000_cv.txt", details[0].ResumeFilename)
	assert.Equal(t, "Go Engineer", details[0].JobTitle)
}
