// Package jobboard implements the job board use cases that rank jobs and
// candidates: careers listing, dashboards, match views, resume upload and
// applications.
package jobboard

import "errors"

var (
	// ErrJobNotFound is returned when a job does not exist, is inactive where
	// an active job is required, or belongs to another recruiter.
	ErrJobNotFound = errors.New("job not found")
	// ErrApplicationNotFound is returned for unknown applications and for
	// applications to another recruiter's jobs.
	ErrApplicationNotFound = errors.New("application not found")
	// ErrAlreadyApplied is returned when a candidate applies to a job twice.
	ErrAlreadyApplied = errors.New("already applied to this job")
	// ErrInvalidStatus is returned for application statuses other than accepted or rejected.
	ErrInvalidStatus = errors.New("invalid application status")
	// ErrUnsupportedFile is returned for resume uploads that cannot be read.
	ErrUnsupportedFile = errors.New("unsupported resume file")
	// ErrFileTooLarge is returned for resume uploads over the size limit.
	ErrFileTooLarge = errors.New("resume file too large")
	// ErrForbidden is returned when the caller's role may not use an operation.
	ErrForbidden = errors.New("forbidden")
)
