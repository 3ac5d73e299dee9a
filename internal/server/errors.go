package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/job-matcher/internal/jobboard"
)

// ErrEmailAlreadyExists indicates email is already registered
type ErrEmailAlreadyExists struct {
	Email string
}

func (e *ErrEmailAlreadyExists) Error() string {
	return fmt.Sprintf("email already registered: %s", e.Email)
}

// ErrInvalidCredentials indicates invalid login credentials
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid email or password"
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		emailExists *ErrEmailAlreadyExists
		badCreds    *ErrInvalidCredentials
		validation  *ErrValidation
	)
	switch {
	case errors.As(err, &emailExists), errors.Is(err, jobboard.ErrAlreadyApplied):
		return http.StatusConflict
	case errors.As(err, &badCreds):
		return http.StatusUnauthorized
	case errors.As(err, &validation),
		errors.Is(err, jobboard.ErrInvalidStatus),
		errors.Is(err, jobboard.ErrUnsupportedFile):
		return http.StatusBadRequest
	case errors.Is(err, jobboard.ErrJobNotFound), errors.Is(err, jobboard.ErrApplicationNotFound):
		return http.StatusNotFound
	case errors.Is(err, jobboard.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, jobboard.ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
