package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/jonathan/job-matcher/internal/jobboard"
)

// resumeField is the multipart form field carrying the resume file.
const resumeField = "resume"

// multipartOverhead leaves room for the multipart envelope around the file.
const multipartOverhead = 64 << 10

// handleCandidateDashboard returns resumes, applications, stats and top matches.
func (s *Server) handleCandidateDashboard(w http.ResponseWriter, r *http.Request) {
	candidateID, ok := s.userID(w, r)
	if !ok {
		return
	}
	dashboard, err := s.jobs.CandidateDashboard(r.Context(), candidateID)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, dashboard)
}

// handleCandidateMatches returns every active job scored for the candidate.
func (s *Server) handleCandidateJobMatch(w http.ResponseWriter, r *http.Request) {
	candidateID, ok := s.userID(w, r)
	if !ok {
		return
	}
	jobID, ok := s.pathID(w, r)
	if !ok {
		return
	}
	detail, err := s.jobs.JobMatch(r.Context(), candidateID, jobID)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, detail)
}

func (s *Server) handleCandidateMatches(w http.ResponseWriter, r *http.Request) {
	candidateID, ok := s.userID(w, r)
	if !ok {
		return
	}
	matches, err := s.jobs.CandidateMatches(r.Context(), candidateID)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"matches": matches})
}

// handleUploadResume stores a resume sent as multipart field "resume".
func (s *Server) handleUploadResume(w http.ResponseWriter, r *http.Request) {
	candidateID, ok := s.userID(w, r)
	if !ok {
		return
	}

	limit := s.cfg.MaxUploadBytes
	if limit > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, limit+multipartOverhead)
	}

	file, header, err := r.FormFile(resumeField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			s.handleError(w, r, fmt.Errorf("%w: request exceeds %d bytes", jobboard.ErrFileTooLarge, limit))
		case errors.Is(err, http.ErrMissingFile):
			s.errorResponse(w, http.StatusBadRequest, "no file part")
		default:
			s.errorResponse(w, http.StatusBadRequest, "invalid multipart form")
		}
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		s.handleError(w, r, fmt.Errorf("failed to read upload: %w", err))
		return
	}

	upload, err := s.jobs.UploadResume(r.Context(), candidateID, header.Filename, data)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, upload)
}
