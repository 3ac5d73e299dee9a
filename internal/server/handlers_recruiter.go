package server

import (
	"net/http"

	"github.com/jonathan/job-matcher/internal/types"
)

// handleRecruiterDashboard lists the recruiter's jobs with counters.
func (s *Server) handleRecruiterDashboard(w http.ResponseWriter, r *http.Request) {
	recruiterID, ok := s.userID(w, r)
	if !ok {
		return
	}
	dashboard, err := s.jobs.RecruiterDashboard(r.Context(), recruiterID)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, dashboard)
}

// handleCreateJob posts a new job for the recruiter.
func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	recruiterID, ok := s.userID(w, r)
	if !ok {
		return
	}
	var req types.CreateJobRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	job, linked, err := s.jobs.CreateJob(r.Context(), recruiterID, &req)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, map[string]any{
		"job":    job,
		"skills": linked,
	})
}

// handleJobMatches ranks every candidate with a resume against one job.
func (s *Server) handleJobMatches(w http.ResponseWriter, r *http.Request) {
	recruiterID, ok := s.userID(w, r)
	if !ok {
		return
	}
	jobID, ok := s.pathID(w, r)
	if !ok {
		return
	}
	matches, err := s.jobs.JobMatches(r.Context(), recruiterID, jobID)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, matches)
}

// handleJobApplications lists applications to one job with their scores.
func (s *Server) handleJobApplications(w http.ResponseWriter, r *http.Request) {
	recruiterID, ok := s.userID(w, r)
	if !ok {
		return
	}
	jobID, ok := s.pathID(w, r)
	if !ok {
		return
	}
	apps, err := s.jobs.JobApplications(r.Context(), recruiterID, jobID)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, apps)
}

// handleUpdateApplicationStatus accepts or rejects an application.
func (s *Server) handleUpdateApplicationStatus(w http.ResponseWriter, r *http.Request) {
	recruiterID, ok := s.userID(w, r)
	if !ok {
		return
	}
	appID, ok := s.pathID(w, r)
	if !ok {
		return
	}
	var req types.UpdateApplicationStatusRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	if err := s.jobs.UpdateApplicationStatus(r.Context(), recruiterID, appID, req.Status); err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{
		"id":     appID.String(),
		"status": req.Status,
	})
}
