package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/jonathan/job-matcher/internal/jobboard"
	"github.com/jonathan/job-matcher/internal/ranking"
	"github.com/jonathan/job-matcher/internal/schemas"
	"github.com/jonathan/job-matcher/internal/server/middleware"
	"github.com/jonathan/job-matcher/internal/types"
)

// maxJSONBody bounds request bodies of the JSON endpoints.
const maxJSONBody = 1 << 20

// pathID parses the {id} path value. It writes a 400 and returns false when
// the value is not a UUID.
func (s *Server) pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid id")
		return uuid.Nil, false
	}
	return id, true
}

// userID returns the authenticated user. Routes using it sit behind
// AuthMiddleware, so a missing ID is answered with 401.
func (s *Server) userID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return uuid.Nil, false
	}
	return id, true
}

// decodeJSON reads a bounded JSON body into v.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody)).Decode(v); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// handleCareers lists active jobs. Candidates get their match scores.
func (s *Server) handleCareers(w http.ResponseWriter, r *http.Request) {
	var viewer jobboard.Viewer
	if id, err := middleware.GetUserID(r); err == nil {
		role, _ := middleware.GetRole(r)
		viewer = jobboard.Viewer{UserID: id, Role: types.Role(role)}
	}

	q := r.URL.Query()
	sortBy := q.Get("sort")
	if sortBy == "" {
		sortBy = types.SortByDate
	}
	if sortBy != types.SortByDate && sortBy != types.SortByMatch {
		s.errorResponse(w, http.StatusBadRequest, "sort must be date or match")
		return
	}

	jobs, err := s.jobs.Careers(r.Context(), viewer, q.Get("q"), sortBy)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"jobs":  jobs,
		"query": q.Get("q"),
		"sort":  sortBy,
	})
}

// handleApply records the candidate's application to a job.
func (s *Server) handleApply(w http.ResponseWriter, r *http.Request) {
	candidateID, ok := s.userID(w, r)
	if !ok {
		return
	}
	jobID, ok := s.pathID(w, r)
	if !ok {
		return
	}

	app, err := s.jobs.Apply(r.Context(), candidateID, jobID)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, app)
}

// handleScore scores one (candidate, job) pair given as skill IDs and text.
func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxJSONBody))
	if err != nil || !json.Valid(body) {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := schemas.ValidateDocument(schemas.ScoreRequest, body); err != nil {
		var ve *schemas.ValidationError
		if errors.As(err, &ve) {
			s.errorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		s.handleError(w, r, err)
		return
	}

	var req types.ScoreRequest
	if err := json.Unmarshal(body, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	c := ranking.Breakdown(req.Input())
	s.jsonResponse(w, http.StatusOK, types.NewScoreResponse(c, s.cfg.HighMatchThreshold))
}

// handleExtractSkills returns the canonical skills found in free text.
func (s *Server) handleExtractSkills(w http.ResponseWriter, r *http.Request) {
	var req types.ExtractSkillsRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}
	s.jsonResponse(w, http.StatusOK, types.ExtractSkillsResponse{
		Skills: s.jobs.Extractor().Extract(req.Text),
	})
}
