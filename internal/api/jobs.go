package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/talentflow/engine/internal/hiring"
	"github.com/talentflow/engine/internal/models"
)

func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	q := hiring.JobQuery{
		Search:   r.URL.Query().Get("search"),
		Status:   r.URL.Query().Get("status"),
		Sort:     r.URL.Query().Get("sort"),
		Page:     queryInt(r, "page", 1),
		PageSize: queryInt(r, "pageSize", hiring.DefaultJobPageSize),
	}

	page, err := s.service.ListJobs(r.Context(), q)
	if err != nil {
		slog.Error("failed to list jobs", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to list jobs")
		return
	}

	respondJSON(w, http.StatusOK, page)
}

func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	job, err := s.service.GetJob(r.Context(), id)
	if err != nil {
		if errors.Is(err, hiring.ErrJobNotFound) {
			respondError(w, http.StatusNotFound, "Job not found")
			return
		}
		slog.Error("failed to get job", "error", err, "id", id)
		respondError(w, http.StatusInternalServerError, "failed to get job")
		return
	}

	respondJSON(w, http.StatusOK, job)
}

func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	var job models.Job
	if err := json.NewDecoder(r.Body).Decode(&job); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	created, err := s.service.CreateJob(r.Context(), &job)
	if err != nil {
		slog.Error("failed to create job", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to create job")
		return
	}

	respondJSON(w, http.StatusCreated, created)
}

func (s *Server) handlePatchJob(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var patch models.JobPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	job, err := s.service.PatchJob(r.Context(), id, &patch)
	if err != nil {
		if errors.Is(err, hiring.ErrJobNotFound) {
			respondError(w, http.StatusNotFound, "Job not found")
			return
		}
		slog.Error("failed to patch job", "error", err, "id", id)
		respondError(w, http.StatusInternalServerError, "failed to update job")
		return
	}

	respondJSON(w, http.StatusOK, job)
}

func (s *Server) handleDeleteJob(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := s.service.DeleteJob(r.Context(), id); err != nil {
		if errors.Is(err, hiring.ErrJobNotFound) {
			respondError(w, http.StatusNotFound, "Job not found")
			return
		}
		slog.Error("failed to delete job", "error", err, "id", id)
		respondError(w, http.StatusInternalServerError, "failed to delete job")
		return
	}

	respondSuccess(w)
}

func (s *Server) handleReorderJob(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req struct {
		FromOrder int `json:"fromOrder"`
		ToOrder   int `json:"toOrder"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := s.service.ReorderJob(r.Context(), id, req.FromOrder, req.ToOrder); err != nil {
		if errors.Is(err, hiring.ErrReorderConflict) {
			respondError(w, http.StatusNotFound, "Job not found")
			return
		}
		slog.Error("failed to reorder job", "error", err, "id", id)
		respondError(w, http.StatusInternalServerError, "failed to reorder job")
		return
	}

	respondSuccess(w)
}

// queryInt parses an integer query parameter, falling back to a default for
// missing or malformed values
func queryInt(r *http.Request, key string, defaultValue int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		return defaultValue
	}
	return v
}
