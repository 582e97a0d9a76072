package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/talentflow/engine/internal/hiring"
	"github.com/talentflow/engine/internal/models"
)

func (s *Server) handleListCandidates(w http.ResponseWriter, r *http.Request) {
	// The job filter is the "job" query param; "jobId" is kept as an alias.
	jobID := r.URL.Query().Get("job")
	if jobID == "" {
		jobID = r.URL.Query().Get("jobId")
	}

	q := hiring.CandidateQuery{
		Search:   r.URL.Query().Get("search"),
		Stage:    r.URL.Query().Get("stage"),
		JobID:    jobID,
		Page:     queryInt(r, "page", 1),
		PageSize: queryInt(r, "pageSize", hiring.DefaultCandidatePageSize),
	}

	page, err := s.service.ListCandidates(r.Context(), q)
	if err != nil {
		slog.Error("failed to list candidates", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to list candidates")
		return
	}

	respondJSON(w, http.StatusOK, page)
}

func (s *Server) handleGetCandidate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	candidate, err := s.service.GetCandidate(r.Context(), id)
	if err != nil {
		if errors.Is(err, hiring.ErrCandidateNotFound) {
			respondError(w, http.StatusNotFound, "Candidate not found")
			return
		}
		slog.Error("failed to get candidate", "error", err, "id", id)
		respondError(w, http.StatusInternalServerError, "failed to get candidate")
		return
	}

	respondJSON(w, http.StatusOK, candidate)
}

func (s *Server) handleCreateCandidate(w http.ResponseWriter, r *http.Request) {
	var candidate models.Candidate
	if err := json.NewDecoder(r.Body).Decode(&candidate); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	created, err := s.service.CreateCandidate(r.Context(), &candidate)
	if err != nil {
		slog.Error("failed to create candidate", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to create candidate")
		return
	}

	respondJSON(w, http.StatusCreated, created)
}

func (s *Server) handlePatchCandidate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var patch models.CandidatePatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	candidate, err := s.service.PatchCandidate(r.Context(), id, &patch)
	if err != nil {
		if errors.Is(err, hiring.ErrCandidateNotFound) {
			respondError(w, http.StatusNotFound, "Candidate not found")
			return
		}
		slog.Error("failed to patch candidate", "error", err, "id", id)
		respondError(w, http.StatusInternalServerError, "failed to update candidate")
		return
	}

	respondJSON(w, http.StatusOK, candidate)
}

func (s *Server) handleTimeline(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	entries, err := s.service.Timeline(r.Context(), id)
	if err != nil {
		slog.Error("failed to load timeline", "error", err, "candidateId", id)
		respondError(w, http.StatusInternalServerError, "failed to load timeline")
		return
	}

	respondJSON(w, http.StatusOK, entries)
}

func (s *Server) handleListNotes(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	notes, err := s.service.Notes(r.Context(), id)
	if err != nil {
		slog.Error("failed to list notes", "error", err, "candidateId", id)
		respondError(w, http.StatusInternalServerError, "failed to list notes")
		return
	}

	respondJSON(w, http.StatusOK, notes)
}

func (s *Server) handleAddNote(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req struct {
		Content   string `json:"content"`
		CreatedBy string `json:"createdBy"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	note, err := s.service.AddNote(r.Context(), id, req.Content, req.CreatedBy)
	if err != nil {
		if errors.Is(err, hiring.ErrCandidateNotFound) {
			respondError(w, http.StatusNotFound, "Candidate not found")
			return
		}
		slog.Error("failed to add note", "error", err, "candidateId", id)
		respondError(w, http.StatusInternalServerError, "failed to add note")
		return
	}

	respondJSON(w, http.StatusCreated, note)
}
