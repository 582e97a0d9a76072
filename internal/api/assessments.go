package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/talentflow/engine/internal/models"
)

func (s *Server) handleGetAssessment(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobId")

	assessment, err := s.service.GetAssessment(r.Context(), jobID)
	if err != nil {
		slog.Error("failed to get assessment", "error", err, "jobId", jobID)
		respondError(w, http.StatusInternalServerError, "failed to get assessment")
		return
	}

	// Missing assessments resolve to an empty form rather than a 404 so the
	// builder can start from a blank slate.
	if assessment == nil {
		respondJSON(w, http.StatusOK, map[string]any{
			"jobId":    jobID,
			"sections": []models.AssessmentSection{},
		})
		return
	}

	respondJSON(w, http.StatusOK, assessment)
}

func (s *Server) handlePutAssessment(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobId")

	var req struct {
		Sections []models.AssessmentSection `json:"sections"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	assessment, err := s.service.PutAssessment(r.Context(), jobID, req.Sections)
	if err != nil {
		slog.Error("failed to save assessment", "error", err, "jobId", jobID)
		respondError(w, http.StatusInternalServerError, "failed to save assessment")
		return
	}

	respondJSON(w, http.StatusOK, assessment)
}

func (s *Server) handleSubmitAssessment(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobId")

	var req struct {
		CandidateID string         `json:"candidateId"`
		Responses   map[string]any `json:"responses"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	submission, err := s.service.SubmitAssessment(r.Context(), jobID, req.CandidateID, req.Responses)
	if err != nil {
		slog.Error("failed to submit assessment", "error", err, "jobId", jobID)
		respondError(w, http.StatusInternalServerError, "failed to submit assessment")
		return
	}

	respondJSON(w, http.StatusCreated, submission)
}
