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

func (s *Server) handleListNotifications(w http.ResponseWriter, r *http.Request) {
	notifications, err := s.service.Notifications(r.Context())
	if err != nil {
		slog.Error("failed to list notifications", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to list notifications")
		return
	}

	respondJSON(w, http.StatusOK, notifications)
}

func (s *Server) handleMarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	notification, err := s.service.MarkNotificationRead(r.Context(), id)
	if err != nil {
		if errors.Is(err, hiring.ErrNotificationNotFound) {
			respondError(w, http.StatusNotFound, "Notification not found")
			return
		}
		slog.Error("failed to mark notification read", "error", err, "id", id)
		respondError(w, http.StatusInternalServerError, "failed to update notification")
		return
	}

	respondJSON(w, http.StatusOK, notification)
}

func (s *Server) handleClearReadNotifications(w http.ResponseWriter, r *http.Request) {
	if err := s.service.ClearReadNotifications(r.Context()); err != nil {
		slog.Error("failed to clear read notifications", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to clear notifications")
		return
	}

	respondSuccess(w)
}

func (s *Server) handleListHiddenActivities(w http.ResponseWriter, r *http.Request) {
	hidden, err := s.service.HiddenActivities(r.Context())
	if err != nil {
		slog.Error("failed to list hidden activities", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to list hidden activities")
		return
	}

	respondJSON(w, http.StatusOK, hidden)
}

func (s *Server) handleHideActivity(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	hidden, err := s.service.HideActivity(r.Context(), id)
	if err != nil {
		slog.Error("failed to hide activity", "error", err, "activityId", id)
		respondError(w, http.StatusInternalServerError, "failed to hide activity")
		return
	}

	respondJSON(w, http.StatusCreated, hidden)
}

func (s *Server) handleUnhideActivity(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := s.service.UnhideActivity(r.Context(), id); err != nil {
		if errors.Is(err, hiring.ErrActivityNotHidden) {
			respondError(w, http.StatusNotFound, "Activity not hidden")
			return
		}
		slog.Error("failed to unhide activity", "error", err, "activityId", id)
		respondError(w, http.StatusInternalServerError, "failed to unhide activity")
		return
	}

	respondSuccess(w)
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := s.service.Profile(r.Context())
	if err != nil {
		if errors.Is(err, hiring.ErrProfileNotFound) {
			respondError(w, http.StatusNotFound, "Profile not found")
			return
		}
		slog.Error("failed to get profile", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to get profile")
		return
	}

	respondJSON(w, http.StatusOK, profile)
}

func (s *Server) handlePatchProfile(w http.ResponseWriter, r *http.Request) {
	var patch models.ProfilePatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	profile, err := s.service.PatchProfile(r.Context(), &patch)
	if err != nil {
		if errors.Is(err, hiring.ErrProfileNotFound) {
			respondError(w, http.StatusNotFound, "Profile not found")
			return
		}
		slog.Error("failed to update profile", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to update profile")
		return
	}

	respondJSON(w, http.StatusOK, profile)
}
