package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// The wire shapes are the original client contract: list endpoints return
// {data, meta}, single-entity endpoints return the bare record, deletes
// return {success: true}, and failures return {error: message}.

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func respondSuccess(w http.ResponseWriter) {
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}
