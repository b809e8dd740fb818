package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/msomdec/flexbase/internal/domain"
)

// writeJSON sends a JSON response with the given status code and data.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("write JSON response", "error", err)
	}
}

// writeError sends the {success:false, message} envelope used by every
// JSON endpoint.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"success": false, "message": message})
}

// writeOK sends {success:true} plus an optional message.
func writeOK(w http.ResponseWriter, message string) {
	body := map[string]any{"success": true}
	if message != "" {
		body["message"] = message
	}
	writeJSON(w, http.StatusOK, body)
}

// readJSON decodes a request body of at most 1MB into dst.
func readJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(dst)
}

// userMessage strips sentinel prefixes from a validation error so only the
// human-readable detail reaches the client.
func userMessage(err error) string {
	msg := err.Error()
	prefixes := []string{domain.ErrUpload.Error() + ": ", domain.ErrInvalidInput.Error() + ": "}
	for trimmed := true; trimmed; {
		trimmed = false
		for _, p := range prefixes {
			if strings.HasPrefix(msg, p) {
				msg = strings.TrimPrefix(msg, p)
				trimmed = true
			}
		}
	}
	return msg
}

// writeServiceError maps a service error onto a JSON status and message.
// fallback is the client-facing text for anything unexpected.
func writeServiceError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, userMessage(err))
	case errors.Is(err, domain.ErrSelfFollow):
		writeError(w, http.StatusBadRequest, "Cannot follow yourself.")
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "Access denied. Please login.")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "User not found.")
	case errors.Is(err, domain.ErrAlreadyFollowing):
		writeError(w, http.StatusConflict, "Already following.")
	case errors.Is(err, domain.ErrUpload):
		slog.Error("media upload", "error", err)
		writeError(w, http.StatusInternalServerError, "File upload failed.")
	default:
		slog.Error(fallback, "error", err)
		writeError(w, http.StatusInternalServerError, fallback)
	}
}
