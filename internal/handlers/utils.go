package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"

	"photo-viewer/internal/logging"
	"photo-viewer/internal/media"
)

// writeJSON encodes v as JSON and writes it to the response writer.
// Any encoding or write errors are logged since we typically cannot
// recover from them in an HTTP handler context.
func writeJSON(w http.ResponseWriter, v interface{}) {
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Error("failed to encode JSON response: %v", err)
	}
}

// writeJSONError writes an error response as JSON with the given status code.
func writeJSONError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	writeJSON(w, map[string]string{"error": message})
}

// writeJSONStatus writes a simple status response as JSON.
func writeJSONStatus(w http.ResponseWriter, status string) {
	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, map[string]string{"status": status})
}

// statusForError maps pipeline and cache sentinels onto HTTP status
// codes. Anything unrecognized is a 500.
func statusForError(err error) int {
	switch {
	case errors.Is(err, media.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, media.ErrInvalidFolder):
		return http.StatusNotFound
	case errors.Is(err, media.ErrUnsupportedFormat):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, media.ErrDecode):
		return http.StatusUnprocessableEntity
	case errors.Is(err, os.ErrPermission):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// writeError reports a component failure with its mapped status code.
func writeError(w http.ResponseWriter, err error) {
	writeJSONError(w, err.Error(), statusForError(err))
}
