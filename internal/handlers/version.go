package handlers

import (
	"net/http"

	"photo-viewer/internal/startup"
)

// GetVersion reports the build metadata stamped at link time.
func (h *Handlers) GetVersion(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache")
	writeJSON(w, startup.GetBuildInfo())
}
