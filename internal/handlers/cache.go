package handlers

import (
	"net/http"
	"time"

	"photo-viewer/internal/logging"
)

type sweepResponse struct {
	Removed int `json:"removed"`
}

// SweepCache removes expired and unparsable cache entries and reports
// how many went.
func (h *Handlers) SweepCache(w http.ResponseWriter, _ *http.Request) {
	start := time.Now()
	removed := h.janitor.Sweep()
	logging.Info("cache sweep via API removed %d entries in %v", removed, time.Since(start))

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, sweepResponse{Removed: removed})
}

// GetCacheStats reports the cache population without modifying it.
func (h *Handlers) GetCacheStats(w http.ResponseWriter, _ *http.Request) {
	stats := h.janitor.Stat()

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, stats)
}
