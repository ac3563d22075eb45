package handlers

import (
	"net/http"
	"os"
	"runtime"
	"time"

	"photo-viewer/internal/media"
	"photo-viewer/internal/startup"
)

const (
	statusHealthy  = "healthy"
	statusDegraded = "degraded"
)

// HealthResponse contains the health check response
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Uptime  string `json:"uptime"`

	// Cache summary
	CacheDir     string `json:"cacheDir"`
	CacheEntries int    `json:"cacheEntries"`
	ValidEntries int    `json:"validEntries"`

	// Pipeline info
	VipsEnabled    bool `json:"vipsEnabled"`
	WatcherEnabled bool `json:"watcherEnabled"`

	// System info
	GoVersion    string `json:"goVersion"`
	NumCPU       int    `json:"numCpu"`
	NumGoroutine int    `json:"numGoroutine"`
}

// HealthCheck returns the health status of the service. The service is
// degraded when the cache directory has gone away, since every
// thumbnail write would fail.
func (h *Handlers) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	total, valid := h.janitor.CacheStats()

	response := HealthResponse{
		Status:         statusHealthy,
		Version:        startup.Version,
		Uptime:         time.Since(h.startTime).Round(time.Second).String(),
		CacheDir:       h.cacheDir,
		CacheEntries:   total,
		ValidEntries:   valid,
		VipsEnabled:    media.IsVipsAvailable(),
		WatcherEnabled: h.watcher != nil,
		GoVersion:      runtime.Version(),
		NumCPU:         runtime.NumCPU(),
		NumGoroutine:   runtime.NumGoroutine(),
	}

	w.Header().Set("Content-Type", "application/json")

	if _, err := os.Stat(h.cacheDir); err != nil {
		response.Status = statusDegraded
		w.WriteHeader(http.StatusServiceUnavailable)
	} else {
		w.WriteHeader(http.StatusOK)
	}

	writeJSON(w, response)
}

// LivenessCheck is a simple liveness probe (always returns 200 if server is running)
func (h *Handlers) LivenessCheck(w http.ResponseWriter, r *http.Request) {
	// For HEAD requests, only send headers (no body)
	if r.Method == http.MethodHead {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		return
	}
	writeJSONStatus(w, "alive")
}

// ReadinessCheck returns 200 only when the service is ready to accept traffic
func (h *Handlers) ReadinessCheck(w http.ResponseWriter, _ *http.Request) {
	if _, err := os.Stat(h.cacheDir); err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		writeJSON(w, map[string]string{
			"status": "not_ready",
		})
		return
	}
	writeJSONStatus(w, "ready")
}
