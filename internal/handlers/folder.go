package handlers

import (
	"net/http"
	"time"

	"photo-viewer/internal/logging"
)

// changesResponse answers a change poll. LastChange is Unix seconds,
// zero when no change has been seen for the folder.
type changesResponse struct {
	Changed    bool  `json:"changed"`
	LastChange int64 `json:"last_change"`
}

// ListFolder returns descriptors for every viewable image directly
// inside the requested folder, sorted as asked. The listed folder
// becomes the watched one.
func (h *Handlers) ListFolder(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	p := parseFolderParams(r)
	if err := p.Validate(); err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	images, err := h.scanner.FolderImages(p.Path, p.Sort, p.Order)
	if err != nil {
		logging.Error("folder listing failed for %s: %v", p.Path, err)
		writeError(w, err)
		return
	}

	if h.watcher != nil {
		if err := h.watcher.Track(p.Path); err != nil {
			logging.Warn("could not watch %s: %v", p.Path, err)
		}
	}

	logging.Debug("listed %d images in %s in %v", len(images), p.Path, time.Since(start))
	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, images)
}

// FolderChanges reports whether the folder has changed since the given
// Unix time. With watching disabled every poll reports no change.
func (h *Handlers) FolderChanges(w http.ResponseWriter, r *http.Request) {
	p, err := parseChangesParams(r)
	if err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := p.Validate(); err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	var resp changesResponse
	if h.watcher != nil {
		resp.Changed, resp.LastChange = h.watcher.Changes(p.Path, p.Since)
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, resp)
}
