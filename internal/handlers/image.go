package handlers

import (
	"net/http"

	"photo-viewer/internal/imagefmt"
	"photo-viewer/internal/media"
)

type validateResponse struct {
	Valid bool `json:"valid"`
}

// startupFileResponse carries the boot-time image path; null when the
// process was started without one.
type startupFileResponse struct {
	Path *string `json:"path"`
}

// GetImage returns the full-resolution image as a base64 payload with
// its dimensions. Animated GIFs pass through untranscoded.
func (h *Handlers) GetImage(w http.ResponseWriter, r *http.Request) {
	p := parseFileParams(r)
	if err := p.Validate(); err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	data, err := media.LoadImage(p.Path)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, data)
}

// ValidateFile reports whether the path names a viewable image. An
// unsupported, unreadable, or mislabeled file is an ordinary false
// answer, never an error.
func (h *Handlers) ValidateFile(w http.ResponseWriter, r *http.Request) {
	p := parseFileParams(r)
	if err := p.Validate(); err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	valid := imagefmt.ValidateHeader(p.Path) == nil

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, validateResponse{Valid: valid})
}

// GetFileInfo returns the descriptor for a single image file, for
// files dropped onto the window or opened via file association.
func (h *Handlers) GetFileInfo(w http.ResponseWriter, r *http.Request) {
	p := parseFileParams(r)
	if err := p.Validate(); err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	info, err := media.Describe(p.Path)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, info)
}

// GetStartupFile returns the image the process was asked to open at
// launch, resolved once during startup.
func (h *Handlers) GetStartupFile(w http.ResponseWriter, _ *http.Request) {
	var resp startupFileResponse
	if h.startupFile != "" {
		resp.Path = &h.startupFile
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, resp)
}
