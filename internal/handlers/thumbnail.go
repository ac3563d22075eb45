package handlers

import (
	"net/http"
)

// cachedThumbnailResponse is the lookup-only answer; no creation
// timestamp is exposed because the caller never triggered a write.
type cachedThumbnailResponse struct {
	Thumbnail string `json:"thumbnail"`
}

// GetThumbnail returns the thumbnail for (path, size), rendering and
// caching one on a miss. force=true bypasses the cache probe.
func (h *Handlers) GetThumbnail(w http.ResponseWriter, r *http.Request) {
	p, err := parseThumbnailParams(r, h.generator.DefaultSize())
	if err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := p.Validate(); err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	entry, err := h.generator.GetOrCreate(p.Path, p.Size, p.Force)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, entry)
}

// GetCachedThumbnail returns the cached thumbnail for (path, size) or
// 404. It never renders, so a miss costs nothing.
func (h *Handlers) GetCachedThumbnail(w http.ResponseWriter, r *http.Request) {
	p, err := parseThumbnailParams(r, h.generator.DefaultSize())
	if err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := p.Validate(); err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	entry, err := h.generator.CachedOnly(p.Path, p.Size)
	if err != nil {
		writeError(w, err)
		return
	}
	if entry == nil {
		writeJSONError(w, "thumbnail not cached", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, cachedThumbnailResponse{Thumbnail: entry.Thumbnail})
}

// GetThumbnailMeta returns the thumbnail together with the source
// image's full dimensions, probed from the header without a decode.
func (h *Handlers) GetThumbnailMeta(w http.ResponseWriter, r *http.Request) {
	p, err := parseThumbnailParams(r, h.generator.DefaultSize())
	if err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := p.Validate(); err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	meta, err := h.generator.WithDimensions(p.Path, p.Size, p.Force)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, meta)
}
