package media

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	"path/filepath"
	"time"

	"photo-viewer/internal/imagefmt"
	"photo-viewer/internal/logging"
	"photo-viewer/internal/metrics"
	"photo-viewer/internal/thumbcache"

	"github.com/disintegration/imaging"
)

const (
	// DefaultThumbnailSize is the bounding box applied when a request
	// does not specify one.
	DefaultThumbnailSize = 30

	// DefaultJPEGQuality is the encoder quality for rendered
	// thumbnails.
	DefaultJPEGQuality = 80

	// MaxThumbnailSize caps the requestable bounding box.
	MaxThumbnailSize = 4096
)

// Generator renders thumbnails and keeps them in the persistent cache.
// Requests are independent: two concurrent requests for the same
// (path, size) may both render and both write, and the later write
// wins. Whole-entry overwrites make that race harmless, so there is no
// per-key locking here.
type Generator struct {
	store       *thumbcache.Store
	defaultSize int
	quality     int
}

// NewGenerator returns a Generator over the given store. Out-of-range
// size and quality fall back to the defaults.
func NewGenerator(store *thumbcache.Store, defaultSize, quality int) *Generator {
	if defaultSize <= 0 {
		defaultSize = DefaultThumbnailSize
	}
	if quality <= 0 || quality > 100 {
		quality = DefaultJPEGQuality
	}
	return &Generator{
		store:       store,
		defaultSize: defaultSize,
		quality:     quality,
	}
}

// DefaultSize returns the box size used when a request leaves it unset.
func (g *Generator) DefaultSize() int {
	return g.defaultSize
}

// GetOrCreate returns the cached thumbnail for (path, size), rendering
// and storing a fresh one on a miss. force skips the cache probe and
// always re-renders. Nothing is written unless rendering succeeded.
func (g *Generator) GetOrCreate(path string, size int, force bool) (*thumbcache.Entry, error) {
	if size <= 0 {
		size = g.defaultSize
	}
	key := thumbcache.DeriveKey(path, size)

	if !force {
		entry, err := g.store.Get(key)
		if err != nil {
			// Unreadable entry file: treat as a miss and regenerate.
			logging.Warn("cache read failed for %s: %v", filepath.Base(path), err)
		}
		if entry != nil {
			metrics.ThumbnailCacheHits.Inc()
			logging.Debug("thumbnail cache hit: %s (size %d)", filepath.Base(path), size)
			return entry, nil
		}
		metrics.ThumbnailCacheMisses.Inc()
	}

	payload, err := g.render(path, size)
	if err != nil {
		return nil, err
	}

	entry, err := g.store.Put(key, payload)
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// CachedOnly returns the cached thumbnail for (path, size) without ever
// rendering. A miss returns (nil, nil).
func (g *Generator) CachedOnly(path string, size int) (*thumbcache.Entry, error) {
	if size <= 0 {
		size = g.defaultSize
	}
	entry, err := g.store.Get(thumbcache.DeriveKey(path, size))
	if err != nil {
		return nil, err
	}
	if entry != nil {
		metrics.ThumbnailCacheHits.Inc()
	} else {
		metrics.ThumbnailCacheMisses.Inc()
	}
	return entry, nil
}

// WithDimensions returns the thumbnail for (path, size) together with
// the source image's full dimensions, probed from the header.
func (g *Generator) WithDimensions(path string, size int, force bool) (*ThumbnailMeta, error) {
	if err := statFile(path); err != nil {
		return nil, err
	}
	if !imagefmt.IsSupported(path) {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}

	dims, err := Dimensions(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	entry, err := g.GetOrCreate(path, size, force)
	if err != nil {
		return nil, err
	}
	return &ThumbnailMeta{
		Thumbnail: entry.Thumbnail,
		Width:     dims.Width,
		Height:    dims.Height,
	}, nil
}

// render validates the source and produces the base64 JPEG payload.
// The box-fit preserves aspect ratio and never upscales: a source
// smaller than the box comes through at its own size.
func (g *Generator) render(path string, size int) (payload string, err error) {
	format := string(imagefmt.FormatForPath(path))

	start := time.Now()
	defer func() {
		status := "success"
		if err != nil {
			status = "error"
		}
		if format == "" {
			format = "unknown"
		}
		metrics.ThumbnailGenerationsTotal.WithLabelValues(format, status).Inc()
		metrics.ThumbnailGenerationDuration.WithLabelValues(format).Observe(time.Since(start).Seconds())
	}()

	if err := statFile(path); err != nil {
		return "", err
	}
	if !imagefmt.IsSupported(path) {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
	if err := imagefmt.ValidateHeader(path); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}

	img, err := g.loadForThumbnail(path, size)
	if err != nil {
		return "", err
	}

	thumb := imaging.Fit(img, size, size, imaging.Lanczos)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, thumb, &jpeg.Options{Quality: g.quality}); err != nil {
		return "", fmt.Errorf("failed to encode thumbnail: %w", err)
	}

	logging.Debug("rendered thumbnail for %s: %dx%d in %v",
		filepath.Base(path), thumb.Bounds().Dx(), thumb.Bounds().Dy(), time.Since(start))
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// loadForThumbnail decodes the source for thumbnailing. Sources larger
// than the box take the vips shrink-on-load path when available; small
// sources and vips failures use the pure-Go decoder. GIF sources decode
// to their first frame either way.
func (g *Generator) loadForThumbnail(path string, box int) (image.Image, error) {
	dims, err := Dimensions(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if err := checkPixelBudget(dims); err != nil {
		return nil, err
	}

	if IsVipsAvailable() && (dims.Width > box || dims.Height > box) {
		img, vipsErr := loadThumbnailWithVips(path, box)
		if vipsErr == nil {
			metrics.ThumbnailVipsDecodes.Inc()
			return img, nil
		}
		logging.Warn("vips decode failed for %s, falling back: %v", filepath.Base(path), vipsErr)
		metrics.ThumbnailFallbackDecodes.Inc()
	}

	img, err := decodeImage(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return img, nil
}
