package media

import (
	"bytes"
	"fmt"
	"image"
	"sync"

	"photo-viewer/internal/logging"

	"github.com/davidbyttow/govips/v2/vips"
	"github.com/disintegration/imaging"
)

var (
	vipsMu          sync.Mutex
	vipsInitialized bool
	vipsAvailable   bool
)

// InitVips starts the libvips library. Call once at startup; rendering
// works without it, just slower on large sources.
func InitVips() error {
	vipsMu.Lock()
	defer vipsMu.Unlock()

	if vipsInitialized {
		return nil
	}

	// Route vips diagnostics through our logger, filtered to match the
	// application log level. Must be configured before Startup.
	vips.LoggingSettings(forwardVipsLog, vipsLogThreshold(logging.GetLevel()))

	// Conservative memory settings: thumbnails are small and bursty,
	// there is nothing to gain from a large operation cache.
	vips.Startup(&vips.Config{
		ConcurrencyLevel: 1,
		MaxCacheMem:      50 * 1024 * 1024,
		MaxCacheSize:     100,
	})

	vipsInitialized = true
	vipsAvailable = true
	logging.Info("libvips initialized (version: %s)", vips.Version)
	return nil
}

// ShutdownVips releases libvips resources.
func ShutdownVips() {
	vipsMu.Lock()
	defer vipsMu.Unlock()

	if vipsInitialized {
		vips.Shutdown()
		vipsInitialized = false
		vipsAvailable = false
		logging.Info("libvips shutdown complete")
	}
}

// IsVipsAvailable reports whether the libvips fast path is usable.
func IsVipsAvailable() bool {
	vipsMu.Lock()
	defer vipsMu.Unlock()
	return vipsAvailable
}

// vipsLogThreshold maps the application log level to the most verbose
// vips level still worth forwarding.
func vipsLogThreshold(level logging.Level) vips.LogLevel {
	switch level {
	case logging.LevelDebug:
		return vips.LogLevelInfo
	case logging.LevelInfo:
		return vips.LogLevelWarning
	case logging.LevelWarn:
		return vips.LogLevelError
	default:
		return vips.LogLevelCritical
	}
}

// forwardVipsLog routes a vips diagnostic to the matching level of our
// logger. Threshold filtering already happened inside govips.
func forwardVipsLog(domain string, level vips.LogLevel, msg string) {
	switch level {
	case vips.LogLevelError, vips.LogLevelCritical:
		logging.Error("[%s] %s", domain, msg)
	case vips.LogLevelWarning:
		logging.Warn("[%s] %s", domain, msg)
	default:
		logging.Debug("[%s] %s", domain, msg)
	}
}

// loadThumbnailWithVips decodes path already shrunk toward a box×box
// bound. Shrink-on-load means the full-resolution bitmap never
// materializes, which is what keeps cold thumbnail passes over folders
// of camera output cheap. Callers must only use this when the source is
// larger than the box; vips would upscale smaller sources.
func loadThumbnailWithVips(path string, box int) (image.Image, error) {
	if !IsVipsAvailable() {
		return nil, fmt.Errorf("libvips not available")
	}

	ref, err := vips.LoadImageFromFile(path, vips.NewImportParams())
	if err != nil {
		return nil, fmt.Errorf("vips load failed: %w", err)
	}
	defer ref.Close()

	if err := ref.Thumbnail(box, box, vips.InterestingNone); err != nil {
		return nil, fmt.Errorf("vips thumbnail failed: %w", err)
	}

	// Hand back through an intermediate JPEG so both decode paths feed
	// the same fit-and-encode step.
	out, _, err := ref.ExportJpeg(&vips.JpegExportParams{
		Quality:        transportJPEGQuality,
		OptimizeCoding: true,
	})
	if err != nil {
		return nil, fmt.Errorf("vips export failed: %w", err)
	}

	img, err := imaging.Decode(bytes.NewReader(out))
	if err != nil {
		return nil, fmt.Errorf("failed to decode vips output: %w", err)
	}
	return img, nil
}
