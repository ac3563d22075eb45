// Package main provides the entry point for the Photo Viewer backend.
//
// Photo Viewer is a self-hosted service that backs a desktop image
// browser. It lists folders of images with sortable metadata, serves
// full-size image payloads ready for display, and generates small JPEG
// thumbnails that are cached on disk between runs.
//
// # Application Lifecycle
//
// The application follows a structured initialization sequence:
//
//  1. Configuration Loading: Reads environment variables (and an
//     optional .env file) and validates derived settings
//  2. Image Pipeline: Initializes libvips for fast thumbnailing, with
//     pure-Go decoders as the fallback path
//  3. Thumbnail Cache: Opens the file-backed store and runs one sweep
//     to clear entries that expired while the server was down
//  4. Background Services: Schedules periodic cache sweeps and starts
//     the folder watcher (if enabled)
//  5. HTTP Server Setup: Configures routes, middleware, and the
//     optional metrics listener
//  6. Graceful Shutdown: Handles SIGINT/SIGTERM, stops all components
//     cleanly
//
// # HTTP Servers
//
// The application runs up to two HTTP servers:
//
//  1. Main Server (default port 8080):
//     - Folder listing and change polling
//     - Full image loading
//     - Thumbnail generation, cached lookups, and dimension probes
//     - Cache sweeping and statistics
//     - File validation and metadata
//     - Health, readiness, and version endpoints
//
//  2. Metrics Server (default port 9090, optional):
//     - Prometheus metrics endpoint (/metrics)
//     - Liveness endpoint (/livez)
//
// # Environment Variables
//
// Configuration is primarily through environment variables:
//
//   - PORT: Main HTTP server port (default: 8080)
//   - METRICS_PORT: Metrics server port (default: 9090)
//   - METRICS_ENABLED: Enable metrics server (default: true)
//   - CACHE_DIR: Directory for cached thumbnails
//   - CACHE_TTL: Thumbnail expiry age (default: 24h)
//   - THUMBNAIL_SIZE: Default thumbnail bounding box (default: 30)
//   - JPEG_QUALITY: Thumbnail JPEG quality (default: 80)
//   - SWEEP_INTERVAL: Periodic sweep interval, 0 disables (default: 1h)
//   - WATCHER_ENABLED: Enable the folder watcher (default: true)
//   - LOG_HEALTH_CHECKS: Log health check requests (default: true)
//   - LOG_LEVEL: Logging level (debug/info/warn/error)
//
// A single image path may also be passed as the first command line
// argument; the frontend retrieves it via /api/startup-file to open
// that image immediately.
//
// # Graceful Shutdown
//
// The application handles SIGINT and SIGTERM signals gracefully:
//
//  1. Stop the sweep scheduler (a running sweep completes)
//  2. Close the folder watcher
//  3. Shutdown the metrics server (if running)
//  4. Shutdown the main HTTP server (30s timeout)
//
// # Related Packages
//
//   - [photo-viewer/internal/media]: Folder scanning, image loading, thumbnails
//   - [photo-viewer/internal/thumbcache]: File-backed thumbnail cache
//   - [photo-viewer/internal/imagefmt]: Format detection and validation
//   - [photo-viewer/internal/handlers]: HTTP request handlers
//   - [photo-viewer/internal/middleware]: HTTP middleware (logging, metrics, compression)
//   - [photo-viewer/internal/startup]: Configuration and initialization
package main
