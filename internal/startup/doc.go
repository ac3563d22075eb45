// Package startup handles application initialization, configuration loading,
// and startup/shutdown logging.
//
// This package centralizes all application configuration and provides
// consistent logging throughout the application lifecycle.
//
// # Configuration
//
// All configuration is loaded from environment variables via [LoadConfig].
// The following environment variables are supported:
//
//   - PORT: HTTP server port (default: 8080)
//   - METRICS_PORT: Prometheus metrics server port (default: 9090)
//   - METRICS_ENABLED: Enable or disable the metrics server (default: true)
//   - CACHE_DIR: Thumbnail cache directory (default: the platform user
//     cache dir, photo-viewer/thumbnails)
//   - CACHE_TTL: Thumbnail expiry window as Go duration (default: 24h)
//   - THUMBNAIL_SIZE: Default thumbnail box size in pixels (default: 30)
//   - JPEG_QUALITY: Thumbnail JPEG encode quality (default: 80)
//   - SWEEP_INTERVAL: Scheduled cache sweep interval as Go duration
//     (default: 1h; 0 disables scheduled sweeps)
//   - WATCHER_ENABLED: Watch the most recently listed folder (default: true)
//   - LOG_LEVEL: Logging level - debug, info, warn, error (default: info)
//   - DEBUG: Shortcut for LOG_LEVEL=debug when set to a truthy value
//   - LOG_HEALTH_CHECKS: Log health check requests (default: true)
//   - SCAN_WORKERS: Worker count override for the folder scanner
//
// # Directory Setup
//
// The cache directory is the only filesystem state the server owns. It is
// created if missing and probed for write access; startup fails if it is
// not writable.
//
// # Build Information
//
// Build-time variables are injected via ldflags and exposed via [GetBuildInfo]:
//   - Version: Application version
//   - Commit: Git commit hash
//   - BuildTime: Build timestamp
//   - GoVersion: Go compiler version
//
// # Startup File
//
// [FindStartupFile] resolves the file handed over when the viewer is
// launched through a file association or drag-and-drop: the first command
// line argument that names an existing, header-valid image.
//
// # Lifecycle Logging
//
// The package provides structured logging functions for consistent output:
//   - [LogPipelineInit]: Decode path selection (libvips or pure Go)
//   - [LogCacheInit]: Cache store location, expiry window and population
//   - [LogWatcherInit]: Folder watcher availability
//   - [LogHTTPRoutes]: Registered HTTP routes (debug level)
//   - [LogServerStarted]: Server endpoints and startup duration
//   - [LogShutdownInitiated]: Graceful shutdown start
//   - [LogShutdownComplete]: Shutdown completion
//
// # Example Usage
//
//	config, err := startup.LoadConfig()
//	if err != nil {
//	    startup.LogFatal("Configuration error: %v", err)
//	}
//
//	// Initialize components...
//	startup.LogCacheInit(config.CacheDir, config.CacheTTL, janitor.Stat(), config.SweepInterval)
//
//	// Start server...
//	startup.LogServerStarted(startup.ServerConfig{
//	    Port:            config.Port,
//	    MetricsPort:     config.MetricsPort,
//	    MetricsEnabled:  config.MetricsEnabled,
//	    StartupDuration: time.Since(startTime),
//	})
//
//	// On shutdown...
//	startup.LogShutdownInitiated("SIGTERM")
//	// ... cleanup ...
//	startup.LogShutdownComplete()
package startup
