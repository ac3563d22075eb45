package startup

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"time"

	"photo-viewer/internal/imagefmt"
	"photo-viewer/internal/logging"
	"photo-viewer/internal/media"
	"photo-viewer/internal/thumbcache"

	"github.com/gorilla/mux"
)

// Build-time variables (injected via -ldflags)
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
	GoVersion = runtime.Version()
)

// BuildInfo contains version and build information
type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"buildTime"`
	GoVersion string `json:"goVersion"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
}

// GetBuildInfo returns the current build information
func GetBuildInfo() BuildInfo {
	return BuildInfo{
		Version:   Version,
		Commit:    Commit,
		BuildTime: BuildTime,
		GoVersion: GoVersion,
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
}

// RouteInfo contains information about a registered route
type RouteInfo struct {
	Method string
	Path   string
	Name   string
}

// Config holds all application configuration
type Config struct {
	Port            string
	MetricsPort     string
	MetricsEnabled  bool
	CacheDir        string
	CacheTTL        time.Duration
	ThumbnailSize   int
	JPEGQuality     int
	SweepInterval   time.Duration
	WatcherEnabled  bool
	LogHealthChecks bool
}

// LoadConfig loads and validates configuration from environment variables
func LoadConfig() (*Config, error) {
	printBanner()
	logSystemInfo()

	logging.Info("------------------------------------------------------------")
	logging.Info("CONFIGURATION")
	logging.Info("------------------------------------------------------------")

	port := getEnv("PORT", "8080")
	metricsPort := getEnv("METRICS_PORT", "9090")
	metricsEnabled := getEnvBool("METRICS_ENABLED", true)
	cacheDir := getEnv("CACHE_DIR", defaultCacheDir())
	cacheTTL := getEnvDuration("CACHE_TTL", thumbcache.DefaultTTL)
	thumbnailSize := getEnvInt("THUMBNAIL_SIZE", media.DefaultThumbnailSize)
	jpegQuality := getEnvInt("JPEG_QUALITY", media.DefaultJPEGQuality)
	sweepInterval := getEnvDuration("SWEEP_INTERVAL", time.Hour)
	watcherEnabled := getEnvBool("WATCHER_ENABLED", true)
	logHealthChecks := getEnvBool("LOG_HEALTH_CHECKS", true)

	logging.Info("  PORT:              %s", port)
	logging.Info("  METRICS_PORT:      %s", metricsPort)
	logging.Info("  METRICS_ENABLED:   %v", metricsEnabled)
	logging.Info("  CACHE_DIR:         %s", cacheDir)
	logging.Info("  CACHE_TTL:         %s", cacheTTL)
	logging.Info("  THUMBNAIL_SIZE:    %d", thumbnailSize)
	logging.Info("  JPEG_QUALITY:      %d", jpegQuality)
	logging.Info("  SWEEP_INTERVAL:    %s", sweepInterval)
	logging.Info("  WATCHER_ENABLED:   %v", watcherEnabled)
	logging.Info("  LOG_HEALTH_CHECKS: %v", logHealthChecks)
	logging.Info("  LOG_LEVEL:         %s", logging.GetLevel())

	if thumbnailSize < 1 || thumbnailSize > media.MaxThumbnailSize {
		logging.Warn("  THUMBNAIL_SIZE out of range (1..%d), using default: %d",
			media.MaxThumbnailSize, media.DefaultThumbnailSize)
		thumbnailSize = media.DefaultThumbnailSize
	}

	if jpegQuality < 1 || jpegQuality > 100 {
		logging.Warn("  JPEG_QUALITY out of range (1..100), using default: %d", media.DefaultJPEGQuality)
		jpegQuality = media.DefaultJPEGQuality
	}

	if cacheTTL <= 0 {
		logging.Warn("  CACHE_TTL must be positive, using default: %s", thumbcache.DefaultTTL)
		cacheTTL = thumbcache.DefaultTTL
	}

	if sweepInterval < 0 {
		logging.Warn("  SWEEP_INTERVAL must not be negative, disabling scheduled sweeps")
		sweepInterval = 0
	}

	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("DIRECTORY SETUP")
	logging.Info("------------------------------------------------------------")

	cacheDir, err := filepath.Abs(cacheDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve cache directory path: %w", err)
	}
	logging.Info("  Cache directory (absolute): %s", cacheDir)

	// The cache directory is the one piece of filesystem state the server
	// owns, so it must exist and be writable before anything else starts.
	if err := ensureDirectory(cacheDir, "cache"); err != nil {
		return nil, fmt.Errorf("cache directory error: %w", err)
	}

	logging.Debug("  Testing cache directory write access...")
	if err := testWriteAccess(cacheDir); err != nil {
		return nil, fmt.Errorf("cache directory is not writable: %w", err)
	}
	logging.Info("  [OK] Cache directory is writable")

	config := &Config{
		Port:            port,
		MetricsPort:     metricsPort,
		MetricsEnabled:  metricsEnabled,
		CacheDir:        cacheDir,
		CacheTTL:        cacheTTL,
		ThumbnailSize:   thumbnailSize,
		JPEGQuality:     jpegQuality,
		SweepInterval:   sweepInterval,
		WatcherEnabled:  watcherEnabled,
		LogHealthChecks: logHealthChecks,
	}

	logging.Info("")
	logging.Info("  Feature availability:")
	logging.Info("    Thumbnail cache:  ENABLED (required)")
	logging.Info("    Scheduled sweeps: %s", sweepString(config.SweepInterval))
	logging.Info("    Folder watcher:   %s", enabledString(config.WatcherEnabled))
	logging.Info("    Metrics:          %s", enabledString(config.MetricsEnabled))

	return config, nil
}

// defaultCacheDir resolves the platform cache location for thumbnails,
// falling back to the temp dir when the user cache dir is unavailable.
func defaultCacheDir() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = os.TempDir()
	}
	return filepath.Join(base, "photo-viewer", "thumbnails")
}

// FindStartupFile returns the first argument naming an existing,
// header-valid image file, or "" when there is none. Viewers launched
// via "open with" or drag-and-drop receive the file as an argument.
func FindStartupFile(args []string) string {
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil || info.IsDir() {
			continue
		}
		if err := imagefmt.ValidateHeader(arg); err != nil {
			logging.Debug("  startup argument %q is not a usable image: %v", arg, err)
			continue
		}
		return arg
	}
	return ""
}

func enabledString(enabled bool) string {
	if enabled {
		return "ENABLED"
	}
	return "DISABLED"
}

func sweepString(interval time.Duration) string {
	if interval <= 0 {
		return "DISABLED"
	}
	return fmt.Sprintf("every %s", interval)
}

// LogPipelineInit logs which decode path the image pipeline will use
func LogPipelineInit(vipsAvailable bool) {
	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("IMAGE PIPELINE")
	logging.Info("------------------------------------------------------------")
	if vipsAvailable {
		logging.Info("  [OK] libvips available, using fast thumbnail decode path")
	} else {
		logging.Info("  libvips unavailable, using pure-Go decode path")
	}
}

// LogCacheInit logs cache store initialization and the sweep schedule
func LogCacheInit(dir string, ttl time.Duration, stats thumbcache.Stats, sweepInterval time.Duration) {
	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("THUMBNAIL CACHE")
	logging.Info("------------------------------------------------------------")
	logging.Info("  Directory:     %s", dir)
	logging.Info("  Expiry window: %s", ttl)
	logging.Info("  Entries:       %d (%d valid)", stats.TotalEntries, stats.ValidEntries)
	if sweepInterval > 0 {
		logging.Info("  Sweeps:        every %s", sweepInterval)
	} else {
		logging.Info("  Sweeps:        disabled (on-demand only)")
	}
}

// LogWatcherInit logs folder watcher availability
func LogWatcherInit(enabled bool, err error) {
	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("FOLDER WATCHER")
	logging.Info("------------------------------------------------------------")
	switch {
	case !enabled:
		logging.Info("  Disabled (set WATCHER_ENABLED=true to enable)")
	case err != nil:
		logging.Warn("  Failed to start: %v", err)
		logging.Warn("  Folder change polling will always report no changes")
	default:
		logging.Info("  [OK] Watching the most recently listed folder")
	}
}

// LogStartupFile logs the file handed over on the command line, if any
func LogStartupFile(path string) {
	if path == "" {
		return
	}
	logging.Info("")
	logging.Info("  Startup file: %s", path)
}

// GetRoutes extracts all registered routes from a mux.Router
func GetRoutes(router *mux.Router) ([]RouteInfo, error) {
	var routes []RouteInfo

	err := router.Walk(func(route *mux.Route, _ *mux.Router, _ []*mux.Route) error {
		pathTemplate, err := route.GetPathTemplate()
		if err != nil {
			return err
		}

		methods, err := route.GetMethods()
		if err != nil {
			// Route might not have methods specified
			methods = []string{"*"}
		}

		name := route.GetName()

		for _, method := range methods {
			routes = append(routes, RouteInfo{
				Method: method,
				Path:   pathTemplate,
				Name:   name,
			})
		}

		return nil
	})

	return routes, err
}

// LogHTTPRoutes logs all registered HTTP routes dynamically
func LogHTTPRoutes(router *mux.Router, logHealthChecks bool) {
	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("HTTP SERVER SETUP")
	logging.Info("------------------------------------------------------------")

	if logging.IsDebugEnabled() {
		routes, err := GetRoutes(router)
		if err != nil {
			logging.Warn("error walking routes: %v", err)
		}

		logging.Debug("  Registered routes (%d total):", len(routes))
		logging.Debug("")

		// Group routes by prefix for cleaner output
		groups := make(map[string][]RouteInfo)
		for _, route := range routes {
			prefix := getRouteGroup(route.Path)
			groups[prefix] = append(groups[prefix], route)
		}

		groupKeys := make([]string, 0, len(groups))
		for k := range groups {
			groupKeys = append(groupKeys, k)
		}
		sort.Strings(groupKeys)

		for _, group := range groupKeys {
			groupRoutes := groups[group]
			if group != "" {
				logging.Debug("  [%s]", group)
			} else {
				logging.Debug("  [root]")
			}

			for _, route := range groupRoutes {
				methodPadded := fmt.Sprintf("%-6s", route.Method)
				logging.Debug("    %s %s", methodPadded, route.Path)
			}
			logging.Debug("")
		}
	}

	logging.Info("  HTTP logging enabled")
	if logHealthChecks {
		logging.Info("    Health check logging: ON")
	} else {
		logging.Info("    Health check logging: OFF (set LOG_HEALTH_CHECKS=true to enable)")
	}
}

// getRouteGroup extracts a group name from a route path
func getRouteGroup(path string) string {
	path = strings.TrimPrefix(path, "/")

	parts := strings.SplitN(path, "/", 2)
	if len(parts) == 0 {
		return ""
	}

	first := parts[0]

	if first == "api" && len(parts) > 1 {
		subParts := strings.SplitN(parts[1], "/", 2)
		return "api/" + subParts[0]
	}

	return first
}

// ServerConfig holds configuration for the server startup log
type ServerConfig struct {
	Port            string
	MetricsPort     string
	MetricsEnabled  bool
	StartupDuration time.Duration
}

// LogServerStarted logs successful server start with all endpoint information
func LogServerStarted(config ServerConfig) {
	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("SERVER STARTED")
	logging.Info("------------------------------------------------------------")
	logging.Info("  Startup time:    %v", config.StartupDuration)
	logging.Info("")
	logging.Info("  Endpoints:")
	logging.Info("    Application:   http://0.0.0.0:%s", config.Port)
	if config.MetricsEnabled {
		logging.Info("    Metrics:       http://0.0.0.0:%s/metrics", config.MetricsPort)
	} else {
		logging.Info("    Metrics:       DISABLED")
	}
	logging.Info("")
	logging.Info("  Local access:")
	logging.Info("    Application:   http://localhost:%s", config.Port)
	if config.MetricsEnabled {
		logging.Info("    Metrics:       http://localhost:%s/metrics", config.MetricsPort)
	}
	logging.Info("")
	logging.Info("  Press Ctrl+C to stop the server")
	logging.Info("------------------------------------------------------------")
	logging.Info("")
}

// LogShutdownInitiated logs shutdown start
func LogShutdownInitiated(signal string) {
	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("SHUTDOWN INITIATED (received %s)", signal)
	logging.Info("------------------------------------------------------------")
}

// LogShutdownStep logs a shutdown step
func LogShutdownStep(step string) {
	logging.Debug("  %s...", step)
}

// LogShutdownStepComplete logs a completed shutdown step
func LogShutdownStepComplete(step string) {
	logging.Info("  [OK] %s", step)
}

// LogShutdownComplete logs shutdown completion
func LogShutdownComplete() {
	logging.Info("  [OK] Shutdown complete")
}

// LogFatal logs a fatal error and exits
func LogFatal(format string, args ...interface{}) {
	logging.Fatal(format, args...)
}

// Helper functions

func printBanner() {
	banner := `
------------------------------------------------------------
    ____  __          __           _    ___
   / __ \/ /_  ____  / /_____    | |  / (_)__ _      _____  ___
  / /_/ / __ \/ __ \/ __/ __ \   | | / / / _ \ | /| / / _ \/ __|
 / ____/ / / / /_/ / /_/ /_/ /   | |/ / /  __/ |/ |/ /  __/ |
/_/   /_/ /_/\____/\__/\____/    |___/_/\___/|__/|__/\___/|_|

------------------------------------------------------------`
	fmt.Println(banner)
	logging.Info("  Version:    %s", Version)
	logging.Info("  Commit:     %s", Commit)
	logging.Info("  Build Time: %s", BuildTime)
	logging.Info("  Started:    %s", time.Now().Format(time.RFC1123))
	logging.Info("")
}

func logSystemInfo() {
	logging.Info("------------------------------------------------------------")
	logging.Info("SYSTEM INFORMATION")
	logging.Info("------------------------------------------------------------")
	logging.Info("  Go version:      %s", runtime.Version())
	logging.Info("  OS/Arch:         %s/%s", runtime.GOOS, runtime.GOARCH)
	logging.Info("  CPUs available:  %d", runtime.NumCPU())
	logging.Info("  GOMAXPROCS:      %d", runtime.GOMAXPROCS(0))

	if runtime.GOMAXPROCS(0) < runtime.NumCPU() {
		logging.Info("  (Container CPU limit detected)")
	}

	if logging.IsDebugEnabled() {
		logging.Debug("  Goroutines:      %d", runtime.NumGoroutine())

		if wd, err := os.Getwd(); err == nil {
			logging.Debug("  Working dir:     %s", wd)
		}

		if hostname, err := os.Hostname(); err == nil {
			logging.Debug("  Hostname:        %s", hostname)
		}
	}

	logging.Info("")
}

func ensureDirectory(path, name string) error {
	logging.Debug("  Checking %s directory: %s", name, path)

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		logging.Debug("    Directory does not exist, creating...")
		if err := os.MkdirAll(path, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
		logging.Debug("    [OK] Created directory: %s", path)
		return nil
	}

	if err != nil {
		return fmt.Errorf("failed to stat directory: %w", err)
	}

	if !info.IsDir() {
		return fmt.Errorf("path exists but is not a directory")
	}

	logging.Debug("    [OK] Directory exists")
	return nil
}

func testWriteAccess(dir string) error {
	testFile := filepath.Join(dir, ".write-test")
	if err := os.WriteFile(testFile, []byte("test"), 0o644); err != nil {
		return err
	}
	if err := os.Remove(testFile); err != nil {
		logging.Warn("failed to remove write test file %s: %v", testFile, err)
		// Write access itself was confirmed
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		logging.Warn("Invalid boolean value for %s: %q, using default: %v", key, value, defaultValue)
		return defaultValue
	}
	return parsed
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		logging.Warn("Invalid integer value for %s: %q, using default: %d", key, value, defaultValue)
		return defaultValue
	}
	return parsed
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		logging.Warn("Invalid duration value for %s: %q, using default: %s", key, value, defaultValue)
		return defaultValue
	}
	return parsed
}
