package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"photo-viewer/internal/handlers"
	"photo-viewer/internal/logging"
	"photo-viewer/internal/media"
	"photo-viewer/internal/metrics"
	"photo-viewer/internal/middleware"
	"photo-viewer/internal/startup"
	"photo-viewer/internal/thumbcache"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

func main() {
	startTime := time.Now()

	// A .env file is optional; real environment variables win.
	_ = godotenv.Load()

	// Load configuration
	config, err := startup.LoadConfig()
	if err != nil {
		startup.LogFatal("Configuration error: %v", err)
	}

	// Initialize the image pipeline
	if err := media.InitVips(); err != nil {
		logging.Warn("libvips init failed, falling back to pure-Go decoding: %v", err)
	}
	defer media.ShutdownVips()
	startup.LogPipelineInit(media.IsVipsAvailable())

	// Initialize the thumbnail cache
	store, err := thumbcache.NewStore(config.CacheDir, config.CacheTTL)
	if err != nil {
		startup.LogFatal("Failed to initialize thumbnail cache: %v", err)
	}
	janitor := thumbcache.NewJanitor(store)

	// One sweep at boot clears entries that expired while we were down.
	janitor.Sweep()
	startup.LogCacheInit(config.CacheDir, config.CacheTTL, janitor.Stat(), config.SweepInterval)

	// Schedule periodic sweeps
	scheduler := startSweepSchedule(janitor, config.SweepInterval)

	// Initialize metrics
	metrics.InitializeMetrics()
	collector := metrics.NewCollector(janitor, 1*time.Minute)
	collector.Start()

	scanner := media.NewScanner()
	generator := media.NewGenerator(store, config.ThumbnailSize, config.JPEGQuality)

	// Initialize the folder watcher
	var watcher *media.Watcher
	if config.WatcherEnabled {
		w, werr := media.NewWatcher()
		startup.LogWatcherInit(true, werr)
		if werr == nil {
			watcher = w
		}
	} else {
		startup.LogWatcherInit(false, nil)
	}

	// File handed over on the command line, if any
	startupFile := startup.FindStartupFile(os.Args[1:])
	startup.LogStartupFile(startupFile)

	// Initialize handlers
	h := handlers.New(scanner, generator, janitor, watcher, config, startupFile)

	// Setup router
	router := setupRouter(h)

	// Log routes dynamically
	startup.LogHTTPRoutes(router, config.LogHealthChecks)

	// Apply logging middleware
	loggingConfig := middleware.DefaultLoggingConfig()
	loggingConfig.LogHealthChecks = config.LogHealthChecks
	loggedHandler := middleware.Logger(loggingConfig)(router)

	// Apply compression middleware
	compressionConfig := middleware.DefaultCompressionConfig()
	handler := middleware.Compression(compressionConfig)(loggedHandler)

	// Create server
	srv := &http.Server{
		Addr:         ":" + config.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0,
		IdleTimeout:  60 * time.Second,
	}

	// Start the metrics listener
	metricsSrv := startMetricsServer(h, config)

	// Start graceful shutdown handler
	go handleShutdown(srv, metricsSrv, scheduler, collector, watcher)

	// Start server
	startup.LogServerStarted(startup.ServerConfig{
		Port:            config.Port,
		MetricsPort:     config.MetricsPort,
		MetricsEnabled:  config.MetricsEnabled,
		StartupDuration: time.Since(startTime),
	})
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		startup.LogFatal("Server error: %v", err)
	}
}

func setupRouter(h *handlers.Handlers) *mux.Router {
	r := mux.NewRouter()

	// Request metrics cover matched routes only, which keeps the path
	// label cardinality bounded.
	r.Use(middleware.Metrics(middleware.DefaultMetricsConfig()))

	// Health check and version routes
	r.HandleFunc("/health", h.HealthCheck).Methods("GET")
	r.HandleFunc("/healthz", h.HealthCheck).Methods("GET")
	r.HandleFunc("/livez", h.LivenessCheck).Methods("GET", "HEAD")
	r.HandleFunc("/readyz", h.ReadinessCheck).Methods("GET")
	r.HandleFunc("/version", h.GetVersion).Methods("GET")

	// API routes
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/folder", h.ListFolder).Methods("GET")
	api.HandleFunc("/folder/changes", h.FolderChanges).Methods("GET")
	api.HandleFunc("/image", h.GetImage).Methods("GET")
	api.HandleFunc("/thumbnail", h.GetThumbnail).Methods("GET")
	api.HandleFunc("/thumbnail/cached", h.GetCachedThumbnail).Methods("GET")
	api.HandleFunc("/thumbnail/meta", h.GetThumbnailMeta).Methods("GET")
	api.HandleFunc("/cache/sweep", h.SweepCache).Methods("POST")
	api.HandleFunc("/cache/stats", h.GetCacheStats).Methods("GET")
	api.HandleFunc("/file/validate", h.ValidateFile).Methods("GET")
	api.HandleFunc("/file/info", h.GetFileInfo).Methods("GET")
	api.HandleFunc("/startup-file", h.GetStartupFile).Methods("GET")

	return r
}

// startSweepSchedule arranges periodic cache sweeps. A zero or negative
// interval disables them; the boot sweep has already run either way.
func startSweepSchedule(janitor *thumbcache.Janitor, interval time.Duration) *cron.Cron {
	if interval <= 0 {
		logging.Info("Periodic cache sweeps disabled")
		return nil
	}

	c := cron.New()
	_, err := c.AddFunc("@every "+interval.String(), func() {
		removed := janitor.Sweep()
		if removed > 0 {
			logging.Info("Scheduled sweep removed %d expired thumbnails", removed)
		}
	})
	if err != nil {
		logging.Error("Failed to schedule cache sweeps: %v", err)
		return nil
	}
	c.Start()
	return c
}

// startMetricsServer exposes the Prometheus scrape endpoint on its own
// port so operational traffic stays off the API listener. Returns nil
// when metrics are disabled.
func startMetricsServer(h *handlers.Handlers, config *startup.Config) *http.Server {
	if !config.MetricsEnabled {
		return nil
	}

	m := http.NewServeMux()
	m.Handle("/metrics", h.MetricsHandler())
	m.HandleFunc("/livez", h.LivenessCheck)

	srv := &http.Server{
		Addr:         ":" + config.MetricsPort,
		Handler:      m,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Error("Metrics server error: %v", err)
		}
	}()

	return srv
}

func handleShutdown(srv, metricsSrv *http.Server, scheduler *cron.Cron, collector *metrics.Collector, watcher *media.Watcher) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan

	startup.LogShutdownInitiated(sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	startup.LogShutdownStep("Stopping metrics collector")
	collector.Stop()
	startup.LogShutdownStepComplete("Metrics collector stopped")

	if scheduler != nil {
		startup.LogShutdownStep("Stopping sweep scheduler")
		// Stop returns a context that is done once running jobs finish.
		<-scheduler.Stop().Done()
		startup.LogShutdownStepComplete("Sweep scheduler stopped")
	}

	if watcher != nil {
		startup.LogShutdownStep("Closing folder watcher")
		if err := watcher.Close(); err != nil {
			logging.Warn("Watcher close error: %v", err)
		} else {
			startup.LogShutdownStepComplete("Folder watcher closed")
		}
	}

	if metricsSrv != nil {
		startup.LogShutdownStep("Stopping metrics server")
		if err := metricsSrv.Shutdown(ctx); err != nil {
			logging.Warn("Metrics server shutdown error: %v", err)
		} else {
			startup.LogShutdownStepComplete("Metrics server stopped")
		}
	}

	startup.LogShutdownStep("Shutting down HTTP server")
	if err := srv.Shutdown(ctx); err != nil {
		logging.Warn("Server shutdown error: %v", err)
	} else {
		startup.LogShutdownStepComplete("HTTP server stopped")
	}

	startup.LogShutdownComplete()
}
