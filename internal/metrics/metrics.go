package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "photo_viewer_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "photo_viewer_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "photo_viewer_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)

	HTTPResponseSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "photo_viewer_http_response_size_bytes",
			Help:    "HTTP response size in bytes",
			Buckets: prometheus.ExponentialBuckets(256, 4, 8),
		},
		[]string{"method", "path"},
	)
)

// Thumbnail metrics
var (
	ThumbnailGenerationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "photo_viewer_thumbnail_generations_total",
			Help: "Total number of thumbnail generations",
		},
		[]string{"format", "status"},
	)

	ThumbnailGenerationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "photo_viewer_thumbnail_generation_duration_seconds",
			Help:    "Thumbnail generation duration in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"format"},
	)

	ThumbnailCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "photo_viewer_thumbnail_cache_hits_total",
			Help: "Total number of thumbnail cache hits",
		},
	)

	ThumbnailCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "photo_viewer_thumbnail_cache_misses_total",
			Help: "Total number of thumbnail cache misses",
		},
	)

	ThumbnailVipsDecodes = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "photo_viewer_thumbnail_vips_decodes_total",
			Help: "Thumbnail decodes served by the libvips fast path",
		},
	)

	ThumbnailFallbackDecodes = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "photo_viewer_thumbnail_fallback_decodes_total",
			Help: "Thumbnail decodes served by the pure-Go pipeline",
		},
	)
)

// Full-resolution image load metrics
var (
	ImageLoadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "photo_viewer_image_loads_total",
			Help: "Total number of full-resolution image loads",
		},
		[]string{"format", "status"},
	)

	ImageLoadDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "photo_viewer_image_load_duration_seconds",
			Help:    "Full-resolution image load duration in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"format"},
	)
)

// Folder scanner metrics
var (
	FolderScansTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "photo_viewer_folder_scans_total",
			Help: "Total number of folder scans",
		},
	)

	ScannerFilesScanned = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "photo_viewer_scanner_files_scanned_total",
			Help: "Total number of files considered during folder scans",
		},
	)

	ScannerFilesSkipped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "photo_viewer_scanner_files_skipped_total",
			Help: "Files with image extensions skipped during scans for failing validation",
		},
	)

	FolderScanDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "photo_viewer_folder_scan_duration_seconds",
			Help:    "Folder scan duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
	)
)

// Folder watcher metrics
var (
	WatcherEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "photo_viewer_watcher_events_total",
			Help: "Filesystem events observed in the watched folder",
		},
		[]string{"op"},
	)

	WatcherErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "photo_viewer_watcher_errors_total",
			Help: "Total number of folder watcher errors",
		},
	)
)

// Thumbnail cache metrics
var (
	CacheEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "photo_viewer_cache_entries",
			Help: "Number of persisted cache entry files",
		},
	)

	CacheValidEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "photo_viewer_cache_valid_entries",
			Help: "Number of persisted cache entries inside the expiry window",
		},
	)

	CacheSweepsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "photo_viewer_cache_sweeps_total",
			Help: "Total number of cache sweeps",
		},
	)

	CacheSweepRemoved = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "photo_viewer_cache_sweep_removed_total",
			Help: "Total number of cache entries removed by sweeps",
		},
	)

	CacheSweepDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "photo_viewer_cache_sweep_duration_seconds",
			Help:    "Cache sweep duration in seconds",
			Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 5, 15},
		},
	)

	CacheCorruptHealed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "photo_viewer_cache_corrupt_healed_total",
			Help: "Corrupt cache entries deleted during lookups",
		},
	)

	CacheExpiredOnRead = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "photo_viewer_cache_expired_on_read_total",
			Help: "Expired cache entries deleted during lookups",
		},
	)
)
