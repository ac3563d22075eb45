package metrics

// InitializeMetrics pre-populates fixed label combinations so every
// series is exported from the first Prometheus scrape rather than
// appearing after its first event. Call once at startup.
func InitializeMetrics() {
	formats := []string{"jpeg", "png", "webp", "gif"}
	statuses := []string{"success", "error"}

	for _, f := range formats {
		ThumbnailGenerationDuration.WithLabelValues(f)
		ImageLoadDuration.WithLabelValues(f)
		for _, s := range statuses {
			ThumbnailGenerationsTotal.WithLabelValues(f, s)
			ImageLoadsTotal.WithLabelValues(f, s)
		}
	}

	for _, op := range []string{"create", "write", "remove", "rename", "chmod", "unknown"} {
		WatcherEventsTotal.WithLabelValues(op)
	}
}
