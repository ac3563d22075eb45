// Package metrics provides Prometheus instrumentation for the photo
// viewer backend. All metrics are prefixed with "photo_viewer_".
//
// Metrics are grouped by concern: HTTP request handling, thumbnail
// generation, full-resolution image loads, folder scanning, the folder
// watcher, and the thumbnail cache. Counters and histograms are updated
// inline by the owning packages; the cache population gauges are
// refreshed by the Collector, which polls the cache janitor on an
// interval.
//
// Call InitializeMetrics once at startup to pre-register fixed label
// combinations, so dashboards see every series from the first scrape.
package metrics
