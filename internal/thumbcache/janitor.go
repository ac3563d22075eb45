package thumbcache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"photo-viewer/internal/logging"
	"photo-viewer/internal/metrics"
)

// Janitor removes dead weight from a store: entries past the expiry
// window and entries that no longer parse. Sweeps are serialized against
// each other but deliberately not against concurrent reads or writes;
// losing a just-written entry to a racing sweep only costs one
// regeneration.
type Janitor struct {
	store *Store
	mu    sync.Mutex
}

// Stats summarizes the persisted cache population.
type Stats struct {
	TotalEntries int `json:"total_entries"`
	ValidEntries int `json:"valid_entries"`
}

// NewJanitor returns a janitor for the given store.
func NewJanitor(store *Store) *Janitor {
	return &Janitor{store: store}
}

// Sweep enumerates every entry, removing expired and unparsable ones,
// and returns how many it removed. A missing or unreadable cache
// directory means there is nothing to clean: zero removed, no error.
// Individual failures are logged and skipped, never fatal. Running a
// second sweep with no intervening writes removes nothing.
func (j *Janitor) Sweep() int {
	j.mu.Lock()
	defer j.mu.Unlock()

	start := time.Now()

	dirEntries, err := os.ReadDir(j.store.dir)
	if err != nil {
		if !os.IsNotExist(err) {
			logging.Warn("cache sweep: cannot read %s: %v", j.store.dir, err)
		}
		return 0
	}

	now := time.Now()
	removed := 0
	total := 0

	for _, de := range dirEntries {
		if de.IsDir() || !strings.HasSuffix(de.Name(), ".json") {
			continue
		}
		total++
		path := filepath.Join(j.store.dir, de.Name())

		data, err := os.ReadFile(path)
		if err != nil {
			logging.Warn("cache sweep: unreadable entry %s: %v", de.Name(), err)
			if removeEntry(path) {
				removed++
			}
			continue
		}

		var entry Entry
		if err := json.Unmarshal(data, &entry); err != nil {
			logging.Debug("cache sweep: removing unparsable entry %s: %v", de.Name(), err)
			if removeEntry(path) {
				removed++
			}
			continue
		}

		if j.store.expired(entry.Created, now) {
			if removeEntry(path) {
				removed++
			}
		}
	}

	duration := time.Since(start)
	metrics.CacheSweepsTotal.Inc()
	metrics.CacheSweepRemoved.Add(float64(removed))
	metrics.CacheSweepDuration.Observe(duration.Seconds())
	metrics.CacheEntries.Set(float64(total - removed))

	logging.Info("cache sweep removed %d of %d entries in %v", removed, total, duration)
	return removed
}

// Purge removes every entry unconditionally and returns how many were
// removed. Used by maintenance tooling, never by the serving path.
func (j *Janitor) Purge() int {
	j.mu.Lock()
	defer j.mu.Unlock()

	dirEntries, err := os.ReadDir(j.store.dir)
	if err != nil {
		if !os.IsNotExist(err) {
			logging.Warn("cache purge: cannot read %s: %v", j.store.dir, err)
		}
		return 0
	}

	removed := 0
	for _, de := range dirEntries {
		if de.IsDir() || !strings.HasSuffix(de.Name(), ".json") {
			continue
		}
		if removeEntry(filepath.Join(j.store.dir, de.Name())) {
			removed++
		}
	}

	metrics.CacheEntries.Set(0)
	logging.Info("cache purge removed %d entries", removed)
	return removed
}

// Stat counts entries without modifying anything: total on disk, and how
// many of those are parsable and inside the expiry window. A missing
// directory reports an empty cache.
func (j *Janitor) Stat() Stats {
	var stats Stats

	dirEntries, err := os.ReadDir(j.store.dir)
	if err != nil {
		return stats
	}

	now := time.Now()
	for _, de := range dirEntries {
		if de.IsDir() || !strings.HasSuffix(de.Name(), ".json") {
			continue
		}
		stats.TotalEntries++

		data, err := os.ReadFile(filepath.Join(j.store.dir, de.Name()))
		if err != nil {
			continue
		}
		var entry Entry
		if err := json.Unmarshal(data, &entry); err != nil {
			continue
		}
		if !j.store.expired(entry.Created, now) {
			stats.ValidEntries++
		}
	}

	return stats
}

// CacheStats reports entry counts in the shape the metrics collector
// polls for.
func (j *Janitor) CacheStats() (total, valid int) {
	stats := j.Stat()
	return stats.TotalEntries, stats.ValidEntries
}

func removeEntry(path string) bool {
	if err := os.Remove(path); err != nil {
		if !os.IsNotExist(err) {
			logging.Warn("cache sweep: failed to remove %s: %v", path, err)
		}
		return false
	}
	return true
}
