package thumbcache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"photo-viewer/internal/logging"
	"photo-viewer/internal/metrics"
)

// DefaultTTL is how long an entry stays valid after it is written.
const DefaultTTL = 24 * time.Hour

// Entry is one persisted thumbnail record. Created is stamped by the
// store at write time, in seconds since the Unix epoch.
type Entry struct {
	Thumbnail string `json:"thumbnail"`
	Created   int64  `json:"created"`
}

// Store persists thumbnail entries as one JSON file per key under a
// single cache directory. Entries are independently addressable and
// independently deletable; there is no shared index, so a torn write can
// only ever damage its own entry.
type Store struct {
	dir string
	ttl time.Duration
}

// NewStore creates the cache directory if needed and returns a store
// over it. The directory and TTL are fixed for the store's lifetime.
func NewStore(dir string, ttl time.Duration) (*Store, error) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory %s: %w", dir, err)
	}
	logging.Debug("thumbnail cache at %s (ttl %v)", dir, ttl)
	return &Store{dir: dir, ttl: ttl}, nil
}

// Dir returns the cache directory.
func (s *Store) Dir() string {
	return s.dir
}

// TTL returns the expiry window.
func (s *Store) TTL() time.Duration {
	return s.ttl
}

func (s *Store) entryPath(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// expired reports whether the entry's age is strictly beyond the window.
// An entry exactly at the window boundary is still valid.
func (s *Store) expired(created int64, now time.Time) bool {
	return now.Unix()-created > int64(s.ttl.Seconds())
}

// Get returns the entry for key, or (nil, nil) when there is nothing
// usable. Corrupt and expired entries are deleted on the way out and
// reported as misses; the read path heals the store rather than
// surfacing those states. A non-nil error means the entry file exists
// but could not be read.
func (s *Store) Get(key string) (*Entry, error) {
	path := s.entryPath(key)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read cache entry %s: %w", key, err)
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		logging.Warn("removing corrupt cache entry %s: %v", key, err)
		metrics.CacheCorruptHealed.Inc()
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			logging.Warn("failed to remove corrupt cache entry %s: %v", key, err)
		}
		return nil, nil
	}

	if s.expired(entry.Created, time.Now()) {
		logging.Debug("cache entry %s expired, removing", key)
		metrics.CacheExpiredOnRead.Inc()
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			logging.Warn("failed to remove expired cache entry %s: %v", key, err)
		}
		return nil, nil
	}

	return &entry, nil
}

// Put writes the thumbnail under key, overwriting any existing entry
// whole. The creation timestamp is always stamped here, never taken from
// the caller. Returns the entry as stored.
func (s *Store) Put(key, thumbnail string) (*Entry, error) {
	entry := Entry{
		Thumbnail: thumbnail,
		Created:   time.Now().Unix(),
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize cache entry %s: %w", key, err)
	}

	// The directory may have been removed out from under a long-running
	// process; recreate it rather than failing the write.
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory %s: %w", s.dir, err)
	}

	if err := os.WriteFile(s.entryPath(key), data, 0644); err != nil {
		return nil, fmt.Errorf("failed to write cache entry %s: %w", key, err)
	}

	return &entry, nil
}

// Delete removes the entry for key. Deleting an absent entry is not an
// error.
func (s *Store) Delete(key string) error {
	if err := os.Remove(s.entryPath(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete cache entry %s: %w", key, err)
	}
	return nil
}
