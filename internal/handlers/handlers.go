package handlers

import (
	"time"

	"photo-viewer/internal/media"
	"photo-viewer/internal/startup"
	"photo-viewer/internal/thumbcache"
)

type Handlers struct {
	scanner     *media.Scanner
	generator   *media.Generator
	janitor     *thumbcache.Janitor
	watcher     *media.Watcher
	cacheDir    string
	startupFile string
	startTime   time.Time
}

// New wires the handler set to its backing components. watcher may be
// nil when filesystem watching is disabled; change polling then always
// reports no change. startupFile is the CLI-supplied image resolved at
// boot, empty when none was given.
func New(scanner *media.Scanner, generator *media.Generator, janitor *thumbcache.Janitor, watcher *media.Watcher, config *startup.Config, startupFile string) *Handlers {
	return &Handlers{
		scanner:     scanner,
		generator:   generator,
		janitor:     janitor,
		watcher:     watcher,
		cacheDir:    config.CacheDir,
		startupFile: startupFile,
		startTime:   time.Now(),
	}
}
