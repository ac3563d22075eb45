package media

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"photo-viewer/internal/imagefmt"
	"photo-viewer/internal/logging"
	"photo-viewer/internal/metrics"

	"github.com/fsnotify/fsnotify"
)

// changeOps are the filesystem operations that count as a folder
// change. Chmod is deliberately excluded; it never alters what the
// viewer should show.
const changeOps = fsnotify.Create | fsnotify.Write | fsnotify.Remove | fsnotify.Rename

// Watcher follows one folder at a time, the one most recently listed,
// and records when a supported image inside it last changed. Polling
// callers compare that timestamp against their own. The watcher is
// advisory only; nothing here touches the thumbnail cache.
type Watcher struct {
	fsw *fsnotify.Watcher

	mu         sync.Mutex
	folder     string
	lastChange int64 // Unix seconds; 0 = no change seen yet
}

// NewWatcher creates the watcher and starts its event loop. Close
// releases it.
func NewWatcher() (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	w := &Watcher{fsw: fsw}
	go w.loop()
	return w, nil
}

// Track switches the watcher to folder. The previous folder is
// forgotten and its timestamp does not carry over.
func (w *Watcher) Track(folder string) error {
	folder = filepath.Clean(folder)

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.folder == folder {
		return nil
	}
	if w.folder != "" {
		if err := w.fsw.Remove(w.folder); err != nil {
			logging.Warn("failed to stop watching %s: %v", w.folder, err)
		}
	}
	if err := w.fsw.Add(folder); err != nil {
		metrics.WatcherErrors.Inc()
		w.folder = ""
		return fmt.Errorf("failed to watch %s: %w", folder, err)
	}

	w.folder = folder
	w.lastChange = 0
	logging.Debug("watching folder %s", folder)
	return nil
}

// Changes reports whether folder has changed since the given Unix time,
// along with the last change timestamp. Only the currently tracked
// folder yields data; any other folder reports no change.
func (w *Watcher) Changes(folder string, since int64) (bool, int64) {
	folder = filepath.Clean(folder)

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.folder != folder || w.lastChange == 0 {
		return false, 0
	}
	return w.lastChange > since, w.lastChange
}

// Close stops the event loop and releases the underlying watcher.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

func (w *Watcher) loop() {
	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			logging.Error("watcher error: %v", err)
			metrics.WatcherErrors.Inc()
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	// Hidden files churn constantly on network shares; ignore them.
	if strings.HasPrefix(filepath.Base(event.Name), ".") {
		return
	}
	if !imagefmt.IsSupported(event.Name) {
		return
	}

	metrics.WatcherEventsTotal.WithLabelValues(eventType(event.Op)).Inc()

	if event.Op&changeOps == 0 {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.folder != "" && filepath.Dir(event.Name) == w.folder {
		w.lastChange = time.Now().Unix()
		logging.Debug("folder %s changed: %s %s", w.folder, event.Op, filepath.Base(event.Name))
	}
}

func eventType(op fsnotify.Op) string {
	switch {
	case op&fsnotify.Create != 0:
		return "create"
	case op&fsnotify.Write != 0:
		return "write"
	case op&fsnotify.Remove != 0:
		return "remove"
	case op&fsnotify.Rename != 0:
		return "rename"
	case op&fsnotify.Chmod != 0:
		return "chmod"
	default:
		return "unknown"
	}
}
