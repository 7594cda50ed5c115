// Package watcher polls the configuration file and triggers a reload
// callback when it changes.
package watcher

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/walles/headsetharry-sub000/internal/logger"
)

// DefaultPollInterval is the default interval for checking config changes
const DefaultPollInterval = 5 * time.Second

// ConfigWatcher watches a config file for changes using polling. Stat-based
// polling works on every filesystem the config can live on.
type ConfigWatcher struct {
	path         string
	pollInterval time.Duration
	onChange     func()
	log          *logger.Logger

	mu          sync.Mutex
	lastModTime time.Time
	lastSize    int64
	running     bool
	wg          sync.WaitGroup
}

// NewConfigWatcher creates a watcher calling onChange whenever the file at
// path appears, disappears, or is modified
func NewConfigWatcher(path string, pollInterval time.Duration, onChange func()) *ConfigWatcher {
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}
	return &ConfigWatcher{
		path:         path,
		pollInterval: pollInterval,
		onChange:     onChange,
		log:          logger.GetDefaultLogger().WithComponent("watcher"),
	}
}

// Start begins watching until ctx is done. Calling Start on a running
// watcher is a no-op.
func (w *ConfigWatcher) Start(ctx context.Context) {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return
	}
	w.running = true
	w.snapshotLocked()
	w.mu.Unlock()

	w.wg.Add(1)
	go w.watch(ctx)
}

// Wait blocks until the watch loop has exited
func (w *ConfigWatcher) Wait() {
	w.wg.Wait()
}

// snapshotLocked caches the file's current modification time and size.
// Callers hold w.mu.
func (w *ConfigWatcher) snapshotLocked() {
	info, err := os.Stat(w.path)
	if err != nil {
		// File doesn't exist yet
		w.lastModTime = time.Time{}
		w.lastSize = 0
		return
	}
	w.lastModTime = info.ModTime()
	w.lastSize = info.Size()
}

// changed reports whether the file differs from the cached snapshot
func (w *ConfigWatcher) changed() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	info, err := os.Stat(w.path)
	if err != nil {
		// Deletion counts as a change, continued absence doesn't
		return !w.lastModTime.IsZero()
	}

	if w.lastModTime.IsZero() {
		// File appeared
		return true
	}

	return !info.ModTime().Equal(w.lastModTime) || info.Size() != w.lastSize
}

func (w *ConfigWatcher) watch(ctx context.Context) {
	defer w.wg.Done()

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.mu.Lock()
			w.running = false
			w.mu.Unlock()
			return
		case <-ticker.C:
			if !w.changed() {
				continue
			}

			w.mu.Lock()
			w.snapshotLocked()
			w.mu.Unlock()

			w.log.Info("Config file %s changed, reloading", w.path)
			if w.onChange != nil {
				w.onChange()
			}
		}
	}
}
