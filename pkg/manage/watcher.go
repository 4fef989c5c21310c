package manage

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"confkit/pkg/logging"
)

// Watcher reloads managed configurations when their files change on
// disk. It watches one store directory; a write or create of
// <name>.xml triggers Load on the bean managing that configuration
// name, after a debounce window so editors that write in bursts cause
// a single reload.
type Watcher struct {
	mu sync.Mutex

	// dirPath is the store directory being watched
	dirPath string

	// registry resolves changed file names to beans
	registry *Registry

	// debounceInterval is how long to wait for additional changes
	debounceInterval time.Duration

	watcher *fsnotify.Watcher
	pending map[string]*time.Timer
	stopCh  chan struct{}
	running bool
}

// NewWatcher creates a watcher for the given store directory.
func NewWatcher(registry *Registry, dirPath string, debounceInterval time.Duration) *Watcher {
	if debounceInterval == 0 {
		debounceInterval = 500 * time.Millisecond
	}

	return &Watcher{
		dirPath:          dirPath,
		registry:         registry,
		debounceInterval: debounceInterval,
		pending:          make(map[string]*time.Timer),
		stopCh:           make(chan struct{}),
	}
}

// Start begins watching. Calling Start on a running watcher is a
// no-op.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		w.mu.Unlock()
		return err
	}

	if err := watcher.Add(w.dirPath); err != nil {
		watcher.Close()
		w.mu.Unlock()
		return err
	}

	w.watcher = watcher
	w.running = true
	w.stopCh = make(chan struct{})
	w.mu.Unlock()

	go w.processEvents(ctx)

	logging.Info("Watcher", "Started watching %s for configuration changes", w.dirPath)
	return nil
}

// processEvents handles filesystem events until the watcher stops.
func (w *Watcher) processEvents(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			w.cleanupPending()
			return

		case <-w.stopCh:
			w.cleanupPending()
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				w.cleanupPending()
				return
			}
			w.handleFsEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				w.cleanupPending()
				return
			}
			logging.Error("Watcher", err, "Filesystem watcher error")
		}
	}
}

// handleFsEvent schedules a reload for a changed configuration file.
func (w *Watcher) handleFsEvent(event fsnotify.Event) {
	if !strings.EqualFold(filepath.Ext(event.Name), ".xml") {
		return
	}
	if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return
	}

	name := strings.TrimSuffix(filepath.Base(event.Name), filepath.Ext(event.Name))
	w.debounceReload(name)
}

// debounceReload resets the per-name timer so rapid successive writes
// produce one reload.
func (w *Watcher) debounceReload(name string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if timer, ok := w.pending[name]; ok {
		timer.Stop()
	}

	w.pending[name] = time.AfterFunc(w.debounceInterval, func() {
		w.mu.Lock()
		delete(w.pending, name)
		w.mu.Unlock()

		w.reload(name)
	})
}

// reload finds the bean managing name and loads it.
func (w *Watcher) reload(name string) {
	bean, ok := w.registry.GetByConfigName(name)
	if !ok {
		logging.Debug("Watcher", "No managed configuration for changed file %s, ignoring", name)
		return
	}

	result := bean.Load()
	logging.Info("Watcher", "Reloaded configuration %s for service %s: %s", name, bean.ServiceName(), result)
}

// cleanupPending cancels all pending debounce timers.
func (w *Watcher) cleanupPending() {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, timer := range w.pending {
		timer.Stop()
	}
	w.pending = make(map[string]*time.Timer)
}

// Stop gracefully stops the watcher.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return nil
	}

	w.running = false
	close(w.stopCh)

	// Cancel scheduled reloads before the event loop notices the shutdown
	// so nothing fires after Stop returns.
	for _, timer := range w.pending {
		timer.Stop()
	}
	w.pending = make(map[string]*time.Timer)

	if w.watcher != nil {
		if err := w.watcher.Close(); err != nil {
			logging.Error("Watcher", err, "Error closing filesystem watcher")
		}
		w.watcher = nil
	}

	logging.Info("Watcher", "Stopped watching %s", w.dirPath)
	return nil
}
