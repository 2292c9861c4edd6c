package app

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"appi/pkg/logging"
)

// DefaultDebounceInterval is how long the watcher waits for a burst of file
// events to settle before reporting a change.
const DefaultDebounceInterval = 500 * time.Millisecond

// Watcher reports changes of a single graph file.
//
// It watches the directory holding the file rather than the file itself, so
// editors that save by renaming a new file into place are seen as well.
// Bursts of events are debounced into one change.
type Watcher struct {
	mu sync.Mutex

	// path is the cleaned, absolute path of the watched file
	path string

	watcher *fsnotify.Watcher

	debounceInterval time.Duration
	timer            *time.Timer

	stopCh  chan struct{}
	running bool
}

// NewWatcher creates a watcher for the graph file at path. A zero
// debounceInterval selects DefaultDebounceInterval.
func NewWatcher(path string, debounceInterval time.Duration) *Watcher {
	if debounceInterval == 0 {
		debounceInterval = DefaultDebounceInterval
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return &Watcher{
		path:             filepath.Clean(path),
		debounceInterval: debounceInterval,
		stopCh:           make(chan struct{}),
	}
}

// Start begins watching. Each settled change sends one value on changes;
// when a change is already pending the new one is folded into it.
func (w *Watcher) Start(ctx context.Context, changes chan<- struct{}) error {
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
	if err := watcher.Add(filepath.Dir(w.path)); err != nil {
		watcher.Close()
		w.mu.Unlock()
		return err
	}

	w.watcher = watcher
	w.running = true
	w.stopCh = make(chan struct{})
	w.mu.Unlock()

	go w.processEvents(ctx, changes)

	logging.Info("Watcher", "Watching %s for changes", w.path)
	return nil
}

// Stop stops watching. It is safe to call more than once.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return
	}
	w.running = false
	close(w.stopCh)
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	if w.watcher != nil {
		w.watcher.Close()
	}
}

func (w *Watcher) processEvents(ctx context.Context, changes chan<- struct{}) {
	w.mu.Lock()
	events := w.watcher.Events
	errs := w.watcher.Errors
	stopCh := w.stopCh
	w.mu.Unlock()

	for {
		select {
		case <-ctx.Done():
			w.Stop()
			return

		case <-stopCh:
			return

		case event, ok := <-events:
			if !ok {
				return
			}
			w.handleEvent(event, changes)

		case err, ok := <-errs:
			if !ok {
				return
			}
			logging.Error("Watcher", err, "Filesystem watcher error")
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event, changes chan<- struct{}) {
	if filepath.Clean(event.Name) != w.path {
		return
	}
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) && !event.Has(fsnotify.Rename) {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounceInterval, func() {
		select {
		case changes <- struct{}{}:
			logging.Debug("Watcher", "Graph file %s changed", w.path)
		default:
			logging.Debug("Watcher", "Change of %s already pending", w.path)
		}
	})
}
