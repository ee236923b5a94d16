package drift

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/standardbeagle/semfora/internal/config"
	"github.com/standardbeagle/semfora/internal/debug"
)

// ChangeEvent is one debounced, deduplicated filesystem notification.
type ChangeEvent struct {
	Path    string
	Removed bool
}

// Watcher wraps fsnotify to deliver debounced change events (spec §5:
// "change notifications are processed in FIFO order per repo; a
// notification for file F is serialized with any prior notification for
// F"), grounded on the teacher's FileWatcher/debouncer pair in
// internal/indexing/watcher.go. Its consumer, cmd/semfora's watch command,
// re-runs the indexing pipeline per event; the events do not update the
// overlay manager's "working" layer.
type Watcher struct {
	fsw      *fsnotify.Watcher
	debounce time.Duration
	out      chan ChangeEvent

	mu      sync.Mutex
	pending map[string]ChangeEvent
	timers  map[string]*time.Timer
}

// NewWatcher starts watching root (recursively) using cfg's debounce
// interval. Events are delivered on the returned channel in per-path FIFO
// order: a second event for the same path cancels and restarts that
// path's debounce timer rather than racing it.
func NewWatcher(root string, cfg *config.Config) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fsw:      fsw,
		debounce: time.Duration(cfg.Index.WatchDebounceMs) * time.Millisecond,
		out:      make(chan ChangeEvent, 256),
		pending:  make(map[string]ChangeEvent),
		timers:   make(map[string]*time.Timer),
	}

	if err := addRecursive(fsw, root); err != nil {
		fsw.Close()
		return nil, err
	}

	return w, nil
}

func addRecursive(fsw *fsnotify.Watcher, root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return fsw.Add(path)
		}
		return nil
	})
}

// Events returns the channel of debounced change notifications.
func (w *Watcher) Events() <-chan ChangeEvent {
	return w.out
}

// Run processes raw fsnotify events until ctx is canceled, debouncing per
// path before publishing to Events().
func (w *Watcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.schedule(ev)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			debug.Errorf("drift watcher: %v", err)
		}
	}
}

func (w *Watcher) schedule(ev fsnotify.Event) {
	w.mu.Lock()
	defer w.mu.Unlock()

	change := ChangeEvent{Path: ev.Name, Removed: ev.Op&fsnotify.Remove != 0 || ev.Op&fsnotify.Rename != 0}
	w.pending[ev.Name] = change

	if t, ok := w.timers[ev.Name]; ok {
		t.Stop()
	}
	w.timers[ev.Name] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		final, ok := w.pending[ev.Name]
		delete(w.pending, ev.Name)
		delete(w.timers, ev.Name)
		w.mu.Unlock()
		if ok {
			w.out <- final
		}
	})
}

// Close stops the underlying fsnotify watcher and closes Events().
func (w *Watcher) Close() error {
	err := w.fsw.Close()
	close(w.out)
	return err
}
