// Package watch re-runs a conversion whenever its source workbook changes.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce is how long the watcher waits for writes to settle.
const DefaultDebounce = 500 * time.Millisecond

// Handler is called with the workbook path once a change has settled.
type Handler func(path string) error

// Event records one handled change.
type Event struct {
	Time      time.Time `json:"time"`
	Path      string    `json:"path"`
	Operation string    `json:"operation"`
	Status    string    `json:"status"` // "processed" or "error"
	Error     string    `json:"error,omitempty"`
}

// Watcher watches a single file. Spreadsheet editors usually save by writing a
// temp file and renaming it over the original, so the parent directory is
// watched and events are filtered by name.
type Watcher struct {
	Path     string
	Debounce time.Duration
	Handler  Handler
	Logger   *zap.Logger

	mu      sync.Mutex
	events  []Event
	timer   *time.Timer
	stopped bool
	running sync.Mutex
	fsw     *fsnotify.Watcher
}

// New creates a watcher for path. The file does not have to exist yet.
func New(path string, handler Handler, logger *zap.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("could not resolve %s: %w", path, err)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("could not create file watcher: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Watcher{
		Path:     abs,
		Debounce: DefaultDebounce,
		Handler:  handler,
		Logger:   logger,
		fsw:      fsw,
	}, nil
}

// Start blocks until ctx is cancelled, calling Handler after each settled change.
// It returns only after a conversion that is already running has finished.
func (w *Watcher) Start(ctx context.Context) error {
	dir := filepath.Dir(w.Path)
	if err := w.fsw.Add(dir); err != nil {
		w.fsw.Close()
		return fmt.Errorf("could not watch %s: %w", dir, err)
	}
	w.Logger.Info("watching workbook", zap.String("path", w.Path))

	for {
		select {
		case <-ctx.Done():
			w.mu.Lock()
			w.stopped = true
			if w.timer != nil {
				w.timer.Stop()
			}
			w.mu.Unlock()

			w.running.Lock()
			w.running.Unlock()
			return w.fsw.Close()
		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.Logger.Warn("watch error", zap.Error(err))
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.Path {
		return
	}
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) && !event.Has(fsnotify.Rename) {
		return
	}

	op := event.Op.String()
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.Debounce, func() { w.process(op) })
	w.mu.Unlock()
}

// process runs the handler; running keeps two conversions from overlapping.
func (w *Watcher) process(op string) {
	w.running.Lock()
	defer w.running.Unlock()

	w.mu.Lock()
	stopped := w.stopped
	w.mu.Unlock()
	if stopped {
		return
	}

	evt := Event{Time: time.Now(), Path: w.Path, Operation: op, Status: "processed"}
	if w.Handler != nil {
		if err := w.Handler(w.Path); err != nil {
			evt.Status = "error"
			evt.Error = err.Error()
			w.Logger.Error("re-conversion failed", zap.String("path", w.Path), zap.Error(err))
		} else {
			w.Logger.Info("re-converted", zap.String("path", w.Path), zap.String("operation", op))
		}
	}

	w.mu.Lock()
	w.events = append(w.events, evt)
	w.mu.Unlock()
}

// Events returns a copy of every handled change so far.
func (w *Watcher) Events() []Event {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]Event, len(w.events))
	copy(out, w.events)
	return out
}
