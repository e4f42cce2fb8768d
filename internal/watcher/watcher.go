// Package watcher triggers manifest rebuilds when the PDF corpus changes.
package watcher

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const defaultDebounce = 2 * time.Second

// Watcher watches the corpus directory and invokes a rebuild callback after
// PDF files change. The manifest is rebuilt wholesale, so all changes within
// the debounce window collapse into a single rebuild.
type Watcher struct {
	root      string
	debounce  time.Duration
	onRebuild func()

	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	timer    *time.Timer
	started  bool
	done     chan struct{}
	stopOnce sync.Once
	logger   *zap.Logger // optional; when set, logs debug events
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithLogger sets a logger for debug output (corpus events, rebuild triggers).
func WithLogger(l *zap.Logger) WatcherOption {
	return func(w *Watcher) { w.logger = l }
}

// NewWatcher creates a watcher over the corpus root. onRebuild is called
// (debounced) after any PDF in the root is created, written, removed, or
// renamed. debounce <= 0 uses the default.
func NewWatcher(root string, debounce time.Duration, onRebuild func(), opts ...WatcherOption) *Watcher {
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	w := &Watcher{
		root:      root,
		debounce:  debounce,
		onRebuild: onRebuild,
		done:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Start starts watching. It runs until ctx is cancelled or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.started {
		w.mu.Unlock()
		return nil
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		w.mu.Unlock()
		return err
	}
	if err := fsw.Add(w.root); err != nil {
		_ = fsw.Close()
		w.mu.Unlock()
		return err
	}
	w.watcher = fsw
	w.started = true
	w.mu.Unlock()

	if w.logger != nil {
		w.logger.Debug("corpus watcher started", zap.String("root", w.root))
	}
	go w.run(ctx)
	return nil
}

func (w *Watcher) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			w.Stop()
			return
		case <-w.done:
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(ev)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			if err != nil && w.logger != nil {
				w.logger.Debug("corpus watcher error", zap.Error(err))
			}
		}
	}
}

func (w *Watcher) handleEvent(ev fsnotify.Event) {
	if !isPDF(ev.Name) {
		return
	}
	if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return
	}
	if w.logger != nil {
		w.logger.Debug("corpus changed", zap.String("op", ev.Op.String()), zap.String("path", ev.Name))
	}
	w.scheduleRebuild()
}

func isPDF(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".pdf")
}

// scheduleRebuild (re)arms the debounce timer; the rebuild fires once the
// corpus has been quiet for the debounce interval.
func (w *Watcher) scheduleRebuild() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		if w.logger != nil {
			w.logger.Debug("corpus quiet, rebuilding manifest")
		}
		if w.onRebuild != nil {
			w.onRebuild()
		}
	})
}

// Stop stops the watcher and releases resources. A pending debounced
// rebuild is cancelled.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.started || w.watcher == nil {
		w.mu.Unlock()
		return
	}
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	_ = w.watcher.Close()
	w.watcher = nil
	w.started = false
	w.mu.Unlock()
	w.stopOnce.Do(func() { close(w.done) })
}
