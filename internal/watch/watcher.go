package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period after the last event before a re-run.
const DefaultDebounce = 300 * time.Millisecond

// SkipFunc reports whether a path relative to the root (slash separated) is ignored.
type SkipFunc func(rel string, isDir bool) bool

// Watcher watches a directory tree recursively.
type Watcher struct {
	root      string
	extension string
	debounce  time.Duration
	skip      SkipFunc
	logger    *slog.Logger
	ready     chan struct{}
	readyOnce sync.Once
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period. Non-positive values are ignored.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithExtension limits write events to documents with ext.
// Creations, removals and renames of any file still trigger a run,
// since they can make a link target appear or disappear.
func WithExtension(ext string) Option {
	return func(w *Watcher) {
		w.extension = ext
	}
}

// WithSkip sets the predicate for ignored paths.
func WithSkip(skip SkipFunc) Option {
	return func(w *Watcher) {
		if skip != nil {
			w.skip = skip
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Watcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// New creates a Watcher for root.
func New(root string, opts ...Option) *Watcher {
	w := &Watcher{
		root:     root,
		debounce: DefaultDebounce,
		skip:     func(string, bool) bool { return false },
		logger:   slog.Default(),
		ready:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Ready is closed once every directory is being watched by the first Run.
func (w *Watcher) Ready() <-chan struct{} {
	return w.ready
}

// Run watches the tree until ctx is cancelled and calls onChange after each burst of events.
// An error returned by onChange is logged and watching continues.
// Run returns nil when ctx is cancelled. A Watcher may be run again after Run returns.
func (w *Watcher) Run(ctx context.Context, onChange func(context.Context) error) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer fsw.Close()

	if err := w.addTree(fsw, w.root); err != nil {
		return err
	}
	w.readyOnce.Do(func() { close(w.ready) })

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debug("file changed", "path", event.Name, "op", event.Op.String())

			if event.Has(fsnotify.Create) {
				if info, statErr := os.Stat(event.Name); statErr == nil && info.IsDir() {
					if err := w.addTree(fsw, event.Name); err != nil {
						w.logger.Warn("failed to watch new directory", "path", event.Name, "error", err)
					}
				}
			}

			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("file watcher error", "error", err)

		case <-fire:
			fire = nil
			if err := onChange(ctx); err != nil {
				if errors.Is(err, context.Canceled) && ctx.Err() != nil {
					return nil
				}
				w.logger.Error("re-run failed", "error", err)
			}
		}
	}
}

// addTree adds dir and every non-skipped directory below it.
func (w *Watcher) addTree(fsw *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("failed to walk %s: %w", path, err)
		}
		if !d.IsDir() {
			return nil
		}
		if path != w.root && w.skip(w.rel(path), true) {
			return filepath.SkipDir
		}
		if err := fsw.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		return nil
	})
}

// relevant reports whether event should trigger a re-run.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	rel := w.rel(event.Name)
	if rel == "" || rel == "." {
		return false
	}
	if w.skip(rel, false) {
		return false
	}

	switch {
	case event.Has(fsnotify.Create), event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		return true
	case event.Has(fsnotify.Write):
		return w.extension == "" || filepath.Ext(event.Name) == w.extension
	default:
		return false
	}
}

// rel returns path relative to the root in slash form, or "" when it is outside.
func (w *Watcher) rel(path string) string {
	rel, err := filepath.Rel(w.root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return ""
	}
	return filepath.ToSlash(rel)
}
