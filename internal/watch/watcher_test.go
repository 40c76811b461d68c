package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()

		w := New("/docs")
		if w.debounce != DefaultDebounce {
			t.Errorf("debounce = %v, want %v", w.debounce, DefaultDebounce)
		}
		if w.skip("anything", false) {
			t.Error("default skip should not skip")
		}
		if w.logger == nil {
			t.Error("logger should not be nil")
		}
	})

	t.Run("non-positive debounce is ignored", func(t *testing.T) {
		t.Parallel()

		w := New("/docs", WithDebounce(0), WithDebounce(-time.Second))
		if w.debounce != DefaultDebounce {
			t.Errorf("debounce = %v, want %v", w.debounce, DefaultDebounce)
		}
	})

	t.Run("nil options are ignored", func(t *testing.T) {
		t.Parallel()

		w := New("/docs", WithSkip(nil), WithLogger(nil))
		if w.skip == nil || w.logger == nil {
			t.Error("nil option replaced the default")
		}
	})
}

func TestWatcher_relevant(t *testing.T) {
	t.Parallel()

	root := filepath.Join(string(filepath.Separator), "site", "docs")
	w := New(root,
		WithExtension(".md"),
		WithSkip(func(rel string, _ bool) bool {
			return strings.HasPrefix(rel, "node_modules") || rel == "tools/broken-links.md"
		}),
	)

	tests := []struct {
		name string
		path string
		op   fsnotify.Op
		want bool
	}{
		{"write document", "guide/intro.md", fsnotify.Write, true},
		{"write asset", "public/logo.png", fsnotify.Write, false},
		{"create asset", "public/logo.png", fsnotify.Create, true},
		{"remove document", "guide/old.md", fsnotify.Remove, true},
		{"rename document", "guide/old.md", fsnotify.Rename, true},
		{"chmod only", "guide/intro.md", fsnotify.Chmod, false},
		{"skipped directory", "node_modules/pkg/readme.md", fsnotify.Write, false},
		{"report file", "tools/broken-links.md", fsnotify.Write, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			event := fsnotify.Event{Name: filepath.Join(root, filepath.FromSlash(tt.path)), Op: tt.op}
			if got := w.relevant(event); got != tt.want {
				t.Errorf("relevant(%s %s) = %v, want %v", tt.op, tt.path, got, tt.want)
			}
		})
	}

	t.Run("outside root", func(t *testing.T) {
		t.Parallel()

		event := fsnotify.Event{Name: filepath.Join(string(filepath.Separator), "elsewhere", "a.md"), Op: fsnotify.Write}
		if w.relevant(event) {
			t.Error("event outside root should be ignored")
		}
	})
}

func TestWatcher_Run(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "guide"), 0o750); err != nil {
		t.Fatal(err)
	}

	w := New(root, WithDebounce(50*time.Millisecond), WithExtension(".md"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var runs atomic.Int32
	changed := make(chan struct{}, 10)
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(context.Context) error {
			runs.Add(1)
			changed <- struct{}{}
			return errors.New("ignored")
		})
	}()

	select {
	case <-w.Ready():
	case err := <-done:
		t.Fatalf("Run() returned early: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not become ready")
	}

	for _, name := range []string{"a.md", "b.md", "c.md"} {
		if err := os.WriteFile(filepath.Join(root, "guide", name), []byte("# x\n"), 0o600); err != nil {
			t.Fatal(err)
		}
	}

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("onChange was not called")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() error = %v, want nil after cancel", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run() did not return after cancel")
	}

	if runs.Load() < 1 {
		t.Error("expected at least one run")
	}
}

func TestWatcher_RunMissingRoot(t *testing.T) {
	t.Parallel()

	w := New(filepath.Join(t.TempDir(), "missing"))
	err := w.Run(context.Background(), func(context.Context) error { return nil })
	if err == nil {
		t.Fatal("expected error for missing root")
	}
}

func TestWatcher_RunTwice(t *testing.T) {
	t.Parallel()

	w := New(t.TempDir())
	for i := range 2 {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if err := w.Run(ctx, func(context.Context) error { return nil }); err != nil {
			t.Fatalf("run %d: unexpected error: %v", i+1, err)
		}
	}

	select {
	case <-w.Ready():
	default:
		t.Error("expected Ready to be closed")
	}
}
