package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nao1215/doclinks/internal/config"
	"github.com/nao1215/doclinks/internal/console"
	"github.com/nao1215/doclinks/internal/linkcheck"
	"github.com/nao1215/doclinks/internal/watch"
)

func TestNewWatchCmd(t *testing.T) {
	t.Parallel()

	cmd := NewWatchCmd()

	flag := cmd.Flags().Lookup("debounce")
	if flag == nil {
		t.Fatal("expected debounce flag")
	}
	if flag.DefValue != watch.DefaultDebounce.String() {
		t.Errorf("expected default %s, got %s", watch.DefaultDebounce, flag.DefValue)
	}
	for _, name := range []string{"output", "exclude", "concurrency", "html-links"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("expected %s flag", name)
		}
	}
}

func TestWatchSkipFunc(t *testing.T) {
	t.Parallel()

	root := filepath.Join(t.TempDir(), "docs")
	cfg := config.NewConfig()
	cfg.Root = root

	skip, err := watchSkipFunc(cfg, root, filepath.Join(root, "tools", "broken-links.md"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		rel  string
		want bool
	}{
		{"tools/broken-links.md", true},
		{"node_modules/pkg", true},
		{".vitepress/cache/deps.js", true},
		{"guide/intro.md", false},
		{"tools/other.md", false},
	}
	for _, tt := range tests {
		if got := skip(tt.rel, false); got != tt.want {
			t.Errorf("skip(%q) = %v, want %v", tt.rel, got, tt.want)
		}
	}

	t.Run("invalid exclude pattern", func(t *testing.T) {
		t.Parallel()

		bad := config.NewConfig()
		bad.Excludes = []string{"[unclosed"}
		if _, err := watchSkipFunc(bad, root, filepath.Join(root, "r.md")); err == nil {
			t.Error("expected error for invalid pattern")
		}
	})
}

func TestRunWatchCycle(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	docs := filepath.Join(dir, "docs")
	writeTree(t, docs, brokenTree)
	reportPath := filepath.Join(dir, "report.md")

	var out bytes.Buffer
	checker := linkcheck.New(docs)
	if err := runWatchCycle(context.Background(), console.New(&out), checker, reportPath); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(out.String(), "FOUND 1 BROKEN LINKS") {
		t.Errorf("expected broken link count, got %q", out.String())
	}
	if !strings.Contains(readFile(t, reportPath), "../c.md") {
		t.Error("expected report to list the broken link")
	}
}
