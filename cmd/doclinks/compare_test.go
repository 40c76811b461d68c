package main

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nao1215/doclinks/internal/history"
	"github.com/nao1215/doclinks/internal/model"
)

// TestNewCompareCmd tests the compare command creation.
func TestNewCompareCmd(t *testing.T) {
	t.Parallel()

	cmd := NewCompareCmd()

	tests := []struct {
		name      string
		shorthand string
	}{
		{"list", "l"},
		{"list-roots", "L"},
		{"with-run", "i"},
		{"json", "j"},
		{"markdown", "m"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			flag := cmd.Flags().Lookup(tt.name)
			if flag == nil {
				t.Fatalf("expected %s flag", tt.name)
			}
			if flag.Shorthand != tt.shorthand {
				t.Errorf("expected shorthand %q, got %q", tt.shorthand, flag.Shorthand)
			}
		})
	}
}

// TestRunCompareCmd stores two runs, fixing the broken link in between,
// and compares them.
func TestRunCompareCmd(t *testing.T) {
	t.Parallel()

	docs, cfgPath := setupDocs(t, brokenTree)

	if _, _, err := executeRoot(t, "", "-c", cfgPath, "--history", "--force", docs); err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	writeTree(t, docs, map[string]string{"c.md": "# C\n"})
	if _, _, err := executeRoot(t, "", "-c", cfgPath, "--history", docs); err != nil {
		t.Fatalf("second run failed: %v", err)
	}

	t.Run("text comparison", func(t *testing.T) {
		stdout, _, err := executeRoot(t, "", "compare", "-c", cfgPath, docs)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stdout, "IMPROVED") {
			t.Errorf("expected improved status, got %q", stdout)
		}
		if !strings.Contains(stdout, "Fixed Links (1)") {
			t.Errorf("expected fixed link, got %q", stdout)
		}
	})

	t.Run("json comparison", func(t *testing.T) {
		stdout, _, err := executeRoot(t, "", "compare", "-c", cfgPath, "--json", docs)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var cmp model.Comparison
		if err := json.Unmarshal([]byte(stdout), &cmp); err != nil {
			t.Fatalf("stdout is not JSON: %v", err)
		}
		if cmp.Direction != model.DirectionImproved {
			t.Errorf("expected improved, got %q", cmp.Direction)
		}
		if len(cmp.Fixed) != 1 || cmp.Fixed[0].URL != "../c.md" {
			t.Errorf("unexpected fixed links: %+v", cmp.Fixed)
		}
	})

	t.Run("markdown comparison", func(t *testing.T) {
		stdout, _, err := executeRoot(t, "", "compare", "-c", cfgPath, "--markdown", docs)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stdout, "# ") {
			t.Errorf("expected markdown headings, got %q", stdout)
		}
	})

	t.Run("list runs", func(t *testing.T) {
		stdout, _, err := executeRoot(t, "", "compare", "-c", cfgPath, "--list", docs)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stdout, "(2 runs)") {
			t.Errorf("expected two runs, got %q", stdout)
		}
	})

	t.Run("list roots", func(t *testing.T) {
		stdout, _, err := executeRoot(t, "", "compare", "-c", cfgPath, "--list-roots")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stdout, docs) {
			t.Errorf("expected %s in roots, got %q", docs, stdout)
		}
	})

	t.Run("unknown run id", func(t *testing.T) {
		_, _, err := executeRoot(t, "", "compare", "-c", cfgPath, "--with-run", "does-not-exist", docs)
		if !errors.Is(err, history.ErrRunNotFound) {
			t.Errorf("expected ErrRunNotFound, got %v", err)
		}
	})
}

func TestRunCompareCmdErrors(t *testing.T) {
	t.Parallel()

	t.Run("no history database", func(t *testing.T) {
		t.Parallel()

		docs, cfgPath := setupDocs(t, cleanTree)
		_, _, err := executeRoot(t, "", "compare", "-c", cfgPath, docs)
		if err == nil || !strings.Contains(err.Error(), "history database not found") {
			t.Errorf("expected missing history error, got %v", err)
		}
	})

	t.Run("single run is not enough", func(t *testing.T) {
		t.Parallel()

		docs, cfgPath := setupDocs(t, cleanTree)
		if _, _, err := executeRoot(t, "", "-c", cfgPath, "--history", docs); err != nil {
			t.Fatalf("run failed: %v", err)
		}
		if _, err := os.Stat(filepath.Join(filepath.Dir(cfgPath), "state", history.DatabaseFile)); err != nil {
			t.Fatalf("expected history database: %v", err)
		}

		_, _, err := executeRoot(t, "", "compare", "-c", cfgPath, docs)
		if err == nil || !strings.Contains(err.Error(), "at least 2 runs") {
			t.Errorf("expected at least 2 runs error, got %v", err)
		}
	})
}
