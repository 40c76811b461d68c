package model

import (
	"fmt"
	"path/filepath"
	"testing"
)

func TestNewLinkSummary(t *testing.T) {
	t.Parallel()

	root := filepath.FromSlash("/site/docs")
	result := NewScanResult(root)
	result.AddLink(LinkReference{File: "index.md", URL: "https://github.com/nao1215", Kind: LinkKindExternal})
	result.AddLink(LinkReference{File: "index.md", URL: "https://github.com/other", Kind: LinkKindExternal})
	result.AddLink(LinkReference{File: "index.md", URL: "mailto:team@example.com", Kind: LinkKindExternal})
	result.AddLink(LinkReference{File: "index.md", URL: "#top", Kind: LinkKindAnchor})
	result.AddLink(LinkReference{
		File: "guide/a.md", URL: "../nodes/", Kind: LinkKindInternal,
		Resolved: filepath.Join(root, "nodes", "index.md"), Exists: true,
	})
	result.AddLink(LinkReference{
		File: "guide/a.md", URL: "/about", Kind: LinkKindInternal,
		Resolved: filepath.Join(root, "about.md"),
	})

	summary := NewLinkSummary(result)

	if summary.Total != 6 {
		t.Errorf("expected total 6, got %d", summary.Total)
	}
	if summary.External != 3 || summary.Anchor != 1 || summary.Internal != 2 {
		t.Errorf("unexpected counts: external=%d anchor=%d internal=%d",
			summary.External, summary.Anchor, summary.Internal)
	}
	if summary.Broken != 1 {
		t.Errorf("expected 1 broken link, got %d", summary.Broken)
	}

	wantDest := []CountEntry{
		{Name: "github.com", Count: 2},
		{Name: "/", Count: 1},
		{Name: "/nodes", Count: 1},
		{Name: "example.com", Count: 1},
	}
	if len(summary.TopDestinations) != len(wantDest) {
		t.Fatalf("expected %d destinations, got %+v", len(wantDest), summary.TopDestinations)
	}
	for i, want := range wantDest {
		if summary.TopDestinations[i] != want {
			t.Errorf("destination %d: got %+v, want %+v", i, summary.TopDestinations[i], want)
		}
	}

	wantFiles := []CountEntry{
		{Name: "index.md", Count: 4},
		{Name: "guide/a.md", Count: 2},
	}
	for i, want := range wantFiles {
		if summary.TopFiles[i] != want {
			t.Errorf("file %d: got %+v, want %+v", i, summary.TopFiles[i], want)
		}
	}
}

func TestNewLinkSummaryOutsideRoot(t *testing.T) {
	t.Parallel()

	root := filepath.FromSlash("/site/docs")
	result := NewScanResult(root)
	result.AddLink(LinkReference{
		File: "a.md", URL: "../../README.md", Kind: LinkKindInternal,
		Resolved: filepath.FromSlash("/site/README.md"), Exists: true,
	})

	summary := NewLinkSummary(result)
	if len(summary.TopDestinations) != 1 || summary.TopDestinations[0].Name != "(outside)" {
		t.Errorf("expected (outside) destination, got %+v", summary.TopDestinations)
	}
}

func TestTopEntriesLimit(t *testing.T) {
	t.Parallel()

	counts := make(map[string]int)
	for i := range 15 {
		counts[fmt.Sprintf("file-%02d.md", i)] = i
	}

	entries := topEntries(counts, DefaultTopN)
	if len(entries) != DefaultTopN {
		t.Fatalf("expected %d entries, got %d", DefaultTopN, len(entries))
	}
	if entries[0].Name != "file-14.md" || entries[0].Count != 14 {
		t.Errorf("expected highest count first, got %+v", entries[0])
	}
	if entries[DefaultTopN-1].Name != "file-05.md" {
		t.Errorf("expected file-05.md last, got %+v", entries[DefaultTopN-1])
	}
}

func TestTopEntriesTiesByName(t *testing.T) {
	t.Parallel()

	entries := topEntries(map[string]int{"b": 1, "c": 1, "a": 1}, DefaultTopN)
	for i, want := range []string{"a", "b", "c"} {
		if entries[i].Name != want {
			t.Errorf("entry %d: got %q, want %q", i, entries[i].Name, want)
		}
	}
}
