package model

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestScanResultAddLink(t *testing.T) {
	t.Parallel()

	result := NewScanResult("/docs")
	result.AddLink(LinkReference{File: "a.md", URL: "https://example.com", Kind: LinkKindExternal})
	result.AddLink(LinkReference{File: "a.md", URL: "b.md", Kind: LinkKindInternal, Exists: true})
	result.AddLink(LinkReference{File: "a.md", URL: "c.md", Kind: LinkKindInternal, Line: 3, Text: "c", Resolved: "/docs/c.md"})

	if len(result.Links) != 3 {
		t.Fatalf("expected 3 links, got %d", len(result.Links))
	}
	if len(result.BrokenLinks) != 1 {
		t.Fatalf("expected 1 broken link, got %d", len(result.BrokenLinks))
	}

	want := BrokenLink{File: "a.md", Line: 3, Text: "c", URL: "c.md", ResolvedPath: "/docs/c.md"}
	if result.BrokenLinks[0] != want {
		t.Errorf("got %+v, want %+v", result.BrokenLinks[0], want)
	}
}

func TestScanResultFinish(t *testing.T) {
	t.Parallel()

	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	t.Run("no broken links is success", func(t *testing.T) {
		t.Parallel()
		result := NewScanResult("/docs")
		result.Finish(at)
		if result.Outcome != Success() {
			t.Errorf("expected success, got %v", result.Outcome)
		}
		if !result.GeneratedAt.Equal(at) {
			t.Errorf("expected GeneratedAt %v, got %v", at, result.GeneratedAt)
		}
	})

	t.Run("broken links give warnings with count", func(t *testing.T) {
		t.Parallel()
		result := NewScanResult("/docs")
		result.AddLink(LinkReference{File: "a.md", URL: "x.md", Kind: LinkKindInternal})
		result.AddLink(LinkReference{File: "a.md", URL: "y.md", Kind: LinkKindInternal})
		result.Finish(at)
		if result.Outcome != SuccessWithWarnings(2) {
			t.Errorf("expected warnings(2), got %v", result.Outcome)
		}
		if !result.HasBrokenLinks() {
			t.Error("expected HasBrokenLinks to be true")
		}
	})

	t.Run("document errors alone stay success", func(t *testing.T) {
		t.Parallel()
		result := NewScanResult("/docs")
		result.AddError("locked.md", errors.New("permission denied"))
		result.Finish(at)
		if result.Outcome.Kind != OutcomeSuccess {
			t.Errorf("expected success, got %v", result.Outcome)
		}
		if len(result.Errors) != 1 || result.Errors[0].Path != "locked.md" {
			t.Errorf("unexpected errors: %+v", result.Errors)
		}
	})

	t.Run("halt marks result halted", func(t *testing.T) {
		t.Parallel()
		result := NewScanResult("/docs")
		result.Halt(at)
		if result.Outcome.Kind != OutcomeHalted {
			t.Errorf("expected halted, got %v", result.Outcome)
		}
	})
}

func TestOutcomeString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		outcome Outcome
		want    string
	}{
		{Success(), "success"},
		{SuccessWithWarnings(4), "success_with_warnings(4)"},
		{Halted(), "halted"},
	}
	for _, tt := range tests {
		if got := tt.outcome.String(); got != tt.want {
			t.Errorf("got %q, want %q", got, tt.want)
		}
	}
}

func TestScanResultJSONRoundTrip(t *testing.T) {
	t.Parallel()

	result := NewScanResult("/docs")
	result.AddLink(LinkReference{File: "a.md", URL: "missing.md", Kind: LinkKindInternal})
	result.Finish(time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC))

	data, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded ScanResult
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decoded.Outcome != SuccessWithWarnings(1) {
		t.Errorf("expected outcome to survive JSON, got %v", decoded.Outcome)
	}
	if len(decoded.BrokenLinks) != 1 || decoded.BrokenLinks[0].URL != "missing.md" {
		t.Errorf("unexpected broken links: %+v", decoded.BrokenLinks)
	}
}

func TestOutcomeKindUnmarshalRejectsUnknown(t *testing.T) {
	t.Parallel()

	var k OutcomeKind
	if err := k.UnmarshalText([]byte("exploded")); err == nil {
		t.Error("expected error for unknown outcome")
	}
}
