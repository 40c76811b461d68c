package model

import (
	"testing"
	"time"
)

func brokenRun(at time.Time, links ...LinkReference) *ScanResult {
	result := NewScanResult("/docs")
	for _, l := range links {
		l.Kind = LinkKindInternal
		result.AddLink(l)
	}
	result.Finish(at)
	return result
}

func TestCompareResults(t *testing.T) {
	t.Parallel()

	older := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := older.Add(24 * time.Hour)

	t.Run("fixed link improves", func(t *testing.T) {
		t.Parallel()
		previous := brokenRun(older,
			LinkReference{File: "a.md", URL: "x.md", Line: 1},
			LinkReference{File: "a.md", URL: "y.md", Line: 2},
		)
		current := brokenRun(newer,
			LinkReference{File: "a.md", URL: "y.md", Line: 5},
		)

		cmp := CompareResults(previous, current)
		if cmp.Direction != DirectionImproved {
			t.Errorf("expected improved, got %s", cmp.Direction)
		}
		if len(cmp.Fixed) != 1 || cmp.Fixed[0].URL != "x.md" {
			t.Errorf("unexpected fixed links: %+v", cmp.Fixed)
		}
		if len(cmp.NewBroken) != 0 {
			t.Errorf("expected no new broken links, got %+v", cmp.NewBroken)
		}
		if cmp.UnchangedCount != 1 {
			t.Errorf("expected 1 unchanged (moved line), got %d", cmp.UnchangedCount)
		}
	})

	t.Run("new link worsens", func(t *testing.T) {
		t.Parallel()
		previous := brokenRun(older)
		current := brokenRun(newer, LinkReference{File: "b.md", URL: "gone.md"})

		cmp := CompareResults(previous, current)
		if cmp.Direction != DirectionWorsened {
			t.Errorf("expected worsened, got %s", cmp.Direction)
		}
		if len(cmp.NewBroken) != 1 {
			t.Errorf("expected 1 new broken link, got %d", len(cmp.NewBroken))
		}
		if cmp.Previous.Broken != 0 || cmp.Current.Broken != 1 {
			t.Errorf("unexpected metadata: %+v %+v", cmp.Previous, cmp.Current)
		}
	})

	t.Run("swap keeps direction unchanged", func(t *testing.T) {
		t.Parallel()
		previous := brokenRun(older, LinkReference{File: "a.md", URL: "x.md"})
		current := brokenRun(newer, LinkReference{File: "a.md", URL: "z.md"})

		cmp := CompareResults(previous, current)
		if cmp.Direction != DirectionUnchanged {
			t.Errorf("expected unchanged, got %s", cmp.Direction)
		}
		if len(cmp.NewBroken) != 1 || len(cmp.Fixed) != 1 {
			t.Errorf("expected one new and one fixed, got %d/%d", len(cmp.NewBroken), len(cmp.Fixed))
		}
	})
}
