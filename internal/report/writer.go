package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/doclinks/internal/model"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Writer defines the interface for report output.
// Implementations write link check results in various formats.
type Writer interface {
	// Write outputs the broken links of a scan.
	// Returns the number of bytes written and any error encountered.
	Write(result *model.ScanResult) (int, error)

	// WriteSummary outputs link statistics of a scan.
	WriteSummary(summary *model.LinkSummary) (int, error)

	// WriteComparison outputs the difference between two runs.
	WriteComparison(cmp *model.Comparison) (int, error)
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// kindTitle returns the display label of a link kind ("Internal", "External", ...).
func kindTitle(kind model.LinkKind) string {
	return cases.Title(language.English).String(kind.String())
}

// kindCounts returns the kinds of summary with their counts in display order.
func kindCounts(summary *model.LinkSummary) []struct {
	kind  model.LinkKind
	count int
} {
	return []struct {
		kind  model.LinkKind
		count int
	}{
		{model.LinkKindInternal, summary.Internal},
		{model.LinkKindExternal, summary.External},
		{model.LinkKindAnchor, summary.Anchor},
	}
}

// formatDelta formats a numeric delta with sign for display.
func formatDelta(delta int) string {
	if delta > 0 {
		return "+" + strconv.Itoa(delta)
	}
	return strconv.Itoa(delta)
}

// formatDirection formats a comparison direction for display.
func formatDirection(direction string) string {
	switch direction {
	case model.DirectionImproved:
		return "IMPROVED (fewer broken links)"
	case model.DirectionWorsened:
		return "WORSENED (more broken links)"
	default:
		return "UNCHANGED"
	}
}

// singleLine collapses line breaks so a value fits in one table cell or log line.
func singleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
