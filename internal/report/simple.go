package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/doclinks/internal/model"
)

// SimpleWriter outputs plain text for terminals and CI logs.
// It prints one line per broken link so the output can be grepped.
type SimpleWriter struct {
	baseWriter

	// showResolved adds the expected target path to each broken link line.
	showResolved bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithResolvedPaths prints the path each broken link was expected at.
func WithResolvedPaths(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showResolved = show
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs every broken link and unreadable document.
func (w *SimpleWriter) Write(result *model.ScanResult) (int, error) {
	var sb strings.Builder

	for _, b := range result.BrokenLinks {
		fmt.Fprintf(&sb, "⚠️  Broken link: %q (%s) in %s on line %d\n", singleLine(b.Text), b.URL, b.File, b.Line)
		if w.showResolved && b.ResolvedPath != "" {
			fmt.Fprintf(&sb, "    expected: %s\n", b.ResolvedPath)
		}
	}

	for _, e := range result.Errors {
		fmt.Fprintf(&sb, "⚠️  Unreadable document: %s (%s)\n", e.Path, singleLine(e.Message))
	}

	if result.HasBrokenLinks() {
		fmt.Fprintf(&sb, "\nFound %d broken links in %d documents\n", len(result.BrokenLinks), result.Documents)
	} else {
		fmt.Fprintf(&sb, "No broken links found in %d documents\n", result.Documents)
	}

	return w.output.Write([]byte(sb.String()))
}

// WriteSummary outputs link statistics.
func (w *SimpleWriter) WriteSummary(summary *model.LinkSummary) (int, error) {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Total links found: %d\n\n", summary.Total)

	sb.WriteString("Link Types:\n")
	for _, kc := range kindCounts(summary) {
		fmt.Fprintf(&sb, "- %s links: %d\n", kindTitle(kc.kind), kc.count)
	}
	fmt.Fprintf(&sb, "- Broken links: %d\n\n", summary.Broken)

	fmt.Fprintf(&sb, "Top %d Destinations:\n", model.DefaultTopN)
	writeEntries(&sb, summary.TopDestinations)
	sb.WriteString("\n")

	fmt.Fprintf(&sb, "Top %d Files with Most Links:\n", model.DefaultTopN)
	writeEntries(&sb, summary.TopFiles)

	return w.output.Write([]byte(sb.String()))
}

func writeEntries(sb *strings.Builder, entries []model.CountEntry) {
	if len(entries) == 0 {
		sb.WriteString("  (none)\n")
		return
	}
	for _, e := range entries {
		fmt.Fprintf(sb, "- %s: %d links\n", e.Name, e.Count)
	}
}

// WriteComparison outputs the difference between two runs.
func (w *SimpleWriter) WriteComparison(cmp *model.Comparison) (int, error) {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Link Check Comparison: %s\n", cmp.Root)
	sb.WriteString(strings.Repeat("=", 60))
	sb.WriteString("\n")

	fmt.Fprintf(&sb, "\nStatus: %s\n", formatDirection(cmp.Direction))
	fmt.Fprintf(&sb, "\nPrevious run: %s\n", cmp.Previous.GeneratedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&sb, "Current run:  %s\n", cmp.Current.GeneratedAt.Format("2006-01-02 15:04:05"))

	sb.WriteString("\n")
	fmt.Fprintf(&sb, "  %-10s  %-10s  %-10s  %-10s\n", "Metric", "Previous", "Current", "Change")
	sb.WriteString("  " + strings.Repeat("-", 45) + "\n")
	fmt.Fprintf(&sb, "  %-10s  %-10d  %-10d  %-10s\n", "Documents",
		cmp.Previous.Documents, cmp.Current.Documents, formatDelta(cmp.Current.Documents-cmp.Previous.Documents))
	fmt.Fprintf(&sb, "  %-10s  %-10d  %-10d  %-10s\n", "Links",
		cmp.Previous.Links, cmp.Current.Links, formatDelta(cmp.Current.Links-cmp.Previous.Links))
	fmt.Fprintf(&sb, "  %-10s  %-10d  %-10d  %-10s\n", "Broken",
		cmp.Previous.Broken, cmp.Current.Broken, formatDelta(cmp.Current.Broken-cmp.Previous.Broken))

	if len(cmp.NewBroken) > 0 {
		fmt.Fprintf(&sb, "\nNew Broken Links (%d):\n", len(cmp.NewBroken))
		for _, b := range cmp.NewBroken {
			fmt.Fprintf(&sb, "  [+] %s:%d %s\n", b.File, b.Line, b.URL)
		}
	}

	if len(cmp.Fixed) > 0 {
		fmt.Fprintf(&sb, "\nFixed Links (%d):\n", len(cmp.Fixed))
		for _, b := range cmp.Fixed {
			fmt.Fprintf(&sb, "  [-] %s:%d %s\n", b.File, b.Line, b.URL)
		}
	}

	if cmp.UnchangedCount > 0 {
		fmt.Fprintf(&sb, "\nUnchanged: %d broken links\n", cmp.UnchangedCount)
	}

	return w.output.Write([]byte(sb.String()))
}
