package report

import (
	"io"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/nao1215/doclinks/internal/model"
	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
)

// Report page texts.
const (
	reportTitle       = "Broken Links Report"
	reportDescription = "A list of broken links found in the documentation"
	noBrokenLinks     = "No broken links found! 🎉"
)

// MarkdownWriter outputs reports in Markdown format.
// The broken links report is a VitePress page: it starts with frontmatter
// and links every file to its page on the site.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the broken links report page.
func (w *MarkdownWriter) Write(result *model.ScanResult) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeFrontmatter(md)
	md.H1(reportTitle)
	md.PlainText("")
	md.PlainText("This page lists all broken internal links found in the documentation. " +
		"Please update these links to point to valid pages.")
	md.PlainText("")

	if result.HasBrokenLinks() {
		w.writeBrokenLinks(md, result.BrokenLinks)
		w.writeHowToFix(md)
	} else {
		md.PlainText(markdown.Bold(noBrokenLinks))
		md.PlainText("")
	}

	if len(result.Errors) > 0 {
		w.writeDocumentErrors(md, result.Errors)
	}

	w.writeFooter(md, result.GeneratedAt)

	return len(md.String()), md.Build()
}

// writeFrontmatter writes the page metadata block read by VitePress.
func (w *MarkdownWriter) writeFrontmatter(md *markdown.Markdown) {
	md.PlainText("---")
	md.PlainText("title: " + reportTitle)
	md.PlainText("description: " + reportDescription)
	md.PlainText("---")
	md.PlainText("")
}

// writeBrokenLinks writes the broken links table.
func (w *MarkdownWriter) writeBrokenLinks(md *markdown.Markdown, links []model.BrokenLink) {
	md.H2f("Found %d broken links", len(links))
	md.PlainText("")

	rows := make([][]string, len(links))
	for i, b := range links {
		rows[i] = []string{
			markdown.Link(b.File, pageURL(b.File)),
			strconv.Itoa(b.Line),
			escapeCell(b.Text),
			codeSpan(escapeCell(b.URL)),
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"File", "Line", "Link Text", "Link URL"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeHowToFix writes the remediation steps.
func (w *MarkdownWriter) writeHowToFix(md *markdown.Markdown) {
	md.H2("How to fix broken links")
	md.PlainText("")
	md.OrderedList(
		"Open the file containing the broken link",
		"Find the link text and update the URL to point to a valid page",
		"Save the file and run the check again to verify the link is fixed",
	)
	md.PlainText("")
}

// writeDocumentErrors writes the documents that could not be read.
func (w *MarkdownWriter) writeDocumentErrors(md *markdown.Markdown, errs []model.DocumentError) {
	md.H2("Unreadable documents")
	md.PlainText("")
	md.Warningf("%d document(s) could not be read and were not checked.", len(errs))
	md.PlainText("")

	items := make([]string, len(errs))
	for i, e := range errs {
		items[i] = codeSpan(e.Path) + ": " + singleLine(e.Message)
	}
	md.BulletList(items...)
	md.PlainText("")
}

// writeFooter writes the generation timestamp.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown, at time.Time) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated on %s*", at.UTC().Format(time.RFC3339))
}

// WriteSummary outputs link statistics with a pie chart of link kinds.
func (w *MarkdownWriter) WriteSummary(summary *model.LinkSummary) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Link Summary")
	md.PlainText("")
	md.PlainTextf("Total links found: %s", markdown.Bold(strconv.Itoa(summary.Total)))
	md.PlainText("")

	rows := make([][]string, 0, 4)
	for _, kc := range kindCounts(summary) {
		rows = append(rows, []string{kindTitle(kc.kind), strconv.Itoa(kc.count)})
	}
	rows = append(rows, []string{"Broken", strconv.Itoa(summary.Broken)})
	md.H2("Link Types")
	md.PlainText("")
	md.Table(markdown.TableSet{Header: []string{"Type", "Count"}, Rows: rows})
	md.PlainText("")

	if summary.Total > 0 {
		w.writeKindChart(md, summary)
	}

	md.H2f("Top %d Destinations", model.DefaultTopN)
	md.PlainText("")
	md.Table(countTable("Destination", summary.TopDestinations))
	md.PlainText("")

	md.H2f("Top %d Files with Most Links", model.DefaultTopN)
	md.PlainText("")
	md.Table(countTable("File", summary.TopFiles))
	md.PlainText("")

	return len(md.String()), md.Build()
}

// writeKindChart writes a mermaid pie chart of link kinds.
func (w *MarkdownWriter) writeKindChart(md *markdown.Markdown, summary *model.LinkSummary) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Link Types"),
		piechart.WithShowData(true),
	)
	for _, kc := range kindCounts(summary) {
		if kc.count > 0 {
			chart.LabelAndIntValue(kindTitle(kc.kind), uint64(kc.count))
		}
	}

	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// WriteComparison outputs the difference between two runs.
func (w *MarkdownWriter) WriteComparison(cmp *model.Comparison) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Link Check Comparison")
	md.PlainText("")
	md.PlainTextf("Root: `%s`", cmp.Root)
	md.PlainText("")
	md.PlainTextf("%s %s", markdown.Bold("Status:"), formatDirection(cmp.Direction))
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Metric", "Previous", "Current", "Change"},
		Rows: [][]string{
			{"Date", cmp.Previous.GeneratedAt.Format("2006-01-02 15:04"), cmp.Current.GeneratedAt.Format("2006-01-02 15:04"), "-"},
			{"Documents", strconv.Itoa(cmp.Previous.Documents), strconv.Itoa(cmp.Current.Documents), formatDelta(cmp.Current.Documents - cmp.Previous.Documents)},
			{"Links", strconv.Itoa(cmp.Previous.Links), strconv.Itoa(cmp.Current.Links), formatDelta(cmp.Current.Links - cmp.Previous.Links)},
			{"Broken", strconv.Itoa(cmp.Previous.Broken), strconv.Itoa(cmp.Current.Broken), formatDelta(cmp.Current.Broken - cmp.Previous.Broken)},
		},
	})
	md.PlainText("")

	switch cmp.Direction {
	case model.DirectionImproved:
		md.Tip("Fewer broken links than the previous run.")
	case model.DirectionWorsened:
		md.Cautionf("%d new broken link(s) since the previous run.", len(cmp.NewBroken))
	default:
		md.Note("The number of broken links did not change.")
	}
	md.PlainText("")

	if len(cmp.NewBroken) > 0 {
		md.H2f("New Broken Links (%d)", len(cmp.NewBroken))
		md.PlainText("")
		md.BulletList(brokenItems(cmp.NewBroken)...)
		md.PlainText("")
	}

	if len(cmp.Fixed) > 0 {
		md.H2f("Fixed Links (%d)", len(cmp.Fixed))
		md.PlainText("")
		items := brokenItems(cmp.Fixed)
		for i := range items {
			items[i] = "~~" + items[i] + "~~"
		}
		md.BulletList(items...)
		md.PlainText("")
	}

	if cmp.UnchangedCount > 0 {
		md.HorizontalRule()
		md.PlainText("")
		md.PlainTextf("*%d broken links unchanged*", cmp.UnchangedCount)
	}

	return len(md.String()), md.Build()
}

// brokenItems formats broken links as "file:line `url`" list items.
func brokenItems(links []model.BrokenLink) []string {
	items := make([]string, len(links))
	for i, b := range links {
		items[i] = b.File + ":" + strconv.Itoa(b.Line) + " " + codeSpan(singleLine(b.URL))
	}
	return items
}

// countTable builds a two-column table of ranked entries.
func countTable(label string, entries []model.CountEntry) markdown.TableSet {
	rows := make([][]string, len(entries))
	for i, e := range entries {
		rows[i] = []string{escapeCell(e.Name), strconv.Itoa(e.Count)}
	}
	return markdown.TableSet{Header: []string{label, "Links"}, Rows: rows}
}

// parenEscaper escapes the characters url.PathEscape keeps but a markdown link destination cannot hold.
var parenEscaper = strings.NewReplacer("(", "%28", ")", "%29")

// pageURL returns the site URL of a document: "guide/intro.md" -> "/guide/intro".
// Segments are percent-encoded, so "my page.md" -> "/my%20page".
func pageURL(file string) string {
	segments := strings.Split(strings.TrimSuffix(file, path.Ext(file)), "/")
	for i, seg := range segments {
		segments[i] = parenEscaper.Replace(url.PathEscape(seg))
	}
	return "/" + strings.Join(segments, "/")
}

// codeSpan wraps s in a code span whose fence is longer than any backtick run in s.
func codeSpan(s string) string {
	longest, run := 0, 0
	for _, r := range s {
		if r == '`' {
			run++
			longest = max(longest, run)
			continue
		}
		run = 0
	}
	if longest == 0 {
		return "`" + s + "`"
	}
	fence := strings.Repeat("`", longest+1)
	return fence + " " + s + " " + fence
}

// escapeCell makes s safe inside a markdown table cell.
func escapeCell(s string) string {
	return strings.ReplaceAll(singleLine(s), "|", `\|`)
}
