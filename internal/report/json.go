package report

import (
	"encoding/json"
	"io"

	"github.com/nao1215/doclinks/internal/model"
)

// JSONWriter outputs reports in JSON format for tool integration.
type JSONWriter struct {
	baseWriter

	// indent enables pretty-printed JSON output.
	indent bool

	// indentPrefix is the prefix for each line in indented output.
	indentPrefix string

	// indentString is the indentation string (typically "  " or "\t").
	indentString string

	// version is stamped into result documents when set.
	version string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables pretty-printed JSON output.
// The prefix is prepended to each line, and indent is used for each level.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithPrettyPrint enables pretty-printed JSON with two-space indentation.
func WithPrettyPrint() JSONWriterOption {
	return WithIndent("", "  ")
}

// WithVersion records the doclinks version in result documents.
func WithVersion(version string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.version = version
	}
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{
		baseWriter: newBaseWriter(output),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// JSONReport wraps a scan result with output metadata.
type JSONReport struct {
	// Version is the doclinks version that produced the result.
	Version string `json:"version,omitempty"`

	// Result is the full scan result.
	Result *model.ScanResult `json:"result"`

	// Summary is the link summary of Result.
	Summary *model.LinkSummary `json:"summary"`
}

// Write outputs the scan result together with its link summary.
func (w *JSONWriter) Write(result *model.ScanResult) (int, error) {
	return w.writeJSON(&JSONReport{
		Version: w.version,
		Result:  result,
		Summary: model.NewLinkSummary(result),
	})
}

// WriteSummary outputs only the link summary.
func (w *JSONWriter) WriteSummary(summary *model.LinkSummary) (int, error) {
	return w.writeJSON(summary)
}

// WriteComparison outputs the comparison of two runs.
func (w *JSONWriter) WriteComparison(cmp *model.Comparison) (int, error) {
	return w.writeJSON(cmp)
}

// writeJSON marshals v and writes it followed by a newline.
func (w *JSONWriter) writeJSON(v any) (int, error) {
	var (
		data []byte
		err  error
	)
	if w.indent {
		data, err = json.MarshalIndent(v, w.indentPrefix, w.indentString)
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return 0, err
	}

	data = append(data, '\n')
	return w.output.Write(data)
}
