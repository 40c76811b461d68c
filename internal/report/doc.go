// Package report renders link check results.
//
// This package contains writers for different output formats:
//   - MarkdownWriter: the broken links page published with the documentation
//   - SimpleWriter: plain text for terminals and CI logs
//   - JSONWriter: structured output for tool integration
//
// Writers are pure formatters over an io.Writer. SaveFile is the only
// function that touches the filesystem.
package report
