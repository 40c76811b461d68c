// Package model defines the data structures shared by the checker, the report
// writers, the history store and the CLI.
//
// This package contains the following main types:
//   - Document and LinkReference: documents of the tree and the links inside them
//   - BrokenLink: an internal link whose target does not exist
//   - ScanResult and Outcome: the result of one run and its typed outcome
//   - LinkSummary: link counts by kind, destination and file
//   - Comparison: the difference between two runs
//
// All types are serializable to JSON for report output and history storage.
package model
