package model

import (
	"fmt"
	"time"
)

// OutcomeKind is the overall state of a link check run.
type OutcomeKind int

const (
	// OutcomeSuccess means the scan completed and no broken links were found.
	OutcomeSuccess OutcomeKind = iota

	// OutcomeSuccessWithWarnings means the scan completed and found broken links.
	OutcomeSuccessWithWarnings

	// OutcomeHalted means the scan did not complete (missing root, cancellation).
	OutcomeHalted
)

// String returns the name of the outcome kind.
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeSuccessWithWarnings:
		return "success_with_warnings"
	case OutcomeHalted:
		return "halted"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k OutcomeKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *OutcomeKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "success":
		*k = OutcomeSuccess
	case "success_with_warnings":
		*k = OutcomeSuccessWithWarnings
	case "halted":
		*k = OutcomeHalted
	default:
		return fmt.Errorf("unknown outcome %q", string(text))
	}
	return nil
}

// Outcome is the typed result of a scan. The CLI maps it to a process exit status;
// the checker itself never exits or prompts.
type Outcome struct {
	Kind OutcomeKind `json:"kind"`

	// Count is the number of broken links for OutcomeSuccessWithWarnings.
	Count int `json:"count"`
}

// Success returns an outcome for a clean run.
func Success() Outcome {
	return Outcome{Kind: OutcomeSuccess}
}

// SuccessWithWarnings returns an outcome for a completed run with count broken links.
func SuccessWithWarnings(count int) Outcome {
	return Outcome{Kind: OutcomeSuccessWithWarnings, Count: count}
}

// Halted returns an outcome for a run that did not complete.
func Halted() Outcome {
	return Outcome{Kind: OutcomeHalted}
}

// String returns a short human-readable description.
func (o Outcome) String() string {
	if o.Kind == OutcomeSuccessWithWarnings {
		return fmt.Sprintf("%s(%d)", o.Kind, o.Count)
	}
	return o.Kind.String()
}

// DocumentError records a document that could not be read during a scan.
type DocumentError struct {
	// Path is the relative path of the document.
	Path string `json:"path"`

	// Message is the underlying error text.
	Message string `json:"message"`
}

// ScanResult is everything one link check run produced.
type ScanResult struct {
	// Root is the absolute path of the scanned documentation directory.
	Root string `json:"root"`

	// GeneratedAt is when the scan finished.
	GeneratedAt time.Time `json:"generated_at"`

	// Documents is the number of documents that were scanned.
	Documents int `json:"documents"`

	// Links contains every extracted reference in document order, then
	// occurrence order.
	Links []LinkReference `json:"links,omitempty"`

	// BrokenLinks contains the internal references that did not resolve,
	// in the same order as Links.
	BrokenLinks []BrokenLink `json:"broken_links"`

	// Errors contains documents that could not be read.
	Errors []DocumentError `json:"errors,omitempty"`

	// Outcome is the typed result of the run.
	Outcome Outcome `json:"outcome"`
}

// NewScanResult creates an empty result for root.
func NewScanResult(root string) *ScanResult {
	return &ScanResult{
		Root:        root,
		BrokenLinks: make([]BrokenLink, 0),
		Outcome:     Success(),
	}
}

// AddLink appends a reference and, when it is broken, a BrokenLink record.
func (r *ScanResult) AddLink(ref LinkReference) {
	r.Links = append(r.Links, ref)
	if ref.IsBroken() {
		r.BrokenLinks = append(r.BrokenLinks, NewBrokenLink(ref))
	}
}

// AddError records an unreadable document.
func (r *ScanResult) AddError(path string, err error) {
	r.Errors = append(r.Errors, DocumentError{Path: path, Message: err.Error()})
}

// Finish stamps the result and derives the outcome from the broken links.
func (r *ScanResult) Finish(at time.Time) {
	r.GeneratedAt = at
	if len(r.BrokenLinks) == 0 {
		r.Outcome = Success()
		return
	}
	r.Outcome = SuccessWithWarnings(len(r.BrokenLinks))
}

// Halt marks the result as not completed.
func (r *ScanResult) Halt(at time.Time) {
	r.GeneratedAt = at
	r.Outcome = Halted()
}

// HasBrokenLinks reports whether any broken link was found.
func (r *ScanResult) HasBrokenLinks() bool {
	return len(r.BrokenLinks) > 0
}
