package model

import "strings"

// LinkKind classifies a link reference by the prefix of its URL.
type LinkKind int

const (
	// LinkKindInternal is a reference to another document or asset inside the
	// documentation tree. Only internal links are resolved against the filesystem.
	LinkKindInternal LinkKind = iota

	// LinkKindExternal is an http://, https:// or mailto: reference.
	LinkKindExternal

	// LinkKindAnchor is a reference to a section of the current document (#...).
	LinkKindAnchor
)

// externalPrefixes are the URL prefixes treated as external links.
var externalPrefixes = []string{"http://", "https://", "mailto:"}

// ClassifyURL returns the LinkKind of rawURL.
// Classification looks only at the URL prefix and never touches the filesystem.
func ClassifyURL(rawURL string) LinkKind {
	for _, prefix := range externalPrefixes {
		if strings.HasPrefix(rawURL, prefix) {
			return LinkKindExternal
		}
	}
	if strings.HasPrefix(rawURL, "#") {
		return LinkKindAnchor
	}
	return LinkKindInternal
}

// String returns the lower-case name of the kind.
func (k LinkKind) String() string {
	switch k {
	case LinkKindInternal:
		return "internal"
	case LinkKindExternal:
		return "external"
	case LinkKindAnchor:
		return "anchor"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler so kinds appear by name in JSON.
func (k LinkKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *LinkKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "external":
		*k = LinkKindExternal
	case "anchor":
		*k = LinkKindAnchor
	default:
		*k = LinkKindInternal
	}
	return nil
}

// Document is a text file of the documentation tree.
type Document struct {
	// Path is the slash-separated path relative to the scan root.
	Path string `json:"path"`

	// AbsPath is the absolute filesystem path.
	AbsPath string `json:"-"`
}

// LinkReference is one occurrence of a [text](url) link inside a document.
type LinkReference struct {
	// File is the relative path of the owning document.
	File string `json:"file"`

	// Text is the link display text.
	Text string `json:"text"`

	// URL is the link target as written in the document.
	URL string `json:"url"`

	// Offset is the byte offset of the match within the document.
	Offset int `json:"offset"`

	// Line is the 1-based line number derived from Offset.
	Line int `json:"line"`

	// Kind is the classification of URL.
	Kind LinkKind `json:"kind"`

	// Resolved is the absolute path an internal link resolves to.
	// Empty for external and anchor links.
	Resolved string `json:"resolved,omitempty"`

	// Exists reports whether Resolved existed at scan time.
	// Always false for external and anchor links.
	Exists bool `json:"exists"`
}

// IsBroken reports whether the reference is an internal link whose target is missing.
func (r LinkReference) IsBroken() bool {
	return r.Kind == LinkKindInternal && !r.Exists
}

// BrokenLink is the record kept for an internal link that did not resolve.
type BrokenLink struct {
	// File is the relative path of the document containing the link.
	File string `json:"file"`

	// Line is the 1-based line number of the link.
	Line int `json:"line"`

	// Text is the link display text.
	Text string `json:"text"`

	// URL is the link target as written.
	URL string `json:"url"`

	// ResolvedPath is the path the checker expected to find.
	ResolvedPath string `json:"resolved_path"`
}

// NewBrokenLink builds a BrokenLink from a reference.
func NewBrokenLink(ref LinkReference) BrokenLink {
	return BrokenLink{
		File:         ref.File,
		Line:         ref.Line,
		Text:         ref.Text,
		URL:          ref.URL,
		ResolvedPath: ref.Resolved,
	}
}
