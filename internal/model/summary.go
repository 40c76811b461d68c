package model

import (
	"net/url"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultTopN is the number of entries kept in the ranked summary lists.
const DefaultTopN = 10

// CountEntry is a name with an occurrence count.
type CountEntry struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// LinkSummary aggregates every link of a scan by kind, destination and file.
type LinkSummary struct {
	// Root is the scanned documentation directory.
	Root string `json:"root"`

	// Total is the number of extracted links.
	Total int `json:"total"`

	// Internal is the number of internal links.
	Internal int `json:"internal"`

	// External is the number of external links.
	External int `json:"external"`

	// Anchor is the number of same-page anchor links.
	Anchor int `json:"anchor"`

	// Broken is the number of broken internal links.
	Broken int `json:"broken"`

	// TopDestinations ranks external hosts and internal top-level sections.
	TopDestinations []CountEntry `json:"top_destinations"`

	// TopFiles ranks documents by number of links.
	TopFiles []CountEntry `json:"top_files"`
}

// NewLinkSummary builds a summary of result keeping the DefaultTopN entries per list.
func NewLinkSummary(result *ScanResult) *LinkSummary {
	summary := &LinkSummary{
		Root:   result.Root,
		Broken: len(result.BrokenLinks),
	}

	destinations := make(map[string]int)
	files := make(map[string]int)

	for _, link := range result.Links {
		summary.Total++
		files[link.File]++

		switch link.Kind {
		case LinkKindExternal:
			summary.External++
			if host := externalHost(link.URL); host != "" {
				destinations[host]++
			}
		case LinkKindAnchor:
			summary.Anchor++
		case LinkKindInternal:
			summary.Internal++
			destinations[internalSection(result.Root, link)]++
		}
	}

	summary.TopDestinations = topEntries(destinations, DefaultTopN)
	summary.TopFiles = topEntries(files, DefaultTopN)
	return summary
}

// externalHost returns the host name of an http(s) URL, or the domain of a mailto address.
func externalHost(rawURL string) string {
	if addr, ok := strings.CutPrefix(rawURL, "mailto:"); ok {
		if _, domain, found := strings.Cut(addr, "@"); found {
			domain, _, _ = strings.Cut(domain, "?")
			return domain
		}
		return ""
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}

// internalSection returns "/<first segment>" of the link target relative to root.
// Targets outside the root are grouped under "(outside)".
func internalSection(root string, link LinkReference) string {
	if link.Resolved == "" || root == "" {
		return "/"
	}
	rel, err := filepath.Rel(root, link.Resolved)
	if err != nil {
		return "(outside)"
	}
	rel = filepath.ToSlash(rel)
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return "(outside)"
	}
	first, _, found := strings.Cut(rel, "/")
	if !found {
		// index.md, guide.md and other pages directly under the root
		return "/"
	}
	return "/" + first
}

// topEntries sorts counts descending, ties by name, and keeps at most n entries.
func topEntries(counts map[string]int, n int) []CountEntry {
	entries := make([]CountEntry, 0, len(counts))
	for name, count := range counts {
		entries = append(entries, CountEntry{Name: name, Count: count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Name < entries[j].Name
	})
	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}
