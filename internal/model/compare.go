package model

import "time"

// Direction values of a Comparison.
const (
	DirectionImproved  = "improved"
	DirectionWorsened  = "worsened"
	DirectionUnchanged = "unchanged"
)

// RunMetadata summarizes one run for comparison display.
type RunMetadata struct {
	// GeneratedAt is when the run finished.
	GeneratedAt time.Time `json:"generated_at"`

	// Documents is the number of scanned documents.
	Documents int `json:"documents"`

	// Links is the number of extracted links.
	Links int `json:"links"`

	// Broken is the number of broken links.
	Broken int `json:"broken"`
}

// Comparison is the difference between two runs over the same root.
type Comparison struct {
	// Root is the documentation directory of the current run.
	Root string `json:"root"`

	// Previous describes the older run.
	Previous RunMetadata `json:"previous"`

	// Current describes the newer run.
	Current RunMetadata `json:"current"`

	// NewBroken are broken links present only in the current run.
	NewBroken []BrokenLink `json:"new_broken,omitempty"`

	// Fixed are broken links present only in the previous run.
	Fixed []BrokenLink `json:"fixed,omitempty"`

	// UnchangedCount is the number of broken links present in both runs.
	UnchangedCount int `json:"unchanged_count"`

	// Direction is DirectionImproved, DirectionWorsened or DirectionUnchanged.
	Direction string `json:"direction"`
}

// NewRunMetadata extracts the metadata of result.
func NewRunMetadata(result *ScanResult) RunMetadata {
	return RunMetadata{
		GeneratedAt: result.GeneratedAt,
		Documents:   result.Documents,
		Links:       len(result.Links),
		Broken:      len(result.BrokenLinks),
	}
}

// CompareResults compares two scan results. Broken links are matched by file and URL,
// so a link that only moved to another line is reported as unchanged.
// NewBroken and Fixed keep the scan order of their source run.
func CompareResults(previous, current *ScanResult) *Comparison {
	cmp := &Comparison{
		Root:     current.Root,
		Previous: NewRunMetadata(previous),
		Current:  NewRunMetadata(current),
	}

	previousKeys := make(map[string]struct{}, len(previous.BrokenLinks))
	for _, b := range previous.BrokenLinks {
		previousKeys[brokenLinkKey(b)] = struct{}{}
	}
	currentKeys := make(map[string]struct{}, len(current.BrokenLinks))
	for _, b := range current.BrokenLinks {
		currentKeys[brokenLinkKey(b)] = struct{}{}
	}

	for _, b := range current.BrokenLinks {
		if _, ok := previousKeys[brokenLinkKey(b)]; !ok {
			cmp.NewBroken = append(cmp.NewBroken, b)
		}
	}
	for _, b := range previous.BrokenLinks {
		if _, ok := currentKeys[brokenLinkKey(b)]; ok {
			cmp.UnchangedCount++
		} else {
			cmp.Fixed = append(cmp.Fixed, b)
		}
	}

	switch {
	case cmp.Current.Broken < cmp.Previous.Broken:
		cmp.Direction = DirectionImproved
	case cmp.Current.Broken > cmp.Previous.Broken:
		cmp.Direction = DirectionWorsened
	default:
		cmp.Direction = DirectionUnchanged
	}

	return cmp
}

// brokenLinkKey identifies a broken link across runs.
func brokenLinkKey(b BrokenLink) string {
	return b.File + "|" + b.URL
}
