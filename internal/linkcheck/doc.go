// Package linkcheck finds broken internal links in a markdown documentation tree.
//
// # Overview
//
// A Checker walks the documentation root in lexical order, extracts every
// [text](url) reference from each document, classifies it and resolves
// internal references against the filesystem. The result is a
// model.ScanResult whose BrokenLinks are ordered by document, then by
// position inside the document.
//
// # Resolution
//
// Internal references are resolved the way a VitePress site serves them:
//
//   - "/guide/intro" is relative to the root, "../c.md" to the document
//   - a trailing slash maps to the directory's index.md
//   - a path without extension is tried literally, then with .md, then as
//     a directory containing index.md
//   - "#fragment" and "?query" are ignored
//   - root-relative assets may live in the public directory
//
// External (http, https, mailto) and anchor (#...) references are
// classified but never checked.
//
// # Usage
//
//	checker := linkcheck.New("docs", linkcheck.WithConcurrency(4))
//	result, err := checker.Scan(ctx)
//	if err != nil {
//	    return err
//	}
//	for _, b := range result.BrokenLinks {
//	    fmt.Printf("%s:%d %s\n", b.File, b.Line, b.URL)
//	}
//
// The checker never prints, prompts or exits. Callers decide what a
// model.Outcome means for them.
package linkcheck
