package linkcheck

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"strings"

	"github.com/nao1215/doclinks/internal/model"
)

// Excluder decides whether a slash-separated relative path is excluded.
//
// A pattern without "/" is matched against every single path segment, so
// "node_modules" excludes node_modules at any depth. A pattern with "/" is
// matched against every run of consecutive segments of the same length, so
// ".vitepress/cache" excludes docs/.vitepress/cache and everything below it.
// Patterns use path.Match syntax.
type Excluder struct {
	patterns [][]string
}

// NewExcluder compiles patterns. It fails on the first malformed pattern.
func NewExcluder(patterns []string) (*Excluder, error) {
	e := &Excluder{patterns: make([][]string, 0, len(patterns))}
	for _, p := range patterns {
		p = strings.Trim(p, "/")
		if p == "" {
			continue
		}
		if _, err := path.Match(p, ""); err != nil {
			return nil, fmt.Errorf("exclude pattern %q: %w", p, err)
		}
		e.patterns = append(e.patterns, strings.Split(p, "/"))
	}
	return e, nil
}

// Match reports whether rel, or one of its parent directories, is excluded.
func (e *Excluder) Match(rel string) bool {
	rel = strings.Trim(filepath.ToSlash(rel), "/")
	if rel == "" || rel == "." {
		return false
	}
	segments := strings.Split(rel, "/")
	for _, pattern := range e.patterns {
		if matchSegments(pattern, segments) {
			return true
		}
	}
	return false
}

// matchSegments reports whether pattern matches any window of consecutive segments.
func matchSegments(pattern, segments []string) bool {
	for start := 0; start+len(pattern) <= len(segments); start++ {
		matched := true
		for i, p := range pattern {
			ok, err := path.Match(p, segments[start+i])
			if err != nil || !ok {
				matched = false
				break
			}
		}
		if matched {
			return true
		}
	}
	return false
}

// documents lists the documents under root in lexical walk order.
func (c *Checker) documents(ctx context.Context, root string, excluder *Excluder) ([]model.Document, error) {
	var docs []model.Document

	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			if p == root {
				return err
			}
			c.logger.Warn("skipping unreadable path", "path", p, "error", err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if rel == "." {
			return nil
		}

		if excluder.Match(rel) {
			c.logger.Debug("excluded", "path", rel)
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() || filepath.Ext(d.Name()) != c.extension {
			return nil
		}
		if c.ignored(p) {
			c.logger.Debug("ignored generated file", "path", rel)
			return nil
		}

		docs = append(docs, model.Document{Path: rel, AbsPath: p})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}
	return docs, nil
}

// ignored reports whether p is one of the files set with WithIgnoreFiles.
func (c *Checker) ignored(p string) bool {
	if len(c.ignoreFiles) == 0 {
		return false
	}
	_, ok := c.ignoreFiles[absPath(p)]
	return ok
}

// absPath returns the cleaned absolute form of p, or p cleaned when it cannot be resolved.
func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return filepath.Clean(p)
}
