package linkcheck

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/nao1215/doclinks/internal/model"
)

// destination reduces a raw link URL to the path it points at.
// It drops a trailing "title", angle brackets, the fragment and the query,
// then percent-decodes the result when it is valid.
func destination(rawURL string) string {
	rawURL = strings.TrimSpace(rawURL)

	var dest string
	if inner, ok := strings.CutPrefix(rawURL, "<"); ok && strings.Contains(inner, ">") {
		// <my page.md> may contain spaces
		dest, _, _ = strings.Cut(inner, ">")
	} else {
		fields := strings.Fields(rawURL)
		if len(fields) == 0 {
			return ""
		}
		dest = strings.TrimSuffix(strings.TrimPrefix(fields[0], "<"), ">")
	}
	dest, _, _ = strings.Cut(dest, "#")
	dest, _, _ = strings.Cut(dest, "?")
	if decoded, err := url.PathUnescape(dest); err == nil {
		dest = decoded
	}
	return dest
}

// resolve maps an internal reference of doc to the file it points at and
// reports whether that file exists.
func (c *Checker) resolve(root string, doc model.Document, rawURL string) (string, bool) {
	dest := destination(rawURL)
	if dest == "" {
		// "?tab=1" and similar stay on the current page
		return doc.AbsPath, true
	}

	rootRelative := strings.HasPrefix(dest, "/")
	var target string
	if rootRelative {
		target = filepath.Join(root, filepath.FromSlash(dest))
	} else {
		target = filepath.Join(filepath.Dir(doc.AbsPath), filepath.FromSlash(dest))
	}

	if strings.HasSuffix(dest, "/") {
		index := filepath.Join(target, c.indexFile)
		return index, exists(index)
	}

	ext := filepath.Ext(target)
	if ext == "" {
		if isRegularFile(target) {
			return target, true
		}
		withExt := target + c.extension
		if exists(withExt) {
			return withExt, true
		}
		index := filepath.Join(target, c.indexFile)
		if exists(index) {
			return index, true
		}
		return withExt, false
	}

	if exists(target) {
		return target, true
	}

	if strings.EqualFold(ext, ".html") {
		page := strings.TrimSuffix(target, ext) + c.extension
		if exists(page) {
			return page, true
		}
	}

	if rootRelative && c.publicDir != "" && ext != c.extension {
		asset := filepath.Join(root, c.publicDir, filepath.FromSlash(dest))
		if exists(asset) {
			return asset, true
		}
	}

	return target, false
}

func exists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}

func isRegularFile(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.Mode().IsRegular()
}
