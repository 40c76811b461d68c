package linkcheck

import (
	"regexp"
	"sort"
	"strings"

	"github.com/nao1215/doclinks/internal/model"
	"golang.org/x/net/html"
)

// linkPattern matches inline markdown links: [text](url).
var linkPattern = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)

// ExtractLinks returns the [text](url) references of content in order of
// appearance, with Text, URL, Offset, Line and Kind set.
//
// Embedded images (![alt](src)) and references whose URL is blank are skipped.
func ExtractLinks(content string) []model.LinkReference {
	matches := linkPattern.FindAllStringSubmatchIndex(content, -1)
	if len(matches) == 0 {
		return nil
	}

	lines := newLineIndex(content)
	refs := make([]model.LinkReference, 0, len(matches))
	for _, m := range matches {
		start := m[0]
		if start > 0 && content[start-1] == '!' {
			continue
		}
		rawURL := strings.TrimSpace(content[m[4]:m[5]])
		if rawURL == "" {
			continue
		}
		refs = append(refs, model.LinkReference{
			Text:   content[m[2]:m[3]],
			URL:    rawURL,
			Offset: start,
			Line:   lines.line(start),
			Kind:   model.ClassifyURL(rawURL),
		})
	}
	return refs
}

// ExtractHTMLLinks returns the <a href="..."> references embedded in content.
// The link text is the text inside the element, with whitespace collapsed.
func ExtractHTMLLinks(content string) []model.LinkReference {
	var (
		refs    []model.LinkReference
		current *model.LinkReference
		text    strings.Builder
		offset  int
	)
	lines := newLineIndex(content)

	finish := func() {
		if current == nil {
			return
		}
		current.Text = strings.Join(strings.Fields(text.String()), " ")
		refs = append(refs, *current)
		current = nil
		text.Reset()
	}

	z := html.NewTokenizer(strings.NewReader(content))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			break
		}
		start := offset
		offset += len(z.Raw())

		switch tt {
		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			if string(name) != "a" {
				continue
			}
			finish()
			href := ""
			for hasAttr {
				var key, val []byte
				key, val, hasAttr = z.TagAttr()
				if string(key) == "href" {
					href = strings.TrimSpace(string(val))
				}
			}
			if href == "" {
				continue
			}
			current = &model.LinkReference{
				URL:    href,
				Offset: start,
				Line:   lines.line(start),
				Kind:   model.ClassifyURL(href),
			}
			if tt == html.SelfClosingTagToken {
				finish()
			}
		case html.TextToken:
			if current != nil {
				text.Write(z.Text())
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			if string(name) == "a" {
				finish()
			}
		}
	}
	finish()
	return refs
}

// mergeByOffset merges two offset-ordered sequences into one.
func mergeByOffset(a, b []model.LinkReference) []model.LinkReference {
	if len(b) == 0 {
		return a
	}
	merged := make([]model.LinkReference, 0, len(a)+len(b))
	merged = append(merged, a...)
	merged = append(merged, b...)
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Offset < merged[j].Offset
	})
	return merged
}

// lineIndex maps byte offsets to 1-based line numbers.
type lineIndex []int

func newLineIndex(content string) lineIndex {
	starts := lineIndex{0}
	for i := 0; i < len(content); i++ {
		if content[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

func (idx lineIndex) line(offset int) int {
	return sort.Search(len(idx), func(i int) bool { return idx[i] > offset })
}
