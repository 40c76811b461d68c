package linkcheck

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/nao1215/doclinks/internal/model"
)

// Default settings of a Checker.
const (
	// DefaultExtension is the file extension of documents.
	DefaultExtension = ".md"

	// DefaultIndexFile is served for directory references.
	DefaultIndexFile = "index.md"

	// DefaultPublicDir holds static assets served from the site root.
	DefaultPublicDir = "public"

	// DefaultConcurrency is the number of documents processed at once.
	DefaultConcurrency = 8
)

// DefaultExcludes are the directories a VitePress tree never wants checked.
var DefaultExcludes = []string{"node_modules", ".vitepress/cache", ".vitepress/dist"}

// Checker scans a documentation tree for broken internal links.
// A Checker is safe to reuse; every Scan reads the filesystem again.
type Checker struct {
	// root is the documentation directory as given by the caller.
	root string

	// extension selects documents and completes extensionless references.
	extension string

	// indexFile is the document served for directory references.
	indexFile string

	// publicDir is the asset directory relative to root.
	// Empty disables the public fallback.
	publicDir string

	// excludes are glob patterns of skipped directories and files.
	excludes []string

	// concurrency bounds the number of documents read at once.
	concurrency int

	// htmlLinks enables extraction of <a href> elements.
	htmlLinks bool

	// ignoreFiles are absolute paths of generated documents that are never scanned.
	ignoreFiles map[string]struct{}

	logger *slog.Logger
	now    func() time.Time
}

// Option configures a Checker.
type Option func(*Checker)

// WithExtension sets the document extension, including the leading dot.
func WithExtension(ext string) Option {
	return func(c *Checker) {
		if ext != "" {
			c.extension = ext
		}
	}
}

// WithIndexFile sets the document name served for directory references.
func WithIndexFile(name string) Option {
	return func(c *Checker) {
		if name != "" {
			c.indexFile = name
		}
	}
}

// WithPublicDir sets the public asset directory relative to the root.
// An empty name disables the public fallback.
func WithPublicDir(dir string) Option {
	return func(c *Checker) {
		c.publicDir = dir
	}
}

// WithExcludes replaces the default exclude patterns.
func WithExcludes(patterns []string) Option {
	return func(c *Checker) {
		c.excludes = append([]string(nil), patterns...)
	}
}

// WithConcurrency sets how many documents are processed at once.
// Non-positive values keep the default.
func WithConcurrency(n int) Option {
	return func(c *Checker) {
		if n > 0 {
			c.concurrency = n
		}
	}
}

// WithHTMLLinks enables extraction of <a href="..."> elements embedded in documents.
func WithHTMLLinks(enabled bool) Option {
	return func(c *Checker) {
		c.htmlLinks = enabled
	}
}

// WithIgnoreFiles skips the given files during the walk, for example the
// report page that a previous run wrote into the tree.
func WithIgnoreFiles(paths ...string) Option {
	return func(c *Checker) {
		for _, p := range paths {
			if p == "" {
				continue
			}
			if c.ignoreFiles == nil {
				c.ignoreFiles = make(map[string]struct{}, len(paths))
			}
			c.ignoreFiles[absPath(p)] = struct{}{}
		}
	}
}

// WithLogger sets the logger. A nil logger keeps slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Checker) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithClock sets the function used to timestamp results.
func WithClock(now func() time.Time) Option {
	return func(c *Checker) {
		if now != nil {
			c.now = now
		}
	}
}

// New creates a Checker for the documentation directory root.
func New(root string, opts ...Option) *Checker {
	c := &Checker{
		root:        root,
		extension:   DefaultExtension,
		indexFile:   DefaultIndexFile,
		publicDir:   DefaultPublicDir,
		excludes:    append([]string(nil), DefaultExcludes...),
		concurrency: DefaultConcurrency,
		logger:      slog.Default(),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Root returns the documentation directory the checker was created with.
func (c *Checker) Root() string {
	return c.root
}

// Scan checks every document under the root.
//
// The returned result is never nil. When the root is missing, an exclude
// pattern is malformed or ctx is cancelled, the result carries
// model.Halted and the error says why. Broken links and unreadable
// documents are not errors; they are recorded in the result.
func (c *Checker) Scan(ctx context.Context) (*model.ScanResult, error) {
	root, err := filepath.Abs(c.root)
	if err != nil {
		root = c.root
	}
	result := model.NewScanResult(root)

	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		result.Halt(c.now())
		return result, fmt.Errorf("%w: %s", ErrRootNotFound, c.root)
	}

	excluder, err := NewExcluder(c.excludes)
	if err != nil {
		result.Halt(c.now())
		return result, err
	}

	c.logger.Debug("scanning documentation", "root", root, "concurrency", c.concurrency)

	docs, err := c.documents(ctx, root, excluder)
	if err != nil {
		result.Halt(c.now())
		return result, err
	}
	result.Documents = len(docs)

	scanned, err := c.processDocuments(ctx, root, docs)
	if err != nil {
		result.Halt(c.now())
		return result, err
	}

	for _, s := range scanned {
		if s.err != nil {
			var readErr *DocumentReadError
			if errors.As(s.err, &readErr) {
				c.logger.Warn("skipping unreadable document", "path", readErr.Path, "error", readErr.Err)
			}
			result.AddError(s.doc.Path, s.err)
			continue
		}
		for _, ref := range s.links {
			result.AddLink(ref)
		}
	}

	result.Finish(c.now())
	c.logger.Debug("scan complete",
		"documents", result.Documents,
		"links", len(result.Links),
		"broken", len(result.BrokenLinks),
	)
	return result, nil
}

// checkDocument extracts and resolves the references of one document.
func (c *Checker) checkDocument(root string, doc model.Document, content string) []model.LinkReference {
	refs := ExtractLinks(content)
	if c.htmlLinks {
		refs = mergeByOffset(refs, ExtractHTMLLinks(content))
	}

	for i := range refs {
		refs[i].File = doc.Path
		if refs[i].Kind != model.LinkKindInternal {
			continue
		}
		refs[i].Resolved, refs[i].Exists = c.resolve(root, doc, refs[i].URL)
		if !refs[i].Exists {
			c.logger.Debug("broken link",
				"file", doc.Path,
				"line", refs[i].Line,
				"url", refs[i].URL,
				"resolved", refs[i].Resolved,
			)
		}
	}
	return refs
}
