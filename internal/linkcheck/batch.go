package linkcheck

import (
	"context"
	"os"

	"github.com/nao1215/doclinks/internal/model"
	"golang.org/x/sync/errgroup"
)

// documentResult is what processing one document produced.
type documentResult struct {
	doc   model.Document
	links []model.LinkReference
	err   error
}

// processDocuments reads and checks docs with at most c.concurrency workers.
//
// Each worker writes only its own slot of the pre-allocated results slice,
// so the returned slice is in the same order as docs regardless of which
// document finishes first. Read failures are stored in the slot and do not
// stop the other workers; only context cancellation does.
func (c *Checker) processDocuments(ctx context.Context, root string, docs []model.Document) ([]documentResult, error) {
	results := make([]documentResult, len(docs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)

	for i, doc := range docs {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			results[i].doc = doc
			content, err := os.ReadFile(doc.AbsPath)
			if err != nil {
				results[i].err = &DocumentReadError{Path: doc.Path, Err: err}
				return nil
			}
			results[i].links = c.checkDocument(root, doc, string(content))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
