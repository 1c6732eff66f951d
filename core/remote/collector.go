package remote

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// PageFunc fetches page n (1-based) of a collection.
type PageFunc[T any] func(ctx context.Context, page int) ([]T, error)

// Collector reads every page of a collection until the first empty page.
// Pages are requested one at a time, never concurrently.
type Collector[T any] struct {
	// Fetch returns the records of one page.
	Fetch PageFunc[T]
	// MaxPages bounds the number of non-empty pages. Page MaxPages+1 is still requested
	// and must be empty. Zero is unbounded: an API that never returns an empty page
	// keeps the collector going.
	MaxPages int
	// Logger receives per-page progress. Nil disables logging.
	Logger *zap.Logger
}

// Collect returns the union of all pages in page order. Fetch errors are returned
// as-is and abort the collection; nothing is retried.
func (c *Collector[T]) Collect(ctx context.Context) ([]T, error) {
	log := c.Logger
	if log == nil {
		log = zap.NewNop()
	}

	var all []T
	for page := 1; ; page++ {
		items, err := c.Fetch(ctx, page)
		if err != nil {
			return nil, err
		}
		if len(items) == 0 {
			log.Debug("Collection exhausted", zap.Int("pages", page-1), zap.Int("records", len(all)))
			return all, nil
		}
		if c.MaxPages > 0 && page > c.MaxPages {
			return all, fmt.Errorf("%w (max %d pages, %d records)", ErrPageLimit, c.MaxPages, len(all))
		}

		log.Debug("Fetched page", zap.Int("page", page), zap.Int("records", len(items)))
		all = append(all, items...)
	}
}
