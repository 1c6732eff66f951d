package reconcile

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// BuildFunc produces a fresh index, typically by fetching the remote directory.
type BuildFunc[T any] func(ctx context.Context) (*Index[T], error)

// Cache holds a built index for a limited time so read endpoints do not refetch
// the directory on every request.
type Cache[T any] struct {
	ttl   time.Duration
	build BuildFunc[T]
	now   func() time.Time

	mu    sync.RWMutex
	index *Index[T]
	built time.Time
	sf    singleflight.Group
}

// NewCache creates a cache. A zero ttl disables caching: every Get rebuilds.
func NewCache[T any](ttl time.Duration, build BuildFunc[T]) *Cache[T] {
	return &Cache[T]{ttl: ttl, build: build, now: time.Now}
}

// Get returns the cached index, or builds a new one if it is missing or expired.
// Concurrent callers share a single build (singleflight prevents stampedes).
func (c *Cache[T]) Get(ctx context.Context) (*Index[T], error) {
	if c.ttl <= 0 {
		return c.build(ctx)
	}

	// Fast path: check if cache exists and is fresh
	if ix, ok := c.fresh(); ok {
		return ix, nil
	}

	result, err, _ := c.sf.Do("index", func() (interface{}, error) {
		// Double-check after acquiring the singleflight slot
		if ix, ok := c.fresh(); ok {
			return ix, nil
		}

		ix, err := c.build(ctx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.index = ix
		c.built = c.now()
		c.mu.Unlock()

		return ix, nil
	})
	if err != nil {
		return nil, err
	}

	return result.(*Index[T]), nil
}

// Invalidate drops the cached index so the next Get rebuilds it.
func (c *Cache[T]) Invalidate() {
	c.mu.Lock()
	c.index = nil
	c.mu.Unlock()
}

func (c *Cache[T]) fresh() (*Index[T], bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.index == nil || c.now().Sub(c.built) > c.ttl {
		return nil, false
	}
	return c.index, true
}
