package dataset

import (
	"context"
	"sync"
	"time"
)

// LoadFunc produces a fresh Dataset. Implementations never fail loudly:
// an unreadable source yields an empty Dataset.
type LoadFunc func(ctx context.Context) *Dataset

// Cache owns a lazily-loaded Dataset. The first Get triggers a load;
// subsequent Gets return the cached value until Invalidate is called.
// Safe for concurrent use.
type Cache struct {
	mu     sync.Mutex
	load   LoadFunc
	ds     *Dataset
	loaded time.Time
}

// NewCache returns a Cache backed by the given loader.
func NewCache(load LoadFunc) *Cache {
	return &Cache{load: load}
}

// Get returns the cached Dataset, loading it on first use.
func (c *Cache) Get(ctx context.Context) *Dataset {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ds == nil {
		c.ds = c.load(ctx)
		c.loaded = time.Now().UTC()
	}
	return c.ds
}

// Invalidate drops the cached Dataset so the next Get reloads it.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ds = nil
	c.loaded = time.Time{}
}

// LoadedAt returns when the current Dataset was loaded, or the zero
// time if nothing is cached.
func (c *Cache) LoadedAt() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loaded
}
