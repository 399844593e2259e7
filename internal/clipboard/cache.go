package clipboard

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

const cacheKey = "clipboard"

// Cached remembers the last clipboard text for a short time so repeated
// register reads within one command do not each spawn a process.
type Cached struct {
	inner Bridge
	cache *gocache.Cache
	ttl   time.Duration
}

// NewCached wraps inner with a read cache that expires after ttl.
func NewCached(inner Bridge, ttl time.Duration) *Cached {
	return &Cached{
		inner: inner,
		cache: gocache.New(ttl, 2*ttl),
		ttl:   ttl,
	}
}

// Read returns the cached text or reads through to the inner bridge.
func (c *Cached) Read(ctx context.Context) (string, error) {
	if v, ok := c.cache.Get(cacheKey); ok {
		return v.(string), nil
	}
	text, err := c.inner.Read(ctx)
	if err != nil {
		return "", err
	}
	c.cache.Set(cacheKey, text, gocache.DefaultExpiration)
	return text, nil
}

// Write writes through and updates the cache on success.
func (c *Cached) Write(ctx context.Context, text string) error {
	if err := c.inner.Write(ctx, text); err != nil {
		c.cache.Delete(cacheKey)
		return err
	}
	c.cache.Set(cacheKey, text, gocache.DefaultExpiration)
	return nil
}

// Invalidate drops the cached text.
func (c *Cached) Invalidate() {
	c.cache.Delete(cacheKey)
}
