// Package cache provides the identifier cache and the redis-backed company
// record cache.
package cache

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// LoaderFunc resolves a ticker to its identifier (CIK) on a cache miss.
type LoaderFunc func(ctx context.Context, ticker string) (string, error)

// IdentifierCache is an explicitly owned ticker-to-CIK cache with an
// injected loader and explicit invalidation. It replaces the usual hidden
// module-level map: ownership is visible, cross-call coupling is gone, and
// tests inject a fake loader. Safe for concurrent use; concurrent misses on
// the same ticker may call the loader more than once, last write wins.
type IdentifierCache struct {
	mu     sync.RWMutex
	ids    map[string]string
	loader LoaderFunc

	hits   int64
	misses int64
}

// NewIdentifierCache creates a cache around the given loader.
func NewIdentifierCache(loader LoaderFunc) *IdentifierCache {
	return &IdentifierCache{
		ids:    make(map[string]string),
		loader: loader,
	}
}

// Resolve returns the identifier for ticker, loading it on first use.
func (c *IdentifierCache) Resolve(ctx context.Context, ticker string) (string, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if ticker == "" {
		return "", fmt.Errorf("resolve identifier: empty ticker")
	}

	c.mu.RLock()
	id, ok := c.ids[ticker]
	c.mu.RUnlock()
	if ok {
		c.mu.Lock()
		c.hits++
		c.mu.Unlock()
		return id, nil
	}

	id, err := c.loader(ctx, ticker)
	if err != nil {
		return "", fmt.Errorf("resolve identifier %s: %w", ticker, err)
	}

	c.mu.Lock()
	c.ids[ticker] = id
	c.misses++
	c.mu.Unlock()
	return id, nil
}

// Invalidate drops the cached identifier for ticker so the next Resolve
// reloads it.
func (c *IdentifierCache) Invalidate(ticker string) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	c.mu.Lock()
	delete(c.ids, ticker)
	c.mu.Unlock()
}

// InvalidateAll empties the cache.
func (c *IdentifierCache) InvalidateAll() {
	c.mu.Lock()
	c.ids = make(map[string]string)
	c.mu.Unlock()
}

// Stats returns hit and miss counts since construction.
func (c *IdentifierCache) Stats() (hits, misses int64) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}
