package pricing

import (
	"context"
	"sync"
	"time"
)

type cachedPrice struct {
	price   float64
	fetched time.Time
}

// CachedLookup memoizes successful lookups of another Lookup for a TTL.
// Failures are never cached.
type CachedLookup struct {
	next  Lookup
	ttl   time.Duration
	now   func() time.Time
	mu    sync.RWMutex
	cache map[string]cachedPrice
}

// NewCachedLookup wraps next with a cache. A ttl <= 0 disables caching.
func NewCachedLookup(next Lookup, ttl time.Duration) *CachedLookup {
	return &CachedLookup{
		next:  next,
		ttl:   ttl,
		now:   time.Now,
		cache: make(map[string]cachedPrice),
	}
}

// WithClock replaces the time source. Used by tests.
func (c *CachedLookup) WithClock(now func() time.Time) *CachedLookup {
	c.now = now
	return c
}

func (c *CachedLookup) LookupPrice(ctx context.Context, symbol string) (float64, error) {
	if c.ttl <= 0 {
		return c.next.LookupPrice(ctx, symbol)
	}
	key := normalize(symbol)

	c.mu.RLock()
	if e, ok := c.cache[key]; ok && c.now().Sub(e.fetched) < c.ttl {
		c.mu.RUnlock()
		return e.price, nil
	}
	c.mu.RUnlock()

	price, err := c.next.LookupPrice(ctx, symbol)
	if err != nil {
		return 0, err
	}

	c.mu.Lock()
	c.cache[key] = cachedPrice{price: price, fetched: c.now()}
	c.mu.Unlock()

	return price, nil
}

// Invalidate drops every cached entry.
func (c *CachedLookup) Invalidate() {
	c.mu.Lock()
	c.cache = make(map[string]cachedPrice)
	c.mu.Unlock()
}
