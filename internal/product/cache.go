// internal/product/cache.go
//
// TTL cache over the products API.
//
// The authoritative list is refetched at most once per TTL window (one hour
// by default).  The cached envelope records its own fetch time, so any
// Store backend works without coordinated clocks or key expiry.  A corrupt
// envelope counts as stale and triggers a refetch rather than an error.
// Concurrent misses collapse into a single upstream fetch via singleflight.

package product

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/oakmoor/storefront/internal/metrics"
)

const (
	// CacheKey is the storage key for the cached product list.
	CacheKey = "products_cache"

	// DefaultTTL matches the reconciler contract of 3,600,000 ms.
	DefaultTTL = time.Hour
)

// Fetcher is the upstream the cache refreshes from.
type Fetcher interface {
	Fetch(ctx context.Context) ([]Product, error)
}

// envelope is the stored form: the list plus its fetch time in epoch ms.
type envelope struct {
	Data     []Product `json:"data"`
	CachedAt int64     `json:"cached_at"`
}

// Cache serves the product list, refreshing it when the TTL lapses.
type Cache struct {
	fetcher Fetcher
	store   Store
	ttl     time.Duration
	sfg     singleflight.Group
	now     func() time.Time
}

// NewCache builds a cache over fetcher and store.  A non-positive ttl gets
// DefaultTTL.
func NewCache(fetcher Fetcher, store Store, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{fetcher: fetcher, store: store, ttl: ttl, now: time.Now}
}

// Products returns the cached list when fresh, refetching otherwise.  A
// fetch failure surfaces to the caller; the stored envelope is left alone
// so a later pass can still judge it.
func (c *Cache) Products(ctx context.Context) ([]Product, error) {
	if list, ok := c.fresh(ctx); ok {
		metrics.ProductCacheHitsTotal.Inc()
		return list, nil
	}
	metrics.ProductCacheMissesTotal.Inc()

	v, err, _ := c.sfg.Do(CacheKey, func() (interface{}, error) {
		// Double-check after the singleflight barrier; a concurrent
		// caller may have refreshed while we queued.
		if list, ok := c.fresh(ctx); ok {
			return list, nil
		}

		metrics.ProductFetchTotal.Inc()
		list, err := c.fetcher.Fetch(ctx)
		if err != nil {
			metrics.ProductFetchErrorsTotal.Inc()
			return nil, err
		}

		raw, err := json.Marshal(envelope{Data: list, CachedAt: c.now().UnixMilli()})
		if err == nil {
			// Freshness is judged from the envelope timestamp; the key
			// expiry only bounds how long a dead envelope can linger.
			if serr := c.store.Set(ctx, CacheKey, raw, 2*c.ttl); serr != nil {
				zap.L().Debug("product cache write failed", zap.Error(serr))
			}
		}
		return list, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]Product), nil
}

// fresh loads the stored envelope and reports whether it is inside the TTL
// window.  Read errors and corrupt JSON degrade to a miss.
func (c *Cache) fresh(ctx context.Context) ([]Product, bool) {
	raw, ok, err := c.store.Get(ctx, CacheKey)
	if err != nil {
		zap.L().Debug("product cache read failed", zap.Error(err))
		return nil, false
	}
	if !ok {
		return nil, false
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, false
	}
	age := c.now().UnixMilli() - env.CachedAt
	if age < 0 || age > c.ttl.Milliseconds() {
		return nil, false
	}
	return env.Data, true
}
