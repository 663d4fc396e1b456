// internal/redirect/cache.go
//
// Redirect-resolution cache and middleware.
//
// Workflow
// --------
//   1. Serve startup constructs the Cache, either DB-backed (NewCache) or
//      primed from the rows built in-process (Seed).
//   2. The middleware sits early in the chain; a hit answers with a 308
//      Permanent Redirect before routing ever sees the legacy path.
//   3. DB-backed caches reload lazily once the TTL lapses.  Seeded caches
//      never expire; a rebuild re-seeds them.
//
// Notes
// -----
// • Oxford commas, two spaces after periods.

package redirect

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/oakmoor/storefront/internal/metrics"
)

// Cache stores legacy→canonical pairs plus TTL state.  Zero value is
// unusable; construct with NewCache or NewSeededCache.
type Cache struct {
	mu       sync.RWMutex
	data     map[string]string
	loadedAt time.Time
	ttl      time.Duration
	db       *sqlx.DB
}

// NewCache returns a DB-backed cache with the specified TTL.
func NewCache(db *sqlx.DB, ttl time.Duration) *Cache {
	return &Cache{data: map[string]string{}, db: db, ttl: ttl}
}

// NewSeededCache returns a static cache primed from rows.
func NewSeededCache(rows []Row) *Cache {
	c := &Cache{data: map[string]string{}}
	c.Seed(rows)
	return c
}

// Load refreshes all rows from the redirect table.
func (c *Cache) Load(ctx context.Context) error {
	var rows []Row
	if err := c.db.SelectContext(ctx, &rows,
		`SELECT from_path, to_path FROM redirect`); err != nil {
		return fmt.Errorf("redirect: load: %w", err)
	}

	fresh := make(map[string]string, len(rows))
	for _, r := range rows {
		fresh[r.FromPath] = r.ToPath
	}

	c.mu.Lock()
	c.data = fresh
	c.loadedAt = time.Now()
	c.mu.Unlock()

	zap.L().Debug("redirect cache load", zap.Int("count", len(fresh)))
	return nil
}

// Seed replaces the cache contents with rows, bypassing the database.
func (c *Cache) Seed(rows []Row) {
	fresh := make(map[string]string, len(rows))
	for _, r := range rows {
		fresh[r.FromPath] = r.ToPath
	}
	c.mu.Lock()
	c.data = fresh
	c.loadedAt = time.Now()
	c.mu.Unlock()
}

func (c *Cache) lookup(path string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.db != nil && time.Since(c.loadedAt) > c.ttl {
		return "", false
	}
	target, ok := c.data[path]
	return target, ok
}

func (c *Cache) needsRefresh() bool {
	if c.db == nil {
		return false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return time.Since(c.loadedAt) > c.ttl
}

// Middleware answers legacy URLs with a permanent redirect to their
// canonical successor and passes everything else through.
func Middleware(c *Cache) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if c.needsRefresh() {
				if err := c.Load(r.Context()); err != nil {
					zap.L().Warn("redirect cache reload failed", zap.Error(err))
				}
			}

			if target, ok := c.lookup(r.URL.Path); ok {
				if r.URL.RawQuery != "" {
					target += "?" + r.URL.RawQuery
				}
				metrics.RedirectHitsTotal.Inc()
				zap.L().Debug("redirect",
					zap.String("from", r.URL.Path),
					zap.String("to", target))
				http.Redirect(w, r, target, http.StatusPermanentRedirect)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
