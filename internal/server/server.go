// internal/server/server.go
//
// Serve mode.
//
// Context
// -------
// The same pipeline that writes the static tree renders pages on demand
// here, so operators can preview content changes or run the storefront
// behind a CDN without a build step.  The Server owns the long-lived
// pieces: the loaded Site, the redirect table, the product cache backing
// cart validation, and the outbound notifier.
//
// Redirect rows come from the database when redirects.dsn is configured
// (shared with external tooling), otherwise from the rows computed
// in-process, reseeded on every content reload.

package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/oakmoor/storefront/internal/build"
	"github.com/oakmoor/storefront/internal/cart"
	"github.com/oakmoor/storefront/internal/config"
	"github.com/oakmoor/storefront/internal/database"
	"github.com/oakmoor/storefront/internal/notify"
	"github.com/oakmoor/storefront/internal/product"
	"github.com/oakmoor/storefront/internal/redirect"
	"github.com/oakmoor/storefront/internal/requestinfo"
)

// Server owns the serve-mode stack.
type Server struct {
	cfg       *config.Config
	site      *build.Site
	redirects *redirect.Cache
	seeded    bool
	products  cart.ProductSource
	notifier  *notify.Notifier
	http      *http.Server
}

// New wires a Server from one loaded configuration and site.
func New(cfg *config.Config, site *build.Site) (*Server, error) {
	s := &Server{cfg: cfg, site: site, notifier: notify.New(cfg.Notify.Endpoint)}

	if cfg.HTTP.GeoIPDB != "" {
		if err := requestinfo.InitGeo(cfg.HTTP.GeoIPDB); err != nil {
			zap.S().Warnw("geo lookups disabled", "error", err)
		}
	}

	if dsn := cfg.Redirects.DSN; dsn != "" {
		db, err := database.Open(database.BuildDSN(dsn, cfg.Redirects.Password))
		if err != nil {
			return nil, fmt.Errorf("server: redirect db: %w", err)
		}
		ttl := cfg.Redirects.CacheTTL
		if ttl <= 0 {
			ttl = 15 * time.Minute
		}
		s.redirects = redirect.NewCache(db, ttl)
		if err := s.redirects.Load(context.Background()); err != nil {
			zap.S().Warnw("redirect table unavailable, serving without it", "error", err)
		}
	} else {
		s.redirects = redirect.NewSeededCache(site.RedirectRows())
		s.seeded = true
	}

	if host := cfg.Ecommerce.Host; host != "" {
		var store product.Store = product.NewMemoryStore()
		if cfg.Ecommerce.RedisURL != "" {
			opt, err := redis.ParseURL(cfg.Ecommerce.RedisURL)
			if err != nil {
				return nil, fmt.Errorf("server: redis url: %w", err)
			}
			store = product.NewRedisStore(redis.NewClient(opt))
		}
		client := product.NewClient(host, 10*time.Second)
		s.products = product.NewCache(client, store, cfg.Ecommerce.CacheTTL)
	}

	s.http = newHTTPServer(cfg.HTTP.ListenAddr, s.routes())
	return s, nil
}

// Refresh reloads the content tree and reseeds the in-process redirect
// table.  The file watcher calls it on every settled change burst.
func (s *Server) Refresh() error {
	if err := s.site.Reload(); err != nil {
		return err
	}
	if s.seeded {
		s.redirects.Seed(s.site.RedirectRows())
	}
	return nil
}

// Run serves until ctx is cancelled, then drains in-flight requests and
// outbound notifications.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		zap.S().Infow("listening", "addr", s.http.Addr)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err := s.http.Shutdown(shutCtx)
	s.notifier.Flush()
	return err
}

// Handler exposes the routed stack; tests drive it through httptest.
func (s *Server) Handler() http.Handler { return s.http.Handler }
