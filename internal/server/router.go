// internal/server/router.go
//
// Route table and handlers.
//
// Middleware order matters:
//
//   1. RequestID / RealIP     – chi plumbing
//   2. requestinfo.Enrich     – UA + geo enrichment
//   3. AccessLog              – one structured line per request
//   4. Recoverer / Compress   – panic recovery, gzip
//   5. ForceHTTPS (optional)  – 308 to the HTTPS origin
//   6. Security               – response headers
//   7. redirect.Middleware    – legacy URLs answered before routing
//
// Everything that is not an asset, an API route, or a legacy redirect
// falls through to the listing-page handler, which resolves the URL
// against the current snapshot.

package server

import (
	"encoding/json"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/oakmoor/storefront/internal/cart"
	"github.com/oakmoor/storefront/internal/listing"
	"github.com/oakmoor/storefront/internal/middleware"
	"github.com/oakmoor/storefront/internal/redirect"
	"github.com/oakmoor/storefront/internal/requestinfo"
	"github.com/oakmoor/storefront/internal/view"
)

// routes assembles the chi router for the storefront.
func (s *Server) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(requestinfo.Enrich)
	r.Use(middleware.AccessLog)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	if s.cfg.HTTP.ForceHTTPS {
		r.Use(middleware.ForceHTTPS)
	}
	r.Use(middleware.Security)
	r.Use(redirect.Middleware(s.redirects))

	r.Get("/healthz", handleHealthz)
	r.Handle("/metrics", promhttp.Handler())
	r.Post("/api/cart/validate", s.handleCartValidate)

	if dir := s.cfg.Listing.AssetsDir; dir != "" {
		r.Handle("/assets/*", http.StripPrefix("/assets/",
			http.FileServer(http.Dir(s.abs(dir)))))
	}
	themeAssets := filepath.Join(s.cfg.Paths.Root, "themes", s.cfg.Theme.Name, "assets")
	themePrefix := "/themes/" + s.cfg.Theme.Name + "/assets/"
	r.Handle(themePrefix+"*", http.StripPrefix(themePrefix,
		http.FileServer(http.Dir(themeAssets))))

	r.Get("/", s.handleRoot)
	r.Get("/*", s.handlePage)

	return r
}

//
// handlers
//

func handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, "ok")
}

// handleRoot serves "/" when the listing is mounted there, and points at
// the listing base otherwise.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.site.Lookup("/"); ok {
		s.handlePage(w, r)
		return
	}
	http.Redirect(w, r, s.cfg.Listing.BasePath, http.StatusFound)
}

// handlePage renders one listing page from the current snapshot.  The
// rendered-HTML cache is keyed by canonical URL plus sort, so each
// variant renders once per snapshot.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	urlPath := r.URL.Path
	if len(urlPath) > 1 {
		urlPath = strings.TrimRight(urlPath, "/")
	}

	pg, ok := s.site.Lookup(urlPath)
	if !ok {
		s.renderNotFound(w, r)
		return
	}

	sortKey := listing.NormalizeSort(r.URL.Query().Get("sort"))
	key := pg.URL
	if sortKey != listing.SortDefault {
		key += "?sort=" + sortKey
	}

	data := s.site.PageData(pg, sortKey)
	if err := s.site.Engine().RenderPage(w, key, "listing", data); err != nil {
		zap.S().Errorw("render failed", "url", pg.URL, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// renderNotFound serves the themed 404 when the template exists, plain
// text otherwise.
func (s *Server) renderNotFound(w http.ResponseWriter, r *http.Request) {
	html, err := s.site.Engine().RenderToString("404", map[string]any{
		"Site":     view.Site{Title: s.cfg.Site.Title, BaseURL: s.cfg.Site.BaseURL},
		"BasePath": s.cfg.Listing.BasePath,
	})
	if err != nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	io.WriteString(w, string(html))
}

// handleCartValidate reconciles a posted cart against the authoritative
// product list and returns the repaired cart with its toasts.  The body
// is the JSON item array exactly as the browser stores it.
func (s *Server) handleCartValidate(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1<<20))
	if err != nil {
		http.Error(w, "request too large", http.StatusRequestEntityTooLarge)
		return
	}

	var items []cart.Item
	if len(body) > 0 {
		if err := json.Unmarshal(body, &items); err != nil {
			http.Error(w, "malformed cart", http.StatusBadRequest)
			return
		}
	}

	storage := cart.NewMemoryStorage()
	if len(body) > 0 {
		storage.SetItem(cart.StorageKey, string(body))
	}

	res := cart.New(storage, s.products, s.notifier).Run(r.Context())

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(res); err != nil {
		zap.S().Errorw("cart validate encode failed", "error", err)
	}
}

// abs resolves a config-relative path against the project root.
func (s *Server) abs(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(s.cfg.Paths.Root, p)
}
