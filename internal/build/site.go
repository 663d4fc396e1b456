// internal/build/site.go
//
// Site aggregate: one loaded content tree plus everything derived from it.
//
// Context
// -------
// Build mode and serve mode need the same pipeline: load content, build the
// reverse index, generate the page set, and compose template payloads.  The
// Site owns that pipeline.  All derived state lives behind one
// atomic.Pointer, so a Reload builds the new world off to the side and
// swaps it in whole; requests in flight keep the snapshot they started
// with.
//
// Grouped listings
// ----------------
// With listing.group_by_category enabled every category gets its own filter
// tree under <base>/<category-slug>, alongside the root tree over the full
// collection.  Items without a category appear in the root tree only.
//
// Style
// -----
// • Oxford commas, two spaces after periods.

package build

import (
	"encoding/json"
	"fmt"
	"html/template"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/oakmoor/storefront/internal/catalog"
	"github.com/oakmoor/storefront/internal/config"
	"github.com/oakmoor/storefront/internal/filterui"
	"github.com/oakmoor/storefront/internal/head"
	"github.com/oakmoor/storefront/internal/index"
	"github.com/oakmoor/storefront/internal/listing"
	"github.com/oakmoor/storefront/internal/metrics"
	"github.com/oakmoor/storefront/internal/pages"
	"github.com/oakmoor/storefront/internal/redirect"
	"github.com/oakmoor/storefront/internal/slug"
	"github.com/oakmoor/storefront/internal/theme"
	"github.com/oakmoor/storefront/internal/view"
)

// Page couples one generated page with the index and base it came from, so
// later stages can rebuild its filter UI without re-deriving the group.
type Page struct {
	*pages.Page
	ix   *index.ReverseIndex
	base string
}

// listingBase is one filter tree root: the unfiltered listing URL and its
// index.  The root tree always comes first.
type listingBase struct {
	path string
	ix   *index.ReverseIndex
}

// state is everything derived from one pass over the content tree.
type state struct {
	items   []*catalog.Item
	display catalog.Display
	theme   *theme.Theme
	view    *view.Engine
	pages   []Page
	byURL   map[string]Page
	bases   []listingBase
	paths   int
}

// Site aggregates the configuration and the current content snapshot.
type Site struct {
	cfg   *config.Config
	state atomic.Pointer[state]
}

// NewSite constructs a Site and performs the initial load.
func NewSite(cfg *config.Config) (*Site, error) {
	s := &Site{cfg: cfg}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload loads content, display labels, and the theme, rebuilds every index
// and page, and swaps the snapshot in.  On error the previous snapshot
// stays live.
func (s *Site) Reload() error {
	cfg := s.cfg
	start := time.Now()

	items, err := catalog.Load(s.abs(cfg.Listing.ContentDir), s.abs(cfg.Listing.AssetsDir))
	if err != nil {
		return err
	}

	display := catalog.Display{}
	if cfg.Listing.DisplayLookup != "" {
		display, err = catalog.LoadDisplay(s.abs(cfg.Listing.DisplayLookup))
		if err != nil {
			return err
		}
	}

	mgr := &theme.Manager{
		BaseDir:     filepath.Join(cfg.Paths.Root, "themes"),
		OverrideDir: s.abs(cfg.Theme.OverridesDir),
	}
	th, err := mgr.Load(cfg.Theme.Name, display)
	if err != nil {
		return err
	}

	st := &state{
		items:   items,
		display: display,
		theme:   th,
		view:    view.New(th),
		byURL:   make(map[string]Page),
	}

	addTree := func(ix *index.ReverseIndex, base, title string) {
		st.bases = append(st.bases, listingBase{path: base, ix: ix})
		for _, p := range pages.Generate(ix, base, title, display) {
			if _, dup := st.byURL[p.URL]; dup {
				zap.S().Warnw("duplicate page url, keeping first", "url", p.URL)
				continue
			}
			pg := Page{Page: p, ix: ix, base: base}
			st.byURL[p.URL] = pg
			st.pages = append(st.pages, pg)
		}
		st.paths += ix.Len()
	}

	addTree(index.Build(items), cfg.Listing.BasePath, cfg.Listing.Title)

	if cfg.Listing.GroupByCategory {
		byCat, order := index.BuildGrouped(items, func(it *catalog.Item) string {
			return slug.Make(it.Category)
		})
		for _, cat := range order {
			if cat == "" {
				continue
			}
			addTree(byCat[cat], slug.Path(cfg.Listing.BasePath, cat), display.Label(cat))
		}
	}

	s.state.Store(st)
	metrics.IndexBuildsTotal.Inc()
	metrics.IndexPaths.Set(float64(st.paths))
	zap.S().Infow("site loaded",
		"items", len(items),
		"pages", len(st.pages),
		"filter_paths", st.paths,
		"elapsed", time.Since(start),
	)
	return nil
}

//
// snapshot accessors
//

// Lookup resolves a request URL to its page.
func (s *Site) Lookup(url string) (Page, bool) {
	pg, ok := s.state.Load().byURL[url]
	return pg, ok
}

// Pages returns every generated page in emission order.
func (s *Site) Pages() []Page { return s.state.Load().pages }

// Items returns the loaded collection.
func (s *Site) Items() []*catalog.Item { return s.state.Load().items }

// Engine returns the current view engine.  A Reload swaps in a fresh one,
// so callers should not hold the result across requests.
func (s *Site) Engine() *view.Engine { return s.state.Load().view }

// Theme returns the loaded theme.
func (s *Site) Theme() *theme.Theme { return s.state.Load().theme }

//
// page composition
//

// PageData assembles the template payload for one page under the given
// sort.  Static builds pass listing.SortDefault; serve mode passes the
// ?sort query value.
func (s *Site) PageData(pg Page, sortKey string) view.ListingPage {
	st := s.state.Load()
	active := index.ParsePath(pg.FilterPath)

	entries := listing.Entries(pg.ix.AllItems())
	var list listing.List
	listing.Apply(entries, &list, active, sortKey)

	filters := filterui.Build(pg.ix, active, st.display, pg.base, sortKey)

	hb := head.New()
	hb.SetTitle(pg.Title)
	hb.Canonical(strings.TrimRight(s.cfg.Site.BaseURL, "/") + pg.URL)
	desc := fmt.Sprintf("Browse %s (%d items).", pg.Title, len(list.Entries))
	hb.Meta(`<meta name="description" content="` + template.HTMLEscapeString(desc) + `">`)
	if js := itemListJSON(pg.Title, list.Entries); js != "" {
		hb.JSONLD(js)
	}

	return view.ListingPage{
		Site:     view.Site{Title: s.cfg.Site.Title, BaseURL: s.cfg.Site.BaseURL},
		Head:     hb,
		Page:     *pg.Page,
		Filters:  filters,
		Visible:  &list,
		CartMode: s.cfg.Cart.Mode,
	}
}

// itemListJSON renders a schema.org ItemList for the visible entries.
func itemListJSON(name string, entries []*listing.Entry) string {
	if len(entries) == 0 {
		return ""
	}
	type elem struct {
		Type     string `json:"@type"`
		Position int    `json:"position"`
		Name     string `json:"name"`
	}
	doc := struct {
		Context string `json:"@context"`
		Type    string `json:"@type"`
		Name    string `json:"name"`
		Elems   []elem `json:"itemListElement"`
	}{
		Context: "https://schema.org",
		Type:    "ItemList",
		Name:    name,
	}
	for i, e := range entries {
		doc.Elems = append(doc.Elems, elem{Type: "ListItem", Position: i + 1, Name: e.Item.Title})
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return ""
	}
	return string(b)
}

//
// redirects
//

// RedirectRows computes the legacy-URL redirect table across every listing
// base, in base order.
func (s *Site) RedirectRows() []redirect.Row {
	st := s.state.Load()
	rc := s.cfg.Redirects

	var rows []redirect.Row
	for _, b := range st.bases {
		rows = append(rows, redirect.Build(b.path, b.ix.Paths(), rc.Renames, rc.Moves)...)
	}
	return rows
}

//
// helpers
//

// abs resolves a config-relative path against the project root.
func (s *Site) abs(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(s.cfg.Paths.Root, p)
}
