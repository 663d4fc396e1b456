// internal/pages/pages.go
//
// Static filter-permutation pages.
//
// Every filter path present in the reverse index becomes one virtual page
// record; the writer renders each to {out}/{url}/index.html.  Paths come
// straight from the index so a combination with zero matching items never
// produces a page, and emission follows first-discovery order rather than a
// sort.  The unfiltered listing page always comes first.

package pages

import (
	"fmt"
	"sort"
	"strings"

	"github.com/oakmoor/storefront/internal/attr"
	"github.com/oakmoor/storefront/internal/catalog"
	"github.com/oakmoor/storefront/internal/index"
	"github.com/oakmoor/storefront/internal/slug"
)

// Page is one listing page to render: the base listing or one filter
// combination.
type Page struct {
	URL           string
	Title         string
	FilterPath    string
	ActiveFilters attr.Set
	Items         []*catalog.Item
}

// Generate builds the page set for one collection.  basePath is the listing
// root ("/products"), baseTitle the unfiltered page title.
func Generate(ix *index.ReverseIndex, basePath, baseTitle string, display catalog.Display) []*Page {
	out := make([]*Page, 0, ix.Len()+1)

	out = append(out, &Page{
		URL:           slug.Path(basePath, ""),
		Title:         baseTitle,
		FilterPath:    "",
		ActiveFilters: attr.Parse(nil),
		Items:         ix.AllItems(),
	})

	for _, p := range ix.Paths() {
		active := index.ParsePath(p)
		out = append(out, &Page{
			URL:           slug.Path(basePath, p),
			Title:         pageTitle(baseTitle, active, display),
			FilterPath:    p,
			ActiveFilters: active,
			Items:         ix.Items(p),
		})
	}
	return out
}

// pageTitle appends the active filter labels to the base title, in key
// order, so every permutation gets a distinct, stable title.
func pageTitle(base string, active attr.Set, display catalog.Display) string {
	pairs := active.Active()
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].Name < pairs[j].Name })

	labels := make([]string, 0, len(pairs))
	for _, p := range pairs {
		labels = append(labels, display.Label(p.Value))
	}
	if len(labels) == 0 {
		return base
	}
	return fmt.Sprintf("%s: %s", base, strings.Join(labels, ", "))
}
