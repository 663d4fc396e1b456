// internal/filterui/filterui.go
//
// Filter sidebar view model.
//
// Build turns the reverse index plus the currently active filters into the
// exact structure the listing templates bind to: one group per attribute
// key, one option per observed value with its match count and toggle URL,
// the active-filter chips with their remove URLs, and the fixed sort menu.
//
// Counts come from index bucket lookups (active filters union this option),
// so an option whose combination matches nothing shows 0 and still links to
// a canonical URL.  Labels degrade to raw slugs when the display lookup has
// no entry.  Build never fails.

package filterui

import (
	"sort"

	"github.com/oakmoor/storefront/internal/attr"
	"github.com/oakmoor/storefront/internal/catalog"
	"github.com/oakmoor/storefront/internal/index"
	"github.com/oakmoor/storefront/internal/listing"
	"github.com/oakmoor/storefront/internal/slug"
)

// Option is one selectable value inside a filter group.
type Option struct {
	Value  string
	Label  string
	Count  int
	Active bool
	URL    string
}

// Group is the option list for one attribute key.
type Group struct {
	Key     string
	Label   string
	Options []Option
}

// ActiveFilter is one currently-selected entry, rendered as a removable
// chip.  Key doubles as the remove-filter key the client script uses.
type ActiveFilter struct {
	Key       string
	Value     string
	Label     string
	RemoveURL string
}

// SortOption is one entry of the fixed sort menu.
type SortOption struct {
	Key      string
	Label    string
	Selected bool
}

// Data is everything the filter sidebar needs for one page.
type Data struct {
	Groups []Group
	Active []ActiveFilter
	Sorts  []SortOption
}

// Build assembles the sidebar data for one listing page.
func Build(ix *index.ReverseIndex, active attr.Set, display catalog.Display, baseURL, sortKey string) Data {
	d := Data{
		Groups: make([]Group, 0, len(ix.Keys())),
		Sorts:  sortOptions(sortKey),
	}

	for _, key := range ix.Keys() {
		g := Group{Key: key, Label: display.Label(key)}
		current, _ := active.Get(key)

		for _, value := range ix.Values(key) {
			isActive := current == value

			var toggled attr.Set
			if isActive {
				toggled = active.Without(key)
			} else {
				toggled = active.With(key, value)
			}

			g.Options = append(g.Options, Option{
				Value:  value,
				Label:  display.Label(value),
				Count:  len(ix.Lookup(active.With(key, value))),
				Active: isActive,
				URL:    slug.Path(baseURL, index.Canonical(toggled)),
			})
		}
		d.Groups = append(d.Groups, g)
	}

	for _, p := range active.Active() {
		d.Active = append(d.Active, ActiveFilter{
			Key:       p.Name,
			Value:     p.Value,
			Label:     display.Label(p.Value),
			RemoveURL: slug.Path(baseURL, index.Canonical(active.Without(p.Name))),
		})
	}
	sort.Slice(d.Active, func(i, j int) bool { return d.Active[i].Key < d.Active[j].Key })

	return d
}

// sortOptions returns the fixed sort menu with the selected key marked.  An
// unknown selected key leaves the default marked, matching the applier's
// fallback.
func sortOptions(selected string) []SortOption {
	opts := []SortOption{
		{Key: listing.SortDefault, Label: "Featured"},
		{Key: listing.SortPriceAsc, Label: "Price (low to high)"},
		{Key: listing.SortPriceDesc, Label: "Price (high to low)"},
		{Key: listing.SortNameAsc, Label: "Name (A to Z)"},
		{Key: listing.SortNameDesc, Label: "Name (Z to A)"},
	}

	found := false
	for i := range opts {
		if opts[i].Key == selected {
			opts[i].Selected = true
			found = true
		}
	}
	if !found {
		opts[0].Selected = true
	}
	return opts
}
