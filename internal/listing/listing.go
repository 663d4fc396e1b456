// internal/listing/listing.go
//
// Filter and sort application over rendered listing entries.
//
// Apply is the one routine behind every filter or sort interaction: it
// hides entries whose attributes are not a superset of the active filters,
// orders the survivors with one of five fixed comparators, re-appends the
// visible entries to the supplied container, and reports the match count
// for the "N results" label.  It is pure over its inputs aside from the
// Hidden flags it sets, holds no state, and is re-run in full on every
// interaction.

package listing

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/oakmoor/storefront/internal/attr"
	"github.com/oakmoor/storefront/internal/catalog"
)

// Sort keys shared between the sort menu and the applier.
const (
	SortDefault   = "default"
	SortPriceAsc  = "price-asc"
	SortPriceDesc = "price-desc"
	SortNameAsc   = "name-asc"
	SortNameDesc  = "name-desc"
)

// NormalizeSort maps a user-supplied sort value onto a known key.
// Unknown or empty values collapse to SortDefault.
func NormalizeSort(key string) string {
	switch key {
	case SortPriceAsc, SortPriceDesc, SortNameAsc, SortNameDesc:
		return key
	}
	return SortDefault
}

// Entry is one rendered item row.  Index records the position in the
// original collection and anchors the default sort.
type Entry struct {
	Item   *catalog.Item
	Index  int
	Hidden bool
}

// Container receives the visible entries in display order, the way a DOM
// list receives re-appended elements.
type Container interface {
	Append(*Entry)
}

// Entries wraps a collection for the applier, preserving collection order.
func Entries(items []*catalog.Item) []*Entry {
	out := make([]*Entry, len(items))
	for i, it := range items {
		out[i] = &Entry{Item: it, Index: i}
	}
	return out
}

// Apply marks non-matching entries hidden, sorts the rest, feeds them to
// container when one is supplied, and returns the visible count.  An
// unknown sort key falls back to the default order.
func Apply(entries []*Entry, container Container, active attr.Set, sortKey string) int {
	visible := make([]*Entry, 0, len(entries))
	for _, e := range entries {
		e.Hidden = !e.Item.Attributes.Superset(active)
		if !e.Hidden {
			visible = append(visible, e)
		}
	}

	sortEntries(visible, sortKey)

	if container != nil {
		for _, e := range visible {
			container.Append(e)
		}
	}
	return len(visible)
}

// sortEntries orders in place.  Stable sorts throughout so equal keys keep
// collection order, matching the default comparator's behavior for ties.
func sortEntries(es []*Entry, key string) {
	byTitle := func(dir int) func(i, j int) bool {
		// A fresh collator per call; the collator is not safe for
		// concurrent use and Apply runs per request in serve mode.
		c := collate.New(language.English, collate.IgnoreCase)
		return func(i, j int) bool {
			return dir*c.CompareString(es[i].Item.Title, es[j].Item.Title) < 0
		}
	}

	switch key {
	case SortPriceAsc:
		sort.SliceStable(es, func(i, j int) bool { return es[i].Item.Price < es[j].Item.Price })
	case SortPriceDesc:
		sort.SliceStable(es, func(i, j int) bool { return es[i].Item.Price > es[j].Item.Price })
	case SortNameAsc:
		sort.SliceStable(es, byTitle(1))
	case SortNameDesc:
		sort.SliceStable(es, byTitle(-1))
	default:
		sort.SliceStable(es, func(i, j int) bool { return es[i].Index < es[j].Index })
	}
}

// List is the basic Container: an ordered slice the templates range over.
type List struct {
	Entries []*Entry
}

// Append implements Container.
func (l *List) Append(e *Entry) { l.Entries = append(l.Entries, e) }
