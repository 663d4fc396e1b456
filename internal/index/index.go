// internal/index/index.go
//
// Reverse filter index.
//
// Build scans an ordered item collection once and produces every lookup the
// storefront needs at render time: the facet map (which attribute keys
// exist, which values each has been seen with), and the bucket map from
// filter path → items matching that exact combination.
//
// Enumeration contract
// --------------------
// For each item, every non-empty subset of its own active attributes is
// indexed.  Paths are generated off actual item data only; the index never
// forms the cross-product of globally observed values, so a path with zero
// matching items cannot exist.  Subsets enumerate over the item's keys in
// sorted order, which makes path discovery order a pure function of the
// input sequence.
//
// Determinism
// -----------
// Same item sequence in, identical key set, path set, path order, and
// bucket order out.  Reordering the input permutes bucket contents and
// discovery order but never changes which paths exist.
//
// The index is immutable once built and carries no package-level state; it
// is rebuilt from scratch each build and handed to consumers as a value.
// Returned slices are the index's own backing arrays.  Treat them as
// read-only.

package index

import (
	"sort"
	"strings"

	"github.com/oakmoor/storefront/internal/attr"
	"github.com/oakmoor/storefront/internal/catalog"
)

// ReverseIndex is the product of one Build pass.
type ReverseIndex struct {
	items []*catalog.Item

	keys      []string            // attribute keys, first-discovery order
	values    map[string][]string // key → values, first-discovery order
	valueSeen map[string]map[string]bool

	paths   []string // filter paths, first-discovery order
	buckets map[string][]*catalog.Item
}

// Build constructs the reverse index for an ordered collection.
func Build(items []*catalog.Item) *ReverseIndex {
	ix := &ReverseIndex{
		items:     items,
		values:    make(map[string][]string),
		valueSeen: make(map[string]map[string]bool),
		buckets:   make(map[string][]*catalog.Item),
	}

	for _, it := range items {
		active := it.Attributes.Active()
		for _, p := range active {
			ix.addFacet(p.Name, p.Value)
		}

		// Sort once per item so subset masks walk keys in a stable order.
		sort.Slice(active, func(i, j int) bool {
			if active[i].Name != active[j].Name {
				return active[i].Name < active[j].Name
			}
			return active[i].Value < active[j].Value
		})

		for mask := 1; mask < 1<<len(active); mask++ {
			ix.addBucket(pathForMask(active, mask), it)
		}
	}
	return ix
}

// BuildGrouped partitions items by the extractor's key and builds one index
// per group.  Items yielding "" fall into the "" group.  Group buckets keep
// the input collection order, and the returned slice lists groups in first
// discovery order so callers emit pages deterministically.
func BuildGrouped(items []*catalog.Item, key func(*catalog.Item) string) (map[string]*ReverseIndex, []string) {
	groups := make(map[string][]*catalog.Item)
	var order []string
	for _, it := range items {
		k := key(it)
		if _, seen := groups[k]; !seen {
			order = append(order, k)
		}
		groups[k] = append(groups[k], it)
	}

	out := make(map[string]*ReverseIndex, len(order))
	for _, k := range order {
		out[k] = Build(groups[k])
	}
	return out, order
}

// pathForMask serializes the subset of sorted active entries selected by
// mask.  Entries are already sorted, so the result is canonical by
// construction.
func pathForMask(active []attr.Pair, mask int) string {
	segs := make([]string, 0, len(active)*2)
	for i, p := range active {
		if mask&(1<<i) != 0 {
			segs = append(segs, p.Name, p.Value)
		}
	}
	return strings.Join(segs, "/")
}

func (ix *ReverseIndex) addFacet(key, value string) {
	seen, ok := ix.valueSeen[key]
	if !ok {
		ix.keys = append(ix.keys, key)
		seen = make(map[string]bool)
		ix.valueSeen[key] = seen
	}
	if !seen[value] {
		seen[value] = true
		ix.values[key] = append(ix.values[key], value)
	}
}

func (ix *ReverseIndex) addBucket(path string, it *catalog.Item) {
	if _, ok := ix.buckets[path]; !ok {
		ix.paths = append(ix.paths, path)
	}
	ix.buckets[path] = append(ix.buckets[path], it)
}

// AllItems returns the collection the index was built from, in input order.
func (ix *ReverseIndex) AllItems() []*catalog.Item { return ix.items }

// Keys returns the distinct attribute keys in first-discovery order.
func (ix *ReverseIndex) Keys() []string { return ix.keys }

// Values returns the distinct values seen for key, in first-discovery
// order, or nil for an unknown key.
func (ix *ReverseIndex) Values(key string) []string { return ix.values[key] }

// Paths returns every filter path in first-discovery order.  This order
// drives static page emission.
func (ix *ReverseIndex) Paths() []string { return ix.paths }

// Items returns the bucket for path, preserving input collection order, or
// nil when no item matches that exact combination.
func (ix *ReverseIndex) Items(path string) []*catalog.Item { return ix.buckets[path] }

// Lookup resolves an attribute set to its bucket.  The empty set matches
// the whole collection.
func (ix *ReverseIndex) Lookup(set attr.Set) []*catalog.Item {
	p := Canonical(set)
	if p == "" {
		return ix.items
	}
	return ix.buckets[p]
}

// Len reports the number of distinct filter paths.
func (ix *ReverseIndex) Len() int { return len(ix.paths) }
