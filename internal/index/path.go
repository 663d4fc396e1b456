// internal/index/path.go
//
// Filter path codec.
//
// A filter path is the canonical string key for a set of active attribute
// filters: entries sorted by key, then value, joined as
// key1/value1/key2/value2.  Equal filter sets always produce the same path
// no matter what order their entries were added in, which is what lets the
// path double as both a URL segment and an index key.
//
// Inactive entries (empty values) never appear in a canonical path.  When
// parsing, a trailing odd segment decodes as a key with an empty value, so
// re-serializing drops it; round-trip identity holds over every string
// Canonical can emit.

package index

import (
	"sort"
	"strings"

	"github.com/oakmoor/storefront/internal/attr"
)

// Canonical returns the filter path for the active entries of set.  The
// empty set canonicalizes to "".
func Canonical(set attr.Set) string {
	active := set.Active()
	sort.Slice(active, func(i, j int) bool {
		if active[i].Name != active[j].Name {
			return active[i].Name < active[j].Name
		}
		return active[i].Value < active[j].Value
	})

	segs := make([]string, 0, len(active)*2)
	for _, p := range active {
		segs = append(segs, p.Name, p.Value)
	}
	return strings.Join(segs, "/")
}

// ParsePath rebuilds the attribute set encoded in a filter path.  Segments
// pair up key/value in order.  Each segment passes through the slug rules
// again, so hand-typed URL casing still lands on the canonical entry.
func ParsePath(path string) attr.Set {
	var segs []string
	for _, s := range strings.Split(strings.Trim(path, "/"), "/") {
		if s != "" {
			segs = append(segs, s)
		}
	}

	pairs := make([]attr.Pair, 0, (len(segs)+1)/2)
	for i := 0; i < len(segs); i += 2 {
		p := attr.Pair{Name: segs[i]}
		if i+1 < len(segs) {
			p.Value = segs[i+1]
		}
		pairs = append(pairs, p)
	}
	return attr.Parse(pairs)
}
