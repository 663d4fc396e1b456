// internal/attr/attr.go
//
// Attribute parsing and the ordered attribute set.
//
// Product content carries attributes as raw {name, value} pairs in whatever
// case and spacing the editor typed.  Parse normalizes both sides through the
// slug rules and produces a Set, which behaves like a map but iterates in
// first-seen key order so every downstream consumer (index, facet UI, page
// generation) sees the same sequence on every run.
//
// Rules
// -----
// • Duplicate names after slugification: last occurrence wins.  The value is
//   overwritten in place and the key keeps its original position.
// • A missing or blank value parses to "".  Entries with empty values are
//   carried in the Set but count as inactive for filtering (see Active).
// • A name that slugs to "" drops the pair entirely.
// • Parse never fails.  Malformed input degrades, it does not error.

package attr

import "github.com/oakmoor/storefront/internal/slug"

// Pair is one raw attribute as authored in content, before normalization.
type Pair struct {
	Name  string
	Value string
}

// Set is an attribute mapping with deterministic iteration order.  The zero
// value is an empty, read-only set; mutating helpers return copies.
type Set struct {
	keys []string
	m    map[string]string
}

// Parse normalizes raw pairs into a Set.
func Parse(pairs []Pair) Set {
	s := Set{m: make(map[string]string, len(pairs))}
	for _, p := range pairs {
		k := slug.Make(p.Name)
		if k == "" {
			continue
		}
		if _, seen := s.m[k]; !seen {
			s.keys = append(s.keys, k)
		}
		s.m[k] = slug.Make(p.Value)
	}
	return s
}

// Get returns the value for key and whether the key is present.
func (s Set) Get(key string) (string, bool) {
	v, ok := s.m[key]
	return v, ok
}

// Len reports the number of entries, inactive ones included.
func (s Set) Len() int { return len(s.keys) }

// Keys returns the keys in first-seen order.  The slice is a copy.
func (s Set) Keys() []string {
	out := make([]string, len(s.keys))
	copy(out, s.keys)
	return out
}

// Active returns the entries with non-empty values, in first-seen key order.
// Only active entries participate in filter paths and facet counts.
func (s Set) Active() []Pair {
	out := make([]Pair, 0, len(s.keys))
	for _, k := range s.keys {
		if v := s.m[k]; v != "" {
			out = append(out, Pair{Name: k, Value: v})
		}
	}
	return out
}

// With returns a copy of s with key set to value.  A new key is appended to
// the iteration order; an existing key keeps its position.
func (s Set) With(key, value string) Set {
	c := s.clone()
	if _, seen := c.m[key]; !seen {
		c.keys = append(c.keys, key)
	}
	c.m[key] = value
	return c
}

// Without returns a copy of s with key removed.
func (s Set) Without(key string) Set {
	if _, ok := s.m[key]; !ok {
		return s.clone()
	}
	c := Set{keys: make([]string, 0, len(s.keys)-1), m: make(map[string]string, len(s.keys)-1)}
	for _, k := range s.keys {
		if k == key {
			continue
		}
		c.keys = append(c.keys, k)
		c.m[k] = s.m[k]
	}
	return c
}

// Superset reports whether every active entry of other is present in s with
// the same value.  An empty other matches everything.
func (s Set) Superset(other Set) bool {
	for _, p := range other.Active() {
		if v, ok := s.m[p.Name]; !ok || v != p.Value {
			return false
		}
	}
	return true
}

func (s Set) clone() Set {
	c := Set{keys: make([]string, len(s.keys)), m: make(map[string]string, len(s.m))}
	copy(c.keys, s.keys)
	for k, v := range s.m {
		c.m[k] = v
	}
	return c
}
