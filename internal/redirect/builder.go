// internal/redirect/builder.go
//
// Redirect table construction.
//
// When an attribute key or value slug is renamed, or a listing moves to a
// new base path, every previously published filter URL goes dead.  The
// builder recomputes those legacy URLs by applying the configured renames
// inversely to each canonical path, and pairs them with the page that now
// answers.  Rows are emitted in page order, first mapping wins, and a row
// pointing at itself is dropped.

package redirect

import (
	"github.com/oakmoor/storefront/internal/attr"
	"github.com/oakmoor/storefront/internal/index"
	"github.com/oakmoor/storefront/internal/slug"
)

// Rename kinds.
const (
	KindKey   = "key"
	KindValue = "value"
)

// Rename declares one slug that changed: requests for From should land on
// To.  Value renames may scope to a single key; an empty Key applies to any
// key's value.
type Rename struct {
	Kind string `koanf:"kind"`
	Key  string `koanf:"key"`
	From string `koanf:"from"`
	To   string `koanf:"to"`
}

// BaseMove declares a listing that moved wholesale to a new base path.
// With grouped listings several bases exist side by side, so a move only
// applies to the listing whose base matches To; an empty To matches any.
type BaseMove struct {
	From string `koanf:"from"`
	To   string `koanf:"to"`
}

// Row is one redirect table entry.
type Row struct {
	FromPath string `db:"from_path"`
	ToPath   string `db:"to_path"`
}

// Build computes the redirect rows for one listing.  basePath is the
// current listing root, paths the canonical filter paths in page order.
func Build(basePath string, paths []string, renames []Rename, moves []BaseMove) []Row {
	var rows []Row
	seen := make(map[string]bool)

	add := func(from, to string) {
		if from == to || seen[from] {
			return
		}
		seen[from] = true
		rows = append(rows, Row{FromPath: from, ToPath: to})
	}

	// The unfiltered listing participates in base moves only.
	all := make([]string, 0, len(paths)+1)
	all = append(all, "")
	all = append(all, paths...)

	for _, p := range all {
		current := slug.Path(basePath, p)
		legacy := legacyPath(p, renames)

		if legacy != p {
			add(slug.Path(basePath, legacy), current)
		}
		for _, mv := range moves {
			if mv.To != "" && mv.To != basePath {
				continue
			}
			add(slug.Path(mv.From, p), current)
			if legacy != p {
				add(slug.Path(mv.From, legacy), current)
			}
		}
	}
	return rows
}

// legacyPath rewrites path as it looked before the renames: every renamed
// key or value is swapped back to its old slug, then the path is
// re-canonicalized under the old names.
func legacyPath(path string, renames []Rename) string {
	if path == "" || len(renames) == 0 {
		return path
	}

	set := index.ParsePath(path)
	out := attr.Parse(nil)
	for _, p := range set.Active() {
		key, value := p.Name, p.Value
		for _, rn := range renames {
			switch rn.Kind {
			case KindKey:
				if key == rn.To {
					key = rn.From
				}
			case KindValue:
				if value == rn.To && (rn.Key == "" || rn.Key == p.Name) {
					value = rn.From
				}
			}
		}
		out = out.With(key, value)
	}
	return index.Canonical(out)
}
