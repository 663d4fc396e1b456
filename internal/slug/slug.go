// internal/slug/slug.go
//
// Slug and URL path normalization.
//
// • Make(s) ─ converts arbitrary text into a URL-safe slug restricted to
//   ASCII a-z, 0-9 and “-”.
// • Path(parent, child) ─ joins parent path + child with a single “/” and
//   guarantees exactly one leading slash.
// • FromRef(ref) ─ canonical slug for a content reference (full path or bare
//   filename): basename minus extension, then Make.
//
// Rules (Make)
// ------------
// 1. Lower-case everything.
// 2. Convert any run of non-[a-z0-9] characters to one “-”.  That strips
//    spaces, punctuation, emoji, and non-ASCII.
// 3. Collapse consecutive “-” to a single “-”.
// 4. Trim leading / trailing “-”.
//
// A string with no alphanumerics slugs to "".  Attribute values are allowed
// to be blank, so Make never substitutes a placeholder; callers that need a
// non-empty identifier reject empties themselves.
//
// Notes
// -----
// • No Unicode transliteration.  The storefront is English-only for now.

package slug

import (
	"path/filepath"
	"strings"
)

// Make converts s → lower-kebab ASCII.
func Make(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	lastWasDash := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastWasDash = false
		default:
			// any non-ASCII or punctuation becomes a single dash
			if !lastWasDash {
				b.WriteRune('-')
				lastWasDash = true
			}
		}
	}

	return strings.Trim(b.String(), "-")
}

// Path joins parent + child ensuring exactly one leading slash and no
// duplicate separators.
func Path(parent, child string) string {
	parent = strings.Trim(parent, "/")
	child = strings.Trim(child, "/")

	switch {
	case parent == "" && child == "":
		return "/"
	case parent == "":
		return "/" + child
	case child == "":
		return "/" + parent
	default:
		return "/" + parent + "/" + child
	}
}

// FromRef derives the canonical slug for a content reference.  Refs may be
// full paths ("content/products/Oak-Table.md") or bare filenames; the
// directory and extension never contribute to identity.
func FromRef(ref string) string {
	base := filepath.Base(strings.TrimSpace(ref))
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return Make(base)
}
