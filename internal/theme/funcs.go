//
//  internal/theme/funcs.go
//
//  Template functions shared by every theme.  These helpers keep HTML
//  authors out of Go-side formatting details: prices render through the
//  same rules the cart uses, and slugs resolve to display labels without
//  templates knowing where the lookup lives.
//

package theme

import (
	"html/template"

	"github.com/oakmoor/storefront/internal/catalog"
	"github.com/oakmoor/storefront/internal/price"
)

// FuncMap returns the global template function map.  The asset helper is
// theme-specific and injected by the Manager; display may be nil, in which
// case labels fall back to the slug itself.
func FuncMap(asset func(string) string, display catalog.Display) template.FuncMap {
	return template.FuncMap{
		// Path helpers
		"asset": asset,
		"productImage": func(p string) string {
			if p == "" {
				return ""
			}
			return "/assets/" + p
		},

		// Formatting helpers
		"formatPrice": price.Format,
		"label": func(slug string) string {
			return display.Label(slug)
		},

		// dict builds a map in templates: {{ dict "k" 1 "k2" "v" }}.
		"dict": func(kv ...any) map[string]any {
			m := make(map[string]any, len(kv)/2)
			for i := 0; i+1 < len(kv); i += 2 {
				key, _ := kv[i].(string)
				m[key] = kv[i+1]
			}
			return m
		},
	}
}
