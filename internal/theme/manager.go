package theme

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"github.com/oakmoor/storefront/internal/catalog"
)

// Manager discovers and loads themes.
type Manager struct {
	BaseDir     string // e.g., "themes" (relative) or "/srv/site/themes" (absolute)
	OverrideDir string // optional site-local template dir, wins over the theme
}

// Load parses every template under /themes/<name>/templates into one set so
// sub-templates ({{ template "card" . }}) resolve across files.  Template
// precedence (high → low):
//
//  1. <OverrideDir>/...            (site overrides)
//  2. /themes/<name>/templates/... (theme defaults)
//
// A later {{ define }} with the same name replaces the earlier one, so the
// override dir only needs the templates it actually changes.  The display
// lookup feeds the `label` helper; a theme loaded without one falls back to
// raw slugs.
func (m *Manager) Load(name string, display catalog.Display) (*Theme, error) {
	root := filepath.Join(m.BaseDir, name)
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("theme %s not found at %s", name, root)
	}

	// Build base template with a dummy asset helper so early parsing succeeds.
	dummyAsset := func(s string) string { return s }
	tpl := template.New("").Funcs(FuncMap(dummyAsset, display))

	tplDir := filepath.Join(root, "templates")
	files, err := CollectHTML(tplDir)
	if err != nil {
		return nil, fmt.Errorf("scan theme templates: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("theme %s has no templates under %s", name, tplDir)
	}
	if _, err := tpl.ParseFiles(files...); err != nil {
		return nil, fmt.Errorf("parse theme templates: %w", err)
	}

	// Site overrides parse last so their defines win.
	if m.OverrideDir != "" {
		if info, err := os.Stat(m.OverrideDir); err == nil && info.IsDir() {
			over, err := CollectHTML(m.OverrideDir)
			if err != nil {
				return nil, fmt.Errorf("scan template overrides: %w", err)
			}
			if len(over) > 0 {
				if _, err := tpl.ParseFiles(over...); err != nil {
					return nil, fmt.Errorf("parse template overrides: %w", err)
				}
			}
		}
	}

	// Finalise Theme struct and set real asset helper.
	th := New(name, root, tpl)
	tpl.Funcs(FuncMap(th.AssetFunc, display)) // replace dummy with real prefix

	return th, nil
}
