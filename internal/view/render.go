// internal/view/render.go
//
// Central view engine: template execution against the loaded theme, plus an
// LRU of rendered page HTML for serve mode.
//
// Public helpers
// --------------
//   - RenderToString – return template.HTML (static build, tests).
//   - RenderPage     – stream one page to an http.ResponseWriter, cached.
//   - Invalidate     – drop every cached page after a rebuild.
//
// Listing pages are pure functions of the content tree and the filter path,
// so serve mode can cache rendered HTML aggressively: the only event that
// changes a page is a rebuild, and the watcher calls Invalidate right after
// one.
//
// Style
// -----
// • Oxford commas, two spaces after periods.

package view

import (
	"bytes"
	"html/template"
	"io"
	"net/http"

	"github.com/oakmoor/storefront/internal/cache"
	"github.com/oakmoor/storefront/internal/theme"
)

// Rendered pages per engine; tweak capacity when perf-testing.
const pageCacheSize = 1024

// Engine renders templates from one loaded theme.
type Engine struct {
	theme *theme.Theme
	pages *cache.LRU
}

// New returns an Engine bound to the given theme.
func New(th *theme.Theme) *Engine {
	return &Engine{
		theme: th,
		pages: cache.New(pageCacheSize),
	}
}

//
// public helpers
//

// RenderToString executes the named template and returns its HTML.
//
// Both template styles work:
//
//   - A file that wraps markup in {{ define "listing" }} … {{ end }} and
//     relies on that block name.
//   - A simple file "listing.html" with no {{ define }} block.  In that
//     case execName falls back to "listing.html".
func (e *Engine) RenderToString(name string, data any) (template.HTML, error) {
	var buf bytes.Buffer
	t := e.theme.Renderer
	if err := t.ExecuteTemplate(&buf, execName(t, name), data); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

// RenderPage streams one page to w, serving from the page cache when the
// key was rendered before.  The key should be the page’s canonical URL.
func (e *Engine) RenderPage(w http.ResponseWriter, key, name string, data any) error {
	if v, ok := e.pages.Get(key); ok {
		return writeHTML(w, v.(template.HTML))
	}

	html, err := e.RenderToString(name, data)
	if err != nil {
		return err
	}
	e.pages.Add(key, html)
	return writeHTML(w, html)
}

// Invalidate drops all cached pages.  The watcher calls this after every
// successful rebuild.
func (e *Engine) Invalidate() {
	e.pages.Reset()
}

//
// helpers
//

func writeHTML(w http.ResponseWriter, html template.HTML) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, err := io.WriteString(w, string(html))
	return err
}

// execName picks the template name to execute.
//
// Priority:
//  1. If the set defines "<name>" (a {{ define }} block), run that.
//  2. Otherwise, fall back to the file template "<name>.html".
func execName(t *template.Template, name string) string {
	if tmpl := t.Lookup(name); tmpl != nil {
		return name
	}
	return name + ".html"
}
