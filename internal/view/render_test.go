package view

import (
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/oakmoor/storefront/internal/theme"
)

// loadTestTheme builds a throwaway theme whose files map name → body, and
// returns it loaded.
func loadTestTheme(t *testing.T, files map[string]string) *theme.Theme {
	t.Helper()
	base := t.TempDir()
	tplDir := filepath.Join(base, "test", "templates")
	if err := os.MkdirAll(tplDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(tplDir, name), []byte(body), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	m := &theme.Manager{BaseDir: base}
	th, err := m.Load("test", nil)
	if err != nil {
		t.Fatalf("theme load: %v", err)
	}
	return th
}

func TestEngine_RenderToString(t *testing.T) {
	th := loadTestTheme(t, map[string]string{
		"listing.html": `{{ define "listing" }}items: {{ . }}{{ end }}`,
	})
	e := New(th)

	html, err := e.RenderToString("listing", 7)
	if err != nil {
		t.Fatalf("RenderToString: %v", err)
	}
	if string(html) != "items: 7" {
		t.Errorf("html = %q, want items: 7", html)
	}
}

func TestEngine_RenderPageCachesByKey(t *testing.T) {
	th := loadTestTheme(t, map[string]string{
		"listing.html": `{{ define "listing" }}n={{ . }}{{ end }}`,
	})
	e := New(th)

	rec1 := httptest.NewRecorder()
	if err := e.RenderPage(rec1, "/products", "listing", 1); err != nil {
		t.Fatalf("first RenderPage: %v", err)
	}
	if ct := rec1.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("Content-Type = %q", ct)
	}

	// Same key with different data must come from cache.
	rec2 := httptest.NewRecorder()
	if err := e.RenderPage(rec2, "/products", "listing", 2); err != nil {
		t.Fatalf("second RenderPage: %v", err)
	}
	if rec2.Body.String() != "n=1" {
		t.Errorf("cached render = %q, want n=1", rec2.Body.String())
	}

	// Invalidate drops the page, so fresh data shows up.
	e.Invalidate()
	rec3 := httptest.NewRecorder()
	if err := e.RenderPage(rec3, "/products", "listing", 3); err != nil {
		t.Fatalf("post-invalidate RenderPage: %v", err)
	}
	if rec3.Body.String() != "n=3" {
		t.Errorf("render after Invalidate = %q, want n=3", rec3.Body.String())
	}
}

func TestEngine_FileTemplateWithoutDefine(t *testing.T) {
	th := loadTestTheme(t, map[string]string{
		"plain.html": `hello from file`,
	})
	e := New(th)

	html, err := e.RenderToString("plain", nil)
	if err != nil {
		t.Fatalf("RenderToString: %v", err)
	}
	if string(html) != "hello from file" {
		t.Errorf("html = %q, want hello from file", html)
	}
}
