package requestinfo

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/avct/uasurfer"
)

const chromeUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.6367.60 Safari/537.36"

func TestParseUADesktopChrome(t *testing.T) {
	ua := parseUA(chromeUA, "en-GB,en;q=0.9")

	if ua.Browser != "Chrome" {
		t.Fatalf("browser = %q, want Chrome", ua.Browser)
	}
	if ua.Version != "124.0.6367" {
		t.Fatalf("version = %q, want 124.0.6367", ua.Version)
	}
	if ua.OS != "Windows" {
		t.Fatalf("os = %q, want Windows", ua.OS)
	}
	if ua.Device != "Desktop" {
		t.Fatalf("device = %q, want Desktop", ua.Device)
	}
	if ua.IsBot {
		t.Fatal("desktop Chrome flagged as bot")
	}
	if ua.PrimaryLang != "en-gb" {
		t.Fatalf("primary lang = %q, want en-gb", ua.PrimaryLang)
	}
}

func TestParseUAFlagsCrawler(t *testing.T) {
	ua := parseUA("Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)", "")
	if !ua.IsBot {
		t.Fatal("Googlebot not flagged as bot")
	}
}

func TestTrimVersion(t *testing.T) {
	cases := []struct {
		in   uasurfer.Version
		want string
	}{
		{uasurfer.Version{Major: 17}, "17"},
		{uasurfer.Version{Major: 17, Minor: 3}, "17.3"},
		{uasurfer.Version{Major: 17, Minor: 3, Patch: 1}, "17.3.1"},
		{uasurfer.Version{Major: 17, Patch: 1}, "17.0.1"},
		{uasurfer.Version{}, ""},
	}
	for _, c := range cases {
		if got := trimVersion(c.in); got != c.want {
			t.Errorf("trimVersion(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestClientIPPrefersForwardedFor(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")

	if got := clientIP(r).String(); got != "203.0.113.9" {
		t.Fatalf("client ip = %s, want 203.0.113.9", got)
	}
}

func TestClientIPFallsBackToRemoteAddr(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "192.0.2.4:51123"

	if got := clientIP(r).String(); got != "192.0.2.4" {
		t.Fatalf("client ip = %s, want 192.0.2.4", got)
	}
}

func TestEnrichStoresRequestInfo(t *testing.T) {
	var got *RequestInfo
	h := Enrich(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = FromContext(r.Context())
	}))

	r := httptest.NewRequest(http.MethodGet, "/products/colour/red?sort=price", nil)
	r.Header.Set("User-Agent", chromeUA)
	h.ServeHTTP(httptest.NewRecorder(), r)

	if got == nil {
		t.Fatal("no RequestInfo in context")
	}
	if got.UA.Browser != "Chrome" {
		t.Fatalf("browser = %q, want Chrome", got.UA.Browser)
	}
	if got.URL.Path != "/products/colour/red" {
		t.Fatalf("path = %q, want /products/colour/red", got.URL.Path)
	}
	if got.Timestamp.IsZero() {
		t.Fatal("timestamp not set")
	}
}

func TestFromContextWithoutMiddleware(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if FromContext(r.Context()) != nil {
		t.Fatal("expected nil RequestInfo before Enrich runs")
	}
}
