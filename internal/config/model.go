// internal/config/model.go
//
// Typed configuration model for the storefront generator.
//
// Context
// -------
// These structs define the shape of the configuration tree that
// `internal/config/loader.go` builds from three overlay layers:
//
//   • optional `.env`                              – dotenv values,
//   • `conf/global.yaml`                           – primary static file,
//   • `STOREFRONT_`-prefixed environment overrides – highest precedence.
//
// Any value whose string begins with the prefix `vault:` is resolved
// through the Vault client after unmarshalling, so consumers never see
// Vault URIs—only plain strings.
//
// Validation happens immediately after unmarshal; the app fails fast if
// required fields are missing or the cart mode lacks its backing service.
//
// Notes
// -----
//   • Struct tags use `koanf:"…"`, not `yaml:"…"`—Koanf ignores `yaml` tags
//     unless configured otherwise.
//   • The `Paths` block is filled at runtime; YAML must not try to set it.
//   • Oxford commas, two spaces after periods.  No em-dash.

package config

import (
	"time"

	"github.com/oakmoor/storefront/internal/redirect"
)

//
// Cart modes
//

// Checkout modes for the cart block.  Off hides the cart entirely, enquiry
// collects requests without payment, and buy is full checkout against the
// ecommerce backend.
const (
	CartModeBuy     = "buy"
	CartModeEnquiry = "enquiry"
	CartModeOff     = "off"
)

//
// Site section
//

// Site identifies the generated site as a whole.
type Site struct {
	Title   string `koanf:"title"    validate:"required"`
	BaseURL string `koanf:"base_url" validate:"required,url"`
}

//
// Listing section
//

// Listing configures the filterable product listing and its sources.
//
// ContentDir holds one Markdown file per item; AssetsDir holds the images
// their front matter references.  DisplayLookup is an optional JSON file
// mapping slugs to human-readable labels.  GroupByCategory emits one
// filter tree per category instead of a single flat listing.
type Listing struct {
	BasePath        string `koanf:"base_path"   validate:"required"`
	Title           string `koanf:"title"       validate:"required"`
	ContentDir      string `koanf:"content_dir" validate:"required"`
	AssetsDir       string `koanf:"assets_dir"`
	DisplayLookup   string `koanf:"display_lookup"`
	GroupByCategory bool   `koanf:"group_by_category"`
}

//
// Cart section
//

// Cart selects the checkout mode.  Mode-dependent requirements are
// enforced in validator.go, not by tags.
type Cart struct {
	Mode string `koanf:"mode" validate:"required"`
}

//
// Ecommerce section
//

// Ecommerce points at the stock and pricing backend.  Host is required
// when the cart mode is buy.  RedisURL switches the product cache from
// in-process memory to Redis when set.
type Ecommerce struct {
	Host     string        `koanf:"host"`
	CacheTTL time.Duration `koanf:"cache_ttl"`
	RedisURL string        `koanf:"redis_url"`
}

//
// Notify section
//

// Notify configures the outbound diagnostics endpoint.  Endpoint is
// required when the cart mode is enquiry.
type Notify struct {
	Endpoint string `koanf:"endpoint"`
}

//
// Redirects section
//

// Redirects configures legacy-path redirect generation and serving.
//
// The *template* (`DSN`) is kept in YAML so operators can tweak host,
// port, or flags without touching Vault.  The *secret* portion
// (`Password`) may be a `vault:` reference and replaces the `{password}`
// placeholder in the DSN, keeping credentials out of flat files and git
// history.  Renames and Moves describe historical slug and base-path
// changes that still deserve a permanent redirect.
type Redirects struct {
	DSN      string              `koanf:"dsn"`
	Password string              `koanf:"password"`
	JSONOut  string              `koanf:"json_out"`
	CacheTTL time.Duration       `koanf:"cache_ttl"`
	Renames  []redirect.Rename   `koanf:"renames"`
	Moves    []redirect.BaseMove `koanf:"moves"`
}

//
// HTTP section
//

// HTTP holds web-server tunables for serve mode.  GeoIPDB points at a
// MaxMind GeoLite2-City file; when empty, request enrichment skips the
// geo lookup and serves without it.
type HTTP struct {
	ListenAddr string `koanf:"listen_addr" validate:"required,hostname_port"`
	ForceHTTPS bool   `koanf:"force_https"`
	GeoIPDB    string `koanf:"geoip_db"`
}

//
// Build section
//

// Build configures static output.
type Build struct {
	OutDir string `koanf:"out_dir" validate:"required"`
}

//
// Theme section
//

// Theme names the template set under themes/.  OverridesDir points at an
// optional site-local template dir whose defines replace the theme's.
type Theme struct {
	Name         string `koanf:"name" validate:"required"`
	OverridesDir string `koanf:"overrides_dir"`
}

//
// Paths section (runtime only)
//

// Paths is resolved at runtime—never set in YAML or env.  The loader
// discovers `Root` (repo root or STOREFRONT_ROOT override) so later code
// can build absolute file paths.
type Paths struct {
	Root string // STOREFRONT_ROOT or discovered parent
}

//
// Root aggregate
//

// Config is the immutable aggregate returned by Load() and cached in an
// atomic.Pointer for lock-free reads throughout the app lifetime.
type Config struct {
	Site      Site      `koanf:"site"`
	Listing   Listing   `koanf:"listing"`
	Cart      Cart      `koanf:"cart"`
	Ecommerce Ecommerce `koanf:"ecommerce"`
	Notify    Notify    `koanf:"notify"`
	Redirects Redirects `koanf:"redirects"`
	HTTP      HTTP      `koanf:"http"`
	Build     Build     `koanf:"build"`
	Theme     Theme     `koanf:"theme"`
	Paths     Paths     `koanf:"-"` // not loaded from config files
}
