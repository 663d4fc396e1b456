// internal/config/validator.go
//
// Thin wrapper around go-playground/validator plus cart-mode rules.
//
// Context
// -------
// `internal/config/loader.go` calls `validateStruct` immediately after it
// unmarshals the merged Koanf tree into a `Config` instance.  Any tag
// mismatch or validation error aborts startup, ensuring the binary never
// runs with partial, malformed, or missing configuration.
//
// Tag rules cover the simple shape checks (`required`, `url`,
// `hostname_port`).  The cart mode carries cross-field requirements that
// tags cannot express cleanly—buy needs an ecommerce host, enquiry needs a
// notify endpoint—so those live in `checkCartMode` with messages that name
// the missing field.
//
// Notes
// -----
//   • Oxford commas, two spaces after periods.
//   • Section dividers use the simple comment style requested.

package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

//
// validator instance (package-level singleton)
//

var v = validator.New()

//
// public API
//

// validateStruct returns the first validation error, or nil on success.
func validateStruct(c *Config) error {
	if err := v.Struct(c); err != nil {
		return err
	}
	return checkCartMode(c)
}

//
// cross-field rules
//

// checkCartMode enforces the mode's backing-service requirements.
func checkCartMode(c *Config) error {
	switch c.Cart.Mode {
	case CartModeBuy:
		if c.Ecommerce.Host == "" {
			return fmt.Errorf("config: cart.mode %q requires ecommerce.host", c.Cart.Mode)
		}
	case CartModeEnquiry:
		if c.Notify.Endpoint == "" {
			return fmt.Errorf("config: cart.mode %q requires notify.endpoint", c.Cart.Mode)
		}
	case CartModeOff:
		// No backing service needed.
	default:
		return fmt.Errorf("config: unknown cart.mode %q (want buy, enquiry, or off)", c.Cart.Mode)
	}
	return nil
}
