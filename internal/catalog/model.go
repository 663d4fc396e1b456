// internal/catalog/model.go
//
// Item is the in-memory form of one product content file.  IDs are slugs
// derived from the source filename and must be unique within a collection.

package catalog

import "github.com/oakmoor/storefront/internal/attr"

// Item is one product as loaded from content.
type Item struct {
	ID          string
	Title       string
	Price       float64
	SKU         string
	ProductMode string
	Category    string
	Image       string
	Attributes  attr.Set
	Body        string
}

// frontmatter mirrors the YAML block at the top of a product file.  The
// attributes sequence keeps author order, which the parser relies on for
// last-wins duplicate handling.
type frontmatter struct {
	Title       string  `yaml:"title"`
	Price       float64 `yaml:"price"`
	SKU         string  `yaml:"sku"`
	ProductMode string  `yaml:"product_mode"`
	Category    string  `yaml:"category"`
	Image       string  `yaml:"image"`
	Attributes  []struct {
		Name  string `yaml:"name"`
		Value string `yaml:"value"`
	} `yaml:"attributes"`
}
