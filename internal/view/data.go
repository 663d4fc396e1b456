// internal/view/data.go
//
// Payload structs handed to theme templates.  Build mode and serve mode
// assemble the same ListingPage, so a page rendered to disk and the same
// page rendered on demand are byte-identical.

package view

import (
	"github.com/oakmoor/storefront/internal/filterui"
	"github.com/oakmoor/storefront/internal/head"
	"github.com/oakmoor/storefront/internal/listing"
	"github.com/oakmoor/storefront/internal/pages"
)

// Site carries the handful of site-wide fields templates need.
type Site struct {
	Title   string
	BaseURL string
}

// ListingPage is the template payload for one filter-permutation page.
//
// Visible holds entries in display order after filtering and sorting;
// templates range over .Visible.Entries.  CartMode tells the layout
// whether to render buy buttons, enquiry buttons, or neither.
type ListingPage struct {
	Site     Site
	Head     *head.Builder
	Page     pages.Page
	Filters  filterui.Data
	Visible  *listing.List
	CartMode string
}
