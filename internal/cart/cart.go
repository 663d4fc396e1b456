// internal/cart/cart.go
//
// Cart model and storage boundary.
//
// The cart is one JSON array under the "shopping_cart" key, the exact shape
// the storefront script keeps in browser local storage.  Storage is an
// injected interface with the same surface as local storage, so the
// reconciler runs identically over an in-memory map, a JSON file on disk,
// or a cart posted to the validation endpoint.

package cart

// StorageKey is where the cart array lives.
const StorageKey = "shopping_cart"

// Product modes carried on cart items.
const (
	ModeBuy     = "buy"
	ModeEnquiry = "enquiry"
)

// Item is one cart line.  Prices are pounds.
type Item struct {
	ItemName    string  `json:"item_name"`
	SKU         string  `json:"sku"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	MaxQuantity int     `json:"max_quantity,omitempty"`
	ProductMode string  `json:"product_mode"`
}

// Storage is the persistence behind the cart: string keys to string values,
// local-storage shaped.  GetItem reports presence; SetItem may fail.
type Storage interface {
	GetItem(key string) (string, bool)
	SetItem(key, value string) error
}
