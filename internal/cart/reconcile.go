// internal/cart/reconcile.go
//
// Cart reconciliation.
//
// One linear pass per run, no retries, no partial failure states:
//
//   1. Load the cart.  Corrupt JSON fails soft to an empty cart.
//   2. No buy-mode items, or no product source configured → no-op.
//   3. Get the product list through the TTL cache.
//   4. Fetch failure → diagnostic event + one error toast, cart untouched.
//   5. Success → drop buy items whose SKU is missing or out of stock,
//      correct unit prices from the authoritative pence value.
//   6. Removals persist with one toast per removed item.  Price-only
//      changes persist silently.  No change, no write.
//
// The pass never raises an error to its caller; failures end inside the
// pass as toasts, log lines, and diagnostics.

package cart

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/oakmoor/storefront/internal/metrics"
	"github.com/oakmoor/storefront/internal/notify"
	"github.com/oakmoor/storefront/internal/price"
	"github.com/oakmoor/storefront/internal/product"
)

// ProductSource yields the authoritative product list.  *product.Cache
// satisfies it.
type ProductSource interface {
	Products(ctx context.Context) ([]product.Product, error)
}

// Reconciler runs validation passes over one Storage.
type Reconciler struct {
	storage  Storage
	products ProductSource
	notifier *notify.Notifier
}

// New builds a Reconciler.  A nil products source disables validation (the
// no-ecommerce-host case); a nil notifier drops diagnostics.
func New(storage Storage, products ProductSource, notifier *notify.Notifier) *Reconciler {
	return &Reconciler{storage: storage, products: products, notifier: notifier}
}

// Result is what one pass did.
type Result struct {
	Cart    []Item         `json:"cart"`
	Removed []Item         `json:"removed,omitempty"`
	Changed bool           `json:"changed"`
	Toasts  []notify.Toast `json:"toasts,omitempty"`
}

// Run executes one reconciliation pass.
func (r *Reconciler) Run(ctx context.Context) Result {
	cart := r.load()
	res := Result{Cart: cart}

	if !hasBuyItems(cart) || r.products == nil {
		return res
	}

	list, err := r.products.Products(ctx)
	if err != nil {
		r.notifier.Send("cart.products_unreachable", "product list fetch failed during cart validation", err.Error())
		res.Toasts = append(res.Toasts, notify.Error("We could not check current stock.  Your basket is unchanged."))
		return res
	}

	kept, removed, priceChanged := Validate(cart, list)
	res.Cart = kept
	res.Removed = removed

	switch {
	case len(removed) > 0:
		r.persist(kept)
		res.Changed = true
		for _, it := range removed {
			res.Toasts = append(res.Toasts, notify.Info(fmt.Sprintf("%s is no longer available and was removed from your basket.", it.ItemName)))
		}
		metrics.CartItemsRemovedTotal.Add(float64(len(removed)))
	case priceChanged:
		r.persist(kept)
		res.Changed = true
		metrics.CartPriceUpdatesTotal.Inc()
	default:
		// No write.  Identical carts must not churn storage.
	}

	metrics.CartsReconciledTotal.Inc()
	return res
}

// Validate applies the authoritative list to a cart.  Pure: no storage, no
// network, inputs untouched.  Non-buy items pass through as-is.  Returns
// the surviving cart, the removed items, and whether any unit price moved.
func Validate(cartItems []Item, list []product.Product) (kept, removed []Item, priceChanged bool) {
	bySKU := make(map[string]product.Product, len(list))
	for _, p := range list {
		bySKU[p.SKU] = p
	}

	kept = make([]Item, 0, len(cartItems))
	for _, it := range cartItems {
		if it.ProductMode != ModeBuy {
			kept = append(kept, it)
			continue
		}
		p, ok := bySKU[it.SKU]
		if !ok || !p.InStock {
			removed = append(removed, it)
			continue
		}
		if authoritative := price.FromPence(p.UnitPrice); it.UnitPrice != authoritative {
			it.UnitPrice = authoritative
			priceChanged = true
		}
		kept = append(kept, it)
	}
	return kept, removed, priceChanged
}

func hasBuyItems(cart []Item) bool {
	for _, it := range cart {
		if it.ProductMode == ModeBuy {
			return true
		}
	}
	return false
}

func (r *Reconciler) load() []Item {
	if r.storage == nil {
		return nil
	}
	raw, ok := r.storage.GetItem(StorageKey)
	if !ok || raw == "" {
		return nil
	}
	var cart []Item
	if err := json.Unmarshal([]byte(raw), &cart); err != nil {
		zap.L().Warn("cart: corrupt stored cart, starting empty", zap.Error(err))
		return nil
	}
	return cart
}

func (r *Reconciler) persist(cart []Item) {
	if r.storage == nil {
		return
	}
	raw, err := json.Marshal(cart)
	if err != nil {
		zap.L().Error("cart: marshal failed", zap.Error(err))
		return
	}
	if err := r.storage.SetItem(StorageKey, string(raw)); err != nil {
		zap.L().Error("cart: persist failed", zap.Error(err))
	}
}
