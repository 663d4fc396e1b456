package cart

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"github.com/oakmoor/storefront/internal/notify"
	"github.com/oakmoor/storefront/internal/product"
)

type fakeSource struct {
	calls int
	list  []product.Product
	err   error
}

func (f *fakeSource) Products(ctx context.Context) ([]product.Product, error) {
	f.calls++
	return f.list, f.err
}

// trackingStorage wraps MemoryStorage and counts writes.
type trackingStorage struct {
	*MemoryStorage
	writes int
}

func (s *trackingStorage) SetItem(key, value string) error {
	s.writes++
	return s.MemoryStorage.SetItem(key, value)
}

func newStorage(t *testing.T, items []Item) *trackingStorage {
	t.Helper()
	s := &trackingStorage{MemoryStorage: NewMemoryStorage()}
	if items != nil {
		raw, err := json.Marshal(items)
		if err != nil {
			t.Fatal(err)
		}
		if err := s.MemoryStorage.SetItem(StorageKey, string(raw)); err != nil {
			t.Fatal(err)
		}
	}
	return s
}

func buyItem(name, sku string, unitPrice float64) Item {
	return Item{ItemName: name, SKU: sku, Quantity: 1, UnitPrice: unitPrice, ProductMode: ModeBuy}
}

func storedCart(t *testing.T, s Storage) []Item {
	t.Helper()
	raw, ok := s.GetItem(StorageKey)
	if !ok {
		return nil
	}
	var cart []Item
	if err := json.Unmarshal([]byte(raw), &cart); err != nil {
		t.Fatalf("stored cart corrupt: %v", err)
	}
	return cart
}

func TestRunNoopWithoutBuyItems(t *testing.T) {
	s := newStorage(t, []Item{{ItemName: "Valuation", SKU: "VAL-1", ProductMode: ModeEnquiry}})
	src := &fakeSource{}

	res := New(s, src, nil).Run(context.Background())

	if src.calls != 0 {
		t.Errorf("product fetches = %d, want 0", src.calls)
	}
	if res.Changed || s.writes != 0 {
		t.Errorf("changed = %v writes = %d, want no-op", res.Changed, s.writes)
	}
}

func TestRunNoopWithoutProductSource(t *testing.T) {
	s := newStorage(t, []Item{buyItem("Oak Table", "OAK-1", 249.5)})

	res := New(s, nil, nil).Run(context.Background())

	if res.Changed || s.writes != 0 {
		t.Errorf("changed = %v writes = %d, want no-op without a configured host", res.Changed, s.writes)
	}
	if len(res.Cart) != 1 {
		t.Errorf("cart = %v, want untouched", res.Cart)
	}
}

func TestRunCorruptCartFailsSoft(t *testing.T) {
	s := &trackingStorage{MemoryStorage: NewMemoryStorage()}
	if err := s.MemoryStorage.SetItem(StorageKey, `{"not":"an array"`); err != nil {
		t.Fatal(err)
	}
	src := &fakeSource{}

	res := New(s, src, nil).Run(context.Background())

	if len(res.Cart) != 0 || res.Changed {
		t.Errorf("result = %+v, want empty no-op cart", res)
	}
	if src.calls != 0 {
		t.Errorf("fetches = %d, want 0 (empty cart has no buy items)", src.calls)
	}
}

func TestRunFetchFailureLeavesCartUntouched(t *testing.T) {
	before := []Item{buyItem("Oak Table", "OAK-1", 249.5)}
	s := newStorage(t, before)
	src := &fakeSource{err: errors.New("dial tcp: refused")}

	res := New(s, src, notify.New("")).Run(context.Background())

	if s.writes != 0 {
		t.Errorf("writes = %d, want 0 on fetch failure", s.writes)
	}
	if !reflect.DeepEqual(res.Cart, before) {
		t.Errorf("cart = %v, want untouched %v", res.Cart, before)
	}
	if len(res.Toasts) != 1 || res.Toasts[0].Level != notify.LevelError {
		t.Errorf("toasts = %v, want one error toast", res.Toasts)
	}
}

func TestRunRemovesMissingAndOutOfStock(t *testing.T) {
	s := newStorage(t, []Item{
		buyItem("Oak Table", "OAK-1", 249.5),
		buyItem("Gone Stool", "GONE-1", 30),
		buyItem("Sold Out Bench", "BENCH-1", 99),
		{ItemName: "Valuation", SKU: "VAL-1", ProductMode: ModeEnquiry},
	})
	src := &fakeSource{list: []product.Product{
		{SKU: "OAK-1", InStock: true, UnitPrice: 24950},
		{SKU: "BENCH-1", InStock: false, UnitPrice: 9900},
	}}

	res := New(s, src, nil).Run(context.Background())

	if !res.Changed {
		t.Fatal("want a persisted change")
	}
	var keptSKUs []string
	for _, it := range res.Cart {
		keptSKUs = append(keptSKUs, it.SKU)
	}
	if want := []string{"OAK-1", "VAL-1"}; !reflect.DeepEqual(keptSKUs, want) {
		t.Errorf("kept = %v, want %v", keptSKUs, want)
	}
	if len(res.Removed) != 2 {
		t.Fatalf("removed = %v, want 2 items", res.Removed)
	}
	// One toast per removed item, naming it.
	if len(res.Toasts) != 2 {
		t.Fatalf("toasts = %v, want 2", res.Toasts)
	}
	if res.Toasts[0].Message != "Gone Stool is no longer available and was removed from your basket." {
		t.Errorf("toast = %q", res.Toasts[0].Message)
	}
	// The persisted cart matches the returned one.
	if got := storedCart(t, s); !reflect.DeepEqual(got, res.Cart) {
		t.Errorf("stored = %v, returned = %v", got, res.Cart)
	}
}

func TestRunPriceOnlyChangePersistsSilently(t *testing.T) {
	s := newStorage(t, []Item{buyItem("Oak Table", "OAK-1", 240)})
	src := &fakeSource{list: []product.Product{{SKU: "OAK-1", InStock: true, UnitPrice: 24950}}}

	res := New(s, src, nil).Run(context.Background())

	if !res.Changed || s.writes != 1 {
		t.Fatalf("changed = %v writes = %d, want persisted once", res.Changed, s.writes)
	}
	if len(res.Toasts) != 0 {
		t.Errorf("toasts = %v, want none for a silent price update", res.Toasts)
	}
	if res.Cart[0].UnitPrice != 249.5 {
		t.Errorf("unit price = %v, want 249.5 (pence/100)", res.Cart[0].UnitPrice)
	}
}

func TestRunNoChangeNoWrite(t *testing.T) {
	s := newStorage(t, []Item{buyItem("Oak Table", "OAK-1", 249.5)})
	src := &fakeSource{list: []product.Product{{SKU: "OAK-1", InStock: true, UnitPrice: 24950}}}

	res := New(s, src, nil).Run(context.Background())

	if res.Changed || s.writes != 0 {
		t.Errorf("changed = %v writes = %d, want no storage churn", res.Changed, s.writes)
	}
}

func TestValidateIsPure(t *testing.T) {
	cartItems := []Item{
		buyItem("Oak Table", "OAK-1", 240),
		buyItem("Gone Stool", "GONE-1", 30),
	}
	list := []product.Product{{SKU: "OAK-1", InStock: true, UnitPrice: 24950}}

	kept, removed, priceChanged := Validate(cartItems, list)

	if len(kept) != 1 || kept[0].SKU != "OAK-1" || kept[0].UnitPrice != 249.5 {
		t.Errorf("kept = %+v", kept)
	}
	if len(removed) != 1 || removed[0].SKU != "GONE-1" {
		t.Errorf("removed = %+v", removed)
	}
	if !priceChanged {
		t.Error("priceChanged = false, want true")
	}
	// Inputs untouched.
	if cartItems[0].UnitPrice != 240 {
		t.Errorf("input mutated: %v", cartItems[0].UnitPrice)
	}
}

func TestValidateEmptyProductList(t *testing.T) {
	kept, removed, _ := Validate([]Item{buyItem("Oak Table", "OAK-1", 240)}, nil)
	if len(kept) != 0 || len(removed) != 1 {
		t.Errorf("kept = %v removed = %v, want all buy items removed", kept, removed)
	}
}
