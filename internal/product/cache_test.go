package product

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

type fakeFetcher struct {
	calls int
	list  []Product
	err   error
}

func (f *fakeFetcher) Fetch(ctx context.Context) ([]Product, error) {
	f.calls++
	return f.list, f.err
}

func seed(t *testing.T, store Store, cachedAt time.Time, list []Product) {
	t.Helper()
	raw, err := json.Marshal(envelope{Data: list, CachedAt: cachedAt.UnixMilli()})
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Set(context.Background(), CacheKey, raw, 0); err != nil {
		t.Fatal(err)
	}
}

func TestCacheFreshHitSkipsFetch(t *testing.T) {
	now := time.Now()
	store := NewMemoryStore()
	seed(t, store, now.Add(-30*time.Minute), []Product{{SKU: "A", InStock: true}})

	f := &fakeFetcher{list: []Product{{SKU: "B"}}}
	c := NewCache(f, store, time.Hour)
	c.now = func() time.Time { return now }

	list, err := c.Products(context.Background())
	if err != nil {
		t.Fatalf("Products: %v", err)
	}
	if f.calls != 0 {
		t.Errorf("fetch calls = %d, want 0 (cache fresh)", f.calls)
	}
	if len(list) != 1 || list[0].SKU != "A" {
		t.Errorf("list = %+v, want cached [A]", list)
	}
}

func TestCacheStaleRefetches(t *testing.T) {
	now := time.Now()
	store := NewMemoryStore()
	seed(t, store, now.Add(-2*time.Hour), []Product{{SKU: "A"}})

	f := &fakeFetcher{list: []Product{{SKU: "B", InStock: true}}}
	c := NewCache(f, store, time.Hour)
	c.now = func() time.Time { return now }

	list, err := c.Products(context.Background())
	if err != nil {
		t.Fatalf("Products: %v", err)
	}
	if f.calls != 1 {
		t.Errorf("fetch calls = %d, want 1", f.calls)
	}
	if len(list) != 1 || list[0].SKU != "B" {
		t.Errorf("list = %+v, want fetched [B]", list)
	}

	// The refreshed envelope must now satisfy a second call.
	if _, err := c.Products(context.Background()); err != nil {
		t.Fatal(err)
	}
	if f.calls != 1 {
		t.Errorf("fetch calls after refresh = %d, want still 1", f.calls)
	}
}

func TestCacheCorruptEnvelopeRefetches(t *testing.T) {
	store := NewMemoryStore()
	if err := store.Set(context.Background(), CacheKey, []byte("{nope"), 0); err != nil {
		t.Fatal(err)
	}

	f := &fakeFetcher{list: []Product{{SKU: "B"}}}
	c := NewCache(f, store, time.Hour)

	if _, err := c.Products(context.Background()); err != nil {
		t.Fatalf("Products: %v", err)
	}
	if f.calls != 1 {
		t.Errorf("fetch calls = %d, want 1 (corrupt envelope is a miss)", f.calls)
	}
}

func TestCacheFetchFailurePropagates(t *testing.T) {
	sentinel := errors.New("down")
	f := &fakeFetcher{err: sentinel}
	c := NewCache(f, NewMemoryStore(), time.Hour)

	if _, err := c.Products(context.Background()); !errors.Is(err, sentinel) {
		t.Fatalf("err = %v, want %v", err, sentinel)
	}
}
