// internal/product/client.go
//
// Products API client.
//
// The ecommerce backend exposes one unauthenticated read endpoint,
// GET https://{host}/api/products, returning the authoritative stock and
// price list.  Prices arrive in integer pence.  Every failure mode (DNS,
// refused connection, non-200, unparsable body) collapses into
// ErrUnreachable; callers only ever branch on reachable or not.

package product

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrUnreachable wraps every transport or status failure from the API.
var ErrUnreachable = errors.New("product: api unreachable")

// Product is one row of the authoritative product list.
type Product struct {
	SKU       string `json:"sku"`
	InStock   bool   `json:"in_stock"`
	UnitPrice int64  `json:"unit_price"` // pence
}

// Client fetches the product list from one configured host.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a client for host ("shop.example.com", scheme optional).
func NewClient(host string, timeout time.Duration) *Client {
	base := host
	if base != "" && !strings.Contains(base, "://") {
		base = "https://" + base
	}
	return &Client{
		baseURL: strings.TrimRight(base, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// Fetch retrieves the full product list.
func (c *Client) Fetch(ctx context.Context) ([]Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/products", nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: status %d", ErrUnreachable, resp.StatusCode)
	}

	var list []Product
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrUnreachable, err)
	}
	return list, nil
}
