// Package catalog talks to the upstream product API.
package catalog

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Lixing-Zhang/storefront/internal/models"
)

// DefaultURL is the public product listing endpoint
const DefaultURL = "https://fakestoreapi.com/products"

// Fetcher retrieves the full product listing
type Fetcher interface {
	FetchProducts(ctx context.Context) ([]models.Product, error)
}

// FetchResult is the outcome of one fetch: either Products or Err is meaningful
type FetchResult struct {
	Products []models.Product
	Err      error
}

// Succeeded reports whether the fetch produced a product list
func (r FetchResult) Succeeded() bool {
	return r.Err == nil
}

// Fetch runs f once and wraps the outcome as a FetchResult
func Fetch(ctx context.Context, f Fetcher) FetchResult {
	products, err := f.FetchProducts(ctx)
	if err != nil {
		return FetchResult{Err: err}
	}
	return FetchResult{Products: products}
}

// HTTPFetcher fetches products with a single GET against a fixed URL
type HTTPFetcher struct {
	url    string
	client *http.Client
}

// NewHTTPFetcher creates a fetcher for url. A zero timeout falls back to 30s.
func NewHTTPFetcher(url string, timeout time.Duration) *HTTPFetcher {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPFetcher{
		url: url,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// FetchProducts downloads and validates the product listing
func (f *HTTPFetcher) FetchProducts(ctx context.Context) ([]models.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Code: resp.StatusCode}
	}

	return DecodeProducts(resp.Body)
}
