package catalog

import (
	"context"
	"slices"

	"github.com/Lixing-Zhang/storefront/internal/models"
	"github.com/shopspring/decimal"
)

// StaticFetcher serves a fixed product list. It backs offline runs and tests.
type StaticFetcher struct {
	products []models.Product
}

// NewStaticFetcher returns a fetcher that always yields products.
// With no arguments it is seeded with SeedProducts.
func NewStaticFetcher(products ...models.Product) *StaticFetcher {
	if len(products) == 0 {
		products = SeedProducts()
	}
	return &StaticFetcher{products: products}
}

// FetchProducts returns a copy of the fixed list
func (f *StaticFetcher) FetchProducts(ctx context.Context) ([]models.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return slices.Clone(f.products), nil
}

// SeedProducts returns a small catalog in the upstream API's shape
func SeedProducts() []models.Product {
	return []models.Product{
		{ID: 1, Title: "Fjallraven Foldsack No. 1 Backpack", Price: decimal.RequireFromString("109.95"), Category: "men's clothing", Image: "https://fakestoreapi.com/img/81fPKd-2AYL._AC_SL1500_.jpg", Rating: models.Rating{Rate: 3.9, Count: 120}},
		{ID: 2, Title: "Mens Casual Premium Slim Fit T-Shirts", Price: decimal.RequireFromString("22.3"), Category: "men's clothing", Image: "https://fakestoreapi.com/img/71-3HjGNDUL._AC_SY879._SX._UX._SY._UY_.jpg", Rating: models.Rating{Rate: 4.1, Count: 259}},
		{ID: 3, Title: "John Hardy Women's Legends Naga Bracelet", Price: decimal.RequireFromString("695"), Category: "jewelery", Image: "https://fakestoreapi.com/img/71pWzhdJNwL._AC_UL640_QL65_ML3_.jpg", Rating: models.Rating{Rate: 4.6, Count: 400}},
		{ID: 4, Title: "Solid Gold Petite Micropave", Price: decimal.RequireFromString("168"), Category: "jewelery", Image: "https://fakestoreapi.com/img/61sbMiUnoGL._AC_UL640_QL65_ML3_.jpg", Rating: models.Rating{Rate: 3.9, Count: 70}},
		{ID: 5, Title: "WD 2TB Elements Portable External Hard Drive", Price: decimal.RequireFromString("64"), Category: "electronics", Image: "https://fakestoreapi.com/img/61IBBVJvSDL._AC_SY879_.jpg", Rating: models.Rating{Rate: 3.3, Count: 203}},
		{ID: 6, Title: "SanDisk SSD PLUS 1TB Internal SSD", Price: decimal.RequireFromString("109"), Category: "electronics", Image: "https://fakestoreapi.com/img/61U7T1koQqL._AC_SX679_.jpg", Rating: models.Rating{Rate: 2.9, Count: 470}},
		{ID: 7, Title: "BIYLACLESEN Women's 3-in-1 Snowboard Jacket", Price: decimal.RequireFromString("56.99"), Category: "women's clothing", Image: "https://fakestoreapi.com/img/51Y5NI-I5jL._AC_UX679_.jpg", Rating: models.Rating{Rate: 2.6, Count: 235}},
		{ID: 8, Title: "Opna Women's Short Sleeve Moisture", Price: decimal.RequireFromString("7.95"), Category: "women's clothing", Image: "https://fakestoreapi.com/img/51eg55uWmdL._AC_UX679_.jpg", Rating: models.Rating{Rate: 4.5, Count: 146}},
	}
}
