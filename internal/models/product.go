package models

import "github.com/shopspring/decimal"

func init() {
	// Prices go over the wire as JSON numbers, matching the upstream catalog.
	decimal.MarshalJSONWithoutQuotes = true
}

// Product represents a catalog item as served by the upstream product API
type Product struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description,omitempty"`
	Category    string          `json:"category"`
	Image       string          `json:"image"`
	Rating      Rating          `json:"rating"`
}

// Rating is the aggregate customer rating of a product
type Rating struct {
	Rate  float64 `json:"rate"`
	Count int     `json:"count"`
}
