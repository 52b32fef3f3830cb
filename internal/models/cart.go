package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartItem is a product in the cart together with how many of it were added.
// Quantity is always at least 1.
type CartItem struct {
	Product
	Quantity int `json:"quantity"`
}

// LineTotal returns price × quantity for the item
func (i CartItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// CartLine is a cart item as rendered to clients
type CartLine struct {
	CartItem
	LineTotal decimal.Decimal `json:"lineTotal"`
}

// CartSummary is the cart view: its lines plus the derived totals
type CartSummary struct {
	Items     []CartLine      `json:"items"`
	ItemCount int             `json:"itemCount"`
	Total     decimal.Decimal `json:"total"`
}

// Order is the confirmation returned by a simulated checkout. It is not stored.
type Order struct {
	ID       string          `json:"id"`
	Items    []CartItem      `json:"items"`
	Total    decimal.Decimal `json:"total"`
	PlacedAt time.Time       `json:"placedAt"`
}
