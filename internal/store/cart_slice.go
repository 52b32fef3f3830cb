package store

import (
	"slices"

	"github.com/Lixing-Zhang/storefront/internal/models"
	"github.com/shopspring/decimal"
)

// CartState holds the cart entries in insertion order. Product ids are unique.
type CartState struct {
	CartItems []models.CartItem `json:"cartItems"`
}

func initialCart() CartState {
	return CartState{CartItems: []models.CartItem{}}
}

// ReduceCart applies a cart action. Unknown ids are no-ops, never errors.
func ReduceCart(s CartState, a Action) CartState {
	switch a := a.(type) {
	case ItemAdded:
		i := s.indexOf(a.Product.ID)
		if i < 0 {
			items := make([]models.CartItem, len(s.CartItems), len(s.CartItems)+1)
			copy(items, s.CartItems)
			s.CartItems = append(items, models.CartItem{Product: a.Product, Quantity: 1})
			return s
		}
		return s.withQuantity(i, s.CartItems[i].Quantity+1)

	case ItemRemoved:
		i := s.indexOf(a.ID)
		if i < 0 {
			return s
		}
		s.CartItems = slices.Delete(slices.Clone(s.CartItems), i, i+1)

	case QuantityIncreased:
		if i := s.indexOf(a.ID); i >= 0 {
			return s.withQuantity(i, s.CartItems[i].Quantity+1)
		}

	case QuantityDecreased:
		if i := s.indexOf(a.ID); i >= 0 && s.CartItems[i].Quantity > 1 {
			return s.withQuantity(i, s.CartItems[i].Quantity-1)
		}

	case CartCleared:
		s.CartItems = []models.CartItem{}
	}
	return s
}

func (s CartState) indexOf(id int64) int {
	return slices.IndexFunc(s.CartItems, func(item models.CartItem) bool {
		return item.ID == id
	})
}

func (s CartState) withQuantity(i, qty int) CartState {
	s.CartItems = slices.Clone(s.CartItems)
	s.CartItems[i].Quantity = qty
	return s
}

// Total is the sum of price × quantity over all entries
func (s CartState) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range s.CartItems {
		total = total.Add(item.LineTotal())
	}
	return total
}

// ItemCount is the number of units in the cart
func (s CartState) ItemCount() int {
	n := 0
	for _, item := range s.CartItems {
		n += item.Quantity
	}
	return n
}

// Find returns the entry for id
func (s CartState) Find(id int64) (models.CartItem, bool) {
	if i := s.indexOf(id); i >= 0 {
		return s.CartItems[i], true
	}
	return models.CartItem{}, false
}
