package service

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/Lixing-Zhang/storefront/internal/models"
	"github.com/Lixing-Zhang/storefront/internal/store"
	"github.com/google/uuid"
)

var ErrEmptyCart = errors.New("cart is empty")

// ProductLookup resolves a product id against the catalog
type ProductLookup interface {
	GetByID(ctx context.Context, id int64) (*models.Product, error)
}

// CartService routes cart operations into the store
type CartService struct {
	store    *store.Store
	products ProductLookup
	now      func() time.Time
}

// NewCartService creates a new cart service
func NewCartService(s *store.Store, products ProductLookup) *CartService {
	return &CartService{
		store:    s,
		products: products,
		now:      time.Now,
	}
}

// Cart returns the current cart with its derived totals
func (s *CartService) Cart() models.CartSummary {
	return Summarize(store.SelectCart(s.store.State()))
}

// AddItem adds one unit of the catalog product with the given id.
// Unknown products are rejected here, before anything is dispatched.
func (s *CartService) AddItem(ctx context.Context, productID int64) (models.CartSummary, error) {
	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return models.CartSummary{}, err
	}

	s.store.Dispatch(store.ItemAdded{Product: *product})
	return s.Cart(), nil
}

// RemoveItem drops the entry for id. Absent ids leave the cart unchanged.
func (s *CartService) RemoveItem(id int64) models.CartSummary {
	s.store.Dispatch(store.ItemRemoved{ID: id})
	return s.Cart()
}

// IncreaseQuantity adds one unit to the entry for id
func (s *CartService) IncreaseQuantity(id int64) models.CartSummary {
	s.store.Dispatch(store.QuantityIncreased{ID: id})
	return s.Cart()
}

// DecreaseQuantity removes one unit from the entry for id, never going below 1
func (s *CartService) DecreaseQuantity(id int64) models.CartSummary {
	s.store.Dispatch(store.QuantityDecreased{ID: id})
	return s.Cart()
}

// Clear empties the cart
func (s *CartService) Clear() models.CartSummary {
	s.store.Dispatch(store.CartCleared{})
	return s.Cart()
}

// Checkout simulates placing an order: it snapshots the cart into an Order
// and then clears the cart. Nothing is charged or stored.
func (s *CartService) Checkout(ctx context.Context) (*models.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cart := store.SelectCart(s.store.State())
	if len(cart.CartItems) == 0 {
		return nil, ErrEmptyCart
	}

	order := &models.Order{
		ID:       generateOrderID(),
		Items:    slices.Clone(cart.CartItems),
		Total:    cart.Total(),
		PlacedAt: s.now().UTC(),
	}

	s.store.Dispatch(store.CartCleared{})
	return order, nil
}

// Summarize renders a cart slice with line totals, unit count and total
func Summarize(cart store.CartState) models.CartSummary {
	lines := make([]models.CartLine, 0, len(cart.CartItems))
	for _, item := range cart.CartItems {
		lines = append(lines, models.CartLine{CartItem: item, LineTotal: item.LineTotal()})
	}
	return models.CartSummary{
		Items:     lines,
		ItemCount: cart.ItemCount(),
		Total:     cart.Total(),
	}
}

// generateOrderID generates a unique order ID using UUID
func generateOrderID() string {
	return uuid.New().String()
}
