package store

import "github.com/Lixing-Zhang/storefront/internal/models"

// Action is a message dispatched into the store. Only the types in this file
// implement it.
type Action interface {
	actionName() string
}

// FetchRequested marks the start of a catalog fetch
type FetchRequested struct{}

// FetchSucceeded carries the product list of a completed fetch
type FetchSucceeded struct {
	Products []models.Product
}

// FetchFailed carries the error message of a failed fetch
type FetchFailed struct {
	Message string
}

// ItemAdded adds one unit of Product to the cart
type ItemAdded struct {
	Product models.Product
}

// ItemRemoved drops the cart entry for a product id
type ItemRemoved struct {
	ID int64
}

// QuantityIncreased adds one unit to an existing cart entry
type QuantityIncreased struct {
	ID int64
}

// QuantityDecreased removes one unit from an existing cart entry, never below 1
type QuantityDecreased struct {
	ID int64
}

// CartCleared empties the cart
type CartCleared struct{}

func (FetchRequested) actionName() string    { return "catalog/fetchRequested" }
func (FetchSucceeded) actionName() string    { return "catalog/fetchSucceeded" }
func (FetchFailed) actionName() string       { return "catalog/fetchFailed" }
func (ItemAdded) actionName() string         { return "cart/itemAdded" }
func (ItemRemoved) actionName() string       { return "cart/itemRemoved" }
func (QuantityIncreased) actionName() string { return "cart/quantityIncreased" }
func (QuantityDecreased) actionName() string { return "cart/quantityDecreased" }
func (CartCleared) actionName() string       { return "cart/cleared" }

// ActionName returns the namespaced name of a, e.g. "cart/itemAdded"
func ActionName(a Action) string {
	return a.actionName()
}
