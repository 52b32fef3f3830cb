package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Lixing-Zhang/storefront/internal/models"
	"github.com/Lixing-Zhang/storefront/internal/store"
)

var (
	ErrProductNotFound    = errors.New("product not found")
	ErrCatalogLoading     = errors.New("catalog is still loading")
	ErrCatalogUnavailable = errors.New("catalog unavailable")
)

// ProductRepository defines the interface for product data access
type ProductRepository interface {
	GetAll(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id int64) (*models.Product, error)
}

// CatalogRepository reads products from the store's catalog slice.
// It requests the catalog the first time it is needed and never refetches on its own.
type CatalogRepository struct {
	store *store.Store
}

// NewCatalogRepository creates a repository backed by s
func NewCatalogRepository(s *store.Store) *CatalogRepository {
	return &CatalogRepository{
		store: s,
	}
}

// GetAll returns all products in upstream order.
// A failed catalog that still holds products from an earlier fetch serves them.
func (r *CatalogRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	if _, err := r.store.Fetch(ctx, store.FetchIfIdle).Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCatalogLoading, err)
	}

	cat := store.SelectCatalog(r.store.State())
	switch cat.Status {
	case store.StatusSucceeded:
		return cat.Products, nil
	case store.StatusFailed:
		if len(cat.Products) > 0 {
			return cat.Products, nil
		}
		return nil, fmt.Errorf("%w: %s", ErrCatalogUnavailable, cat.Error)
	default:
		// A refresh started after our wait resolved.
		return nil, ErrCatalogLoading
	}
}

// GetByID returns a product by its ID
func (r *CatalogRepository) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	products, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	for _, p := range products {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, ErrProductNotFound
}
