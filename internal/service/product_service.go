package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/Lixing-Zhang/storefront/internal/models"
	"github.com/Lixing-Zhang/storefront/internal/repository"
	"github.com/Lixing-Zhang/storefront/internal/store"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

const (
	// DefaultPageSize matches the storefront's product grid
	DefaultPageSize = 6
	// MaxPageSize bounds a single page request
	MaxPageSize = 100
)

var ErrInvalidSort = errors.New("invalid sort criteria")

// SortKey selects the product ordering
type SortKey string

const (
	SortByName   SortKey = "name"
	SortByPrice  SortKey = "price"
	SortByRating SortKey = "rating"
)

// ParseSortKey maps a query value to a SortKey. Empty means by name.
func ParseSortKey(v string) (SortKey, error) {
	switch k := SortKey(strings.ToLower(strings.TrimSpace(v))); k {
	case "":
		return SortByName, nil
	case SortByName, SortByPrice, SortByRating:
		return k, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidSort, v)
	}
}

// ListQuery describes one page of the product listing
type ListQuery struct {
	Category string
	Sort     SortKey
	Page     int
	PageSize int
}

// ProductPage is one page of a sorted, optionally filtered listing
type ProductPage struct {
	Products   []models.Product `json:"products"`
	Category   string           `json:"category,omitempty"`
	Sort       SortKey          `json:"sort"`
	Page       int              `json:"page"`
	PageSize   int              `json:"pageSize"`
	TotalItems int              `json:"totalItems"`
	TotalPages int              `json:"totalPages"`
}

// ProductService handles business logic for products
type ProductService struct {
	repo     repository.ProductRepository
	store    *store.Store
	pageSize int
}

// NewProductService creates a new product service. pageSize <= 0 uses DefaultPageSize.
func NewProductService(repo repository.ProductRepository, s *store.Store, pageSize int) *ProductService {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &ProductService{
		repo:     repo,
		store:    s,
		pageSize: pageSize,
	}
}

// ListProducts returns one page of products, filtered by category when set
func (s *ProductService) ListProducts(ctx context.Context, q ListQuery) (*ProductPage, error) {
	products, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	if q.Category != "" {
		products = FilterByCategory(products, q.Category)
	}
	if q.Sort == "" {
		q.Sort = SortByName
	}
	products, err = SortProducts(products, q.Sort)
	if err != nil {
		return nil, err
	}

	size := q.PageSize
	if size <= 0 {
		size = s.pageSize
	}
	size = min(size, MaxPageSize)
	page := max(q.Page, 1)

	return &ProductPage{
		Products:   Paginate(products, page, size),
		Category:   q.Category,
		Sort:       q.Sort,
		Page:       page,
		PageSize:   size,
		TotalItems: len(products),
		TotalPages: (len(products) + size - 1) / size,
	}, nil
}

// Categories returns the distinct categories in first-seen order
func (s *ProductService) Categories(ctx context.Context) ([]string, error) {
	products, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	categories := []string{}
	for _, p := range products {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		categories = append(categories, p.Category)
	}
	return categories, nil
}

// GetProduct returns a product by ID
func (s *ProductService) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// Status returns the catalog slice without triggering a fetch
func (s *ProductService) Status() store.CatalogState {
	return store.SelectCatalog(s.store.State())
}

// Refresh re-requests the catalog and waits for the outcome or ctx
func (s *ProductService) Refresh(ctx context.Context) (store.CatalogState, error) {
	if _, err := s.store.RequestFetch(ctx).Wait(ctx); err != nil {
		return s.Status(), fmt.Errorf("%w: %w", repository.ErrCatalogLoading, err)
	}
	return s.Status(), nil
}

// FilterByCategory keeps products whose category matches exactly, in order
func FilterByCategory(products []models.Product, category string) []models.Product {
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

// SortProducts returns a sorted copy. Ties keep their upstream order.
func SortProducts(products []models.Product, key SortKey) ([]models.Product, error) {
	var cmp func(a, b models.Product) int

	switch key {
	case SortByName:
		// Collators keep internal buffers, so each sort gets its own.
		c := collate.New(language.AmericanEnglish)
		cmp = func(a, b models.Product) int { return c.CompareString(a.Title, b.Title) }
	case SortByPrice:
		cmp = func(a, b models.Product) int { return a.Price.Cmp(b.Price) }
	case SortByRating:
		cmp = func(a, b models.Product) int {
			switch {
			case a.Rating.Rate > b.Rating.Rate:
				return -1
			case a.Rating.Rate < b.Rating.Rate:
				return 1
			}
			return 0
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidSort, key)
	}

	sorted := slices.Clone(products)
	slices.SortStableFunc(sorted, cmp)
	return sorted, nil
}

// Paginate returns the 1-based page of size items. Out-of-range pages are empty.
func Paginate(products []models.Product, page, size int) []models.Product {
	if page < 1 || size <= 0 || page-1 >= (len(products)+size-1)/size {
		return []models.Product{}
	}
	start := (page - 1) * size
	end := min(start+size, len(products))
	return products[start:end]
}
