package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/Lixing-Zhang/storefront/internal/service"
	"github.com/Lixing-Zhang/storefront/internal/store"
)


// ProductHandler handles product-related HTTP requests
type ProductHandler struct {
	service *service.ProductService
	logger  *slog.Logger
}

// NewProductHandler creates a new product handler
func NewProductHandler(service *service.ProductService, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger,
	}
}

// CatalogStatusResponse describes the catalog fetch lifecycle
type CatalogStatusResponse struct {
	Status       store.Status `json:"status"`
	Error        string       `json:"error,omitempty"`
	ProductCount int          `json:"productCount"`
}

// ListProducts handles GET /api/products
// Query: sort=name|price|rating, page (1-based), pageSize
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, "")
}

// ListByCategory handles GET /api/category/{category}
func (h *ProductHandler) ListByCategory(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, pathParam(r, "category"))
}

func (h *ProductHandler) list(w http.ResponseWriter, r *http.Request, category string) {
	q, msg := parseListQuery(r)
	if msg != "" {
		WriteError(w, http.StatusBadRequest, msg, h.logger)
		return
	}
	q.Category = category

	page, err := h.service.ListProducts(r.Context(), q)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, page, h.logger)
}

func parseListQuery(r *http.Request) (service.ListQuery, string) {
	values := r.URL.Query()

	sort, err := service.ParseSortKey(values.Get("sort"))
	if err != nil {
		return service.ListQuery{}, "Invalid sort criteria"
	}
	q := service.ListQuery{Sort: sort}

	if v := values.Get("page"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil || page < 1 {
			return service.ListQuery{}, "Invalid page"
		}
		q.Page = page
	}

	if v := values.Get("pageSize"); v != "" {
		size, err := strconv.Atoi(v)
		if err != nil || size < 1 || size > service.MaxPageSize {
			return service.ListQuery{}, "Invalid page size"
		}
		q.PageSize = size
	}

	return q, ""
}

// Categories handles GET /api/categories
func (h *ProductHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.Categories(r.Context())
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, categories, h.logger)
}

// GetProduct handles GET /api/product/{productId}
// - 200: successful operation
// - 400: Invalid ID supplied
// - 404: Product not found
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	productID, ok := productIDParam(r, "productId")
	if !ok {
		h.logger.Warn("invalid product ID format", "productId", pathParam(r, "productId"))
		WriteError(w, http.StatusBadRequest, msgInvalidID, h.logger)
		return
	}

	product, err := h.service.GetProduct(r.Context(), productID)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, product, h.logger)
}

// CatalogStatus handles GET /api/catalog/status. It never triggers a fetch.
func (h *ProductHandler) CatalogStatus(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, statusResponse(h.service.Status()), h.logger)
}

// RefreshCatalog handles POST /api/catalog/refresh
func (h *ProductHandler) RefreshCatalog(w http.ResponseWriter, r *http.Request) {
	cat, err := h.service.Refresh(r.Context())
	if err != nil {
		// The fetch keeps running; report where it stands.
		WriteJSON(w, http.StatusAccepted, statusResponse(cat), h.logger)
		return
	}

	h.logger.Info("catalog refreshed", "status", cat.Status, "products", len(cat.Products))
	WriteJSON(w, http.StatusOK, statusResponse(cat), h.logger)
}

func statusResponse(cat store.CatalogState) CatalogStatusResponse {
	return CatalogStatusResponse{
		Status:       cat.Status,
		Error:        cat.Error,
		ProductCount: len(cat.Products),
	}
}
