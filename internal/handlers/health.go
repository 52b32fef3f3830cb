package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/Lixing-Zhang/storefront/internal/store"
)

type catalogStatuser interface {
	Status() store.CatalogState
}

// HealthHandler provides health check endpoint
type HealthHandler struct {
	catalog catalogStatuser
	logger  *slog.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(catalog catalogStatuser, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		catalog: catalog,
		logger:  logger,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string       `json:"status"`
	Catalog   store.Status `json:"catalog"`
	Timestamp time.Time    `json:"timestamp"`
	Version   string       `json:"version"`
}

// ServeHTTP handles health check requests. The process is healthy even when
// the upstream catalog is failing; the catalog field reports that separately.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:    "healthy",
		Catalog:   h.catalog.Status().Status,
		Timestamp: time.Now().UTC(),
		Version:   "1.0.0",
	}

	WriteJSON(w, http.StatusOK, response, h.logger)
}
