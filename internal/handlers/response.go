package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Lixing-Zhang/storefront/internal/repository"
	"github.com/Lixing-Zhang/storefront/internal/service"
	"github.com/go-chi/chi/v5"
)

const msgInvalidID = "Invalid ID supplied"

// WriteJSON writes a JSON response
func WriteJSON(w http.ResponseWriter, status int, data interface{}, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode JSON response", "error", err)
	}
}

// WriteError writes an error response in JSON format
func WriteError(w http.ResponseWriter, status int, message string, logger *slog.Logger) {
	WriteJSON(w, status, map[string]string{"error": message}, logger)
}

// writeServiceError maps service and repository errors to HTTP responses.
// A failed catalog surfaces its upstream error message verbatim.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, logger *slog.Logger) {
	switch {
	case errors.Is(err, repository.ErrProductNotFound):
		WriteError(w, http.StatusNotFound, "Product not found", logger)
	case errors.Is(err, repository.ErrCatalogUnavailable):
		logger.Warn("catalog unavailable", "path", r.URL.Path, "error", err)
		WriteError(w, http.StatusBadGateway, err.Error(), logger)
	case errors.Is(err, repository.ErrCatalogLoading):
		w.Header().Set("Retry-After", "1")
		WriteError(w, http.StatusServiceUnavailable, "Catalog is still loading", logger)
	case errors.Is(err, service.ErrInvalidSort):
		WriteError(w, http.StatusBadRequest, "Invalid sort criteria", logger)
	case errors.Is(err, service.ErrEmptyCart):
		WriteError(w, http.StatusBadRequest, "Cart is empty", logger)
	default:
		logger.Error("request failed", "path", r.URL.Path, "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", logger)
	}
}

// productIDParam reads a positive integer product id from the named route parameter
func productIDParam(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// pathParam returns the unescaped value of a route parameter
func pathParam(r *http.Request, name string) string {
	raw := chi.URLParam(r, name)
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}
