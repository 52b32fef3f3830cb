package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Lixing-Zhang/storefront/internal/catalog"
	"github.com/Lixing-Zhang/storefront/internal/repository"
	"github.com/Lixing-Zhang/storefront/internal/service"
	"github.com/Lixing-Zhang/storefront/internal/store"
	"github.com/Lixing-Zhang/storefront/pkg/logger"
)

// newTestRouter wires the full API over a store backed by f
func newTestRouter(t *testing.T, f catalog.Fetcher) http.Handler {
	t.Helper()

	log := logger.NewWithWriter(io.Discard, "error")
	s := store.New(f, log)
	repo := repository.NewCatalogRepository(s)
	productService := service.NewProductService(repo, s, 0)
	cartService := service.NewCartService(s, repo)

	return NewRouter(RouterConfig{
		Health:         NewHealthHandler(productService, log),
		Products:       NewProductHandler(productService, log),
		Cart:           NewCartHandler(cartService, log),
		Logger:         log,
		AllowedOrigins: []string{"*"},
	})
}

func do(t *testing.T, h http.Handler, method, target string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("failed to marshal request: %v", err)
		}
		r = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, target, r)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
}
