package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/Lixing-Zhang/storefront/internal/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// RouterConfig carries everything NewRouter wires together
type RouterConfig struct {
	Health         *HealthHandler
	Products       *ProductHandler
	Cart           *CartHandler
	Logger         *slog.Logger
	AllowedOrigins []string
}

// NewRouter builds the HTTP API
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"Retry-After"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", cfg.Health.ServeHTTP)

	r.Route("/api", func(r chi.Router) {
		// Catalog views
		r.Get("/products", cfg.Products.ListProducts)
		r.Get("/categories", cfg.Products.Categories)
		r.Get("/category/{category}", cfg.Products.ListByCategory)
		r.Get("/product/{productId}", cfg.Products.GetProduct)
		r.Get("/catalog/status", cfg.Products.CatalogStatus)
		r.Post("/catalog/refresh", cfg.Products.RefreshCatalog)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cfg.Cart.GetCart)
			r.Delete("/", cfg.Cart.ClearCart)
			r.Post("/items", cfg.Cart.AddItem)
			r.Delete("/items/{productId}", cfg.Cart.RemoveItem)
			r.Post("/items/{productId}/increase", cfg.Cart.IncreaseQuantity)
			r.Post("/items/{productId}/decrease", cfg.Cart.DecreaseQuantity)
			r.Post("/checkout", cfg.Cart.Checkout)
		})
	})

	return r
}
