package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Lixing-Zhang/storefront/internal/catalog"
	"github.com/Lixing-Zhang/storefront/internal/config"
	"github.com/Lixing-Zhang/storefront/internal/handlers"
	"github.com/Lixing-Zhang/storefront/internal/repository"
	"github.com/Lixing-Zhang/storefront/internal/service"
	"github.com/Lixing-Zhang/storefront/internal/store"
	"github.com/Lixing-Zhang/storefront/pkg/logger"
)

func main() {
	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	log.Info("starting storefront api server",
		"port", cfg.Server.Port,
		"host", cfg.Server.Host,
		"catalog_url", cfg.Catalog.URL,
		"log_level", cfg.LogLevel,
	)

	// Initialize the state container
	fetcher := catalog.NewHTTPFetcher(cfg.Catalog.URL, time.Duration(cfg.Catalog.Timeout)*time.Second)
	st := store.New(fetcher, log)
	st.Subscribe(func(a store.Action, s store.State) {
		log.Debug("store transition",
			"action", store.ActionName(a),
			"catalog_status", s.Catalog.Status,
			"cart_items", len(s.Cart.CartItems),
		)
	})

	// Warm the catalog; requests arriving before it resolves wait on the same fetch
	st.RequestFetch(context.Background())

	// Initialize repositories and services
	productRepo := repository.NewCatalogRepository(st)
	productService := service.NewProductService(productRepo, st, cfg.Catalog.PageSize)
	cartService := service.NewCartService(st, productRepo)

	// Initialize handlers
	router := handlers.NewRouter(handlers.RouterConfig{
		Health:         handlers.NewHealthHandler(productService, log),
		Products:       handlers.NewProductHandler(productService, log),
		Cart:           handlers.NewCartHandler(cartService, log),
		Logger:         log,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
	})

	// Create HTTP server
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}
