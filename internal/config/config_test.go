package config

import (
	"os"
	"path/filepath"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"CONFIG_FILE", "PORT", "HOST", "READ_TIMEOUT", "WRITE_TIMEOUT", "SHUTDOWN_TIMEOUT",
		"CATALOG_URL", "CATALOG_TIMEOUT", "CATALOG_PAGE_SIZE", "CORS_ALLOWED_ORIGINS", "LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("Port = %s, want 8080", cfg.Server.Port)
	}
	if cfg.Catalog.URL != "https://fakestoreapi.com/products" {
		t.Errorf("Catalog.URL = %s", cfg.Catalog.URL)
	}
	if cfg.Catalog.PageSize != 6 {
		t.Errorf("Catalog.PageSize = %d, want 6", cfg.Catalog.PageSize)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %s, want info", cfg.LogLevel)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("CATALOG_URL", "http://localhost:3000/products")
	t.Setenv("CATALOG_TIMEOUT", "5")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("Port = %s, want 9090", cfg.Server.Port)
	}
	if cfg.Catalog.URL != "http://localhost:3000/products" {
		t.Errorf("Catalog.URL = %s", cfg.Catalog.URL)
	}
	if cfg.Catalog.Timeout != 5 {
		t.Errorf("Catalog.Timeout = %d, want 5", cfg.Catalog.Timeout)
	}
	if len(cfg.CORS.AllowedOrigins) != 2 || cfg.CORS.AllowedOrigins[1] != "https://b.example" {
		t.Errorf("AllowedOrigins = %v", cfg.CORS.AllowedOrigins)
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "storefront.yaml")
	content := []byte(`
server:
  port: "7070"
catalog:
  url: http://catalog.internal/products
  pageSize: 12
logLevel: warn
`)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("LOG_LEVEL", "error")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if cfg.Server.Port != "7070" {
		t.Errorf("Port = %s, want 7070 from file", cfg.Server.Port)
	}
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Host = %s, want default 0.0.0.0", cfg.Server.Host)
	}
	if cfg.Catalog.PageSize != 12 {
		t.Errorf("PageSize = %d, want 12 from file", cfg.Catalog.PageSize)
	}
	if cfg.LogLevel != "error" {
		t.Errorf("LogLevel = %s, want error from env", cfg.LogLevel)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "bad log level", env: map[string]string{"LOG_LEVEL": "verbose"}},
		{name: "relative catalog url", env: map[string]string{"CATALOG_URL": "/products"}},
		{name: "zero catalog timeout", env: map[string]string{"CATALOG_TIMEOUT": "0"}},
		{name: "negative page size", env: map[string]string{"CATALOG_PAGE_SIZE": "-1"}},
		{name: "missing config file", env: map[string]string{"CONFIG_FILE": "/non/existent/storefront.yaml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			if _, err := Load(); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}
