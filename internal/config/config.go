package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
// Values come from defaults, then the optional YAML file named by CONFIG_FILE,
// then environment variables, each layer overriding the previous one.
type Config struct {
	Server   ServerConfig  `yaml:"server"`
	Catalog  CatalogConfig `yaml:"catalog"`
	CORS     CORSConfig    `yaml:"cors"`
	LogLevel string        `yaml:"logLevel"`
}

type ServerConfig struct {
	Port            string `yaml:"port"`
	Host            string `yaml:"host"`
	ReadTimeout     int    `yaml:"readTimeout"`
	WriteTimeout    int    `yaml:"writeTimeout"`
	ShutdownTimeout int    `yaml:"shutdownTimeout"`
}

// CatalogConfig points at the upstream product API. Timeout is in seconds.
type CatalogConfig struct {
	URL      string `yaml:"url"`
	Timeout  int    `yaml:"timeout"`
	PageSize int    `yaml:"pageSize"`
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowedOrigins"`
}

// Default returns the configuration used when nothing is overridden
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            "8080",
			Host:            "0.0.0.0",
			ReadTimeout:     15,
			WriteTimeout:    15,
			ShutdownTimeout: 30,
		},
		Catalog: CatalogConfig{
			URL:      "https://fakestoreapi.com/products",
			Timeout:  30,
			PageSize: 6,
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{"*"},
		},
		LogLevel: "info",
	}
}

// Load reads configuration from the optional config file and environment variables
func Load() (*Config, error) {
	cfg := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Server.Port = getEnv("PORT", c.Server.Port)
	c.Server.Host = getEnv("HOST", c.Server.Host)
	c.Server.ReadTimeout = getEnvAsInt("READ_TIMEOUT", c.Server.ReadTimeout)
	c.Server.WriteTimeout = getEnvAsInt("WRITE_TIMEOUT", c.Server.WriteTimeout)
	c.Server.ShutdownTimeout = getEnvAsInt("SHUTDOWN_TIMEOUT", c.Server.ShutdownTimeout)

	c.Catalog.URL = getEnv("CATALOG_URL", c.Catalog.URL)
	c.Catalog.Timeout = getEnvAsInt("CATALOG_TIMEOUT", c.Catalog.Timeout)
	c.Catalog.PageSize = getEnvAsInt("CATALOG_PAGE_SIZE", c.Catalog.PageSize)

	c.CORS.AllowedOrigins = getEnvAsSlice("CORS_ALLOWED_ORIGINS", c.CORS.AllowedOrigins)

	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	u, err := url.Parse(c.Catalog.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("CATALOG_URL must be an absolute http(s) URL: %q", c.Catalog.URL)
	}

	if c.Catalog.Timeout <= 0 {
		return fmt.Errorf("CATALOG_TIMEOUT must be positive, got %d", c.Catalog.Timeout)
	}

	if c.Catalog.PageSize <= 0 {
		return fmt.Errorf("CATALOG_PAGE_SIZE must be positive, got %d", c.Catalog.PageSize)
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	return nil
}

// Helper functions for reading environment variables

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	parts := strings.Split(valueStr, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
