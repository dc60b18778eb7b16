// Vastra - Ethnic Fashion Storefront Backend
// Copyright 2026 Vastra Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vastralabs/vastra

// Package config defines the application configuration and its layered
// loader. Precedence is ENV > config file > built-in defaults.
package config

import (
	"fmt"
	"time"

	"github.com/vastralabs/vastra/internal/catalog"
	"github.com/vastralabs/vastra/internal/recommend"
)

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig          `koanf:"server"`
	API       APIConfig             `koanf:"api"`
	Catalog   CatalogConfig         `koanf:"catalog"`
	Storage   StorageConfig         `koanf:"storage"`
	Analytics AnalyticsConfig       `koanf:"analytics"`
	Events    EventsConfig          `koanf:"events"`
	Security  SecurityConfig        `koanf:"security"`
	Logging   LoggingConfig         `koanf:"logging"`
	Recommend recommend.Config      `koanf:"recommend"`
	Fetcher   catalog.FetcherConfig `koanf:"fetcher"`
}

// ServerConfig tunes the HTTP listener.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	// Environment is "development" or "production". Production requires
	// explicit secrets.
	Environment string `koanf:"environment"`
}

// Addr returns the host:port listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// APIConfig tunes the public API surface.
type APIConfig struct {
	DefaultPageSize int `koanf:"default_page_size"`
	MaxPageSize     int `koanf:"max_page_size"`
}

// CatalogConfig controls catalog refresh.
type CatalogConfig struct {
	// RefreshInterval is how often the catalog is re-fetched. Zero
	// disables periodic refresh; the startup snapshot stays pinned.
	RefreshInterval time.Duration `koanf:"refresh_interval"`
}

// StorageConfig holds on-disk data paths. Empty paths select in-memory
// backends, which is the development default.
type StorageConfig struct {
	// InteractionsPath is the Badger directory for interaction history.
	InteractionsPath string `koanf:"interactions_path"`

	// SessionsPath is the Badger directory for cart and wishlist state.
	SessionsPath string `koanf:"sessions_path"`

	// GCInterval is how often Badger value-log GC runs.
	GCInterval time.Duration `koanf:"gc_interval"`
}

// AnalyticsConfig controls the analytics pipeline.
type AnalyticsConfig struct {
	// DuckDBPath is the analytics database file. Empty selects an
	// in-memory database.
	DuckDBPath string `koanf:"duckdb_path"`

	// RetentionDays bounds how long raw events are kept. Zero keeps
	// everything.
	RetentionDays int `koanf:"retention_days"`
}

// EventsConfig tunes the in-process event bus.
type EventsConfig struct {
	// BufferSize is the per-subscriber channel buffer.
	BufferSize int64 `koanf:"buffer_size"`

	// CloseTimeout bounds bus shutdown.
	CloseTimeout time.Duration `koanf:"close_timeout"`
}

// SecurityConfig holds authentication and rate limit settings.
type SecurityConfig struct {
	// JWTSecret signs admin session tokens. Required in production.
	JWTSecret string `koanf:"jwt_secret"`

	// TokenTTL is the admin token lifetime.
	TokenTTL time.Duration `koanf:"token_ttl"`

	// AdminUsername and AdminPasswordHash (bcrypt) gate the admin
	// analytics endpoints.
	AdminUsername     string `koanf:"admin_username"`
	AdminPasswordHash string `koanf:"admin_password_hash"`

	// RateLimitReqs requests per RateLimitWindow per client IP.
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`

	// CORSOrigins lists allowed CORS origins.
	CORSOrigins []string `koanf:"cors_origins"`
}

// LoggingConfig mirrors the logging package settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Validate checks the configuration for consistency. It is called after
// all layers are merged, so it sees the effective values.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535, got %d", c.Server.Port)
	}
	if c.Server.Environment != "development" && c.Server.Environment != "production" {
		return fmt.Errorf("server.environment must be development or production, got %q", c.Server.Environment)
	}
	if c.API.DefaultPageSize < 1 {
		return fmt.Errorf("api.default_page_size must be positive, got %d", c.API.DefaultPageSize)
	}
	if c.API.MaxPageSize < c.API.DefaultPageSize {
		return fmt.Errorf("api.max_page_size (%d) must be >= api.default_page_size (%d)",
			c.API.MaxPageSize, c.API.DefaultPageSize)
	}
	if c.Security.TokenTTL <= 0 {
		return fmt.Errorf("security.token_ttl must be positive, got %v", c.Security.TokenTTL)
	}
	if !c.Security.RateLimitDisabled {
		if c.Security.RateLimitReqs < 1 {
			return fmt.Errorf("security.rate_limit_reqs must be positive, got %d", c.Security.RateLimitReqs)
		}
		if c.Security.RateLimitWindow <= 0 {
			return fmt.Errorf("security.rate_limit_window must be positive, got %v", c.Security.RateLimitWindow)
		}
	}
	if c.Events.BufferSize < 0 {
		return fmt.Errorf("events.buffer_size must be >= 0, got %d", c.Events.BufferSize)
	}

	// Production hardening: refuse to start with no signing secret or no
	// admin credentials, and forbid wildcard CORS.
	if c.Server.Environment == "production" {
		if c.Security.JWTSecret == "" {
			return fmt.Errorf("security.jwt_secret is required in production")
		}
		if len(c.Security.JWTSecret) < 32 {
			return fmt.Errorf("security.jwt_secret must be at least 32 characters in production")
		}
		if c.Security.AdminUsername == "" || c.Security.AdminPasswordHash == "" {
			return fmt.Errorf("security.admin_username and security.admin_password_hash are required in production")
		}
		for _, origin := range c.Security.CORSOrigins {
			if origin == "*" {
				return fmt.Errorf("security.cors_origins must not contain \"*\" in production")
			}
		}
	}

	if err := c.Recommend.Validate(); err != nil {
		return fmt.Errorf("recommend: %w", err)
	}
	return nil
}
