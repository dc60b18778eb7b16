// Vastra - Ethnic Fashion Storefront Backend
// Copyright 2026 Vastra Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vastralabs/vastra

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/vastralabs/vastra/internal/catalog"
	"github.com/vastralabs/vastra/internal/recommend"
)

// DefaultConfigPaths lists where config files are searched, in order.
// The first file found wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/vastra/config.yaml",
	"/etc/vastra/config.yml",
}

// ConfigPathEnvVar overrides the config file search path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns the built-in defaults. These are applied first,
// then overridden by the config file and environment variables.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8470,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 20 * time.Second,
			Environment:     "development",
		},
		API: APIConfig{
			DefaultPageSize: 20,
			MaxPageSize:     100,
		},
		Catalog: CatalogConfig{
			RefreshInterval: 15 * time.Minute,
		},
		Storage: StorageConfig{
			InteractionsPath: "", // in-memory by default
			SessionsPath:     "",
			GCInterval:       10 * time.Minute,
		},
		Analytics: AnalyticsConfig{
			DuckDBPath:    "", // in-memory by default
			RetentionDays: 90,
		},
		Events: EventsConfig{
			BufferSize:   1024,
			CloseTimeout: 10 * time.Second,
		},
		Security: SecurityConfig{
			JWTSecret:         "",
			TokenTTL:          24 * time.Hour,
			AdminUsername:     "",
			AdminPasswordHash: "",
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
			CORSOrigins:       []string{"*"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Recommend: *recommend.DefaultConfig(),
		Fetcher:   catalog.DefaultFetcherConfig(),
	}
}

// Load builds the effective configuration with layered sources:
//  1. built-in defaults
//  2. optional YAML config file
//  3. environment variables (highest priority)
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	// VASTRA_SERVER_PORT -> server.port, VASTRA_SECURITY_JWT_SECRET ->
	// security.jwt_secret, plus a handful of short aliases.
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// findConfigFile returns the first existing config file path, or "".
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// sliceConfigPaths lists config paths parsed as comma-separated slices
// when supplied through the environment.
var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields converts comma-separated env strings to slices for
// the known slice fields. YAML-sourced slices pass through untouched.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		if val == nil {
			continue
		}
		if _, ok := val.([]interface{}); ok {
			continue
		}
		if _, ok := val.([]string); ok {
			continue
		}

		strVal, ok := val.(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envAliases maps legacy/short environment variable names to config paths.
var envAliases = map[string]string{
	"http_host":    "server.host",
	"http_port":    "server.port",
	"environment":  "server.environment",
	"catalog_url":  "fetcher.url",
	"catalog_seed": "fetcher.seed_file",
	"duckdb_path":  "analytics.duckdb_path",
	"jwt_secret":   "security.jwt_secret",
	"log_level":    "logging.level",
	"log_format":   "logging.format",
}

// envTransformFunc maps environment variable names to koanf paths.
// VASTRA_-prefixed variables map positionally (VASTRA_SERVER_PORT ->
// server.port); everything else must be a known alias. Unknown variables
// are skipped so ambient environment noise never pollutes the config.
func envTransformFunc(key string) string {
	lower := strings.ToLower(key)

	if mapped, ok := envAliases[lower]; ok {
		return mapped
	}

	const prefix = "vastra_"
	if !strings.HasPrefix(lower, prefix) {
		return ""
	}
	rest := strings.TrimPrefix(lower, prefix)

	// The first underscore separates the section from the field. Field
	// names keep their remaining underscores: VASTRA_SECURITY_JWT_SECRET
	// -> security.jwt_secret.
	idx := strings.Index(rest, "_")
	if idx <= 0 || idx == len(rest)-1 {
		return ""
	}
	return rest[:idx] + "." + rest[idx+1:]
}
