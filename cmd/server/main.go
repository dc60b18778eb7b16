// Vastra - Ethnic Fashion Storefront Backend
// Copyright 2026 Vastra Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vastralabs/vastra

// Package main is the entry point for the Vastra storefront server.
//
// Vastra is the backend for an ethnic-fashion storefront: a catalog of
// sarees, kurtas, and lehengas with cultural metadata, a recommendation
// engine blending similarity, trending, and personalization signals,
// per-user carts and wishlists, checkout, and an analytics pipeline.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: layered Koanf v2 (defaults, config file, env vars)
//  2. Interaction store: Badger-backed or in-memory history
//  3. Catalog: initial fetch (remote URL or seed file) and engine build
//  4. Session store: Badger-backed cart and wishlist persistence
//  5. Analytics: DuckDB event sink and in-memory aggregation
//  6. Event bus: Watermill GoChannel pub/sub plus the relay
//  7. HTTP server: chi REST API with Prometheus metrics
//
// Everything long-lived runs under a suture supervisor tree; crashes
// restart the failed service with backoff instead of taking the process
// down.
//
// # Configuration
//
// Environment variables use the VASTRA_ prefix, e.g.:
//
//	export VASTRA_SERVER_PORT=8470
//	export VASTRA_CATALOG_URL=https://catalog.example.com/feed.json
//	export VASTRA_SECURITY_JWT_SECRET=$(openssl rand -base64 32)
//	./vastra
//
// # Signal Handling
//
// SIGINT and SIGTERM trigger graceful shutdown: the HTTP server drains
// in-flight requests, the relay finishes buffered events, and the Badger
// and DuckDB stores close cleanly.
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/vastralabs/vastra/internal/analytics"
	"github.com/vastralabs/vastra/internal/analytics/duckdbsink"
	"github.com/vastralabs/vastra/internal/api"
	"github.com/vastralabs/vastra/internal/auth"
	"github.com/vastralabs/vastra/internal/cart"
	"github.com/vastralabs/vastra/internal/catalog"
	"github.com/vastralabs/vastra/internal/config"
	"github.com/vastralabs/vastra/internal/events"
	"github.com/vastralabs/vastra/internal/logging"
	"github.com/vastralabs/vastra/internal/metrics"
	"github.com/vastralabs/vastra/internal/orders"
	"github.com/vastralabs/vastra/internal/recommend"
	"github.com/vastralabs/vastra/internal/recommend/storage"
	"github.com/vastralabs/vastra/internal/sessions"
	"github.com/vastralabs/vastra/internal/snapshot"
	"github.com/vastralabs/vastra/internal/supervisor"
	"github.com/vastralabs/vastra/internal/supervisor/services"
	"github.com/vastralabs/vastra/internal/wishlist"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})
	logger := logging.Logger()

	logging.Info().
		Str("environment", cfg.Server.Environment).
		Str("addr", cfg.Server.Addr()).
		Str("catalog_url", cfg.Fetcher.URL).
		Msg("Starting Vastra storefront")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Interaction history backs the recommendation engine across catalog
	// refreshes and restarts.
	var interactions recommend.InteractionStore
	if cfg.Storage.InteractionsPath != "" {
		badgerStore, err := storage.NewBadgerStore(cfg.Storage.InteractionsPath, cfg.Recommend.Limits.HistoryCap, logger)
		if err != nil {
			logging.Fatal().Err(err).Msg("Failed to open interaction store")
		}
		defer badgerStore.Close()
		interactions = badgerStore
	} else {
		interactions = recommend.NewMemoryStore(cfg.Recommend.Limits.HistoryCap)
	}

	// Initial catalog snapshot. The fetcher falls back to the bundled
	// seed when the remote feed is unreachable, so startup only fails if
	// neither source yields a catalog.
	fetcher := catalog.NewFetcher(cfg.Fetcher, logger)
	snap, err := fetcher.Fetch(ctx)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load initial catalog")
	}
	store := catalog.StoreFromSnapshot(snap, logger)
	engine, err := recommend.NewEngine(&cfg.Recommend, store.Products(), interactions, logger)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to build recommendation engine")
	}
	holder := snapshot.NewHolder(&snapshot.Bundle{Catalog: store, Engine: engine})
	metrics.RecordCatalogRefresh(store.Len(), nil)
	logging.Info().Int("products", store.Len()).Int("categories", len(store.Categories())).Msg("Catalog loaded")

	// Cart and wishlist state shares one Badger database.
	sessionStore, err := sessions.Open(cfg.Storage.SessionsPath, logger)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open session store")
	}
	defer sessionStore.Close()

	carts := cart.NewService(sessionStore.Carts(), holder, logger)
	wishlists := wishlist.NewService(sessionStore.Wishlists(), holder, logger)
	orderSvc := orders.NewService(logger)

	sink, err := duckdbsink.Open(cfg.Analytics.DuckDBPath, logger)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open analytics sink")
	}
	defer sink.Close()
	analyticsSvc := analytics.NewService(sink, logger)

	bus := events.NewBus(events.Config{
		BufferSize:   cfg.Events.BufferSize,
		CloseTimeout: cfg.Events.CloseTimeout,
	}, logger)
	defer bus.Close()
	relay := events.NewRelay(bus.Subscriber(), holder, analyticsSvc, logger)

	authn := auth.NewAuthenticator(auth.Config{
		JWTSecret:         cfg.Security.JWTSecret,
		TokenTTL:          cfg.Security.TokenTTL,
		AdminUsername:     cfg.Security.AdminUsername,
		AdminPasswordHash: cfg.Security.AdminPasswordHash,
	}, logger)

	handler := api.NewHandler(api.HandlerDeps{
		Snapshot:  holder,
		Carts:     carts,
		Wishlists: wishlists,
		Orders:    orderSvc,
		Analytics: analyticsSvc,
		Auth:      authn,
		Bus:       bus,
		Config:    cfg.API,
		Logger:    logger,
	})
	router := api.NewRouter(handler, cfg.Security)

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	tree := supervisor.NewTree(supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	tree.AddAPIService(services.NewHTTPService(server, cfg.Server.ShutdownTimeout))
	tree.AddMessagingService(services.NewRelayService(relay))
	tree.AddDataService(services.NewRefreshService(
		fetcher, holder, &cfg.Recommend, interactions, cfg.Catalog.RefreshInterval, logger))
	tree.AddDataService(services.NewGCService("session-gc", sessionStore, cfg.Storage.GCInterval, logger))
	if badgerStore, ok := interactions.(*storage.BadgerStore); ok {
		tree.AddDataService(services.NewGCService("interaction-gc", badgerStore, cfg.Storage.GCInterval, logger))
	}
	if cfg.Analytics.RetentionDays > 0 {
		retention := time.Duration(cfg.Analytics.RetentionDays) * 24 * time.Hour
		tree.AddDataService(services.NewRetentionService(sink, retention, logger))
	}

	logging.Info().Str("addr", cfg.Server.Addr()).Msg("Supervisor tree starting")
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree exited")
	}

	if report, err := tree.UnstoppedServiceReport(); err == nil && len(report) > 0 {
		for _, svc := range report {
			logging.Warn().Str("service", svc.Name).Msg("Service did not stop within the shutdown timeout")
		}
	}
	logging.Info().Msg("Shutdown complete")
}
