// Vastra - Ethnic Fashion Storefront Backend
// Copyright 2026 Vastra Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vastralabs/vastra

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/vastralabs/vastra/internal/catalog"
	"github.com/vastralabs/vastra/internal/metrics"
	"github.com/vastralabs/vastra/internal/recommend"
	"github.com/vastralabs/vastra/internal/snapshot"
)

// CatalogFetcher produces catalog snapshots. Satisfied by
// *catalog.Fetcher.
type CatalogFetcher interface {
	Fetch(ctx context.Context) (*catalog.Snapshot, error)
}

// RefreshService periodically re-fetches the catalog and publishes a
// fresh store/engine bundle. Interaction history lives in the shared
// store, so a rebuilt engine keeps every user's signals.
type RefreshService struct {
	fetcher      CatalogFetcher
	holder       *snapshot.Holder
	recommendCfg *recommend.Config
	interactions recommend.InteractionStore
	interval     time.Duration
	logger       zerolog.Logger
}

// NewRefreshService wraps catalog refresh as a supervised service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewRefreshService(
	fetcher CatalogFetcher,
	holder *snapshot.Holder,
	recommendCfg *recommend.Config,
	interactions recommend.InteractionStore,
	interval time.Duration,
	logger zerolog.Logger,
) *RefreshService {
	return &RefreshService{
		fetcher:      fetcher,
		holder:       holder,
		recommendCfg: recommendCfg,
		interactions: interactions,
		interval:     interval,
		logger:       logger.With().Str("component", "catalog-refresh").Logger(),
	}
}

// Serve implements suture.Service. A zero interval pins the startup
// snapshot and the service just waits for shutdown.
func (s *RefreshService) Serve(ctx context.Context) error {
	if s.interval <= 0 {
		<-ctx.Done()
		return ctx.Err()
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.refresh(ctx)
		}
	}
}

// refresh fetches and swaps one snapshot. A failed fetch or engine build
// keeps the previous bundle; readers never see a partial catalog.
func (s *RefreshService) refresh(ctx context.Context) {
	snap, err := s.fetcher.Fetch(ctx)
	if err != nil {
		metrics.RecordCatalogRefresh(0, err)
		s.logger.Error().Err(err).Msg("catalog refresh failed")
		return
	}

	store := catalog.StoreFromSnapshot(snap, s.logger)
	engine, err := recommend.NewEngine(s.recommendCfg, store.Products(), s.interactions, s.logger)
	if err != nil {
		metrics.RecordCatalogRefresh(0, err)
		s.logger.Error().Err(err).Msg("engine rebuild failed")
		return
	}

	s.holder.Swap(&snapshot.Bundle{Catalog: store, Engine: engine})
	metrics.RecordCatalogRefresh(store.Len(), nil)
	s.logger.Info().Int("products", store.Len()).Msg("catalog refreshed")
}

// String identifies the service in supervisor logs.
func (s *RefreshService) String() string {
	return "catalog-refresh"
}
