// Vastra - Ethnic Fashion Storefront Backend
// Copyright 2026 Vastra Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vastralabs/vastra

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// GCRunner triggers one value-log garbage collection cycle. Satisfied by
// the Badger-backed session and interaction stores.
type GCRunner interface {
	RunGC() error
}

// GCService runs Badger value-log GC on a fixed interval. GC returning
// an error is normal when there is nothing to collect; it is logged at
// debug and never fails the service.
type GCService struct {
	name     string
	store    GCRunner
	interval time.Duration
	logger   zerolog.Logger
}

// NewGCService wraps a store's GC loop as a supervised service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewGCService(name string, store GCRunner, interval time.Duration, logger zerolog.Logger) *GCService {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &GCService{
		name:     name,
		store:    store,
		interval: interval,
		logger:   logger.With().Str("component", name).Logger(),
	}
}

// Serve implements suture.Service.
func (s *GCService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := s.store.RunGC(); err != nil {
				s.logger.Debug().Err(err).Msg("value log GC cycle skipped")
			}
		}
	}
}

// String identifies the service in supervisor logs.
func (s *GCService) String() string {
	return s.name
}
