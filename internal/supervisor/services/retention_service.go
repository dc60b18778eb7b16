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

// Pruner deletes events older than the cutoff and reports how many rows
// went. Satisfied by *duckdbsink.Sink.
type Pruner interface {
	Prune(olderThan time.Time) (int64, error)
}

// RetentionService enforces the analytics retention window by pruning
// the event sink once a day.
type RetentionService struct {
	sink      Pruner
	retention time.Duration
	interval  time.Duration
	logger    zerolog.Logger
	now       func() time.Time
}

// NewRetentionService wraps sink pruning as a supervised service.
// Retention is how far back events are kept.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewRetentionService(sink Pruner, retention time.Duration, logger zerolog.Logger) *RetentionService {
	return &RetentionService{
		sink:      sink,
		retention: retention,
		interval:  24 * time.Hour,
		logger:    logger.With().Str("component", "analytics-retention").Logger(),
		now:       time.Now,
	}
}

// Serve implements suture.Service. One prune runs at startup so restarts
// do not postpone enforcement by a full interval.
func (s *RetentionService) Serve(ctx context.Context) error {
	if s.retention <= 0 {
		// Retention disabled; nothing to do until shutdown.
		<-ctx.Done()
		return ctx.Err()
	}

	s.prune()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.prune()
		}
	}
}

func (s *RetentionService) prune() {
	cutoff := s.now().Add(-s.retention)
	removed, err := s.sink.Prune(cutoff)
	if err != nil {
		s.logger.Error().Err(err).Time("cutoff", cutoff).Msg("analytics prune failed")
		return
	}
	if removed > 0 {
		s.logger.Info().Int64("removed", removed).Time("cutoff", cutoff).Msg("pruned analytics events")
	}
}

// String identifies the service in supervisor logs.
func (s *RetentionService) String() string {
	return "analytics-retention"
}
