// Vastra - Ethnic Fashion Storefront Backend
// Copyright 2026 Vastra Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vastralabs/vastra

// Package storage provides durable backends for the recommendation
// engine's interaction log. The engine itself only sees the
// recommend.InteractionStore interface; production deployments plug in the
// Badger store so histories survive restarts, while tests use the
// in-memory store.
package storage

import (
	"fmt"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/vastralabs/vastra/internal/recommend"
)

const interactionKeyPrefix = "interactions/"

// BadgerStore persists per-user interaction rings in BadgerDB.
//
// Each user's history is stored as a single JSON-encoded slice under
// "interactions/<userID>". Append is a read-modify-write transaction that
// enforces the FIFO cap, so the on-disk ring never exceeds it. Badger
// retries conflicting transactions internally for this access pattern.
type BadgerStore struct {
	db     *badger.DB
	cap    int
	logger zerolog.Logger
}

// NewBadgerStore opens (or creates) a Badger-backed store at path, capping
// each user's history at cap entries. An empty path opens an in-memory
// database, useful in tests.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewBadgerStore(path string, cap int, logger zerolog.Logger) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	if path == "" {
		opts = opts.WithInMemory(true)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger store: %w", err)
	}

	if cap <= 0 {
		cap = recommend.DefaultConfig().Limits.HistoryCap
	}

	return &BadgerStore{
		db:     db,
		cap:    cap,
		logger: logger.With().Str("component", "interaction-store").Logger(),
	}, nil
}

// Append records an interaction, evicting the oldest entries beyond the cap.
// Persistence failures are logged and swallowed: the interaction log is a
// best-effort signal and must never fail a storefront action.
func (s *BadgerStore) Append(userID string, rec recommend.Interaction) {
	key := []byte(interactionKeyPrefix + userID)

	err := s.db.Update(func(txn *badger.Txn) error {
		var history []recommend.Interaction

		item, err := txn.Get(key)
		switch {
		case err == nil:
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &history)
			}); err != nil {
				return fmt.Errorf("decode history: %w", err)
			}
		case err != badger.ErrKeyNotFound:
			return fmt.Errorf("read history: %w", err)
		}

		history = append(history, rec)
		if len(history) > s.cap {
			history = history[len(history)-s.cap:]
		}

		encoded, err := json.Marshal(history)
		if err != nil {
			return fmt.Errorf("encode history: %w", err)
		}
		return txn.Set(key, encoded)
	})
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to persist interaction")
	}
}

// List returns the user's interactions, oldest first. Read failures yield
// an empty history; the engine degrades to unpersonalized results.
func (s *BadgerStore) List(userID string) []recommend.Interaction {
	key := []byte(interactionKeyPrefix + userID)

	var history []recommend.Interaction
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &history)
		})
	})
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to read interaction history")
		return nil
	}
	return history
}

// RunGC runs one round of Badger value-log garbage collection. The
// supervisor's data layer calls this periodically.
func (s *BadgerStore) RunGC() error {
	err := s.db.RunValueLogGC(0.5)
	if err == badger.ErrNoRewrite {
		return nil
	}
	return err
}

// Close releases the underlying database.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}

// Interface guard: BadgerStore must satisfy the engine's store contract.
var _ recommend.InteractionStore = (*BadgerStore)(nil)
