// Vastra - Ethnic Fashion Storefront Backend
// Copyright 2026 Vastra Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vastralabs/vastra

package recommend

import (
	"sync"
)

// MemoryStore is a mutex-protected in-memory InteractionStore.
//
// Concurrent Append calls for the same user are the only possible race in
// the engine (lost ring-buffer updates); the store carries the lock so the
// engine itself stays lock-free.
type MemoryStore struct {
	mu     sync.RWMutex
	byUser map[string][]Interaction
	cap    int
}

// NewMemoryStore creates a store capping each user's history at cap entries.
func NewMemoryStore(cap int) *MemoryStore {
	if cap <= 0 {
		cap = DefaultConfig().Limits.HistoryCap
	}
	return &MemoryStore{
		byUser: make(map[string][]Interaction),
		cap:    cap,
	}
}

// Append records an interaction, evicting the oldest entry at capacity.
func (s *MemoryStore) Append(userID string, rec Interaction) {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := append(s.byUser[userID], rec)
	if len(history) > s.cap {
		history = history[len(history)-s.cap:]
	}
	s.byUser[userID] = history
}

// List returns a copy of the user's interactions, oldest first.
func (s *MemoryStore) List(userID string) []Interaction {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history := s.byUser[userID]
	out := make([]Interaction, len(history))
	copy(out, history)
	return out
}
