// Vastra - Ethnic Fashion Storefront Backend
// Copyright 2026 Vastra Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vastralabs/vastra

package wishlist

import (
	"sync"

	"github.com/vastralabs/vastra/internal/models"
)

// MemoryRepository keeps wishlist state in process memory.
type MemoryRepository struct {
	mu    sync.RWMutex
	lists map[string]models.WishlistState
}

// NewMemoryRepository builds an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{lists: make(map[string]models.WishlistState)}
}

// Load returns the user's wishlist, or an empty list if none exists.
func (r *MemoryRepository) Load(userID string) (models.WishlistState, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	state, ok := r.lists[userID]
	if !ok {
		return models.WishlistState{Items: []models.WishlistItem{}}, nil
	}
	out := models.WishlistState{
		Items:     make([]models.WishlistItem, len(state.Items)),
		UpdatedAt: state.UpdatedAt,
	}
	copy(out.Items, state.Items)
	return out, nil
}

// Save stores the user's wishlist.
func (r *MemoryRepository) Save(userID string, state models.WishlistState) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := models.WishlistState{
		Items:     make([]models.WishlistItem, len(state.Items)),
		UpdatedAt: state.UpdatedAt,
	}
	copy(stored.Items, state.Items)
	r.lists[userID] = stored
	return nil
}

var _ Repository = (*MemoryRepository)(nil)
