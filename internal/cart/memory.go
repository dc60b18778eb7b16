// Vastra - Ethnic Fashion Storefront Backend
// Copyright 2026 Vastra Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vastralabs/vastra

package cart

import (
	"sync"

	"github.com/vastralabs/vastra/internal/models"
)

// MemoryRepository keeps cart state in process memory. It is the
// development default and the test backend.
type MemoryRepository struct {
	mu    sync.RWMutex
	carts map[string]models.CartState
}

// NewMemoryRepository builds an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{carts: make(map[string]models.CartState)}
}

// Load returns the user's cart, or an empty cart if none exists.
func (r *MemoryRepository) Load(userID string) (models.CartState, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	state, ok := r.carts[userID]
	if !ok {
		return models.CartState{Items: []models.CartItem{}}, nil
	}
	out := models.CartState{
		Items:     make([]models.CartItem, len(state.Items)),
		UpdatedAt: state.UpdatedAt,
	}
	copy(out.Items, state.Items)
	return out, nil
}

// Save stores the user's cart.
func (r *MemoryRepository) Save(userID string, state models.CartState) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := models.CartState{
		Items:     make([]models.CartItem, len(state.Items)),
		UpdatedAt: state.UpdatedAt,
	}
	copy(stored.Items, state.Items)
	r.carts[userID] = stored
	return nil
}

var _ Repository = (*MemoryRepository)(nil)
