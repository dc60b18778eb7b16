// Vastra - Ethnic Fashion Storefront Backend
// Copyright 2026 Vastra Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vastralabs/vastra

// Package wishlist implements per-user saved-product lists.
package wishlist

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/vastralabs/vastra/internal/models"
)

// ErrProductNotFound is returned when the referenced product is not in
// the catalog snapshot.
var ErrProductNotFound = errors.New("product not found")

// Repository persists wishlist state per user.
type Repository interface {
	Load(userID string) (models.WishlistState, error)
	Save(userID string, state models.WishlistState) error
}

// ProductLookup resolves products for validation. The catalog store
// satisfies it.
type ProductLookup interface {
	Product(id string) (models.Product, bool)
}

// Service applies wishlist operations.
type Service struct {
	mu      sync.Mutex
	repo    Repository
	catalog ProductLookup
	logger  zerolog.Logger
	now     func() time.Time
	newID   func() string
}

// NewService builds a wishlist service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewService(repo Repository, catalog ProductLookup, logger zerolog.Logger) *Service {
	return &Service{
		repo:    repo,
		catalog: catalog,
		logger:  logger.With().Str("component", "wishlist").Logger(),
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// Add saves a product. Adding a product already on the list is a no-op
// and returns the unchanged state.
func (s *Service) Add(userID, productID string) (models.WishlistState, error) {
	if _, ok := s.catalog.Product(productID); !ok {
		return models.WishlistState{}, ErrProductNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.repo.Load(userID)
	if err != nil {
		return models.WishlistState{}, fmt.Errorf("load wishlist: %w", err)
	}

	for _, item := range state.Items {
		if item.ProductID == productID {
			return state, nil
		}
	}

	state.Items = append(state.Items, models.WishlistItem{
		ID:        s.newID(),
		ProductID: productID,
		AddedAt:   s.now(),
	})
	return s.save(userID, state)
}

// Remove deletes a product from the list. Removing a product that is not
// on the list is a no-op.
func (s *Service) Remove(userID, productID string) (models.WishlistState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.repo.Load(userID)
	if err != nil {
		return models.WishlistState{}, fmt.Errorf("load wishlist: %w", err)
	}

	kept := state.Items[:0]
	removed := false
	for _, item := range state.Items {
		if item.ProductID == productID {
			removed = true
			continue
		}
		kept = append(kept, item)
	}
	if !removed {
		return state, nil
	}
	state.Items = kept
	return s.save(userID, state)
}

// Has reports whether the product is on the user's list.
func (s *Service) Has(userID, productID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.repo.Load(userID)
	if err != nil {
		return false, fmt.Errorf("load wishlist: %w", err)
	}
	for _, item := range state.Items {
		if item.ProductID == productID {
			return true, nil
		}
	}
	return false, nil
}

// Items returns the user's wishlist in insertion order.
func (s *Service) Items(userID string) (models.WishlistState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repo.Load(userID)
}

func (s *Service) save(userID string, state models.WishlistState) (models.WishlistState, error) {
	state.UpdatedAt = s.now()
	if err := s.repo.Save(userID, state); err != nil {
		return models.WishlistState{}, fmt.Errorf("save wishlist: %w", err)
	}
	return state, nil
}
