// Vastra - Ethnic Fashion Storefront Backend
// Copyright 2026 Vastra Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vastralabs/vastra

// Package cart implements per-user shopping cart operations over a
// pluggable persistence backend.
package cart

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/vastralabs/vastra/internal/models"
)

var (
	// ErrProductNotFound is returned when the referenced product is not
	// in the catalog snapshot.
	ErrProductNotFound = errors.New("product not found")

	// ErrProductUnavailable is returned when the product exists but is
	// not purchasable.
	ErrProductUnavailable = errors.New("product not available")

	// ErrItemNotFound is returned when the cart line does not exist.
	ErrItemNotFound = errors.New("cart item not found")

	// ErrInvalidQuantity is returned for non-positive add quantities.
	ErrInvalidQuantity = errors.New("quantity must be positive")
)

// Repository persists cart state per user.
type Repository interface {
	Load(userID string) (models.CartState, error)
	Save(userID string, state models.CartState) error
}

// ProductLookup resolves products for validation and pricing. The catalog
// store satisfies it.
type ProductLookup interface {
	Product(id string) (models.Product, bool)
}

// Service applies cart operations. A single mutex serializes
// read-modify-write cycles against the repository; carts are small and
// contention is per deployment, not per user, so this is fine at this
// scale.
type Service struct {
	mu      sync.Mutex
	repo    Repository
	catalog ProductLookup
	logger  zerolog.Logger
	now     func() time.Time
}

// NewService builds a cart service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewService(repo Repository, catalog ProductLookup, logger zerolog.Logger) *Service {
	return &Service{
		repo:    repo,
		catalog: catalog,
		logger:  logger.With().Str("component", "cart").Logger(),
		now:     time.Now,
	}
}

// LineID builds the cart line identifier for a product variant. An empty
// color maps to "default" so the ID format is stable.
func LineID(productID, size, color string) string {
	if color == "" {
		color = "default"
	}
	return fmt.Sprintf("%s-%s-%s", productID, size, color)
}

// Get returns the user's cart. Missing carts come back empty, not as
// errors.
func (s *Service) Get(userID string) (models.CartState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repo.Load(userID)
}

// AddItem adds a product variant to the cart. Adding an existing variant
// merges quantities on the same line. The unit price is captured from the
// catalog at add time.
func (s *Service) AddItem(userID, productID string, quantity int, size, color string) (models.CartState, error) {
	if quantity <= 0 {
		return models.CartState{}, ErrInvalidQuantity
	}

	product, ok := s.catalog.Product(productID)
	if !ok {
		return models.CartState{}, ErrProductNotFound
	}
	if product.Status != models.StatusActive {
		return models.CartState{}, fmt.Errorf("%w: status %s", ErrProductUnavailable, product.Status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.repo.Load(userID)
	if err != nil {
		return models.CartState{}, fmt.Errorf("load cart: %w", err)
	}

	lineID := LineID(productID, size, color)
	merged := false
	for i := range state.Items {
		if state.Items[i].ID == lineID {
			state.Items[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		state.Items = append(state.Items, models.CartItem{
			ID:        lineID,
			ProductID: productID,
			Quantity:  quantity,
			Size:      size,
			Color:     color,
			Price:     product.Price,
		})
	}

	return s.save(userID, state)
}

// UpdateQuantity sets a line's quantity. Zero removes the line; negative
// values are rejected.
func (s *Service) UpdateQuantity(userID, itemID string, quantity int) (models.CartState, error) {
	if quantity < 0 {
		return models.CartState{}, ErrInvalidQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.repo.Load(userID)
	if err != nil {
		return models.CartState{}, fmt.Errorf("load cart: %w", err)
	}

	idx := -1
	for i := range state.Items {
		if state.Items[i].ID == itemID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return models.CartState{}, ErrItemNotFound
	}

	if quantity == 0 {
		state.Items = append(state.Items[:idx], state.Items[idx+1:]...)
	} else {
		state.Items[idx].Quantity = quantity
	}

	return s.save(userID, state)
}

// RemoveItem deletes a line from the cart.
func (s *Service) RemoveItem(userID, itemID string) (models.CartState, error) {
	return s.UpdateQuantity(userID, itemID, 0)
}

// Clear empties the cart.
func (s *Service) Clear(userID string) (models.CartState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(userID, models.CartState{Items: []models.CartItem{}})
}

func (s *Service) save(userID string, state models.CartState) (models.CartState, error) {
	state.UpdatedAt = s.now()
	if err := s.repo.Save(userID, state); err != nil {
		return models.CartState{}, fmt.Errorf("save cart: %w", err)
	}
	return state, nil
}

// ItemCount returns the total units across all lines.
func ItemCount(state models.CartState) int {
	total := 0
	for _, item := range state.Items {
		total += item.Quantity
	}
	return total
}

// Total returns the cart subtotal.
func Total(state models.CartState) float64 {
	total := 0.0
	for _, item := range state.Items {
		total += item.LineTotal()
	}
	return total
}
