// Vastra - Ethnic Fashion Storefront Backend
// Copyright 2026 Vastra Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vastralabs/vastra

// Package orders turns carts into orders at checkout and serves order
// lookups. Payment capture is out of scope; an order is recorded as
// pending and a purchase event is emitted for analytics.
package orders

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/vastralabs/vastra/internal/models"
)

var (
	// ErrEmptyCart is returned when checkout is attempted on an empty
	// cart.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrOrderNotFound is returned for unknown order IDs.
	ErrOrderNotFound = errors.New("order not found")
)

// Service places and retrieves orders. Orders are kept in memory; the
// order log is operational state, not the system of record (that is the
// analytics sink).
type Service struct {
	mu      sync.RWMutex
	orders  map[string]models.Order
	byUser  map[string][]string
	counter int
	logger  zerolog.Logger
	now     func() time.Time
	newID   func() string
}

// NewService builds an order service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewService(logger zerolog.Logger) *Service {
	return &Service{
		orders: make(map[string]models.Order),
		byUser: make(map[string][]string),
		logger: logger.With().Str("component", "orders").Logger(),
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// SetClock overrides the time source. Tests only.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// Place creates a pending order from the given cart state. The caller
// clears the cart after a successful placement.
func (s *Service) Place(userID string, cartState models.CartState) (models.Order, error) {
	if len(cartState.Items) == 0 {
		return models.Order{}, ErrEmptyCart
	}

	items := make([]models.OrderItem, 0, len(cartState.Items))
	total := 0.0
	for _, line := range cartState.Items {
		items = append(items, models.OrderItem{
			ID:        line.ID,
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			Size:      line.Size,
			Color:     line.Color,
			Price:     line.Price,
			Total:     line.LineTotal(),
		})
		total += line.LineTotal()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.counter++
	now := s.now()
	order := models.Order{
		ID:          s.newID(),
		UserID:      userID,
		OrderNumber: fmt.Sprintf("VAS-%s-%04d", now.UTC().Format("20060102"), s.counter),
		Items:       items,
		Total:       total,
		Status:      models.OrderPending,
		CreatedAt:   now,
	}

	s.orders[order.ID] = order
	s.byUser[userID] = append(s.byUser[userID], order.ID)

	s.logger.Info().
		Str("order_id", order.ID).
		Str("order_number", order.OrderNumber).
		Float64("total", order.Total).
		Int("items", len(order.Items)).
		Msg("order placed")
	return order, nil
}

// Get returns an order by ID.
func (s *Service) Get(orderID string) (models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	order, ok := s.orders[orderID]
	if !ok {
		return models.Order{}, ErrOrderNotFound
	}
	return order, nil
}

// ListByUser returns the user's orders, newest first.
func (s *Service) ListByUser(userID string) []models.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.byUser[userID]
	out := make([]models.Order, 0, len(ids))
	for i := len(ids) - 1; i >= 0; i-- {
		out = append(out, s.orders[ids[i]])
	}
	return out
}

// UpdateStatus advances an order's fulfillment state.
func (s *Service) UpdateStatus(orderID string, status models.OrderStatus) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[orderID]
	if !ok {
		return models.Order{}, ErrOrderNotFound
	}
	order.Status = status
	s.orders[orderID] = order
	return order, nil
}
