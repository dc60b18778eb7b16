// Vastra - Ethnic Fashion Storefront Backend
// Copyright 2026 Vastra Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vastralabs/vastra

package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vastralabs/vastra/internal/analytics"
	"github.com/vastralabs/vastra/internal/cart"
	"github.com/vastralabs/vastra/internal/metrics"
	"github.com/vastralabs/vastra/internal/orders"
	"github.com/vastralabs/vastra/internal/recommend"
)

// Checkout converts the user's cart into a pending order, clears the
// cart, and emits purchase signals per order line.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	uid := userID(r)

	state, err := h.carts.Get(uid)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to load cart for checkout")
		rw.InternalError("failed to load cart")
		return
	}

	h.publishTracking(r, analytics.BeginCheckout{
		CartTotal: cart.Total(state),
		ItemCount: cart.ItemCount(state),
	})

	order, err := h.orders.Place(uid, state)
	if err != nil {
		if errors.Is(err, orders.ErrEmptyCart) {
			rw.BadRequest("cart is empty")
			return
		}
		h.logger.Error().Err(err).Msg("failed to place order")
		rw.InternalError("failed to place order")
		return
	}

	if _, err := h.carts.Clear(uid); err != nil {
		// The order stands; a stale cart is recoverable by the client.
		h.logger.Error().Err(err).Str("order_id", order.ID).Msg("failed to clear cart after checkout")
	}

	purchased := make([]analytics.PurchasedProduct, 0, len(order.Items))
	for _, item := range order.Items {
		h.publishInteraction(r, item.ProductID, recommend.InteractionPurchase)

		line := analytics.PurchasedProduct{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		}
		if product, ok := h.snapshot.Product(item.ProductID); ok {
			line.CategoryID = product.CategoryID
		}
		purchased = append(purchased, line)
	}
	h.publishTracking(r, analytics.Purchase{
		OrderID:  order.ID,
		Revenue:  order.Total,
		Products: purchased,
	})
	metrics.RecordOrder(order.Total)

	rw.Created(order)
}

// GetOrder returns a single order. Orders are scoped to the acting user.
func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	order, err := h.orders.Get(chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, orders.ErrOrderNotFound) {
			rw.NotFound("order not found")
			return
		}
		h.logger.Error().Err(err).Msg("failed to load order")
		rw.InternalError("failed to load order")
		return
	}
	if order.UserID != userID(r) {
		rw.NotFound("order not found")
		return
	}
	rw.Success(order)
}

// ListOrders returns the acting user's orders, newest first.
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(h.orders.ListByUser(userID(r)))
}
