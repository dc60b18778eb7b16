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
	"github.com/vastralabs/vastra/internal/models"
	"github.com/vastralabs/vastra/internal/recommend"
	"github.com/vastralabs/vastra/internal/wishlist"
)

// cartResponse is the cart payload with derived totals.
type cartResponse struct {
	Items     interface{} `json:"items"`
	ItemCount int         `json:"item_count"`
	Total     float64     `json:"total"`
}

// GetCart returns the user's cart with derived totals. Missing carts are
// empty, not 404s.
func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	state, err := h.carts.Get(userID(r))
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to load cart")
		rw.InternalError("failed to load cart")
		return
	}

	h.publishTracking(r, analytics.CartView{
		ItemCount: cart.ItemCount(state),
		CartTotal: cart.Total(state),
	})

	rw.Success(cartResponse{
		Items:     state.Items,
		ItemCount: cart.ItemCount(state),
		Total:     cart.Total(state),
	})
}

// AddCartItem adds a product variant; same-variant adds merge quantities.
func (h *Handler) AddCartItem(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req cartAddRequest
	if details, err := decodeAndValidate(r, h.validate, &req); err != nil {
		if details != nil {
			rw.ValidationFailed(details)
			return
		}
		rw.BadRequest(err.Error())
		return
	}

	state, err := h.carts.AddItem(userID(r), req.ProductID, req.Quantity, req.Size, req.Color)
	if err != nil {
		h.writeCartError(rw, err)
		return
	}

	product, _ := h.snapshot.Product(req.ProductID)
	h.publishInteraction(r, req.ProductID, recommend.InteractionCartAdd)
	h.publishTracking(r, analytics.AddToCart{
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		Price:     product.Price,
	})

	rw.Created(cartResponse{
		Items:     state.Items,
		ItemCount: cart.ItemCount(state),
		Total:     cart.Total(state),
	})
}

// UpdateCartItem sets a line quantity; zero removes the line.
func (h *Handler) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req cartUpdateRequest
	if details, err := decodeAndValidate(r, h.validate, &req); err != nil {
		if details != nil {
			rw.ValidationFailed(details)
			return
		}
		rw.BadRequest(err.Error())
		return
	}

	state, err := h.carts.UpdateQuantity(userID(r), chi.URLParam(r, "itemID"), *req.Quantity)
	if err != nil {
		h.writeCartError(rw, err)
		return
	}

	rw.Success(cartResponse{
		Items:     state.Items,
		ItemCount: cart.ItemCount(state),
		Total:     cart.Total(state),
	})
}

// RemoveCartItem deletes a cart line.
func (h *Handler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	itemID := chi.URLParam(r, "itemID")
	uid := userID(r)

	// Capture the line before removal so the tracking event carries the
	// product, not the line ID.
	var removed models.CartItem
	if before, err := h.carts.Get(uid); err == nil {
		for _, item := range before.Items {
			if item.ID == itemID {
				removed = item
				break
			}
		}
	}

	state, err := h.carts.RemoveItem(uid, itemID)
	if err != nil {
		h.writeCartError(rw, err)
		return
	}

	if removed.ProductID != "" {
		h.publishTracking(r, analytics.RemoveFromCart{
			ProductID: removed.ProductID,
			Quantity:  removed.Quantity,
		})
	}

	rw.Success(cartResponse{
		Items:     state.Items,
		ItemCount: cart.ItemCount(state),
		Total:     cart.Total(state),
	})
}

// ClearCart empties the user's cart.
func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	state, err := h.carts.Clear(userID(r))
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to clear cart")
		rw.InternalError("failed to clear cart")
		return
	}

	rw.Success(cartResponse{
		Items:     state.Items,
		ItemCount: 0,
		Total:     0,
	})
}

// writeCartError maps cart service errors to API responses.
func (h *Handler) writeCartError(rw *ResponseWriter, err error) {
	switch {
	case errors.Is(err, cart.ErrProductNotFound):
		rw.NotFound("product not found")
	case errors.Is(err, cart.ErrItemNotFound):
		rw.NotFound("cart item not found")
	case errors.Is(err, cart.ErrProductUnavailable):
		rw.Conflict("product is not available for purchase")
	case errors.Is(err, cart.ErrInvalidQuantity):
		rw.BadRequest("quantity must be positive")
	default:
		h.logger.Error().Err(err).Msg("cart operation failed")
		rw.InternalError("cart operation failed")
	}
}

// GetWishlist returns the user's saved products.
func (h *Handler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	state, err := h.wishlists.Items(userID(r))
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to load wishlist")
		rw.InternalError("failed to load wishlist")
		return
	}
	rw.Success(state)
}

// AddWishlistItem saves a product; duplicate saves are no-ops.
func (h *Handler) AddWishlistItem(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req wishlistAddRequest
	if details, err := decodeAndValidate(r, h.validate, &req); err != nil {
		if details != nil {
			rw.ValidationFailed(details)
			return
		}
		rw.BadRequest(err.Error())
		return
	}

	state, err := h.wishlists.Add(userID(r), req.ProductID)
	if err != nil {
		if errors.Is(err, wishlist.ErrProductNotFound) {
			rw.NotFound("product not found")
			return
		}
		h.logger.Error().Err(err).Msg("failed to add wishlist item")
		rw.InternalError("failed to add wishlist item")
		return
	}

	h.publishInteraction(r, req.ProductID, recommend.InteractionWishlistAdd)
	h.publishTracking(r, analytics.AddToWishlist{ProductID: req.ProductID})

	rw.Created(state)
}

// RemoveWishlistItem deletes a saved product; unknown products are no-ops.
func (h *Handler) RemoveWishlistItem(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	state, err := h.wishlists.Remove(userID(r), chi.URLParam(r, "productID"))
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to remove wishlist item")
		rw.InternalError("failed to remove wishlist item")
		return
	}
	rw.Success(state)
}
