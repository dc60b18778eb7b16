// Vastra - Ethnic Fashion Storefront Backend
// Copyright 2026 Vastra Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vastralabs/vastra

package models

import "time"

// CartItem is one line in a cart. Lines are keyed by the product/size/color
// combination so that adding the same variant twice merges quantities.
type CartItem struct {
	// ID is the line identifier: "<productID>-<size>-<color|default>".
	ID string `json:"id"`

	// ProductID references the product.
	ProductID string `json:"product_id"`

	// Quantity is the number of units. Invariant: quantity > 0; a
	// quantity update to zero removes the line.
	Quantity int `json:"quantity"`

	// Size is the selected size label.
	Size string `json:"size"`

	// Color is the selected color, if the variant has one.
	Color string `json:"color,omitempty"`

	// Price is the unit price captured at add time.
	Price float64 `json:"price"`
}

// LineTotal returns price x quantity for the line.
func (i CartItem) LineTotal() float64 {
	return i.Price * float64(i.Quantity)
}

// CartState is the persisted cart payload handed to a cart.Repository.
type CartState struct {
	Items     []CartItem `json:"items"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// WishlistItem is one saved product in a wishlist.
type WishlistItem struct {
	// ID is the entry identifier.
	ID string `json:"id"`

	// ProductID references the saved product.
	ProductID string `json:"product_id"`

	// AddedAt is when the product was saved.
	AddedAt time.Time `json:"added_at"`
}

// WishlistState is the persisted wishlist payload.
type WishlistState struct {
	Items     []WishlistItem `json:"items"`
	UpdatedAt time.Time      `json:"updated_at"`
}
