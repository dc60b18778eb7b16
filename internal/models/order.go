// Vastra - Ethnic Fashion Storefront Backend
// Copyright 2026 Vastra Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vastralabs/vastra

package models

import "time"

// OrderStatus is the fulfillment state of an order.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderConfirmed OrderStatus = "confirmed"
	OrderShipped   OrderStatus = "shipped"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
)

// OrderItem is one purchased line, snapshotted from the cart at checkout.
type OrderItem struct {
	ID        string  `json:"id"`
	ProductID string  `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Size      string  `json:"size"`
	Color     string  `json:"color,omitempty"`
	Price     float64 `json:"price"`
	Total     float64 `json:"total"`
}

// Order is a completed checkout. Payment processing is external; the
// storefront records the order and emits a purchase event.
type Order struct {
	// ID is the unique order identifier.
	ID string `json:"id"`

	// UserID is the purchasing user.
	UserID string `json:"user_id"`

	// OrderNumber is the human-facing order reference.
	OrderNumber string `json:"order_number"`

	// Items are the purchased lines.
	Items []OrderItem `json:"items"`

	// Total is the order total.
	Total float64 `json:"total"`

	// Status is the fulfillment state.
	Status OrderStatus `json:"status"`

	// CreatedAt is when the order was placed.
	CreatedAt time.Time `json:"created_at"`
}

// ItemCount returns the total unit count across all lines.
func (o *Order) ItemCount() int {
	var n int
	for _, it := range o.Items {
		n += it.Quantity
	}
	return n
}
