// Vastra - Ethnic Fashion Storefront Backend
// Copyright 2026 Vastra Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vastralabs/vastra

// Package analytics records storefront events and aggregates business
// metrics over them. Events carry typed payloads; free-form properties
// are confined to the explicit Other variant.
package analytics

import "time"

// Kind identifies an event payload variant.
type Kind string

const (
	KindPageView       Kind = "page_view"
	KindProductView    Kind = "product_view"
	KindAddToCart      Kind = "add_to_cart"
	KindRemoveFromCart Kind = "remove_from_cart"
	KindCartView       Kind = "cart_view"
	KindBeginCheckout  Kind = "begin_checkout"
	KindPurchase       Kind = "purchase"
	KindAddToWishlist  Kind = "add_to_wishlist"
	KindSearch         Kind = "search"
	KindFilterApplied  Kind = "filter_applied"
	KindCategoryView   Kind = "category_view"
	KindLogin          Kind = "login"
	KindSignup         Kind = "signup"
	KindOther          Kind = "other"
)

// Payload is the typed body of an analytics event. The interface is
// sealed: only the variants in this package implement it, so aggregation
// switches are exhaustive.
type Payload interface {
	Kind() Kind
	sealed()
}

// PageView records a storefront page render.
type PageView struct {
	Path     string `json:"path"`
	Referrer string `json:"referrer,omitempty"`
}

// ProductView records a product detail view.
type ProductView struct {
	ProductID  string  `json:"product_id"`
	CategoryID string  `json:"category_id,omitempty"`
	Price      float64 `json:"price,omitempty"`
}

// AddToCart records a cart add.
type AddToCart struct {
	ProductID string  `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// RemoveFromCart records a cart line removal.
type RemoveFromCart struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// CartView records a cart page view.
type CartView struct {
	ItemCount int     `json:"item_count"`
	CartTotal float64 `json:"cart_total"`
}

// BeginCheckout records checkout initiation.
type BeginCheckout struct {
	CartTotal float64 `json:"cart_total"`
	ItemCount int     `json:"item_count"`
}

// PurchasedProduct is one order line inside a Purchase event.
type PurchasedProduct struct {
	ProductID  string  `json:"product_id"`
	CategoryID string  `json:"category_id,omitempty"`
	Quantity   int     `json:"quantity"`
	Price      float64 `json:"price"`
}

// Purchase records a completed order.
type Purchase struct {
	OrderID  string             `json:"order_id"`
	Revenue  float64            `json:"revenue"`
	Products []PurchasedProduct `json:"products"`
}

// AddToWishlist records a wishlist save.
type AddToWishlist struct {
	ProductID string `json:"product_id"`
}

// Search records a catalog search.
type Search struct {
	Query   string `json:"query"`
	Results int    `json:"results"`
}

// FilterApplied records a listing filter selection.
type FilterApplied struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// CategoryView records a category listing view.
type CategoryView struct {
	CategoryID string `json:"category_id"`
}

// Login records a successful sign-in.
type Login struct {
	Method string `json:"method,omitempty"`
}

// Signup records an account creation.
type Signup struct {
	Method string `json:"method,omitempty"`
}

// Other carries events that have no dedicated variant yet. Name is
// required; Properties is free-form.
type Other struct {
	Name       string                 `json:"name"`
	Properties map[string]interface{} `json:"properties,omitempty"`
}

func (PageView) Kind() Kind       { return KindPageView }
func (ProductView) Kind() Kind    { return KindProductView }
func (AddToCart) Kind() Kind      { return KindAddToCart }
func (RemoveFromCart) Kind() Kind { return KindRemoveFromCart }
func (CartView) Kind() Kind       { return KindCartView }
func (BeginCheckout) Kind() Kind  { return KindBeginCheckout }
func (Purchase) Kind() Kind       { return KindPurchase }
func (AddToWishlist) Kind() Kind  { return KindAddToWishlist }
func (Search) Kind() Kind         { return KindSearch }
func (FilterApplied) Kind() Kind  { return KindFilterApplied }
func (CategoryView) Kind() Kind   { return KindCategoryView }
func (Login) Kind() Kind          { return KindLogin }
func (Signup) Kind() Kind         { return KindSignup }
func (Other) Kind() Kind          { return KindOther }

func (PageView) sealed()       {}
func (ProductView) sealed()    {}
func (AddToCart) sealed()      {}
func (RemoveFromCart) sealed() {}
func (CartView) sealed()       {}
func (BeginCheckout) sealed()  {}
func (Purchase) sealed()       {}
func (AddToWishlist) sealed()  {}
func (Search) sealed()         {}
func (FilterApplied) sealed()  {}
func (CategoryView) sealed()   {}
func (Login) sealed()          {}
func (Signup) sealed()         {}
func (Other) sealed()          {}

// Event is one recorded analytics event.
type Event struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id,omitempty"`
	SessionID string    `json:"session_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Payload   Payload   `json:"payload"`
}
