// Vastra - Ethnic Fashion Storefront Backend
// Copyright 2026 Vastra Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vastralabs/vastra

package models

import "time"

// ProductStatus is the catalog lifecycle state of a product.
// Only active products are eligible for trending and personalized
// recommendations.
type ProductStatus string

const (
	StatusActive     ProductStatus = "active"
	StatusInactive   ProductStatus = "inactive"
	StatusOutOfStock ProductStatus = "out_of_stock"
)

// Valid reports whether s is a known product status.
func (s ProductStatus) Valid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusOutOfStock:
		return true
	default:
		return false
	}
}

// Cultural holds the cultural metadata attached to every product.
// Fabric and Work are single-valued; Occasions and ColorFamily are
// ordered sequences used for overlap scoring.
type Cultural struct {
	// Fabric is the primary fabric, e.g. "silk", "cotton", "banarasi".
	Fabric string `json:"fabric"`

	// Work is the craft technique, e.g. "embroidery", "zari", "handloom".
	Work string `json:"work"`

	// Region is the region of origin, e.g. "rajasthan", "kashmir".
	Region string `json:"region"`

	// Occasions lists suitable occasions, e.g. ["wedding", "festival"].
	Occasions []string `json:"occasions"`

	// ColorFamily lists the dominant color families.
	ColorFamily []string `json:"color_family"`

	// CareInstructions are free-form care notes.
	CareInstructions []string `json:"care_instructions,omitempty"`
}

// Product is a catalog entry. The recommendation engine treats products
// as read-only snapshot data.
type Product struct {
	// ID is the unique product identifier.
	ID string `json:"id"`

	// Name is the display name.
	Name string `json:"name"`

	// Description is the long-form product description.
	Description string `json:"description,omitempty"`

	// Price is the current sale price. Invariant: price > 0 for
	// catalog-supplied products.
	Price float64 `json:"price"`

	// OriginalPrice is the pre-discount price, when discounted.
	OriginalPrice float64 `json:"original_price,omitempty"`

	// CategoryID references the owning category.
	CategoryID string `json:"category_id"`

	// SKU is the stock keeping unit.
	SKU string `json:"sku,omitempty"`

	// Inventory is the units in stock.
	Inventory int `json:"inventory"`

	// Status determines recommendation eligibility.
	Status ProductStatus `json:"status"`

	// Cultural is the cultural metadata record.
	Cultural Cultural `json:"cultural_metadata"`

	// Tags are free-form labels. The literal tag "trending" boosts the
	// trending score.
	Tags []string `json:"tags"`

	// Rating is the average review rating (0-5).
	Rating float64 `json:"rating,omitempty"`

	// ReviewCount is the number of reviews behind Rating.
	ReviewCount int `json:"review_count,omitempty"`

	// CreatedAt is when the product entered the catalog.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is when the product was last modified.
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// HasTag reports whether the product carries the given tag.
func (p *Product) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Category is a catalog grouping.
type Category struct {
	// ID is the unique category identifier.
	ID string `json:"id"`

	// Name is the display name.
	Name string `json:"name"`

	// Slug is the URL-safe name.
	Slug string `json:"slug"`

	// Description is the category description.
	Description string `json:"description,omitempty"`

	// ParentID references a parent category for nesting, if any.
	ParentID string `json:"parent_id,omitempty"`

	// Order controls display ordering.
	Order int `json:"order"`

	// IsActive hides the category when false.
	IsActive bool `json:"is_active"`
}
