// Vastra - Ethnic Fashion Storefront Backend
// Copyright 2026 Vastra Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vastralabs/vastra

// Package catalog holds the product catalog snapshot and its query surface.
//
// The snapshot is immutable: the store never mutates products after
// construction, so reads need no locking. Catalog refreshes build a new
// Store (and a new recommendation engine) from a fresh fetch.
package catalog

import (
	"sort"
	"strings"

	"github.com/vastralabs/vastra/internal/models"
)

// SortOrder enumerates the supported product orderings.
type SortOrder string

const (
	// SortFeatured preserves catalog snapshot order.
	SortFeatured  SortOrder = "featured"
	SortPriceAsc  SortOrder = "price_asc"
	SortPriceDesc SortOrder = "price_desc"
	SortNewest    SortOrder = "newest"
	SortRating    SortOrder = "rating"
)

// Filter narrows a product listing. Zero values mean "no constraint".
type Filter struct {
	CategoryID string
	Fabric     string
	Work       string
	Region     string
	Occasion   string
	Color      string
	Tag        string
	MinPrice   float64
	MaxPrice   float64

	// Query is a case-insensitive free-text match over name, description
	// and tags.
	Query string

	// Status restricts to one lifecycle state. Listings default to
	// active-only at the API layer.
	Status models.ProductStatus
}

// Store is an immutable catalog snapshot with lookup and listing queries.
type Store struct {
	products   []models.Product
	categories []models.Category
	byID       map[string]int
}

// NewStore builds a snapshot store. The slices are not copied; callers
// hand over ownership.
func NewStore(products []models.Product, categories []models.Category) *Store {
	byID := make(map[string]int, len(products))
	for i := range products {
		byID[products[i].ID] = i
	}
	return &Store{
		products:   products,
		categories: categories,
		byID:       byID,
	}
}

// Product returns the product with the given ID.
func (s *Store) Product(id string) (models.Product, bool) {
	idx, ok := s.byID[id]
	if !ok {
		return models.Product{}, false
	}
	return s.products[idx], true
}

// Products returns the full snapshot in catalog order.
func (s *Store) Products() []models.Product {
	out := make([]models.Product, len(s.products))
	copy(out, s.products)
	return out
}

// Categories returns the active categories sorted by display order.
func (s *Store) Categories() []models.Category {
	out := make([]models.Category, 0, len(s.categories))
	for _, c := range s.categories {
		if c.IsActive {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Order < out[j].Order
	})
	return out
}

// Len returns the snapshot size.
func (s *Store) Len() int {
	return len(s.products)
}

// List applies filter and sort, then pages with offset/limit. The second
// return value is the total match count before paging. Out-of-range pages
// yield empty slices, never errors.
func (s *Store) List(filter Filter, order SortOrder, offset, limit int) ([]models.Product, int) {
	matched := make([]models.Product, 0, len(s.products))
	for i := range s.products {
		if filter.matches(&s.products[i]) {
			matched = append(matched, s.products[i])
		}
	}

	sortProducts(matched, order)

	total := len(matched)
	if offset < 0 {
		offset = 0
	}
	if offset >= total {
		return []models.Product{}, total
	}
	matched = matched[offset:]
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, total
}

func (f *Filter) matches(p *models.Product) bool {
	if f.Status != "" && p.Status != f.Status {
		return false
	}
	if f.CategoryID != "" && p.CategoryID != f.CategoryID {
		return false
	}
	if f.Fabric != "" && !strings.EqualFold(p.Cultural.Fabric, f.Fabric) {
		return false
	}
	if f.Work != "" && !strings.EqualFold(p.Cultural.Work, f.Work) {
		return false
	}
	if f.Region != "" && !strings.EqualFold(p.Cultural.Region, f.Region) {
		return false
	}
	if f.Occasion != "" && !containsFold(p.Cultural.Occasions, f.Occasion) {
		return false
	}
	if f.Color != "" && !containsFold(p.Cultural.ColorFamily, f.Color) {
		return false
	}
	if f.Tag != "" && !containsFold(p.Tags, f.Tag) {
		return false
	}
	if f.MinPrice > 0 && p.Price < f.MinPrice {
		return false
	}
	if f.MaxPrice > 0 && p.Price > f.MaxPrice {
		return false
	}
	if f.Query != "" && !matchesQuery(p, f.Query) {
		return false
	}
	return true
}

func matchesQuery(p *models.Product, query string) bool {
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(p.Name), q) {
		return true
	}
	if strings.Contains(strings.ToLower(p.Description), q) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}

// sortProducts orders products in place. Stable sorts keep snapshot order
// among ties, so listings are deterministic.
func sortProducts(products []models.Product, order SortOrder) {
	switch order {
	case SortPriceAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price < products[j].Price
		})
	case SortPriceDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price > products[j].Price
		})
	case SortNewest:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].CreatedAt.After(products[j].CreatedAt)
		})
	case SortRating:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Rating > products[j].Rating
		})
	default:
		// featured: snapshot order
	}
}
