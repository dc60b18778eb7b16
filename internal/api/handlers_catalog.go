// Vastra - Ethnic Fashion Storefront Backend
// Copyright 2026 Vastra Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vastralabs/vastra

package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/vastralabs/vastra/internal/analytics"
	"github.com/vastralabs/vastra/internal/catalog"
	"github.com/vastralabs/vastra/internal/events"
	"github.com/vastralabs/vastra/internal/models"
	"github.com/vastralabs/vastra/internal/recommend"
)

// Products lists the catalog with filters, sorting, and pagination.
// Listings are active-only; lifecycle filtering is not exposed.
func (h *Handler) Products(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	q := r.URL.Query()

	filter := catalog.Filter{
		CategoryID: q.Get("category"),
		Fabric:     q.Get("fabric"),
		Work:       q.Get("work"),
		Region:     q.Get("region"),
		Occasion:   q.Get("occasion"),
		Color:      q.Get("color"),
		Tag:        q.Get("tag"),
		Query:      q.Get("q"),
		Status:     models.StatusActive,
	}
	if raw := q.Get("min_price"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 {
			rw.BadRequest("min_price must be a non-negative number")
			return
		}
		filter.MinPrice = v
	}
	if raw := q.Get("max_price"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 {
			rw.BadRequest("max_price must be a non-negative number")
			return
		}
		filter.MaxPrice = v
	}

	order := catalog.SortOrder(q.Get("sort"))
	switch order {
	case "", catalog.SortFeatured, catalog.SortPriceAsc, catalog.SortPriceDesc, catalog.SortNewest, catalog.SortRating:
	default:
		rw.BadRequest("unknown sort order")
		return
	}

	offset, limit := h.pagination(r)
	products, total := h.snapshot.Catalog().List(filter, order, offset, limit)

	if filter.Query != "" {
		h.publishTracking(r, analytics.Search{Query: filter.Query, Results: total})
	}
	if filter.CategoryID != "" {
		h.publishTracking(r, analytics.CategoryView{CategoryID: filter.CategoryID})
	}
	for field, value := range map[string]string{
		"fabric": filter.Fabric, "work": filter.Work, "region": filter.Region,
		"occasion": filter.Occasion, "color": filter.Color, "tag": filter.Tag,
	} {
		if value != "" {
			h.publishTracking(r, analytics.FilterApplied{Field: field, Value: value})
		}
	}

	rw.SuccessWithPagination(products, &PaginationMeta{
		Total:   total,
		Count:   len(products),
		Offset:  offset,
		Limit:   limit,
		HasMore: offset+len(products) < total,
	})
}

// ProductByID returns a single product and records the view as both a
// recommendation signal and an analytics event.
func (h *Handler) ProductByID(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	productID := chi.URLParam(r, "id")
	product, ok := h.snapshot.Catalog().Product(productID)
	if !ok {
		rw.NotFound("product not found")
		return
	}

	h.publishInteraction(r, productID, recommend.InteractionView)
	h.publishTracking(r, analytics.ProductView{
		ProductID:  product.ID,
		CategoryID: product.CategoryID,
		Price:      product.Price,
	})

	rw.Success(product)
}

// Categories lists the active categories in display order.
func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(h.snapshot.Catalog().Categories())
}

// publishInteraction emits a recommendation signal on the bus.
func (h *Handler) publishInteraction(r *http.Request, productID string, typ recommend.InteractionType) {
	h.bus.PublishInteraction(events.InteractionEvent{
		UserID:     userID(r),
		ProductID:  productID,
		Type:       string(typ),
		OccurredAt: time.Now(),
	})
}

// publishTracking emits an analytics event on the bus.
func (h *Handler) publishTracking(r *http.Request, payload analytics.Payload) {
	body, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error().Err(err).Str("kind", string(payload.Kind())).Msg("failed to encode tracking payload")
		return
	}
	h.bus.PublishTracking(events.TrackingEvent{
		UserID:     userID(r),
		SessionID:  sessionID(r),
		Kind:       string(payload.Kind()),
		Payload:    body,
		OccurredAt: time.Now(),
	})
}
