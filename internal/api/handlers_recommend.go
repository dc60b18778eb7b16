// Vastra - Ethnic Fashion Storefront Backend
// Copyright 2026 Vastra Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vastralabs/vastra

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/vastralabs/vastra/internal/events"
	"github.com/vastralabs/vastra/internal/metrics"
)

// Recommendations returns the blended recommendation set for a user,
// optionally anchored on a product. At most 8 products, deduplicated.
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	q := r.URL.Query()

	start := time.Now()
	products := h.snapshot.Engine().Recommend(q.Get("user_id"), q.Get("product_id"))
	metrics.RecordRecommendation("blended", len(products), time.Since(start))

	rw.Success(products)
}

// SimilarProducts returns products similar to the anchor. Unknown
// anchors yield an empty list, not an error.
func (h *Handler) SimilarProducts(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	start := time.Now()
	products := h.snapshot.Engine().SimilarProducts(chi.URLParam(r, "productID"))
	metrics.RecordRecommendation("similar", len(products), time.Since(start))

	rw.Success(products)
}

// TrendingProducts returns the current trending ranking.
func (h *Handler) TrendingProducts(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	start := time.Now()
	products := h.snapshot.Engine().TrendingProducts()
	metrics.RecordRecommendation("trending", len(products), time.Since(start))

	rw.Success(products)
}

// PersonalizedRecommendations returns products matched to the user's
// interaction-derived preference profile.
func (h *Handler) PersonalizedRecommendations(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	start := time.Now()
	products := h.snapshot.Engine().PersonalizedRecommendations(chi.URLParam(r, "userID"))
	metrics.RecordRecommendation("personalized", len(products), time.Since(start))

	rw.Success(products)
}

// RecordInteraction ingests an explicit interaction signal.
func (h *Handler) RecordInteraction(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req interactionRequest
	if details, err := decodeAndValidate(r, h.validate, &req); err != nil {
		if details != nil {
			rw.ValidationFailed(details)
			return
		}
		rw.BadRequest(err.Error())
		return
	}

	// The relay feeds the engine asynchronously; unknown products are
	// dropped there, matching the engine's silent no-op semantics.
	h.bus.PublishInteraction(events.InteractionEvent{
		UserID:     req.UserID,
		ProductID:  req.ProductID,
		Type:       req.Type,
		OccurredAt: time.Now(),
	})
	rw.Accepted(map[string]string{"status": "recorded"})
}
