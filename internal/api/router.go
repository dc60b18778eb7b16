// Vastra - Ethnic Fashion Storefront Backend
// Copyright 2026 Vastra Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vastralabs/vastra

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vastralabs/vastra/internal/config"
	"github.com/vastralabs/vastra/internal/metrics"
	"github.com/vastralabs/vastra/internal/middleware"
)

// NewRouter assembles the HTTP routing tree.
func NewRouter(h *Handler, sec config.SecurityConfig) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   sec.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID", "X-User-ID", "X-Session-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	if !sec.RateLimitDisabled {
		r.Use(httprate.Limit(
			sec.RateLimitReqs,
			sec.RateLimitWindow,
			httprate.WithKeyFuncs(httprate.KeyByIP),
			httprate.WithLimitHandler(rateLimited),
		))
	}
	r.Use(middleware.PrometheusMetrics)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", h.Health)
		r.Get("/health/live", h.HealthLive)
		r.Get("/health/ready", h.HealthReady)

		r.Post("/auth/login", h.Login)

		r.Get("/products", h.Products)
		r.Get("/products/{id}", h.ProductByID)
		r.Get("/categories", h.Categories)

		r.Get("/recommendations", h.Recommendations)
		r.Get("/recommendations/similar/{productID}", h.SimilarProducts)
		r.Get("/recommendations/trending", h.TrendingProducts)
		r.Get("/recommendations/personalized/{userID}", h.PersonalizedRecommendations)
		r.Post("/interactions", h.RecordInteraction)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", h.GetCart)
			r.Post("/items", h.AddCartItem)
			r.Patch("/items/{itemID}", h.UpdateCartItem)
			r.Delete("/items/{itemID}", h.RemoveCartItem)
			r.Delete("/", h.ClearCart)
		})

		r.Route("/wishlist", func(r chi.Router) {
			r.Get("/", h.GetWishlist)
			r.Post("/items", h.AddWishlistItem)
			r.Delete("/items/{productID}", h.RemoveWishlistItem)
		})

		r.Post("/checkout", h.Checkout)
		r.Get("/orders", h.ListOrders)
		r.Get("/orders/{id}", h.GetOrder)

		r.Route("/analytics", func(r chi.Router) {
			r.Post("/events", h.TrackEvent)
			r.With(middleware.RequireAdmin(h.authn)).Get("/metrics", h.AnalyticsMetrics)
		})
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}

// rateLimited writes the envelope 429 and counts the rejection.
func rateLimited(w http.ResponseWriter, r *http.Request) {
	metrics.APIRateLimitHits.WithLabelValues(r.URL.Path).Inc()
	NewResponseWriter(w, r).Error(http.StatusTooManyRequests, "RATE_LIMITED", "too many requests")
}
