// Vastra - Ethnic Fashion Storefront Backend
// Copyright 2026 Vastra Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vastralabs/vastra

package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/vastralabs/vastra/internal/analytics"
	"github.com/vastralabs/vastra/internal/auth"
	"github.com/vastralabs/vastra/internal/cart"
	"github.com/vastralabs/vastra/internal/config"
	"github.com/vastralabs/vastra/internal/events"
	"github.com/vastralabs/vastra/internal/orders"
	"github.com/vastralabs/vastra/internal/snapshot"
	"github.com/vastralabs/vastra/internal/wishlist"
)

// Handler holds the service dependencies behind the HTTP surface.
type Handler struct {
	snapshot  *snapshot.Holder
	carts     *cart.Service
	wishlists *wishlist.Service
	orders    *orders.Service
	analytics *analytics.Service
	authn     *auth.Authenticator
	bus       *events.Bus
	cfg       config.APIConfig
	validate  *validator.Validate
	logger    zerolog.Logger
	startedAt time.Time
}

// HandlerDeps bundles the Handler constructor arguments.
type HandlerDeps struct {
	Snapshot  *snapshot.Holder
	Carts     *cart.Service
	Wishlists *wishlist.Service
	Orders    *orders.Service
	Analytics *analytics.Service
	Auth      *auth.Authenticator
	Bus       *events.Bus
	Config    config.APIConfig
	Logger    zerolog.Logger
}

// NewHandler builds the API handler set.
func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{
		snapshot:  deps.Snapshot,
		carts:     deps.Carts,
		wishlists: deps.Wishlists,
		orders:    deps.Orders,
		analytics: deps.Analytics,
		authn:     deps.Auth,
		bus:       deps.Bus,
		cfg:       deps.Config,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
		logger:    deps.Logger.With().Str("component", "api").Logger(),
		startedAt: time.Now(),
	}
}

// userID resolves the acting user. The storefront is anonymous; clients
// carry a stable ID in the X-User-ID header (the web client generates
// one per browser). Query user_id is accepted for GET endpoints.
func userID(r *http.Request) string {
	if id := r.Header.Get("X-User-ID"); id != "" {
		return id
	}
	if id := r.URL.Query().Get("user_id"); id != "" {
		return id
	}
	return "guest"
}

// sessionID resolves the client session for analytics, if supplied.
func sessionID(r *http.Request) string {
	return r.Header.Get("X-Session-ID")
}

// pagination parses offset/limit with the configured bounds.
func (h *Handler) pagination(r *http.Request) (offset, limit int) {
	q := r.URL.Query()
	limit = h.cfg.DefaultPageSize
	if raw := q.Get("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			limit = v
		}
	}
	if limit > h.cfg.MaxPageSize {
		limit = h.cfg.MaxPageSize
	}
	if raw := q.Get("offset"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			offset = v
		}
	}
	return offset, limit
}

// Health reports service status and catalog size.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	rw.Success(map[string]interface{}{
		"status":         "ok",
		"uptime_seconds": int64(time.Since(h.startedAt).Seconds()),
		"catalog_size":   h.snapshot.Catalog().Len(),
	})
}

// HealthLive is the liveness probe.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(map[string]string{"status": "alive"})
}

// HealthReady is the readiness probe: ready once a catalog snapshot is
// loaded.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if h.snapshot.Catalog().Len() == 0 {
		rw.Error(http.StatusServiceUnavailable, ErrCodeInternalError, "catalog not loaded")
		return
	}
	rw.Success(map[string]string{"status": "ready"})
}
