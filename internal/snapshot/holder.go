// Vastra - Ethnic Fashion Storefront Backend
// Copyright 2026 Vastra Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vastralabs/vastra

// Package snapshot holds the current catalog snapshot and the
// recommendation engine built over it. Catalog refreshes publish a new
// bundle atomically; readers always see a consistent catalog/engine pair.
package snapshot

import (
	"sync/atomic"

	"github.com/vastralabs/vastra/internal/catalog"
	"github.com/vastralabs/vastra/internal/models"
	"github.com/vastralabs/vastra/internal/recommend"
)

// Bundle is one consistent catalog/engine pair.
type Bundle struct {
	Catalog *catalog.Store
	Engine  *recommend.Engine
}

// Holder publishes bundles atomically.
type Holder struct {
	current atomic.Pointer[Bundle]
}

// NewHolder builds a holder seeded with the given bundle.
func NewHolder(bundle *Bundle) *Holder {
	h := &Holder{}
	h.current.Store(bundle)
	return h
}

// Swap publishes a new bundle.
func (h *Holder) Swap(bundle *Bundle) {
	h.current.Store(bundle)
}

// Catalog returns the current catalog store.
func (h *Holder) Catalog() *catalog.Store {
	return h.current.Load().Catalog
}

// Engine returns the current recommendation engine.
func (h *Holder) Engine() *recommend.Engine {
	return h.current.Load().Engine
}

// Product resolves a product in the current snapshot. Holder satisfies
// the cart and wishlist ProductLookup interfaces, so those services
// always price against the latest catalog.
func (h *Holder) Product(id string) (models.Product, bool) {
	return h.Catalog().Product(id)
}

// RecordInteraction forwards a signal to the current engine. Holder
// satisfies the relay's InteractionRecorder, so signals land in whatever
// engine is live after a refresh swap.
func (h *Holder) RecordInteraction(userID, productID string, typ recommend.InteractionType) {
	h.Engine().RecordInteraction(userID, productID, typ)
}
