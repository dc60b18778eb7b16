// Vastra - Ethnic Fashion Storefront Backend
// Copyright 2026 Vastra Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vastralabs/vastra

package recommend

import (
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/vastralabs/vastra/internal/models"
)

// Engine produces blended product recommendations over a fixed catalog
// snapshot. The snapshot is read-only after construction; callers rebuild
// the engine to pick up catalog changes. All read methods are total.
type Engine struct {
	cfg     *Config
	catalog []models.Product
	byID    map[string]int // product ID -> index in catalog
	store   InteractionStore
	logger  zerolog.Logger

	// now is injectable for deterministic trending scores in tests.
	now func() time.Time
}

// NewEngine creates an engine over the given catalog snapshot.
// A nil config uses defaults; a nil store gets an in-memory one sized to
// the configured history cap.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, catalog []models.Product, store InteractionStore, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if store == nil {
		store = NewMemoryStore(cfg.Limits.HistoryCap)
	}

	byID := make(map[string]int, len(catalog))
	for i := range catalog {
		byID[catalog[i].ID] = i
	}

	return &Engine{
		cfg:     cfg,
		catalog: catalog,
		byID:    byID,
		store:   store,
		logger:  logger.With().Str("component", "recommend").Logger(),
		now:     time.Now,
	}, nil
}

// SetClock overrides the engine's time source. Tests use this to pin
// trending recency.
func (e *Engine) SetClock(now func() time.Time) {
	e.now = now
}

// CatalogSize returns the number of products in the snapshot.
func (e *Engine) CatalogSize() int {
	return len(e.catalog)
}

// Recommend blends up to three candidate pools into at most BlendK
// deduplicated products, in fixed priority order:
//
//  1. similar to the anchor product, when productID is non-empty
//  2. personalized for the user
//  3. trending catalog-wide
//
// Unknown users and products degrade to smaller pools; the trending pool
// fills remaining slots since it iterates independently.
func (e *Engine) Recommend(userID, productID string) []models.Product {
	blended := make([]models.Product, 0, e.cfg.Limits.BlendK)

	if productID != "" {
		blended = append(blended, head(e.SimilarProducts(productID), e.cfg.Pools.Similar)...)
	}
	blended = append(blended, head(e.PersonalizedRecommendations(userID), e.cfg.Pools.Personalized)...)
	blended = append(blended, head(e.TrendingProducts(), e.cfg.Pools.Trending)...)

	return head(dedupeByID(blended), e.cfg.Limits.BlendK)
}

// SimilarProducts scores every other product in the snapshot against the
// anchor and returns the top PoolK by similarity, snapshot order preserved
// among ties. An unknown anchor yields an empty slice.
//
// Candidates are not filtered by status in this path; inactive and
// out-of-stock products can appear. This mirrors the shipped scoring
// behavior and is pinned by a test so any future filter is a deliberate,
// visible change.
func (e *Engine) SimilarProducts(productID string) []models.Product {
	idx, ok := e.byID[productID]
	if !ok {
		return nil
	}
	anchor := &e.catalog[idx]

	scored := make([]scoredProduct, 0, len(e.catalog))
	for i := range e.catalog {
		if e.catalog[i].ID == productID {
			continue
		}
		scored = append(scored, scoredProduct{
			index: i,
			score: e.similarityScore(anchor, &e.catalog[i]),
		})
	}

	return e.topK(scored, e.cfg.Limits.PoolK)
}

// TrendingProducts ranks active products by recency, price band and the
// trending tag, returning the top PoolK.
func (e *Engine) TrendingProducts() []models.Product {
	now := e.now()

	scored := make([]scoredProduct, 0, len(e.catalog))
	for i := range e.catalog {
		if e.catalog[i].Status != models.StatusActive {
			continue
		}
		scored = append(scored, scoredProduct{
			index: i,
			score: e.trendingScore(&e.catalog[i], now),
		})
	}

	return e.topK(scored, e.cfg.Limits.PoolK)
}

// PersonalizedRecommendations derives the user's preference profile from
// their interaction history and ranks active products against it,
// returning the top PoolK. Users with no history still get results: every
// product scores at least the price-band term against the default band.
func (e *Engine) PersonalizedRecommendations(userID string) []models.Product {
	profile := e.Profile(userID)

	scored := make([]scoredProduct, 0, len(e.catalog))
	for i := range e.catalog {
		if e.catalog[i].Status != models.StatusActive {
			continue
		}
		scored = append(scored, scoredProduct{
			index: i,
			score: e.personalizationScore(&e.catalog[i], profile),
		})
	}

	return e.topK(scored, e.cfg.Limits.PoolK)
}

// RecordInteraction appends an interaction to the user's history with the
// weight for the given type. Unknown products are silently ignored.
func (e *Engine) RecordInteraction(userID, productID string, typ InteractionType) {
	if _, ok := e.byID[productID]; !ok {
		e.logger.Debug().
			Str("user_id", userID).
			Str("product_id", productID).
			Msg("interaction for unknown product dropped")
		return
	}

	e.store.Append(userID, Interaction{
		ProductID: productID,
		Type:      typ,
		Weight:    typ.Weight(),
		Timestamp: e.now(),
	})
}

// topK stable-sorts scored candidates descending and materializes the top
// k products. Stable sort preserves snapshot order among equal scores.
func (e *Engine) topK(scored []scoredProduct, k int) []models.Product {
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})
	if len(scored) > k {
		scored = scored[:k]
	}

	out := make([]models.Product, len(scored))
	for i, s := range scored {
		out[i] = e.catalog[s.index]
	}
	return out
}

// head returns at most n leading elements of products.
func head(products []models.Product, n int) []models.Product {
	if len(products) > n {
		return products[:n]
	}
	return products
}

// dedupeByID removes duplicate product IDs, first occurrence wins.
func dedupeByID(products []models.Product) []models.Product {
	seen := make(map[string]struct{}, len(products))
	out := products[:0]
	for _, p := range products {
		if _, ok := seen[p.ID]; ok {
			continue
		}
		seen[p.ID] = struct{}{}
		out = append(out, p)
	}
	return out
}
