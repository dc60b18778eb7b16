// Vastra - Ethnic Fashion Storefront Backend
// Copyright 2026 Vastra Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vastralabs/vastra

package recommend

import (
	"errors"
	"fmt"
)

// Config holds all engine scoring weights and limits. Every constant the
// scoring formulas use lives here so tests and deployments can pin them.
type Config struct {
	Similarity      SimilarityWeights      `koanf:"similarity"`
	Trending        TrendingWeights        `koanf:"trending"`
	Personalization PersonalizationWeights `koanf:"personalization"`
	Pools           PoolSizes              `koanf:"pools"`
	Limits          Limits                 `koanf:"limits"`
}

// SimilarityWeights configures the anchor-product similarity score.
// Terms are additive and deliberately not normalized to a fixed range.
type SimilarityWeights struct {
	// Category is added once when category IDs match.
	Category float64 `koanf:"category"`

	// TagOverlap is added per shared tag.
	TagOverlap float64 `koanf:"tag_overlap"`

	// ColorOverlap is added per shared color family.
	ColorOverlap float64 `koanf:"color_overlap"`

	// Fabric is added once on an exact fabric match.
	Fabric float64 `koanf:"fabric"`

	// Work is added once on an exact work match.
	Work float64 `koanf:"work"`

	// Price scales the price-proximity term, which is itself in [0, 1].
	Price float64 `koanf:"price"`
}

// TrendingWeights configures the catalog-wide trending score.
type TrendingWeights struct {
	// Recency scales the linear recency decay term.
	Recency float64 `koanf:"recency"`

	// RecencyWindowDays is the age at which recency decays to zero.
	RecencyWindowDays float64 `koanf:"recency_window_days"`

	// BudgetPrice is added for products priced under PriceThreshold,
	// RegularPrice otherwise.
	BudgetPrice    float64 `koanf:"budget_price"`
	RegularPrice   float64 `koanf:"regular_price"`
	PriceThreshold float64 `koanf:"price_threshold"`

	// TagBoost is added when the product carries TagName.
	TagBoost float64 `koanf:"tag_boost"`
	TagName  string  `koanf:"tag_name"`
}

// PersonalizationWeights configures the preference-profile score.
type PersonalizationWeights struct {
	// Category is added once when the category is preferred.
	Category float64 `koanf:"category"`

	// Fabric is added once when the fabric is preferred (fabric is
	// single-valued, so this is binary, not a count).
	Fabric float64 `koanf:"fabric"`

	// ColorOverlap is added per color family shared with the profile.
	ColorOverlap float64 `koanf:"color_overlap"`

	// PriceRange is added once when the price falls inside the profile's
	// band, bounds inclusive.
	PriceRange float64 `koanf:"price_range"`

	// OccasionOverlap is added per shared occasion, only when the profile
	// has preferred occasions at all.
	OccasionOverlap float64 `koanf:"occasion_overlap"`
}

// PoolSizes bounds each candidate pool's contribution to the blend.
type PoolSizes struct {
	Similar      int `koanf:"similar"`
	Personalized int `koanf:"personalized"`
	Trending     int `koanf:"trending"`
}

// Limits bounds engine output and history retention.
type Limits struct {
	// PoolK caps each individual pool method's result length.
	PoolK int `koanf:"pool_k"`

	// BlendK caps the blended Recommend result length.
	BlendK int `koanf:"blend_k"`

	// HistoryCap caps per-user interaction history (FIFO eviction).
	HistoryCap int `koanf:"history_cap"`

	// TopPreferences is the number of values kept per profile dimension.
	TopPreferences int `koanf:"top_preferences"`

	// DefaultPriceLow/High is the price band assumed with no history.
	DefaultPriceLow  float64 `koanf:"default_price_low"`
	DefaultPriceHigh float64 `koanf:"default_price_high"`
}

// DefaultConfig returns the production scoring configuration.
func DefaultConfig() *Config {
	return &Config{
		Similarity: SimilarityWeights{
			Category:     0.3,
			TagOverlap:   0.1,
			ColorOverlap: 0.15,
			Fabric:       0.2,
			Work:         0.15,
			Price:        0.1,
		},
		Trending: TrendingWeights{
			Recency:           0.3,
			RecencyWindowDays: 30,
			BudgetPrice:       0.3,
			RegularPrice:      0.1,
			PriceThreshold:    5000,
			TagBoost:          0.4,
			TagName:           "trending",
		},
		Personalization: PersonalizationWeights{
			Category:        0.3,
			Fabric:          0.2,
			ColorOverlap:    0.15,
			PriceRange:      0.2,
			OccasionOverlap: 0.1,
		},
		Pools: PoolSizes{
			Similar:      3,
			Personalized: 4,
			Trending:     3,
		},
		Limits: Limits{
			PoolK:            10,
			BlendK:           8,
			HistoryCap:       100,
			TopPreferences:   3,
			DefaultPriceLow:  0,
			DefaultPriceHigh: 10000,
		},
	}
}

// Validate checks configuration invariants.
func (c *Config) Validate() error {
	if c.Limits.PoolK <= 0 {
		return errors.New("limits.pool_k must be positive")
	}
	if c.Limits.BlendK <= 0 {
		return errors.New("limits.blend_k must be positive")
	}
	if c.Limits.HistoryCap <= 0 {
		return errors.New("limits.history_cap must be positive")
	}
	if c.Limits.TopPreferences <= 0 {
		return errors.New("limits.top_preferences must be positive")
	}
	if c.Limits.DefaultPriceHigh < c.Limits.DefaultPriceLow {
		return errors.New("limits.default_price_high must be >= default_price_low")
	}
	if c.Trending.RecencyWindowDays <= 0 {
		return errors.New("trending.recency_window_days must be positive")
	}
	if c.Trending.PriceThreshold < 0 {
		return errors.New("trending.price_threshold must be non-negative")
	}
	if c.Trending.TagName == "" {
		return errors.New("trending.tag_name must be set")
	}
	total := c.Pools.Similar + c.Pools.Personalized + c.Pools.Trending
	if total <= 0 {
		return errors.New("pools must allow at least one candidate")
	}
	if total < c.Limits.BlendK {
		return fmt.Errorf("pool sizes sum to %d, below blend_k %d", total, c.Limits.BlendK)
	}
	return nil
}
