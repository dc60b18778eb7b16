// Vastra - Ethnic Fashion Storefront Backend
// Copyright 2026 Vastra Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vastralabs/vastra

package recommend

import (
	"math"
	"sort"
)

// Profile derives the user's preference profile from their interaction
// history. Interactions referencing products that have left the snapshot
// are skipped. With no usable history the profile carries empty preference
// lists and the default price band.
func (e *Engine) Profile(userID string) PreferenceProfile {
	profile := PreferenceProfile{
		PriceLow:  e.cfg.Limits.DefaultPriceLow,
		PriceHigh: e.cfg.Limits.DefaultPriceHigh,
	}

	history := e.store.List(userID)
	if len(history) == 0 {
		return profile
	}

	categories := newWeightedCounter()
	fabrics := newWeightedCounter()
	colors := newWeightedCounter()
	occasions := newWeightedCounter()
	var prices []float64

	for _, rec := range history {
		idx, ok := e.byID[rec.ProductID]
		if !ok {
			continue
		}
		p := &e.catalog[idx]

		categories.add(p.CategoryID, rec.Weight)
		fabrics.add(p.Cultural.Fabric, rec.Weight)
		for _, c := range p.Cultural.ColorFamily {
			colors.add(c, rec.Weight)
		}
		for _, o := range p.Cultural.Occasions {
			occasions.add(o, rec.Weight)
		}
		prices = append(prices, p.Price)
	}

	top := e.cfg.Limits.TopPreferences
	profile.PreferredCategories = categories.top(top)
	profile.PreferredFabrics = fabrics.top(top)
	profile.PreferredColors = colors.top(top)
	profile.PreferredOccasions = occasions.top(top)

	if len(prices) > 0 {
		sort.Float64s(prices)
		profile.PriceLow = percentile(prices, 0.25)
		profile.PriceHigh = percentile(prices, 0.75)
	}

	return profile
}

// percentile returns the floor-index percentile of sorted ascending prices.
// The floor-index convention (no interpolation) is part of the profile's
// pinned behavior.
func percentile(sorted []float64, q float64) float64 {
	idx := int(math.Floor(float64(len(sorted)) * q))
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

// weightedCounter accumulates weights per key and remembers first-seen
// order so that top() is deterministic: weight descending, ties broken by
// insertion order. Map iteration order alone would violate determinism.
type weightedCounter struct {
	weights map[string]float64
	order   map[string]int
	n       int
}

func newWeightedCounter() *weightedCounter {
	return &weightedCounter{
		weights: make(map[string]float64),
		order:   make(map[string]int),
	}
}

func (c *weightedCounter) add(key string, weight float64) {
	if key == "" {
		return
	}
	if _, ok := c.weights[key]; !ok {
		c.order[key] = c.n
		c.n++
	}
	c.weights[key] += weight
}

func (c *weightedCounter) top(k int) []string {
	keys := make([]string, 0, len(c.weights))
	for key := range c.weights {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		wi, wj := c.weights[keys[i]], c.weights[keys[j]]
		if wi != wj {
			return wi > wj
		}
		return c.order[keys[i]] < c.order[keys[j]]
	})
	if len(keys) > k {
		keys = keys[:k]
	}
	return keys
}
