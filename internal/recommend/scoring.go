// Vastra - Ethnic Fashion Storefront Backend
// Copyright 2026 Vastra Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vastralabs/vastra

package recommend

import (
	"time"

	"github.com/vastralabs/vastra/internal/models"
)

// similarityScore computes the additive content similarity between the
// anchor and a candidate. Terms contribute independently and the total is
// not normalized to a fixed range:
//
//	category match        +w.Category
//	shared tags           +w.TagOverlap per tag
//	shared color families +w.ColorOverlap per color
//	exact fabric match    +w.Fabric
//	exact work match      +w.Work
//	price proximity       +w.Price * max(0, 1 - |pa-pb|/max(pa,pb))
func (e *Engine) similarityScore(anchor, candidate *models.Product) float64 {
	w := e.cfg.Similarity
	var score float64

	if anchor.CategoryID == candidate.CategoryID {
		score += w.Category
	}

	score += w.TagOverlap * float64(overlapCount(anchor.Tags, candidate.Tags))
	score += w.ColorOverlap * float64(overlapCount(anchor.Cultural.ColorFamily, candidate.Cultural.ColorFamily))

	if anchor.Cultural.Fabric == candidate.Cultural.Fabric {
		score += w.Fabric
	}
	if anchor.Cultural.Work == candidate.Cultural.Work {
		score += w.Work
	}

	score += w.Price * priceSimilarity(anchor.Price, candidate.Price)

	return score
}

// priceSimilarity maps two prices to [0, 1]: 1 for equal prices, decaying
// linearly with the relative difference. Two zero prices are a perfect
// match; max(pa, pb) would be zero and divide.
func priceSimilarity(a, b float64) float64 {
	if a == 0 && b == 0 {
		return 1
	}
	maxPrice := a
	if b > maxPrice {
		maxPrice = b
	}
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	sim := 1 - diff/maxPrice
	if sim < 0 {
		return 0
	}
	return sim
}

// trendingScore computes recency * weight + price band + tag boost.
// Recency decays linearly to zero at the configured window; products older
// than the window contribute nothing from that term.
func (e *Engine) trendingScore(p *models.Product, now time.Time) float64 {
	w := e.cfg.Trending

	daysSinceCreated := now.Sub(p.CreatedAt).Hours() / 24
	recency := 1 - daysSinceCreated/w.RecencyWindowDays
	if recency < 0 {
		recency = 0
	}

	priceScore := w.RegularPrice
	if p.Price < w.PriceThreshold {
		priceScore = w.BudgetPrice
	}

	var tagScore float64
	if p.HasTag(w.TagName) {
		tagScore = w.TagBoost
	}

	return w.Recency*recency + priceScore + tagScore
}

// personalizationScore scores a product against a preference profile.
func (e *Engine) personalizationScore(p *models.Product, profile PreferenceProfile) float64 {
	w := e.cfg.Personalization
	var score float64

	if containsString(profile.PreferredCategories, p.CategoryID) {
		score += w.Category
	}
	if containsString(profile.PreferredFabrics, p.Cultural.Fabric) {
		score += w.Fabric
	}

	score += w.ColorOverlap * float64(overlapCount(p.Cultural.ColorFamily, profile.PreferredColors))

	if p.Price >= profile.PriceLow && p.Price <= profile.PriceHigh {
		score += w.PriceRange
	}

	if len(profile.PreferredOccasions) > 0 {
		score += w.OccasionOverlap * float64(overlapCount(p.Cultural.Occasions, profile.PreferredOccasions))
	}

	return score
}

// overlapCount counts elements of a present in b. Duplicates in a count
// each time, matching the original element-wise filter semantics.
func overlapCount(a, b []string) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	set := make(map[string]struct{}, len(b))
	for _, s := range b {
		set[s] = struct{}{}
	}
	var n int
	for _, s := range a {
		if _, ok := set[s]; ok {
			n++
		}
	}
	return n
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
