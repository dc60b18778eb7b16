// Vastra - Ethnic Fashion Storefront Backend
// Copyright 2026 Vastra Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vastralabs/vastra

package recommend

import (
	"time"
)

// InteractionType classifies user-product interactions for implicit feedback.
type InteractionType string

const (
	// InteractionView is a product detail page view.
	InteractionView InteractionType = "view"
	// InteractionCartAdd is an add-to-cart action.
	InteractionCartAdd InteractionType = "cart_add"
	// InteractionPurchase is a completed purchase.
	InteractionPurchase InteractionType = "purchase"
	// InteractionWishlistAdd is an add-to-wishlist action.
	InteractionWishlistAdd InteractionType = "wishlist_add"
	// InteractionReview is a submitted product review.
	InteractionReview InteractionType = "review"
)

// Weight returns the preference weight for this interaction type.
// Higher values indicate stronger positive signal. Unrecognized types
// fall back to the view weight.
func (t InteractionType) Weight() float64 {
	switch t {
	case InteractionView:
		return 1
	case InteractionCartAdd:
		return 3
	case InteractionPurchase:
		return 5
	case InteractionWishlistAdd:
		return 2
	case InteractionReview:
		return 4
	default:
		return 1
	}
}

// Interaction is one recorded user-product interaction.
type Interaction struct {
	// ProductID is the interacted product.
	ProductID string `json:"product_id"`

	// Type classifies the interaction.
	Type InteractionType `json:"type"`

	// Weight is the preference weight derived from Type at record time.
	Weight float64 `json:"weight"`

	// Timestamp is when the interaction occurred.
	Timestamp time.Time `json:"timestamp"`
}

// InteractionStore is the pluggable per-user interaction log.
//
// Implementations enforce the history cap with FIFO eviction: once a user
// holds the maximum number of entries, appending drops the oldest first.
// The in-memory store suffices for a single process; production deployments
// back it with a durable store (see the storage package).
type InteractionStore interface {
	// Append records an interaction for the user, evicting the oldest
	// entry when the cap is reached.
	Append(userID string, rec Interaction)

	// List returns the user's interactions, oldest first. Unknown users
	// yield an empty slice.
	List(userID string) []Interaction
}

// PreferenceProfile is a user's derived preference summary. It is recomputed
// on demand from the interaction log and has no independent lifecycle.
type PreferenceProfile struct {
	// PreferredCategories are the top-3 categories by interaction weight.
	PreferredCategories []string `json:"preferred_categories"`

	// PreferredFabrics are the top-3 fabrics by interaction weight.
	PreferredFabrics []string `json:"preferred_fabrics"`

	// PreferredColors are the top-3 color families by interaction weight.
	PreferredColors []string `json:"preferred_colors"`

	// PreferredOccasions are the top-3 occasions by interaction weight.
	PreferredOccasions []string `json:"preferred_occasions"`

	// PriceLow and PriceHigh bound the preferred price band, derived from
	// the 25th/75th percentile of interacted product prices. Defaults to
	// [0, 10000] with no interactions.
	PriceLow  float64 `json:"price_low"`
	PriceHigh float64 `json:"price_high"`
}

// scoredProduct pairs a catalog index with its score for ranking.
// The index doubles as the stable tie-break: sort.SliceStable preserves
// snapshot order among equal scores.
type scoredProduct struct {
	index int
	score float64
}
