// Vastra - Ethnic Fashion Storefront Backend
// Copyright 2026 Vastra Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vastralabs/vastra

package analytics

import (
	"fmt"

	"github.com/goccy/go-json"
)

// DecodePayload builds the typed payload for a kind from its JSON body.
// Unknown kinds are rejected; callers that want to accept arbitrary
// events should send KindOther explicitly.
func DecodePayload(kind Kind, raw []byte) (Payload, error) {
	if len(raw) == 0 {
		raw = []byte("{}")
	}

	var (
		payload Payload
		err     error
	)
	switch kind {
	case KindPageView:
		payload, err = decodeAs[PageView](raw)
	case KindProductView:
		payload, err = decodeAs[ProductView](raw)
	case KindAddToCart:
		payload, err = decodeAs[AddToCart](raw)
	case KindRemoveFromCart:
		payload, err = decodeAs[RemoveFromCart](raw)
	case KindCartView:
		payload, err = decodeAs[CartView](raw)
	case KindBeginCheckout:
		payload, err = decodeAs[BeginCheckout](raw)
	case KindPurchase:
		payload, err = decodeAs[Purchase](raw)
	case KindAddToWishlist:
		payload, err = decodeAs[AddToWishlist](raw)
	case KindSearch:
		payload, err = decodeAs[Search](raw)
	case KindFilterApplied:
		payload, err = decodeAs[FilterApplied](raw)
	case KindCategoryView:
		payload, err = decodeAs[CategoryView](raw)
	case KindLogin:
		payload, err = decodeAs[Login](raw)
	case KindSignup:
		payload, err = decodeAs[Signup](raw)
	case KindOther:
		payload, err = decodeAs[Other](raw)
	default:
		return nil, fmt.Errorf("unknown event kind %q", kind)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s payload: %w", kind, err)
	}
	return payload, nil
}

func decodeAs[T Payload](raw []byte) (Payload, error) {
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return v, nil
}
