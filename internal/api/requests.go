// Vastra - Ethnic Fashion Storefront Backend
// Copyright 2026 Vastra Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vastralabs/vastra

package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
)

// maxRequestBody bounds JSON request bodies.
const maxRequestBody = 1 << 20 // 1 MiB

// interactionRequest records a recommendation signal.
type interactionRequest struct {
	UserID    string `json:"user_id" validate:"required,max=128"`
	ProductID string `json:"product_id" validate:"required,max=128"`
	Type      string `json:"type" validate:"required,oneof=view cart_add purchase wishlist_add review"`
}

// cartAddRequest adds a product variant to the cart.
type cartAddRequest struct {
	ProductID string `json:"product_id" validate:"required,max=128"`
	Quantity  int    `json:"quantity" validate:"required,gt=0,lte=99"`
	Size      string `json:"size" validate:"required,max=32"`
	Color     string `json:"color" validate:"max=64"`
}

// cartUpdateRequest changes a line quantity. Zero removes the line.
type cartUpdateRequest struct {
	Quantity *int `json:"quantity" validate:"required,gte=0,lte=99"`
}

// wishlistAddRequest saves a product.
type wishlistAddRequest struct {
	ProductID string `json:"product_id" validate:"required,max=128"`
}

// trackRequest ingests an analytics event.
type trackRequest struct {
	SessionID string          `json:"session_id" validate:"max=128"`
	Kind      string          `json:"kind" validate:"required,max=64"`
	Payload   json.RawMessage `json:"payload"`
}

// loginRequest exchanges admin credentials for a token.
type loginRequest struct {
	Username string `json:"username" validate:"required,max=128"`
	Password string `json:"password" validate:"required,max=256"`
}

// decodeAndValidate reads the JSON body into dst and runs validation.
// The returned details (field -> constraint) feed ValidationFailed.
func decodeAndValidate(r *http.Request, validate *validator.Validate, dst interface{}) (map[string]string, error) {
	body := io.LimitReader(r.Body, maxRequestBody)
	decoder := json.NewDecoder(body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return nil, fmt.Errorf("invalid JSON body: %w", err)
	}

	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			details := make(map[string]string, len(verrs))
			for _, fe := range verrs {
				details[fe.Field()] = fe.Tag()
			}
			return details, fmt.Errorf("validation failed")
		}
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	return nil, nil
}
