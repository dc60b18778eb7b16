// Vastra - Ethnic Fashion Storefront Backend
// Copyright 2026 Vastra Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vastralabs/vastra

package api

import (
	"errors"
	"net/http"

	"github.com/vastralabs/vastra/internal/auth"
)

// Login exchanges admin credentials for a bearer token.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req loginRequest
	if details, err := decodeAndValidate(r, h.validate, &req); err != nil {
		if details != nil {
			rw.ValidationFailed(details)
			return
		}
		rw.BadRequest(err.Error())
		return
	}

	token, err := h.authn.Login(req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidCredentials):
			rw.Unauthorized("invalid credentials")
		case errors.Is(err, auth.ErrNotConfigured):
			rw.Error(http.StatusServiceUnavailable, ErrCodeInternalError, "authentication not configured")
		default:
			h.logger.Error().Err(err).Msg("login failed")
			rw.InternalError("login failed")
		}
		return
	}

	rw.Success(map[string]string{
		"token":      token,
		"token_type": "Bearer",
	})
}
