// Vastra - Ethnic Fashion Storefront Backend
// Copyright 2026 Vastra Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vastralabs/vastra

// Package auth implements the admin authentication gate: a single
// bcrypt-checked credential pair exchanged for a signed JWT. Storefront
// endpoints are anonymous; only the analytics admin surface is gated.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials is returned for unknown users or wrong
	// passwords. Callers must not distinguish the two.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken is returned for expired, malformed, or
	// wrongly-signed tokens.
	ErrInvalidToken = errors.New("invalid token")

	// ErrNotConfigured is returned when no admin credentials are set.
	ErrNotConfigured = errors.New("admin authentication not configured")
)

// Claims is the JWT payload for admin sessions.
type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// Config holds the authenticator settings.
type Config struct {
	// JWTSecret signs tokens (HS256).
	JWTSecret string

	// TokenTTL is the token lifetime.
	TokenTTL time.Duration

	// AdminUsername and AdminPasswordHash (bcrypt) are the only
	// accepted credential pair.
	AdminUsername     string
	AdminPasswordHash string
}

// Authenticator issues and verifies admin tokens.
type Authenticator struct {
	cfg    Config
	logger zerolog.Logger
	now    func() time.Time
}

// NewAuthenticator builds an authenticator.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewAuthenticator(cfg Config, logger zerolog.Logger) *Authenticator {
	return &Authenticator{
		cfg:    cfg,
		logger: logger.With().Str("component", "auth").Logger(),
		now:    time.Now,
	}
}

// SetClock overrides the time source. Tests only.
func (a *Authenticator) SetClock(now func() time.Time) {
	a.now = now
}

// Configured reports whether admin credentials are set.
func (a *Authenticator) Configured() bool {
	return a.cfg.AdminUsername != "" && a.cfg.AdminPasswordHash != "" && a.cfg.JWTSecret != ""
}

// Login checks the credential pair and issues a signed token. The bcrypt
// comparison runs even for unknown usernames so response timing does not
// leak which usernames exist.
func (a *Authenticator) Login(username, password string) (string, error) {
	if !a.Configured() {
		return "", ErrNotConfigured
	}

	hash := a.cfg.AdminPasswordHash
	if username != a.cfg.AdminUsername {
		// Dummy hash keeps the comparison cost constant.
		hash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil || username != a.cfg.AdminUsername {
		a.logger.Warn().Str("username", username).Msg("failed login attempt")
		return "", ErrInvalidCredentials
	}

	now := a.now()
	claims := Claims{
		Username: username,
		Role:     "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "vastra",
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.cfg.TokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(a.cfg.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	a.logger.Info().Str("username", username).Msg("admin login")
	return signed, nil
}

// VerifyToken validates a token and returns its claims.
func (a *Authenticator) VerifyToken(tokenString string) (*Claims, error) {
	if a.cfg.JWTSecret == "" {
		return nil, ErrNotConfigured
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(a.cfg.JWTSecret), nil
	}, jwt.WithTimeFunc(a.now))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// HashPassword produces a bcrypt hash for operator tooling.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}
