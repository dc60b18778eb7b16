// Vastra - Ethnic Fashion Storefront Backend
// Copyright 2026 Vastra Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vastralabs/vastra

package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestAuthenticator(t *testing.T) *Authenticator {
	t.Helper()
	hash, err := HashPassword("correct-horse")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	a := NewAuthenticator(Config{
		JWTSecret:         "0123456789abcdef0123456789abcdef",
		TokenTTL:          time.Hour,
		AdminUsername:     "admin",
		AdminPasswordHash: hash,
	}, zerolog.Nop())
	a.SetClock(func() time.Time { return testNow })
	return a
}

func TestLoginAndVerify(t *testing.T) {
	a := newTestAuthenticator(t)

	token, err := a.Login("admin", "correct-horse")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if token == "" {
		t.Fatal("Login() returned empty token")
	}

	claims, err := a.VerifyToken(token)
	if err != nil {
		t.Fatalf("VerifyToken() error = %v", err)
	}
	if claims.Username != "admin" || claims.Role != "admin" {
		t.Errorf("claims = %+v, want admin/admin", claims)
	}
}

func TestLogin_RejectsBadCredentials(t *testing.T) {
	a := newTestAuthenticator(t)

	if _, err := a.Login("admin", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password error = %v, want ErrInvalidCredentials", err)
	}
	if _, err := a.Login("intruder", "correct-horse"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown user error = %v, want ErrInvalidCredentials", err)
	}
}

func TestLogin_NotConfigured(t *testing.T) {
	a := NewAuthenticator(Config{}, zerolog.Nop())

	if _, err := a.Login("admin", "anything"); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("Login() error = %v, want ErrNotConfigured", err)
	}
}

func TestVerifyToken_Expired(t *testing.T) {
	a := newTestAuthenticator(t)

	token, err := a.Login("admin", "correct-horse")
	if err != nil {
		t.Fatal(err)
	}

	// Move the clock past the TTL.
	a.SetClock(func() time.Time { return testNow.Add(2 * time.Hour) })
	if _, err := a.VerifyToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("VerifyToken(expired) error = %v, want ErrInvalidToken", err)
	}
}

func TestVerifyToken_WrongSecret(t *testing.T) {
	a := newTestAuthenticator(t)
	token, err := a.Login("admin", "correct-horse")
	if err != nil {
		t.Fatal(err)
	}

	other := NewAuthenticator(Config{
		JWTSecret: "ffffffffffffffffffffffffffffffff",
		TokenTTL:  time.Hour,
	}, zerolog.Nop())
	other.SetClock(func() time.Time { return testNow })

	if _, err := other.VerifyToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("VerifyToken(wrong secret) error = %v, want ErrInvalidToken", err)
	}
}

func TestVerifyToken_Garbage(t *testing.T) {
	a := newTestAuthenticator(t)

	if _, err := a.VerifyToken("not-a-jwt"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("VerifyToken(garbage) error = %v, want ErrInvalidToken", err)
	}
}
