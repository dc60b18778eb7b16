// Vastra - Ethnic Fashion Storefront Backend
// Copyright 2026 Vastra Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vastralabs/vastra

package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/vastralabs/vastra/internal/models"
)

func writeSeedFile(t *testing.T, snap *Snapshot) string {
	t.Helper()
	data, err := json.Marshal(snap)
	if err != nil {
		t.Fatalf("marshal seed: %v", err)
	}
	path := filepath.Join(t.TempDir(), "catalog.json")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write seed: %v", err)
	}
	return path
}

func TestFetcher_SeedFileOnly(t *testing.T) {
	seed := writeSeedFile(t, &Snapshot{
		Products: []models.Product{{ID: "p1", Name: "Saree", Price: 1000, Status: models.StatusActive}},
	})

	f := NewFetcher(FetcherConfig{SeedFile: seed}, zerolog.Nop())
	snap, err := f.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if len(snap.Products) != 1 || snap.Products[0].ID != "p1" {
		t.Errorf("Fetch() products = %+v, want [p1]", snap.Products)
	}
}

func TestFetcher_Remote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(Snapshot{
			Products: []models.Product{{ID: "remote-1", Name: "Kurta", Price: 900, Status: models.StatusActive}},
		})
	}))
	defer srv.Close()

	f := NewFetcher(FetcherConfig{URL: srv.URL, RequestsPerSecond: 100}, zerolog.Nop())
	snap, err := f.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if len(snap.Products) != 1 || snap.Products[0].ID != "remote-1" {
		t.Errorf("Fetch() products = %+v, want [remote-1]", snap.Products)
	}
}

func TestFetcher_RemoteFailureFallsBackToSeed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	seed := writeSeedFile(t, &Snapshot{
		Products: []models.Product{{ID: "seed-1", Name: "Dupatta", Price: 400, Status: models.StatusActive}},
	})

	f := NewFetcher(FetcherConfig{URL: srv.URL, SeedFile: seed, RequestsPerSecond: 100}, zerolog.Nop())
	snap, err := f.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error = %v, want seed fallback", err)
	}
	if len(snap.Products) != 1 || snap.Products[0].ID != "seed-1" {
		t.Errorf("Fetch() products = %+v, want [seed-1]", snap.Products)
	}
}

func TestFetcher_BreakerOpensAfterConsecutiveFailures(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	f := NewFetcher(FetcherConfig{
		URL:                srv.URL,
		RequestsPerSecond:  1000,
		BreakerMaxFailures: 3,
	}, zerolog.Nop())

	for i := 0; i < 10; i++ {
		if _, err := f.Fetch(context.Background()); err == nil {
			t.Fatal("Fetch() succeeded against failing upstream")
		}
	}

	// After three consecutive failures the breaker is open, so later
	// attempts fail fast without reaching the upstream.
	if got := calls.Load(); got != 3 {
		t.Errorf("upstream saw %d calls, want 3 before the circuit opened", got)
	}
}

func TestFetcher_NoSourceConfigured(t *testing.T) {
	f := NewFetcher(FetcherConfig{}, zerolog.Nop())
	if _, err := f.Fetch(context.Background()); err == nil {
		t.Error("Fetch() with no URL and no seed file should error")
	}
}

func TestStoreFromSnapshot_DropsInvalidProducts(t *testing.T) {
	snap := &Snapshot{
		Products: []models.Product{
			{ID: "good", Name: "Saree", Price: 1000, Status: models.StatusActive},
			{ID: "", Name: "No ID", Price: 500},
			{ID: "bad-status", Name: "Odd", Price: 700, Status: models.ProductStatus("retired")},
			{ID: "defaulted", Name: "Kurta", Price: 800},
		},
	}

	s := StoreFromSnapshot(snap, zerolog.Nop())
	if s.Len() != 2 {
		t.Fatalf("StoreFromSnapshot() kept %d products, want 2", s.Len())
	}
	if _, ok := s.Product("good"); !ok {
		t.Error("valid product was dropped")
	}
	p, ok := s.Product("defaulted")
	if !ok {
		t.Fatal("product with empty status was dropped")
	}
	if p.Status != models.StatusActive {
		t.Errorf("empty status defaulted to %q, want active", p.Status)
	}
}
