// Vastra - Ethnic Fashion Storefront Backend
// Copyright 2026 Vastra Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vastralabs/vastra

package wishlist

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/vastralabs/vastra/internal/models"
)

type fakeCatalog map[string]models.Product

func (f fakeCatalog) Product(id string) (models.Product, bool) {
	p, ok := f[id]
	return p, ok
}

func newTestService() *Service {
	catalog := fakeCatalog{
		"saree-1": {ID: "saree-1", Status: models.StatusActive},
		"kurta-1": {ID: "kurta-1", Status: models.StatusActive},
	}
	return NewService(NewMemoryRepository(), catalog, zerolog.Nop())
}

func TestAdd(t *testing.T) {
	s := newTestService()

	state, err := s.Add("u1", "saree-1")
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if len(state.Items) != 1 || state.Items[0].ProductID != "saree-1" {
		t.Errorf("wishlist = %+v, want [saree-1]", state.Items)
	}
	if state.Items[0].ID == "" {
		t.Error("wishlist entry has empty ID")
	}
}

func TestAdd_DeduplicatesProduct(t *testing.T) {
	s := newTestService()

	s.Add("u1", "saree-1")
	state, err := s.Add("u1", "saree-1")
	if err != nil {
		t.Fatalf("Add() repeat error = %v", err)
	}
	if len(state.Items) != 1 {
		t.Errorf("wishlist has %d entries after duplicate add, want 1", len(state.Items))
	}
}

func TestAdd_UnknownProduct(t *testing.T) {
	s := newTestService()

	if _, err := s.Add("u1", "nope"); !errors.Is(err, ErrProductNotFound) {
		t.Errorf("Add(unknown) error = %v, want ErrProductNotFound", err)
	}
}

func TestRemove(t *testing.T) {
	s := newTestService()
	s.Add("u1", "saree-1")
	s.Add("u1", "kurta-1")

	state, err := s.Remove("u1", "saree-1")
	if err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if len(state.Items) != 1 || state.Items[0].ProductID != "kurta-1" {
		t.Errorf("wishlist = %+v, want [kurta-1]", state.Items)
	}

	// Removing a product not on the list is a no-op.
	state, err = s.Remove("u1", "saree-1")
	if err != nil {
		t.Fatalf("Remove() repeat error = %v", err)
	}
	if len(state.Items) != 1 {
		t.Errorf("no-op remove changed the list: %+v", state.Items)
	}
}

func TestHas(t *testing.T) {
	s := newTestService()
	s.Add("u1", "saree-1")

	if ok, _ := s.Has("u1", "saree-1"); !ok {
		t.Error("Has(saree-1) = false, want true")
	}
	if ok, _ := s.Has("u1", "kurta-1"); ok {
		t.Error("Has(kurta-1) = true, want false")
	}
	if ok, _ := s.Has("stranger", "saree-1"); ok {
		t.Error("Has() for unknown user = true, want false")
	}
}

func TestItems_InsertionOrder(t *testing.T) {
	s := newTestService()
	s.Add("u1", "kurta-1")
	s.Add("u1", "saree-1")

	state, err := s.Items("u1")
	if err != nil {
		t.Fatalf("Items() error = %v", err)
	}
	if len(state.Items) != 2 ||
		state.Items[0].ProductID != "kurta-1" ||
		state.Items[1].ProductID != "saree-1" {
		t.Errorf("Items() = %+v, want insertion order kurta-1, saree-1", state.Items)
	}
}

func TestListsIsolatedPerUser(t *testing.T) {
	s := newTestService()
	s.Add("u1", "saree-1")
	s.Add("u2", "kurta-1")

	u1, _ := s.Items("u1")
	u2, _ := s.Items("u2")
	if len(u1.Items) != 1 || u1.Items[0].ProductID != "saree-1" {
		t.Errorf("u1 list = %+v", u1.Items)
	}
	if len(u2.Items) != 1 || u2.Items[0].ProductID != "kurta-1" {
		t.Errorf("u2 list = %+v", u2.Items)
	}
}
