// Vastra - Ethnic Fashion Storefront Backend
// Copyright 2026 Vastra Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vastralabs/vastra

package cart

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
		"saree-1": {ID: "saree-1", Name: "Silk Saree", Price: 4500, Status: models.StatusActive},
		"kurta-1": {ID: "kurta-1", Name: "Kurta", Price: 1200, Status: models.StatusActive},
		"gone-1":  {ID: "gone-1", Name: "Sold Out", Price: 900, Status: models.StatusOutOfStock},
	}
	return NewService(NewMemoryRepository(), catalog, zerolog.Nop())
}

func TestAddItem_NewLine(t *testing.T) {
	s := newTestService()

	state, err := s.AddItem("u1", "saree-1", 2, "M", "red")
	if err != nil {
		t.Fatalf("AddItem() error = %v", err)
	}
	if len(state.Items) != 1 {
		t.Fatalf("cart has %d lines, want 1", len(state.Items))
	}
	item := state.Items[0]
	if item.ID != "saree-1-M-red" {
		t.Errorf("line ID = %q, want saree-1-M-red", item.ID)
	}
	if item.Quantity != 2 || item.Price != 4500 {
		t.Errorf("line = qty %d price %v, want qty 2 price 4500", item.Quantity, item.Price)
	}
}

func TestAddItem_MergesSameVariant(t *testing.T) {
	s := newTestService()

	if _, err := s.AddItem("u1", "saree-1", 1, "M", "red"); err != nil {
		t.Fatal(err)
	}
	state, err := s.AddItem("u1", "saree-1", 2, "M", "red")
	if err != nil {
		t.Fatal(err)
	}
	if len(state.Items) != 1 {
		t.Fatalf("cart has %d lines, want merged single line", len(state.Items))
	}
	if state.Items[0].Quantity != 3 {
		t.Errorf("merged quantity = %d, want 3", state.Items[0].Quantity)
	}
}

func TestAddItem_DifferentVariantsSeparateLines(t *testing.T) {
	s := newTestService()

	if _, err := s.AddItem("u1", "saree-1", 1, "M", "red"); err != nil {
		t.Fatal(err)
	}
	state, err := s.AddItem("u1", "saree-1", 1, "L", "red")
	if err != nil {
		t.Fatal(err)
	}
	if len(state.Items) != 2 {
		t.Errorf("cart has %d lines, want 2 distinct variants", len(state.Items))
	}
}

func TestAddItem_EmptyColorDefaults(t *testing.T) {
	s := newTestService()

	state, err := s.AddItem("u1", "kurta-1", 1, "S", "")
	if err != nil {
		t.Fatal(err)
	}
	if state.Items[0].ID != "kurta-1-S-default" {
		t.Errorf("line ID = %q, want kurta-1-S-default", state.Items[0].ID)
	}
}

func TestAddItem_Errors(t *testing.T) {
	s := newTestService()

	if _, err := s.AddItem("u1", "nope", 1, "M", ""); !errors.Is(err, ErrProductNotFound) {
		t.Errorf("unknown product error = %v, want ErrProductNotFound", err)
	}
	if _, err := s.AddItem("u1", "gone-1", 1, "M", ""); !errors.Is(err, ErrProductUnavailable) {
		t.Errorf("out-of-stock error = %v, want ErrProductUnavailable", err)
	}
	if _, err := s.AddItem("u1", "saree-1", 0, "M", ""); !errors.Is(err, ErrInvalidQuantity) {
		t.Errorf("zero quantity error = %v, want ErrInvalidQuantity", err)
	}
}

func TestUpdateQuantity(t *testing.T) {
	s := newTestService()
	state, _ := s.AddItem("u1", "saree-1", 1, "M", "red")
	lineID := state.Items[0].ID

	state, err := s.UpdateQuantity("u1", lineID, 5)
	if err != nil {
		t.Fatal(err)
	}
	if state.Items[0].Quantity != 5 {
		t.Errorf("quantity = %d, want 5", state.Items[0].Quantity)
	}

	// Zero removes the line.
	state, err = s.UpdateQuantity("u1", lineID, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(state.Items) != 0 {
		t.Errorf("cart has %d lines after zero update, want 0", len(state.Items))
	}

	if _, err := s.UpdateQuantity("u1", "missing", 1); !errors.Is(err, ErrItemNotFound) {
		t.Errorf("missing line error = %v, want ErrItemNotFound", err)
	}
	if _, err := s.UpdateQuantity("u1", lineID, -1); !errors.Is(err, ErrInvalidQuantity) {
		t.Errorf("negative quantity error = %v, want ErrInvalidQuantity", err)
	}
}

func TestRemoveItemAndClear(t *testing.T) {
	s := newTestService()
	s.AddItem("u1", "saree-1", 1, "M", "red")
	state, _ := s.AddItem("u1", "kurta-1", 2, "S", "")

	state, err := s.RemoveItem("u1", "saree-1-M-red")
	if err != nil {
		t.Fatal(err)
	}
	if len(state.Items) != 1 || state.Items[0].ProductID != "kurta-1" {
		t.Errorf("after remove: %+v, want only kurta-1", state.Items)
	}

	state, err = s.Clear("u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(state.Items) != 0 {
		t.Errorf("after clear: %d lines, want 0", len(state.Items))
	}
}

func TestTotalsAndCounts(t *testing.T) {
	s := newTestService()
	s.AddItem("u1", "saree-1", 2, "M", "red") // 9000
	state, _ := s.AddItem("u1", "kurta-1", 3, "S", "") // 3600

	if got := ItemCount(state); got != 5 {
		t.Errorf("ItemCount() = %d, want 5", got)
	}
	if got := Total(state); got != 12600 {
		t.Errorf("Total() = %v, want 12600", got)
	}
}

func TestGet_EmptyCartForUnknownUser(t *testing.T) {
	s := newTestService()

	state, err := s.Get("nobody")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if len(state.Items) != 0 {
		t.Errorf("unknown user cart has %d lines, want 0", len(state.Items))
	}
}

func TestCartsIsolatedPerUser(t *testing.T) {
	s := newTestService()
	s.AddItem("u1", "saree-1", 1, "M", "red")
	s.AddItem("u2", "kurta-1", 1, "S", "")

	u1, _ := s.Get("u1")
	u2, _ := s.Get("u2")
	if len(u1.Items) != 1 || u1.Items[0].ProductID != "saree-1" {
		t.Errorf("u1 cart = %+v", u1.Items)
	}
	if len(u2.Items) != 1 || u2.Items[0].ProductID != "kurta-1" {
		t.Errorf("u2 cart = %+v", u2.Items)
	}
}
