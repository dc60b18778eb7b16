// Vastra - Ethnic Fashion Storefront Backend
// Copyright 2026 Vastra Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vastralabs/vastra

package catalog

import (
	"testing"
	"time"

	"github.com/vastralabs/vastra/internal/models"
)

var storeBase = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

func testProducts() []models.Product {
	return []models.Product{
		{
			ID: "saree-1", Name: "Banarasi Silk Saree", Description: "Handwoven zari work",
			Price: 8500, CategoryID: "sarees", Status: models.StatusActive,
			Cultural: models.Cultural{
				Fabric: "silk", Work: "zari", Region: "varanasi",
				Occasions: []string{"wedding"}, ColorFamily: []string{"red", "gold"},
			},
			Tags: []string{"handloom", "trending"}, Rating: 4.8,
			CreatedAt: storeBase.AddDate(0, 0, -5),
		},
		{
			ID: "saree-2", Name: "Cotton Tant Saree", Description: "Everyday bengal cotton",
			Price: 1200, CategoryID: "sarees", Status: models.StatusActive,
			Cultural: models.Cultural{
				Fabric: "cotton", Work: "handloom", Region: "bengal",
				Occasions: []string{"casual"}, ColorFamily: []string{"white", "blue"},
			},
			Tags: []string{"handloom"}, Rating: 4.2,
			CreatedAt: storeBase.AddDate(0, 0, -40),
		},
		{
			ID: "kurta-1", Name: "Chikankari Kurta", Description: "Lucknow embroidery",
			Price: 2400, CategoryID: "kurtas", Status: models.StatusActive,
			Cultural: models.Cultural{
				Fabric: "cotton", Work: "chikankari", Region: "lucknow",
				Occasions: []string{"festival", "casual"}, ColorFamily: []string{"white"},
			},
			Tags: []string{"embroidery"}, Rating: 4.5,
			CreatedAt: storeBase.AddDate(0, 0, -15),
		},
		{
			ID: "lehenga-1", Name: "Bridal Lehenga", Description: "Heavy zardozi work",
			Price: 24000, CategoryID: "lehengas", Status: models.StatusOutOfStock,
			Cultural: models.Cultural{
				Fabric: "velvet", Work: "zardozi", Region: "rajasthan",
				Occasions: []string{"wedding"}, ColorFamily: []string{"maroon"},
			},
			Tags: []string{"bridal"}, Rating: 4.9,
			CreatedAt: storeBase.AddDate(0, 0, -2),
		},
	}
}

func testCategories() []models.Category {
	return []models.Category{
		{ID: "lehengas", Name: "Lehengas", Slug: "lehengas", Order: 3, IsActive: true},
		{ID: "sarees", Name: "Sarees", Slug: "sarees", Order: 1, IsActive: true},
		{ID: "kurtas", Name: "Kurtas", Slug: "kurtas", Order: 2, IsActive: true},
		{ID: "archive", Name: "Archive", Slug: "archive", Order: 0, IsActive: false},
	}
}

func newTestStore() *Store {
	return NewStore(testProducts(), testCategories())
}

func listIDs(products []models.Product) []string {
	ids := make([]string, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}
	return ids
}

func TestStore_ProductLookup(t *testing.T) {
	s := newTestStore()

	p, ok := s.Product("kurta-1")
	if !ok {
		t.Fatal("Product(kurta-1) not found")
	}
	if p.Name != "Chikankari Kurta" {
		t.Errorf("Product(kurta-1).Name = %q", p.Name)
	}

	if _, ok := s.Product("nope"); ok {
		t.Error("Product(nope) = found, want missing")
	}
}

func TestStore_Categories_ActiveSortedByOrder(t *testing.T) {
	s := newTestStore()

	cats := s.Categories()
	if len(cats) != 3 {
		t.Fatalf("Categories() returned %d, want 3 active", len(cats))
	}
	want := []string{"sarees", "kurtas", "lehengas"}
	for i, c := range cats {
		if c.ID != want[i] {
			t.Errorf("Categories()[%d] = %s, want %s", i, c.ID, want[i])
		}
	}
}

func TestStore_List_FilterByCategory(t *testing.T) {
	s := newTestStore()

	got, total := s.List(Filter{CategoryID: "sarees"}, SortFeatured, 0, 0)
	if total != 2 || len(got) != 2 {
		t.Fatalf("List(category=sarees) = %d results (total %d), want 2", len(got), total)
	}
	for _, p := range got {
		if p.CategoryID != "sarees" {
			t.Errorf("got product %s from category %s", p.ID, p.CategoryID)
		}
	}
}

func TestStore_List_CulturalFilters(t *testing.T) {
	s := newTestStore()

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"fabric case-insensitive", Filter{Fabric: "Cotton"}, []string{"saree-2", "kurta-1"}},
		{"work", Filter{Work: "zari"}, []string{"saree-1"}},
		{"region", Filter{Region: "bengal"}, []string{"saree-2"}},
		{"occasion", Filter{Occasion: "wedding"}, []string{"saree-1", "lehenga-1"}},
		{"color", Filter{Color: "white"}, []string{"saree-2", "kurta-1"}},
		{"tag", Filter{Tag: "handloom"}, []string{"saree-1", "saree-2"}},
		{"price band", Filter{MinPrice: 2000, MaxPrice: 10000}, []string{"saree-1", "kurta-1"}},
		{"status", Filter{Status: models.StatusOutOfStock}, []string{"lehenga-1"}},
		{"combined", Filter{Fabric: "cotton", Occasion: "casual", MaxPrice: 2000}, []string{"saree-2"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := s.List(tt.filter, SortFeatured, 0, 0)
			ids := listIDs(got)
			if len(ids) != len(tt.want) {
				t.Fatalf("List() = %v, want %v", ids, tt.want)
			}
			for i := range ids {
				if ids[i] != tt.want[i] {
					t.Fatalf("List() = %v, want %v", ids, tt.want)
				}
			}
		})
	}
}

func TestStore_List_Query(t *testing.T) {
	s := newTestStore()

	got, _ := s.List(Filter{Query: "embroidery"}, SortFeatured, 0, 0)
	// Matches kurta-1 by description and tag.
	if len(got) != 1 || got[0].ID != "kurta-1" {
		t.Errorf("List(query=embroidery) = %v, want [kurta-1]", listIDs(got))
	}

	got, _ = s.List(Filter{Query: "SAREE"}, SortFeatured, 0, 0)
	if len(got) != 2 {
		t.Errorf("List(query=SAREE) = %v, want both sarees", listIDs(got))
	}
}

func TestStore_List_Sorts(t *testing.T) {
	s := newTestStore()

	tests := []struct {
		order SortOrder
		want  []string
	}{
		{SortPriceAsc, []string{"saree-2", "kurta-1", "saree-1", "lehenga-1"}},
		{SortPriceDesc, []string{"lehenga-1", "saree-1", "kurta-1", "saree-2"}},
		{SortNewest, []string{"lehenga-1", "saree-1", "kurta-1", "saree-2"}},
		{SortRating, []string{"lehenga-1", "saree-1", "kurta-1", "saree-2"}},
		{SortFeatured, []string{"saree-1", "saree-2", "kurta-1", "lehenga-1"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.order), func(t *testing.T) {
			got, _ := s.List(Filter{}, tt.order, 0, 0)
			ids := listIDs(got)
			for i := range tt.want {
				if ids[i] != tt.want[i] {
					t.Fatalf("List(%s) = %v, want %v", tt.order, ids, tt.want)
				}
			}
		})
	}
}

func TestStore_List_Pagination(t *testing.T) {
	s := newTestStore()

	got, total := s.List(Filter{}, SortFeatured, 1, 2)
	if total != 4 {
		t.Errorf("total = %d, want 4", total)
	}
	ids := listIDs(got)
	if len(ids) != 2 || ids[0] != "saree-2" || ids[1] != "kurta-1" {
		t.Errorf("List(offset=1, limit=2) = %v, want [saree-2 kurta-1]", ids)
	}

	got, total = s.List(Filter{}, SortFeatured, 100, 2)
	if len(got) != 0 || total != 4 {
		t.Errorf("out-of-range page = %v (total %d), want empty with total 4", listIDs(got), total)
	}

	got, _ = s.List(Filter{}, SortFeatured, -5, 0)
	if len(got) != 4 {
		t.Errorf("negative offset = %d results, want all 4", len(got))
	}
}

func TestStore_ProductsReturnsCopy(t *testing.T) {
	s := newTestStore()

	all := s.Products()
	all[0].Name = "mutated"

	if p, _ := s.Product("saree-1"); p.Name == "mutated" {
		t.Error("Products() exposes internal storage")
	}
}
