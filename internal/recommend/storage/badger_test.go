// Vastra - Ethnic Fashion Storefront Backend
// Copyright 2026 Vastra Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vastralabs/vastra

package storage

import (
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/vastralabs/vastra/internal/recommend"
)

func newTestStore(t *testing.T) *BadgerStore {
	t.Helper()
	s, err := NewBadgerStore("", 100, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewBadgerStore() error = %v", err)
	}
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
	})
	return s
}

func TestBadgerStore_AppendAndList(t *testing.T) {
	s := newTestStore(t)

	s.Append("u1", recommend.Interaction{ProductID: "p1", Type: recommend.InteractionView, Weight: 1})
	s.Append("u1", recommend.Interaction{ProductID: "p2", Type: recommend.InteractionPurchase, Weight: 5})

	got := s.List("u1")
	if len(got) != 2 {
		t.Fatalf("List() returned %d entries, want 2", len(got))
	}
	if got[0].ProductID != "p1" || got[1].ProductID != "p2" {
		t.Errorf("List() order = [%s, %s], want oldest first", got[0].ProductID, got[1].ProductID)
	}
	if got[1].Weight != 5 {
		t.Errorf("persisted weight = %v, want 5", got[1].Weight)
	}
}

func TestBadgerStore_UnknownUserEmpty(t *testing.T) {
	s := newTestStore(t)
	if got := s.List("nobody"); len(got) != 0 {
		t.Errorf("List(unknown) returned %d entries, want 0", len(got))
	}
}

func TestBadgerStore_FIFOEviction(t *testing.T) {
	s := newTestStore(t)

	for i := 0; i < 150; i++ {
		s.Append("u1", recommend.Interaction{
			ProductID: fmt.Sprintf("p%03d", i),
			Type:      recommend.InteractionView,
			Weight:    1,
		})
	}

	got := s.List("u1")
	if len(got) != 100 {
		t.Fatalf("List() returned %d entries, want exactly 100", len(got))
	}
	if got[0].ProductID != "p050" {
		t.Errorf("oldest surviving entry = %s, want p050", got[0].ProductID)
	}
	if got[99].ProductID != "p149" {
		t.Errorf("newest entry = %s, want p149", got[99].ProductID)
	}
}

func TestBadgerStore_UsersIsolated(t *testing.T) {
	s := newTestStore(t)

	s.Append("u1", recommend.Interaction{ProductID: "p1", Type: recommend.InteractionView, Weight: 1})
	s.Append("u2", recommend.Interaction{ProductID: "p2", Type: recommend.InteractionView, Weight: 1})

	if got := s.List("u1"); len(got) != 1 || got[0].ProductID != "p1" {
		t.Errorf("u1 history = %v, want only p1", got)
	}
	if got := s.List("u2"); len(got) != 1 || got[0].ProductID != "p2" {
		t.Errorf("u2 history = %v, want only p2", got)
	}
}
