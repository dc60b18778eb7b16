// Vastra - Ethnic Fashion Storefront Backend
// Copyright 2026 Vastra Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vastralabs/vastra

package recommend

import (
	"fmt"
	"sync"
	"testing"
)

func TestMemoryStore_AppendAndList(t *testing.T) {
	s := NewMemoryStore(100)

	s.Append("u1", Interaction{ProductID: "p1", Type: InteractionView, Weight: 1})
	s.Append("u1", Interaction{ProductID: "p2", Type: InteractionCartAdd, Weight: 3})

	got := s.List("u1")
	if len(got) != 2 {
		t.Fatalf("List() returned %d entries, want 2", len(got))
	}
	if got[0].ProductID != "p1" || got[1].ProductID != "p2" {
		t.Errorf("List() order = [%s, %s], want oldest first", got[0].ProductID, got[1].ProductID)
	}
}

func TestMemoryStore_UnknownUserEmpty(t *testing.T) {
	s := NewMemoryStore(100)
	if got := s.List("nobody"); len(got) != 0 {
		t.Errorf("List(unknown) returned %d entries, want 0", len(got))
	}
}

func TestMemoryStore_FIFOEviction(t *testing.T) {
	s := NewMemoryStore(100)

	for i := 0; i < 150; i++ {
		s.Append("u1", Interaction{ProductID: fmt.Sprintf("p%03d", i), Type: InteractionView, Weight: 1})
	}

	got := s.List("u1")
	if len(got) != 100 {
		t.Fatalf("List() returned %d entries, want exactly 100", len(got))
	}
	// The oldest 50 must be gone; the survivors are p050..p149 in order.
	if got[0].ProductID != "p050" {
		t.Errorf("oldest surviving entry = %s, want p050", got[0].ProductID)
	}
	if got[99].ProductID != "p149" {
		t.Errorf("newest entry = %s, want p149", got[99].ProductID)
	}
}

func TestMemoryStore_ListReturnsCopy(t *testing.T) {
	s := NewMemoryStore(100)
	s.Append("u1", Interaction{ProductID: "p1", Type: InteractionView, Weight: 1})

	got := s.List("u1")
	got[0].ProductID = "mutated"

	if again := s.List("u1"); again[0].ProductID != "p1" {
		t.Error("List() exposes internal storage; callers can mutate history")
	}
}

func TestMemoryStore_ConcurrentAppend(t *testing.T) {
	s := NewMemoryStore(1000)

	var wg sync.WaitGroup
	for g := 0; g < 10; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				s.Append("u1", Interaction{ProductID: "p1", Type: InteractionView, Weight: 1})
			}
		}()
	}
	wg.Wait()

	if got := len(s.List("u1")); got != 500 {
		t.Errorf("concurrent appends recorded %d entries, want 500", got)
	}
}
