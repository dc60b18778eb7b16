// Vastra - Ethnic Fashion Storefront Backend
// Copyright 2026 Vastra Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vastralabs/vastra

package duckdbsink

import (
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/vastralabs/vastra/internal/analytics"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestSink(t *testing.T) *Sink {
	t.Helper()
	s, err := Open("", zerolog.Nop())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
	})
	return s
}

func TestSink_WriteAndCount(t *testing.T) {
	s := newTestSink(t)

	events := []analytics.Event{
		{ID: "e1", UserID: "u1", SessionID: "s1", Timestamp: testNow, Payload: analytics.PageView{Path: "/"}},
		{ID: "e2", UserID: "u1", SessionID: "s1", Timestamp: testNow, Payload: analytics.ProductView{ProductID: "saree-1"}},
		{ID: "e3", UserID: "u2", SessionID: "s2", Timestamp: testNow, Payload: analytics.PageView{Path: "/products"}},
	}
	for _, e := range events {
		if err := s.Write(e); err != nil {
			t.Fatalf("Write(%s) error = %v", e.ID, err)
		}
	}

	count, err := s.EventCount()
	if err != nil {
		t.Fatalf("EventCount() error = %v", err)
	}
	if count != 3 {
		t.Errorf("EventCount() = %d, want 3", count)
	}
}

func TestSink_CountsByKind(t *testing.T) {
	s := newTestSink(t)

	s.Write(analytics.Event{ID: "e1", Timestamp: testNow, Payload: analytics.PageView{Path: "/"}})
	s.Write(analytics.Event{ID: "e2", Timestamp: testNow, Payload: analytics.PageView{Path: "/p"}})
	s.Write(analytics.Event{ID: "e3", Timestamp: testNow, Payload: analytics.Purchase{OrderID: "o1", Revenue: 100}})

	counts, err := s.CountsByKind(testNow.Add(-time.Hour))
	if err != nil {
		t.Fatalf("CountsByKind() error = %v", err)
	}
	if len(counts) != 2 {
		t.Fatalf("CountsByKind() = %+v, want 2 kinds", counts)
	}
	if counts[0].Kind != string(analytics.KindPageView) || counts[0].Count != 2 {
		t.Errorf("top kind = %+v, want page_view x2", counts[0])
	}
}

func TestSink_Prune(t *testing.T) {
	s := newTestSink(t)

	s.Write(analytics.Event{ID: "old", Timestamp: testNow.AddDate(0, 0, -100), Payload: analytics.PageView{Path: "/"}})
	s.Write(analytics.Event{ID: "new", Timestamp: testNow, Payload: analytics.PageView{Path: "/"}})

	removed, err := s.Prune(testNow.AddDate(0, 0, -90))
	if err != nil {
		t.Fatalf("Prune() error = %v", err)
	}
	if removed != 1 {
		t.Errorf("Prune() removed %d, want 1", removed)
	}

	count, _ := s.EventCount()
	if count != 1 {
		t.Errorf("EventCount() after prune = %d, want 1", count)
	}
}

func TestSink_DuplicateIDRejected(t *testing.T) {
	s := newTestSink(t)

	e := analytics.Event{ID: "e1", Timestamp: testNow, Payload: analytics.PageView{Path: "/"}}
	if err := s.Write(e); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := s.Write(e); err == nil {
		t.Error("Write() duplicate ID succeeded, want primary key violation")
	}
}
