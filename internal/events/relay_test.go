// Vastra - Ethnic Fashion Storefront Backend
// Copyright 2026 Vastra Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vastralabs/vastra

package events

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/vastralabs/vastra/internal/analytics"
	"github.com/vastralabs/vastra/internal/recommend"
)

type recordedInteraction struct {
	userID    string
	productID string
	typ       recommend.InteractionType
}

type fakeRecorder struct {
	mu   sync.Mutex
	seen []recordedInteraction
}

func (f *fakeRecorder) RecordInteraction(userID, productID string, typ recommend.InteractionType) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seen = append(f.seen, recordedInteraction{userID, productID, typ})
}

func (f *fakeRecorder) interactions() []recordedInteraction {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]recordedInteraction, len(f.seen))
	copy(out, f.seen)
	return out
}

type fakeTracker struct {
	mu   sync.Mutex
	seen []analytics.Payload
}

func (f *fakeTracker) Track(userID, sessionID string, payload analytics.Payload) analytics.Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seen = append(f.seen, payload)
	return analytics.Event{Payload: payload}
}

func (f *fakeTracker) payloads() []analytics.Payload {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]analytics.Payload, len(f.seen))
	copy(out, f.seen)
	return out
}

// signallingSubscriber closes ready once the relay has subscribed to both
// topics, so tests don't publish into a bus with no subscribers yet.
type signallingSubscriber struct {
	message.Subscriber
	mu    sync.Mutex
	count int
	ready chan struct{}
}

func (s *signallingSubscriber) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	ch, err := s.Subscriber.Subscribe(ctx, topic)
	s.mu.Lock()
	if err == nil {
		s.count++
		if s.count == 2 {
			close(s.ready)
		}
	}
	s.mu.Unlock()
	return ch, err
}

func startRelay(t *testing.T) (*Bus, *fakeRecorder, *fakeTracker) {
	t.Helper()

	bus := NewBus(Config{BufferSize: 16}, zerolog.Nop())
	recorder := &fakeRecorder{}
	tracker := &fakeTracker{}
	sub := &signallingSubscriber{Subscriber: bus.Subscriber(), ready: make(chan struct{})}
	relay := NewRelay(sub, recorder, tracker, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = relay.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
		_ = bus.Close()
	})

	select {
	case <-sub.ready:
	case <-time.After(2 * time.Second):
		t.Fatal("relay did not subscribe before deadline")
	}
	return bus, recorder, tracker
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not reached before deadline")
}

func TestRelay_DeliversInteractions(t *testing.T) {
	bus, recorder, _ := startRelay(t)

	bus.PublishInteraction(InteractionEvent{
		UserID:     "u1",
		ProductID:  "saree-1",
		Type:       string(recommend.InteractionPurchase),
		OccurredAt: time.Now(),
	})

	waitFor(t, func() bool { return len(recorder.interactions()) == 1 })
	got := recorder.interactions()[0]
	if got.userID != "u1" || got.productID != "saree-1" || got.typ != recommend.InteractionPurchase {
		t.Errorf("relayed interaction = %+v", got)
	}
}

func TestRelay_DeliversTrackingEvents(t *testing.T) {
	bus, _, tracker := startRelay(t)

	payload, _ := json.Marshal(analytics.ProductView{ProductID: "saree-1", Price: 4500})
	bus.PublishTracking(TrackingEvent{
		UserID:    "u1",
		SessionID: "sess1",
		Kind:      string(analytics.KindProductView),
		Payload:   payload,
	})

	waitFor(t, func() bool { return len(tracker.payloads()) == 1 })
	pv, ok := tracker.payloads()[0].(analytics.ProductView)
	if !ok {
		t.Fatalf("payload type = %T, want ProductView", tracker.payloads()[0])
	}
	if pv.ProductID != "saree-1" || pv.Price != 4500 {
		t.Errorf("relayed payload = %+v", pv)
	}
}

func TestRelay_DropsMalformedTrackingEvents(t *testing.T) {
	bus, _, tracker := startRelay(t)

	bus.PublishTracking(TrackingEvent{Kind: "no_such_kind", Payload: []byte(`{}`)})
	bus.PublishTracking(TrackingEvent{
		Kind:    string(analytics.KindPageView),
		Payload: []byte(`{"path":"/"}`),
	})

	// The good event lands; the bad one is dropped without stalling the
	// relay.
	waitFor(t, func() bool { return len(tracker.payloads()) == 1 })
	if _, ok := tracker.payloads()[0].(analytics.PageView); !ok {
		t.Errorf("surviving payload = %T, want PageView", tracker.payloads()[0])
	}
}
