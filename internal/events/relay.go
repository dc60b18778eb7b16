// Vastra - Ethnic Fashion Storefront Backend
// Copyright 2026 Vastra Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vastralabs/vastra

package events

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/vastralabs/vastra/internal/analytics"
	"github.com/vastralabs/vastra/internal/metrics"
	"github.com/vastralabs/vastra/internal/recommend"
)

// InteractionRecorder receives decoded interaction signals. The
// recommendation engine satisfies it.
type InteractionRecorder interface {
	RecordInteraction(userID, productID string, typ recommend.InteractionType)
}

// Tracker receives decoded tracking events. The analytics service
// satisfies it.
type Tracker interface {
	Track(userID, sessionID string, payload analytics.Payload) analytics.Event
}

// Relay consumes bus events and feeds the analytics service and the
// recommendation engine. Malformed messages are acked and dropped with a
// log line; the bus is in-process, so redelivery would just replay the
// same bad payload.
type Relay struct {
	subscriber message.Subscriber
	recorder   InteractionRecorder
	tracker    Tracker
	logger     zerolog.Logger
}

// NewRelay builds a relay over the given subscriber.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewRelay(subscriber message.Subscriber, recorder InteractionRecorder, tracker Tracker, logger zerolog.Logger) *Relay {
	return &Relay{
		subscriber: subscriber,
		recorder:   recorder,
		tracker:    tracker,
		logger:     logger.With().Str("component", "event-relay").Logger(),
	}
}

// Run consumes both topics until ctx is cancelled or the subscriber
// closes. It blocks; run it under the supervisor.
func (r *Relay) Run(ctx context.Context) error {
	interactions, err := r.subscriber.Subscribe(ctx, TopicInteractions)
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", TopicInteractions, err)
	}
	tracking, err := r.subscriber.Subscribe(ctx, TopicTracking)
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", TopicTracking, err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-interactions:
			if !ok {
				return nil
			}
			r.handleInteraction(msg)
			msg.Ack()
		case msg, ok := <-tracking:
			if !ok {
				return nil
			}
			r.handleTracking(msg)
			msg.Ack()
		}
	}
}

func (r *Relay) handleInteraction(msg *message.Message) {
	var event InteractionEvent
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		r.logger.Error().Err(err).Str("message_id", msg.UUID).Msg("dropping malformed interaction event")
		metrics.EventsRelayed.WithLabelValues(TopicInteractions, "dropped").Inc()
		return
	}
	r.recorder.RecordInteraction(event.UserID, event.ProductID, recommend.InteractionType(event.Type))
	metrics.InteractionsRecorded.WithLabelValues(event.Type).Inc()
	metrics.EventsRelayed.WithLabelValues(TopicInteractions, "ok").Inc()
}

func (r *Relay) handleTracking(msg *message.Message) {
	var event TrackingEvent
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		r.logger.Error().Err(err).Str("message_id", msg.UUID).Msg("dropping malformed tracking event")
		metrics.EventsRelayed.WithLabelValues(TopicTracking, "dropped").Inc()
		return
	}

	payload, err := analytics.DecodePayload(analytics.Kind(event.Kind), event.Payload)
	if err != nil {
		r.logger.Error().Err(err).
			Str("message_id", msg.UUID).
			Str("kind", event.Kind).
			Msg("dropping undecodable tracking event")
		metrics.EventsRelayed.WithLabelValues(TopicTracking, "dropped").Inc()
		return
	}
	r.tracker.Track(event.UserID, event.SessionID, payload)
	metrics.EventsRelayed.WithLabelValues(TopicTracking, "ok").Inc()
}
