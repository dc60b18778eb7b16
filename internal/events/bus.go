// Vastra - Ethnic Fashion Storefront Backend
// Copyright 2026 Vastra Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vastralabs/vastra

// Package events is the in-process event bus. Storefront handlers publish
// typed events on a Watermill GoChannel pub/sub; the relay subscribes and
// feeds the analytics service and the recommendation engine, keeping the
// request path free of aggregation work.
package events

import (
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/vastralabs/vastra/internal/metrics"
)

const (
	// TopicInteractions carries recommendation interaction signals.
	TopicInteractions = "storefront.interactions"

	// TopicTracking carries analytics tracking events.
	TopicTracking = "storefront.tracking"
)

// InteractionEvent is the wire form of a recommendation signal.
type InteractionEvent struct {
	UserID     string    `json:"user_id"`
	ProductID  string    `json:"product_id"`
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`
}

// TrackingEvent is the wire form of an analytics event. Payload is the
// kind-specific JSON body, decoded by the relay.
type TrackingEvent struct {
	UserID     string          `json:"user_id,omitempty"`
	SessionID  string          `json:"session_id,omitempty"`
	Kind       string          `json:"kind"`
	Payload    json.RawMessage `json:"payload"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// Config tunes the bus.
type Config struct {
	BufferSize   int64
	CloseTimeout time.Duration
}

// Bus owns the GoChannel pub/sub and the typed publish surface.
type Bus struct {
	pubsub       *gochannel.GoChannel
	closeTimeout time.Duration
	logger       zerolog.Logger
}

// NewBus builds the in-process bus.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewBus(cfg Config, logger zerolog.Logger) *Bus {
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = 1024
	}
	if cfg.CloseTimeout <= 0 {
		cfg.CloseTimeout = 10 * time.Second
	}

	log := logger.With().Str("component", "event-bus").Logger()
	pubsub := gochannel.NewGoChannel(gochannel.Config{
		OutputChannelBuffer: cfg.BufferSize,
	}, newWatermillLogger(log))

	return &Bus{pubsub: pubsub, closeTimeout: cfg.CloseTimeout, logger: log}
}

// PublishInteraction emits a recommendation signal. Publish failures are
// logged and swallowed: losing a signal must not fail the storefront
// action that produced it.
func (b *Bus) PublishInteraction(event InteractionEvent) {
	b.publish(TopicInteractions, event)
}

// PublishTracking emits an analytics tracking event.
func (b *Bus) PublishTracking(event TrackingEvent) {
	b.publish(TopicTracking, event)
}

func (b *Bus) publish(topic string, event interface{}) {
	payload, err := json.Marshal(event)
	if err != nil {
		b.logger.Error().Err(err).Str("topic", topic).Msg("failed to encode event")
		return
	}

	msg := message.NewMessage(uuid.NewString(), payload)
	if err := b.pubsub.Publish(topic, msg); err != nil {
		b.logger.Error().Err(err).Str("topic", topic).Msg("failed to publish event")
		return
	}
	metrics.EventsPublished.WithLabelValues(topic).Inc()
}

// Subscriber exposes the underlying subscriber for relays.
func (b *Bus) Subscriber() message.Subscriber {
	return b.pubsub
}

// Close shuts the bus down, closing all subscriber channels. Shutdown is
// bounded by CloseTimeout so a stuck subscriber cannot hang the process.
func (b *Bus) Close() error {
	done := make(chan error, 1)
	go func() { done <- b.pubsub.Close() }()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("close event bus: %w", err)
		}
		return nil
	case <-time.After(b.closeTimeout):
		return fmt.Errorf("event bus close timed out after %s", b.closeTimeout)
	}
}

// watermillLogger adapts zerolog to watermill.LoggerAdapter.
type watermillLogger struct {
	logger zerolog.Logger
}

func newWatermillLogger(logger zerolog.Logger) watermill.LoggerAdapter {
	return &watermillLogger{logger: logger}
}

func (l *watermillLogger) Error(msg string, err error, fields watermill.LogFields) {
	l.event(l.logger.Error().Err(err), msg, fields)
}

func (l *watermillLogger) Info(msg string, fields watermill.LogFields) {
	l.event(l.logger.Info(), msg, fields)
}

func (l *watermillLogger) Debug(msg string, fields watermill.LogFields) {
	l.event(l.logger.Debug(), msg, fields)
}

func (l *watermillLogger) Trace(msg string, fields watermill.LogFields) {
	l.event(l.logger.Trace(), msg, fields)
}

func (l *watermillLogger) With(fields watermill.LogFields) watermill.LoggerAdapter {
	ctx := l.logger.With()
	for k, v := range fields {
		ctx = ctx.Interface(k, v)
	}
	return &watermillLogger{logger: ctx.Logger()}
}

func (l *watermillLogger) event(e *zerolog.Event, msg string, fields watermill.LogFields) {
	for k, v := range fields {
		e = e.Interface(k, v)
	}
	e.Msg(msg)
}
