// Vastra - Ethnic Fashion Storefront Backend
// Copyright 2026 Vastra Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vastralabs/vastra

package services

import "context"

// Runner is a blocking loop that exits when its context is canceled.
// Satisfied by *events.Relay.
type Runner interface {
	Run(ctx context.Context) error
}

// RelayService supervises the event relay. If the relay's subscription
// loop fails, suture restarts it and the bus re-delivers from its
// buffer.
type RelayService struct {
	relay Runner
}

// NewRelayService wraps the relay as a supervised service.
func NewRelayService(relay Runner) *RelayService {
	return &RelayService{relay: relay}
}

// Serve implements suture.Service.
func (s *RelayService) Serve(ctx context.Context) error {
	return s.relay.Run(ctx)
}

// String identifies the service in supervisor logs.
func (s *RelayService) String() string {
	return "event-relay"
}
