// Vastra - Ethnic Fashion Storefront Backend
// Copyright 2026 Vastra Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vastralabs/vastra

package api

import (
	"net/http"
	"time"

	"github.com/vastralabs/vastra/internal/analytics"
	"github.com/vastralabs/vastra/internal/events"
)

// TrackEvent ingests a client-side analytics event. The payload is
// decoded against its declared kind before it goes on the bus, so
// malformed events fail at the edge rather than in the relay.
func (h *Handler) TrackEvent(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req trackRequest
	if details, err := decodeAndValidate(r, h.validate, &req); err != nil {
		if details != nil {
			rw.ValidationFailed(details)
			return
		}
		rw.BadRequest(err.Error())
		return
	}

	if _, err := analytics.DecodePayload(analytics.Kind(req.Kind), req.Payload); err != nil {
		rw.BadRequest("invalid event payload: " + err.Error())
		return
	}

	sid := req.SessionID
	if sid == "" {
		sid = sessionID(r)
	}
	h.bus.PublishTracking(events.TrackingEvent{
		UserID:     userID(r),
		SessionID:  sid,
		Kind:       req.Kind,
		Payload:    req.Payload,
		OccurredAt: time.Now(),
	})

	rw.Accepted(map[string]string{"status": "accepted"})
}

// AnalyticsMetrics returns aggregated business metrics. Admin only.
// Optional from/to query params (RFC 3339) bound the window.
func (h *Handler) AnalyticsMetrics(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	q := r.URL.Query()

	var filter analytics.Filter
	if raw := q.Get("from"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			rw.BadRequest("from must be an RFC 3339 timestamp")
			return
		}
		filter.From = t
	}
	if raw := q.Get("to"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			rw.BadRequest("to must be an RFC 3339 timestamp")
			return
		}
		filter.To = t
	}

	rw.Success(h.analytics.Metrics(filter))
}
