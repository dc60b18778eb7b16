// Vastra - Ethnic Fashion Storefront Backend
// Copyright 2026 Vastra Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vastralabs/vastra

package analytics

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// EventSink receives every tracked event for durable storage. Sink
// failures are logged, never propagated: tracking is best-effort.
type EventSink interface {
	Write(Event) error
}

// Service records events and serves metric aggregations. Construct one in
// main and inject it; there is no package-level singleton.
type Service struct {
	mu     sync.RWMutex
	events []Event
	sink   EventSink
	logger zerolog.Logger
	now    func() time.Time
	newID  func() string
}

// NewService builds an analytics service. sink may be nil.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewService(sink EventSink, logger zerolog.Logger) *Service {
	return &Service{
		events: make([]Event, 0, 1024),
		sink:   sink,
		logger: logger.With().Str("component", "analytics").Logger(),
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// SetClock overrides the time source. Tests only.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// Track records an event with the given payload and returns it.
func (s *Service) Track(userID, sessionID string, payload Payload) Event {
	event := Event{
		ID:        s.newID(),
		UserID:    userID,
		SessionID: sessionID,
		Timestamp: s.now(),
		Payload:   payload,
	}

	s.mu.Lock()
	s.events = append(s.events, event)
	s.mu.Unlock()

	if s.sink != nil {
		if err := s.sink.Write(event); err != nil {
			s.logger.Error().Err(err).
				Str("event_id", event.ID).
				Str("kind", string(payload.Kind())).
				Msg("analytics sink write failed")
		}
	}
	return event
}

// TrackPageView records a page render.
func (s *Service) TrackPageView(userID, sessionID, path, referrer string) Event {
	return s.Track(userID, sessionID, PageView{Path: path, Referrer: referrer})
}

// TrackProductView records a product detail view.
func (s *Service) TrackProductView(userID, sessionID, productID, categoryID string, price float64) Event {
	return s.Track(userID, sessionID, ProductView{ProductID: productID, CategoryID: categoryID, Price: price})
}

// TrackAddToCart records a cart add.
func (s *Service) TrackAddToCart(userID, sessionID, productID string, quantity int, price float64) Event {
	return s.Track(userID, sessionID, AddToCart{ProductID: productID, Quantity: quantity, Price: price})
}

// TrackPurchase records a completed order.
func (s *Service) TrackPurchase(userID, sessionID, orderID string, revenue float64, products []PurchasedProduct) Event {
	return s.Track(userID, sessionID, Purchase{OrderID: orderID, Revenue: revenue, Products: products})
}

// TrackSearch records a catalog search.
func (s *Service) TrackSearch(userID, sessionID, query string, results int) Event {
	return s.Track(userID, sessionID, Search{Query: query, Results: results})
}

// Events returns a copy of the event log, oldest first.
func (s *Service) Events() []Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Event, len(s.events))
	copy(out, s.events)
	return out
}

// Filter bounds a metrics aggregation window. Zero times are open ends.
type Filter struct {
	From time.Time
	To   time.Time
}

func (f Filter) contains(t time.Time) bool {
	if !f.From.IsZero() && t.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && t.After(f.To) {
		return false
	}
	return true
}

// RevenueEntry is one row in a top-by-revenue ranking.
type RevenueEntry struct {
	ID       string  `json:"id"`
	Revenue  float64 `json:"revenue"`
	Quantity int     `json:"quantity"`
}

// DailySales is revenue and order count for one calendar day (UTC).
type DailySales struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
	Orders  int     `json:"orders"`
}

// Engagement summarizes session behavior.
type Engagement struct {
	AvgSessionDuration time.Duration `json:"avg_session_duration"`
	PagesPerSession    float64       `json:"pages_per_session"`
	BounceRate         float64       `json:"bounce_rate"`
}

// Metrics is the aggregated business view over the event log.
type Metrics struct {
	TotalRevenue        float64        `json:"total_revenue"`
	TotalOrders         int            `json:"total_orders"`
	TotalUsers          int            `json:"total_users"`
	AverageOrderValue   float64        `json:"average_order_value"`
	ConversionRate      float64        `json:"conversion_rate"`
	CartAbandonmentRate float64        `json:"cart_abandonment_rate"`
	TopProducts         []RevenueEntry `json:"top_products"`
	TopCategories       []RevenueEntry `json:"top_categories"`
	Engagement          Engagement     `json:"engagement"`
	DailySales          []DailySales   `json:"daily_sales"`
}

// topRankings caps TopProducts and TopCategories.
const topRankings = 10

// sessionStats accumulates per-session aggregates during the pass.
type sessionStats struct {
	first     time.Time
	last      time.Time
	pageViews int
}

// Metrics aggregates the event log in a single pass over the filtered
// window. Rates are percentages in [0, 100].
func (s *Service) Metrics(filter Filter) Metrics {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		m          Metrics
		users      = map[string]struct{}{}
		purchasers = map[string]struct{}{}
		cartAdders = map[string]struct{}{}
		products   = map[string]*RevenueEntry{}
		categories = map[string]*RevenueEntry{}
		sessions   = map[string]*sessionStats{}
		daily      = map[string]*DailySales{}
	)

	for i := range s.events {
		event := &s.events[i]
		if !filter.contains(event.Timestamp) {
			continue
		}

		if event.UserID != "" {
			users[event.UserID] = struct{}{}
		}
		if event.SessionID != "" {
			st, ok := sessions[event.SessionID]
			if !ok {
				st = &sessionStats{first: event.Timestamp, last: event.Timestamp}
				sessions[event.SessionID] = st
			}
			if event.Timestamp.Before(st.first) {
				st.first = event.Timestamp
			}
			if event.Timestamp.After(st.last) {
				st.last = event.Timestamp
			}
			if event.Payload.Kind() == KindPageView {
				st.pageViews++
			}
		}

		switch p := event.Payload.(type) {
		case Purchase:
			m.TotalOrders++
			m.TotalRevenue += p.Revenue
			if event.UserID != "" {
				purchasers[event.UserID] = struct{}{}
			}
			for _, line := range p.Products {
				addRevenue(products, line.ProductID, line.Price*float64(line.Quantity), line.Quantity)
				if line.CategoryID != "" {
					addRevenue(categories, line.CategoryID, line.Price*float64(line.Quantity), line.Quantity)
				}
			}
			day := event.Timestamp.UTC().Format("2006-01-02")
			d, ok := daily[day]
			if !ok {
				d = &DailySales{Date: day}
				daily[day] = d
			}
			d.Revenue += p.Revenue
			d.Orders++
		case AddToCart:
			if event.UserID != "" {
				cartAdders[event.UserID] = struct{}{}
			}
		}
	}

	m.TotalUsers = len(users)
	if m.TotalOrders > 0 {
		m.AverageOrderValue = m.TotalRevenue / float64(m.TotalOrders)
	}
	if len(users) > 0 {
		m.ConversionRate = float64(len(purchasers)) / float64(len(users)) * 100
	}
	if len(cartAdders) > 0 {
		abandoned := 0
		for user := range cartAdders {
			if _, bought := purchasers[user]; !bought {
				abandoned++
			}
		}
		m.CartAbandonmentRate = float64(abandoned) / float64(len(cartAdders)) * 100
	}

	m.TopProducts = topByRevenue(products)
	m.TopCategories = topByRevenue(categories)
	m.Engagement = engagementFrom(sessions)
	m.DailySales = dailyFrom(daily)
	return m
}

func addRevenue(entries map[string]*RevenueEntry, id string, revenue float64, quantity int) {
	e, ok := entries[id]
	if !ok {
		e = &RevenueEntry{ID: id}
		entries[id] = e
	}
	e.Revenue += revenue
	e.Quantity += quantity
}

func topByRevenue(entries map[string]*RevenueEntry) []RevenueEntry {
	out := make([]RevenueEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Revenue != out[j].Revenue {
			return out[i].Revenue > out[j].Revenue
		}
		return out[i].ID < out[j].ID
	})
	if len(out) > topRankings {
		out = out[:topRankings]
	}
	return out
}

func engagementFrom(sessions map[string]*sessionStats) Engagement {
	if len(sessions) == 0 {
		return Engagement{}
	}
	var (
		totalDuration time.Duration
		totalPages    int
		bounces       int
	)
	for _, st := range sessions {
		totalDuration += st.last.Sub(st.first)
		totalPages += st.pageViews
		if st.pageViews <= 1 {
			bounces++
		}
	}
	n := float64(len(sessions))
	return Engagement{
		AvgSessionDuration: time.Duration(float64(totalDuration) / n),
		PagesPerSession:    float64(totalPages) / n,
		BounceRate:         float64(bounces) / n * 100,
	}
}

func dailyFrom(daily map[string]*DailySales) []DailySales {
	out := make([]DailySales, 0, len(daily))
	for _, d := range daily {
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}
