// Vastra - Ethnic Fashion Storefront Backend
// Copyright 2026 Vastra Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vastralabs/vastra

// Package metrics provides Prometheus instrumentation for the storefront:
// API latency and throughput, recommendation engine activity, event bus
// flow, and session store health.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API endpoint metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Recommendation engine metrics
	RecommendationRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_requests_total",
			Help: "Total number of recommendation computations",
		},
		[]string{"method"}, // "blended", "similar", "trending", "personalized"
	)

	RecommendationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommendation_duration_seconds",
			Help:    "Recommendation computation duration in seconds",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		},
		[]string{"method"},
	)

	RecommendationResults = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommendation_results",
			Help:    "Number of products returned per recommendation request",
			Buckets: []float64{0, 1, 2, 4, 6, 8, 10},
		},
		[]string{"method"},
	)

	InteractionsRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "interactions_recorded_total",
			Help: "Total number of user interactions recorded",
		},
		[]string{"type"}, // "view", "cart_add", "purchase", "wishlist_add", "review"
	)

	// Catalog metrics
	CatalogSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_products",
			Help: "Number of products in the current catalog snapshot",
		},
	)

	CatalogRefreshes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_refreshes_total",
			Help: "Total number of catalog refresh attempts",
		},
		[]string{"result"}, // "success", "failure"
	)

	// Event bus metrics
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "events_published_total",
			Help: "Total number of events published on the bus",
		},
		[]string{"topic"},
	)

	EventsRelayed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "events_relayed_total",
			Help: "Total number of events consumed by the relay",
		},
		[]string{"topic", "result"}, // result: "ok", "dropped"
	)

	// Order metrics
	OrdersPlaced = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "orders_placed_total",
			Help: "Total number of checkouts completed",
		},
	)

	OrderValue = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "order_value",
			Help:    "Order totals at checkout",
			Buckets: []float64{500, 1000, 2500, 5000, 10000, 25000, 50000, 100000},
		},
	)
)

// RecordAPIRequest records one completed API request.
func RecordAPIRequest(method, endpoint string, statusCode int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordRecommendation records one recommendation computation.
func RecordRecommendation(method string, results int, duration time.Duration) {
	RecommendationRequests.WithLabelValues(method).Inc()
	RecommendationDuration.WithLabelValues(method).Observe(duration.Seconds())
	RecommendationResults.WithLabelValues(method).Observe(float64(results))
}

// RecordCatalogRefresh records a catalog refresh attempt.
func RecordCatalogRefresh(size int, err error) {
	if err != nil {
		CatalogRefreshes.WithLabelValues("failure").Inc()
		return
	}
	CatalogRefreshes.WithLabelValues("success").Inc()
	CatalogSize.Set(float64(size))
}

// RecordOrder records one completed checkout.
func RecordOrder(total float64) {
	OrdersPlaced.Inc()
	OrderValue.Observe(total)
}

// TrackActiveRequest adjusts the in-flight request gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
		return
	}
	APIActiveRequests.Dec()
}
