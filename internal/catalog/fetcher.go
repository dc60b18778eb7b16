// Vastra - Ethnic Fashion Storefront Backend
// Copyright 2026 Vastra Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vastralabs/vastra

package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/vastralabs/vastra/internal/models"
)

// Snapshot is the wire format served by the upstream catalog service and
// stored in seed files.
type Snapshot struct {
	Products   []models.Product  `json:"products"`
	Categories []models.Category `json:"categories"`
}

// FetcherConfig tunes the upstream catalog client.
type FetcherConfig struct {
	// URL is the upstream catalog endpoint. Empty disables remote fetch.
	URL string `koanf:"url"`

	// SeedFile is a local JSON snapshot used when URL is empty or as the
	// cold-start fallback when the upstream is unreachable.
	SeedFile string `koanf:"seed_file"`

	// Timeout bounds a single fetch request.
	Timeout time.Duration `koanf:"timeout"`

	// RequestsPerSecond throttles fetches against the upstream.
	RequestsPerSecond float64 `koanf:"requests_per_second"`

	// BreakerMaxFailures opens the circuit after this many consecutive
	// failures.
	BreakerMaxFailures uint32 `koanf:"breaker_max_failures"`

	// BreakerCooldown is how long the circuit stays open before probing.
	BreakerCooldown time.Duration `koanf:"breaker_cooldown"`
}

// DefaultFetcherConfig returns production fetch settings. The bundled
// seed catalog keeps a fresh install serving without an upstream feed.
func DefaultFetcherConfig() FetcherConfig {
	return FetcherConfig{
		SeedFile:           "data/seed_catalog.json",
		Timeout:            10 * time.Second,
		RequestsPerSecond:  1,
		BreakerMaxFailures: 5,
		BreakerCooldown:    30 * time.Second,
	}
}

// Fetcher loads catalog snapshots from the upstream service or a seed file.
// Remote fetches go through a circuit breaker and a client-side rate limit
// so a flapping upstream cannot be hammered on every refresh tick.
type Fetcher struct {
	cfg     FetcherConfig
	client  *http.Client
	breaker *gobreaker.CircuitBreaker[*Snapshot]
	limiter *rate.Limiter
	logger  zerolog.Logger
}

// NewFetcher builds a Fetcher from cfg.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewFetcher(cfg FetcherConfig, logger zerolog.Logger) *Fetcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultFetcherConfig().Timeout
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = DefaultFetcherConfig().RequestsPerSecond
	}
	if cfg.BreakerMaxFailures == 0 {
		cfg.BreakerMaxFailures = DefaultFetcherConfig().BreakerMaxFailures
	}
	if cfg.BreakerCooldown <= 0 {
		cfg.BreakerCooldown = DefaultFetcherConfig().BreakerCooldown
	}

	log := logger.With().Str("component", "catalog-fetcher").Logger()

	breaker := gobreaker.NewCircuitBreaker[*Snapshot](gobreaker.Settings{
		Name:    "catalog-upstream",
		Timeout: cfg.BreakerCooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.BreakerMaxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("catalog circuit breaker state change")
		},
	})

	return &Fetcher{
		cfg:     cfg,
		client:  &http.Client{Timeout: cfg.Timeout},
		breaker: breaker,
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
		logger:  log,
	}
}

// Fetch returns a catalog snapshot. With a URL configured it fetches
// remotely, falling back to the seed file when the upstream fails; without
// one it reads the seed file directly.
func (f *Fetcher) Fetch(ctx context.Context) (*Snapshot, error) {
	if f.cfg.URL == "" {
		return f.loadSeed()
	}

	snap, err := f.fetchRemote(ctx)
	if err == nil {
		return snap, nil
	}

	f.logger.Error().Err(err).Str("url", f.cfg.URL).Msg("upstream catalog fetch failed")
	if f.cfg.SeedFile != "" {
		f.logger.Warn().Str("seed_file", f.cfg.SeedFile).Msg("falling back to seed catalog")
		return f.loadSeed()
	}
	return nil, err
}

func (f *Fetcher) fetchRemote(ctx context.Context) (*Snapshot, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("catalog fetch throttled: %w", err)
	}

	return f.breaker.Execute(func() (*Snapshot, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.cfg.URL, nil)
		if err != nil {
			return nil, fmt.Errorf("build catalog request: %w", err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := f.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("fetch catalog: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			// Drain so the connection can be reused.
			_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
			return nil, fmt.Errorf("fetch catalog: upstream returned %d", resp.StatusCode)
		}

		var snap Snapshot
		if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
			return nil, fmt.Errorf("decode catalog: %w", err)
		}
		return &snap, nil
	})
}

func (f *Fetcher) loadSeed() (*Snapshot, error) {
	if f.cfg.SeedFile == "" {
		return nil, fmt.Errorf("no catalog source configured")
	}

	data, err := os.ReadFile(f.cfg.SeedFile)
	if err != nil {
		return nil, fmt.Errorf("read seed catalog: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode seed catalog: %w", err)
	}
	return &snap, nil
}

// StoreFromSnapshot validates a snapshot and builds a Store from it.
// Products with empty IDs or unknown statuses are dropped with a warning
// rather than failing the whole refresh.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func StoreFromSnapshot(snap *Snapshot, logger zerolog.Logger) *Store {
	products := make([]models.Product, 0, len(snap.Products))
	for _, p := range snap.Products {
		if p.ID == "" {
			logger.Warn().Str("name", p.Name).Msg("dropping catalog product without id")
			continue
		}
		if p.Status == "" {
			p.Status = models.StatusActive
		}
		if !p.Status.Valid() {
			logger.Warn().Str("product_id", p.ID).Str("status", string(p.Status)).
				Msg("dropping catalog product with unknown status")
			continue
		}
		products = append(products, p)
	}
	return NewStore(products, snap.Categories)
}
