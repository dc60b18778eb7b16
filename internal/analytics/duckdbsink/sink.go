// Vastra - Ethnic Fashion Storefront Backend
// Copyright 2026 Vastra Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vastralabs/vastra

// Package duckdbsink persists analytics events to DuckDB. The in-memory
// service remains the source of truth for live metrics; this sink gives
// operators a SQL surface over the full event history.
package duckdbsink

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/vastralabs/vastra/internal/analytics"
)

const schema = `
CREATE TABLE IF NOT EXISTS analytics_events (
    id         VARCHAR PRIMARY KEY,
    user_id    VARCHAR,
    session_id VARCHAR,
    kind       VARCHAR NOT NULL,
    payload    VARCHAR NOT NULL,
    ts         TIMESTAMP NOT NULL
);
`

// Sink writes analytics events to an analytics_events table.
type Sink struct {
	conn   *sql.DB
	logger zerolog.Logger
}

// Open opens (or creates) the analytics database at path and ensures the
// schema. An empty path opens an in-memory database.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func Open(path string, logger zerolog.Logger) (*Sink, error) {
	if path != "" {
		dir := filepath.Dir(path)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return nil, fmt.Errorf("create analytics directory %s: %w", dir, err)
			}
		}
	}

	conn, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open analytics database: %w", err)
	}
	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("create analytics schema: %w", err)
	}

	return &Sink{
		conn:   conn,
		logger: logger.With().Str("component", "analytics-sink").Logger(),
	}, nil
}

// Write appends one event.
func (s *Sink) Write(event analytics.Event) error {
	payload, err := json.Marshal(event.Payload)
	if err != nil {
		return fmt.Errorf("encode event payload: %w", err)
	}

	_, err = s.conn.Exec(
		`INSERT INTO analytics_events (id, user_id, session_id, kind, payload, ts) VALUES (?, ?, ?, ?, ?, ?)`,
		event.ID, event.UserID, event.SessionID, string(event.Payload.Kind()), string(payload), event.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("insert analytics event: %w", err)
	}
	return nil
}

// KindCount is one row of a per-kind event rollup.
type KindCount struct {
	Kind  string `json:"kind"`
	Count int64  `json:"count"`
}

// CountsByKind returns event counts per kind since the given time.
func (s *Sink) CountsByKind(since time.Time) ([]KindCount, error) {
	rows, err := s.conn.Query(
		`SELECT kind, COUNT(*) FROM analytics_events WHERE ts >= ? GROUP BY kind ORDER BY COUNT(*) DESC, kind`,
		since,
	)
	if err != nil {
		return nil, fmt.Errorf("query event counts: %w", err)
	}
	defer rows.Close()

	var out []KindCount
	for rows.Next() {
		var kc KindCount
		if err := rows.Scan(&kc.Kind, &kc.Count); err != nil {
			return nil, fmt.Errorf("scan event count: %w", err)
		}
		out = append(out, kc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate event counts: %w", err)
	}
	return out, nil
}

// EventCount returns the total number of stored events.
func (s *Sink) EventCount() (int64, error) {
	var count int64
	if err := s.conn.QueryRow(`SELECT COUNT(*) FROM analytics_events`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count analytics events: %w", err)
	}
	return count, nil
}

// Prune deletes events older than the cutoff and returns the number
// removed. The retention loop calls this on a timer.
func (s *Sink) Prune(olderThan time.Time) (int64, error) {
	res, err := s.conn.Exec(`DELETE FROM analytics_events WHERE ts < ?`, olderThan)
	if err != nil {
		return 0, fmt.Errorf("prune analytics events: %w", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return 0, nil
	}
	if removed > 0 {
		s.logger.Info().Int64("removed", removed).Time("cutoff", olderThan).Msg("pruned analytics events")
	}
	return removed, nil
}

// Close releases the database connection.
func (s *Sink) Close() error {
	return s.conn.Close()
}

var _ analytics.EventSink = (*Sink)(nil)
