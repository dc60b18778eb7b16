// Vastra - Ethnic Fashion Storefront Backend
// Copyright 2026 Vastra Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vastralabs/vastra

package recommend

import "testing"

func TestDefaultConfig_Valid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v, want nil", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults pass", func(c *Config) {}, false},
		{"zero pool_k", func(c *Config) { c.Limits.PoolK = 0 }, true},
		{"zero blend_k", func(c *Config) { c.Limits.BlendK = 0 }, true},
		{"zero history_cap", func(c *Config) { c.Limits.HistoryCap = 0 }, true},
		{"negative top_preferences", func(c *Config) { c.Limits.TopPreferences = -1 }, true},
		{"inverted price band", func(c *Config) {
			c.Limits.DefaultPriceLow = 100
			c.Limits.DefaultPriceHigh = 50
		}, true},
		{"zero recency window", func(c *Config) { c.Trending.RecencyWindowDays = 0 }, true},
		{"empty trending tag", func(c *Config) { c.Trending.TagName = "" }, true},
		{"pools below blend_k", func(c *Config) {
			c.Pools = PoolSizes{Similar: 1, Personalized: 1, Trending: 1}
		}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
