// Mantra - Creator and Audience Ranking and Safety Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mantra

package recommend

import (
	"testing"
	"time"
)

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"zero default limit", func(c *Config) { c.DefaultLimit = 0 }, true},
		{"max below default", func(c *Config) { c.MaxLimit = 5 }, true},
		{"no neighbors", func(c *Config) { c.Neighbors = 0 }, true},
		{"knn weight above one", func(c *Config) { c.ItemKNNWeight = 1.5 }, true},
		{"negative social weight", func(c *Config) { c.SocialWeight = -0.1 }, true},
		{"negative content weight", func(c *Config) { c.ContentWeight = -1 }, true},
		{"empty post pool", func(c *Config) { c.PostPool = 0 }, true},
		{"negative cache ttl", func(c *Config) { c.CacheTTL = -time.Second }, true},
		{"caching disabled", func(c *Config) { c.CacheTTL = 0 }, false},
		{"negative train interval", func(c *Config) { c.TrainInterval = -time.Minute }, true},
		{"trainer disabled", func(c *Config) { c.TrainInterval = 0 }, false},
		{"fuzzy threshold above one", func(c *Config) { c.SearchFuzzyThreshold = 2 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestTrendingConfigValidate(t *testing.T) {
	t.Parallel()

	cfg := DefaultTrendingConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults: %v", err)
	}

	bad := cfg
	bad.DecayHours = 0
	bad.Limit = 0
	if err := bad.Validate(); err == nil {
		t.Error("expected error for zero decay and limit")
	}
}
