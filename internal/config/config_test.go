// Mantra - Creator and Audience Ranking and Safety Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mantra

package config

import (
	"testing"
	"time"

	"github.com/tomtom215/mantra/internal/store"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"port zero", func(c *Config) { c.Server.Port = 0 }, true},
		{"port too large", func(c *Config) { c.Server.Port = 70000 }, true},
		{"zero read timeout", func(c *Config) { c.Server.ReadTimeout = 0 }, true},
		{"unknown environment", func(c *Config) { c.Server.Environment = "staging" }, true},
		{"wildcard cors in production", func(c *Config) { c.Server.Environment = "production" }, true},
		{"production with origins", func(c *Config) {
			c.Server.Environment = "production"
			c.Server.CORSOrigins = []string{"https://app.example.com"}
		}, false},
		{"rate limit disabled", func(c *Config) {
			c.Server.RateLimitDisabled = true
			c.Server.RateLimitRequests = 0
		}, false},
		{"zero rate limit", func(c *Config) { c.Server.RateLimitRequests = 0 }, true},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }, true},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, true},
		{"duckdb", func(c *Config) { c.Database.Driver = store.DriverDuckDB }, false},
		{"unknown driver", func(c *Config) { c.Database.Driver = "sqlite" }, true},
		{"invalid cache", func(c *Config) { c.Cache.Backend = "memcached" }, true},
		{"invalid events when enabled", func(c *Config) { c.Events.Topic = "" }, true},
		{"invalid events when disabled", func(c *Config) {
			c.Events.Enabled = false
			c.Events.Topic = ""
		}, false},
		{"invalid recommend", func(c *Config) { c.Recommend.MaxLimit = 1 }, true},
		{"invalid trending", func(c *Config) { c.Trending.PostWindow = 0 }, true},
		{"negative moderation ttl", func(c *Config) { c.Moderation.CacheTTL = -time.Second }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := defaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoggingConfig(t *testing.T) {
	t.Parallel()

	lc := LoggingConfig{Level: "debug", Format: "console", Caller: true}.ToLogging()
	if lc.Level != "debug" || lc.Format != "console" || !lc.Caller || !lc.Timestamp || lc.Output == nil {
		t.Errorf("ToLogging() = %+v", lc)
	}
}
