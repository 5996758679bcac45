// Mantra - Creator and Audience Ranking and Safety Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mantra

package config

import (
	"time"

	"github.com/tomtom215/mantra/internal/cache"
	"github.com/tomtom215/mantra/internal/events"
	"github.com/tomtom215/mantra/internal/logging"
	"github.com/tomtom215/mantra/internal/moderation"
	"github.com/tomtom215/mantra/internal/recommend"
	"github.com/tomtom215/mantra/internal/store"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig             `koanf:"server"`
	Logging    LoggingConfig            `koanf:"logging"`
	Database   store.Config             `koanf:"database"`
	Cache      cache.Config             `koanf:"cache"`
	Events     events.Config            `koanf:"events"`
	Moderation moderation.Config        `koanf:"moderation"`
	Recommend  recommend.Config         `koanf:"recommend"`
	Trending   recommend.TrendingConfig `koanf:"trending"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	// Environment is "development" or "production".
	Environment string `koanf:"environment"`

	// CORSOrigins lists allowed origins; "*" allows any.
	CORSOrigins []string `koanf:"cors_origins"`

	// RateLimitRequests per RateLimitWindow per client IP. Disabled when
	// RateLimitDisabled is set.
	RateLimitRequests int           `koanf:"rate_limit_requests"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`

	// MaxBodyBytes bounds request bodies.
	MaxBodyBytes int64 `koanf:"max_body_bytes"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// ToLogging converts the section into a logging.Config writing to stderr.
func (c LoggingConfig) ToLogging() logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = c.Level
	cfg.Format = c.Format
	cfg.Caller = c.Caller
	return cfg
}

// defaultConfig returns a Config with every default applied. Defaults are
// loaded first, then overridden by the config file and environment.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:              "0.0.0.0",
			Port:              8080,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       120 * time.Second,
			ShutdownTimeout:   10 * time.Second,
			Environment:       "development",
			CORSOrigins:       []string{"*"},
			RateLimitRequests: 100,
			RateLimitWindow:   time.Minute,
			MaxBodyBytes:      1 << 20,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Database: store.Config{
			Driver:    store.DriverMemory,
			Path:      "/data/mantra.duckdb",
			MaxMemory: "1GB",
		},
		Cache:      cache.DefaultConfig(),
		Events:     events.DefaultConfig(),
		Moderation: moderation.DefaultConfig(),
		Recommend:  recommend.DefaultConfig(),
		Trending:   recommend.DefaultTrendingConfig(),
	}
}

// Default returns the built-in configuration without reading any source.
func Default() *Config {
	return defaultConfig()
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}
