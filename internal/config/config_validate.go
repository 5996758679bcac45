// Mantra - Creator and Audience Ranking and Safety Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mantra

package config

import (
	"errors"
	"fmt"

	"github.com/tomtom215/mantra/internal/logging"
	"github.com/tomtom215/mantra/internal/store"
)

// Validate checks every section and returns all problems found.
func (c *Config) Validate() error {
	var errs []error

	if err := c.validateServer(); err != nil {
		errs = append(errs, err)
	}
	if err := c.validateLogging(); err != nil {
		errs = append(errs, err)
	}
	if err := c.validateDatabase(); err != nil {
		errs = append(errs, err)
	}
	if err := c.Cache.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("cache: %w", err))
	}
	if c.Events.Enabled {
		if err := c.Events.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("events: %w", err))
		}
	}
	if err := c.Moderation.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("moderation: %w", err))
	}
	if err := c.Recommend.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("recommend: %w", err))
	}
	if err := c.Trending.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("trending: %w", err))
	}

	return errors.Join(errs...)
}

func (c *Config) validateServer() error {
	s := c.Server
	if s.Port < 1 || s.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", s.Port)
	}
	if s.ReadTimeout <= 0 || s.WriteTimeout <= 0 || s.ShutdownTimeout <= 0 {
		return errors.New("server timeouts must be positive")
	}
	switch s.Environment {
	case "development", "production":
	default:
		return fmt.Errorf("ENVIRONMENT must be development or production, got %q", s.Environment)
	}
	if !s.RateLimitDisabled && (s.RateLimitRequests <= 0 || s.RateLimitWindow <= 0) {
		return errors.New("rate limit requests and window must be positive unless disabled")
	}
	if s.MaxBodyBytes <= 0 {
		return errors.New("server.max_body_bytes must be positive")
	}
	if c.IsProduction() {
		for _, o := range s.CORSOrigins {
			if o == "*" {
				return errors.New("CORS_ORIGINS must not contain * in production")
			}
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("LOG_LEVEL %q is not a valid level", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "console":
		return nil
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
}

func (c *Config) validateDatabase() error {
	switch c.Database.Driver {
	case store.DriverMemory:
		return nil
	case store.DriverDuckDB:
		if c.Database.Threads < 0 {
			return errors.New("DUCKDB_THREADS must not be negative")
		}
		return nil
	default:
		return fmt.Errorf("STORE_DRIVER must be memory or duckdb, got %q", c.Database.Driver)
	}
}
