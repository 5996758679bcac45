// Mantra - Creator and Audience Ranking and Safety Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mantra

package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Cache is a byte-oriented TTL cache. A miss is (nil, false, nil); an error
// means the backend could not answer and callers treat it as a miss.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Store is a Cache that owns backend resources.
type Store interface {
	Cache

	// Name is the backend name used in logs and metrics.
	Name() string

	Close() error
}

// Backend names a cache implementation.
type Backend string

const (
	BackendNone   Backend = "none"
	BackendMemory Backend = "memory"
	BackendLRU    Backend = "lru"
	BackendRedis  Backend = "redis"
	BackendBadger Backend = "badger"
)

// ErrUnknownBackend is returned by New for an unrecognized backend name.
var ErrUnknownBackend = errors.New("unknown cache backend")

// Config selects and sizes the cache backend.
type Config struct {
	// Backend is one of none, memory, lru, redis, badger.
	Backend Backend `koanf:"backend"`

	// Capacity bounds the lru backend and the redis local tier.
	Capacity int `koanf:"capacity"`

	// MaxTTL bounds any entry lifetime in the lru backend and the redis local tier.
	MaxTTL time.Duration `koanf:"max_ttl"`

	// RedisURL is a redis:// URL for the redis backend.
	RedisURL string `koanf:"redis_url"`

	// BadgerPath is the badger directory; empty runs badger in memory.
	BadgerPath string `koanf:"badger_path"`

	// Breaker guards the redis backend.
	Breaker BreakerConfig `koanf:"breaker"`
}

// BreakerConfig configures the circuit breaker in front of remote backends.
type BreakerConfig struct {
	MaxRequests      uint32        `koanf:"max_requests"`
	Interval         time.Duration `koanf:"interval"`
	Timeout          time.Duration `koanf:"timeout"`
	FailureThreshold uint32        `koanf:"failure_threshold"`
}

// DefaultConfig returns an in-process memory cache.
func DefaultConfig() Config {
	return Config{
		Backend:  BackendMemory,
		Capacity: 10_000,
		MaxTTL:   time.Hour,
		Breaker: BreakerConfig{
			MaxRequests:      3,
			Interval:         time.Minute,
			Timeout:          30 * time.Second,
			FailureThreshold: 5,
		},
	}
}

// Validate checks the configuration for the selected backend.
func (c *Config) Validate() error {
	var errs []error
	switch c.Backend {
	case BackendNone, BackendMemory:
	case BackendLRU:
		if c.Capacity <= 0 {
			errs = append(errs, errors.New("cache capacity must be positive for the lru backend"))
		}
	case BackendRedis:
		if !strings.HasPrefix(c.RedisURL, "redis://") && !strings.HasPrefix(c.RedisURL, "rediss://") {
			errs = append(errs, fmt.Errorf("cache redis_url must be a redis:// URL, got %q", c.RedisURL))
		}
		if c.Breaker.FailureThreshold == 0 {
			errs = append(errs, errors.New("cache breaker failure_threshold must be positive"))
		}
	case BackendBadger:
	default:
		errs = append(errs, fmt.Errorf("%w: %q", ErrUnknownBackend, c.Backend))
	}
	if c.MaxTTL <= 0 {
		errs = append(errs, errors.New("cache max_ttl must be positive"))
	}
	return errors.Join(errs...)
}

// New builds the configured backend. The redis backend pings the server
// before returning.
func New(ctx context.Context, cfg Config) (Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch cfg.Backend {
	case BackendNone:
		return Nop{}, nil
	case BackendMemory:
		return NewMemory(), nil
	case BackendLRU:
		return NewLRU(cfg.Capacity, cfg.MaxTTL), nil
	case BackendRedis:
		return NewRedis(ctx, cfg)
	case BackendBadger:
		return OpenBadger(cfg.BadgerPath)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}

// Nop never stores anything.
type Nop struct{}

func (Nop) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (Nop) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (Nop) Name() string                                             { return string(BackendNone) }
func (Nop) Close() error                                             { return nil }

var (
	_ Store = Nop{}
	_ Store = (*Memory)(nil)
	_ Store = (*LRU)(nil)
	_ Store = (*Redis)(nil)
	_ Store = (*Badger)(nil)
)
