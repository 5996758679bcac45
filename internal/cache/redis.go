// Mantra - Creator and Audience Ranking and Safety Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mantra

package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	rediscache "github.com/go-redis/cache/v9"
	"github.com/redis/go-redis/v9"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/mantra/internal/logging"
	"github.com/tomtom215/mantra/internal/metrics"
)

const redisBreakerName = "cache-redis"

// Redis is a two-tier cache: a TinyLFU local tier in front of a redis
// server. Remote calls go through a circuit breaker; while it is open,
// Get reports an error and callers fall through to computing the value.
type Redis struct {
	client  *redis.Client
	data    *rediscache.Cache
	breaker *gobreaker.CircuitBreaker[interface{}]
}

// NewRedis connects to cfg.RedisURL and verifies the connection.
func NewRedis(ctx context.Context, cfg Config) (*Redis, error) {
	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	capacity := cfg.Capacity
	if capacity <= 0 {
		capacity = 10_000
	}
	return &Redis{
		client: client,
		data: rediscache.New(&rediscache.Options{
			Redis:      client,
			LocalCache: rediscache.NewTinyLFU(capacity, cfg.MaxTTL),
		}),
		breaker: newBreaker(redisBreakerName, cfg.Breaker),
	}, nil
}

func newBreaker(name string, cfg BreakerConfig) *gobreaker.CircuitBreaker[interface{}] {
	return gobreaker.NewCircuitBreaker[interface{}](gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("Cache circuit breaker changed state")
			metrics.RecordCircuitBreakerTransition(name, from.String(), to.String())
		},
	})
}

// Get reads key from the local tier or redis.
func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var val []byte
	_, err := r.breaker.Execute(func() (interface{}, error) {
		err := r.data.Get(ctx, key, &val)
		if errors.Is(err, rediscache.ErrCacheMiss) {
			return nil, nil
		}
		return nil, err
	})
	if err != nil {
		metrics.RecordCacheError(string(BackendRedis), "get")
		return nil, false, fmt.Errorf("redis get: %w", err)
	}
	return val, val != nil, nil
}

// Set writes key to both tiers. A non-positive ttl is a no-op.
func (r *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	_, err := r.breaker.Execute(func() (interface{}, error) {
		return nil, r.data.Set(&rediscache.Item{
			Ctx:   ctx,
			Key:   key,
			Value: value,
			TTL:   ttl,
		})
	})
	if err != nil {
		metrics.RecordCacheError(string(BackendRedis), "set")
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// BreakerState returns the circuit breaker state name.
func (r *Redis) BreakerState() string {
	return r.breaker.State().String()
}

// Name implements Store.
func (r *Redis) Name() string { return string(BackendRedis) }

// Close closes the redis client.
func (r *Redis) Close() error {
	return r.client.Close()
}
