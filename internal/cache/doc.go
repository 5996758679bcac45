// Mantra - Creator and Audience Ranking and Safety Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mantra

/*
Package cache stores computed moderation results and rankings.

Values are opaque bytes (JSON-encoded by callers) with a per-entry TTL.
A lookup error is never fatal: callers log it, count it and recompute.

# Backends

  - memory: unbounded map with lazy expiry and a five-minute sweep
  - lru: bounded hashicorp/golang-lru expirable LRU
  - redis: go-redis/cache with a TinyLFU local tier, behind a gobreaker
    circuit breaker
  - badger: embedded badger database, on disk or in memory
  - none: disables caching

# Keys

	cache.ModerationKey(text)              // moderation_{md5 hex}
	cache.RecommendationKey(10, "posts", 5) // recommendations_10_posts_5

# Configuration

	MANTRA_CACHE__BACKEND=redis
	MANTRA_CACHE__REDIS_URL=redis://localhost:6379/0
	MANTRA_CACHE__CAPACITY=10000
*/
package cache
