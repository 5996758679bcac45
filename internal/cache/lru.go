// Mantra - Creator and Audience Ranking and Safety Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mantra

package cache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// LRU is a bounded in-process cache. The underlying LRU expires entries
// after maxTTL; shorter per-entry TTLs are checked on read.
type LRU struct {
	data *expirable.LRU[string, entry]
	now  func() time.Time
}

// NewLRU creates an LRU holding at most capacity entries.
func NewLRU(capacity int, maxTTL time.Duration) *LRU {
	return &LRU{
		data: expirable.NewLRU[string, entry](capacity, nil, maxTTL),
		now:  time.Now,
	}
}

// Get returns a copy of the cached value.
func (c *LRU) Get(_ context.Context, key string) ([]byte, bool, error) {
	e, ok := c.data.Get(key)
	if !ok {
		return nil, false, nil
	}
	if e.expired(c.now()) {
		c.data.Remove(key)
		return nil, false, nil
	}
	return append([]byte(nil), e.data...), true, nil
}

// Set stores a copy of value, evicting the least recently used entry when
// full. A non-positive ttl is a no-op.
func (c *LRU) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	c.data.Add(key, entry{data: append([]byte(nil), value...), expiresAt: c.now().Add(ttl)})
	return nil
}

// Len returns the number of entries, including ones not yet swept.
func (c *LRU) Len() int { return c.data.Len() }

// Name implements Store.
func (c *LRU) Name() string { return string(BackendLRU) }

// Close purges the cache.
func (c *LRU) Close() error {
	c.data.Purge()
	return nil
}
