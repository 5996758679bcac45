// Mantra - Creator and Audience Ranking and Safety Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mantra

package cache

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
)

func openBackends(t *testing.T) map[string]Store {
	t.Helper()
	b, err := OpenBadger("")
	if err != nil {
		t.Fatalf("OpenBadger: %v", err)
	}
	stores := map[string]Store{
		"memory": NewMemory(),
		"lru":    NewLRU(100, time.Hour),
		"badger": b,
	}
	t.Cleanup(func() {
		for _, s := range stores {
			_ = s.Close()
		}
	})
	return stores
}

func TestBackendsSetGet(t *testing.T) {
	ctx := context.Background()
	for name, s := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			if _, ok, err := s.Get(ctx, "missing"); ok || err != nil {
				t.Fatalf("Get(missing) = ok %v, err %v; want miss", ok, err)
			}

			if err := s.Set(ctx, "k", []byte(`{"a":1}`), time.Minute); err != nil {
				t.Fatalf("Set: %v", err)
			}
			got, ok, err := s.Get(ctx, "k")
			if err != nil || !ok {
				t.Fatalf("Get(k) = ok %v, err %v; want hit", ok, err)
			}
			if !bytes.Equal(got, []byte(`{"a":1}`)) {
				t.Errorf("Get(k) = %q, want %q", got, `{"a":1}`)
			}

			if err := s.Set(ctx, "k", []byte("v2"), time.Minute); err != nil {
				t.Fatalf("Set overwrite: %v", err)
			}
			got, _, _ = s.Get(ctx, "k")
			if string(got) != "v2" {
				t.Errorf("after overwrite got %q, want %q", got, "v2")
			}
		})
	}
}

func TestBackendsIgnoreNonPositiveTTL(t *testing.T) {
	ctx := context.Background()
	for name, s := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			if err := s.Set(ctx, "zero", []byte("x"), 0); err != nil {
				t.Fatalf("Set: %v", err)
			}
			if _, ok, _ := s.Get(ctx, "zero"); ok {
				t.Error("entry with zero ttl was stored")
			}
		})
	}
}

func TestBackendsReturnCopies(t *testing.T) {
	ctx := context.Background()
	for name, s := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			value := []byte("original")
			if err := s.Set(ctx, "k", value, time.Minute); err != nil {
				t.Fatalf("Set: %v", err)
			}
			value[0] = 'X'

			got, _, _ := s.Get(ctx, "k")
			if string(got) != "original" {
				t.Fatalf("stored value aliased caller slice: %q", got)
			}
			got[0] = 'Y'
			again, _, _ := s.Get(ctx, "k")
			if string(again) != "original" {
				t.Errorf("returned value aliased stored slice: %q", again)
			}
		})
	}
}

func TestMemoryExpiry(t *testing.T) {
	m := NewMemory()
	defer m.Close()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }
	ctx := context.Background()

	if err := m.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, ok, _ := m.Get(ctx, "k"); !ok {
		t.Fatal("expected hit before expiry")
	}

	now = now.Add(2 * time.Minute)
	if _, ok, _ := m.Get(ctx, "k"); ok {
		t.Fatal("expected miss after expiry")
	}

	st := m.Stats()
	if st.Hits != 1 || st.Misses != 1 || st.Evictions != 1 || st.TotalKeys != 0 {
		t.Errorf("stats = %+v, want 1 hit, 1 miss, 1 eviction, 0 keys", st)
	}
	if got := st.HitRate(); got != 50 {
		t.Errorf("HitRate = %v, want 50", got)
	}
}

func TestMemoryCleanup(t *testing.T) {
	m := NewMemory()
	defer m.Close()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }
	ctx := context.Background()

	_ = m.Set(ctx, "short", []byte("a"), time.Second)
	_ = m.Set(ctx, "long", []byte("b"), time.Hour)
	now = now.Add(time.Minute)
	m.cleanup()

	st := m.Stats()
	if st.TotalKeys != 1 || st.Evictions != 1 {
		t.Errorf("after cleanup stats = %+v, want 1 key, 1 eviction", st)
	}
	if !st.LastCleanup.Equal(now) {
		t.Errorf("LastCleanup = %v, want %v", st.LastCleanup, now)
	}
}

func TestMemoryCloseIdempotent(t *testing.T) {
	m := NewMemory()
	if err := m.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := m.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}

func TestLRUEviction(t *testing.T) {
	c := NewLRU(2, time.Hour)
	ctx := context.Background()

	_ = c.Set(ctx, "a", []byte("1"), time.Minute)
	_ = c.Set(ctx, "b", []byte("2"), time.Minute)
	_, _, _ = c.Get(ctx, "a")
	_ = c.Set(ctx, "c", []byte("3"), time.Minute)

	if _, ok, _ := c.Get(ctx, "b"); ok {
		t.Error("least recently used key b survived eviction")
	}
	for _, k := range []string{"a", "c"} {
		if _, ok, _ := c.Get(ctx, k); !ok {
			t.Errorf("key %s evicted, want kept", k)
		}
	}
	if c.Len() != 2 {
		t.Errorf("Len = %d, want 2", c.Len())
	}
}

func TestLRUPerEntryTTL(t *testing.T) {
	c := NewLRU(10, time.Hour)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }
	ctx := context.Background()

	_ = c.Set(ctx, "k", []byte("v"), time.Minute)
	now = now.Add(90 * time.Second)
	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Error("expected per-entry ttl to expire the key")
	}
}

func TestMemoryConcurrentAccess(t *testing.T) {
	m := NewMemory()
	defer m.Close()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := RecommendationKey(int64(i%4), "posts", 10)
			for j := 0; j < 100; j++ {
				_ = m.Set(ctx, key, []byte("v"), time.Minute)
				_, _, _ = m.Get(ctx, key)
			}
		}(i)
	}
	wg.Wait()

	if got := m.Stats().TotalKeys; got != 4 {
		t.Errorf("TotalKeys = %d, want 4", got)
	}
}

func TestKeys(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"moderation empty", ModerationKey(""), "moderation_d41d8cd98f00b204e9800998ecf8427e"},
		{"moderation hello", ModerationKey("hello"), "moderation_5d41402abc4b2a76b9719d911017c592"},
		{"recommendation", RecommendationKey(10, "posts", 5), "recommendations_10_posts_5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}

	if ModerationKey("a") == ModerationKey("b") {
		t.Error("distinct texts produced the same key")
	}
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"none", func(c *Config) { c.Backend = BackendNone }, ""},
		{"unknown backend", func(c *Config) { c.Backend = "memcached" }, "unknown cache backend"},
		{"lru without capacity", func(c *Config) { c.Backend = BackendLRU; c.Capacity = 0 }, "capacity"},
		{"redis bad url", func(c *Config) { c.Backend = BackendRedis; c.RedisURL = "localhost:6379" }, "redis_url"},
		{"redis ok", func(c *Config) { c.Backend = BackendRedis; c.RedisURL = "redis://localhost:6379/0" }, ""},
		{"zero max ttl", func(c *Config) { c.MaxTTL = 0 }, "max_ttl"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestNew(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		backend Backend
		want    string
	}{
		{BackendNone, "none"},
		{BackendMemory, "memory"},
		{BackendLRU, "lru"},
		{BackendBadger, "badger"},
	}
	for _, tt := range tests {
		t.Run(string(tt.backend), func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Backend = tt.backend
			s, err := New(ctx, cfg)
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			defer s.Close()
			if s.Name() != tt.want {
				t.Errorf("Name() = %q, want %q", s.Name(), tt.want)
			}
		})
	}

	cfg := DefaultConfig()
	cfg.Backend = "memcached"
	if _, err := New(ctx, cfg); !errors.Is(err, ErrUnknownBackend) {
		t.Errorf("New(memcached) error = %v, want ErrUnknownBackend", err)
	}
}

func TestNopNeverHits(t *testing.T) {
	ctx := context.Background()
	var n Nop
	_ = n.Set(ctx, "k", []byte("v"), time.Minute)
	if _, ok, err := n.Get(ctx, "k"); ok || err != nil {
		t.Errorf("Nop.Get = ok %v, err %v; want miss", ok, err)
	}
}
