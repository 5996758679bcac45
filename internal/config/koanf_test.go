// Mantra - Creator and Audience Ranking and Safety Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mantra

package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/tomtom215/mantra/internal/cache"
	"github.com/tomtom215/mantra/internal/events"
	"github.com/tomtom215/mantra/internal/store"
)

// TestDefaultConfig verifies that defaultConfig() returns proper defaults
func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Server.Environment != "development" {
		t.Errorf("Server.Environment = %q, want development", cfg.Server.Environment)
	}
	if cfg.Database.Driver != store.DriverMemory {
		t.Errorf("Database.Driver = %q, want memory", cfg.Database.Driver)
	}
	if cfg.Cache.Backend != cache.BackendMemory {
		t.Errorf("Cache.Backend = %q, want memory", cfg.Cache.Backend)
	}
	if cfg.Events.Backend != events.BackendChannel {
		t.Errorf("Events.Backend = %q, want channel", cfg.Events.Backend)
	}
	if cfg.Recommend.DefaultLimit != 10 {
		t.Errorf("Recommend.DefaultLimit = %d, want 10", cfg.Recommend.DefaultLimit)
	}
	if cfg.Trending.PostWindow != 72*time.Hour {
		t.Errorf("Trending.PostWindow = %v, want 72h", cfg.Trending.PostWindow)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults do not validate: %v", err)
	}
}

// TestEnvTransformFunc verifies environment variable name transformations
func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"HTTP_PORT", "server.port"},
		{"LOG_LEVEL", "logging.level"},
		{"DUCKDB_PATH", "database.path"},
		{"REDIS_URL", "cache.redis_url"},
		{"NATS_URL", "events.nats.url"},
		{"SEED_DEMO_DATA", "database.seed"},
		{"MANTRA_RECOMMEND__ITEM_KNN_WEIGHT", "recommend.item_knn_weight"},
		{"MANTRA_EVENTS__NATS__JETSTREAM", "events.nats.jetstream"},
		{"MANTRA_TRENDING__DECAY_HOURS", "trending.decay_hours"},
		{"PATH", ""},
		{"HOME", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := envTransformFunc(tt.input); got != tt.expected {
				t.Errorf("envTransformFunc(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

// TestLoadDefaults verifies Load with no file and no overrides
func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv(ConfigPathEnvVar, "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(cfg.Recommend, defaultConfig().Recommend) {
		t.Errorf("Recommend = %+v, want defaults", cfg.Recommend)
	}
	if cfg.Moderation.SpamFlagScore != defaultConfig().Moderation.SpamFlagScore {
		t.Errorf("Moderation.SpamFlagScore = %v", cfg.Moderation.SpamFlagScore)
	}
}

// TestLoadLayers verifies that env overrides file and file overrides defaults
func TestLoadLayers(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	path := filepath.Join(dir, "mantra.yaml")
	yamlDoc := `
server:
  port: 9000
  host: 127.0.0.1
cache:
  backend: lru
  capacity: 500
recommend:
  item_knn_weight: 0.5
  cache_ttl: 5m
trending:
  decay_hours: 12
`
	if err := os.WriteFile(path, []byte(yamlDoc), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("HTTP_PORT", "9100")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("MANTRA_RECOMMEND__SOCIAL_WEIGHT", "0.25")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != 9100 {
		t.Errorf("Server.Port = %d, want env value 9100", cfg.Server.Port)
	}
	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("Server.Host = %q, want file value", cfg.Server.Host)
	}
	if cfg.Cache.Backend != cache.BackendLRU || cfg.Cache.Capacity != 500 {
		t.Errorf("Cache = %+v", cfg.Cache)
	}
	if cfg.Recommend.ItemKNNWeight != 0.5 || cfg.Recommend.CacheTTL != 5*time.Minute {
		t.Errorf("Recommend file values = %v, %v", cfg.Recommend.ItemKNNWeight, cfg.Recommend.CacheTTL)
	}
	if cfg.Recommend.SocialWeight != 0.25 {
		t.Errorf("Recommend.SocialWeight = %v, want 0.25", cfg.Recommend.SocialWeight)
	}
	if cfg.Recommend.DefaultLimit != 10 {
		t.Errorf("Recommend.DefaultLimit = %d, want default 10", cfg.Recommend.DefaultLimit)
	}
	if cfg.Trending.DecayHours != 12 {
		t.Errorf("Trending.DecayHours = %v, want 12", cfg.Trending.DecayHours)
	}
	want := []string{"https://a.example", "https://b.example"}
	if !reflect.DeepEqual(cfg.Server.CORSOrigins, want) {
		t.Errorf("CORSOrigins = %v, want %v", cfg.Server.CORSOrigins, want)
	}
}

// TestLoadInvalid verifies that validation errors surface from Load
func TestLoadInvalid(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv(ConfigPathEnvVar, "")
	t.Setenv("CACHE_BACKEND", "memcached")

	if _, err := Load(); err == nil {
		t.Fatal("expected validation error for unknown cache backend")
	}
}

// TestFindConfigFile verifies search order
func TestFindConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv(ConfigPathEnvVar, filepath.Join(dir, "missing.yaml"))

	if got := findConfigFile(); got != "" {
		t.Errorf("findConfigFile() = %q, want empty", got)
	}

	if err := os.WriteFile("config.yml", []byte("server: {}\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if got := findConfigFile(); got != "config.yml" {
		t.Errorf("findConfigFile() = %q, want config.yml", got)
	}
}
