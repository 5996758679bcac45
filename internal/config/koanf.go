// Mantra - Creator and Audience Ranking and Safety Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mantra

package config

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths are tried in order when CONFIG_PATH is unset or
// points nowhere.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/mantra/config.yaml",
	"/etc/mantra/config.yml",
}

const (
	// ConfigPathEnvVar names an explicit YAML file.
	ConfigPathEnvVar = "CONFIG_PATH"
	// EnvPrefix starts nested overrides: MANTRA_CACHE__BACKEND sets cache.backend.
	EnvPrefix = "MANTRA_"
)

// listKeys hold []string values that arrive from the environment as one
// comma-separated string.
var listKeys = []string{
	"server.cors_origins",
	"moderation.toxic_keywords",
	"moderation.spam_patterns",
}

// Load layers defaults, then the optional YAML file, then the environment,
// and validates the merged result.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}
	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
	}
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}
	for _, key := range listKeys {
		if err := splitList(k, key); err != nil {
			return nil, err
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("decode configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func findConfigFile() string {
	candidates := DefaultConfigPaths
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		candidates = append([]string{p}, candidates...)
	}
	for _, p := range candidates {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	return ""
}

// splitList turns a "a, b,,c" string at key into []string{"a", "b", "c"}.
// Values that are already lists, or split to nothing, are left alone.
func splitList(k *koanf.Koanf, key string) error {
	raw, ok := k.Get(key).(string)
	if !ok {
		return nil
	}
	items := strings.FieldsFunc(raw, func(r rune) bool { return r == ',' })
	items = slices.DeleteFunc(items, func(s string) bool { return strings.TrimSpace(s) == "" })
	if len(items) == 0 {
		return nil
	}
	for i := range items {
		items[i] = strings.TrimSpace(items[i])
	}
	if err := k.Set(key, items); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// legacyEnv maps flat environment names to config paths.
var legacyEnv = map[string]string{
	"http_host":           "server.host",
	"http_port":           "server.port",
	"environment":         "server.environment",
	"cors_origins":        "server.cors_origins",
	"rate_limit_requests": "server.rate_limit_requests",
	"rate_limit_window":   "server.rate_limit_window",
	"disable_rate_limit":  "server.rate_limit_disabled",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	"store_driver":      "database.driver",
	"duckdb_path":       "database.path",
	"duckdb_threads":    "database.threads",
	"duckdb_max_memory": "database.max_memory",
	"seed_demo_data":    "database.seed",

	"cache_backend":     "cache.backend",
	"cache_capacity":    "cache.capacity",
	"redis_url":         "cache.redis_url",
	"badger_cache_path": "cache.badger_path",

	"events_enabled": "events.enabled",
	"events_backend": "events.backend",
	"nats_url":       "events.nats.url",

	"recommend_cache_ttl":      "recommend.cache_ttl",
	"recommend_train_interval": "recommend.train_interval",
	"moderation_cache_ttl":     "moderation.cache_ttl",
}

// envTransformFunc resolves an environment variable to a config key, or ""
// to ignore it. Flat names come from legacyEnv; MANTRA_ names nest on "__".
//   - HTTP_PORT -> server.port
//   - REDIS_URL -> cache.redis_url
//   - MANTRA_RECOMMEND__ITEM_KNN_WEIGHT -> recommend.item_knn_weight
//   - MANTRA_EVENTS__NATS__JETSTREAM -> events.nats.jetstream
func envTransformFunc(key string) string {
	name := strings.ToLower(key)
	if path, ok := legacyEnv[name]; ok {
		return path
	}
	if rest, ok := strings.CutPrefix(name, strings.ToLower(EnvPrefix)); ok {
		return strings.ReplaceAll(rest, "__", ".")
	}
	return ""
}
