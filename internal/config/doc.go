// Mantra - Creator and Audience Ranking and Safety Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mantra

/*
Package config loads and validates Mantra configuration.

Configuration is layered with koanf: built-in defaults, then an optional YAML
file, then environment variables. Each component owns its section type
(store.Config, cache.Config, events.Config, moderation.Config,
recommend.Config), so this package only composes and validates them.

# Config File

The file is read from CONFIG_PATH, or the first of config.yaml, config.yml,
/etc/mantra/config.yaml and /etc/mantra/config.yml that exists:

	server:
	  port: 8080
	  environment: production
	  cors_origins: ["https://app.example.com"]
	cache:
	  backend: redis
	  redis_url: redis://cache:6379/0
	events:
	  backend: nats
	  nats:
	    url: nats://nats:4222
	recommend:
	  item_knn_weight: 0.4

# Environment Variables

Common settings have flat names:

  - HTTP_HOST, HTTP_PORT, ENVIRONMENT, CORS_ORIGINS (comma-separated)
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER
  - STORE_DRIVER (memory, duckdb), DUCKDB_PATH, DUCKDB_THREADS, SEED_DEMO_DATA
  - CACHE_BACKEND (none, memory, lru, redis, badger), REDIS_URL, BADGER_CACHE_PATH
  - EVENTS_ENABLED, EVENTS_BACKEND (channel, nats), NATS_URL

Every other key can be set with the MANTRA_ prefix, using a double
underscore between sections:

	MANTRA_MODERATION__SPAM_FLAG_SCORE=0.9
	MANTRA_TRENDING__DECAY_HOURS=12
	MANTRA_EVENTS__NATS__JETSTREAM=true

Unknown variables are ignored.
*/
package config
