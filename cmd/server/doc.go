// Mantra - Creator and Audience Ranking and Safety Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mantra

/*
Package main is the entry point for the Mantra server.

Mantra ranks creators, posts, events, sponsors and merchandise for the
actors of a creator community, and screens user text for profanity,
toxicity, spam and sentiment before it is published.

# Application Architecture

Long-running services run under a Suture v4 supervisor tree:

	RootSupervisor ("mantra")
	├── DataSupervisor ("data-layer")
	│   └── TrainerService (recommend.train_interval > 0)
	├── MessagingSupervisor ("messaging-layer")
	│   └── Flag event publisher (events.enabled)
	└── APISupervisor ("api-layer")
	    └── HTTP Server

Component initialization order:

 1. Configuration: Koanf v2 with config file and environment variables
 2. Logging: zerolog with JSON/console output modes
 3. Store: in-memory or DuckDB, optionally seeded with demo data
 4. Cache: none, memory, LRU, Redis or BadgerDB
 5. Moderation engine and recommendation orchestrator
 6. Flag event publisher: Watermill over Go channels or NATS
 7. Supervisor tree and HTTP server

# Configuration

	Priority: Environment variables > Config file > Defaults

Common environment variables:

	HTTP_PORT=8080
	LOG_LEVEL=info                # trace, debug, info, warn, error
	LOG_FORMAT=json               # json or console
	STORE_DRIVER=memory           # memory or duckdb
	SEED_DEMO_DATA=true           # load the demo data set
	CACHE_BACKEND=lru             # none, memory, lru, redis, badger
	EVENTS_ENABLED=true
	EVENTS_BACKEND=nats           # channel or nats
	RECOMMEND_TRAIN_INTERVAL=15m  # 0 disables background training

Any other key is reachable as MANTRA_<SECTION>__<KEY>, for example
MANTRA_RECOMMEND__ITEM_KNN_WEIGHT=0.6.

# Signal Handling

SIGINT and SIGTERM cancel the supervisor context. The HTTP server drains
in-flight requests within server.shutdown_timeout, the event publisher is
closed, and the store and cache are closed last.
*/
package main
