// Mantra - Creator and Audience Ranking and Safety Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mantra

package events

import (
	"errors"
	"fmt"
	"time"
)

// Supported publisher backends.
const (
	BackendChannel = "channel"
	BackendNATS    = "nats"
)

// DefaultTopic carries flag notifications.
const DefaultTopic = "moderation.flagged"

// Config controls flag event publishing.
type Config struct {
	// Enabled turns flag notifications on.
	Enabled bool `koanf:"enabled"`

	// Backend is "channel" or "nats".
	Backend string `koanf:"backend"`

	// Topic is the Watermill topic (NATS subject) for flag events.
	Topic string `koanf:"topic"`

	NATS    NATSConfig    `koanf:"nats"`
	Breaker BreakerConfig `koanf:"breaker"`

	// AuthorRate is the sustained number of notifications per second allowed
	// for one author; AuthorBurst is the bucket size.
	AuthorRate  float64 `koanf:"author_rate"`
	AuthorBurst int     `koanf:"author_burst"`

	// ThrottleCapacity bounds the number of authors tracked by the throttle.
	ThrottleCapacity int `koanf:"throttle_capacity"`

	// PreviewLength is the number of runes of content copied into an event.
	PreviewLength int `koanf:"preview_length"`

	// ChannelBuffer is the output buffer of each in-process subscriber.
	ChannelBuffer int64 `koanf:"channel_buffer"`
}

// NATSConfig holds the NATS publisher connection settings.
type NATSConfig struct {
	URL             string        `koanf:"url"`
	MaxReconnects   int           `koanf:"max_reconnects"`
	ReconnectWait   time.Duration `koanf:"reconnect_wait"`
	ReconnectBuffer int           `koanf:"reconnect_buffer"`

	// JetStream publishes through JetStream; the stream must already exist.
	JetStream bool `koanf:"jetstream"`

	// TrackMsgID sets Nats-Msg-Id from the event ID for JetStream deduplication.
	TrackMsgID bool `koanf:"track_msg_id"`
}

// BreakerConfig holds circuit breaker settings for publishing.
type BreakerConfig struct {
	MaxRequests      uint32        `koanf:"max_requests"`
	Interval         time.Duration `koanf:"interval"`
	Timeout          time.Duration `koanf:"timeout"`
	FailureThreshold uint32        `koanf:"failure_threshold"`
}

// DefaultConfig returns production defaults. Notifications are enabled on
// the in-process channel backend.
func DefaultConfig() Config {
	return Config{
		Enabled: true,
		Backend: BackendChannel,
		Topic:   DefaultTopic,
		NATS: NATSConfig{
			URL:             "nats://127.0.0.1:4222",
			MaxReconnects:   -1,
			ReconnectWait:   2 * time.Second,
			ReconnectBuffer: 8 * 1024 * 1024,
			TrackMsgID:      true,
		},
		Breaker: BreakerConfig{
			MaxRequests:      3,
			Interval:         30 * time.Second,
			Timeout:          10 * time.Second,
			FailureThreshold: 5,
		},
		AuthorRate:       1.0 / 60,
		AuthorBurst:      5,
		ThrottleCapacity: 10000,
		PreviewLength:    100,
		ChannelBuffer:    64,
	}
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	var errs []error

	switch c.Backend {
	case BackendChannel:
	case BackendNATS:
		if c.NATS.URL == "" {
			errs = append(errs, errors.New("events.nats.url is required for the nats backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("%w: %q", ErrUnknownBackend, c.Backend))
	}
	if c.Topic == "" {
		errs = append(errs, errors.New("events.topic is required"))
	}
	if c.AuthorRate <= 0 || c.AuthorBurst <= 0 {
		errs = append(errs, errors.New("events.author_rate and events.author_burst must be positive"))
	}
	if c.ThrottleCapacity <= 0 {
		errs = append(errs, errors.New("events.throttle_capacity must be positive"))
	}
	if c.PreviewLength <= 0 {
		errs = append(errs, errors.New("events.preview_length must be positive"))
	}
	if c.Breaker.FailureThreshold == 0 {
		errs = append(errs, errors.New("events.breaker.failure_threshold must be positive"))
	}

	return errors.Join(errs...)
}
