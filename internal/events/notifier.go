// Mantra - Creator and Audience Ranking and Safety Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mantra

package events

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/time/rate"

	"github.com/tomtom215/mantra/internal/logging"
	"github.com/tomtom215/mantra/internal/metrics"
)

// FlagPublisher publishes flag events to a topic.
type FlagPublisher interface {
	PublishFlag(ctx context.Context, topic string, e *FlagEvent) error
}

// Notifier turns flagged moderation decisions into throttled flag events.
type Notifier struct {
	pub        FlagPublisher
	topic      string
	previewLen int
	rate       rate.Limit
	burst      int
	now        func() time.Time

	mu       sync.Mutex
	limiters *lru.Cache[int64, *rate.Limiter]
}

// NewNotifier creates a notifier that publishes through pub.
func NewNotifier(cfg Config, pub FlagPublisher) (*Notifier, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid events config: %w", err)
	}
	if pub == nil {
		return nil, errors.New("events: publisher is required")
	}
	limiters, err := lru.New[int64, *rate.Limiter](cfg.ThrottleCapacity)
	if err != nil {
		return nil, fmt.Errorf("create throttle cache: %w", err)
	}
	return &Notifier{
		pub:        pub,
		topic:      cfg.Topic,
		previewLen: cfg.PreviewLength,
		rate:       rate.Limit(cfg.AuthorRate),
		burst:      cfg.AuthorBurst,
		now:        time.Now,
		limiters:   limiters,
	}, nil
}

// NotifyFlagged publishes a flag event for in. It returns ErrNotFlagged for
// an unflagged decision and ErrThrottled when the author is over the limit.
func (n *Notifier) NotifyFlagged(ctx context.Context, in FlagInput) error {
	now := n.now()
	event, err := NewFlagEvent(in, n.previewLen, now)
	if err != nil {
		return err
	}

	if !n.allow(in.AuthorID, now) {
		metrics.RecordFlagEvent("throttled")
		logging.Ctx(ctx).Debug().
			Int64("author_id", in.AuthorID).
			Int64("post_id", in.PostID).
			Msg("Flag notification throttled")
		return ErrThrottled
	}

	if err := n.pub.PublishFlag(ctx, n.topic, event); err != nil {
		metrics.RecordFlagEvent("failed")
		return fmt.Errorf("publish flag event: %w", err)
	}

	metrics.RecordFlagEvent("published")
	logging.Ctx(ctx).Info().
		Str("event_id", event.EventID).
		Int64("post_id", in.PostID).
		Int64("author_id", in.AuthorID).
		Str("severity", string(event.Metadata.Severity)).
		Msg("Flag event published")
	return nil
}

func (n *Notifier) allow(authorID int64, now time.Time) bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	l, ok := n.limiters.Get(authorID)
	if !ok {
		l = rate.NewLimiter(n.rate, n.burst)
		n.limiters.Add(authorID, l)
	}
	return l.AllowN(now, 1)
}
