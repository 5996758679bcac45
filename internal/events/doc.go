// Mantra - Creator and Audience Ranking and Safety Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mantra

/*
Package events publishes moderation flag notifications for downstream
review queues.

When the moderation engine flags a post, the API layer hands the decision to
a Notifier. The Notifier builds a FlagEvent, throttles it per author and
publishes it on a Watermill topic (default "moderation.flagged").

# Backends

Two publisher backends are supported:

  - channel: an in-process Watermill GoChannel, used for single-node
    deployments and tests. Subscribers in the same process receive events.
  - nats: a Watermill NATS publisher. Core NATS is used by default; set
    events.nats.jetstream to publish through JetStream with Nats-Msg-Id
    deduplication.

Every publish goes through a gobreaker circuit breaker so a broker outage
fails fast instead of stalling moderation requests.

# Throttling

Each author gets a token bucket (golang.org/x/time/rate). Buckets live in a
bounded LRU so memory stays flat when many authors are flagged. A throttled
event is dropped and counted under mantra_flag_events_total{outcome="throttled"}.

# Example

	pub, err := events.NewPublisher(cfg)
	if err != nil {
	    return err
	}
	notifier, err := events.NewNotifier(cfg, pub)
	if err != nil {
	    return err
	}

	result := engine.Moderate(ctx, text)
	if result.Decision.ShouldFlag {
	    _ = notifier.NotifyFlagged(ctx, events.FlagInput{
	        PostID:   post.ID,
	        AuthorID: post.AuthorID,
	        Text:     text,
	        Decision: result.Decision,
	    })
	}
*/
package events
