// Mantra - Creator and Audience Ranking and Safety Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mantra

package store

import (
	"context"

	"github.com/tomtom215/mantra/internal/models"
)

// Reader is the read-only snapshot interface consumed by the ranking engine.
// Every list is returned in ascending ID order.
type Reader interface {
	// Actor returns the actor or an error wrapping models.ErrNotFound.
	Actor(ctx context.Context, id int64) (*models.Actor, error)

	// Actors returns all actors with the given role, or every actor when role is empty.
	Actors(ctx context.Context, role models.Role) ([]models.Actor, error)

	// Content returns all items of the given kind.
	Content(ctx context.Context, kind models.ContentKind) ([]models.ContentItem, error)

	// Interactions returns every (actor, item, weight) record ordered by
	// actor then item, with repeated pairs in insertion order.
	Interactions(ctx context.Context) ([]models.InteractionRecord, error)

	// Possessed returns the IDs of items of the given kind the actor already holds:
	// liked posts, booked events, purchased merchandise, joined clubs.
	Possessed(ctx context.Context, actorID int64, kind models.ContentKind) ([]int64, error)

	// Followers returns the IDs of actors following actorID.
	Followers(ctx context.Context, actorID int64) ([]int64, error)

	// Ping reports whether the store is reachable.
	Ping(ctx context.Context) error
}

// Writer loads records. Used by the demo seed and tests; the platform's own
// record management is external.
type Writer interface {
	PutActor(ctx context.Context, a *models.Actor) error
	PutContent(ctx context.Context, item *models.ContentItem) error
	PutInteraction(ctx context.Context, rec models.InteractionRecord) error
	PutPossession(ctx context.Context, actorID int64, kind models.ContentKind, itemID int64) error
}

// Store is a Reader and Writer that owns resources.
type Store interface {
	Reader
	Writer
	Close() error
}
