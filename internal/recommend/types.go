// Mantra - Creator and Audience Ranking and Safety Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mantra

package recommend

import (
	"fmt"
	"strings"
	"time"

	"github.com/tomtom215/mantra/internal/models"
)

// RecommendationType selects the candidate universe and scorer.
type RecommendationType int

const (
	// TypeCreators ranks creators for a fan, or creators for a sponsor.
	TypeCreators RecommendationType = iota + 1
	// TypePosts ranks unseen posts.
	TypePosts
	// TypeEvents ranks upcoming events the actor has not booked.
	TypeEvents
	// TypeMerchandise ranks in-stock merchandise.
	TypeMerchandise
	// TypeFans ranks similar fans for a fan, or potential fans for a creator.
	TypeFans
	// TypeClubs ranks clubs for a fan.
	TypeClubs
	// TypeItems ranks items by item-kNN collaborative filtering.
	TypeItems
)

// AllTypes lists every type in dispatch order.
var AllTypes = []RecommendationType{
	TypeCreators, TypePosts, TypeEvents, TypeMerchandise, TypeFans, TypeClubs, TypeItems,
}

// String returns the wire name of the type.
func (t RecommendationType) String() string {
	switch t {
	case TypeCreators:
		return "creators"
	case TypePosts:
		return "posts"
	case TypeEvents:
		return "events"
	case TypeMerchandise:
		return "merchandise"
	case TypeFans:
		return "fans"
	case TypeClubs:
		return "clubs"
	case TypeItems:
		return "items"
	default:
		return "unknown"
	}
}

// ParseType converts a wire name to a RecommendationType.
func ParseType(s string) (RecommendationType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "creators", "creator", "celebrities":
		return TypeCreators, nil
	case "posts", "post":
		return TypePosts, nil
	case "events", "event":
		return TypeEvents, nil
	case "merchandise":
		return TypeMerchandise, nil
	case "fans", "fan":
		return TypeFans, nil
	case "clubs", "club":
		return TypeClubs, nil
	case "items", "item":
		return TypeItems, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownType, s)
	}
}

// AppliesTo reports whether the type is offered to actors with the given role.
func (t RecommendationType) AppliesTo(role models.Role) bool {
	switch role {
	case models.RoleFan:
		return t >= TypeCreators && t <= TypeItems
	case models.RoleCreator:
		return t == TypeFans || t == TypePosts || t == TypeItems
	case models.RoleSponsor:
		return t == TypeCreators
	default:
		return false
	}
}

// Section names the result of a type for an actor role. Fans see
// "similar_fans" and creators see "potential_fans".
func (t RecommendationType) Section(role models.Role) string {
	if t == TypeFans {
		if role == models.RoleCreator {
			return "potential_fans"
		}
		return "similar_fans"
	}
	return t.String()
}

// Request is a ranking request for one actor.
type Request struct {
	ActorID int64              `json:"actor_id"`
	Type    RecommendationType `json:"type"`
	Limit   int                `json:"limit"`
}

// Result is a ranked candidate list for one type.
type Result struct {
	Type    string                  `json:"type"`
	Section string                  `json:"section"`
	Items   []models.CandidateScore `json:"items"`

	// Fallback is true when the popularity ordering replaced the scorer output.
	Fallback bool `json:"fallback"`

	// Cached is true when the result was served from the cache.
	Cached bool `json:"cached"`

	GeneratedAt time.Time `json:"generated_at"`
}
