// Mantra - Creator and Audience Ranking and Safety Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mantra

package models

import (
	"fmt"
	"strings"
)

// Role is the kind of account an Actor represents.
type Role string

const (
	RoleFan     Role = "fan"
	RoleCreator Role = "creator"
	RoleSponsor Role = "sponsor"
)

// ParseRole converts a string to a Role.
func ParseRole(s string) (Role, error) {
	switch r := Role(strings.ToLower(strings.TrimSpace(s))); r {
	case RoleFan, RoleCreator, RoleSponsor:
		return r, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// ActorEngagement holds the counters maintained by the platform for an account.
// All counters are non-negative.
type ActorEngagement struct {
	Followers int64 `json:"followers"`
	Posts     int64 `json:"posts"`
	Likes     int64 `json:"likes"`
	Comments  int64 `json:"comments"`
	Shares    int64 `json:"shares"`
}

// FanProfile is the audience-specific part of an actor.
type FanProfile struct {
	// ActivityScore is a 0-100 measure of how active the fan is on the platform.
	ActivityScore float64 `json:"activity_score"`
	// SocialScore is a 0-100 measure of the fan's social reach.
	SocialScore float64 `json:"social_score"`
}

// CreatorProfile is the creator-specific part of an actor.
type CreatorProfile struct {
	Categories []string `json:"categories"`
	Points     int64    `json:"points"`
	// EngagementRate is in [0,1]; nil when the platform has not computed one yet.
	EngagementRate *float64 `json:"engagement_rate,omitempty"`
	Verified       bool     `json:"verified"`
}

// SponsorProfile is the brand-specific part of an actor.
type SponsorProfile struct {
	Categories         []string `json:"categories"`
	TargetAudienceSize int64    `json:"target_audience_size"`
	// Prestige is a 0-100 brand rating; nil when unrated.
	Prestige *float64 `json:"prestige,omitempty"`
}

// Actor is any account that can receive recommendations or author moderated text.
//
// Role-specific data lives in the optional profile pointers. A nil profile means
// the data is absent and every scorer treats it as contributing zero.
type Actor struct {
	ID         int64           `json:"id"`
	Name       string          `json:"name"`
	Role       Role            `json:"role"`
	Interests  []string        `json:"interests"`
	Follows    []int64         `json:"follows"`
	Engagement ActorEngagement `json:"engagement"`

	Fan     *FanProfile     `json:"fan,omitempty"`
	Creator *CreatorProfile `json:"creator,omitempty"`
	Sponsor *SponsorProfile `json:"sponsor,omitempty"`
}

// Categories returns the creator or sponsor categories, falling back to interests.
func (a *Actor) Categories() []string {
	switch {
	case a.Creator != nil && len(a.Creator.Categories) > 0:
		return a.Creator.Categories
	case a.Sponsor != nil && len(a.Sponsor.Categories) > 0:
		return a.Sponsor.Categories
	default:
		return a.Interests
	}
}

// FollowsActor reports whether a follows the actor with the given id.
func (a *Actor) FollowsActor(id int64) bool {
	for _, f := range a.Follows {
		if f == id {
			return true
		}
	}
	return false
}

// InteractionRecord is one (actor, item, weight) triple used by collaborative filtering.
type InteractionRecord struct {
	ActorID int64   `json:"actor_id"`
	ItemID  int64   `json:"item_id"`
	Weight  float64 `json:"weight"`
}
