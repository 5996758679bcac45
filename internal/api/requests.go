// Mantra - Creator and Audience Ranking and Safety Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mantra

package api

import (
	"time"

	"github.com/tomtom215/mantra/internal/engagement"
	"github.com/tomtom215/mantra/internal/models"
)

// ModerationRequest is the body of POST /api/v1/moderation and
// POST /api/v1/moderation/analyze. PostID and AuthorID identify the content
// in flag events and are optional.
type ModerationRequest struct {
	Text       string `json:"text" validate:"required,max=10000"`
	PostID     int64  `json:"post_id" validate:"gte=0"`
	AuthorID   int64  `json:"author_id" validate:"gte=0"`
	AuthorName string `json:"author_name" validate:"max=200"`
}

// ModerationResponse is the result of POST /api/v1/moderation.
type ModerationResponse struct {
	models.ModerationResult
	// Notified is true when a flag event was published for review.
	Notified bool `json:"notified"`
}

// recommendationQuery holds the parsed query of the recommendations route.
type recommendationQuery struct {
	ActorID int64  `json:"actor_id" validate:"gt=0"`
	Type    string `json:"type" validate:"omitempty,oneof=all creators creator celebrities posts post events event merchandise fans fan clubs club items item"`
	Limit   int    `json:"limit" validate:"gte=0,lte=1000"`
}

// limitQuery holds a bare limit query parameter.
type limitQuery struct {
	Limit int `json:"limit" validate:"gte=0,lte=1000"`
}

// trendingQuery holds the trending routes' window and limit.
type trendingQuery struct {
	Hours int `json:"hours" validate:"gte=0,lte=720"`
	Days  int `json:"days" validate:"gte=0,lte=90"`
	Limit int `json:"limit" validate:"gte=0,lte=1000"`
}

// searchQuery holds the search route's parameters.
type searchQuery struct {
	Query string `json:"q" validate:"required,max=200"`
	Kind  string `json:"kind" validate:"omitempty,eq=actors|content_kind"`
	Limit int    `json:"limit" validate:"gte=0,lte=1000"`
}

// SponsorCandidate is a sponsor offered for matching.
type SponsorCandidate struct {
	ID                 int64    `json:"id" validate:"gt=0"`
	Name               string   `json:"name" validate:"required,max=200"`
	Categories         []string `json:"categories" validate:"max=50,dive,max=100"`
	TargetAudienceSize int64    `json:"target_audience_size" validate:"gte=0"`
	Prestige           *float64 `json:"prestige" validate:"omitempty,gte=0,lte=100"`
}

// SponsorMatchRequest is the body of POST /api/v1/creators/{id}/sponsors.
// An empty sponsor list matches every stored sponsor.
type SponsorMatchRequest struct {
	Sponsors []SponsorCandidate `json:"sponsors" validate:"max=500,dive"`
	Limit    int                `json:"limit" validate:"gte=0,lte=1000"`
}

// toActors converts the candidates into sponsor actors.
func (r *SponsorMatchRequest) toActors() []models.Actor {
	out := make([]models.Actor, len(r.Sponsors))
	for i, s := range r.Sponsors {
		out[i] = models.Actor{
			ID:   s.ID,
			Name: s.Name,
			Role: models.RoleSponsor,
			Sponsor: &models.SponsorProfile{
				Categories:         s.Categories,
				TargetAudienceSize: s.TargetAudienceSize,
				Prestige:           s.Prestige,
			},
		}
	}
	return out
}

// EngagementRequest is the body of POST /api/v1/engagement/predict.
//
// AuthorID loads the author's follower count and recent posts from the
// store. Without it, Author supplies the statistics directly.
type EngagementRequest struct {
	Text      string                  `json:"text" validate:"required,max=10000"`
	CreatedAt *time.Time              `json:"created_at"`
	HasMedia  bool                    `json:"has_media"`
	AuthorID  int64                   `json:"author_id" validate:"gte=0"`
	Author    *engagement.AuthorStats `json:"author"`
}

// EngagementResponse is the result of POST /api/v1/engagement/predict.
type EngagementResponse struct {
	Prediction   engagement.Prediction    `json:"prediction"`
	Hashtags     engagement.HashtagReport `json:"hashtags"`
	PostingTimes []engagement.PostingTime `json:"best_posting_times"`
}
