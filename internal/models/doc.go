// Mantra - Creator and Audience Ranking and Safety Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mantra

/*
Package models defines the data structures shared by the Mantra engine.

Key Components:

  - Actor: an account (fan, creator or sponsor) with optional role profiles
  - ContentItem: a rankable post, event, merchandise listing or club
  - InteractionRecord: (actor, item, weight) triples for collaborative filtering
  - CandidateScore, TrendingScore, HashtagCount: ranking outputs
  - ModerationSignal, ModerationDecision: moderation outputs
  - APIResponse, APIError, Metadata: the HTTP envelope

Optional Data:

Role-specific and kind-specific attributes are pointer fields. Scorers must
handle nil explicitly; a missing attribute contributes zero to any score.

	if a.Creator != nil && a.Creator.EngagementRate != nil {
		rate = *a.Creator.EngagementRate
	}

Enumerations:

Role, ContentKind, Severity and SentimentLabel are string types with
Parse helpers so that HTTP input is validated once at the boundary.
*/
package models
