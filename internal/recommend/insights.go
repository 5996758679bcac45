// Mantra - Creator and Audience Ranking and Safety Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mantra

package recommend

import (
	"fmt"
	"math"

	"github.com/tomtom215/mantra/internal/models"
)

// InfluenceReport is a 0-100 tiered influence score for a creator.
type InfluenceReport struct {
	Score         float64 `json:"score"`
	Followers     int64   `json:"followers"`
	Posts         int     `json:"posts"`
	AvgEngagement float64 `json:"avg_engagement"`
}

// Influence scores a creator from follower count, average likes plus
// comments per post, and posting activity.
func Influence(creator *models.Actor, followers int64, posts []models.ContentItem) (InfluenceReport, error) {
	if creator == nil || creator.Role != models.RoleCreator {
		return InfluenceReport{}, fmt.Errorf("%w: influence is only defined for creators", ErrInvalidRequest)
	}

	report := InfluenceReport{Followers: followers, Posts: len(posts)}
	if len(posts) > 0 {
		var sum float64
		for i := range posts {
			sum += float64(posts[i].Engagement.Likes + posts[i].Engagement.Comments)
		}
		report.AvgEngagement = sum / float64(len(posts))
	}

	var score float64
	switch {
	case followers > 10000:
		score += 40
	case followers > 5000:
		score += 30
	case followers > 1000:
		score += 20
	case followers > 100:
		score += 10
	}
	switch {
	case report.AvgEngagement > 1000:
		score += 30
	case report.AvgEngagement > 500:
		score += 20
	case report.AvgEngagement > 100:
		score += 10
	}
	switch {
	case report.Posts > 100:
		score += 30
	case report.Posts > 50:
		score += 20
	case report.Posts > 10:
		score += 10
	}
	report.Score = math.Min(score, 100)
	return report, nil
}

// AffinityInput is the interaction history between a fan and a creator.
type AffinityInput struct {
	Fan     *models.Actor
	Creator *models.Actor
	// Likes is the number of the creator's posts the fan liked.
	Likes int
	// Interactions is the number of the creator's events and merchandise the fan
	// has booked or bought.
	Interactions int
}

// AffinityReport is a 0-100 fan–creator affinity with its components.
type AffinityReport struct {
	Score           float64  `json:"score"`
	Follows         bool     `json:"follows"`
	SharedInterests []string `json:"shared_interests"`
}

// Affinity scores a fan's closeness to a creator: 30 for following,
// min(likes·2, 30), min(interactions·3, 30) and 5 per shared interest,
// capped at 100.
func Affinity(in AffinityInput) (AffinityReport, error) {
	if in.Fan == nil || in.Creator == nil {
		return AffinityReport{}, fmt.Errorf("%w: affinity needs a fan and a creator", ErrInvalidRequest)
	}

	report := AffinityReport{Follows: in.Fan.FollowsActor(in.Creator.ID)}
	var score float64
	if report.Follows {
		score += 30
	}
	score += math.Min(float64(in.Likes)*2, 30)
	score += math.Min(float64(in.Interactions)*3, 30)

	if in.Creator.Creator != nil {
		report.SharedInterests = Intersect(in.Fan.Interests, in.Creator.Creator.Categories)
		score += float64(len(report.SharedInterests)) * 5
	}
	if report.SharedInterests == nil {
		report.SharedInterests = []string{}
	}
	report.Score = math.Min(score, 100)
	return report, nil
}

// CollaborationReport describes the fit of two creators for a joint project.
type CollaborationReport struct {
	Score           float64  `json:"collaboration_score"`
	SharedAudience  int      `json:"shared_audience"`
	CategoryOverlap []string `json:"category_overlap"`
	Recommendation  string   `json:"recommendation"`
}

// Collaboration scores two creators: 20 per shared category, 30·follower
// ratio, 20·mean engagement rate and min(shared audience/10, 30), capped
// at 100. shared is the number of followers both creators have.
func Collaboration(a, b *models.Actor, shared int) CollaborationReport {
	if a == nil || b == nil || a.Creator == nil || b.Creator == nil {
		return CollaborationReport{CategoryOverlap: []string{}, Recommendation: "Insufficient data"}
	}

	overlap := Intersect(a.Creator.Categories, b.Creator.Categories)
	if overlap == nil {
		overlap = []string{}
	}
	score := float64(len(overlap)) * 20

	fa, fb := float64(a.Engagement.Followers), float64(b.Engagement.Followers)
	if fa > 0 && fb > 0 {
		score += math.Min(fa, fb) / math.Max(fa, fb) * 30
	}
	if a.Creator.EngagementRate != nil && b.Creator.EngagementRate != nil {
		score += (*a.Creator.EngagementRate + *b.Creator.EngagementRate) / 2 * 20
	}
	score += math.Min(float64(shared)/10, 30)

	var text string
	switch {
	case score > 70:
		text = "Excellent collaboration potential!"
	case score > 50:
		text = "Good collaboration opportunity"
	case score > 30:
		text = "Moderate collaboration potential"
	default:
		text = "Low collaboration potential"
	}

	return CollaborationReport{
		Score:           round2(math.Min(score, 100)),
		SharedAudience:  shared,
		CategoryOverlap: overlap,
		Recommendation:  text,
	}
}
