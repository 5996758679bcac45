// Mantra - Creator and Audience Ranking and Safety Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mantra

package recommend

import (
	"math"
	"sort"
	"time"

	"github.com/tomtom215/mantra/internal/models"
	"github.com/tomtom215/mantra/internal/textsignal"
)

// TrendingScorer ranks recent content by time-decayed engagement.
type TrendingScorer struct {
	cfg TrendingConfig
}

// NewTrendingScorer creates a scorer with the given weights.
func NewTrendingScorer(cfg TrendingConfig) TrendingScorer {
	return TrendingScorer{cfg: cfg}
}

// Score returns the decayed engagement of an item at now:
//
//	(views·ViewWeight + likes·LikeWeight + comments·CommentWeight) / (1 + max(ageHours, MinAgeHours)/DecayHours)
func (t TrendingScorer) Score(item *models.ContentItem, now time.Time) float64 {
	e := item.Engagement
	raw := float64(e.Views)*t.cfg.ViewWeight + float64(e.Likes)*t.cfg.LikeWeight + float64(e.Comments)*t.cfg.CommentWeight
	age := math.Max(now.Sub(item.CreatedAt).Hours(), t.cfg.MinAgeHours)
	return raw / (1 + age/t.cfg.DecayHours)
}

// Rank scores items created within window before now and returns the top
// limit, highest first. Ties keep input order.
func (t TrendingScorer) Rank(items []models.ContentItem, now time.Time, window time.Duration, limit int) []models.TrendingScore {
	cutoff := now.Add(-window)
	out := make([]models.TrendingScore, 0, len(items))
	for i := range items {
		if items[i].CreatedAt.Before(cutoff) {
			continue
		}
		out = append(out, models.TrendingScore{
			ItemID: items[i].ID,
			Score:  t.Score(&items[i], now),
			AsOf:   now,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Hashtags counts hashtags in the title and text of posts created within
// window before now. Tags are lower-cased; ties keep first-seen order.
func (t TrendingScorer) Hashtags(posts []models.ContentItem, now time.Time, window time.Duration, limit int) []models.HashtagCount {
	cutoff := now.Add(-window)
	counts := make(map[string]int)
	var order []string
	for i := range posts {
		if posts[i].CreatedAt.Before(cutoff) {
			continue
		}
		for _, tag := range textsignal.Hashtags(posts[i].Text + " " + posts[i].Title) {
			if _, seen := counts[tag]; !seen {
				order = append(order, tag)
			}
			counts[tag]++
		}
	}

	out := make([]models.HashtagCount, 0, len(order))
	for _, tag := range order {
		out = append(out, models.HashtagCount{Tag: "#" + tag, Count: counts[tag]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
