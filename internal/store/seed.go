// Mantra - Creator and Audience Ranking and Safety Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mantra

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/mantra/internal/logging"
	"github.com/tomtom215/mantra/internal/models"
)

// Seed writes a small deterministic data set relative to now: creators,
// fans, sponsors, posts, events, merchandise, clubs and interactions.
func Seed(ctx context.Context, w Writer, now time.Time) error {
	creators := []models.Actor{
		seedCreator(1, "Ava Stone", []string{"music", "fashion"}, 12500, 4200, 0.08),
		seedCreator(2, "Leo Park", []string{"gaming", "tech"}, 6400, 2100, 0.05),
		seedCreator(3, "Mia Cruz", []string{"music", "dance"}, 900, 650, 0.12),
		seedCreator(4, "Kai Ross", []string{"fitness", "food"}, 3100, 1800, 0.06),
	}
	fans := []models.Actor{
		seedFan(10, "fan_jules", []string{"music", "dance"}, []int64{1}, 72, 40),
		seedFan(11, "fan_remy", []string{"gaming", "tech", "music"}, []int64{2, 1}, 55, 35),
		seedFan(12, "fan_noor", []string{"music", "fashion"}, []int64{1, 3}, 88, 60),
		seedFan(13, "fan_ivo", []string{"fitness"}, nil, 20, 10),
		seedFan(14, "fan_sami", []string{"music", "fashion", "dance"}, []int64{1, 3}, 64, 52),
		seedFan(15, "fan_tess", []string{"food", "fitness"}, []int64{4}, 47, 22),
	}
	sponsors := []models.Actor{
		{ID: 20, Name: "Northwind Audio", Role: models.RoleSponsor, Sponsor: &models.SponsorProfile{
			Categories: []string{"music", "tech"}, TargetAudienceSize: 5000, Prestige: models.Float64(80)}},
		{ID: 21, Name: "Peak Nutrition", Role: models.RoleSponsor, Sponsor: &models.SponsorProfile{
			Categories: []string{"fitness", "food"}, TargetAudienceSize: 2000}},
	}

	for _, group := range [][]models.Actor{creators, fans, sponsors} {
		for i := range group {
			if err := w.PutActor(ctx, &group[i]); err != nil {
				return fmt.Errorf("seed actor %d: %w", group[i].ID, err)
			}
		}
	}

	items := seedContent(now)
	for i := range items {
		if err := w.PutContent(ctx, &items[i]); err != nil {
			return fmt.Errorf("seed content %d: %w", items[i].ID, err)
		}
	}

	interactions := []models.InteractionRecord{
		{ActorID: 10, ItemID: 100, Weight: 5}, {ActorID: 10, ItemID: 102, Weight: 3},
		{ActorID: 11, ItemID: 101, Weight: 4}, {ActorID: 11, ItemID: 103, Weight: 5},
		{ActorID: 12, ItemID: 100, Weight: 4}, {ActorID: 12, ItemID: 104, Weight: 5},
		{ActorID: 14, ItemID: 100, Weight: 3}, {ActorID: 14, ItemID: 102, Weight: 4},
		{ActorID: 14, ItemID: 104, Weight: 2}, {ActorID: 15, ItemID: 105, Weight: 5},
	}
	for _, rec := range interactions {
		if err := w.PutInteraction(ctx, rec); err != nil {
			return fmt.Errorf("seed interaction: %w", err)
		}
		if err := w.PutPossession(ctx, rec.ActorID, models.KindPost, rec.ItemID); err != nil {
			return fmt.Errorf("seed possession: %w", err)
		}
	}
	if err := w.PutPossession(ctx, 12, models.KindEvent, 200); err != nil {
		return fmt.Errorf("seed possession: %w", err)
	}
	if err := w.PutPossession(ctx, 10, models.KindClub, 400); err != nil {
		return fmt.Errorf("seed possession: %w", err)
	}

	logging.Info().
		Int("actors", len(creators)+len(fans)+len(sponsors)).
		Int("content", len(items)).
		Int("interactions", len(interactions)).
		Msg("Demo data seeded")
	return nil
}

func seedCreator(id int64, name string, categories []string, followers, posts int64, rate float64) models.Actor {
	return models.Actor{
		ID:        id,
		Name:      name,
		Role:      models.RoleCreator,
		Interests: categories,
		Engagement: models.ActorEngagement{
			Followers: followers,
			Posts:     posts,
			Likes:     followers * 3,
			Comments:  followers / 2,
		},
		Creator: &models.CreatorProfile{
			Categories:     categories,
			Points:         followers / 2,
			EngagementRate: models.Float64(rate),
			Verified:       followers > 1000,
		},
	}
}

func seedFan(id int64, name string, interests []string, follows []int64, activity, social float64) models.Actor {
	return models.Actor{
		ID:        id,
		Name:      name,
		Role:      models.RoleFan,
		Interests: interests,
		Follows:   follows,
		Fan:       &models.FanProfile{ActivityScore: activity, SocialScore: social},
	}
}

func seedContent(now time.Time) []models.ContentItem {
	post := func(id, author int64, hoursAgo int, text string, views, likes, comments int64, tags ...string) models.ContentItem {
		return models.ContentItem{
			ID: id, Kind: models.KindPost, Text: text, Tags: tags, AuthorID: author,
			CreatedAt:  now.Add(-time.Duration(hoursAgo) * time.Hour),
			Engagement: models.ContentEngagement{Views: views, Likes: likes, Comments: comments},
		}
	}
	event := func(id, author int64, daysAhead int, title string, attendees int64, tags ...string) models.ContentItem {
		return models.ContentItem{
			ID: id, Kind: models.KindEvent, Title: title, Tags: tags, AuthorID: author,
			CreatedAt: now.Add(-48 * time.Hour),
			StartsAt:  models.Time(now.Add(time.Duration(daysAhead) * 24 * time.Hour)),
			Attendees: models.Int64(attendees),
		}
	}

	items := []models.ContentItem{
		post(100, 1, 3, "New single drops Friday! #music #newrelease #pop", 5400, 820, 140, "music"),
		post(101, 2, 10, "Benchmarking the new GPU lineup #tech #gaming", 3100, 410, 95, "tech", "gaming"),
		post(102, 3, 30, "Choreography rehearsal for the summer tour #dance #music", 1800, 260, 48, "dance", "music"),
		post(103, 2, 72, "Speedrun highlights from last night's stream #gaming", 2600, 300, 70, "gaming"),
		post(104, 1, 5, "Backstage looks from the fashion week show #fashion", 4700, 690, 120, "fashion"),
		post(105, 4, 20, "High protein breakfast bowl recipe #food #fitness", 1200, 210, 33, "food", "fitness"),
		post(106, 3, 200, "Throwback to my first open mic night #music", 900, 120, 15, "music"),
		event(200, 1, 10, "Ava Stone Live Acoustic Night", 320, "music"),
		event(201, 3, 21, "Dance Workshop with Mia", 45, "dance", "music"),
		event(202, 2, 5, "Gaming Marathon Meetup", 150, "gaming"),
		event(203, 4, -3, "Morning Run Club", 60, "fitness"),
	}

	items = append(items,
		models.ContentItem{ID: 300, Kind: models.KindMerchandise, Title: "Tour Hoodie", AuthorID: 1,
			CreatedAt: now.Add(-240 * time.Hour), Sold: models.Int64(540), Stock: models.Int64(80),
			DiscountPercent: models.Float64(10), Featured: true},
		models.ContentItem{ID: 301, Kind: models.KindMerchandise, Title: "Signed Vinyl", AuthorID: 1,
			CreatedAt: now.Add(-100 * time.Hour), Sold: models.Int64(120), Stock: models.Int64(5), Exclusive: true},
		models.ContentItem{ID: 302, Kind: models.KindMerchandise, Title: "Controller Skin", AuthorID: 2,
			CreatedAt: now.Add(-300 * time.Hour), Sold: models.Int64(900), Stock: models.Int64(0)},
		models.ContentItem{ID: 303, Kind: models.KindMerchandise, Title: "Protein Shaker", AuthorID: 4,
			CreatedAt: now.Add(-50 * time.Hour), Sold: models.Int64(75), Stock: models.Int64(200),
			DiscountPercent: models.Float64(25)},
		models.ContentItem{ID: 400, Kind: models.KindClub, Title: "Ava Stone Official Club", AuthorID: 1,
			Tags: []string{"music", "fashion"}, Members: models.Int64(850), Official: true},
		models.ContentItem{ID: 401, Kind: models.KindClub, Title: "Indie Dance Collective", AuthorID: 3,
			Tags: []string{"dance", "music"}, Members: models.Int64(6)},
		models.ContentItem{ID: 402, Kind: models.KindClub, Title: "Retro Gamers", AuthorID: 2,
			Tags: []string{"gaming"}, Members: models.Int64(2400)},
	)
	return items
}
