// Mantra - Creator and Audience Ranking and Safety Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mantra

package engagement

import (
	"math"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/tomtom215/mantra/internal/models"
)

var (
	saturdayEvening = time.Date(2026, 10, 17, 20, 0, 0, 0, time.UTC)
	tuesdayNight    = time.Date(2026, 10, 13, 3, 0, 0, 0, time.UTC)
)

func TestPredictBestCase(t *testing.T) {
	t.Parallel()

	d := Draft{
		Text:      strings.Repeat("a", 146) + " #a #b #c #d",
		CreatedAt: saturdayEvening,
		HasMedia:  true,
	}
	author := AuthorStats{Followers: 12000, RecentPosts: 5, AvgLikes: 400, AvgComments: 60, AvgShares: 10}

	got := Predict(d, author)
	if got.Score != 100 {
		t.Errorf("Score = %v, want 100", got.Score)
	}
	if got.Rating != "excellent" {
		t.Errorf("Rating = %q, want excellent", got.Rating)
	}
	if len(got.Recommendations) != 0 {
		t.Errorf("Recommendations = %+v, want none", got.Recommendations)
	}
	if got.Estimate.Likes != 800 {
		t.Errorf("Estimate.Likes = %d, want 800", got.Estimate.Likes)
	}
}

func TestPredictWeakDraft(t *testing.T) {
	t.Parallel()

	got := Predict(Draft{Text: "hi", CreatedAt: tuesdayNight}, AuthorStats{Followers: 10})

	if math.Abs(got.Score-40.5) > 1e-9 {
		t.Errorf("Score = %v, want 40.5", got.Score)
	}
	if got.Rating != "low" {
		t.Errorf("Rating = %q, want low", got.Rating)
	}
	if got.Breakdown.AuthorEngagement != 0.5 {
		t.Errorf("AuthorEngagement = %v, want 0.5 without history", got.Breakdown.AuthorEngagement)
	}

	var kinds []string
	for _, a := range got.Recommendations {
		kinds = append(kinds, a.Type+"/"+a.Priority)
	}
	want := []string{"timing/high", "content/high", "content/high", "content/medium"}
	if !reflect.DeepEqual(kinds, want) {
		t.Errorf("advice = %v, want %v", kinds, want)
	}
	if got.Estimate.Likes != 8 || got.Estimate.Comments != 1 {
		t.Errorf("Estimate = %+v, want default baselines scaled by 0.81", got.Estimate)
	}
}

func TestPredictScoreBounds(t *testing.T) {
	t.Parallel()

	for h := 0; h < 24; h++ {
		for _, media := range []bool{true, false} {
			at := time.Date(2026, 10, 12, h, 0, 0, 0, time.UTC)
			got := Predict(Draft{Text: "#x", CreatedAt: at, HasMedia: media}, AuthorStats{})
			if got.Score < 0 || got.Score > 100 {
				t.Fatalf("Score at %02d:00 = %v, out of range", h, got.Score)
			}
		}
	}
}

func TestRating(t *testing.T) {
	t.Parallel()

	tests := []struct {
		score float64
		want  string
	}{
		{100, "excellent"}, {80, "excellent"}, {79.99, "good"}, {65, "good"},
		{50, "moderate"}, {35, "low"}, {34.99, "poor"}, {0, "poor"},
	}
	for _, tt := range tests {
		if got := Rating(tt.score); got != tt.want {
			t.Errorf("Rating(%v) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestFactorTables(t *testing.T) {
	t.Parallel()

	t.Run("length", func(t *testing.T) {
		tests := []struct {
			n    int
			want float64
		}{{0, 0.4}, {49, 0.4}, {50, 0.7}, {100, 1}, {300, 1}, {301, 0.7}, {500, 0.7}, {501, 0.5}}
		for _, tt := range tests {
			if got := lengthScore(tt.n); got != tt.want {
				t.Errorf("lengthScore(%d) = %v, want %v", tt.n, got, tt.want)
			}
		}
	})

	t.Run("hashtags", func(t *testing.T) {
		tests := []struct {
			n    int
			want float64
		}{{0, 0.3}, {1, 0.7}, {3, 1}, {5, 1}, {6, 0.7}, {8, 0.7}, {9, 0.4}}
		for _, tt := range tests {
			if got := hashtagScore(tt.n); got != tt.want {
				t.Errorf("hashtagScore(%d) = %v, want %v", tt.n, got, tt.want)
			}
		}
	})

	t.Run("followers", func(t *testing.T) {
		tests := []struct {
			n    int64
			want float64
		}{{0, 0.3}, {100, 0.5}, {1000, 0.7}, {5000, 0.9}, {10000, 1}}
		for _, tt := range tests {
			if got := followersScore(tt.n); got != tt.want {
				t.Errorf("followersScore(%d) = %v, want %v", tt.n, got, tt.want)
			}
		}
	})

	t.Run("time of day", func(t *testing.T) {
		tests := []struct {
			hour int
			want float64
		}{{3, 0.4}, {7, 1}, {10, 0.7}, {13, 1}, {16, 0.7}, {21, 1}, {23, 0.4}}
		for _, tt := range tests {
			if got := timeOfDayScore(tt.hour); got != tt.want {
				t.Errorf("timeOfDayScore(%d) = %v, want %v", tt.hour, got, tt.want)
			}
		}
	})
}

func TestStatsFromPosts(t *testing.T) {
	t.Parallel()

	now := saturdayEvening
	author := &models.Actor{ID: 1, Engagement: models.ActorEngagement{Followers: 900}}
	posts := []models.ContentItem{
		{ID: 1, Kind: models.KindPost, AuthorID: 1, CreatedAt: now.Add(-time.Hour),
			Engagement: models.ContentEngagement{Likes: 100, Comments: 10, Shares: 4}},
		{ID: 2, Kind: models.KindPost, AuthorID: 1, CreatedAt: now.Add(-48 * time.Hour),
			Engagement: models.ContentEngagement{Likes: 50, Comments: 20}},
		{ID: 3, Kind: models.KindPost, AuthorID: 1, CreatedAt: now.Add(-40 * 24 * time.Hour),
			Engagement: models.ContentEngagement{Likes: 9999}},
		{ID: 4, Kind: models.KindPost, AuthorID: 2, CreatedAt: now,
			Engagement: models.ContentEngagement{Likes: 9999}},
		{ID: 5, Kind: models.KindEvent, AuthorID: 1, CreatedAt: now},
	}

	got := StatsFromPosts(author, posts, now)
	want := AuthorStats{Followers: 900, RecentPosts: 2, AvgLikes: 75, AvgComments: 15, AvgShares: 2}
	if got != want {
		t.Errorf("StatsFromPosts = %+v, want %+v", got, want)
	}
}

func TestHashtagEffectiveness(t *testing.T) {
	t.Parallel()

	tests := []struct {
		n    int
		want float64
	}{{0, 0.6}, {2, 0.6}, {3, 1}, {5, 1}, {6, 0.8}, {10, 0.8}, {11, 0.4}}
	for _, tt := range tests {
		got := HashtagEffectiveness(make([]string, tt.n))
		if got.Effectiveness != tt.want || got.Total != tt.n {
			t.Errorf("HashtagEffectiveness(%d) = %+v, want %v", tt.n, got, tt.want)
		}
		if len(got.Recommendations) != 1 {
			t.Errorf("HashtagEffectiveness(%d) recommendations = %v", tt.n, got.Recommendations)
		}
	}
}

func TestBestPostingTimes(t *testing.T) {
	t.Parallel()

	at := func(h int) time.Time { return time.Date(2026, 10, 12, h, 30, 0, 0, time.UTC) }
	posts := []models.ContentItem{
		{CreatedAt: at(8), Engagement: models.ContentEngagement{Likes: 300}},
		{CreatedAt: at(8), Engagement: models.ContentEngagement{Likes: 100}},
		{CreatedAt: at(13), Engagement: models.ContentEngagement{Likes: 500, Comments: 100, Shares: 100}},
		{CreatedAt: at(20), Engagement: models.ContentEngagement{Likes: 200}},
		{CreatedAt: at(2), Engagement: models.ContentEngagement{Likes: 200}},
	}

	got := BestPostingTimes(posts)
	want := []PostingTime{
		{Time: "13:00", Day: "weekday", Score: 100},
		{Time: "02:00", Day: "weekend", Score: 20},
		{Time: "08:00", Day: "weekend", Score: 20},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("BestPostingTimes = %+v, want %+v", got, want)
	}

	defaults := BestPostingTimes(nil)
	if !reflect.DeepEqual(defaults, DefaultPostingTimes) {
		t.Errorf("defaults = %+v", defaults)
	}
	defaults[0].Score = 0
	if DefaultPostingTimes[0].Score != 85 {
		t.Error("BestPostingTimes returned the shared default slice")
	}
}
