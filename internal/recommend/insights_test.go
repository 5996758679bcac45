// Mantra - Creator and Audience Ranking and Safety Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mantra

package recommend

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/tomtom215/mantra/internal/models"
)

func TestInfluence(t *testing.T) {
	t.Parallel()

	posts := func(n int, likes, comments int64) []models.ContentItem {
		out := make([]models.ContentItem, n)
		for i := range out {
			out[i].Engagement = models.ContentEngagement{Likes: likes, Comments: comments}
		}
		return out
	}
	c := &models.Actor{ID: 1, Role: models.RoleCreator}

	tests := []struct {
		name      string
		followers int64
		posts     []models.ContentItem
		want      float64
	}{
		{"nothing", 0, nil, 0},
		{"top tiers", 20000, posts(101, 900, 200), 100},
		{"mid tiers", 3000, posts(20, 400, 150), 50},
		{"boundaries are exclusive", 100, posts(10, 100, 0), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Influence(c, tt.followers, tt.posts)
			if err != nil {
				t.Fatalf("Influence: %v", err)
			}
			if got.Score != tt.want {
				t.Errorf("Score = %v, want %v", got.Score, tt.want)
			}
			if got.Posts != len(tt.posts) {
				t.Errorf("Posts = %d, want %d", got.Posts, len(tt.posts))
			}
		})
	}

	if _, err := Influence(&models.Actor{Role: models.RoleFan}, 10, nil); !errors.Is(err, ErrInvalidRequest) {
		t.Errorf("fan influence error = %v, want ErrInvalidRequest", err)
	}
}

func TestAffinity(t *testing.T) {
	t.Parallel()

	fan := &models.Actor{ID: 10, Interests: []string{"music", "fashion", "tech"}, Follows: []int64{1}}
	c := creator(1, []string{"music", "fashion"}, 0, 0, 0, nil)

	got, err := Affinity(AffinityInput{Fan: fan, Creator: c, Likes: 4, Interactions: 2})
	if err != nil {
		t.Fatalf("Affinity: %v", err)
	}
	// 30 + 8 + 6 + 10
	if got.Score != 54 {
		t.Errorf("Score = %v, want 54", got.Score)
	}
	if !got.Follows {
		t.Error("Follows = false, want true")
	}
	if !reflect.DeepEqual(got.SharedInterests, []string{"music", "fashion"}) {
		t.Errorf("SharedInterests = %v", got.SharedInterests)
	}

	capped, _ := Affinity(AffinityInput{Fan: fan, Creator: c, Likes: 100, Interactions: 100})
	if capped.Score != 100 {
		t.Errorf("capped Score = %v, want 100", capped.Score)
	}

	if _, err := Affinity(AffinityInput{Fan: fan}); !errors.Is(err, ErrInvalidRequest) {
		t.Errorf("missing creator error = %v, want ErrInvalidRequest", err)
	}
}

func TestCollaboration(t *testing.T) {
	t.Parallel()

	a := creator(1, []string{"music", "fashion"}, 1000, 0, 0, models.Float64(0.1))
	b := creator(2, []string{"music", "dance"}, 500, 0, 0, models.Float64(0.3))

	got := Collaboration(a, b, 120)
	// 20 + 15 + 4 + 12
	if math.Abs(got.Score-51) > 1e-9 {
		t.Errorf("Score = %v, want 51", got.Score)
	}
	if got.Recommendation != "Good collaboration opportunity" {
		t.Errorf("Recommendation = %q", got.Recommendation)
	}
	if !reflect.DeepEqual(got.CategoryOverlap, []string{"music"}) {
		t.Errorf("CategoryOverlap = %v", got.CategoryOverlap)
	}

	noRate := creator(3, nil, 0, 0, 0, nil)
	low := Collaboration(a, noRate, 0)
	if low.Score != 0 || low.Recommendation != "Low collaboration potential" || low.CategoryOverlap == nil {
		t.Errorf("no-data collaboration = %+v", low)
	}

	if got := Collaboration(a, &models.Actor{ID: 9}, 0); got.Recommendation != "Insufficient data" {
		t.Errorf("non-creator = %+v", got)
	}
}
