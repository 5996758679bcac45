// Mantra - Creator and Audience Ranking and Safety Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mantra

package recommend

import (
	"reflect"
	"testing"

	"github.com/tomtom215/mantra/internal/models"
)

func TestMutualBonus(t *testing.T) {
	t.Parallel()

	s := NewSocialGraphScorer(DefaultConfig())
	tests := []struct {
		name string
		a, b []int64
		want float64
	}{
		{"none", []int64{1}, []int64{2}, 0},
		{"two shared", []int64{1, 2, 3}, []int64{2, 3}, 10},
		{"capped", seq(1, 20), seq(1, 20), 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.MutualBonus(tt.a, tt.b); got != tt.want {
				t.Errorf("MutualBonus = %v, want %v", got, tt.want)
			}
		})
	}
}

func seq(from, to int64) []int64 {
	out := make([]int64, 0, to-from+1)
	for i := from; i <= to; i++ {
		out = append(out, i)
	}
	return out
}

func TestCollaborative(t *testing.T) {
	t.Parallel()

	creators := map[int64]bool{1: true, 2: true, 3: true, 4: true}
	isCreator := func(id int64) bool { return creators[id] }
	me := &models.Actor{ID: 10, Follows: []int64{1, 3}}
	peers := []models.Actor{
		*me,
		{ID: 11, Follows: []int64{1, 3, 2}},
		{ID: 12, Follows: []int64{1, 2, 4}},
		{ID: 13, Follows: []int64{4}},
		{ID: 14, Follows: []int64{3, 2, 99}},
	}

	got := NewSocialGraphScorer(DefaultConfig()).Collaborative(me, peers, isCreator)
	// Peers 11, 12 and 14 pass the similarity floor; 13 shares nothing.
	if ids := candidateIDs(got); !reflect.DeepEqual(ids, []int64{2, 4}) {
		t.Fatalf("ids = %v, want [2 4]", ids)
	}
	if got[0].Score != 3 || got[1].Score != 1 {
		t.Errorf("votes = %v/%v, want 3/1", got[0].Score, got[1].Score)
	}
}

func TestCollaborativeNoFollows(t *testing.T) {
	t.Parallel()

	me := &models.Actor{ID: 10}
	got := NewSocialGraphScorer(DefaultConfig()).Collaborative(me, []models.Actor{{ID: 11, Follows: []int64{1}}}, func(int64) bool { return true })
	if len(got) != 0 {
		t.Errorf("got %v, want empty", got)
	}
}
