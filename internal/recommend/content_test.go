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

func TestVectorize(t *testing.T) {
	t.Parallel()

	tm, err := Vectorize([]string{"Music music dance", "dance tech", "a"}, 100)
	if err != nil {
		t.Fatalf("Vectorize: %v", err)
	}
	if want := []string{"dance", "music", "tech"}; !reflect.DeepEqual(tm.Vocabulary, want) {
		t.Fatalf("Vocabulary = %v, want %v", tm.Vocabulary, want)
	}
	if len(tm.Rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(tm.Rows))
	}

	for i, row := range tm.Rows[:2] {
		var norm float64
		for _, v := range row {
			norm += v * v
		}
		if math.Abs(norm-1) > 1e-9 {
			t.Errorf("row %d squared norm = %v, want 1", i, norm)
		}
	}
	for _, v := range tm.Rows[2] {
		if v != 0 {
			t.Errorf("single-letter document has weight %v, want all zero", v)
		}
	}

	// idf(music) = ln(4/2)+1, idf(dance) = ln(4/3)+1; row 0 has tf 2 and 1.
	music := 2 * (math.Log(4.0/2) + 1)
	dance := math.Log(4.0/3) + 1
	norm := math.Hypot(music, dance)
	if got := tm.Rows[0][1]; math.Abs(got-music/norm) > 1e-9 {
		t.Errorf("music weight = %v, want %v", got, music/norm)
	}
}

func TestVectorizeMaxFeatures(t *testing.T) {
	t.Parallel()

	tm, err := Vectorize([]string{"zeta zeta alpha beta", "beta gamma"}, 2)
	if err != nil {
		t.Fatalf("Vectorize: %v", err)
	}
	if want := []string{"beta", "zeta"}; !reflect.DeepEqual(tm.Vocabulary, want) {
		t.Errorf("Vocabulary = %v, want %v", tm.Vocabulary, want)
	}
}

func TestVectorizeEmpty(t *testing.T) {
	t.Parallel()

	for _, docs := range [][]string{nil, {""}, {"a b c", "!!"}} {
		if _, err := Vectorize(docs, 100); !errors.Is(err, ErrEmptyVocabulary) {
			t.Errorf("Vectorize(%q) error = %v, want ErrEmptyVocabulary", docs, err)
		}
	}
}

func TestVectorizeStateless(t *testing.T) {
	t.Parallel()

	a, _ := Vectorize([]string{"music fashion"}, 100)
	_, _ = Vectorize([]string{"gaming tech"}, 100)
	b, _ := Vectorize([]string{"music fashion"}, 100)
	if !reflect.DeepEqual(a, b) {
		t.Error("Vectorize output depends on earlier calls")
	}
}

func TestContentScorer(t *testing.T) {
	t.Parallel()

	posts := []models.ContentItem{
		{ID: 1, Text: "gaming marathon tonight", Engagement: models.ContentEngagement{Likes: 10}},
		{ID: 2, Text: "new music video", Tags: []string{"music"}, Engagement: models.ContentEngagement{Likes: 10}},
		{ID: 3, Text: "cooking at home", Engagement: models.ContentEngagement{Likes: 1000, Comments: 500}},
	}
	s := NewContentScorer(DefaultConfig())

	got, err := s.Score([]string{"music"}, posts)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if ids := candidateIDs(got); !reflect.DeepEqual(ids, []int64{1, 2, 3}) {
		t.Fatalf("Score keeps input order, got %v", ids)
	}
	if got[1].Score <= got[0].Score {
		t.Errorf("matching post %v should beat non-matching %v", got[1].Score, got[0].Score)
	}
	if math.Abs(got[2].Score-0.3) > 1e-9 {
		t.Errorf("engagement-only score = %v, want capped 0.3", got[2].Score)
	}
	if got[1].Reason != "matches your interests" {
		t.Errorf("reason = %q", got[1].Reason)
	}
}

func TestContentScorerErrors(t *testing.T) {
	t.Parallel()

	s := NewContentScorer(DefaultConfig())
	if _, err := s.Score(nil, []models.ContentItem{{ID: 1, Text: "x y"}}); !errors.Is(err, ErrNoInterests) {
		t.Errorf("empty interests error = %v, want ErrNoInterests", err)
	}
	if _, err := s.Score([]string{"a"}, []models.ContentItem{{ID: 1, Text: "b"}}); !errors.Is(err, ErrEmptyVocabulary) {
		t.Errorf("tokenless corpus error = %v, want ErrEmptyVocabulary", err)
	}
	got, err := s.Score([]string{"music"}, nil)
	if err != nil || len(got) != 0 {
		t.Errorf("no posts = %v, %v; want empty", got, err)
	}
}
