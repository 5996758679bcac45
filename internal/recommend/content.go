// Mantra - Creator and Audience Ranking and Safety Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mantra

package recommend

import (
	"math"
	"strings"

	"github.com/tomtom215/mantra/internal/models"
)

// ContentScorer ranks posts by TF-IDF similarity to an interest profile,
// blended with engagement.
type ContentScorer struct {
	cfg Config
}

// NewContentScorer creates a scorer with the given weights.
func NewContentScorer(cfg Config) ContentScorer {
	return ContentScorer{cfg: cfg}
}

// Score returns one CandidateScore per post in input order:
//
//	score = ContentWeight·cos(interests, post) + EngagementWeight·min((likes·0.5 + comments)/100, EngagementCap)
//
// It fails with ErrNoInterests for an empty profile and ErrEmptyVocabulary
// when no document yields a token; callers fall back to popularity.
func (s ContentScorer) Score(interests []string, posts []models.ContentItem) ([]models.CandidateScore, error) {
	profile := strings.TrimSpace(strings.Join(interests, " "))
	if profile == "" {
		return nil, ErrNoInterests
	}
	if len(posts) == 0 {
		return []models.CandidateScore{}, nil
	}

	docs := make([]string, 0, len(posts)+1)
	docs = append(docs, profile)
	for i := range posts {
		docs = append(docs, posts[i].Document())
	}

	tm, err := Vectorize(docs, s.cfg.MaxFeatures)
	if err != nil {
		return nil, err
	}

	out := make([]models.CandidateScore, len(posts))
	for i := range posts {
		sim := Cosine(tm.Rows[0], tm.Rows[i+1])
		out[i] = models.CandidateScore{
			CandidateID: posts[i].ID,
			Score:       s.cfg.ContentWeight*sim + s.cfg.EngagementWeight*s.engagement(&posts[i]),
			Reason:      contentReason(sim),
		}
	}
	return out, nil
}

func (s ContentScorer) engagement(p *models.ContentItem) float64 {
	raw := (float64(p.Engagement.Likes)*0.5 + float64(p.Engagement.Comments)) / 100
	return math.Min(raw, s.cfg.EngagementCap)
}

func contentReason(sim float64) string {
	if sim > 0 {
		return "matches your interests"
	}
	return "popular with the community"
}
