// Mantra - Creator and Audience Ranking and Safety Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mantra

package recommend

import (
	"math"
	"sort"

	"github.com/tomtom215/mantra/internal/models"
)

// SocialGraphScorer scores actors by the overlap of their follow sets.
type SocialGraphScorer struct {
	cfg Config
}

// NewSocialGraphScorer creates a scorer with the given thresholds.
func NewSocialGraphScorer(cfg Config) SocialGraphScorer {
	return SocialGraphScorer{cfg: cfg}
}

// MutualBonus returns min(|a∩b|·MutualBonus, MutualBonusCap).
func (s SocialGraphScorer) MutualBonus(a, b []int64) float64 {
	return math.Min(float64(Overlap(a, b))*s.cfg.MutualBonus, s.cfg.MutualBonusCap)
}

// peer is an actor whose follow set resembles the target's.
type peer struct {
	actor      *models.Actor
	similarity float64
}

// similarPeers returns up to SocialNeighbors peers with follow-set Jaccard
// above SocialMinSimilarity, most similar first, ties by ascending ID.
func (s SocialGraphScorer) similarPeers(actor *models.Actor, peers []models.Actor) []peer {
	if len(actor.Follows) == 0 {
		return nil
	}
	var out []peer
	for i := range peers {
		p := &peers[i]
		if p.ID == actor.ID || len(p.Follows) == 0 {
			continue
		}
		if sim := Jaccard(actor.Follows, p.Follows); sim > s.cfg.SocialMinSimilarity {
			out = append(out, peer{actor: p, similarity: sim})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].similarity != out[j].similarity {
			return out[i].similarity > out[j].similarity
		}
		return out[i].actor.ID < out[j].actor.ID
	})
	if len(out) > s.cfg.SocialNeighbors {
		out = out[:s.cfg.SocialNeighbors]
	}
	return out
}

// Collaborative recommends creators followed by actors with similar follow
// sets. Each similar peer casts one vote per creator it follows that the
// target does not; the score is the vote count. isCreator filters the
// candidate IDs.
func (s SocialGraphScorer) Collaborative(actor *models.Actor, peers []models.Actor, isCreator func(int64) bool) []models.CandidateScore {
	similar := s.similarPeers(actor, peers)
	if len(similar) == 0 {
		return []models.CandidateScore{}
	}

	following := toSet(actor.Follows)
	votes := make(map[int64]float64)
	var order []int64
	for _, p := range similar {
		for _, id := range p.actor.Follows {
			if _, ok := following[id]; ok || id == actor.ID || !isCreator(id) {
				continue
			}
			if _, seen := votes[id]; !seen {
				order = append(order, id)
			}
			votes[id]++
		}
	}

	out := make([]models.CandidateScore, 0, len(order))
	for _, id := range order {
		out = append(out, models.CandidateScore{
			CandidateID: id,
			Score:       votes[id],
			Reason:      "followed by people with similar taste",
		})
	}
	return rank(out, 0)
}
