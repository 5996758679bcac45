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

// Pairing selects a factor table for the multi-factor matcher.
type Pairing int

const (
	// PairingFanCreator scores a creator for a fan.
	PairingFanCreator Pairing = iota + 1
	// PairingFanClub scores a club for a fan.
	PairingFanClub
	// PairingCreatorCreator scores a collaboration partner for a creator.
	PairingCreatorCreator
	// PairingCreatorSponsor scores a sponsor for a creator.
	PairingCreatorSponsor
)

// String returns the pairing name.
func (p Pairing) String() string {
	switch p {
	case PairingFanCreator:
		return "fan_creator"
	case PairingFanClub:
		return "fan_club"
	case PairingCreatorCreator:
		return "creator_creator"
	case PairingCreatorSponsor:
		return "creator_sponsor"
	default:
		return "unknown"
	}
}

// Factor is one weighted, [0,1]-clamped term of a match score.
type Factor struct {
	Name   string  `json:"name"`
	Weight float64 `json:"weight"`
	Value  float64 `json:"value"`
}

// MatchInput carries the subjects of a match. Source is always required;
// Target is required for actor pairings and Club for PairingFanClub.
type MatchInput struct {
	Source *models.Actor
	Target *models.Actor
	Club   *models.ContentItem

	// SharedAudience is the number of followers both creators have.
	SharedAudience int
}

// MatchResult is a 0-100 score with its factor breakdown.
type MatchResult struct {
	Score   float64  `json:"score"`
	Factors []Factor `json:"factors"`
}

// Match evaluates the factor table of a pairing. Missing attributes
// contribute 0.
func Match(p Pairing, in MatchInput) (MatchResult, error) {
	if in.Source == nil {
		return MatchResult{}, fmt.Errorf("%w: %s match without source", ErrInvalidRequest, p)
	}

	var factors []Factor
	switch p {
	case PairingFanCreator:
		if in.Target == nil {
			return MatchResult{}, fmt.Errorf("%w: %s match without target", ErrInvalidRequest, p)
		}
		factors = fanCreatorFactors(in.Source, in.Target)
	case PairingFanClub:
		if in.Club == nil {
			return MatchResult{}, fmt.Errorf("%w: %s match without club", ErrInvalidRequest, p)
		}
		factors = fanClubFactors(in.Source, in.Club)
	case PairingCreatorCreator:
		if in.Target == nil {
			return MatchResult{}, fmt.Errorf("%w: %s match without target", ErrInvalidRequest, p)
		}
		factors = creatorCreatorFactors(in.Source, in.Target, in.SharedAudience)
	case PairingCreatorSponsor:
		if in.Target == nil {
			return MatchResult{}, fmt.Errorf("%w: %s match without target", ErrInvalidRequest, p)
		}
		factors = creatorSponsorFactors(in.Source, in.Target)
	default:
		return MatchResult{}, fmt.Errorf("%w: %d", ErrUnknownPairing, int(p))
	}

	var total float64
	for i := range factors {
		factors[i].Value = clamp01(factors[i].Value)
		total += factors[i].Weight * factors[i].Value
	}
	return MatchResult{Score: round2(total * 100), Factors: factors}, nil
}

func fanCreatorFactors(fan, creator *models.Actor) []Factor {
	var points, rate float64
	if creator.Creator != nil {
		points = float64(creator.Creator.Points)
		if creator.Creator.EngagementRate != nil {
			rate = *creator.Creator.EngagementRate
		}
	}
	return []Factor{
		{"interest_overlap", 0.4, float64(Overlap(fan.Interests, creator.Categories())) * 10 / 100},
		{"popularity", 0.2, points / 10000},
		{"engagement", 0.2, rate},
		{"activity", 0.2, float64(creator.Engagement.Posts) / 1000},
	}
}

func fanClubFactors(fan *models.Actor, club *models.ContentItem) []Factor {
	var sizeFit float64
	if club.Members != nil {
		switch m := *club.Members; {
		case m < 10:
			sizeFit = 0.5
		case m > 1000:
			sizeFit = 0.7
		default:
			sizeFit = 1
		}
	}
	var official float64
	if club.Official {
		official = 0.5
	}
	return []Factor{
		{"interest_overlap", 0.5, float64(Overlap(fan.Interests, club.Tags)) * 15 / 100},
		{"size_fit", 0.2, sizeFit},
		{"official", 0.3, official},
	}
}

func creatorCreatorFactors(a, b *models.Actor, shared int) []Factor {
	fa, fb := float64(a.Engagement.Followers), float64(b.Engagement.Followers)
	var ratio float64
	if hi := math.Max(fa, fb); hi > 0 {
		ratio = math.Min(fa, fb) / hi
	}
	return []Factor{
		{"category_overlap", 0.3, float64(Overlap(a.Categories(), b.Categories())) * 20 / 100},
		{"follower_ratio", 0.3, ratio},
		{"engagement", 0.2, (engagementRate(a) + engagementRate(b)) / 2},
		{"shared_audience", 0.2, float64(shared) / 300},
	}
}

func creatorSponsorFactors(creator, sponsor *models.Actor) []Factor {
	var sizeFit, prestige float64
	if sponsor.Sponsor != nil {
		if t := sponsor.Sponsor.TargetAudienceSize; t > 0 {
			sizeFit = float64(creator.Engagement.Followers) / float64(t)
		}
		if sponsor.Sponsor.Prestige != nil {
			prestige = *sponsor.Sponsor.Prestige / 100
		}
	}
	return []Factor{
		{"category_overlap", 0.5, float64(Overlap(creator.Categories(), sponsor.Categories())) * 20 / 100},
		{"audience_fit", 0.3, sizeFit},
		{"prestige", 0.2, prestige},
	}
}

func engagementRate(a *models.Actor) float64 {
	if a.Creator == nil || a.Creator.EngagementRate == nil {
		return 0
	}
	return *a.Creator.EngagementRate
}
