// Mantra - Creator and Audience Ranking and Safety Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mantra

package recommend

import (
	"errors"
	"math"
	"testing"

	"github.com/tomtom215/mantra/internal/models"
)

func creator(id int64, categories []string, followers, posts, points int64, rate *float64) *models.Actor {
	return &models.Actor{
		ID:         id,
		Role:       models.RoleCreator,
		Engagement: models.ActorEngagement{Followers: followers, Posts: posts},
		Creator:    &models.CreatorProfile{Categories: categories, Points: points, EngagementRate: rate},
	}
}

func TestMatchFactorTables(t *testing.T) {
	t.Parallel()

	fan := &models.Actor{ID: 10, Role: models.RoleFan, Interests: []string{"music", "dance"}}
	ava := creator(1, []string{"music", "fashion"}, 12500, 4200, 6250, models.Float64(0.08))
	mia := creator(3, []string{"music", "dance"}, 900, 650, 450, models.Float64(0.12))
	sponsor := &models.Actor{ID: 20, Role: models.RoleSponsor, Sponsor: &models.SponsorProfile{
		Categories: []string{"music", "tech"}, TargetAudienceSize: 5000, Prestige: models.Float64(80),
	}}
	club := &models.ContentItem{ID: 401, Kind: models.KindClub, Tags: []string{"dance", "music"}, Members: models.Int64(6)}

	tests := []struct {
		name    string
		pairing Pairing
		in      MatchInput
		want    float64
	}{
		// 0.4·0.1 + 0.2·0.625 + 0.2·0.08 + 0.2·1
		{"fan to creator", PairingFanCreator, MatchInput{Source: fan, Target: ava}, 38.1},
		// 0.5·0.3 + 0.2·0.5 + 0
		{"fan to small club", PairingFanClub, MatchInput{Source: fan, Club: club}, 25},
		// 0.3·0.2 + 0.3·0.072 + 0.2·0.1 + 0.2·(30/300)
		{"creator to creator", PairingCreatorCreator, MatchInput{Source: ava, Target: mia, SharedAudience: 30}, 12.16},
		// 0.5·0.2 + 0.3·1 + 0.2·0.8
		{"creator to sponsor", PairingCreatorSponsor, MatchInput{Source: ava, Target: sponsor}, 56},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Match(tt.pairing, tt.in)
			if err != nil {
				t.Fatalf("Match: %v", err)
			}
			if math.Abs(got.Score-tt.want) > 1e-9 {
				t.Errorf("score = %v, want %v", got.Score, tt.want)
			}
			var weights float64
			for _, f := range got.Factors {
				weights += f.Weight
				if f.Value < 0 || f.Value > 1 {
					t.Errorf("factor %s value %v outside [0,1]", f.Name, f.Value)
				}
			}
			if math.Abs(weights-1) > 1e-9 {
				t.Errorf("factor weights sum to %v, want 1", weights)
			}
		})
	}
}

func TestMatchMissingAttributes(t *testing.T) {
	t.Parallel()

	bare := &models.Actor{ID: 1, Role: models.RoleCreator}
	sponsor := &models.Actor{ID: 2, Role: models.RoleSponsor}
	got, err := Match(PairingCreatorSponsor, MatchInput{Source: bare, Target: sponsor})
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	if got.Score != 0 {
		t.Errorf("score with no profiles = %v, want 0", got.Score)
	}

	club := &models.ContentItem{ID: 1, Kind: models.KindClub}
	got, err = Match(PairingFanClub, MatchInput{Source: bare, Club: club})
	if err != nil || got.Score != 0 {
		t.Errorf("club without members = %v, %v; want 0", got.Score, err)
	}
}

func TestMatchErrors(t *testing.T) {
	t.Parallel()

	fan := &models.Actor{ID: 1}
	tests := []struct {
		name    string
		pairing Pairing
		in      MatchInput
		want    error
	}{
		{"no source", PairingFanCreator, MatchInput{}, ErrInvalidRequest},
		{"no target", PairingFanCreator, MatchInput{Source: fan}, ErrInvalidRequest},
		{"no club", PairingFanClub, MatchInput{Source: fan}, ErrInvalidRequest},
		{"unknown pairing", Pairing(99), MatchInput{Source: fan, Target: fan}, ErrUnknownPairing},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Match(tt.pairing, tt.in); !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestPairingString(t *testing.T) {
	t.Parallel()

	if got := PairingCreatorSponsor.String(); got == "unknown" || got == "" {
		t.Errorf("String() = %q", got)
	}
	if got := Pairing(0).String(); got != "unknown" {
		t.Errorf("Pairing(0).String() = %q, want unknown", got)
	}
}
