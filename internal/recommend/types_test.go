// Mantra - Creator and Audience Ranking and Safety Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mantra

package recommend

import (
	"errors"
	"testing"

	"github.com/tomtom215/mantra/internal/models"
)

func TestParseType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    RecommendationType
		wantErr bool
	}{
		{"creators", TypeCreators, false},
		{"celebrities", TypeCreators, false},
		{" Posts ", TypePosts, false},
		{"event", TypeEvents, false},
		{"merchandise", TypeMerchandise, false},
		{"fans", TypeFans, false},
		{"clubs", TypeClubs, false},
		{"items", TypeItems, false},
		{"songs", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseType(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownType) {
					t.Errorf("ParseType(%q) error = %v, want ErrUnknownType", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseType(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseType(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestTypeStringRoundTrip(t *testing.T) {
	t.Parallel()

	for _, typ := range AllTypes {
		got, err := ParseType(typ.String())
		if err != nil || got != typ {
			t.Errorf("ParseType(%q) = %v, %v", typ.String(), got, err)
		}
	}
	if got := RecommendationType(99).String(); got != "unknown" {
		t.Errorf("String() = %q, want unknown", got)
	}
}

func TestAppliesTo(t *testing.T) {
	t.Parallel()

	tests := []struct {
		role models.Role
		typ  RecommendationType
		want bool
	}{
		{models.RoleFan, TypeCreators, true},
		{models.RoleFan, TypeClubs, true},
		{models.RoleCreator, TypeFans, true},
		{models.RoleCreator, TypePosts, true},
		{models.RoleCreator, TypeEvents, false},
		{models.RoleSponsor, TypeCreators, true},
		{models.RoleSponsor, TypePosts, false},
		{models.Role("admin"), TypeCreators, false},
	}
	for _, tt := range tests {
		if got := tt.typ.AppliesTo(tt.role); got != tt.want {
			t.Errorf("%v.AppliesTo(%s) = %v, want %v", tt.typ, tt.role, got, tt.want)
		}
	}
}

func TestSection(t *testing.T) {
	t.Parallel()

	if got := TypeFans.Section(models.RoleFan); got != "similar_fans" {
		t.Errorf("fan section = %q", got)
	}
	if got := TypeFans.Section(models.RoleCreator); got != "potential_fans" {
		t.Errorf("creator section = %q", got)
	}
	if got := TypeClubs.Section(models.RoleFan); got != "clubs" {
		t.Errorf("clubs section = %q", got)
	}
}
