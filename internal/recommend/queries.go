// Mantra - Creator and Audience Ranking and Safety Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mantra

package recommend

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tomtom215/mantra/internal/models"
)

// SearchActors is the search scope for actor names.
const SearchActors = "actors"

// TrendingPosts ranks posts created inside window. A zero window or
// limit uses the trending defaults.
func (o *Orchestrator) TrendingPosts(ctx context.Context, window time.Duration, limit int) ([]models.TrendingScore, error) {
	if window <= 0 {
		window = o.trending.PostWindow
	}
	if limit <= 0 {
		limit = o.trending.Limit
	}
	posts, err := o.data.Content(ctx, models.KindPost)
	if err != nil {
		return nil, fmt.Errorf("load posts: %w", err)
	}
	return o.trend.Rank(posts, o.now(), window, limit), nil
}

// TrendingHashtags counts hashtags in posts created inside window.
func (o *Orchestrator) TrendingHashtags(ctx context.Context, window time.Duration, limit int) ([]models.HashtagCount, error) {
	if window <= 0 {
		window = o.trending.HashtagWindow
	}
	if limit <= 0 {
		limit = o.trending.Limit
	}
	posts, err := o.data.Content(ctx, models.KindPost)
	if err != nil {
		return nil, fmt.Errorf("load posts: %w", err)
	}
	return o.trend.Hashtags(posts, o.now(), window, limit), nil
}

// SimilarActors returns the actors whose interaction rows are closest to
// the actor's.
func (o *Orchestrator) SimilarActors(ctx context.Context, actorID int64, limit int) ([]models.CandidateScore, error) {
	limit, err := o.normalizeLimit(limit)
	if err != nil {
		return nil, err
	}
	if _, err := o.loadActor(ctx, actorID); err != nil {
		return nil, err
	}
	model, err := o.fitNeighbors(ctx)
	if err != nil {
		return nil, err
	}
	out, err := model.FindSimilarActors(actorID, limit)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Score = round2(out[i].Score)
	}
	return out, nil
}

// PredictScore predicts the actor's interaction weight for item.
func (o *Orchestrator) PredictScore(ctx context.Context, actorID, itemID int64) (float64, error) {
	if _, err := o.loadActor(ctx, actorID); err != nil {
		return 0, err
	}
	model, err := o.fitNeighbors(ctx)
	if err != nil {
		return 0, err
	}
	return model.PredictScore(actorID, itemID)
}

// SponsorMatch is one creator→sponsor match.
type SponsorMatch struct {
	SponsorID int64    `json:"sponsor_id"`
	Name      string   `json:"name"`
	Score     float64  `json:"score"`
	Factors   []Factor `json:"factors"`
}

// SponsorMatches scores sponsors for a creator, best first. When sponsors
// is empty every stored sponsor is considered.
func (o *Orchestrator) SponsorMatches(ctx context.Context, creatorID int64, sponsors []models.Actor, limit int) ([]SponsorMatch, error) {
	limit, err := o.normalizeLimit(limit)
	if err != nil {
		return nil, err
	}
	creator, err := o.loadCreator(ctx, creatorID)
	if err != nil {
		return nil, err
	}
	if len(sponsors) == 0 {
		if sponsors, err = o.data.Actors(ctx, models.RoleSponsor); err != nil {
			return nil, fmt.Errorf("load sponsors: %w", err)
		}
	}

	byID := make(map[int64]SponsorMatch, len(sponsors))
	scores := make([]models.CandidateScore, 0, len(sponsors))
	for i := range sponsors {
		s := &sponsors[i]
		m, err := Match(PairingCreatorSponsor, MatchInput{Source: creator, Target: s})
		if err != nil {
			return nil, err
		}
		if _, dup := byID[s.ID]; !dup {
			byID[s.ID] = SponsorMatch{SponsorID: s.ID, Name: s.Name, Score: m.Score, Factors: m.Factors}
		}
		scores = append(scores, models.CandidateScore{CandidateID: s.ID, Score: m.Score})
	}

	ranked := rank(scores, limit)
	out := make([]SponsorMatch, len(ranked))
	for i, r := range ranked {
		out[i] = byID[r.CandidateID]
	}
	return out, nil
}

// Collaboration suggests whether two creators should work together.
func (o *Orchestrator) Collaboration(ctx context.Context, a, b int64) (CollaborationReport, error) {
	if a == b {
		return CollaborationReport{}, fmt.Errorf("%w: a creator cannot collaborate with itself", ErrInvalidRequest)
	}
	ca, err := o.loadCreator(ctx, a)
	if err != nil {
		return CollaborationReport{}, err
	}
	cb, err := o.loadCreator(ctx, b)
	if err != nil {
		return CollaborationReport{}, err
	}

	fa, err := o.data.Followers(ctx, a)
	if err != nil {
		return CollaborationReport{}, fmt.Errorf("load followers: %w", err)
	}
	fb, err := o.data.Followers(ctx, b)
	if err != nil {
		return CollaborationReport{}, fmt.Errorf("load followers: %w", err)
	}
	return Collaboration(ca, cb, Overlap(fa, fb)), nil
}

// Influence scores a creator's reach.
func (o *Orchestrator) Influence(ctx context.Context, creatorID int64) (InfluenceReport, error) {
	creator, err := o.loadActor(ctx, creatorID)
	if err != nil {
		return InfluenceReport{}, err
	}
	posts, err := o.authoredPosts(ctx, creatorID)
	if err != nil {
		return InfluenceReport{}, err
	}
	return Influence(creator, creator.Engagement.Followers, posts)
}

// Affinity scores how close a fan is to a creator from follows, liked
// posts and booked or bought content.
func (o *Orchestrator) Affinity(ctx context.Context, fanID, creatorID int64) (AffinityReport, error) {
	fan, err := o.loadActor(ctx, fanID)
	if err != nil {
		return AffinityReport{}, err
	}
	creator, err := o.loadCreator(ctx, creatorID)
	if err != nil {
		return AffinityReport{}, err
	}

	in := AffinityInput{Fan: fan, Creator: creator}
	for _, kind := range []models.ContentKind{models.KindPost, models.KindEvent, models.KindMerchandise} {
		n, err := o.possessedFrom(ctx, fanID, creatorID, kind)
		if err != nil {
			return AffinityReport{}, err
		}
		if kind == models.KindPost {
			in.Likes = n
		} else {
			in.Interactions += n
		}
	}
	return Affinity(in)
}

// Search ranks actor names (scope "actors" or empty) or content of one
// kind against query.
func (o *Orchestrator) Search(ctx context.Context, query, scope string, limit int) ([]models.CandidateScore, error) {
	limit, err := o.normalizeLimit(limit)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: query is required", ErrInvalidRequest)
	}

	var items []Searchable
	if scope == "" || strings.EqualFold(scope, SearchActors) {
		actors, err := o.data.Actors(ctx, "")
		if err != nil {
			return nil, fmt.Errorf("load actors: %w", err)
		}
		for i := range actors {
			items = append(items, Searchable{ID: actors[i].ID, Text: actors[i].Name})
		}
	} else {
		kind, err := models.ParseContentKind(scope)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
		}
		content, err := o.data.Content(ctx, kind)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", kind, err)
		}
		for i := range content {
			text := content[i].Title
			if text == "" {
				text = content[i].Text
			}
			items = append(items, Searchable{ID: content[i].ID, Text: text})
		}
	}

	return rank(SearchRank(query, items, o.cfg.SearchFuzzyThreshold, o.cfg.SearchMinScore), limit), nil
}

func (o *Orchestrator) loadCreator(ctx context.Context, id int64) (*models.Actor, error) {
	a, err := o.loadActor(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.Role != models.RoleCreator {
		return nil, fmt.Errorf("%w: actor %d is not a creator", ErrInvalidRequest, id)
	}
	return a, nil
}

func (o *Orchestrator) authoredPosts(ctx context.Context, authorID int64) ([]models.ContentItem, error) {
	posts, err := o.data.Content(ctx, models.KindPost)
	if err != nil {
		return nil, fmt.Errorf("load posts: %w", err)
	}
	out := make([]models.ContentItem, 0)
	for i := range posts {
		if posts[i].AuthorID == authorID {
			out = append(out, posts[i])
		}
	}
	return out, nil
}

// possessedFrom counts the items of kind authored by authorID that the
// actor possesses.
func (o *Orchestrator) possessedFrom(ctx context.Context, actorID, authorID int64, kind models.ContentKind) (int, error) {
	owned, err := o.possessed(ctx, actorID, kind)
	if err != nil || len(owned) == 0 {
		return 0, err
	}
	items, err := o.data.Content(ctx, kind)
	if err != nil {
		return 0, fmt.Errorf("load %s: %w", kind, err)
	}
	n := 0
	for i := range items {
		if _, ok := owned[items[i].ID]; ok && items[i].AuthorID == authorID {
			n++
		}
	}
	return n, nil
}
