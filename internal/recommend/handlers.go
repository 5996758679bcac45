// Mantra - Creator and Audience Ranking and Safety Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mantra

package recommend

import (
	"context"
	"fmt"
	"sort"

	"github.com/tomtom215/mantra/internal/models"
)

// ranking is the raw output of one type handler. universe is the full
// candidate set scored by popularity, used when the scorer fails or
// returns nothing.
type ranking struct {
	scored   []models.CandidateScore
	universe []models.CandidateScore
	err      error
}

// dispatch routes a type to its handler. A returned error means the
// candidate universe itself could not be loaded.
func (o *Orchestrator) dispatch(ctx context.Context, actor *models.Actor, t RecommendationType, limit int) (ranking, error) {
	switch t {
	case TypeCreators:
		if actor.Role == models.RoleSponsor {
			return o.rankCreatorsForSponsor(ctx, actor)
		}
		return o.rankCreatorsForFan(ctx, actor)
	case TypePosts:
		return o.rankPosts(ctx, actor, limit)
	case TypeEvents:
		return o.rankEvents(ctx, actor)
	case TypeMerchandise:
		return o.rankMerchandise(ctx, actor, limit)
	case TypeFans:
		if actor.Role == models.RoleCreator {
			return o.rankPotentialFans(ctx, actor)
		}
		return o.rankSimilarFans(ctx, actor)
	case TypeClubs:
		return o.rankClubs(ctx, actor)
	case TypeItems:
		return o.rankItems(ctx, actor, limit)
	default:
		return ranking{}, fmt.Errorf("%w: %d", ErrUnknownType, int(t))
	}
}

func (o *Orchestrator) rankCreatorsForFan(ctx context.Context, fan *models.Actor) (ranking, error) {
	creators, err := o.data.Actors(ctx, models.RoleCreator)
	if err != nil {
		return ranking{}, fmt.Errorf("load creators: %w", err)
	}

	following := toSet(fan.Follows)
	var r ranking
	var candidates []*models.Actor
	for i := range creators {
		c := &creators[i]
		if _, ok := following[c.ID]; ok || c.ID == fan.ID {
			continue
		}
		candidates = append(candidates, c)
		r.universe = append(r.universe, popular(c.ID, float64(c.Engagement.Followers)))
	}

	peers, err := o.data.Actors(ctx, fan.Role)
	if err != nil {
		r.err = fmt.Errorf("load peers: %w", err)
		return r, nil
	}
	isCreator := make(map[int64]bool, len(creators))
	for i := range creators {
		isCreator[creators[i].ID] = true
	}
	votes := make(map[int64]float64)
	var maxVotes float64
	for _, v := range o.social.Collaborative(fan, peers, func(id int64) bool { return isCreator[id] }) {
		votes[v.CandidateID] = v.Score
		maxVotes = max(maxVotes, v.Score)
	}

	for _, c := range candidates {
		m, err := Match(PairingFanCreator, MatchInput{Source: fan, Target: c})
		if err != nil {
			r.err = err
			return r, nil
		}
		score := (1 - o.cfg.SocialWeight) * m.Score / 100
		reason := "matches your interests"
		if v := votes[c.ID]; v > 0 {
			score += o.cfg.SocialWeight * v / maxVotes
			reason = "followed by fans like you"
		}
		r.scored = append(r.scored, models.CandidateScore{CandidateID: c.ID, Score: score, Reason: reason})
	}
	return r, nil
}

func (o *Orchestrator) rankCreatorsForSponsor(ctx context.Context, sponsor *models.Actor) (ranking, error) {
	creators, err := o.data.Actors(ctx, models.RoleCreator)
	if err != nil {
		return ranking{}, fmt.Errorf("load creators: %w", err)
	}

	var r ranking
	for i := range creators {
		c := &creators[i]
		r.universe = append(r.universe, popular(c.ID, float64(c.Engagement.Followers)))

		m, err := Match(PairingCreatorSponsor, MatchInput{Source: c, Target: sponsor})
		if err != nil {
			r.err = err
			return r, nil
		}
		r.scored = append(r.scored, models.CandidateScore{CandidateID: c.ID, Score: m.Score, Reason: "audience and category fit"})
	}
	return r, nil
}

// rankPosts blends content similarity with item kNN over unseen posts.
// Candidates are recent posts from followed creators, topped up with the
// most liked unseen posts when there are fewer than limit.
func (o *Orchestrator) rankPosts(ctx context.Context, actor *models.Actor, limit int) (ranking, error) {
	posts, err := o.data.Content(ctx, models.KindPost)
	if err != nil {
		return ranking{}, fmt.Errorf("load posts: %w", err)
	}
	seen, err := o.possessed(ctx, actor.ID, models.KindPost)
	if err != nil {
		return ranking{}, err
	}

	var unseen []models.ContentItem
	for i := range posts {
		if _, ok := seen[posts[i].ID]; ok || posts[i].AuthorID == actor.ID {
			continue
		}
		unseen = append(unseen, posts[i])
	}
	candidates := selectPostCandidates(unseen, actor.Follows, o.cfg.PostPool, limit)

	var r ranking
	for i := range candidates {
		r.universe = append(r.universe, popular(candidates[i].ID, float64(candidates[i].Engagement.Likes)))
	}

	scored, err := o.content.Score(actor.Categories(), candidates)
	if err != nil {
		r.err = err
		return r, nil
	}

	if knn := o.postNeighborScores(ctx, actor.ID, candidates); knn != nil {
		w := o.cfg.ItemKNNWeight
		for i := range scored {
			scored[i].Score = (1-w)*scored[i].Score + w*knn[scored[i].CandidateID]
		}
	}
	r.scored = scored
	return r, nil
}

func selectPostCandidates(unseen []models.ContentItem, follows []int64, pool, limit int) []models.ContentItem {
	if len(follows) == 0 {
		return unseen
	}

	followed := toSet(follows)
	var fromFollowed []models.ContentItem
	for i := range unseen {
		if _, ok := followed[unseen[i].AuthorID]; ok {
			fromFollowed = append(fromFollowed, unseen[i])
		}
	}
	sort.SliceStable(fromFollowed, func(i, j int) bool {
		return fromFollowed[i].CreatedAt.After(fromFollowed[j].CreatedAt)
	})
	if len(fromFollowed) > pool {
		fromFollowed = fromFollowed[:pool]
	}
	if len(fromFollowed) >= limit {
		return fromFollowed
	}

	picked := make(map[int64]struct{}, len(fromFollowed))
	for i := range fromFollowed {
		picked[fromFollowed[i].ID] = struct{}{}
	}
	rest := make([]models.ContentItem, 0, len(unseen))
	for i := range unseen {
		if _, ok := picked[unseen[i].ID]; !ok {
			rest = append(rest, unseen[i])
		}
	}
	sort.SliceStable(rest, func(i, j int) bool {
		return rest[i].Engagement.Likes > rest[j].Engagement.Likes
	})
	if need := limit - len(fromFollowed); len(rest) > need {
		rest = rest[:need]
	}
	return append(fromFollowed, rest...)
}

// postNeighborScores returns kNN predictions for candidates scaled to [0,1]
// by the largest prediction, or nil when the model has nothing to add.
func (o *Orchestrator) postNeighborScores(ctx context.Context, actorID int64, candidates []models.ContentItem) map[int64]float64 {
	model, err := o.fitNeighbors(ctx)
	if err != nil {
		o.logger.Debug().Err(err).Msg("item kNN unavailable for post ranking")
		return nil
	}

	out := make(map[int64]float64, len(candidates))
	var best float64
	for i := range candidates {
		s, err := model.PredictScore(actorID, candidates[i].ID)
		if err != nil {
			return nil
		}
		out[candidates[i].ID] = s
		best = max(best, s)
	}
	if best <= 0 {
		return nil
	}
	for id := range out {
		out[id] /= best
	}
	return out
}

func (o *Orchestrator) rankEvents(ctx context.Context, fan *models.Actor) (ranking, error) {
	events, err := o.data.Content(ctx, models.KindEvent)
	if err != nil {
		return ranking{}, fmt.Errorf("load events: %w", err)
	}
	booked, err := o.possessed(ctx, fan.ID, models.KindEvent)
	if err != nil {
		return ranking{}, err
	}

	now := o.now()
	var upcoming []models.ContentItem
	for i := range events {
		e := events[i]
		if e.StartsAt == nil || e.StartsAt.Before(now) {
			continue
		}
		if _, ok := booked[e.ID]; ok {
			continue
		}
		upcoming = append(upcoming, e)
	}
	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].StartsAt.Before(*upcoming[j].StartsAt)
	})
	if len(upcoming) > o.cfg.EventPool {
		upcoming = upcoming[:o.cfg.EventPool]
	}

	var r ranking
	for i := range upcoming {
		r.universe = append(r.universe, popular(upcoming[i].ID, float64(deref(upcoming[i].Attendees))))
	}
	if len(fan.Interests) == 0 {
		r.err = ErrNoInterests
		return r, nil
	}

	following := toSet(fan.Follows)
	for i := range upcoming {
		e := &upcoming[i]
		score := float64(Overlap(fan.Interests, e.Tags))*10 + float64(deref(e.Attendees))/10
		reason := "matches your interests"
		if _, ok := following[e.AuthorID]; ok {
			score += 20
			reason = "hosted by a creator you follow"
		}
		r.scored = append(r.scored, models.CandidateScore{CandidateID: e.ID, Score: score, Reason: reason})
	}
	return r, nil
}

// rankMerchandise scores in-stock items from followed creators, or all
// in-stock items when the fan follows nobody. The pool is the 2·limit most
// recent (followed) or best selling (otherwise) items.
func (o *Orchestrator) rankMerchandise(ctx context.Context, fan *models.Actor, limit int) (ranking, error) {
	items, err := o.data.Content(ctx, models.KindMerchandise)
	if err != nil {
		return ranking{}, fmt.Errorf("load merchandise: %w", err)
	}
	owned, err := o.possessed(ctx, fan.ID, models.KindMerchandise)
	if err != nil {
		return ranking{}, err
	}

	following := toSet(fan.Follows)
	var pool []models.ContentItem
	for i := range items {
		it := items[i]
		if !it.InStock() {
			continue
		}
		if _, ok := owned[it.ID]; ok {
			continue
		}
		if len(following) > 0 {
			if _, ok := following[it.AuthorID]; !ok {
				continue
			}
		}
		pool = append(pool, it)
	}
	if len(following) > 0 {
		sort.SliceStable(pool, func(i, j int) bool { return pool[i].CreatedAt.After(pool[j].CreatedAt) })
	} else {
		sort.SliceStable(pool, func(i, j int) bool { return deref(pool[i].Sold) > deref(pool[j].Sold) })
	}
	if len(pool) > 2*limit {
		pool = pool[:2*limit]
	}

	var r ranking
	for i := range pool {
		it := &pool[i]
		r.universe = append(r.universe, popular(it.ID, float64(deref(it.Sold))))

		var score float64
		if it.Featured {
			score += 20
		}
		if it.Exclusive {
			score += 15
		}
		score += float64(deref(it.Sold)) / 10
		if it.DiscountPercent != nil {
			score += *it.DiscountPercent / 5
		}
		r.scored = append(r.scored, models.CandidateScore{CandidateID: it.ID, Score: score, Reason: merchReason(it)})
	}
	return r, nil
}

func merchReason(it *models.ContentItem) string {
	switch {
	case it.Featured:
		return "featured"
	case it.Exclusive:
		return "exclusive"
	case it.DiscountPercent != nil && *it.DiscountPercent > 0:
		return "on sale"
	default:
		return "popular"
	}
}

func (o *Orchestrator) rankSimilarFans(ctx context.Context, fan *models.Actor) (ranking, error) {
	fans, err := o.data.Actors(ctx, models.RoleFan)
	if err != nil {
		return ranking{}, fmt.Errorf("load fans: %w", err)
	}

	following := toSet(fan.Follows)
	var r ranking
	var pool []*models.Actor
	for i := range fans {
		other := &fans[i]
		if _, ok := following[other.ID]; ok || other.ID == fan.ID {
			continue
		}
		pool = append(pool, other)
		if len(pool) == o.cfg.CandidatePool {
			break
		}
	}
	for _, other := range pool {
		r.universe = append(r.universe, popular(other.ID, activity(other)))
	}
	if len(fan.Interests) == 0 {
		r.err = ErrNoInterests
		return r, nil
	}

	for _, other := range pool {
		overlap := Overlap(fan.Interests, other.Interests)
		if overlap == 0 {
			continue
		}
		score := float64(overlap)*10 + o.social.MutualBonus(fan.Follows, other.Follows)
		r.scored = append(r.scored, models.CandidateScore{CandidateID: other.ID, Score: score, Reason: "shares your interests"})
	}
	return r, nil
}

func (o *Orchestrator) rankPotentialFans(ctx context.Context, creator *models.Actor) (ranking, error) {
	fans, err := o.data.Actors(ctx, models.RoleFan)
	if err != nil {
		return ranking{}, fmt.Errorf("load fans: %w", err)
	}
	followerIDs, err := o.data.Followers(ctx, creator.ID)
	if err != nil {
		return ranking{}, fmt.Errorf("load followers: %w", err)
	}

	followers := toSet(followerIDs)
	var r ranking
	var pool []*models.Actor
	for i := range fans {
		if _, ok := followers[fans[i].ID]; ok {
			continue
		}
		pool = append(pool, &fans[i])
		if len(pool) == o.cfg.CandidatePool {
			break
		}
	}
	for _, f := range pool {
		r.universe = append(r.universe, popular(f.ID, activity(f)))
	}

	categories := creator.Categories()
	if len(categories) == 0 {
		r.err = ErrNoInterests
		return r, nil
	}
	for _, f := range pool {
		overlap := Overlap(categories, f.Interests)
		if overlap == 0 {
			continue
		}
		score := float64(overlap)*10 + activity(f)/10
		r.scored = append(r.scored, models.CandidateScore{CandidateID: f.ID, Score: score, Reason: "interested in your categories"})
	}
	return r, nil
}

func (o *Orchestrator) rankClubs(ctx context.Context, fan *models.Actor) (ranking, error) {
	clubs, err := o.data.Content(ctx, models.KindClub)
	if err != nil {
		return ranking{}, fmt.Errorf("load clubs: %w", err)
	}
	joined, err := o.possessed(ctx, fan.ID, models.KindClub)
	if err != nil {
		return ranking{}, err
	}

	var r ranking
	for i := range clubs {
		c := &clubs[i]
		if _, ok := joined[c.ID]; ok {
			continue
		}
		r.universe = append(r.universe, popular(c.ID, float64(deref(c.Members))))

		m, err := Match(PairingFanClub, MatchInput{Source: fan, Club: c})
		if err != nil {
			r.err = err
			return r, nil
		}
		r.scored = append(r.scored, models.CandidateScore{CandidateID: c.ID, Score: m.Score, Reason: "matches your interests"})
	}
	return r, nil
}

// rankItems uses the item kNN snapshot. The universe is every item the
// snapshot holds that the actor has not rated, with its total weight, so
// the fallback excludes exactly what the model excludes.
func (o *Orchestrator) rankItems(ctx context.Context, actor *models.Actor, limit int) (ranking, error) {
	model, err := o.fitNeighbors(ctx)
	if err != nil {
		return ranking{}, err
	}
	r := ranking{universe: model.unratedItems(actor.ID)}
	r.scored, r.err = model.RecommendItems(actor.ID, limit)
	return r, nil
}

func (o *Orchestrator) fitNeighbors(ctx context.Context) (*NeighborModel, error) {
	if model := o.neighbors.Load(); model != nil {
		return model, nil
	}
	records, err := o.data.Interactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("load interactions: %w", err)
	}
	model := NewNeighborModel(o.cfg.Neighbors)
	if err := model.Fit(records); err != nil {
		return nil, err
	}
	return model, nil
}

func (o *Orchestrator) possessed(ctx context.Context, actorID int64, kind models.ContentKind) (map[int64]struct{}, error) {
	ids, err := o.data.Possessed(ctx, actorID, kind)
	if err != nil {
		return nil, fmt.Errorf("load possessed %s: %w", kind, err)
	}
	return toSet(ids), nil
}

func popular(id int64, score float64) models.CandidateScore {
	return models.CandidateScore{CandidateID: id, Score: score, Reason: "popular"}
}

func activity(a *models.Actor) float64 {
	if a.Fan == nil {
		return 0
	}
	return a.Fan.ActivityScore
}

func deref[T int64 | float64](p *T) T {
	if p == nil {
		return 0
	}
	return *p
}
