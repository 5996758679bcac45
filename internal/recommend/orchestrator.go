// Mantra - Creator and Audience Ranking and Safety Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mantra

package recommend

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/mantra/internal/cache"
	"github.com/tomtom215/mantra/internal/logging"
	"github.com/tomtom215/mantra/internal/metrics"
	"github.com/tomtom215/mantra/internal/models"
)

// DataProvider supplies actors, content and interactions to the ranking
// layer. Implementations must be safe for concurrent use and must wrap
// models.ErrNotFound when an actor does not exist.
type DataProvider interface {
	Actor(ctx context.Context, id int64) (*models.Actor, error)
	Actors(ctx context.Context, role models.Role) ([]models.Actor, error)
	Content(ctx context.Context, kind models.ContentKind) ([]models.ContentItem, error)
	Interactions(ctx context.Context) ([]models.InteractionRecord, error)
	Possessed(ctx context.Context, actorID int64, kind models.ContentKind) ([]int64, error)
	Followers(ctx context.Context, actorID int64) ([]int64, error)
}

// Orchestrator dispatches ranking requests to the per-type scorers. It
// owns the popularity fallback: a scorer error or an empty scorer output
// never reaches the caller.
type Orchestrator struct {
	cfg      Config
	trending TrendingConfig
	data     DataProvider
	cache    cache.Cache
	now      func() time.Time
	logger   zerolog.Logger

	content ContentScorer
	social  SocialGraphScorer
	trend   TrendingScorer

	// neighbors is the model fitted by the last Train; nil means fit per request.
	neighbors atomic.Pointer[NeighborModel]
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithCache stores ranked results for Config.CacheTTL.
func WithCache(c cache.Cache) Option {
	return func(o *Orchestrator) { o.cache = c }
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) { o.now = now }
}

// NewOrchestrator validates both configurations and builds the scorers.
func NewOrchestrator(cfg Config, tcfg TrendingConfig, data DataProvider, opts ...Option) (*Orchestrator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid recommend config: %w", err)
	}
	if err := tcfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid trending config: %w", err)
	}
	if data == nil {
		return nil, errors.New("recommend: data provider is required")
	}

	o := &Orchestrator{
		cfg:      cfg,
		trending: tcfg,
		data:     data,
		now:      time.Now,
		logger:   logging.WithComponent("recommend"),
		content:  NewContentScorer(cfg),
		social:   NewSocialGraphScorer(cfg),
		trend:    NewTrendingScorer(tcfg),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o, nil
}

// Train fits the neighbour model from the current interactions and serves
// it to item, similarity and score queries until the next Train. A failed
// fit keeps the previous model.
func (o *Orchestrator) Train(ctx context.Context) error {
	records, err := o.data.Interactions(ctx)
	if err != nil {
		return fmt.Errorf("load interactions: %w", err)
	}
	model := o.neighbors.Load()
	if model == nil {
		model = NewNeighborModel(o.cfg.Neighbors)
	}
	if err := model.Fit(records); err != nil {
		return fmt.Errorf("fit neighbour model: %w", err)
	}
	o.neighbors.Store(model)
	o.logger.Info().
		Int("interactions", len(records)).
		Int("version", model.Version()).
		Msg("Neighbour model trained")
	return nil
}

// Config returns the ranking configuration.
func (o *Orchestrator) Config() Config {
	return o.cfg
}

// Recommend ranks one type for one actor. Only an unknown actor, an
// invalid request or a store failure while loading the actor is returned
// as an error. A type that does not apply to the actor's role yields an
// empty result.
func (o *Orchestrator) Recommend(ctx context.Context, req Request) (Result, error) {
	limit, err := o.normalizeLimit(req.Limit)
	if err != nil {
		return Result{}, err
	}
	if req.Type < TypeCreators || req.Type > TypeItems {
		return Result{}, fmt.Errorf("%w: %d", ErrUnknownType, int(req.Type))
	}

	actor, err := o.loadActor(ctx, req.ActorID)
	if err != nil {
		return Result{}, err
	}
	return o.recommendFor(ctx, actor, req.Type, limit), nil
}

// RecommendAll ranks every type that applies to the actor's role
// concurrently and returns the results in type order.
func (o *Orchestrator) RecommendAll(ctx context.Context, actorID int64, limit int) ([]Result, error) {
	limit, err := o.normalizeLimit(limit)
	if err != nil {
		return nil, err
	}
	actor, err := o.loadActor(ctx, actorID)
	if err != nil {
		return nil, err
	}

	var types []RecommendationType
	for _, t := range AllTypes {
		if t.AppliesTo(actor.Role) {
			types = append(types, t)
		}
	}

	results := make([]Result, len(types))
	g, gctx := errgroup.WithContext(ctx)
	for i, t := range types {
		g.Go(func() error {
			results[i] = o.recommendFor(gctx, actor, t, limit)
			return gctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (o *Orchestrator) normalizeLimit(limit int) (int, error) {
	switch {
	case limit < 0:
		return 0, fmt.Errorf("%w: limit must not be negative", ErrInvalidRequest)
	case limit == 0:
		return o.cfg.DefaultLimit, nil
	case limit > o.cfg.MaxLimit:
		return o.cfg.MaxLimit, nil
	default:
		return limit, nil
	}
}

func (o *Orchestrator) loadActor(ctx context.Context, id int64) (*models.Actor, error) {
	actor, err := o.data.Actor(ctx, id)
	if errors.Is(err, models.ErrNotFound) {
		return nil, fmt.Errorf("%w: %d", ErrActorNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("load actor %d: %w", id, err)
	}
	return actor, nil
}

func (o *Orchestrator) recommendFor(ctx context.Context, actor *models.Actor, t RecommendationType, limit int) Result {
	start := time.Now()
	res := Result{
		Type:        t.String(),
		Section:     t.Section(actor.Role),
		Items:       []models.CandidateScore{},
		GeneratedAt: o.now().UTC(),
	}
	if !t.AppliesTo(actor.Role) {
		metrics.RecordRecommendation(t.String(), "not_applicable", time.Since(start))
		return res
	}

	key := cache.RecommendationKey(actor.ID, t.String(), limit)
	if cached, ok := o.cached(ctx, key); ok {
		metrics.RecordRecommendation(t.String(), "cached", time.Since(start))
		return cached
	}

	r, err := o.dispatch(ctx, actor, t, limit)
	if err != nil {
		logging.Ctx(ctx).Error().
			Err(err).
			Int64("actor_id", actor.ID).
			Str("type", t.String()).
			Msg("Failed to load recommendation candidates")
		res.Fallback = true
		metrics.RecordRecommendation(t.String(), "error", time.Since(start))
		return res
	}

	res.Items = rank(r.scored, limit)
	outcome := "scored"
	if r.err != nil || len(res.Items) == 0 {
		if r.err != nil {
			o.logger.Debug().
				Err(r.err).
				Int64("actor_id", actor.ID).
				Str("type", t.String()).
				Msg("Scorer failed, using popularity fallback")
		}
		res.Items = rank(r.universe, limit)
		res.Fallback = true
		outcome = "fallback"
	}
	for i := range res.Items {
		res.Items[i].Score = round2(res.Items[i].Score)
	}

	metrics.RecordRecommendation(t.String(), outcome, time.Since(start))
	o.store(ctx, key, res)
	return res
}

func (o *Orchestrator) cached(ctx context.Context, key string) (Result, bool) {
	if o.cache == nil || o.cfg.CacheTTL <= 0 {
		return Result{}, false
	}

	data, ok, err := o.cache.Get(ctx, key)
	if err != nil {
		logging.Ctx(ctx).Debug().Err(err).Msg("Recommendation cache lookup failed")
		return Result{}, false
	}
	metrics.RecordCacheLookup("recommendations", ok)
	if !ok {
		return Result{}, false
	}

	var res Result
	if err := json.Unmarshal(data, &res); err != nil {
		logging.Ctx(ctx).Debug().Err(err).Msg("Discarding undecodable recommendation cache entry")
		return Result{}, false
	}
	res.Cached = true
	return res, true
}

func (o *Orchestrator) store(ctx context.Context, key string, res Result) {
	if o.cache == nil || o.cfg.CacheTTL <= 0 {
		return
	}

	data, err := json.Marshal(res)
	if err != nil {
		logging.Ctx(ctx).Debug().Err(err).Msg("Failed to encode recommendation result for cache")
		return
	}
	if err := o.cache.Set(ctx, key, data, o.cfg.CacheTTL); err != nil {
		logging.Ctx(ctx).Debug().Err(err).Msg("Recommendation cache write failed")
	}
}
