// Mantra - Creator and Audience Ranking and Safety Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mantra

// Package recommend ranks people, posts, events, merchandise, clubs and
// items for an actor.
//
// # Scorers
//
// Each signal is a small, stateless scorer returning (T, error):
//
//   - NeighborModel: item kNN over cosine distance of interaction columns
//   - ContentScorer: TF-IDF cosine between an interest profile and posts,
//     blended with engagement
//   - SocialGraphScorer: follow-set Jaccard, mutual bonus and collaborative
//     votes from similar actors
//   - Match: weighted factor tables per Pairing
//   - TrendingScorer: time-decayed engagement and hashtag counts
//
// Vectorize is a pure function; nothing in the package keeps a fitted
// vocabulary between calls.
//
// # Orchestration
//
// Orchestrator.Recommend dispatches a RecommendationType to its handler
// with an explicit switch. Handlers return both a scored list and the
// popularity-ordered candidate universe. When a scorer fails or returns
// nothing, the orchestrator ranks the universe instead and marks the
// result with Fallback. Only an unknown actor (ErrActorNotFound) or an
// invalid request is reported to the caller.
//
//	orch, err := recommend.NewOrchestrator(
//	    recommend.DefaultConfig(),
//	    recommend.DefaultTrendingConfig(),
//	    st,
//	    recommend.WithCache(c),
//	)
//	res, err := orch.Recommend(ctx, recommend.Request{
//	    ActorID: 10,
//	    Type:    recommend.TypePosts,
//	    Limit:   10,
//	})
//
// RecommendAll fans out one goroutine per type that applies to the
// actor's role and returns the sections in type order.
//
// # Determinism
//
// For a fixed data snapshot every list is identical across runs: sparse
// vectors are summed in key order, ties keep input order and kNN ties
// are broken by item ID.
//
// # Configuration
//
// Weights, pool sizes and windows come from Config and TrendingConfig and
// can be overridden with environment variables:
//
//	MANTRA_RECOMMEND__ITEM_KNN_WEIGHT=0.3
//	MANTRA_RECOMMEND__CACHE_TTL=30m
//	MANTRA_TRENDING__DECAY_HOURS=24
package recommend
