// Mantra - Creator and Audience Ranking and Safety Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mantra

package recommend

import (
	"errors"
	"fmt"
	"time"
)

// Config contains all ranking weights, pool sizes and limits.
type Config struct {
	// DefaultLimit is used when a request does not specify one.
	DefaultLimit int `koanf:"default_limit"`

	// MaxLimit caps any requested limit.
	MaxLimit int `koanf:"max_limit"`

	// Neighbors is K for the item kNN model.
	Neighbors int `koanf:"neighbors"`

	// MaxFeatures bounds the TF-IDF vocabulary.
	MaxFeatures int `koanf:"max_features"`

	// ContentWeight and EngagementWeight blend text similarity with engagement
	// for post ranking.
	ContentWeight    float64 `koanf:"content_weight"`
	EngagementWeight float64 `koanf:"engagement_weight"`

	// EngagementCap bounds the normalized engagement term.
	EngagementCap float64 `koanf:"engagement_cap"`

	// ItemKNNWeight is the share of the merged post score taken from item kNN.
	ItemKNNWeight float64 `koanf:"item_knn_weight"`

	// SocialWeight is the share of the merged creator score taken from
	// social collaborative votes.
	SocialWeight float64 `koanf:"social_weight"`

	// SocialMinSimilarity is the follow-set Jaccard an actor must exceed to vote.
	SocialMinSimilarity float64 `koanf:"social_min_similarity"`

	// SocialNeighbors is the number of most similar actors that vote.
	SocialNeighbors int `koanf:"social_neighbors"`

	// MutualBonus is added per shared follow; MutualBonusCap bounds the total.
	MutualBonus    float64 `koanf:"mutual_bonus"`
	MutualBonusCap float64 `koanf:"mutual_bonus_cap"`

	// CandidatePool bounds the actors considered for people recommendations.
	CandidatePool int `koanf:"candidate_pool"`

	// PostPool bounds the recent posts from followed creators.
	PostPool int `koanf:"post_pool"`

	// EventPool bounds the upcoming events scored.
	EventPool int `koanf:"event_pool"`

	// CacheTTL is how long a ranked result stays cached. Zero disables caching.
	CacheTTL time.Duration `koanf:"cache_ttl"`

	// TrainInterval is how often the background trainer refits the
	// neighbour model. Zero disables the trainer and fits per request.
	TrainInterval time.Duration `koanf:"train_interval"`

	// SearchFuzzyThreshold is the minimum sequence ratio counted as a fuzzy match.
	SearchFuzzyThreshold float64 `koanf:"search_fuzzy_threshold"`

	// SearchMinScore is the minimum blended score kept by search.
	SearchMinScore float64 `koanf:"search_min_score"`
}

// TrendingConfig controls time-decayed trending.
type TrendingConfig struct {
	// PostWindow is the lookback for trending posts.
	PostWindow time.Duration `koanf:"post_window"`

	// HashtagWindow is the lookback for trending hashtags.
	HashtagWindow time.Duration `koanf:"hashtag_window"`

	ViewWeight    float64 `koanf:"view_weight"`
	LikeWeight    float64 `koanf:"like_weight"`
	CommentWeight float64 `koanf:"comment_weight"`

	// MinAgeHours floors item age so fresh items do not divide by ~1.
	MinAgeHours float64 `koanf:"min_age_hours"`

	// DecayHours is the age at which the score halves.
	DecayHours float64 `koanf:"decay_hours"`

	// Limit is the default number of trending results.
	Limit int `koanf:"limit"`
}

// DefaultConfig returns production defaults.
func DefaultConfig() Config {
	return Config{
		DefaultLimit:         10,
		MaxLimit:             100,
		Neighbors:            10,
		MaxFeatures:          100,
		ContentWeight:        0.7,
		EngagementWeight:     0.3,
		EngagementCap:        1.0,
		ItemKNNWeight:        0.3,
		SocialWeight:         0.3,
		SocialMinSimilarity:  0.1,
		SocialNeighbors:      20,
		MutualBonus:          5,
		MutualBonusCap:       50,
		CandidatePool:        200,
		PostPool:             100,
		EventPool:            50,
		CacheTTL:             30 * time.Minute,
		TrainInterval:        15 * time.Minute,
		SearchFuzzyThreshold: 0.6,
		SearchMinScore:       0.3,
	}
}

// DefaultTrendingConfig returns production trending defaults.
func DefaultTrendingConfig() TrendingConfig {
	return TrendingConfig{
		PostWindow:    72 * time.Hour,
		HashtagWindow: 7 * 24 * time.Hour,
		ViewWeight:    0.1,
		LikeWeight:    0.5,
		CommentWeight: 0.7,
		MinAgeHours:   0.1,
		DecayHours:    24,
		Limit:         20,
	}
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	var errs []error

	if c.DefaultLimit <= 0 {
		errs = append(errs, errors.New("default_limit must be positive"))
	}
	if c.MaxLimit < c.DefaultLimit {
		errs = append(errs, fmt.Errorf("max_limit (%d) must be >= default_limit (%d)", c.MaxLimit, c.DefaultLimit))
	}
	if c.Neighbors <= 0 {
		errs = append(errs, errors.New("neighbors must be positive"))
	}
	if c.MaxFeatures <= 0 {
		errs = append(errs, errors.New("max_features must be positive"))
	}
	if c.ContentWeight < 0 || c.EngagementWeight < 0 {
		errs = append(errs, errors.New("content and engagement weights must be non-negative"))
	}
	if c.ItemKNNWeight < 0 || c.ItemKNNWeight > 1 {
		errs = append(errs, fmt.Errorf("item_knn_weight must be in [0,1], got %v", c.ItemKNNWeight))
	}
	if c.SocialWeight < 0 || c.SocialWeight > 1 {
		errs = append(errs, fmt.Errorf("social_weight must be in [0,1], got %v", c.SocialWeight))
	}
	if c.SocialMinSimilarity < 0 || c.SocialMinSimilarity > 1 {
		errs = append(errs, fmt.Errorf("social_min_similarity must be in [0,1], got %v", c.SocialMinSimilarity))
	}
	if c.SocialNeighbors <= 0 || c.CandidatePool <= 0 || c.PostPool <= 0 || c.EventPool <= 0 {
		errs = append(errs, errors.New("pool sizes must be positive"))
	}
	if c.CacheTTL < 0 {
		errs = append(errs, errors.New("cache_ttl must not be negative"))
	}
	if c.TrainInterval < 0 {
		errs = append(errs, errors.New("train_interval must not be negative"))
	}
	if c.SearchFuzzyThreshold < 0 || c.SearchFuzzyThreshold > 1 || c.SearchMinScore < 0 || c.SearchMinScore > 1 {
		errs = append(errs, errors.New("search thresholds must be in [0,1]"))
	}

	return errors.Join(errs...)
}

// Validate checks the trending configuration.
func (c *TrendingConfig) Validate() error {
	var errs []error
	if c.PostWindow <= 0 || c.HashtagWindow <= 0 {
		errs = append(errs, errors.New("trending windows must be positive"))
	}
	if c.ViewWeight < 0 || c.LikeWeight < 0 || c.CommentWeight < 0 {
		errs = append(errs, errors.New("trending weights must be non-negative"))
	}
	if c.MinAgeHours <= 0 || c.DecayHours <= 0 {
		errs = append(errs, errors.New("min_age_hours and decay_hours must be positive"))
	}
	if c.Limit <= 0 {
		errs = append(errs, errors.New("trending limit must be positive"))
	}
	return errors.Join(errs...)
}
