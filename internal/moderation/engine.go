// Mantra - Creator and Audience Ranking and Safety Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mantra

package moderation

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/mantra/internal/cache"
	"github.com/tomtom215/mantra/internal/logging"
	"github.com/tomtom215/mantra/internal/metrics"
	"github.com/tomtom215/mantra/internal/models"
	"github.com/tomtom215/mantra/internal/textsignal"
)

const previewRunes = 60

// Engine runs the moderation pipeline. It holds only immutable configuration
// and compiled matchers, so one Engine serves concurrent requests.
type Engine struct {
	cfg       Config
	profanity *textsignal.Matcher
	sentiment *SentimentScorer
	toxicity  *ToxicityClassifier
	spam      *SpamClassifier
	emotion   *EmotionClassifier
	cache     cache.Cache
}

// Option configures an Engine.
type Option func(*engineOptions)

type engineOptions struct {
	cache   cache.Cache
	pattern Estimator
	valence Estimator
}

// WithCache memoizes results per text for Config.CacheTTL.
func WithCache(c cache.Cache) Option {
	return func(o *engineOptions) { o.cache = c }
}

// WithEstimators replaces the sentiment estimators. Pass nil to disable one.
func WithEstimators(pattern, valence Estimator) Option {
	return func(o *engineOptions) {
		o.pattern = pattern
		o.valence = valence
	}
}

// NewEngine validates cfg and builds the classifiers.
func NewEngine(cfg Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid moderation config: %w", err)
	}

	o := engineOptions{pattern: PatternEstimator{}, valence: ValenceEstimator{}}
	for _, opt := range opts {
		opt(&o)
	}

	spam, err := NewSpamClassifier(cfg)
	if err != nil {
		return nil, err
	}

	return &Engine{
		cfg:       cfg,
		profanity: textsignal.NewMatcher(cfg.ToxicKeywords),
		sentiment: NewSentimentScorer(cfg, o.pattern, o.valence),
		toxicity:  &ToxicityClassifier{cfg: cfg},
		spam:      spam,
		emotion:   NewEmotionClassifier(cfg.Emotions),
		cache:     o.cache,
	}, nil
}

// Config returns the engine configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// Analyze computes the full signal bundle for text. A panic inside a
// classifier is converted to an error.
func (e *Engine) Analyze(ctx context.Context, text string) (sig models.ModerationSignal, err error) {
	if err := ctx.Err(); err != nil {
		return models.ModerationSignal{}, err
	}

	defer func() {
		if r := recover(); r != nil {
			sig = models.ModerationSignal{}
			err = fmt.Errorf("moderation analysis panicked: %v", r)
		}
	}()

	in := Input{
		Features:  textsignal.Extract(text),
		Profanity: e.profanity.Count(text),
	}

	sentiment, err := e.sentiment.Score(in)
	if err != nil {
		return models.ModerationSignal{}, fmt.Errorf("score sentiment: %w", err)
	}

	return models.ModerationSignal{
		Sentiment: sentiment,
		Toxicity:  e.toxicity.Classify(in),
		Spam:      e.spam.Classify(in),
		Emotion:   e.emotion.Classify(in),
	}, nil
}

// Moderate returns a decision for text and never fails: if analysis fails,
// a neutral signal and an unflagged decision marked Degraded are returned so
// that submission is never blocked by moderation.
func (e *Engine) Moderate(ctx context.Context, text string) models.ModerationResult {
	start := time.Now()
	key := cache.ModerationKey(text)

	if res, ok := e.cached(ctx, key); ok {
		metrics.RecordModeration(string(res.Decision.Severity), res.Decision.ShouldFlag, false, time.Since(start))
		return res
	}

	sig, err := e.Analyze(ctx, text)
	if err != nil {
		logging.Ctx(ctx).Warn().
			Err(err).
			Str("preview", logging.Preview(text, previewRunes)).
			Msg("Moderation analysis failed, allowing content unflagged")

		res := models.ModerationResult{
			Decision: models.ModerationDecision{Severity: models.SeverityLow, Degraded: true},
			Signal:   NeutralSignal(),
		}
		metrics.RecordModeration(string(res.Decision.Severity), false, true, time.Since(start))
		return res
	}

	decision, clauses := evaluate(sig, e.cfg)
	res := models.ModerationResult{Decision: decision, Signal: sig}

	for _, c := range clauses {
		metrics.ModerationClauses.WithLabelValues(string(c)).Inc()
	}
	metrics.RecordModeration(string(decision.Severity), decision.ShouldFlag, false, time.Since(start))

	if decision.ShouldFlag {
		logging.Ctx(ctx).Info().
			Str("severity", string(decision.Severity)).
			Str("reason", decision.Reason).
			Float64("toxicity", sig.Toxicity.Score).
			Float64("spam", sig.Spam.Score).
			Msg("Content flagged for review")
	}

	e.store(ctx, key, res)
	return res
}

func (e *Engine) cached(ctx context.Context, key string) (models.ModerationResult, bool) {
	if e.cache == nil {
		return models.ModerationResult{}, false
	}

	data, ok, err := e.cache.Get(ctx, key)
	if err != nil {
		logging.Ctx(ctx).Debug().Err(err).Msg("Moderation cache lookup failed")
		return models.ModerationResult{}, false
	}
	metrics.RecordCacheLookup("moderation", ok)
	if !ok {
		return models.ModerationResult{}, false
	}

	var res models.ModerationResult
	if err := json.Unmarshal(data, &res); err != nil {
		logging.Ctx(ctx).Debug().Err(err).Msg("Discarding undecodable moderation cache entry")
		return models.ModerationResult{}, false
	}
	res.Cached = true
	return res, true
}

func (e *Engine) store(ctx context.Context, key string, res models.ModerationResult) {
	if e.cache == nil || e.cfg.CacheTTL <= 0 {
		return
	}

	data, err := json.Marshal(res)
	if err != nil {
		logging.Ctx(ctx).Debug().Err(err).Msg("Failed to encode moderation result for cache")
		return
	}
	if err := e.cache.Set(ctx, key, data, e.cfg.CacheTTL); err != nil {
		logging.Ctx(ctx).Debug().Err(err).Msg("Moderation cache write failed")
	}
}
