// Mantra - Creator and Audience Ranking and Safety Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mantra

package moderation

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/tomtom215/mantra/internal/models"
	"github.com/tomtom215/mantra/internal/textsignal"
)

// Profanity penalty constants.
const (
	penaltyPerTerm       = 0.05
	penaltyPerRepeat     = 0.08
	penaltyRepeatMax     = 0.4
	penaltyExcessiveHigh = 0.3
	penaltyExcessiveLow  = 0.15
)

// SentimentScorer combines a pattern-lexicon estimate and a valence estimate
// and subtracts a penalty for repeated profanity.
type SentimentScorer struct {
	cfg     Config
	pattern Estimator
	valence Estimator
}

// NewSentimentScorer creates a scorer. A nil estimator is treated as unavailable.
func NewSentimentScorer(cfg Config, pattern, valence Estimator) *SentimentScorer {
	return &SentimentScorer{cfg: cfg, pattern: pattern, valence: valence}
}

// Preprocess removes URLs and mentions, keeps hashtag words and collapses whitespace.
func Preprocess(text string) string {
	text = textsignal.LinkOrWWW.ReplaceAllString(text, "")
	text = textsignal.Mention.ReplaceAllString(text, "")
	text = textsignal.Hashtag.ReplaceAllString(text, "$1")
	return textsignal.CollapseSpace(text)
}

// Score returns the sentiment of in. Blank text is neutral with zero confidence.
// An estimator returning ErrEstimatorUnavailable is skipped; if neither
// estimator runs, ErrNoEstimate is returned.
func (s *SentimentScorer) Score(in Input) (models.SentimentResult, error) {
	if strings.TrimSpace(in.Features.Raw) == "" {
		return neutralSentiment(), nil
	}

	cleaned := Preprocess(in.Features.Raw)

	p, perr := runEstimator(s.pattern, cleaned)
	if perr != nil && !errors.Is(perr, ErrEstimatorUnavailable) {
		return models.SentimentResult{}, fmt.Errorf("pattern estimator: %w", perr)
	}
	v, verr := runEstimator(s.valence, cleaned)
	if verr != nil && !errors.Is(verr, ErrEstimatorUnavailable) {
		return models.SentimentResult{}, fmt.Errorf("valence estimator: %w", verr)
	}

	var polarity float64
	switch {
	case perr == nil && verr == nil:
		polarity = s.cfg.PatternWeight*p.Polarity + (1-s.cfg.PatternWeight)*v.Polarity
	case perr == nil:
		polarity = p.Polarity
	case verr == nil:
		polarity = v.Polarity
	default:
		return models.SentimentResult{}, ErrNoEstimate
	}

	var subjectivity float64
	switch {
	case perr == nil && p.Subjectivity != nil:
		subjectivity = *p.Subjectivity
	case verr == nil && v.Subjectivity != nil:
		subjectivity = *v.Subjectivity
	}

	score := clamp(polarity-ProfanityPenalty(in.Profanity), -1, 1)

	return models.SentimentResult{
		Score:        score,
		Label:        s.label(score),
		Confidence:   math.Min(math.Abs(score), 1),
		Subjectivity: subjectivity,
	}, nil
}

func (s *SentimentScorer) label(score float64) models.SentimentLabel {
	switch {
	case score > s.cfg.PositiveThreshold:
		return models.SentimentPositive
	case score < s.cfg.NegativeThreshold:
		return models.SentimentNegative
	default:
		return models.SentimentNeutral
	}
}

// ProfanityPenalty is subtracted from the combined polarity: a base amount
// per distinct term, a capped amount per repetition of a term, and a surcharge
// when the total count is excessive. The result is in [0,1].
func ProfanityPenalty(occ textsignal.Occurrences) float64 {
	var penalty float64
	for _, t := range occ.Terms {
		penalty += penaltyPerTerm
		if t.Count > 1 {
			penalty += math.Min(float64(t.Count-1)*penaltyPerRepeat, penaltyRepeatMax)
		}
	}

	switch {
	case occ.Total > 10:
		penalty += penaltyExcessiveHigh
	case occ.Total > 5:
		penalty += penaltyExcessiveLow
	}

	return math.Min(penalty, 1)
}

func runEstimator(e Estimator, text string) (Estimate, error) {
	if e == nil {
		return Estimate{}, ErrEstimatorUnavailable
	}
	return e.Estimate(text)
}

func neutralSentiment() models.SentimentResult {
	return models.SentimentResult{Label: models.SentimentNeutral}
}
