// Mantra - Creator and Audience Ranking and Safety Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mantra

package moderation

import (
	"fmt"

	"github.com/tomtom215/mantra/internal/models"
)

// Clause names a decision rule that fired.
type Clause string

const (
	ClauseToxicHigh        Clause = "toxicity_high"
	ClauseToxicMedium      Clause = "toxicity_medium"
	ClauseSpam             Clause = "spam"
	ClauseNegativeTone     Clause = "negative_sentiment"
	ClauseProfanityRepeats Clause = "profanity_repetition"
)

// Decide derives a decision from a signal. Rules escalate: any clause can
// flag, the highest severity wins and the reason is taken from the last
// clause that fired. ShouldBlock is never set.
func Decide(sig models.ModerationSignal, cfg Config) models.ModerationDecision {
	d, _ := evaluate(sig, cfg)
	return d
}

func evaluate(sig models.ModerationSignal, cfg Config) (models.ModerationDecision, []Clause) {
	d := models.ModerationDecision{Severity: models.SeverityLow}
	var fired []Clause

	tox := sig.Toxicity
	switch {
	case tox.IsToxic && tox.Severity == models.SeverityHigh:
		d.ShouldFlag = true
		d.Severity = models.SeverityHigh
		d.Reason = fmt.Sprintf("High toxicity content detected (score: %.2f)", tox.Score)
		fired = append(fired, ClauseToxicHigh)
	case tox.IsToxic && tox.Severity == models.SeverityMedium:
		d.ShouldFlag = true
		d.Severity = models.SeverityMedium
		d.Reason = fmt.Sprintf("Moderate toxicity content detected (score: %.2f)", tox.Score)
		fired = append(fired, ClauseToxicMedium)
	}

	if sig.Spam.IsSpam && sig.Spam.Score > cfg.SpamFlagScore {
		d.ShouldFlag = true
		d.Severity = models.SeverityHigh
		d.Reason = fmt.Sprintf("High spam score detected (%.2f)", sig.Spam.Score)
		fired = append(fired, ClauseSpam)
	}

	if sig.Sentiment.Score < cfg.NegativeFlagScore && sig.Sentiment.Confidence > cfg.NegativeFlagConfidence {
		d.ShouldFlag = true
		d.Severity = models.MaxSeverity(d.Severity, models.SeverityMedium)
		d.Reason = fmt.Sprintf("Extremely negative content (sentiment: %.2f)", sig.Sentiment.Score)
		fired = append(fired, ClauseNegativeTone)
	}

	if tox.TotalOccurrences > cfg.ProfanityFlagCount {
		d.ShouldFlag = true
		d.Severity = models.SeverityHigh
		d.Reason = fmt.Sprintf("Excessive profanity repetition (%d times)", tox.TotalOccurrences)
		fired = append(fired, ClauseProfanityRepeats)
	}

	d.ShouldBlock = false
	return d, fired
}

// NeutralSignal is substituted when analysis fails: neutral sentiment,
// non-toxic, not spam, no emotion.
func NeutralSignal() models.ModerationSignal {
	return models.ModerationSignal{
		Sentiment: neutralSentiment(),
		Toxicity:  models.ToxicityResult{Words: []string{}, Severity: models.SeverityLow},
		Spam:      models.SpamResult{Indicators: []string{}},
		Emotion: models.EmotionResult{
			Primary:      EmotionNeutral,
			Distribution: map[string]float64{},
			Present:      []string{},
		},
	}
}
