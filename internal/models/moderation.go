// Mantra - Creator and Audience Ranking and Safety Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mantra

package models

// Severity is the ordinal risk tier of a moderation signal.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Rank returns 0 for low, 1 for medium and 2 for high.
func (s Severity) Rank() int {
	switch s {
	case SeverityHigh:
		return 2
	case SeverityMedium:
		return 1
	default:
		return 0
	}
}

// MaxSeverity returns the higher of a and b.
func MaxSeverity(a, b Severity) Severity {
	if b.Rank() > a.Rank() {
		return b
	}
	return a
}

// SentimentLabel classifies a polarity score.
type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "positive"
	SentimentNegative SentimentLabel = "negative"
	SentimentNeutral  SentimentLabel = "neutral"
)

// SentimentResult is the polarity of a text. Score is in [-1,1].
type SentimentResult struct {
	Score        float64        `json:"score"`
	Label        SentimentLabel `json:"label"`
	Confidence   float64        `json:"confidence"`
	Subjectivity float64        `json:"subjectivity"`
}

// ToxicityResult describes abusive language found in a text.
type ToxicityResult struct {
	IsToxic          bool     `json:"is_toxic"`
	Score            float64  `json:"toxicity_score"`
	Words            []string `json:"toxic_words"`
	Severity         Severity `json:"severity"`
	RepetitionFactor float64  `json:"repetition_factor"`
	TotalOccurrences int      `json:"total_repetitions"`
}

// SpamResult describes promotional or automated-looking content.
type SpamResult struct {
	IsSpam     bool     `json:"is_spam"`
	Score      float64  `json:"spam_score"`
	Indicators []string `json:"indicators"`
}

// EmotionResult is the dominant emotion and the normalized distribution over
// the emotion vocabulary.
type EmotionResult struct {
	Primary      string             `json:"primary_emotion"`
	Distribution map[string]float64 `json:"emotion_scores"`
	Present      []string           `json:"emotions_detected"`
}

// ModerationSignal bundles every classifier output for one text.
type ModerationSignal struct {
	Sentiment SentimentResult `json:"sentiment"`
	Toxicity  ToxicityResult  `json:"toxicity"`
	Spam      SpamResult      `json:"spam"`
	Emotion   EmotionResult   `json:"emotion"`
}

// ModerationDecision is derived deterministically from a ModerationSignal.
//
// ShouldBlock is always false: content is flagged for review, never rejected.
// Degraded is set when analysis failed and the neutral default was substituted.
type ModerationDecision struct {
	ShouldBlock bool     `json:"should_block"`
	ShouldFlag  bool     `json:"should_flag"`
	Severity    Severity `json:"severity"`
	Reason      string   `json:"reason"`
	Degraded    bool     `json:"degraded,omitempty"`
}

// ModerationResult is a decision together with the signals it was derived from.
type ModerationResult struct {
	Decision ModerationDecision `json:"decision"`
	Signal   ModerationSignal   `json:"signal"`

	// Cached is set when the result was served from the cache.
	Cached bool `json:"-"`
}
