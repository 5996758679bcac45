// Mantra - Creator and Audience Ranking and Safety Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mantra

package moderation

import (
	"fmt"
	"regexp"
	"time"
)

// Config holds every tunable of the moderation pipeline. The values are
// product-tuned; DefaultConfig carries the production settings.
type Config struct {
	// Sentiment
	PositiveThreshold float64 `koanf:"positive_threshold"`
	NegativeThreshold float64 `koanf:"negative_threshold"`
	// PatternWeight is the share of the pattern-lexicon estimator when both
	// estimators are available; the valence estimator gets the remainder.
	PatternWeight float64 `koanf:"pattern_weight"`

	// Toxicity
	ToxicThreshold        float64 `koanf:"toxic_threshold"`
	HighToxicityScore     float64 `koanf:"high_toxicity_score"`
	HighOccurrenceCount   int     `koanf:"high_occurrence_count"`
	MediumOccurrenceCount int     `koanf:"medium_occurrence_count"`

	// Spam
	SpamThreshold float64 `koanf:"spam_threshold"`

	// Decision rules
	SpamFlagScore          float64 `koanf:"spam_flag_score"`
	NegativeFlagScore      float64 `koanf:"negative_flag_score"`
	NegativeFlagConfidence float64 `koanf:"negative_flag_confidence"`
	ProfanityFlagCount     int     `koanf:"profanity_flag_count"`

	// CacheTTL is how long a moderation result is memoized per text.
	CacheTTL time.Duration `koanf:"cache_ttl"`

	ToxicKeywords []string       `koanf:"toxic_keywords"`
	SpamPatterns  []string       `koanf:"spam_patterns"`
	Emotions      EmotionLexicon `koanf:"emotions"`
}

// EmotionLexicon lists the keywords of each emotion bucket.
type EmotionLexicon struct {
	Joy      []string `koanf:"joy"`
	Sadness  []string `koanf:"sadness"`
	Anger    []string `koanf:"anger"`
	Fear     []string `koanf:"fear"`
	Surprise []string `koanf:"surprise"`
	Disgust  []string `koanf:"disgust"`
}

// Emotion bucket names.
const (
	EmotionJoy      = "joy"
	EmotionSadness  = "sadness"
	EmotionAnger    = "anger"
	EmotionFear     = "fear"
	EmotionSurprise = "surprise"
	EmotionDisgust  = "disgust"
	EmotionNeutral  = "neutral"
)

type emotionBucket struct {
	name     string
	keywords []string
}

// buckets returns the emotion buckets in their fixed tie-breaking order.
func (e EmotionLexicon) buckets() []emotionBucket {
	return []emotionBucket{
		{EmotionJoy, e.Joy},
		{EmotionSadness, e.Sadness},
		{EmotionAnger, e.Anger},
		{EmotionFear, e.Fear},
		{EmotionSurprise, e.Surprise},
		{EmotionDisgust, e.Disgust},
	}
}

// DefaultToxicKeywords is the toxic-keyword list. Matching is by substring.
var DefaultToxicKeywords = []string{
	"hate", "kill", "die", "stupid", "idiot", "moron", "dumb",
	"ugly", "loser", "pathetic", "worthless", "trash", "garbage",
	"racist", "sexist", "homophobic", "threat", "violence", "attack",
	"fuck", "shit", "ass", "bitch", "bastard", "damn", "hell",
	"crap", "piss", "dick", "cock", "pussy", "whore", "slut",
}

// DefaultSpamPatterns are the spam-intent patterns, matched against lower-cased text.
var DefaultSpamPatterns = []string{
	`(click here|buy now|limited time|act now)`,
	`(\$\$\$|!!!+|\?{3,})`,
	`(http[s]?://(?:[a-zA-Z]|[0-9]|[$-_@.&+]|[!*\\(\\),]|(?:%[0-9a-fA-F][0-9a-fA-F]))+)`,
	`(win \$|make money|get rich|free money)`,
}

// DefaultEmotionLexicon is the emotion vocabulary.
func DefaultEmotionLexicon() EmotionLexicon {
	return EmotionLexicon{
		Joy:      []string{"happy", "joy", "excited", "love", "wonderful", "amazing", "great", "excellent", "fantastic"},
		Sadness:  []string{"sad", "depressed", "unhappy", "cry", "tears", "disappointed", "hurt", "broken"},
		Anger:    []string{"angry", "mad", "furious", "rage", "hate", "annoyed", "frustrated", "outraged"},
		Fear:     []string{"afraid", "scared", "terrified", "fear", "worry", "anxious", "nervous", "panic"},
		Surprise: []string{"surprised", "amazed", "shocked", "wow", "unexpected", "astonished", "astounded"},
		Disgust:  []string{"disgusting", "gross", "nasty", "revolting", "sick", "yuck", "awful"},
	}
}

// DefaultConfig returns the production moderation settings.
func DefaultConfig() Config {
	return Config{
		PositiveThreshold: 0.05,
		NegativeThreshold: -0.05,
		PatternWeight:     0.5,

		ToxicThreshold:        0.4,
		HighToxicityScore:     0.7,
		HighOccurrenceCount:   10,
		MediumOccurrenceCount: 5,

		SpamThreshold: 0.5,

		SpamFlagScore:          0.8,
		NegativeFlagScore:      -0.8,
		NegativeFlagConfidence: 0.7,
		ProfanityFlagCount:     10,

		CacheTTL: time.Hour,

		ToxicKeywords: append([]string(nil), DefaultToxicKeywords...),
		SpamPatterns:  append([]string(nil), DefaultSpamPatterns...),
		Emotions:      DefaultEmotionLexicon(),
	}
}

// Validate checks threshold ranges and compiles every spam pattern.
func (c *Config) Validate() error {
	if c.NegativeThreshold > c.PositiveThreshold {
		return fmt.Errorf("negative_threshold (%v) must not exceed positive_threshold (%v)", c.NegativeThreshold, c.PositiveThreshold)
	}
	if c.PatternWeight < 0 || c.PatternWeight > 1 {
		return fmt.Errorf("pattern_weight must be between 0 and 1, got %v", c.PatternWeight)
	}
	for name, v := range map[string]float64{
		"toxic_threshold":          c.ToxicThreshold,
		"high_toxicity_score":      c.HighToxicityScore,
		"spam_threshold":           c.SpamThreshold,
		"spam_flag_score":          c.SpamFlagScore,
		"negative_flag_confidence": c.NegativeFlagConfidence,
	} {
		if v < 0 || v > 1 {
			return fmt.Errorf("%s must be between 0 and 1, got %v", name, v)
		}
	}
	if c.NegativeFlagScore < -1 || c.NegativeFlagScore > 0 {
		return fmt.Errorf("negative_flag_score must be between -1 and 0, got %v", c.NegativeFlagScore)
	}
	if c.MediumOccurrenceCount < 0 || c.HighOccurrenceCount < c.MediumOccurrenceCount {
		return fmt.Errorf("occurrence counts must satisfy 0 <= medium (%d) <= high (%d)", c.MediumOccurrenceCount, c.HighOccurrenceCount)
	}
	if c.ProfanityFlagCount < 0 {
		return fmt.Errorf("profanity_flag_count must be non-negative, got %d", c.ProfanityFlagCount)
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("cache_ttl must be non-negative, got %v", c.CacheTTL)
	}
	if len(c.ToxicKeywords) == 0 {
		return fmt.Errorf("toxic_keywords must not be empty")
	}
	for _, p := range c.SpamPatterns {
		if _, err := regexp.Compile(p); err != nil {
			return fmt.Errorf("invalid spam pattern %q: %w", p, err)
		}
	}
	return nil
}
