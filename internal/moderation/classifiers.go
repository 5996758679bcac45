// Mantra - Creator and Audience Ranking and Safety Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mantra

package moderation

import (
	"fmt"
	"math"
	"regexp"

	"github.com/tomtom215/mantra/internal/models"
	"github.com/tomtom215/mantra/internal/textsignal"
)

// Input is the per-text state shared by every classifier.
type Input struct {
	Features textsignal.Features
	// Profanity holds toxic-keyword occurrences in the text.
	Profanity textsignal.Occurrences
}

// Toxicity weights.
const (
	toxicPerDistinct   = 0.15
	toxicPerRepeat     = 0.12
	toxicRepeatMax     = 0.6
	toxicPerPunctRun   = 0.1
	toxicCapsRatioGain = 0.2
)

// ToxicityClassifier scores abusive language from keyword hits, repetition,
// aggressive punctuation and shouting.
type ToxicityClassifier struct {
	cfg Config
}

// Classify scores in. Empty text is non-toxic with low severity.
func (c *ToxicityClassifier) Classify(in Input) models.ToxicityResult {
	occ := in.Profanity
	f := in.Features

	result := models.ToxicityResult{Words: []string{}, Severity: models.SeverityLow}
	if f.Raw == "" {
		return result
	}

	score := toxicPerDistinct * float64(occ.Distinct)
	if occ.Total > occ.Distinct {
		score += math.Min(toxicPerRepeat*float64(occ.Total-occ.Distinct), toxicRepeatMax)
	}
	score += toxicPerPunctRun * float64(f.PunctuationRuns)
	score += toxicCapsRatioGain * f.CapsRatio()
	score = math.Min(score, 1)

	result.Score = score
	result.IsToxic = score > c.cfg.ToxicThreshold
	result.TotalOccurrences = occ.Total
	if occ.Distinct > 0 {
		result.Words = occ.Words()
		result.RepetitionFactor = float64(occ.Total) / float64(occ.Distinct)
	}

	switch {
	case score > c.cfg.HighToxicityScore || occ.Total > c.cfg.HighOccurrenceCount:
		result.Severity = models.SeverityHigh
	case score > c.cfg.ToxicThreshold || occ.Total > c.cfg.MediumOccurrenceCount:
		result.Severity = models.SeverityMedium
	}

	return result
}

// Spam weights.
const (
	spamPerPattern     = 0.25
	spamExcessiveLinks = 0.3
	spamExcessiveEmoji = 0.2
	spamRepeatedChars  = 0.15
	spamAllCaps        = 0.2

	spamLinkLimit   = 2
	spamEmojiLimit  = 10
	spamRepeatRun   = 5
	spamCapsMinRune = 20
)

// SpamClassifier scores promotional and automated-looking content.
type SpamClassifier struct {
	cfg      Config
	patterns []*regexp.Regexp
}

// NewSpamClassifier compiles the configured spam patterns.
func NewSpamClassifier(cfg Config) (*SpamClassifier, error) {
	patterns := make([]*regexp.Regexp, 0, len(cfg.SpamPatterns))
	for _, p := range cfg.SpamPatterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("compile spam pattern %q: %w", p, err)
		}
		patterns = append(patterns, re)
	}
	return &SpamClassifier{cfg: cfg, patterns: patterns}, nil
}

// Classify scores in. Each heuristic adds a fixed amount and an indicator.
func (c *SpamClassifier) Classify(in Input) models.SpamResult {
	f := in.Features
	result := models.SpamResult{Indicators: []string{}}
	if f.Raw == "" {
		return result
	}

	var score float64
	for _, re := range c.patterns {
		if re.MatchString(f.Lower) {
			score += spamPerPattern
			result.Indicators = append(result.Indicators, "Pattern: "+re.String())
		}
	}
	if f.Links > spamLinkLimit {
		score += spamExcessiveLinks
		result.Indicators = append(result.Indicators, fmt.Sprintf("Excessive links: %d", f.Links))
	}
	if f.EmojiRuns > spamEmojiLimit {
		score += spamExcessiveEmoji
		result.Indicators = append(result.Indicators, fmt.Sprintf("Excessive emojis: %d", f.EmojiRuns))
	}
	if f.MaxCharRun >= spamRepeatRun {
		score += spamRepeatedChars
		result.Indicators = append(result.Indicators, "Repeated characters")
	}
	if f.AllCaps && f.Length > spamCapsMinRune {
		score += spamAllCaps
		result.Indicators = append(result.Indicators, "All caps")
	}

	result.Score = math.Min(score, 1)
	result.IsSpam = result.Score > c.cfg.SpamThreshold
	return result
}

// EmotionClassifier maps keyword presence onto a fixed emotion vocabulary.
type EmotionClassifier struct {
	names    []string
	matchers []*textsignal.Matcher
}

// NewEmotionClassifier builds one matcher per emotion bucket.
func NewEmotionClassifier(lex EmotionLexicon) *EmotionClassifier {
	c := &EmotionClassifier{}
	for _, b := range lex.buckets() {
		c.names = append(c.names, b.name)
		c.matchers = append(c.matchers, textsignal.NewMatcher(b.keywords))
	}
	return c
}

// Classify counts, per bucket, how many of its keywords occur in the text.
// The primary emotion is the bucket with the highest count, earlier buckets
// winning ties, or neutral when nothing matched.
func (c *EmotionClassifier) Classify(in Input) models.EmotionResult {
	result := models.EmotionResult{
		Primary:      EmotionNeutral,
		Distribution: map[string]float64{},
		Present:      []string{},
	}
	if in.Features.Raw == "" {
		return result
	}

	counts := make([]int, len(c.names))
	total := 0
	for i, m := range c.matchers {
		counts[i] = m.Count(in.Features.Lower).Distinct
		total += counts[i]
	}

	best := -1
	for i, n := range counts {
		share := 0.0
		if total > 0 {
			share = float64(n) / float64(total)
		}
		result.Distribution[c.names[i]] = share
		if n > 0 {
			result.Present = append(result.Present, c.names[i])
		}
		if best < 0 || n > counts[best] {
			best = i
		}
	}
	if best >= 0 && counts[best] > 0 {
		result.Primary = c.names[best]
	}
	return result
}
