// Mantra - Creator and Audience Ranking and Safety Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mantra

/*
Package moderation classifies user-authored text and decides whether it
should be flagged for human review.

Pipeline:

	text -> textsignal.Extract + toxic keyword counts
	     -> SentimentScorer  (pattern + valence estimators, profanity penalty)
	     -> ToxicityClassifier
	     -> SpamClassifier
	     -> EmotionClassifier
	     -> Decide

Every call is a pure function of the text and the Config; the Engine keeps
no per-request state. Moderate never returns an error: when analysis fails
the neutral signal is substituted and the decision is marked Degraded, so
content submission is never blocked by this package.

Flag Policy:

Content is flagged, never blocked. ModerationDecision.ShouldBlock is always
false. Severity escalates across rules and the reason comes from the last
rule that fired:

  - toxic with high severity: flag, high
  - toxic with medium severity: flag, medium
  - spam score above SpamFlagScore: flag, high
  - sentiment below NegativeFlagScore with confidence above NegativeFlagConfidence: flag, at least medium
  - more than ProfanityFlagCount toxic keyword occurrences: flag, high

Configuration:

All thresholds and keyword lists are in Config and can be overridden from
the moderation section of the application config:

	MANTRA_MODERATION__TOXIC_THRESHOLD=0.45
	MANTRA_MODERATION__CACHE_TTL=30m
*/
package moderation
