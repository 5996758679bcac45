// Mantra - Creator and Audience Ranking and Safety Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mantra

package moderation

import (
	"math"
	"strings"
	"unicode"

	"github.com/tomtom215/mantra/internal/textsignal"
)

// Estimate is one estimator's opinion of a text.
type Estimate struct {
	// Polarity is in [-1,1].
	Polarity float64
	// Subjectivity is in [0,1]; nil when the estimator does not measure it.
	Subjectivity *float64
}

// Estimator produces a polarity estimate for preprocessed text.
//
// Implementations return ErrEstimatorUnavailable when they cannot run; any
// other error is treated as an analysis failure.
type Estimator interface {
	Name() string
	Estimate(text string) (Estimate, error)
}

const (
	patternNegationFactor = -0.5
	patternNegationWindow = 2

	boosterIncrement     = 0.293
	capsIncrement        = 0.733
	valenceNegationScale = -0.74
	valenceNegationSpan  = 3
	valenceNormAlpha     = 15.0
	exclaimIncrement     = 0.292
	exclaimMax           = 4
	questionIncrement    = 0.18
	questionMax          = 0.96
)

// PatternEstimator averages the polarity of known words, scaling a word by a
// preceding intensifier and damping-and-flipping it after a negation.
type PatternEstimator struct{}

// Name implements Estimator.
func (PatternEstimator) Name() string { return "pattern" }

// Estimate implements Estimator.
func (PatternEstimator) Estimate(text string) (Estimate, error) {
	tokens := lowerTokens(splitWords(text))

	var sumP, sumS float64
	n := 0
	for i, tok := range tokens {
		entry, ok := patternLexicon[tok]
		if !ok {
			continue
		}
		p, s := entry.polarity, entry.subjectivity
		if i > 0 {
			if m, ok := patternIntensifiers[tokens[i-1]]; ok {
				p = clamp(p*m, -1, 1)
				s = clamp(s*m, 0, 1)
			}
		}
		if negatedWithin(tokens, i, patternNegationWindow) {
			p *= patternNegationFactor
		}
		sumP += p
		sumS += s
		n++
	}

	if n == 0 {
		zero := 0.0
		return Estimate{Subjectivity: &zero}, nil
	}
	subjectivity := clamp(sumS/float64(n), 0, 1)
	return Estimate{Polarity: clamp(sumP/float64(n), -1, 1), Subjectivity: &subjectivity}, nil
}

// ValenceEstimator sums word valences with booster, capitalization, negation,
// contrast ("but") and punctuation adjustments, then normalizes the sum into
// [-1,1] with s / sqrt(s^2 + 15).
type ValenceEstimator struct{}

// Name implements Estimator.
func (ValenceEstimator) Name() string { return "valence" }

// Estimate implements Estimator.
func (ValenceEstimator) Estimate(text string) (Estimate, error) {
	words := splitWords(text)
	filtered := make([]string, 0, len(words))
	for _, w := range words {
		if len([]rune(w)) > 1 {
			filtered = append(filtered, w)
		}
	}
	words = filtered
	lower := lowerTokens(words)
	capDiff := hasCapDifferential(words)

	valences := make([]float64, len(words))
	for i, tok := range lower {
		if _, isBooster := valenceBoosters[tok]; isBooster {
			continue
		}
		v, ok := valenceLexicon[tok]
		if !ok {
			continue
		}
		if capDiff && textsignal.IsUpper(words[i]) {
			v += math.Copysign(capsIncrement, v)
		}

		for j := 1; j <= valenceNegationSpan && i-j >= 0; j++ {
			if b, ok := valenceBoosters[lower[i-j]]; ok {
				scalar := b
				if v < 0 {
					scalar = -scalar
				}
				if capDiff && textsignal.IsUpper(words[i-j]) {
					scalar += math.Copysign(capsIncrement, scalar)
				}
				switch j {
				case 2:
					scalar *= 0.95
				case 3:
					scalar *= 0.9
				}
				v += scalar
			}
			if isNegation(lower[i-j]) {
				v *= valenceNegationScale
			}
		}
		valences[i] = v
	}

	// Contrast: "X but Y" weights X down and Y up.
	for i, tok := range lower {
		if tok != "but" {
			continue
		}
		for j := range valences {
			switch {
			case j < i:
				valences[j] *= 0.5
			case j > i:
				valences[j] *= 1.5
			}
		}
		break
	}

	var sum float64
	for _, v := range valences {
		sum += v
	}
	if sum == 0 {
		return Estimate{}, nil
	}

	emphasis := punctuationEmphasis(text)
	if sum > 0 {
		sum += emphasis
	} else {
		sum -= emphasis
	}

	compound := sum / math.Sqrt(sum*sum+valenceNormAlpha)
	return Estimate{Polarity: clamp(compound, -1, 1)}, nil
}

func punctuationEmphasis(text string) float64 {
	exclaims := min(strings.Count(text, "!"), exclaimMax)
	emphasis := float64(exclaims) * exclaimIncrement

	if q := strings.Count(text, "?"); q > 1 {
		if q <= 3 {
			emphasis += float64(q) * questionIncrement
		} else {
			emphasis += questionMax
		}
	}
	return emphasis
}

// hasCapDifferential reports whether some, but not all, words are upper-case.
func hasCapDifferential(words []string) bool {
	upper := 0
	for _, w := range words {
		if textsignal.IsUpper(w) {
			upper++
		}
	}
	return upper > 0 && upper < len(words)
}

// splitWords splits on whitespace and trims punctuation from word edges.
func splitWords(text string) []string {
	fields := strings.Fields(text)
	words := make([]string, 0, len(fields))
	for _, f := range fields {
		w := strings.TrimFunc(f, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
		})
		w = strings.Trim(w, "'")
		if w != "" {
			words = append(words, w)
		}
	}
	return words
}

func lowerTokens(words []string) []string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = strings.ToLower(w)
	}
	return out
}

func isNegation(tok string) bool {
	if strings.HasSuffix(tok, "n't") {
		return true
	}
	_, ok := negations[strings.ReplaceAll(tok, "'", "")]
	return ok
}

func negatedWithin(tokens []string, i, window int) bool {
	for j := 1; j <= window && i-j >= 0; j++ {
		if isNegation(tokens[i-j]) {
			return true
		}
	}
	return false
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
