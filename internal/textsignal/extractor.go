// Mantra - Creator and Audience Ranking and Safety Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mantra

package textsignal

import (
	"strings"
	"unicode/utf8"
)

// Features are the surface signals of a text shared by every classifier.
type Features struct {
	Raw   string
	Lower string

	// WordCount is the number of whitespace-separated words.
	WordCount int
	// CapsWords counts words that are upper-case and longer than two runes.
	CapsWords int

	PunctuationRuns int
	Links           int
	EmojiRuns       int
	// MaxCharRun is the longest run of one repeated rune, ignoring newlines.
	MaxCharRun int
	// AllCaps is true when the whole text is upper-case.
	AllCaps bool
	// Length is the rune count of the raw text.
	Length int

	Hashtags []string
}

// Extract computes Features for text. It never fails; empty text yields zero values.
func Extract(text string) Features {
	f := Features{
		Raw:    text,
		Lower:  strings.ToLower(text),
		Length: utf8.RuneCountInString(text),
	}
	if text == "" {
		return f
	}

	words := strings.Fields(text)
	f.WordCount = len(words)
	for _, w := range words {
		if utf8.RuneCountInString(w) > 2 && IsUpper(w) {
			f.CapsWords++
		}
	}

	f.PunctuationRuns = len(PunctuationRun.FindAllStringIndex(text, -1))
	f.Links = len(Link.FindAllStringIndex(text, -1))
	f.EmojiRuns = len(EmojiRun.FindAllStringIndex(text, -1))
	f.MaxCharRun = longestRun(text)
	f.AllCaps = IsUpper(text)
	f.Hashtags = Hashtags(text)

	return f
}

// CapsRatio is the fraction of words that are shouted.
func (f Features) CapsRatio() float64 {
	if f.WordCount == 0 {
		return 0
	}
	return float64(f.CapsWords) / float64(f.WordCount)
}

// Hashtags returns the lower-cased hashtag words in order of appearance.
func Hashtags(text string) []string {
	found := Hashtag.FindAllStringSubmatch(text, -1)
	if len(found) == 0 {
		return nil
	}
	tags := make([]string, len(found))
	for i, m := range found {
		tags[i] = strings.ToLower(m[1])
	}
	return tags
}

// Tokens returns the folded word tokens of text.
func Tokens(text string) []string {
	return Token.FindAllString(Fold(text), -1)
}

// longestRun returns the longest run of a single repeated rune. Newlines
// break runs and are never counted.
func longestRun(s string) int {
	best, run := 0, 0
	var prev rune = -1
	for _, r := range s {
		if r == '\n' {
			run, prev = 0, -1
			continue
		}
		if r == prev {
			run++
		} else {
			run, prev = 1, r
		}
		if run > best {
			best = run
		}
	}
	return best
}
