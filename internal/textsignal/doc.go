// Mantra - Creator and Audience Ranking and Safety Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mantra

// Package textsignal extracts surface features from user-authored text:
// keyword occurrences, punctuation runs, shouting, links, emoji runs,
// repeated characters and hashtags.
//
// Keyword matching uses an Aho-Corasick automaton so a single pass over the
// text counts every term of a keyword list. Counts are non-overlapping per
// term, so "hellhell" contains "hell" twice and "wowow" contains "wow" once.
//
// The package is pure and stateless apart from compiled patterns; every
// function is safe for concurrent use.
package textsignal
