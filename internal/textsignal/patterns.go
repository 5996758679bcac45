// Mantra - Creator and Audience Ranking and Safety Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mantra

package textsignal

import "regexp"

// Word characters follow Unicode letters, digits and underscore.
const wordClass = `[\p{L}\p{N}_]`

var (
	// PunctuationRun matches aggressive punctuation such as "!!" or "?!?".
	PunctuationRun = regexp.MustCompile(`[!?]{2,}`)

	// Link matches an http(s) URL up to the next whitespace.
	Link = regexp.MustCompile(`https?://\S+`)

	// LinkOrWWW matches URLs including bare www. hosts.
	LinkOrWWW = regexp.MustCompile(`http\S+|www.\S+`)

	// Mention matches @handles.
	Mention = regexp.MustCompile(`@` + wordClass + `+`)

	// Hashtag matches #tags and captures the tag word.
	Hashtag = regexp.MustCompile(`#(` + wordClass + `+)`)

	// Token matches words of two or more characters.
	Token = regexp.MustCompile(wordClass + `{2,}`)

	// EmojiRun matches runs of emoticons, pictographs, transport symbols and flags.
	EmojiRun = regexp.MustCompile(`[\x{1F600}-\x{1F64F}\x{1F300}-\x{1F5FF}\x{1F680}-\x{1F6FF}\x{1F1E0}-\x{1F1FF}]+`)
)
