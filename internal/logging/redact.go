// Mantra - Creator and Audience Ranking and Safety Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mantra

package logging

import (
	"strings"
	"unicode/utf8"
)

// Preview returns at most maxRunes runes of s with control characters replaced,
// suitable for attaching user-authored text to log lines and events.
func Preview(s string, maxRunes int) string {
	if maxRunes <= 0 {
		return ""
	}

	var b strings.Builder
	b.Grow(min(len(s), maxRunes*utf8.UTFMax))
	n := 0
	for _, r := range s {
		if n == maxRunes {
			b.WriteString("...")
			break
		}
		if r < 0x20 || r == 0x7F {
			r = ' '
		}
		b.WriteRune(r)
		n++
	}
	return b.String()
}
