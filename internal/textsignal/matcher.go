// Mantra - Creator and Audience Ranking and Safety Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mantra

package textsignal

import (
	"strings"
	"unicode/utf8"
)

// Matcher finds occurrences of a fixed keyword list in text using the
// Aho-Corasick automaton, in O(n + m + z) time where n is the text length,
// m the total pattern length and z the number of matches.
//
// A Matcher is immutable after construction and safe for concurrent use.
// Matching is case-insensitive: patterns and text are lower-cased.
//
//	m := NewMatcher([]string{"hate", "trash"})
//	occ := m.Count("HATE this trash, hate it")
//	// occ.Total == 3, occ.Distinct == 2
type Matcher struct {
	root     *acNode
	patterns []string
}

// acNode is a node in the automaton.
type acNode struct {
	children map[rune]*acNode
	failure  *acNode
	output   []int // indices of patterns ending here
}

// Match is one pattern occurrence. Start and End are byte offsets into the
// lower-cased text.
type Match struct {
	Pattern string
	Index   int
	Start   int
	End     int
}

// TermCount is the number of non-overlapping occurrences of one pattern.
type TermCount struct {
	Term  string `json:"term"`
	Count int    `json:"count"`
}

// Occurrences summarizes keyword hits in a text.
type Occurrences struct {
	// Terms lists matched patterns in pattern-list order.
	Terms    []TermCount
	Total    int
	Distinct int
}

// Words returns the matched patterns in pattern-list order.
func (o Occurrences) Words() []string {
	words := make([]string, len(o.Terms))
	for i, t := range o.Terms {
		words[i] = t.Term
	}
	return words
}

// NewMatcher builds an automaton over the given patterns. Empty patterns are ignored.
func NewMatcher(patterns []string) *Matcher {
	m := &Matcher{root: newACNode()}
	for _, p := range patterns {
		if p == "" {
			continue
		}
		p = strings.ToLower(p)
		m.insert(len(m.patterns), p)
		m.patterns = append(m.patterns, p)
	}
	m.buildFailureLinks()
	return m
}

func newACNode() *acNode {
	return &acNode{children: make(map[rune]*acNode)}
}

func (m *Matcher) insert(index int, pattern string) {
	node := m.root
	for _, ch := range pattern {
		if node.children[ch] == nil {
			node.children[ch] = newACNode()
		}
		node = node.children[ch]
	}
	node.output = append(node.output, index)
}

// buildFailureLinks computes failure links breadth-first.
func (m *Matcher) buildFailureLinks() {
	queue := make([]*acNode, 0, len(m.root.children))
	for _, child := range m.root.children {
		child.failure = m.root
		queue = append(queue, child)
	}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for ch, child := range current.children {
			queue = append(queue, child)

			fail := current.failure
			for fail != nil && fail.children[ch] == nil {
				fail = fail.failure
			}

			if fail == nil {
				child.failure = m.root
			} else {
				child.failure = fail.children[ch]
				child.output = append(child.output, child.failure.output...)
			}
		}
	}
}

// Search returns every (possibly overlapping) match, ordered by end offset.
func (m *Matcher) Search(text string) []Match {
	if len(m.patterns) == 0 {
		return nil
	}

	lower := strings.ToLower(text)
	var matches []Match
	node := m.root

	for i, ch := range lower {
		for node != nil && node.children[ch] == nil {
			node = node.failure
		}
		if node == nil {
			node = m.root
			continue
		}
		node = node.children[ch]

		end := i + utf8.RuneLen(ch)
		for _, idx := range node.output {
			p := m.patterns[idx]
			matches = append(matches, Match{
				Pattern: p,
				Index:   idx,
				Start:   end - len(p),
				End:     end,
			})
		}
	}

	return matches
}

// Contains reports whether any pattern occurs in text.
func (m *Matcher) Contains(text string) bool {
	if len(m.patterns) == 0 {
		return false
	}

	node := m.root
	for _, ch := range strings.ToLower(text) {
		for node != nil && node.children[ch] == nil {
			node = node.failure
		}
		if node == nil {
			node = m.root
			continue
		}
		node = node.children[ch]
		if len(node.output) > 0 {
			return true
		}
	}
	return false
}

// Count returns non-overlapping occurrence counts per pattern. Each pattern
// is scanned left to right independently, so "wowow" contains "wow" once.
func (m *Matcher) Count(text string) Occurrences {
	counts := make([]int, len(m.patterns))
	lastEnd := make([]int, len(m.patterns))

	for _, match := range m.Search(text) {
		if match.Start < lastEnd[match.Index] {
			continue
		}
		counts[match.Index]++
		lastEnd[match.Index] = match.End
	}

	var occ Occurrences
	for idx, c := range counts {
		if c == 0 {
			continue
		}
		occ.Terms = append(occ.Terms, TermCount{Term: m.patterns[idx], Count: c})
		occ.Total += c
		occ.Distinct++
	}
	return occ
}

// Present returns the patterns that occur at least once, in pattern-list order.
func (m *Matcher) Present(text string) []string {
	return m.Count(text).Words()
}

// PatternCount returns the number of patterns in the automaton.
func (m *Matcher) PatternCount() int {
	return len(m.patterns)
}
