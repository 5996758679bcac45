// Mantra - Creator and Audience Ranking and Safety Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mantra

package recommend

import (
	"strings"

	"github.com/tomtom215/mantra/internal/models"
)

// Searchable is one record offered to SearchRank.
type Searchable struct {
	ID   int64
	Text string
}

// SequenceRatio returns the Ratcliff/Obershelp similarity 2·M/T of a and b,
// where M is the number of runes in matching blocks and T the total length.
// Two empty strings have ratio 1.
func SequenceRatio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 1
	}
	return 2 * float64(matchingRunes(ra, rb)) / float64(total)
}

// matchingRunes sums the longest common blocks found by recursive splitting.
func matchingRunes(a, b []rune) int {
	type span struct{ alo, ahi, blo, bhi int }
	queue := []span{{0, len(a), 0, len(b)}}
	matched := 0
	for len(queue) > 0 {
		s := queue[len(queue)-1]
		queue = queue[:len(queue)-1]

		i, j, k := longestMatch(a, b, s.alo, s.ahi, s.blo, s.bhi)
		if k == 0 {
			continue
		}
		matched += k
		if s.alo < i && s.blo < j {
			queue = append(queue, span{s.alo, i, s.blo, j})
		}
		if i+k < s.ahi && j+k < s.bhi {
			queue = append(queue, span{i + k, s.ahi, j + k, s.bhi})
		}
	}
	return matched
}

// longestMatch finds the longest block a[i:i+k] == b[j:j+k] within the
// bounds, preferring the smallest i and then the smallest j.
func longestMatch(a, b []rune, alo, ahi, blo, bhi int) (besti, bestj, bestk int) {
	besti, bestj = alo, blo
	prev := make([]int, bhi-blo+1)
	cur := make([]int, bhi-blo+1)
	for i := alo; i < ahi; i++ {
		for j := blo; j < bhi; j++ {
			if a[i] != b[j] {
				cur[j-blo+1] = 0
				continue
			}
			k := prev[j-blo] + 1
			cur[j-blo+1] = k
			if k > bestk {
				besti, bestj, bestk = i-k+1, j-k+1, k
			}
		}
		prev, cur = cur, prev
	}
	return besti, bestj, bestk
}

// FuzzyScore is 1 when either lower-cased string contains the other,
// otherwise the sequence ratio when it reaches threshold, else 0.
func FuzzyScore(query, text string, threshold float64) float64 {
	q := strings.ToLower(strings.TrimSpace(query))
	t := strings.ToLower(strings.TrimSpace(text))
	if strings.Contains(t, q) || strings.Contains(q, t) {
		return 1
	}
	if r := SequenceRatio(q, t); r >= threshold {
		return r
	}
	return 0
}

// TokenScore is the Jaccard similarity of the lower-cased whitespace tokens.
func TokenScore(query, text string) float64 {
	return Jaccard(strings.Fields(strings.ToLower(query)), strings.Fields(strings.ToLower(text)))
}

// SearchRank scores items by 0.7·FuzzyScore + 0.3·TokenScore and keeps
// those at or above minScore, best first.
func SearchRank(query string, items []Searchable, fuzzyThreshold, minScore float64) []models.CandidateScore {
	if strings.TrimSpace(query) == "" {
		return []models.CandidateScore{}
	}
	out := make([]models.CandidateScore, 0)
	for _, it := range items {
		score := 0.7*FuzzyScore(query, it.Text, fuzzyThreshold) + 0.3*TokenScore(query, it.Text)
		if score >= minScore {
			out = append(out, models.CandidateScore{CandidateID: it.ID, Score: round2(score), Reason: it.Text})
		}
	}
	return rank(out, 0)
}
