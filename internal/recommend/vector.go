// Mantra - Creator and Audience Ranking and Safety Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mantra

package recommend

import (
	"math"
	"slices"
	"sort"

	"github.com/tomtom215/mantra/internal/models"
)

// Cosine returns the cosine similarity of two equal-length dense vectors,
// or 0 when either has zero norm.
func Cosine(a, b []float64) float64 {
	n := min(len(a), len(b))
	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += a[i] * b[i]
	}
	for _, v := range a {
		normA += v * v
	}
	for _, v := range b {
		normB += v * v
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// sparseDot returns the dot product of two sparse vectors. Keys are visited
// in ascending order so sums are reproducible.
func sparseDot(a, b map[int64]float64) float64 {
	if len(a) > len(b) {
		a, b = b, a
	}
	var dot float64
	for _, k := range sortedKeys(a) {
		dot += a[k] * b[k]
	}
	return dot
}

func sparseNorm(v map[int64]float64) float64 {
	var s float64
	for _, k := range sortedKeys(v) {
		s += v[k] * v[k]
	}
	return math.Sqrt(s)
}

func sortedKeys(m map[int64]float64) []int64 {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Jaccard returns |A∩B| / |A∪B| over the distinct elements of a and b,
// and 0 when the union is empty.
func Jaccard[T comparable](a, b []T) float64 {
	setA := toSet(a)
	setB := toSet(b)
	if len(setA) == 0 && len(setB) == 0 {
		return 0
	}
	inter := 0
	for k := range setA {
		if _, ok := setB[k]; ok {
			inter++
		}
	}
	union := len(setA) + len(setB) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

// Overlap returns |A∩B| over distinct elements.
func Overlap[T comparable](a, b []T) int {
	setB := toSet(b)
	seen := make(map[T]struct{}, len(a))
	n := 0
	for _, v := range a {
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		if _, ok := setB[v]; ok {
			n++
		}
	}
	return n
}

// Intersect returns the distinct elements of a that are also in b, in a's order.
func Intersect[T comparable](a, b []T) []T {
	setB := toSet(b)
	seen := make(map[T]struct{}, len(a))
	var out []T
	for _, v := range a {
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		if _, ok := setB[v]; ok {
			out = append(out, v)
		}
	}
	return out
}

func toSet[T comparable](s []T) map[T]struct{} {
	m := make(map[T]struct{}, len(s))
	for _, v := range s {
		m[v] = struct{}{}
	}
	return m
}

func clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v) || v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

// rank sorts scores descending, keeping input order for ties, drops
// duplicate candidates (first occurrence wins) and truncates to limit.
// A limit <= 0 keeps everything.
func rank(scores []models.CandidateScore, limit int) []models.CandidateScore {
	seen := make(map[int64]struct{}, len(scores))
	out := make([]models.CandidateScore, 0, len(scores))
	for _, s := range scores {
		if _, dup := seen[s.CandidateID]; dup {
			continue
		}
		seen[s.CandidateID] = struct{}{}
		out = append(out, s)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// excludeIDs removes candidates whose ID is in exclude.
func excludeIDs(scores []models.CandidateScore, exclude map[int64]struct{}) []models.CandidateScore {
	if len(exclude) == 0 {
		return scores
	}
	out := scores[:0]
	for _, s := range scores {
		if _, ok := exclude[s.CandidateID]; !ok {
			out = append(out, s)
		}
	}
	return out
}

// round2 rounds to two decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
