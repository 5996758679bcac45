// Mantra - Creator and Audience Ranking and Safety Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mantra

package recommend

import (
	"math"
	"sort"

	"github.com/tomtom215/mantra/internal/textsignal"
)

// TermMatrix is the TF-IDF representation of a corpus. Rows follow the input
// document order; columns follow Vocabulary, which is sorted alphabetically.
type TermMatrix struct {
	Vocabulary []string
	Rows       [][]float64
}

// Vectorize computes L2-normalized TF-IDF vectors for docs. The vocabulary
// is limited to the maxFeatures terms with the highest corpus frequency,
// ties broken alphabetically. idf is smoothed: ln((1+n)/(1+df)) + 1.
//
// Vectorize holds no state; every call fits a fresh vocabulary.
func Vectorize(docs []string, maxFeatures int) (TermMatrix, error) {
	counts := make([]map[string]int, len(docs))
	corpus := make(map[string]int)
	df := make(map[string]int)
	for i, doc := range docs {
		c := make(map[string]int)
		for _, tok := range textsignal.Tokens(doc) {
			c[tok]++
		}
		for term, n := range c {
			corpus[term] += n
			df[term]++
		}
		counts[i] = c
	}
	if len(corpus) == 0 {
		return TermMatrix{}, ErrEmptyVocabulary
	}

	vocab := selectVocabulary(corpus, maxFeatures)
	index := make(map[string]int, len(vocab))
	idf := make([]float64, len(vocab))
	n := float64(len(docs))
	for i, term := range vocab {
		index[term] = i
		idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}

	rows := make([][]float64, len(docs))
	for i, c := range counts {
		row := make([]float64, len(vocab))
		for term, tf := range c {
			if j, ok := index[term]; ok {
				row[j] = float64(tf) * idf[j]
			}
		}
		l2normalize(row)
		rows[i] = row
	}
	return TermMatrix{Vocabulary: vocab, Rows: rows}, nil
}

// selectVocabulary returns the top terms by corpus frequency, sorted alphabetically.
func selectVocabulary(corpus map[string]int, maxFeatures int) []string {
	terms := make([]string, 0, len(corpus))
	for term := range corpus {
		terms = append(terms, term)
	}
	if maxFeatures > 0 && len(terms) > maxFeatures {
		sort.Slice(terms, func(i, j int) bool {
			if corpus[terms[i]] != corpus[terms[j]] {
				return corpus[terms[i]] > corpus[terms[j]]
			}
			return terms[i] < terms[j]
		})
		terms = terms[:maxFeatures]
	}
	sort.Strings(terms)
	return terms
}

func l2normalize(v []float64) {
	var s float64
	for _, x := range v {
		s += x * x
	}
	if s == 0 {
		return
	}
	norm := math.Sqrt(s)
	for i := range v {
		v[i] /= norm
	}
}
