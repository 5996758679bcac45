// Mantra - Creator and Audience Ranking and Safety Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mantra

package recommend

import (
	"sort"
	"sync"
	"time"

	"github.com/tomtom215/mantra/internal/models"
)

// NeighborModel implements item-based collaborative filtering with a
// brute-force k-nearest-neighbor search over item columns using cosine
// distance.
//
// For actor u and item i:
//
//	score(u, i) = sum_{j in N_k(i)} (1 - d(i, j)) * r(u, j) / sum_{j in N_k(i)} (1 - d(i, j))
//
// where N_k(i) are the k columns nearest to i, including i itself.
// It is safe for concurrent use.
type NeighborModel struct {
	k int

	mu       sync.RWMutex
	fitted   bool
	version  int
	fittedAt time.Time
	matrix   *InteractionMatrix
	colNorm  map[int64]float64
	rowNorm  map[int64]float64
}

// neighbor is a column with its cosine distance to the query.
type neighbor struct {
	ID       int64
	Distance float64
}

// NewNeighborModel creates an unfitted model with k neighbors.
func NewNeighborModel(k int) *NeighborModel {
	if k <= 0 {
		k = 10
	}
	return &NeighborModel{k: k}
}

// Fit builds the interaction matrix and precomputes norms. Refitting
// replaces the previous model.
func (n *NeighborModel) Fit(records []models.InteractionRecord) error {
	m, err := BuildMatrix(records)
	if err != nil {
		return err
	}

	colNorm := make(map[int64]float64, len(m.byCol))
	for id, col := range m.byCol {
		colNorm[id] = sparseNorm(col)
	}
	rowNorm := make(map[int64]float64, len(m.byRow))
	for id, row := range m.byRow {
		rowNorm[id] = sparseNorm(row)
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	n.matrix = m
	n.colNorm = colNorm
	n.rowNorm = rowNorm
	n.fitted = true
	n.version++
	n.fittedAt = time.Now()
	return nil
}

// IsFitted reports whether Fit has completed.
func (n *NeighborModel) IsFitted() bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.fitted
}

// Version increments on every Fit.
func (n *NeighborModel) Version() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.version
}

// PredictScore returns the predicted weight of item for actor. Unknown
// actors and items score 0.
func (n *NeighborModel) PredictScore(actor, item int64) (float64, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	if !n.fitted {
		return 0, ErrNotFitted
	}
	return n.predict(actor, item), nil
}

// predict must be called with mu held.
func (n *NeighborModel) predict(actor, item int64) float64 {
	_, cols := n.matrix.Shape()
	k := min(int64(n.k), cols-1)
	if k <= 0 || item < 0 || item >= cols {
		return 0
	}

	var num, den float64
	for _, nb := range n.nearestColumns(item, int(k)) {
		w := 1 - nb.Distance
		if w <= 0 {
			continue
		}
		num += w * n.matrix.At(actor, nb.ID)
		den += w
	}
	if den <= 0 {
		return 0
	}
	return num / den
}

// nearestColumns returns up to k non-empty columns ordered by ascending
// cosine distance to item, ties broken by lower ID. Empty columns and the
// empty query are at distance 1 and carry zero weight, so they are omitted.
func (n *NeighborModel) nearestColumns(item int64, k int) []neighbor {
	query := n.matrix.Column(item)
	qNorm := n.colNorm[item]
	if qNorm == 0 {
		return nil
	}

	// Accumulate dot products through the rows touched by the query column.
	dots := make(map[int64]float64)
	for _, actor := range sortedKeys(query) {
		qv := query[actor]
		for other, v := range n.matrix.Row(actor) {
			dots[other] += qv * v
		}
	}

	out := make([]neighbor, 0, len(n.colNorm))
	for id, norm := range n.colNorm {
		if norm == 0 {
			continue
		}
		sim := clamp01(dots[id] / (qNorm * norm))
		out = append(out, neighbor{ID: id, Distance: 1 - sim})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Distance != out[j].Distance {
			return out[i].Distance < out[j].Distance
		}
		return out[i].ID < out[j].ID
	})
	if len(out) > k {
		out = out[:k]
	}
	return out
}

// RecommendItems predicts every item the actor has not rated (weight > 0)
// and returns the top limit. Items nobody interacted with can only score 0
// and are not candidates.
func (n *NeighborModel) RecommendItems(actor int64, limit int) ([]models.CandidateScore, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	if !n.fitted {
		return nil, ErrNotFitted
	}

	rated := n.matrix.Row(actor)
	items := n.matrix.ItemIDs()
	scores := make([]models.CandidateScore, 0, len(items))
	for _, item := range items {
		if rated[item] > 0 {
			continue
		}
		scores = append(scores, models.CandidateScore{
			CandidateID: item,
			Score:       n.predict(actor, item),
			Reason:      "liked by people with similar taste",
		})
	}
	return rank(scores, limit), nil
}

// unratedItems lists the items actor has not rated with their total
// interaction weight as a popularity score, in item ID order.
func (n *NeighborModel) unratedItems(actor int64) []models.CandidateScore {
	n.mu.RLock()
	defer n.mu.RUnlock()
	if !n.fitted {
		return nil
	}
	rated := n.matrix.Row(actor)
	var out []models.CandidateScore
	for _, item := range n.matrix.ItemIDs() {
		if rated[item] > 0 {
			continue
		}
		col := n.matrix.Column(item)
		var total float64
		for _, a := range sortedKeys(col) {
			total += col[a]
		}
		out = append(out, popular(item, total))
	}
	return out
}

// FindSimilarActors ranks other actors by row cosine similarity. Actors with
// no interactions are skipped, and an actor with none gets an empty list.
func (n *NeighborModel) FindSimilarActors(actor int64, limit int) ([]models.CandidateScore, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	if !n.fitted {
		return nil, ErrNotFitted
	}

	row := n.matrix.Row(actor)
	norm := n.rowNorm[actor]
	if norm == 0 {
		return []models.CandidateScore{}, nil
	}

	scores := make([]models.CandidateScore, 0, len(n.rowNorm))
	for _, other := range n.matrix.ActorIDs() {
		otherNorm := n.rowNorm[other]
		if other == actor || otherNorm == 0 {
			continue
		}
		scores = append(scores, models.CandidateScore{
			CandidateID: other,
			Score:       sparseDot(row, n.matrix.Row(other)) / (norm * otherNorm),
			Reason:      "similar interaction history",
		})
	}
	return rank(scores, limit), nil
}
