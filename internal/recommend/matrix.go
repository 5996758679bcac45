// Mantra - Creator and Audience Ranking and Safety Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mantra

package recommend

import (
	"fmt"
	"slices"

	"github.com/tomtom215/mantra/internal/models"
)

// InteractionMatrix is a sparse actor×item weight matrix. Its logical shape is
// (max actor ID + 1, max item ID + 1); absent cells are zero.
type InteractionMatrix struct {
	rows  int64
	cols  int64
	byRow map[int64]map[int64]float64
	byCol map[int64]map[int64]float64
}

// BuildMatrix builds the matrix from interaction triples. Duplicate
// (actor, item) pairs are summed.
func BuildMatrix(records []models.InteractionRecord) (*InteractionMatrix, error) {
	m := &InteractionMatrix{
		byRow: make(map[int64]map[int64]float64),
		byCol: make(map[int64]map[int64]float64),
	}
	for _, r := range records {
		if r.ActorID < 0 || r.ItemID < 0 {
			return nil, fmt.Errorf("%w: negative id in (%d, %d)", ErrInvalidRequest, r.ActorID, r.ItemID)
		}
		if r.Weight < 0 {
			return nil, fmt.Errorf("%w: negative weight %v for (%d, %d)", ErrInvalidRequest, r.Weight, r.ActorID, r.ItemID)
		}
		m.rows = max(m.rows, r.ActorID+1)
		m.cols = max(m.cols, r.ItemID+1)

		if r.Weight == 0 {
			continue
		}
		row := m.byRow[r.ActorID]
		if row == nil {
			row = make(map[int64]float64)
			m.byRow[r.ActorID] = row
		}
		row[r.ItemID] += r.Weight

		col := m.byCol[r.ItemID]
		if col == nil {
			col = make(map[int64]float64)
			m.byCol[r.ItemID] = col
		}
		col[r.ActorID] += r.Weight
	}
	return m, nil
}

// Shape returns the logical (rows, cols) of the matrix.
func (m *InteractionMatrix) Shape() (rows, cols int64) {
	return m.rows, m.cols
}

// At returns the weight of (actor, item), 0 when absent or out of range.
func (m *InteractionMatrix) At(actor, item int64) float64 {
	return m.byRow[actor][item]
}

// Row returns the sparse row of an actor. The map must not be modified.
func (m *InteractionMatrix) Row(actor int64) map[int64]float64 {
	return m.byRow[actor]
}

// Column returns the sparse column of an item. The map must not be modified.
func (m *InteractionMatrix) Column(item int64) map[int64]float64 {
	return m.byCol[item]
}

// ItemIDs returns the IDs of items with at least one non-zero cell, ascending.
func (m *InteractionMatrix) ItemIDs() []int64 {
	return sortedIDs(m.byCol)
}

// ActorIDs returns the IDs of actors with at least one non-zero cell, ascending.
func (m *InteractionMatrix) ActorIDs() []int64 {
	return sortedIDs(m.byRow)
}

func sortedIDs(m map[int64]map[int64]float64) []int64 {
	ids := make([]int64, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
