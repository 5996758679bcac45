// Mantra - Creator and Audience Ranking and Safety Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mantra

package store

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/tomtom215/mantra/internal/models"
)

type possessionKey struct {
	actorID int64
	kind    models.ContentKind
}

// Memory is an in-process Store. It is safe for concurrent use.
type Memory struct {
	mu           sync.RWMutex
	actors       map[int64]models.Actor
	content      map[int64]models.ContentItem
	interactions []models.InteractionRecord
	possessions  map[possessionKey]map[int64]struct{}
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		actors:      make(map[int64]models.Actor),
		content:     make(map[int64]models.ContentItem),
		possessions: make(map[possessionKey]map[int64]struct{}),
	}
}

// Actor implements Reader.
func (m *Memory) Actor(_ context.Context, id int64) (*models.Actor, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	a, ok := m.actors[id]
	if !ok {
		return nil, fmt.Errorf("actor %d: %w", id, models.ErrNotFound)
	}
	out := cloneActor(&a)
	return &out, nil
}

// Actors implements Reader.
func (m *Memory) Actors(_ context.Context, role models.Role) ([]models.Actor, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.Actor, 0, len(m.actors))
	for _, id := range sortedKeys(m.actors) {
		a := m.actors[id]
		if role != "" && a.Role != role {
			continue
		}
		out = append(out, cloneActor(&a))
	}
	return out, nil
}

// Content implements Reader.
func (m *Memory) Content(_ context.Context, kind models.ContentKind) ([]models.ContentItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.ContentItem, 0)
	for _, id := range sortedKeys(m.content) {
		item := m.content[id]
		if item.Kind != kind {
			continue
		}
		item.Tags = slices.Clone(item.Tags)
		out = append(out, item)
	}
	return out, nil
}

// Interactions implements Reader.
func (m *Memory) Interactions(_ context.Context) ([]models.InteractionRecord, error) {
	m.mu.RLock()
	out := slices.Clone(m.interactions)
	m.mu.RUnlock()
	slices.SortStableFunc(out, compareInteractions)
	return out, nil
}

// compareInteractions orders by actor then item; equal pairs keep
// insertion order under a stable sort.
func compareInteractions(a, b models.InteractionRecord) int {
	if c := cmp.Compare(a.ActorID, b.ActorID); c != 0 {
		return c
	}
	return cmp.Compare(a.ItemID, b.ItemID)
}

// Possessed implements Reader.
func (m *Memory) Possessed(_ context.Context, actorID int64, kind models.ContentKind) ([]int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return sortedKeys(m.possessions[possessionKey{actorID, kind}]), nil
}

// Followers implements Reader.
func (m *Memory) Followers(_ context.Context, actorID int64) ([]int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []int64
	for _, id := range sortedKeys(m.actors) {
		a := m.actors[id]
		if a.FollowsActor(actorID) {
			out = append(out, id)
		}
	}
	return out, nil
}

// Ping implements Reader.
func (m *Memory) Ping(context.Context) error { return nil }

// PutActor implements Writer.
func (m *Memory) PutActor(_ context.Context, a *models.Actor) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.actors[a.ID] = cloneActor(a)
	return nil
}

// PutContent implements Writer.
func (m *Memory) PutContent(_ context.Context, item *models.ContentItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := *item
	c.Tags = slices.Clone(item.Tags)
	m.content[item.ID] = c
	return nil
}

// PutInteraction implements Writer.
func (m *Memory) PutInteraction(_ context.Context, rec models.InteractionRecord) error {
	if rec.Weight < 0 {
		return fmt.Errorf("interaction (%d, %d): negative weight %v", rec.ActorID, rec.ItemID, rec.Weight)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.interactions = append(m.interactions, rec)
	return nil
}

// PutPossession implements Writer.
func (m *Memory) PutPossession(_ context.Context, actorID int64, kind models.ContentKind, itemID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := possessionKey{actorID, kind}
	set, ok := m.possessions[key]
	if !ok {
		set = make(map[int64]struct{})
		m.possessions[key] = set
	}
	set[itemID] = struct{}{}
	return nil
}

// Close implements Store.
func (m *Memory) Close() error { return nil }

func cloneActor(a *models.Actor) models.Actor {
	out := *a
	out.Interests = slices.Clone(a.Interests)
	out.Follows = slices.Clone(a.Follows)
	if a.Fan != nil {
		fan := *a.Fan
		out.Fan = &fan
	}
	if a.Creator != nil {
		c := *a.Creator
		c.Categories = slices.Clone(a.Creator.Categories)
		out.Creator = &c
	}
	if a.Sponsor != nil {
		s := *a.Sponsor
		s.Categories = slices.Clone(a.Sponsor.Categories)
		out.Sponsor = &s
	}
	return out
}

func sortedKeys[V any](m map[int64]V) []int64 {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
