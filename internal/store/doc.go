// Mantra - Creator and Audience Ranking and Safety Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mantra

// Package store provides the read-only data snapshot the ranking engine
// scores against: actors, follow edges, content items, interactions and
// possessions.
//
// Two backends implement Store:
//
//   - Memory: maps guarded by a RWMutex, used by tests and the demo.
//   - DuckDB: an embedded analytical database; list columns and profile
//     structs are stored as JSON text.
//
// All list results are ordered by ID so rankings over a snapshot are
// deterministic.
package store
