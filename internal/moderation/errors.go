// Mantra - Creator and Audience Ranking and Safety Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mantra

package moderation

import "errors"

var (
	// ErrEstimatorUnavailable is returned by a sentiment estimator that cannot
	// run (for example, its lexicon failed to load). The scorer skips it.
	ErrEstimatorUnavailable = errors.New("sentiment estimator unavailable")

	// ErrNoEstimate is returned when no sentiment estimator produced a result.
	ErrNoEstimate = errors.New("no sentiment estimate available")
)
