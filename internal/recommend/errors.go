// Mantra - Creator and Audience Ranking and Safety Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mantra

package recommend

import "errors"

var (
	// ErrNotFitted is returned by NeighborModel queries issued before Fit.
	ErrNotFitted = errors.New("model not fitted")

	// ErrActorNotFound is returned when the requested actor does not exist.
	ErrActorNotFound = errors.New("actor not found")

	// ErrEmptyVocabulary is returned by Vectorize when no document yields a token.
	ErrEmptyVocabulary = errors.New("empty vocabulary")

	// ErrNoInterests is returned by scorers that need an interest profile the actor lacks.
	ErrNoInterests = errors.New("actor has no interests")

	// ErrUnknownType is returned for an unrecognized recommendation type.
	ErrUnknownType = errors.New("unknown recommendation type")

	// ErrUnknownPairing is returned for an unrecognized matcher pairing.
	ErrUnknownPairing = errors.New("unknown pairing")

	// ErrInvalidRequest is returned for malformed requests.
	ErrInvalidRequest = errors.New("invalid request")
)
