// Mantra - Creator and Audience Ranking and Safety Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mantra

package events

import "errors"

var (
	// ErrPublisherClosed is returned when publishing after Close.
	ErrPublisherClosed = errors.New("publisher is closed")

	// ErrNotFlagged is returned when a notification is requested for a
	// decision that did not flag the content.
	ErrNotFlagged = errors.New("decision is not flagged")

	// ErrThrottled is returned when the author exceeded the notification rate.
	ErrThrottled = errors.New("flag notification throttled")

	// ErrUnknownBackend is returned for an unsupported publisher backend.
	ErrUnknownBackend = errors.New("unknown event backend")

	// ErrSubscribeUnsupported is returned by Subscribe on backends that only publish.
	ErrSubscribeUnsupported = errors.New("backend does not support subscribing")
)
