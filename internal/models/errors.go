// Mantra - Creator and Audience Ranking and Safety Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mantra

package models

import "errors"

// ErrNotFound is returned by data providers when a requested record does not exist.
var ErrNotFound = errors.New("not found")
