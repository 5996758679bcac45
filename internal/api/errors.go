// Mantra - Creator and Audience Ranking and Safety Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mantra

package api

// Error codes for API responses.
const (
	ErrCodeBadRequest    = "BAD_REQUEST"
	ErrCodeValidation    = "VALIDATION_ERROR"
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeTooLarge      = "PAYLOAD_TOO_LARGE"
	ErrCodeRateLimited   = "RATE_LIMIT_EXCEEDED"
	ErrCodeStore         = "STORE_ERROR"
	ErrCodeModelNotReady = "MODEL_NOT_READY"
	ErrCodeTimeout       = "TIMEOUT"
	ErrCodeNotReady      = "NOT_READY"
	ErrCodeInternal      = "INTERNAL_ERROR"
)
