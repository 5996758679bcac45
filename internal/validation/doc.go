// Mantra - Creator and Audience Ranking and Safety Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mantra

// Package validation provides struct validation for HTTP request bodies
// using go-playground/validator v10.
//
// A shared validator caches struct reflection after first use. Failures come
// back as Errors, which render into the VALIDATION_ERROR payload of the API.
//
// # Quick Start
//
//	type moderationRequest struct {
//	    Text     string `json:"text" validate:"required,max=10000"`
//	    AuthorID int64  `json:"author_id" validate:"gte=0"`
//	}
//
//	if errs := validation.ValidateStruct(&req); errs != nil {
//	    respondAPIError(w, http.StatusBadRequest, errs.ToAPIError())
//	    return
//	}
//
// # Field Names
//
// Errors report the json name of a field when it has one, so messages read
// "text is required" rather than "Text is required".
//
// # Custom Validators
//
//   - content_kind: post, event, merchandise or club (plural forms accepted),
//     used by the search scope as "omitempty,eq=actors|content_kind"
//
// # Error Messages
//
//	required       -> "text is required"
//	max=10000      -> "text must be at most 10000 characters"
//	max=30 (slice) -> "hashtags must be at most 30 items"
//	gte=1          -> "limit must be greater than or equal to 1"
//	oneof=a b      -> "type must be one of: a b"
//	content_kind   -> "kind must be one of: post, event, merchandise, club"
//
// A single failure carries {field, tag} in the error details; several
// failures carry a "fields" list and a joined message.
//
// Validator and ValidateStruct are safe for concurrent use.
package validation
