// Mantra - Creator and Audience Ranking and Safety Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mantra

package cache

import (
	"crypto/md5" //nolint:gosec // fingerprint only, not a security boundary
	"encoding/hex"
	"fmt"
)

// ModerationKey fingerprints text as moderation_{md5 hex}.
func ModerationKey(text string) string {
	sum := md5.Sum([]byte(text)) //nolint:gosec // see import
	return "moderation_" + hex.EncodeToString(sum[:])
}

// RecommendationKey is recommendations_{actor}_{type}_{limit}.
func RecommendationKey(actorID int64, recType string, limit int) string {
	return fmt.Sprintf("recommendations_%d_%s_%d", actorID, recType, limit)
}
