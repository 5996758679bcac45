// Mantra - Creator and Audience Ranking and Safety Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mantra

package models

import "time"

// CandidateScore is the output unit of every ranking scorer.
//
// Lists of CandidateScore are sorted by descending Score, contain no duplicate
// CandidateID, and exclude candidates the actor already possesses.
type CandidateScore struct {
	CandidateID int64   `json:"candidate_id"`
	Score       float64 `json:"score"`
	Reason      string  `json:"reason,omitempty"`
}

// TrendingScore is a time-decayed engagement score for one item.
type TrendingScore struct {
	ItemID int64     `json:"item_id"`
	Score  float64   `json:"score"`
	AsOf   time.Time `json:"as_of"`
}

// HashtagCount is the number of posts using a hashtag within a window.
type HashtagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}
