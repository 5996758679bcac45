// Mantra - Creator and Audience Ranking and Safety Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mantra

package models

import (
	"fmt"
	"strings"
	"time"
)

// ContentKind identifies the type of a ContentItem.
type ContentKind string

const (
	KindPost        ContentKind = "post"
	KindEvent       ContentKind = "event"
	KindMerchandise ContentKind = "merchandise"
	KindClub        ContentKind = "club"
)

// ContentKinds lists every kind in a fixed order.
var ContentKinds = []ContentKind{KindPost, KindEvent, KindMerchandise, KindClub}

// ParseContentKind converts a string to a ContentKind. Plural forms are accepted.
func ParseContentKind(s string) (ContentKind, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	v = strings.TrimSuffix(v, "s")
	switch k := ContentKind(v); k {
	case KindPost, KindEvent, KindMerchandise, KindClub:
		return k, nil
	default:
		return "", fmt.Errorf("unknown content kind %q", s)
	}
}

// ContentEngagement holds the interaction counters of a content item.
type ContentEngagement struct {
	Views    int64 `json:"views"`
	Likes    int64 `json:"likes"`
	Comments int64 `json:"comments"`
	Shares   int64 `json:"shares"`
}

// ContentItem is a candidate for ranking: a post, event, merchandise listing or club.
//
// Fields that only apply to some kinds are pointers and are nil when absent.
type ContentItem struct {
	ID         int64             `json:"id"`
	Kind       ContentKind       `json:"kind"`
	Title      string            `json:"title,omitempty"`
	Text       string            `json:"text"`
	Tags       []string          `json:"tags"`
	Engagement ContentEngagement `json:"engagement"`
	AuthorID   int64             `json:"author_id"`
	CreatedAt  time.Time         `json:"created_at"`
	HasMedia   bool              `json:"has_media"`

	// Events
	StartsAt  *time.Time `json:"starts_at,omitempty"`
	Attendees *int64     `json:"attendees,omitempty"`

	// Merchandise
	Sold            *int64   `json:"sold,omitempty"`
	Stock           *int64   `json:"stock,omitempty"`
	DiscountPercent *float64 `json:"discount_percent,omitempty"`
	Featured        bool     `json:"featured,omitempty"`
	Exclusive       bool     `json:"exclusive,omitempty"`

	// Clubs
	Members  *int64 `json:"members,omitempty"`
	Official bool   `json:"official,omitempty"`
}

// Document returns the text used for vectorization: title, body and tags.
func (c *ContentItem) Document() string {
	parts := make([]string, 0, 2+len(c.Tags))
	if c.Title != "" {
		parts = append(parts, c.Title)
	}
	if c.Text != "" {
		parts = append(parts, c.Text)
	}
	parts = append(parts, c.Tags...)
	return strings.Join(parts, " ")
}

// InStock reports whether merchandise can be ordered. Items without a stock
// counter are treated as available.
func (c *ContentItem) InStock() bool {
	return c.Stock == nil || *c.Stock > 0
}

// Int64 returns a pointer to v.
func Int64(v int64) *int64 { return &v }

// Float64 returns a pointer to v.
func Float64(v float64) *float64 { return &v }

// Time returns a pointer to v.
func Time(v time.Time) *time.Time { return &v }
