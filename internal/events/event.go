// Mantra - Creator and Audience Ranking and Safety Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mantra

package events

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/tomtom215/mantra/internal/logging"
	"github.com/tomtom215/mantra/internal/models"
)

// TypeContentFlagged is the FlagEvent type.
const TypeContentFlagged = "content_flagged"

// FlagInput describes a flagged post.
type FlagInput struct {
	PostID     int64
	AuthorID   int64
	AuthorName string
	Text       string
	Decision   models.ModerationDecision
}

// FlagMetadata is the machine-readable part of a FlagEvent.
type FlagMetadata struct {
	PostID         int64           `json:"post_id"`
	AuthorID       int64           `json:"author_id"`
	FlagReason     string          `json:"flag_reason"`
	Severity       models.Severity `json:"severity"`
	ContentPreview string          `json:"content_preview"`
}

// FlagEvent notifies reviewers that a post was flagged.
type FlagEvent struct {
	EventID   string       `json:"event_id"`
	Type      string       `json:"type"`
	Title     string       `json:"title"`
	Message   string       `json:"message"`
	Metadata  FlagMetadata `json:"metadata"`
	CreatedAt time.Time    `json:"created_at"`
}

// NewFlagEvent builds the event for a flagged post. previewLen bounds the
// content preview in runes.
func NewFlagEvent(in FlagInput, previewLen int, now time.Time) (*FlagEvent, error) {
	if !in.Decision.ShouldFlag {
		return nil, ErrNotFlagged
	}

	author := in.AuthorName
	if author == "" {
		author = "user " + strconv.FormatInt(in.AuthorID, 10)
	}
	severity := in.Decision.Severity
	if severity == "" {
		severity = models.SeverityLow
	}

	return &FlagEvent{
		EventID: uuid.NewString(),
		Type:    TypeContentFlagged,
		Title:   fmt.Sprintf("Content Flagged - %s Priority", strings.ToUpper(string(severity))),
		Message: fmt.Sprintf("Post by %s has been flagged: %s", author, in.Decision.Reason),
		Metadata: FlagMetadata{
			PostID:         in.PostID,
			AuthorID:       in.AuthorID,
			FlagReason:     in.Decision.Reason,
			Severity:       severity,
			ContentPreview: logging.Preview(in.Text, previewLen),
		},
		CreatedAt: now.UTC(),
	}, nil
}

// Validate checks required fields.
func (e *FlagEvent) Validate() error {
	var errs []error
	if e.EventID == "" {
		errs = append(errs, errors.New("event_id is required"))
	}
	if e.Type != TypeContentFlagged {
		errs = append(errs, fmt.Errorf("unexpected event type %q", e.Type))
	}
	if e.Metadata.PostID <= 0 {
		errs = append(errs, errors.New("metadata.post_id must be positive"))
	}
	return errors.Join(errs...)
}

// Marshal validates and encodes the event as JSON.
func Marshal(e *FlagEvent) ([]byte, error) {
	if err := e.Validate(); err != nil {
		return nil, fmt.Errorf("validate event: %w", err)
	}
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("marshal event: %w", err)
	}
	return data, nil
}

// Unmarshal decodes a JSON event.
func Unmarshal(data []byte) (*FlagEvent, error) {
	var e FlagEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("unmarshal event: %w", err)
	}
	return &e, nil
}
