// Mantra - Creator and Audience Ranking and Safety Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mantra

package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestCorrelationID(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	if got := CorrelationIDFromContext(ctx); got != "" {
		t.Errorf("expected empty correlation id, got %q", got)
	}

	ctx = ContextWithNewCorrelationID(ctx)
	if got := CorrelationIDFromContext(ctx); len(got) != 8 {
		t.Errorf("expected 8-char correlation id, got %q", got)
	}
}

func TestRequestID(t *testing.T) {
	t.Parallel()

	ctx := ContextWithRequestID(context.Background(), "req-123")
	if got := RequestIDFromContext(ctx); got != "req-123" {
		t.Errorf("got %q, want %q", got, "req-123")
	}
	if got := GenerateRequestID(); len(got) != 36 {
		t.Errorf("expected uuid length 36, got %d", len(got))
	}
}

func TestCtxAttachesIDs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	ctx := ContextWithLogger(context.Background(), NewTestLogger(&buf))
	ctx = ContextWithCorrelationID(ctx, "abcd1234")
	ctx = ContextWithRequestID(ctx, "req-9")

	Ctx(ctx).Info().Msg("moderation complete")

	out := buf.String()
	for _, want := range []string{`"correlation_id":"abcd1234"`, `"request_id":"req-9"`, "moderation complete"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %s in output, got: %s", want, out)
		}
	}
}

func TestSlogHandler(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "debug", Format: "json", Output: &buf})
	defer Init(DefaultConfig())

	logger := NewSlogLogger().With("service", "api").WithGroup("req")
	logger.Warn("restarting", slog.Int("attempt", 2), slog.Bool("backoff", true))

	out := buf.String()
	for _, want := range []string{`"level":"warn"`, `"service":"api"`, `"req.attempt":2`, `"req.backoff":true`, "restarting"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %s in output, got: %s", want, out)
		}
	}
}

func TestSlogHandler_NestedGroupAndError(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "info", Format: "json", Output: &buf})
	defer Init(DefaultConfig())

	NewSlogLogger().Error("service failed",
		slog.Group("svc", slog.String("name", "trainer"), slog.Duration("backoff", 0)),
		slog.Any("err", errors.New("fit neighbours: no interactions")),
	)
	NewSlogLogger().Debug("hidden")

	out := buf.String()
	for _, want := range []string{`"level":"error"`, `"svc.name":"trainer"`, `"err":"fit neighbours: no interactions"`} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %s in output, got: %s", want, out)
		}
	}
	if strings.Contains(out, "hidden") {
		t.Errorf("debug record written at info level: %s", out)
	}
}
