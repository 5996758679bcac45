// Mantra - Creator and Audience Ranking and Safety Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mantra

package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	got := DefaultConfig()
	want := Config{Level: "info", Format: "json", Timestamp: true, Output: got.Output}
	if got != want {
		t.Errorf("DefaultConfig() = %+v, want %+v", got, want)
	}
	if got.Output == nil {
		t.Error("DefaultConfig().Output is nil")
	}
}

func TestInit(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		want    []string
		notWant []string
	}{
		{
			name: "json with timestamp",
			cfg:  Config{Level: "debug", Format: "json", Timestamp: true},
			want: []string{`"level":"info"`, `"actor":"fan-1"`, `"message":"recommendations served"`, `"time":`},
		},
		{
			name:    "json without timestamp",
			cfg:     Config{Level: "info", Format: "json"},
			want:    []string{`"actor":"fan-1"`},
			notWant: []string{`"time":`},
		},
		{
			name:    "console",
			cfg:     Config{Level: "info", Format: "console"},
			want:    []string{"recommendations served", "actor=", "fan-1"},
			notWant: []string{`"actor"`},
		},
		{
			name: "caller",
			cfg:  Config{Level: "info", Format: "json", Caller: true},
			want: []string{`"caller":`, "logger_test.go"},
		},
		{
			name:    "level filters",
			cfg:     Config{Level: "error", Format: "json"},
			notWant: []string{"recommendations served"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			cfg := tt.cfg
			cfg.Output = &buf
			Init(cfg)
			defer Init(DefaultConfig())

			Info().Str("actor", "fan-1").Msg("recommendations served")

			out := buf.String()
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("output missing %s: %s", w, out)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(out, w) {
					t.Errorf("output has unexpected %s: %s", w, out)
				}
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"fatal", zerolog.FatalLevel},
		{"panic", zerolog.PanicLevel},
		{"disabled", zerolog.Disabled},
		{"DEBUG", zerolog.DebugLevel},
		{" info ", zerolog.InfoLevel},
		{"invalid", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			if got := parseLevel(tt.input); got != tt.expected {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestValidLevel(t *testing.T) {
	t.Parallel()

	if !ValidLevel("Warn") {
		t.Error("expected Warn to be valid")
	}
	if ValidLevel("verbose") {
		t.Error("expected verbose to be invalid")
	}
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "info", Format: "json", Output: &buf})
	defer Init(DefaultConfig())

	l := WithComponent("moderation")
	l.Info().Msg("analyzed")

	if !strings.Contains(buf.String(), `"component":"moderation"`) {
		t.Errorf("expected component field, got: %s", buf.String())
	}
}

func TestPreview(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"short", "hello", 10, "hello"},
		{"truncated", "hello world", 5, "hello..."},
		{"control chars", "a\nb\tc", 10, "a b c"},
		{"multibyte", "héllo wörld", 4, "héll..."},
		{"zero", "anything", 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Preview(tt.in, tt.max); got != tt.want {
				t.Errorf("Preview(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
			}
		})
	}
}
