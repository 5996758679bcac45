// Mantra - Creator and Audience Ranking and Safety Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mantra

package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tomtom215/mantra/internal/config"
	"github.com/tomtom215/mantra/internal/store"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Database.Driver = store.DriverMemory
	cfg.Database.Seed = true
	cfg.Server.RateLimitDisabled = true
	return cfg
}

func TestBuildComponents(t *testing.T) {
	tests := []struct {
		name          string
		eventsEnabled bool
	}{
		{"with flag notifications", true},
		{"without flag notifications", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.Events.Enabled = tt.eventsEnabled

			comps, err := buildComponents(context.Background(), cfg)
			if err != nil {
				t.Fatalf("buildComponents: %v", err)
			}
			defer comps.close()
			if comps.publisher != nil {
				defer comps.publisher.Close()
			}

			if comps.store == nil || comps.cache == nil || comps.moderation == nil || comps.orchestrator == nil {
				t.Fatal("core component missing")
			}
			if got := comps.notifier != nil; got != tt.eventsEnabled {
				t.Errorf("notifier built = %v, want %v", got, tt.eventsEnabled)
			}
			if got := comps.publisher != nil; got != tt.eventsEnabled {
				t.Errorf("publisher built = %v, want %v", got, tt.eventsEnabled)
			}
		})
	}
}

func TestBuildComponents_UnknownDriver(t *testing.T) {
	cfg := testConfig()
	cfg.Database.Driver = "sqlite"

	if _, err := buildComponents(context.Background(), cfg); err == nil {
		t.Fatal("expected error for unknown store driver")
	}
}

func TestNewHTTPServer_ServesAPI(t *testing.T) {
	cfg := testConfig()
	cfg.Events.Enabled = false
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = 9090

	comps, err := buildComponents(context.Background(), cfg)
	if err != nil {
		t.Fatalf("buildComponents: %v", err)
	}
	defer comps.close()

	server, err := newHTTPServer(cfg, comps)
	if err != nil {
		t.Fatalf("newHTTPServer: %v", err)
	}
	if server.Addr != "127.0.0.1:9090" {
		t.Errorf("addr = %q, want 127.0.0.1:9090", server.Addr)
	}

	tests := []struct {
		name       string
		method     string
		target     string
		body       string
		wantStatus int
	}{
		{"liveness", http.MethodGet, "/api/v1/health/live", "", http.StatusOK},
		{"readiness", http.MethodGet, "/api/v1/health/ready", "", http.StatusOK},
		{"moderation", http.MethodPost, "/api/v1/moderation/", `{"text":"great stream tonight"}`, http.StatusOK},
		{"search", http.MethodGet, "/api/v1/search?q=ava", "", http.StatusOK},
		{"unknown route", http.MethodGet, "/api/v1/nope", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.target, strings.NewReader(tt.body))
			if tt.body != "" {
				req.Header.Set("Content-Type", "application/json")
			}
			rec := httptest.NewRecorder()
			server.Handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
		})
	}
}
