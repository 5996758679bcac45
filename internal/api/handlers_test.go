// Mantra - Creator and Audience Ranking and Safety Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mantra

package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/mantra/internal/events"
	"github.com/tomtom215/mantra/internal/middleware"
	"github.com/tomtom215/mantra/internal/models"
	"github.com/tomtom215/mantra/internal/moderation"
	"github.com/tomtom215/mantra/internal/recommend"
	"github.com/tomtom215/mantra/internal/store"
)

var seedNow = time.Date(2026, 6, 1, 18, 0, 0, 0, time.UTC)

const flaggedText = "fuck you fuck you fuck you fuck you fuck you fuck you"

// envelope mirrors models.APIResponse with raw data for per-test decoding.
type envelope struct {
	Status   string           `json:"status"`
	Data     json.RawMessage  `json:"data"`
	Metadata models.Metadata  `json:"metadata"`
	Error    *models.APIError `json:"error"`
}

type fakeNotifier struct {
	mu    sync.Mutex
	err   error
	calls []events.FlagInput
}

func (f *fakeNotifier) NotifyFlagged(_ context.Context, in events.FlagInput) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, in)
	return f.err
}

func (f *fakeNotifier) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// pingFailStore is a seeded store whose health check fails.
type pingFailStore struct {
	store.Reader
}

func (pingFailStore) Ping(context.Context) error { return errors.New("connection refused") }

type testServer struct {
	handler  http.Handler
	notifier *fakeNotifier
	perfMon  *middleware.PerformanceMonitor
}

type serverOption func(*Deps, *ChiMiddlewareConfig)

func withStore(r store.Reader) serverOption {
	return func(d *Deps, _ *ChiMiddlewareConfig) { d.Store = r }
}

func withMaxBody(n int64) serverOption {
	return func(d *Deps, _ *ChiMiddlewareConfig) { d.MaxBodyBytes = n }
}

func withMiddlewareConfig(fn func(*ChiMiddlewareConfig)) serverOption {
	return func(_ *Deps, c *ChiMiddlewareConfig) { fn(c) }
}

func seededStore(t *testing.T) *store.Memory {
	t.Helper()
	m := store.NewMemory()
	if err := store.Seed(context.Background(), m, seedNow); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	return m
}

func newTestServer(t *testing.T, opts ...serverOption) *testServer {
	t.Helper()

	data := seededStore(t)
	mod, err := moderation.NewEngine(moderation.DefaultConfig())
	if err != nil {
		t.Fatalf("moderation.NewEngine: %v", err)
	}
	rec, err := recommend.NewOrchestrator(recommend.DefaultConfig(), recommend.DefaultTrendingConfig(), data,
		recommend.WithClock(func() time.Time { return seedNow }))
	if err != nil {
		t.Fatalf("recommend.NewOrchestrator: %v", err)
	}

	ts := &testServer{
		notifier: &fakeNotifier{},
		perfMon:  middleware.NewPerformanceMonitor(100, time.Second),
	}
	deps := Deps{
		Store:      data,
		Moderation: mod,
		Recommend:  rec,
		Notifier:   ts.notifier,
		PerfMon:    ts.perfMon,
		Now:        func() time.Time { return seedNow },
	}
	mwCfg := DefaultChiMiddlewareConfig()
	mwCfg.RateLimitDisabled = true
	for _, opt := range opts {
		opt(&deps, mwCfg)
	}

	h, err := NewHandler(deps)
	if err != nil {
		t.Fatalf("NewHandler: %v", err)
	}
	ts.handler = NewRouter(h, NewChiMiddleware(mwCfg)).Setup()
	return ts
}

func (ts *testServer) do(t *testing.T, method, target, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	w := httptest.NewRecorder()
	ts.handler.ServeHTTP(w, req)

	var env envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode %s %s response: %v\nbody: %s", method, target, err, w.Body.String())
		}
	}
	return w, env
}

func decodeData(t *testing.T, env envelope, dst interface{}) {
	t.Helper()
	if err := json.Unmarshal(env.Data, dst); err != nil {
		t.Fatalf("decode data: %v\ndata: %s", err, env.Data)
	}
}

func TestNewHandler_RequiresDependencies(t *testing.T) {
	t.Parallel()

	mod, err := moderation.NewEngine(moderation.DefaultConfig())
	if err != nil {
		t.Fatalf("moderation.NewEngine: %v", err)
	}
	data := store.NewMemory()
	rec, err := recommend.NewOrchestrator(recommend.DefaultConfig(), recommend.DefaultTrendingConfig(), data)
	if err != nil {
		t.Fatalf("recommend.NewOrchestrator: %v", err)
	}

	tests := []struct {
		name string
		deps Deps
	}{
		{"no store", Deps{Moderation: mod, Recommend: rec}},
		{"no moderation", Deps{Store: data, Recommend: rec}},
		{"no recommend", Deps{Store: data, Moderation: mod}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := NewHandler(tt.deps); err == nil {
				t.Error("expected error")
			}
		})
	}

	h, err := NewHandler(Deps{Store: data, Moderation: mod, Recommend: rec})
	if err != nil {
		t.Fatalf("NewHandler: %v", err)
	}
	if h.maxBody != defaultMaxBody || h.timeout != defaultRequestTimeout || h.now == nil {
		t.Errorf("defaults not applied: maxBody=%d timeout=%v", h.maxBody, h.timeout)
	}
}

func TestHealthEndpoints(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)

	w, env := ts.do(t, http.MethodGet, "/api/v1/health/live", "")
	if w.Code != http.StatusOK || env.Status != "success" {
		t.Fatalf("live: got %d %s, want 200 success", w.Code, env.Status)
	}

	w, env = ts.do(t, http.MethodGet, "/api/v1/health/ready", "")
	if w.Code != http.StatusOK {
		t.Fatalf("ready: got %d, want 200", w.Code)
	}
	var ready map[string]interface{}
	decodeData(t, env, &ready)
	if ready["store_connected"] != true {
		t.Errorf("store_connected = %v, want true", ready["store_connected"])
	}

	w, env = ts.do(t, http.MethodGet, "/api/v1/health/performance", "")
	if w.Code != http.StatusOK {
		t.Fatalf("performance: got %d, want 200", w.Code)
	}
	var stats []middleware.EndpointStats
	decodeData(t, env, &stats)
	if len(stats) == 0 {
		t.Error("performance stats are empty after two requests")
	}
}

func TestHealthReady_StoreDown(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t, withStore(pingFailStore{Reader: store.NewMemory()}))

	w, env := ts.do(t, http.MethodGet, "/api/v1/health/ready", "")
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("got %d, want 503", w.Code)
	}
	if env.Status != "error" || env.Error == nil || env.Error.Code != ErrCodeNotReady {
		t.Errorf("envelope = %+v, want NOT_READY error", env)
	}
	if strings.Contains(w.Body.String(), "connection refused") {
		t.Error("store error leaked to the client")
	}
}

func TestModerate(t *testing.T) {
	t.Parallel()

	t.Run("flagged text is published", func(t *testing.T) {
		t.Parallel()
		ts := newTestServer(t)

		body := `{"text":"` + flaggedText + `","post_id":7,"author_id":12,"author_name":"fan_noor"}`
		w, env := ts.do(t, http.MethodPost, "/api/v1/moderation", body)
		if w.Code != http.StatusOK {
			t.Fatalf("got %d, want 200: %s", w.Code, w.Body.String())
		}
		var resp ModerationResponse
		decodeData(t, env, &resp)
		if !resp.Decision.ShouldFlag || resp.Decision.Severity != models.SeverityHigh {
			t.Errorf("decision = %+v, want flagged high", resp.Decision)
		}
		if resp.Decision.ShouldBlock {
			t.Error("should_block must be false")
		}
		if !resp.Notified {
			t.Error("notified = false, want true")
		}
		if ts.notifier.count() != 1 {
			t.Fatalf("notifier calls = %d, want 1", ts.notifier.count())
		}
		got := ts.notifier.calls[0]
		if got.PostID != 7 || got.AuthorID != 12 || got.AuthorName != "fan_noor" {
			t.Errorf("flag input = %+v", got)
		}
	})

	t.Run("clean text is not published", func(t *testing.T) {
		t.Parallel()
		ts := newTestServer(t)

		w, env := ts.do(t, http.MethodPost, "/api/v1/moderation/", `{"text":"have a lovely day"}`)
		if w.Code != http.StatusOK {
			t.Fatalf("got %d, want 200", w.Code)
		}
		var resp ModerationResponse
		decodeData(t, env, &resp)
		if resp.Decision.ShouldFlag || resp.Notified {
			t.Errorf("response = %+v, want unflagged", resp)
		}
		if ts.notifier.count() != 0 {
			t.Errorf("notifier calls = %d, want 0", ts.notifier.count())
		}
	})

	t.Run("publish failure keeps the decision", func(t *testing.T) {
		t.Parallel()
		for _, notifyErr := range []error{events.ErrThrottled, errors.New("broker down")} {
			ts := newTestServer(t)
			ts.notifier.err = notifyErr

			w, env := ts.do(t, http.MethodPost, "/api/v1/moderation", `{"text":"`+flaggedText+`"}`)
			if w.Code != http.StatusOK {
				t.Fatalf("%v: got %d, want 200", notifyErr, w.Code)
			}
			var resp ModerationResponse
			decodeData(t, env, &resp)
			if !resp.Decision.ShouldFlag || resp.Notified {
				t.Errorf("%v: response = %+v, want flagged and not notified", notifyErr, resp)
			}
		}
	})
}

func TestModerate_BadRequests(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		body       string
		maxBody    int64
		wantStatus int
		wantCode   string
	}{
		{"empty body", "", 0, http.StatusBadRequest, ErrCodeBadRequest},
		{"invalid json", `{"text":`, 0, http.StatusBadRequest, ErrCodeBadRequest},
		{"unknown field", `{"text":"hi","mood":"happy"}`, 0, http.StatusBadRequest, ErrCodeBadRequest},
		{"missing text", `{"post_id":1}`, 0, http.StatusBadRequest, ErrCodeValidation},
		{"negative post id", `{"text":"hi","post_id":-1}`, 0, http.StatusBadRequest, ErrCodeValidation},
		{"too large", `{"text":"` + strings.Repeat("a", 200) + `"}`, 64, http.StatusRequestEntityTooLarge, ErrCodeTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ts := newTestServer(t, withMaxBody(tt.maxBody))

			w, env := ts.do(t, http.MethodPost, "/api/v1/moderation", tt.body)
			if w.Code != tt.wantStatus {
				t.Fatalf("got %d, want %d: %s", w.Code, tt.wantStatus, w.Body.String())
			}
			if env.Error == nil || env.Error.Code != tt.wantCode {
				t.Errorf("error = %+v, want code %s", env.Error, tt.wantCode)
			}
		})
	}
}

func TestAnalyzeText(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	w, env := ts.do(t, http.MethodPost, "/api/v1/moderation/analyze", `{"text":"`+flaggedText+`"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("got %d, want 200", w.Code)
	}
	var sig models.ModerationSignal
	decodeData(t, env, &sig)
	if !sig.Toxicity.IsToxic || sig.Toxicity.TotalOccurrences != 6 {
		t.Errorf("toxicity = %+v, want toxic with 6 occurrences", sig.Toxicity)
	}
	if sig.Sentiment.Label != models.SentimentNegative {
		t.Errorf("sentiment = %s, want negative", sig.Sentiment.Label)
	}
	if ts.notifier.count() != 0 {
		t.Error("analysis must not publish flag events")
	}
}

func TestAnalyzeText_FailureReturnsNeutralSignal(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/moderation/analyze",
		strings.NewReader(`{"text":"`+flaggedText+`"}`)).WithContext(ctx)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	ts.handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("got %d, want 200: %s", w.Code, w.Body.String())
	}
	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if env.Error != nil {
		t.Errorf("error = %+v, want none", env.Error)
	}
	if !env.Metadata.Fallback {
		t.Error("Metadata.Fallback = false, want true")
	}
	var sig models.ModerationSignal
	decodeData(t, env, &sig)
	if sig.Toxicity.IsToxic || sig.Spam.IsSpam {
		t.Errorf("signal = %+v, want the neutral signal", sig)
	}
	if sig.Sentiment.Label != models.SentimentNeutral {
		t.Errorf("sentiment = %s, want neutral", sig.Sentiment.Label)
	}
}

func TestRecommendations(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)

	t.Run("all sections", func(t *testing.T) {
		w, env := ts.do(t, http.MethodGet, "/api/v1/actors/12/recommendations?limit=5", "")
		if w.Code != http.StatusOK {
			t.Fatalf("got %d, want 200: %s", w.Code, w.Body.String())
		}
		var resp RecommendationsResponse
		decodeData(t, env, &resp)
		if resp.ActorID != 12 || len(resp.Sections) != 7 {
			t.Fatalf("response = actor %d with %d sections, want 12 with 7", resp.ActorID, len(resp.Sections))
		}
		if resp.Sections[0].Type != "creators" {
			t.Errorf("first section = %s, want creators", resp.Sections[0].Type)
		}
	})

	t.Run("single type", func(t *testing.T) {
		w, env := ts.do(t, http.MethodGet, "/api/v1/actors/12/recommendations?type=event&limit=10", "")
		if w.Code != http.StatusOK {
			t.Fatalf("got %d, want 200", w.Code)
		}
		var res recommend.Result
		decodeData(t, env, &res)
		if res.Type != "events" || len(res.Items) != 2 {
			t.Fatalf("result = %+v, want two events", res)
		}
		if res.Items[0].CandidateID != 201 || res.Items[1].CandidateID != 202 {
			t.Errorf("events = %+v, want 201 then 202", res.Items)
		}
	})

	t.Run("sponsor gets empty posts", func(t *testing.T) {
		w, env := ts.do(t, http.MethodGet, "/api/v1/actors/20/recommendations?type=posts", "")
		if w.Code != http.StatusOK {
			t.Fatalf("got %d, want 200", w.Code)
		}
		var res recommend.Result
		decodeData(t, env, &res)
		if len(res.Items) != 0 {
			t.Errorf("items = %+v, want none", res.Items)
		}
	})

	tests := []struct {
		name       string
		target     string
		wantStatus int
		wantCode   string
	}{
		{"non-numeric id", "/api/v1/actors/abc/recommendations", http.StatusBadRequest, ErrCodeValidation},
		{"zero id", "/api/v1/actors/0/recommendations", http.StatusBadRequest, ErrCodeValidation},
		{"non-numeric limit", "/api/v1/actors/12/recommendations?limit=ten", http.StatusBadRequest, ErrCodeValidation},
		{"negative limit", "/api/v1/actors/12/recommendations?limit=-1", http.StatusBadRequest, ErrCodeValidation},
		{"unknown type", "/api/v1/actors/12/recommendations?type=songs", http.StatusBadRequest, ErrCodeValidation},
		{"unknown actor", "/api/v1/actors/999/recommendations", http.StatusNotFound, ErrCodeNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, env := ts.do(t, http.MethodGet, tt.target, "")
			if w.Code != tt.wantStatus {
				t.Fatalf("got %d, want %d: %s", w.Code, tt.wantStatus, w.Body.String())
			}
			if env.Error == nil || env.Error.Code != tt.wantCode {
				t.Errorf("error = %+v, want code %s", env.Error, tt.wantCode)
			}
		})
	}
}

func TestSimilarAndItemScore(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)

	w, env := ts.do(t, http.MethodGet, "/api/v1/actors/12/similar?limit=3", "")
	if w.Code != http.StatusOK {
		t.Fatalf("similar: got %d, want 200: %s", w.Code, w.Body.String())
	}
	var similar struct {
		ActorID int64                   `json:"actor_id"`
		Similar []models.CandidateScore `json:"similar"`
	}
	decodeData(t, env, &similar)
	if similar.ActorID != 12 || len(similar.Similar) > 3 {
		t.Errorf("similar = %+v", similar)
	}
	for _, s := range similar.Similar {
		if s.CandidateID == 12 {
			t.Error("actor is similar to itself")
		}
	}

	w, _ = ts.do(t, http.MethodGet, "/api/v1/actors/12/items/x/score", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad item id: got %d, want 400", w.Code)
	}
}

func TestTrending(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)

	w, env := ts.do(t, http.MethodGet, "/api/v1/trending/posts", "")
	if w.Code != http.StatusOK {
		t.Fatalf("posts: got %d, want 200", w.Code)
	}
	var posts []models.TrendingScore
	decodeData(t, env, &posts)
	if len(posts) == 0 || posts[0].ItemID != 100 {
		t.Errorf("trending posts = %+v, want 100 first", posts)
	}

	w, env = ts.do(t, http.MethodGet, "/api/v1/trending/hashtags?days=7&limit=2", "")
	if w.Code != http.StatusOK {
		t.Fatalf("hashtags: got %d, want 200", w.Code)
	}
	var tags []models.HashtagCount
	decodeData(t, env, &tags)
	if len(tags) != 2 || tags[0].Tag != "#music" || tags[1].Tag != "#gaming" {
		t.Errorf("trending hashtags = %+v, want #music then #gaming", tags)
	}

	w, _ = ts.do(t, http.MethodGet, "/api/v1/trending/posts?hours=10000", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("oversized window: got %d, want 400", w.Code)
	}
}

func TestSponsorMatches(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)

	w, env := ts.do(t, http.MethodPost, "/api/v1/creators/1/sponsors", `{"limit":10}`)
	if w.Code != http.StatusOK {
		t.Fatalf("stored sponsors: got %d, want 200: %s", w.Code, w.Body.String())
	}
	var resp struct {
		CreatorID int64                    `json:"creator_id"`
		Matches   []recommend.SponsorMatch `json:"matches"`
	}
	decodeData(t, env, &resp)
	if len(resp.Matches) != 2 || resp.Matches[0].SponsorID != 20 || resp.Matches[0].Score != 56 {
		t.Errorf("matches = %+v, want sponsor 20 first with 56", resp.Matches)
	}

	body := `{"sponsors":[{"id":50,"name":"Echo Labs","categories":["music"],"target_audience_size":10000}]}`
	w, env = ts.do(t, http.MethodPost, "/api/v1/creators/1/sponsors", body)
	if w.Code != http.StatusOK {
		t.Fatalf("candidate sponsors: got %d, want 200: %s", w.Code, w.Body.String())
	}
	decodeData(t, env, &resp)
	if len(resp.Matches) != 1 || resp.Matches[0].SponsorID != 50 || resp.Matches[0].Name != "Echo Labs" {
		t.Errorf("matches = %+v, want only Echo Labs", resp.Matches)
	}

	w, env = ts.do(t, http.MethodPost, "/api/v1/creators/1/sponsors", `{"sponsors":[{"id":0,"name":""}]}`)
	if w.Code != http.StatusBadRequest || env.Error == nil || env.Error.Code != ErrCodeValidation {
		t.Errorf("invalid sponsor: got %d %+v, want 400 VALIDATION_ERROR", w.Code, env.Error)
	}
}

func TestCreatorInsights(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)

	w, env := ts.do(t, http.MethodGet, "/api/v1/creators/1/collaborations/3", "")
	if w.Code != http.StatusOK {
		t.Fatalf("collaboration: got %d, want 200", w.Code)
	}
	var collab recommend.CollaborationReport
	decodeData(t, env, &collab)
	if collab.SharedAudience != 2 || len(collab.CategoryOverlap) != 1 || collab.CategoryOverlap[0] != "music" {
		t.Errorf("collaboration = %+v", collab)
	}

	w, _ = ts.do(t, http.MethodGet, "/api/v1/creators/1/collaborations/1", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("self collaboration: got %d, want 400", w.Code)
	}

	w, env = ts.do(t, http.MethodGet, "/api/v1/creators/1/influence", "")
	if w.Code != http.StatusOK {
		t.Fatalf("influence: got %d, want 200", w.Code)
	}
	var inf recommend.InfluenceReport
	decodeData(t, env, &inf)
	if inf.Score != 60 {
		t.Errorf("influence = %v, want 60", inf.Score)
	}

	w, _ = ts.do(t, http.MethodGet, "/api/v1/creators/10/influence", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("fan influence: got %d, want 400", w.Code)
	}

	w, env = ts.do(t, http.MethodGet, "/api/v1/fans/12/affinity/1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("affinity: got %d, want 200", w.Code)
	}
	var aff recommend.AffinityReport
	decodeData(t, env, &aff)
	if aff.Score != 47 || !aff.Follows {
		t.Errorf("affinity = %+v, want 47 and following", aff)
	}

	w, _ = ts.do(t, http.MethodGet, "/api/v1/fans/12/affinity/999", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown creator: got %d, want 404", w.Code)
	}
}

func TestPredictEngagement(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)

	t.Run("stored author", func(t *testing.T) {
		body := `{"text":"New track out tonight! #music #live #studio","has_media":true,"author_id":1}`
		w, env := ts.do(t, http.MethodPost, "/api/v1/engagement/predict", body)
		if w.Code != http.StatusOK {
			t.Fatalf("got %d, want 200: %s", w.Code, w.Body.String())
		}
		var resp EngagementResponse
		decodeData(t, env, &resp)
		if resp.Prediction.Score < 0 || resp.Prediction.Score > 100 {
			t.Errorf("score = %v, want within [0,100]", resp.Prediction.Score)
		}
		if resp.Hashtags.Total != 3 {
			t.Errorf("hashtags = %d, want 3", resp.Hashtags.Total)
		}
		if len(resp.PostingTimes) == 0 {
			t.Error("best posting times are empty")
		}
	})

	t.Run("explicit stats", func(t *testing.T) {
		body := `{"text":"hello","created_at":"2026-06-01T20:00:00Z","author":{"followers":5000,"avg_likes":120}}`
		w, env := ts.do(t, http.MethodPost, "/api/v1/engagement/predict", body)
		if w.Code != http.StatusOK {
			t.Fatalf("got %d, want 200: %s", w.Code, w.Body.String())
		}
		var resp EngagementResponse
		decodeData(t, env, &resp)
		if resp.Hashtags.Total != 0 {
			t.Errorf("hashtags = %d, want 0", resp.Hashtags.Total)
		}
		if len(resp.PostingTimes) != 3 || resp.PostingTimes[2].Score != 90 {
			t.Errorf("posting times = %+v, want the defaults", resp.PostingTimes)
		}
	})

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"sponsor author", `{"text":"hello","author_id":20}`, http.StatusBadRequest},
		{"unknown author", `{"text":"hello","author_id":999}`, http.StatusNotFound},
		{"missing text", `{"author_id":1}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, _ := ts.do(t, http.MethodPost, "/api/v1/engagement/predict", tt.body)
			if w.Code != tt.wantStatus {
				t.Errorf("got %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}

func TestSearch(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)

	w, env := ts.do(t, http.MethodGet, "/api/v1/search?q=ava&kind=actors&limit=5", "")
	if w.Code != http.StatusOK {
		t.Fatalf("got %d, want 200: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Query   string                  `json:"query"`
		Results []models.CandidateScore `json:"results"`
	}
	decodeData(t, env, &resp)
	if resp.Query != "ava" || len(resp.Results) == 0 || resp.Results[0].CandidateID != 1 {
		t.Errorf("search = %+v, want actor 1 first", resp)
	}

	w, env = ts.do(t, http.MethodGet, "/api/v1/search?q=%20%20", "")
	if w.Code != http.StatusBadRequest || env.Error == nil || env.Error.Code != ErrCodeValidation {
		t.Errorf("blank query: got %d %+v, want 400 VALIDATION_ERROR", w.Code, env.Error)
	}
}
