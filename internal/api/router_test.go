// NutriPlan - Diet and Meal Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nutriplan

package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/nutriplan/internal/accounts"
	"github.com/tomtom215/nutriplan/internal/apperr"
	"github.com/tomtom215/nutriplan/internal/models"
	"github.com/tomtom215/nutriplan/internal/store"
)

func TestRouter_CORSPreflight(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodOptions, "/recommend", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	env.server.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("preflight status = %d, want 200", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want *", got)
	}
	if got := rec.Header().Get("Access-Control-Allow-Methods"); !strings.Contains(got, http.MethodPost) {
		t.Errorf("Access-Control-Allow-Methods = %q", got)
	}
}

func TestRouter_CORSRestrictedOrigins(t *testing.T) {
	mem := store.NewMemory(nil)
	h, err := NewHandler(Dependencies{
		Recommender: &failingRecommender{},
		Accounts:    accounts.NewService(mem.Collection(models.CollectionUsers), zerolog.Nop()),
		History:     mem.Collection(models.CollectionRecommendations),
		Store:       mem,
	})
	if err != nil {
		t.Fatalf("NewHandler: %v", err)
	}
	server := NewRouter(h, RouterConfig{CORSOrigins: []string{"https://app.example.com"}}).Setup()

	tests := []struct {
		origin string
		want   string
	}{
		{"https://app.example.com", "https://app.example.com"},
		{"https://evil.example.com", ""},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/users", nil)
		req.Header.Set("Origin", tt.origin)
		rec := httptest.NewRecorder()
		server.ServeHTTP(rec, req)

		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.want {
			t.Errorf("origin %s: Access-Control-Allow-Origin = %q, want %q", tt.origin, got, tt.want)
		}
	}
}

func TestRouter_RequestIDHeader(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/users", "")
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("missing X-Request-ID response header")
	}
}

func TestRouter_NotFoundAndMethod(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		method, path string
		want         int
	}{
		{http.MethodGet, "/nope", http.StatusNotFound},
		{http.MethodGet, "/recommend", http.StatusMethodNotAllowed},
		{http.MethodPost, "/users", http.StatusMethodNotAllowed},
	}
	for _, tt := range tests {
		rec := env.do(t, tt.method, tt.path, "")
		if rec.Code != tt.want {
			t.Errorf("%s %s = %d, want %d", tt.method, tt.path, rec.Code, tt.want)
		}
		if errorMessage(t, rec) == "" {
			t.Errorf("%s %s: missing error envelope", tt.method, tt.path)
		}
	}
}

func TestRouter_Metrics(t *testing.T) {
	mem := store.NewMemory(nil)
	h, err := NewHandler(Dependencies{
		Recommender: &failingRecommender{},
		Accounts:    accounts.NewService(mem.Collection(models.CollectionUsers), zerolog.Nop()),
		History:     mem.Collection(models.CollectionRecommendations),
		Store:       mem,
	})
	if err != nil {
		t.Fatalf("NewHandler: %v", err)
	}

	enabled := NewRouter(h, RouterConfig{MetricsEnabled: true}).Setup()
	enabled.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/users", nil))

	rec := httptest.NewRecorder()
	enabled.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("/metrics status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "nutriplan_api_requests_total") {
		t.Error("/metrics does not expose API request counters")
	}

	disabled := NewRouter(h, RouterConfig{}).Setup()
	rec = httptest.NewRecorder()
	disabled.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("/metrics with metrics disabled = %d, want 404", rec.Code)
	}
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/health/live", "")
	var live HealthStatus
	decodeBody(t, rec, &live)
	if rec.Code != http.StatusOK || live.Status != "alive" {
		t.Errorf("live = %d %+v", rec.Code, live)
	}

	rec = env.do(t, http.MethodGet, "/health/ready", "")
	var ready HealthStatus
	decodeBody(t, rec, &ready)
	if rec.Code != http.StatusOK || ready.Status != "ready" || ready.Store != "ok" {
		t.Errorf("ready = %d %+v", rec.Code, ready)
	}

	_ = env.store.Close(context.Background())
	rec = env.do(t, http.MethodGet, "/health/ready", "")
	decodeBody(t, rec, &ready)
	if rec.Code != http.StatusServiceUnavailable || ready.Status != "not_ready" {
		t.Errorf("ready after close = %d %+v", rec.Code, ready)
	}
}

func TestHealthReady_PingFailure(t *testing.T) {
	mem := store.NewMemory(nil)
	h, err := NewHandler(Dependencies{
		Recommender: &failingRecommender{},
		Accounts:    accounts.NewService(mem.Collection(models.CollectionUsers), zerolog.Nop()),
		History:     mem.Collection(models.CollectionRecommendations),
		Store:       &failingStore{err: errors.New("no reachable servers")},
	})
	if err != nil {
		t.Fatalf("NewHandler: %v", err)
	}

	rec := httptest.NewRecorder()
	h.HealthReady(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "reachable") {
		t.Errorf("ping error leaked: %s", rec.Body.String())
	}
}

func TestRespondAppError_StatusMapping(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		want    int
		wantMsg string
	}{
		{"validation", apperr.Validation("op", "weight is required"), http.StatusBadRequest, "weight is required"},
		{"not found", apperr.NotFound("op", "Invalid credentials"), http.StatusUnauthorized, "Invalid credentials"},
		{"conflict", apperr.Conflict("op", "exists"), http.StatusConflict, "exists"},
		{"internal", apperr.Internal("op", errors.New("disk full")), http.StatusInternalServerError, msgInternalError},
		{"unclassified", errors.New("boom"), http.StatusInternalServerError, msgInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			respondAppError(rec, httptest.NewRequest(http.MethodGet, "/", nil), tt.err)

			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
			if msg := errorMessage(t, rec); msg != tt.wantMsg {
				t.Errorf("error = %q, want %q", msg, tt.wantMsg)
			}
		})
	}
}
