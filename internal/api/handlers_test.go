// NutriPlan - Diet and Meal Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nutriplan

package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/nutriplan/internal/accounts"
	"github.com/tomtom215/nutriplan/internal/apperr"
	"github.com/tomtom215/nutriplan/internal/imagery"
	"github.com/tomtom215/nutriplan/internal/model"
	"github.com/tomtom215/nutriplan/internal/models"
	"github.com/tomtom215/nutriplan/internal/recommend"
	"github.com/tomtom215/nutriplan/internal/store"
)

// stubPredictor always predicts the same label.
type stubPredictor struct {
	label string
	err   error
}

func (p *stubPredictor) Predict(context.Context, model.Features) (string, error) {
	return p.label, p.err
}

// failingRecommender returns err from every call.
type failingRecommender struct{ err error }

func (f *failingRecommender) Recommend(context.Context, recommend.Profile) (*models.Recommendation, error) {
	return nil, f.err
}

// failingStore fails every read and ping.
type failingStore struct{ err error }

func (f *failingStore) Find(context.Context, store.Filter) ([]store.Document, error) {
	return nil, f.err
}

func (f *failingStore) Ping(context.Context) error { return f.err }

type testEnv struct {
	store  *store.Memory
	server http.Handler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	mem := store.NewMemory(map[string]string{models.CollectionUsers: "email"})
	t.Cleanup(func() { _ = mem.Close(context.Background()) })

	resolver, err := imagery.NewResolver(imagery.DefaultCatalog(), 1)
	if err != nil {
		t.Fatalf("NewResolver: %v", err)
	}

	engine, err := recommend.NewEngine(recommend.DefaultConfig(), &stubPredictor{label: "Grilled Chicken Salad"},
		resolver, mem.Collection(models.CollectionRecommendations), zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	h, err := NewHandler(Dependencies{
		Recommender: engine,
		Accounts:    accounts.NewService(mem.Collection(models.CollectionUsers), zerolog.Nop()),
		History:     mem.Collection(models.CollectionRecommendations),
		Store:       mem,
	})
	if err != nil {
		t.Fatalf("NewHandler: %v", err)
	}

	return &testEnv{store: mem, server: NewRouter(h, RouterConfig{}).Setup()}
}

func (e *testEnv) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e.server.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body ErrorResponse
	decodeBody(t, rec, &body)
	return body.Error
}

const validRecommendBody = `{"weight":70,"height":175,"age":30,"gender":"male","activity_level":"moderate","email":"a@x.com"}`

func TestRecommend_Success(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/recommend", validRecommendBody)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}

	var got models.Recommendation
	decodeBody(t, rec, &got)

	if got.TDEE != 2555.56 {
		t.Errorf("tdee = %v, want 2555.56", got.TDEE)
	}
	if got.BMR != 1648.75 {
		t.Errorf("bmr = %v, want 1648.75", got.BMR)
	}
	if got.Meals.Lunch.Name != "Grilled Chicken Salad (Lunch)" {
		t.Errorf("lunch = %q", got.Meals.Lunch.Name)
	}
	for _, slot := range models.Slots() {
		meal, _ := got.Meals.Get(slot)
		if meal.Name == "" || meal.Image == "" {
			t.Errorf("%s meal incomplete: %+v", slot, meal)
		}
	}

	history := env.do(t, http.MethodGet, "/history", "")
	var records []map[string]interface{}
	decodeBody(t, history, &records)
	if len(records) != 1 {
		t.Fatalf("history has %d records, want 1", len(records))
	}
	if records[0]["email"] != "a@x.com" {
		t.Errorf("record email = %v", records[0]["email"])
	}
	if _, ok := records[0][store.IDField]; ok {
		t.Error("history exposed the identifier field")
	}
}

func TestRecommend_NumericStrings(t *testing.T) {
	env := newTestEnv(t)

	body := `{"weight":"70","height":"175","age":"30","gender":"female","activity_level":"unknown"}`
	rec := env.do(t, http.MethodPost, "/recommend", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var got models.Recommendation
	decodeBody(t, rec, &got)
	if got.BMR != 1482.75 || got.TDEE != 1779.3 {
		t.Errorf("bmr/tdee = %v/%v, want 1482.75/1779.3", got.BMR, got.TDEE)
	}

	history := env.do(t, http.MethodGet, "/history", "")
	var records []map[string]interface{}
	decodeBody(t, history, &records)
	if len(records) != 1 || records[0]["email"] != models.AnonymousEmail {
		t.Errorf("records = %v, want one anonymous record", records)
	}
}

func TestRecommend_BadRequests(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{name: "malformed json", body: `{"weight":`, wantMsg: msgInvalidJSON},
		{name: "empty body", body: "", wantMsg: msgInvalidJSON},
		{name: "array body", body: `[1,2]`, wantMsg: msgInvalidJSON},
		{
			name:    "missing weight",
			body:    `{"height":175,"age":30,"gender":"male","activity_level":"moderate"}`,
			wantMsg: "weight is required",
		},
		{
			name:    "non-numeric age",
			body:    `{"weight":70,"height":175,"age":"old","gender":"male","activity_level":"moderate"}`,
			wantMsg: "age must be an integer",
		},
		{
			name:    "fractional age string",
			body:    `{"weight":70,"height":175,"age":"30.9","gender":"male","activity_level":"moderate"}`,
			wantMsg: "age must be an integer",
		},
		{
			name:    "overflowing age",
			body:    `{"weight":70,"height":175,"age":1e30,"gender":"male","activity_level":"moderate"}`,
			wantMsg: "age must be an integer",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)

			rec := env.do(t, http.MethodPost, "/recommend", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400; body = %s", rec.Code, rec.Body.String())
			}
			if msg := errorMessage(t, rec); msg != tt.wantMsg {
				t.Errorf("error = %q, want %q", msg, tt.wantMsg)
			}

			history := env.do(t, http.MethodGet, "/history", "")
			if strings.TrimSpace(history.Body.String()) != "[]" {
				t.Errorf("history = %s, want [] after a rejected request", history.Body.String())
			}
		})
	}
}

func TestRecommend_InternalErrorIsGeneric(t *testing.T) {
	mem := store.NewMemory(nil)
	h, err := NewHandler(Dependencies{
		Recommender: &failingRecommender{err: apperr.Internal("recommend", errors.New("model exploded at /srv/model.json"))},
		Accounts:    accounts.NewService(mem.Collection(models.CollectionUsers), zerolog.Nop()),
		History:     mem.Collection(models.CollectionRecommendations),
		Store:       mem,
	})
	if err != nil {
		t.Fatalf("NewHandler: %v", err)
	}
	server := NewRouter(h, RouterConfig{}).Setup()

	req := httptest.NewRequest(http.MethodPost, "/recommend", strings.NewReader(validRecommendBody))
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if msg := errorMessage(t, rec); msg != msgInternalError {
		t.Errorf("error = %q, want the generic message", msg)
	}
}

func TestHistory_StoreFailure(t *testing.T) {
	mem := store.NewMemory(nil)
	h, err := NewHandler(Dependencies{
		Recommender: &failingRecommender{},
		Accounts:    accounts.NewService(mem.Collection(models.CollectionUsers), zerolog.Nop()),
		History:     &failingStore{err: errors.New("connection refused")},
		Store:       mem,
	})
	if err != nil {
		t.Fatalf("NewHandler: %v", err)
	}

	rec := httptest.NewRecorder()
	NewRouter(h, RouterConfig{}).Setup().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/history", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if msg := errorMessage(t, rec); strings.Contains(msg, "refused") {
		t.Errorf("internal cause leaked: %q", msg)
	}
}

func TestAccounts_Flow(t *testing.T) {
	env := newTestEnv(t)

	steps := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
		wantError  string
	}{
		{"register", http.MethodPost, "/register", `{"email":"a@x.com","password":"p","name":"Ann"}`, http.StatusOK, ""},
		{"register again", http.MethodPost, "/register", `{"email":"a@x.com","password":"q"}`, http.StatusConflict, "User with this email already exists"},
		{"register missing password", http.MethodPost, "/register", `{"email":"b@x.com"}`, http.StatusBadRequest, "Email and password are required"},
		{"login", http.MethodPost, "/login", `{"email":"a@x.com","password":"p"}`, http.StatusOK, ""},
		{"login wrong password", http.MethodPost, "/login", `{"email":"a@x.com","password":"nope"}`, http.StatusUnauthorized, "Invalid credentials"},
		{"login missing fields", http.MethodPost, "/login", `{}`, http.StatusBadRequest, "Email and password are required"},
		{"login malformed", http.MethodPost, "/login", `{"email":`, http.StatusBadRequest, msgInvalidJSON},
		{"update existing", http.MethodPost, "/update_profile", `{"email":"a@x.com","weight":72}`, http.StatusOK, ""},
		{"update new", http.MethodPost, "/update_profile", `{"email":"c@x.com","goal":"lose"}`, http.StatusOK, ""},
		{"update missing email", http.MethodPost, "/update_profile", `{"weight":72}`, http.StatusBadRequest, "Email is required"},
	}

	for _, step := range steps {
		rec := env.do(t, step.method, step.path, step.body)
		if rec.Code != step.wantStatus {
			t.Fatalf("%s: status = %d, want %d; body = %s", step.name, rec.Code, step.wantStatus, rec.Body.String())
		}
		if step.wantError != "" {
			if msg := errorMessage(t, rec); msg != step.wantError {
				t.Errorf("%s: error = %q, want %q", step.name, msg, step.wantError)
			}
		}
	}

	rec := env.do(t, http.MethodGet, "/users", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("/users status = %d", rec.Code)
	}
	var users []map[string]interface{}
	decodeBody(t, rec, &users)
	if len(users) != 2 {
		t.Fatalf("got %d users, want 2: %v", len(users), users)
	}
	first := users[0]
	if first["name"] != "Ann" || first["weight"] != float64(72) || first["password"] != "p" {
		t.Errorf("merged user = %v", first)
	}
	if users[1]["goal"] != "lose" {
		t.Errorf("inserted user = %v", users[1])
	}
	for _, u := range users {
		if _, ok := u[store.IDField]; ok {
			t.Errorf("user exposes identifier: %v", u)
		}
	}
}

func TestRegister_EchoesBody(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/register", `{"email":"a@x.com","password":"p","age":30}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var got map[string]interface{}
	decodeBody(t, rec, &got)
	if got["email"] != "a@x.com" || got["age"] != float64(30) {
		t.Errorf("register response = %v", got)
	}
}

func TestUpdateProfile_ResponseBody(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/update_profile", `{"email":"a@x.com"}`)
	var got UpdateProfileResponse
	decodeBody(t, rec, &got)
	if !got.Success || got.Message != "Profile updated successfully" {
		t.Errorf("response = %+v", got)
	}
}

func TestNewHandler_RequiresDependencies(t *testing.T) {
	mem := store.NewMemory(nil)
	full := Dependencies{
		Recommender: &failingRecommender{},
		Accounts:    accounts.NewService(mem.Collection(models.CollectionUsers), zerolog.Nop()),
		History:     mem.Collection(models.CollectionRecommendations),
		Store:       mem,
	}

	tests := []struct {
		name   string
		mutate func(*Dependencies)
	}{
		{"recommender", func(d *Dependencies) { d.Recommender = nil }},
		{"accounts", func(d *Dependencies) { d.Accounts = nil }},
		{"history", func(d *Dependencies) { d.History = nil }},
		{"store", func(d *Dependencies) { d.Store = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps := full
			tt.mutate(&deps)
			if _, err := NewHandler(deps); err == nil {
				t.Error("NewHandler() expected error")
			}
		})
	}
}
