// NutriPlan - Diet and Meal Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nutriplan

package api

import (
	"context"
	"errors"
	"time"

	"github.com/tomtom215/nutriplan/internal/models"
	"github.com/tomtom215/nutriplan/internal/recommend"
	"github.com/tomtom215/nutriplan/internal/store"
)

// Recommender produces a recommendation for a decoded profile.
type Recommender interface {
	Recommend(ctx context.Context, p recommend.Profile) (*models.Recommendation, error)
}

// Accounts manages user records.
type Accounts interface {
	Register(ctx context.Context, user store.Document) (store.Document, error)
	Login(ctx context.Context, email, password string) (store.Document, error)
	UpdateProfile(ctx context.Context, profile store.Document) error
	List(ctx context.Context) ([]store.Document, error)
}

// HistoryReader lists stored recommendation records.
type HistoryReader interface {
	Find(ctx context.Context, filter store.Filter) ([]store.Document, error)
}

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Dependencies are the collaborators the handlers call.
type Dependencies struct {
	Recommender Recommender
	Accounts    Accounts
	History     HistoryReader
	Store       Pinger
}

// Handler contains dependencies for API handlers
//
// Handler methods are split across files:
//   - handler.go: Handler struct and constructor (this file)
//   - response.go: JSON encoding, decoding and error mapping
//   - handlers_recommend.go: /recommend and /history
//   - handlers_accounts.go: /users, /login, /register, /update_profile
//   - handlers_health.go: liveness and readiness probes
type Handler struct {
	recommender Recommender
	accounts    Accounts
	history     HistoryReader
	store       Pinger
	startTime   time.Time
}

// NewHandler validates deps and returns a Handler.
func NewHandler(deps Dependencies) (*Handler, error) {
	switch {
	case deps.Recommender == nil:
		return nil, errors.New("api: recommender is required")
	case deps.Accounts == nil:
		return nil, errors.New("api: accounts service is required")
	case deps.History == nil:
		return nil, errors.New("api: history reader is required")
	case deps.Store == nil:
		return nil, errors.New("api: store pinger is required")
	}

	return &Handler{
		recommender: deps.Recommender,
		accounts:    deps.Accounts,
		history:     deps.History,
		store:       deps.Store,
		startTime:   time.Now(),
	}, nil
}
