// NutriPlan - Diet and Meal Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nutriplan

package api

import (
	"net/http"

	"github.com/tomtom215/nutriplan/internal/apperr"
	"github.com/tomtom215/nutriplan/internal/recommend"
	"github.com/tomtom215/nutriplan/internal/store"
	"github.com/tomtom215/nutriplan/internal/validation"
)

// Recommend handles POST /recommend.
//
// Body: {"weight", "height", "age", "gender", "activity_level", "email"?}.
// Numeric fields may be JSON numbers or numeric strings.
// Returns {"tdee", "bmr", "meals": {"breakfast", "lunch", "dinner"}}.
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	const op = "api.recommend"

	var req validation.RecommendRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondAppError(w, r, verr.AppError(op))
		return
	}

	rec, err := h.recommender.Recommend(r.Context(), profileFromRequest(&req))
	if err != nil {
		respondAppError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, rec)
}

func profileFromRequest(req *validation.RecommendRequest) recommend.Profile {
	return recommend.Profile{
		Email:         req.Email,
		Weight:        req.Weight.Float64(),
		Height:        req.Height.Float64(),
		Age:           req.Age.Int(),
		Gender:        *req.Gender,
		ActivityLevel: *req.ActivityLevel,
	}
}

// History handles GET /history. Records are returned in insertion order.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	records, err := h.history.Find(r.Context(), store.Filter{})
	if err != nil {
		respondAppError(w, r, apperr.Internal("api.history", err))
		return
	}
	respondJSON(w, http.StatusOK, records)
}
