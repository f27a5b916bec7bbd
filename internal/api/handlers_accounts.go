// NutriPlan - Diet and Meal Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nutriplan

package api

import (
	"net/http"

	"github.com/tomtom215/nutriplan/internal/store"
	"github.com/tomtom215/nutriplan/internal/validation"
)

// UpdateProfileResponse is the /update_profile success body.
type UpdateProfileResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Users handles GET /users.
func (h *Handler) Users(w http.ResponseWriter, r *http.Request) {
	users, err := h.accounts.List(r.Context())
	if err != nil {
		respondAppError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, users)
}

// Login handles POST /login. A mismatch is a 401.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req validation.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.accounts.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondAppError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// Register handles POST /register. The body is stored as sent and echoed
// back; a second registration for the same email is a 409.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var user store.Document
	if !decodeJSON(w, r, &user) {
		return
	}

	stored, err := h.accounts.Register(r.Context(), user)
	if err != nil {
		respondAppError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, stored)
}

// UpdateProfile handles POST /update_profile. Fields are merged into the
// user with the same email, or a new user is created.
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var profile store.Document
	if !decodeJSON(w, r, &profile) {
		return
	}

	if err := h.accounts.UpdateProfile(r.Context(), profile); err != nil {
		respondAppError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, UpdateProfileResponse{
		Success: true,
		Message: "Profile updated successfully",
	})
}
