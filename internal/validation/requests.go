// NutriPlan - Diet and Meal Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nutriplan

package validation

// RecommendRequest is the POST /recommend body.
type RecommendRequest struct {
	Weight        *Number  `json:"weight" validate:"required,numeric_value"`
	Height        *Number  `json:"height" validate:"required,numeric_value"`
	Age           *Integer `json:"age" validate:"required,integer_value"`
	Gender        *string  `json:"gender" validate:"required"`
	ActivityLevel *string  `json:"activity_level" validate:"required"`
	Email         string   `json:"email"`
}

// LoginRequest is the POST /login body.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
