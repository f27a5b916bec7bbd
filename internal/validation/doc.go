// NutriPlan - Diet and Meal Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nutriplan

// Package validation checks decoded request bodies with go-playground/validator v10.
//
// # Overview
//
// The package provides:
//   - Thread-safe singleton validator (initialized once, cached struct info)
//   - Field names taken from json tags, so messages read "weight is required"
//   - Number, a field type accepting 70, 70.5 or "70.5"
//   - Integer, a field type accepting 30, 30.9 (truncated) or "30"
//   - Conversion to *apperr.Error with KindValidation
//
// # Request Types
//
//	var req validation.RecommendRequest
//	if err := json.Unmarshal(body, &req); err != nil {
//	    // malformed JSON
//	}
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    return verr.AppError("api.recommend")
//	}
//
// A Number that does not parse fails the numeric_value tag with
// "<field> must be a number". An Integer given a non-integral string or a
// value outside the int32 range fails integer_value with
// "<field> must be an integer".
package validation
