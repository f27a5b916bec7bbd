// NutriPlan - Diet and Meal Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nutriplan

// Package accounts registers users, checks logins and upserts profiles.
//
// User records are free-form documents keyed by email. Only email and
// password carry meaning here; name, weight, height, age, gender, activity
// and food preferences are stored as sent. Passwords are compared as
// stored; there is no hashing and no session state.
//
// Errors are *apperr.Error values: KindValidation for missing fields,
// KindConflict for a repeated registration and KindNotFound for a failed
// login.
package accounts
