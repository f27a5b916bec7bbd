// NutriPlan - Diet and Meal Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nutriplan

/*
Package models defines the data structures shared between the recommendation
pipeline, the record store and the HTTP API.

  - Slot: breakfast, lunch or dinner
  - Meal / MealPlan: one named, illustrated dish per slot
  - RecommendationRecord: the append-only entry persisted per request
  - Recommendation: the /recommend response body

User records are free-form documents (see the store package) because
/register and /update_profile persist whatever fields the client sends.
*/
package models
