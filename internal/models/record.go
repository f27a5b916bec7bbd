// NutriPlan - Diet and Meal Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nutriplan

package models

// AnonymousEmail is recorded when a recommendation request carries no email.
const AnonymousEmail = "anonymous"

// Collection names used by the record store.
const (
	CollectionRecommendations = "recommendations"
	CollectionUsers           = "users"
)

// RecommendationRecord is the append-only audit entry written once per
// /recommend call.
type RecommendationRecord struct {
	Email          string   `json:"email" bson:"email"`
	Weight         float64  `json:"weight" bson:"weight"`
	Height         float64  `json:"height" bson:"height"`
	Age            int      `json:"age" bson:"age"`
	Gender         string   `json:"gender" bson:"gender"`
	ActivityLevel  string   `json:"activity_level" bson:"activity_level"`
	Recommendation MealPlan `json:"recommendation" bson:"recommendation"`
}

// Fields returns the record as a plain document for storage backends that
// work on untyped maps.
func (r *RecommendationRecord) Fields() map[string]interface{} {
	email := r.Email
	if email == "" {
		email = AnonymousEmail
	}
	return map[string]interface{}{
		"email":          email,
		"weight":         r.Weight,
		"height":         r.Height,
		"age":            r.Age,
		"gender":         r.Gender,
		"activity_level": r.ActivityLevel,
		"recommendation": r.Recommendation.fields(),
	}
}

// Recommendation is the /recommend response body.
type Recommendation struct {
	TDEE  float64  `json:"tdee"`
	BMR   float64  `json:"bmr"`
	Meals MealPlan `json:"meals"`
}
