// NutriPlan - Diet and Meal Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nutriplan

package recommend

import (
	"math"

	"github.com/tomtom215/nutriplan/internal/apperr"
	"github.com/tomtom215/nutriplan/internal/model"
	"github.com/tomtom215/nutriplan/internal/models"
)

// Profile is the decoded input of one recommendation.
type Profile struct {
	Email         string
	Weight        float64
	Height        float64
	Age           int
	Gender        string
	ActivityLevel string
}

// Validate rejects values no numeric parse should have produced.
// Presence checks happen while decoding the request.
func (p *Profile) Validate() error {
	const op = "recommend.validate"

	if !finite(p.Weight) {
		return apperr.Validation(op, "weight must be a finite number")
	}
	if !finite(p.Height) {
		return apperr.Validation(op, "height must be a finite number")
	}
	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// features builds the model input. tdee is the unrounded estimate.
func (p *Profile) features(tdee float64) model.Features {
	return model.Features{
		Weight: p.Weight,
		Height: p.Height,
		Age:    float64(p.Age),
		TDEE:   tdee,
	}
}

// record converts the profile and its plan into the audit entry.
func (p *Profile) record(plan models.MealPlan) *models.RecommendationRecord {
	return &models.RecommendationRecord{
		Email:          p.Email,
		Weight:         p.Weight,
		Height:         p.Height,
		Age:            p.Age,
		Gender:         p.Gender,
		ActivityLevel:  p.ActivityLevel,
		Recommendation: plan,
	}
}
