// NutriPlan - Diet and Meal Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nutriplan

package energy

import (
	"math"
	"strings"
)

// DefaultMultiplier applies to activity levels missing from the table.
const DefaultMultiplier = 1.2

// Activity levels understood by the multiplier table.
const (
	ActivitySedentary  = "sedentary"
	ActivityLight      = "light"
	ActivityModerate   = "moderate"
	ActivityActive     = "active"
	ActivityVeryActive = "very_active"
)

var multipliers = map[string]float64{
	ActivitySedentary:  1.2,
	ActivityLight:      1.375,
	ActivityModerate:   1.55,
	ActivityActive:     1.725,
	ActivityVeryActive: 1.9,
}

// Estimate is the derived energy expenditure for one profile, in kcal/day.
type Estimate struct {
	BMR  float64
	TDEE float64
}

// BMR returns the Mifflin-St Jeor basal metabolic rate. Only "male"
// (any case) takes the +5 branch; every other value takes -161.
func BMR(weight, height float64, age int, gender string) float64 {
	base := 10*weight + 6.25*height - 5*float64(age)
	if strings.EqualFold(gender, "male") {
		return base + 5
	}
	return base - 161
}

// Multiplier returns the TDEE multiplier for an activity level.
// Lookup is exact; unknown levels get DefaultMultiplier.
func Multiplier(activityLevel string) float64 {
	if m, ok := multipliers[activityLevel]; ok {
		return m
	}
	return DefaultMultiplier
}

// IsKnownActivityLevel reports whether level has its own multiplier.
func IsKnownActivityLevel(level string) bool {
	_, ok := multipliers[level]
	return ok
}

// ActivityLevels returns the known activity levels, least to most active.
func ActivityLevels() []string {
	return []string{ActivitySedentary, ActivityLight, ActivityModerate, ActivityActive, ActivityVeryActive}
}

// Calculate computes BMR and TDEE. It has no side effects and never fails.
func Calculate(weight, height float64, age int, gender, activityLevel string) Estimate {
	bmr := BMR(weight, height, age, gender)
	return Estimate{
		BMR:  bmr,
		TDEE: bmr * Multiplier(activityLevel),
	}
}

// Round2 rounds x to two decimals, halves away from zero.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}
