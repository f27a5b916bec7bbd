// NutriPlan - Diet and Meal Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nutriplan

// Package energy computes basal metabolic rate and total daily energy
// expenditure from weight (kg), height (cm), age (years), gender and
// activity level.
//
//	est := energy.Calculate(70, 175, 30, "male", "moderate")
//	// est.BMR  == 1648.75
//	// est.TDEE == 2555.5625
//
// Unrecognized genders and activity levels never fail: they fall back to the
// non-male formula and the sedentary multiplier respectively.
package energy
