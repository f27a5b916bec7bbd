// NutriPlan - Diet and Meal Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nutriplan

/*
Package recommend turns a user's biometrics into a breakfast, lunch and
dinner recommendation.

# Pipeline

Engine.Recommend performs, in order:

 1. energy.Calculate for BMR and TDEE
 2. model prediction on [weight, height, age, tdee] (unrounded tdee)
 3. expansion of the label into three slots: "X (Breakfast)", "X (Lunch)",
    "X (Dinner)"
 4. image lookup for each full meal name
 5. an append-only record in the recommendations collection

The response carries tdee and bmr rounded to two decimals.

# Meal Modes

In MealModeShared one prediction feeds every slot, so all three meals share
a base recipe name. MealModePerSlot asks a model.SlotPredictor once per slot;
NewEngine rejects this mode when the model cannot do it.

# Persistence Failures

By default a store failure is logged, counted in
nutriplan_recommendation_persist_failures_total and the computed plan is
still returned. With Config.StrictPersistence the request fails with an
internal error instead.

# Errors

Errors are *apperr.Error values: KindValidation for unusable profiles and
KindInternal for model or strict persistence failures.
*/
package recommend
