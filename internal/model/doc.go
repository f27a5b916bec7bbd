// NutriPlan - Diet and Meal Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nutriplan

/*
Package model loads the trained meal classifier and serves predictions.

The classifier maps a four-value feature vector (weight, height, age, TDEE)
to a recipe label. Two backends are available:

  - forest: a decision-tree ensemble exported to JSON (sklearn tree arrays)
    and evaluated in-process. See Artifact for the file layout.
  - remote: an HTTP model server behind a circuit breaker.

Open builds the configured backend and layers the wrappers:

	forest|remote -> Instrumented -> Serialized (optional) -> Cached (optional)

# Per-slot prediction

An artifact may carry one classifier per meal slot under "slots". Such a
model implements SlotPredictor with SupportsSlots() == true and the
recommendation engine can ask it once per slot.

# Thread Safety

Forest is immutable after load and safe for concurrent Predict calls.
Remote is safe for concurrent use. Serialized exists for backends that
are not.
*/
package model
