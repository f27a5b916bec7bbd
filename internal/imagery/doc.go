// NutriPlan - Diet and Meal Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nutriplan

/*
Package imagery attaches illustrative image URLs to recommended meals.

Resolution order for a recipe name and meal slot:

 1. Keyword match: the lowercased name is scanned against the catalog's
    keyword list in declared order; the first keyword found as a substring
    wins ("Grilled Chicken Salad" yields the salad image because salad is
    declared before chicken).
 2. Slot default: a uniformly random pick from the slot's default list.
 3. Generic fallback for unknown slots.

The catalog is immutable after construction. An operator may replace it with
a JSON file (see LoadCatalogFile); omitted sections keep the built-in values.

# Thread Safety

Resolver is safe for concurrent use. The random source is guarded by a mutex
and can be seeded for reproducible output.
*/
package imagery
