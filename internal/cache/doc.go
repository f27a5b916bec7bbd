// NutriPlan - Diet and Meal Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nutriplan

/*
Package cache provides the small key/value caches used to memoize model
predictions.

Two backends implement Store:

  - LRU: in-process, bounded, per-entry TTL. Suitable for a single replica.
  - Redis: shared across replicas through github.com/redis/go-redis/v9.

New selects a backend from Config; "none" returns a nil Store and callers
skip caching entirely.

# Thread Safety

Both backends are safe for concurrent use.
*/
package cache
