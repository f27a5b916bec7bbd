// NutriPlan - Diet and Meal Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nutriplan

/*
Package store persists recommendation records and user profiles as
schemaless documents.

Three backends implement Store:

  - Memory: process-local, used by tests and throwaway servers.
  - Badger: embedded BadgerDB. Keys carry a per-collection sequence so
    scans return documents in insertion order.
  - Mongo: MongoDB through go.mongodb.org/mongo-driver. The default
    database is "diet_recommendation".

Open selects a backend and wraps it in Instrumented, which reports
operation latency and errors to Prometheus.

# Documents

Documents are plain maps. The backend identifier (IDField) is stripped
from everything a Collection returns. Filters are equality matches on
top-level fields; numeric values compare by value regardless of Go type.

# Uniqueness

Config.UniqueFields names one field per collection that may not repeat.
Violations surface as ErrDuplicate from InsertOne and UpdateOne.
*/
package store
