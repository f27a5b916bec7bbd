// NutriPlan - Diet and Meal Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nutriplan

// Package main is the entry point for the NutriPlan server.
//
// NutriPlan estimates a person's daily energy expenditure (Mifflin-St Jeor BMR
// times an activity multiplier), asks a trained classifier for a recipe, and
// returns a breakfast/lunch/dinner plan with illustrative images. Every
// recommendation is recorded, and a small user record API sits alongside.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: defaults, config.yaml and environment variables (Koanf v2)
//  2. Logging: zerolog with the configured level and format
//  3. Record store: MongoDB, BadgerDB or in-memory
//  4. Prediction cache: in-process LRU, Redis, or none
//  5. Model: forest artifact or remote endpoint, wrapped with the cache
//  6. Image catalog and resolver
//  7. Recommendation engine and account service
//  8. HTTP router (chi) under a suture supervisor tree
//
// # Configuration
//
// The most common settings:
//
//	PORT=5000
//	STORE_BACKEND=mongo            # mongo, badger or memory
//	MONGO_URI=mongodb://localhost:27017
//	MODEL_BACKEND=forest           # forest or remote
//	MODEL_PATH=model/diet_model.json
//	MEAL_MODE=shared               # shared or per_slot
//	CACHE_BACKEND=lru              # none, lru or redis
//
// See internal/config for the full list.
//
// # Signal Handling
//
// SIGINT and SIGTERM stop the supervisor tree. The HTTP server drains
// in-flight requests for SHUTDOWN_TIMEOUT, then the model and the record
// store are closed.
//
// # Example Usage
//
// Self-contained, with records on local disk:
//
//	export STORE_BACKEND=badger
//	export BADGER_PATH=/var/lib/nutriplan
//	./nutriplan
//
// Docker with MongoDB and a model server:
//
//	docker run -d \
//	  -e MONGO_URI=mongodb://mongo:27017 \
//	  -e MODEL_BACKEND=remote \
//	  -e MODEL_URL=http://model:8500/predict \
//	  -p 5000:5000 \
//	  ghcr.io/tomtom215/nutriplan
package main
