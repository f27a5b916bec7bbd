// NutriPlan - Diet and Meal Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nutriplan

/*
Package api is the HTTP boundary of the service.

Routes (JSON in and out):

	POST /recommend        energy estimate plus a three-meal plan
	GET  /history          every stored recommendation record
	GET  /users            every user record
	POST /login            user record for matching email and password
	POST /register         creates a user record
	POST /update_profile   merges into or creates a user record
	GET  /health/live      process liveness
	GET  /health/ready     store reachability
	GET  /metrics          Prometheus exposition (when enabled)

Errors use the envelope {"error": "<message>"}. The status code comes from
the apperr kind:

	KindValidation  400
	KindNotFound    401 (only /login produces it)
	KindConflict    409
	KindInternal    500 with a generic message; the cause is logged

A body that is not valid JSON is a 400.

Handlers depend on small interfaces (Recommender, Accounts, HistoryReader,
Pinger) so tests can substitute hand-written fakes.
*/
package api
