// NutriPlan - Diet and Meal Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nutriplan

/*
Package middleware provides the HTTP middleware used by the API router.

All middleware has the chi signature func(http.Handler) http.Handler:

  - RequestID: propagates or generates X-Request-ID and seeds a correlation ID
  - PrometheusMetrics: request count, latency and in-flight gauge per route pattern
  - AccessLog: one zerolog entry per request, levelled by status code
  - Recoverer: converts panics into a JSON 500 response

The router applies them in this order:

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.AccessLog)
	r.Use(middleware.PrometheusMetrics)

RequestID runs first so every later log line carries request_id and
correlation_id.
*/
package middleware
