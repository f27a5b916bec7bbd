// NutriPlan - Diet and Meal Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nutriplan

/*
Package metrics defines the Prometheus metrics exported at /metrics.

All collectors are registered on the default registry through promauto and
are safe for concurrent use.

# Available Metrics

HTTP:
  - nutriplan_api_requests_total{method,endpoint,status_code}
  - nutriplan_api_request_duration_seconds{method,endpoint}
  - nutriplan_api_active_requests

Recommendations:
  - nutriplan_recommendations_total{meal_mode,result}
  - nutriplan_recommendation_duration_seconds
  - nutriplan_recommendation_persist_failures_total

Model:
  - nutriplan_model_predictions_total{backend,result}
  - nutriplan_model_prediction_duration_seconds{backend}
  - nutriplan_prediction_cache_{hits,misses,errors}_total

Store and accounts:
  - nutriplan_store_operation_duration_seconds{backend,collection,operation}
  - nutriplan_store_operation_errors_total{backend,collection,operation}
  - nutriplan_account_operations_total{operation,result}

Circuit breaker (remote model):
  - nutriplan_circuit_breaker_state{name}
  - nutriplan_circuit_breaker_requests_total{name,result}
  - nutriplan_circuit_breaker_state_transitions_total{name,from_state,to_state}
*/
package metrics
