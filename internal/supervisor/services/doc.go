// NutriPlan - Diet and Meal Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nutriplan

// Package services provides suture.Service wrappers for the supervisor tree:
// HTTPServerService for the API server and StoreHealthService for periodic
// record store pings.
package services
