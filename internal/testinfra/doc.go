// NutriPlan - Diet and Meal Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nutriplan

// Package testinfra starts real MongoDB and Redis servers for integration
// tests through testcontainers-go.
//
// Everything here is behind the "integration" build tag:
//
//	go test -tags integration ./...
//
// Tests call SkipIfNoDocker first so they are skipped on machines without
// a Docker daemon.
//
//	func TestMongoStore(t *testing.T) {
//	    testinfra.SkipIfNoDocker(t)
//	    ctx := context.Background()
//	    mongo, err := testinfra.NewMongoContainer(ctx)
//	    if err != nil {
//	        t.Fatal(err)
//	    }
//	    defer testinfra.CleanupContainer(t, ctx, mongo)
//	    // connect to mongo.URI
//	}
//
// The first run downloads images; later runs use the local cache.
package testinfra
