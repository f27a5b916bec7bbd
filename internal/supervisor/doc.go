// NutriPlan - Diet and Meal Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nutriplan

/*
Package supervisor runs the long-lived parts of the service under a
thejerf/suture v4 supervision tree.

	nutriplan (root)
	├── data-layer
	│   └── store-health   (services.StoreHealthService)
	└── api-layer
	    └── http-server    (services.HTTPServerService)

Services that return an error are restarted with suture's backoff. Events
(restarts, backoff, timeouts) are logged through sutureslog, which takes a
*slog.Logger; cmd/server passes logging.NewSlogLogger() so they end up in the
zerolog output.

Usage:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
	    ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	tree.AddDataService(services.NewStoreHealthService(st, 30*time.Second, logger))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	errCh := tree.ServeBackground(ctx)

Collaborators with explicit lifecycles (the record store and the model) are
opened before the tree starts and closed by cmd/server after it stops.
*/
package supervisor
