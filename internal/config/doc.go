// NutriPlan - Diet and Meal Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nutriplan

/*
Package config loads service configuration with Koanf.

Sources are layered, later ones winning:

 1. Built-in defaults (defaultConfig)
 2. A YAML file: CONFIG_PATH, or the first of DefaultConfigPaths that exists
 3. Environment variables, after a .env file has been loaded into the process

Environment variables use flat names (PORT, MONGO_URI, MEAL_MODE, ...) that are
mapped onto nested keys by envMappings. Empty variables are ignored. CORS_ORIGINS
is a comma-separated list.

Example config.yaml:

	server:
	  port: 5000
	store:
	  backend: badger
	  badger_path: /var/lib/nutriplan
	model:
	  backend: remote
	  url: http://model:8500/predict
	recommend:
	  meal_mode: shared

The typed sections convert into the option structs of the packages they
configure (StoreOptions, ModelOptions, CacheOptions, RecommendOptions,
LoggingOptions), so cmd/server never builds those by hand.
*/
package config
