// NutriPlan - Diet and Meal Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nutriplan

// Package logging configures the process-wide zerolog logger.
//
// # Quick Start
//
//	logging.Init(logging.Config{Level: "debug", Format: "console"})
//	logging.Info().Str("addr", ":5000").Msg("HTTP server listening")
//
// Components derive their own logger once and keep it:
//
//	logger := logging.WithComponent("store")
//
// # Request Context
//
// The RequestID middleware stores a request ID in the request context.
// Ctx returns a logger that adds it (and any correlation ID) to every entry:
//
//	logging.Ctx(r.Context()).Warn().Err(err).Msg("Failed to store record")
//
// # slog Bridge
//
// SlogHandler forwards log/slog records to zerolog. The supervisor passes
// NewSlogLogger to sutureslog so restarts and failures land in the same
// JSON stream.
//
// # Configuration
//
// LOG_LEVEL, LOG_FORMAT and LOG_CALLER are read by internal/config and
// passed to Init.
package logging
