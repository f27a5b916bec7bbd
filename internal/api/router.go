// NutriPlan - Diet and Meal Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nutriplan

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/nutriplan/internal/middleware"
)

// RouterConfig controls the outer HTTP surface.
type RouterConfig struct {
	// CORSOrigins lists allowed origins. "*" allows any.
	CORSOrigins []string

	// MetricsEnabled mounts GET /metrics.
	MetricsEnabled bool
}

// Router wires handlers into a chi mux.
type Router struct {
	handler *Handler
	config  RouterConfig
}

// NewRouter creates a new router.
func NewRouter(handler *Handler, cfg RouterConfig) *Router {
	if len(cfg.CORSOrigins) == 0 {
		cfg.CORSOrigins = []string{"*"}
	}
	return &Router{handler: handler, config: cfg}
}

// corsHandler allows GET, POST and OPTIONS from the configured origins.
func (router *Router) corsHandler() func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: router.config.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader},
		MaxAge:         300,
	})
}

// Setup configures all HTTP routes.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Applied to all routes, in order.
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(router.corsHandler()) // global so OPTIONS preflight is answered
	r.Use(middleware.AccessLog)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
	})

	if router.config.MetricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	r.Group(func(r chi.Router) {
		r.Use(middleware.PrometheusMetrics)
		r.Use(chimiddleware.Compress(5, "application/json"))

		r.Post("/recommend", router.handler.Recommend)
		r.Get("/history", router.handler.History)

		r.Get("/users", router.handler.Users)
		r.Post("/login", router.handler.Login)
		r.Post("/register", router.handler.Register)
		r.Post("/update_profile", router.handler.UpdateProfile)
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		respondError(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	return r
}
