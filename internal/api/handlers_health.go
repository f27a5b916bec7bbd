// NutriPlan - Diet and Meal Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nutriplan

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/nutriplan/internal/logging"
)

// readinessTimeout bounds the store ping behind /health/ready.
const readinessTimeout = 2 * time.Second

// HealthStatus is the body of both probes.
type HealthStatus struct {
	Status string  `json:"status"`
	Uptime float64 `json:"uptime_seconds"`
	Store  string  `json:"store,omitempty"`
}

// HealthLive returns 200 while the process is running, regardless of
// dependencies.
func (h *Handler) HealthLive(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, HealthStatus{
		Status: "alive",
		Uptime: time.Since(h.startTime).Seconds(),
	})
}

// HealthReady returns 200 when the record store answers a ping, 503 otherwise.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()

	status := HealthStatus{Uptime: time.Since(h.startTime).Seconds()}
	if err := h.store.Ping(ctx); err != nil {
		logging.Ctx(r.Context()).Warn().Err(err).Msg("Readiness check failed")
		status.Status = "not_ready"
		status.Store = "unavailable"
		respondJSON(w, http.StatusServiceUnavailable, status)
		return
	}

	status.Status = "ready"
	status.Store = "ok"
	respondJSON(w, http.StatusOK, status)
}
