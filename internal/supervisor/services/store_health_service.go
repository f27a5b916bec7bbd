// NutriPlan - Diet and Meal Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nutriplan

package services

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/nutriplan/internal/metrics"
)

// DefaultHealthInterval is the ping period when none is configured.
const DefaultHealthInterval = 30 * time.Second

// pingTimeout bounds a single health ping.
const pingTimeout = 5 * time.Second

// Pinger is the record store as seen by the health monitor.
type Pinger interface {
	Ping(ctx context.Context) error
	Backend() string
}

// StoreHealthService pings the record store on a fixed interval, exports
// the result as the nutriplan_store_up gauge and logs transitions between
// reachable and unreachable.
type StoreHealthService struct {
	store    Pinger
	interval time.Duration
	logger   zerolog.Logger
	name     string

	healthy atomic.Bool
	checked bool
}

// NewStoreHealthService creates a store health monitor.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewStoreHealthService(store Pinger, interval time.Duration, logger zerolog.Logger) *StoreHealthService {
	if interval <= 0 {
		interval = DefaultHealthInterval
	}
	return &StoreHealthService{
		store:    store,
		interval: interval,
		logger:   logger.With().Str("service", "store-health").Str("backend", store.Backend()).Logger(),
		name:     "store-health",
	}
}

// Serve implements suture.Service. It checks once immediately, then on
// every tick until ctx is canceled.
func (s *StoreHealthService) Serve(ctx context.Context) error {
	s.check(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.check(ctx)
		}
	}
}

func (s *StoreHealthService) check(ctx context.Context) {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	err := s.store.Ping(pingCtx)
	healthy := err == nil
	metrics.SetStoreUp(s.store.Backend(), healthy)

	switch {
	case !s.checked && healthy:
		s.logger.Debug().Msg("Record store reachable")
	case healthy && !s.healthy.Load():
		s.logger.Info().Msg("Record store recovered")
	case !healthy && (s.healthy.Load() || !s.checked):
		s.logger.Warn().Err(err).Msg("Record store unreachable")
	}

	s.healthy.Store(healthy)
	s.checked = true
}

// Healthy reports the result of the last check.
func (s *StoreHealthService) Healthy() bool {
	return s.healthy.Load()
}

// String identifies the service in supervisor logs.
func (s *StoreHealthService) String() string {
	return s.name
}
