// NutriPlan - Diet and Meal Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nutriplan

package cache

import (
	"context"
	"fmt"
	"time"
)

// Backend names accepted by New.
const (
	BackendNone  = "none"
	BackendLRU   = "lru"
	BackendRedis = "redis"
)

// Store is a string key/value cache with per-entry expiry.
//
// A miss is reported as ok == false with a nil error. Errors are reserved
// for backend failures (network, serialization) and callers are expected to
// treat them as misses.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Close() error
}

// Config selects and sizes a cache backend.
type Config struct {
	Backend  string
	Capacity int
	TTL      time.Duration

	// Redis settings, used when Backend is "redis".
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	KeyPrefix     string
}

// New returns the backend named by cfg.Backend, or nil for "none" / "".
func New(cfg Config) (Store, error) {
	switch cfg.Backend {
	case "", BackendNone:
		return nil, nil
	case BackendLRU:
		return NewLRU(cfg.Capacity, cfg.TTL), nil
	case BackendRedis:
		if cfg.RedisAddr == "" {
			return nil, fmt.Errorf("redis cache requires an address")
		}
		return NewRedis(cfg), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}
