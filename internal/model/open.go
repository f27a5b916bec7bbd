// NutriPlan - Diet and Meal Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nutriplan

package model

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/nutriplan/internal/cache"
)

// Backend names accepted by Open.
const (
	BackendForest = "forest"
	BackendRemote = "remote"
)

// Config selects and configures the model backend.
type Config struct {
	Backend string

	// Path is the forest artifact file.
	Path string

	Remote RemoteConfig

	// Serialize forces one prediction at a time.
	Serialize bool
}

// Open loads the configured backend once and wraps it with metrics, the
// optional lock and the optional prediction cache. The returned Model owns
// store and closes it on Close.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func Open(cfg Config, store cache.Store, logger zerolog.Logger) (Model, error) {
	var (
		base      Model
		namespace string
		err       error
	)

	switch cfg.Backend {
	case BackendForest, "":
		if cfg.Path == "" {
			return nil, fmt.Errorf("model path is required for the %s backend", BackendForest)
		}
		var forest *Forest
		forest, err = LoadForestFile(cfg.Path)
		if err != nil {
			return nil, err
		}
		logger.Info().
			Str("path", cfg.Path).
			Str("version", forest.Version()).
			Int("classes", len(forest.Classes())).
			Bool("per_slot", forest.SupportsSlots()).
			Msg("Model artifact loaded")
		base = forest
		namespace = forest.CacheNamespace()
		cfg.Backend = BackendForest
	case BackendRemote:
		var remote *Remote
		remote, err = NewRemote(cfg.Remote, nil, logger)
		if err != nil {
			return nil, err
		}
		base = remote
		namespace = remote.CacheNamespace()
		logger.Info().Str("url", cfg.Remote.URL).Bool("per_slot", cfg.Remote.PerSlot).Msg("Remote model configured")
	default:
		return nil, fmt.Errorf("unknown model backend %q", cfg.Backend)
	}

	var m Model = NewInstrumented(base, cfg.Backend)
	if cfg.Serialize {
		m = NewSerialized(m)
	}
	if store != nil {
		m = NewCached(m, store, namespace, logger)
	}
	return m, nil
}
