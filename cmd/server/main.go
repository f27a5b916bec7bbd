// NutriPlan - Diet and Meal Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nutriplan

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/nutriplan/internal/accounts"
	"github.com/tomtom215/nutriplan/internal/api"
	"github.com/tomtom215/nutriplan/internal/cache"
	"github.com/tomtom215/nutriplan/internal/config"
	"github.com/tomtom215/nutriplan/internal/imagery"
	"github.com/tomtom215/nutriplan/internal/logging"
	"github.com/tomtom215/nutriplan/internal/model"
	"github.com/tomtom215/nutriplan/internal/models"
	"github.com/tomtom215/nutriplan/internal/recommend"
	"github.com/tomtom215/nutriplan/internal/store"
	"github.com/tomtom215/nutriplan/internal/supervisor"
	"github.com/tomtom215/nutriplan/internal/supervisor/services"
)

// storeHealthInterval is how often the data layer pings the record store.
const storeHealthInterval = 30 * time.Second

func main() {
	if err := run(); err != nil {
		logging.Fatal().Err(err).Msg("Server exited with error")
	}
}

//nolint:gocyclo // sequential setup steps
func run() error {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logging.Init(cfg.LoggingOptions())
	logging.Info().Str("config", cfg.String()).Msg("Starting NutriPlan")

	if cfg.IsProduction() && len(cfg.Security.CORSOrigins) == 1 && cfg.Security.CORSOrigins[0] == "*" {
		logging.Warn().Msg("CORS allows any origin (CORS_ORIGINS=*); set explicit origins for production")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(ctx, cfg.StoreOptions(), logging.Logger())
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := st.Close(closeCtx); err != nil {
			logging.Error().Err(err).Msg("Error closing record store")
		}
	}()
	logging.Info().Str("backend", st.Backend()).Msg("Record store ready")

	predictionCache, err := cache.New(cfg.CacheOptions())
	if err != nil {
		return err
	}

	mdl, err := model.Open(cfg.ModelOptions(), predictionCache, logging.Logger())
	if err != nil {
		if predictionCache != nil {
			_ = predictionCache.Close()
		}
		return err
	}
	defer func() {
		if err := mdl.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing model")
		}
	}()

	catalog := imagery.DefaultCatalog()
	if cfg.Recommend.ImageCatalogPath != "" {
		catalog, err = imagery.LoadCatalogFile(cfg.Recommend.ImageCatalogPath)
		if err != nil {
			return err
		}
		logging.Info().Str("path", cfg.Recommend.ImageCatalogPath).Msg("Image catalog loaded")
	}
	resolver, err := imagery.NewResolver(catalog, cfg.Recommend.ImageSeed)
	if err != nil {
		return err
	}

	engine, err := recommend.NewEngine(
		cfg.RecommendOptions(),
		mdl,
		resolver,
		st.Collection(models.CollectionRecommendations),
		logging.Logger(),
	)
	if err != nil {
		return err
	}
	logging.Info().
		Str("meal_mode", engine.MealMode()).
		Bool("strict_persistence", cfg.Recommend.StrictPersistence).
		Msg("Recommendation engine ready")

	handler, err := api.NewHandler(api.Dependencies{
		Recommender: engine,
		Accounts:    accounts.NewService(st.Collection(models.CollectionUsers), logging.Logger()),
		History:     st.Collection(models.CollectionRecommendations),
		Store:       st,
	})
	if err != nil {
		return err
	}

	router := api.NewRouter(handler, api.RouterConfig{
		CORSOrigins:    cfg.Security.CORSOrigins,
		MetricsEnabled: cfg.Metrics.Enabled,
	})

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.Setup(),
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		return err
	}
	tree.AddDataService(services.NewStoreHealthService(st, storeHealthInterval, logging.WithComponent("supervisor")))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	logging.Info().Str("addr", server.Addr).Msg("HTTP server listening")

	errCh := tree.ServeBackground(ctx)
	<-ctx.Done()
	logging.Info().Msg("Shutdown signal received")

	if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree stopped with error")
	}
	if report, err := tree.UnstoppedServiceReport(); err == nil && len(report) > 0 {
		logging.Warn().Int("count", len(report)).Msg("Services did not stop within the shutdown timeout")
	}

	s := engine.Stats()
	logging.Info().
		Int64("requests", s.Requests).
		Int64("errors", s.Errors).
		Int64("persist_failures", s.PersistFailures).
		Msg("NutriPlan stopped")
	return nil
}
