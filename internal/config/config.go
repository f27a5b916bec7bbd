// NutriPlan - Diet and Meal Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nutriplan

package config

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/tomtom215/nutriplan/internal/cache"
	"github.com/tomtom215/nutriplan/internal/logging"
	"github.com/tomtom215/nutriplan/internal/model"
	"github.com/tomtom215/nutriplan/internal/models"
	"github.com/tomtom215/nutriplan/internal/recommend"
	"github.com/tomtom215/nutriplan/internal/store"
)

// Config is the complete service configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Logging   LoggingConfig   `koanf:"logging"`
	Security  SecurityConfig  `koanf:"security"`
	Store     StoreConfig     `koanf:"store"`
	Model     ModelConfig     `koanf:"model"`
	Cache     CacheConfig     `koanf:"cache"`
	Recommend RecommendConfig `koanf:"recommend"`
	Metrics   MetricsConfig   `koanf:"metrics"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"` // development or production
}

// Addr returns host:port for net/http.
func (s *ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// SecurityConfig holds browser-facing settings.
type SecurityConfig struct {
	CORSOrigins []string `koanf:"cors_origins"`
}

// StoreConfig selects the record store.
type StoreConfig struct {
	Backend             string        `koanf:"backend"` // mongo, badger or memory
	MongoURI            string        `koanf:"mongo_uri"`
	MongoDatabase       string        `koanf:"mongo_database"`
	MongoConnectTimeout time.Duration `koanf:"mongo_connect_timeout"`
	BadgerPath          string        `koanf:"badger_path"`
	BadgerSyncWrites    bool          `koanf:"badger_sync_writes"`
}

// ModelConfig selects the prediction backend.
type ModelConfig struct {
	Backend             string        `koanf:"backend"` // forest or remote
	Path                string        `koanf:"path"`
	URL                 string        `koanf:"url"`
	Version             string        `koanf:"version"` // remote model version, scopes cached predictions
	Timeout             time.Duration `koanf:"timeout"`
	PerSlot             bool          `koanf:"per_slot"`
	Serialize           bool          `koanf:"serialize"`
	BreakerMaxRequests  uint32        `koanf:"breaker_max_requests"`
	BreakerInterval     time.Duration `koanf:"breaker_interval"`
	BreakerTimeout      time.Duration `koanf:"breaker_timeout"`
	BreakerFailureRatio float64       `koanf:"breaker_failure_ratio"`
}

// CacheConfig sizes the prediction cache.
type CacheConfig struct {
	Backend       string        `koanf:"backend"` // none, lru or redis
	Capacity      int           `koanf:"capacity"`
	TTL           time.Duration `koanf:"ttl"`
	RedisAddr     string        `koanf:"redis_addr"`
	RedisPassword string        `koanf:"redis_password"`
	RedisDB       int           `koanf:"redis_db"`
}

// RecommendConfig tunes the recommendation pipeline.
type RecommendConfig struct {
	MealMode          string        `koanf:"meal_mode"`
	StrictPersistence bool          `koanf:"strict_persistence"`
	ImageSeed         int64         `koanf:"image_seed"` // 0 seeds from the clock
	ImageCatalogPath  string        `koanf:"image_catalog_path"`
	Timeout           time.Duration `koanf:"timeout"`
}

// MetricsConfig toggles the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool `koanf:"enabled"`
}

// IsProduction reports whether ENVIRONMENT=production.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// LoggingOptions converts to logging.Config.
func (c *Config) LoggingOptions() logging.Config {
	return logging.Config{
		Level:  c.Logging.Level,
		Format: c.Logging.Format,
		Caller: c.Logging.Caller,
	}
}

// StoreOptions converts to store.Config. Email is unique in the users
// collection.
func (c *Config) StoreOptions() store.Config {
	return store.Config{
		Backend: c.Store.Backend,
		Mongo: store.MongoConfig{
			URI:            c.Store.MongoURI,
			Database:       c.Store.MongoDatabase,
			ConnectTimeout: c.Store.MongoConnectTimeout,
		},
		Badger: store.BadgerConfig{
			Path:       c.Store.BadgerPath,
			SyncWrites: c.Store.BadgerSyncWrites,
		},
		UniqueFields: map[string]string{models.CollectionUsers: "email"},
	}
}

// ModelOptions converts to model.Config.
func (c *Config) ModelOptions() model.Config {
	return model.Config{
		Backend:   c.Model.Backend,
		Path:      c.Model.Path,
		Serialize: c.Model.Serialize,
		Remote: model.RemoteConfig{
			URL:                 c.Model.URL,
			Timeout:             c.Model.Timeout,
			PerSlot:             c.Model.PerSlot,
			Version:             c.Model.Version,
			BreakerMaxRequests:  c.Model.BreakerMaxRequests,
			BreakerInterval:     c.Model.BreakerInterval,
			BreakerTimeout:      c.Model.BreakerTimeout,
			BreakerFailureRatio: c.Model.BreakerFailureRatio,
		},
	}
}

// CacheOptions converts to cache.Config.
func (c *Config) CacheOptions() cache.Config {
	return cache.Config{
		Backend:       c.Cache.Backend,
		Capacity:      c.Cache.Capacity,
		TTL:           c.Cache.TTL,
		RedisAddr:     c.Cache.RedisAddr,
		RedisPassword: c.Cache.RedisPassword,
		RedisDB:       c.Cache.RedisDB,
	}
}

// RecommendOptions converts to recommend.Config.
func (c *Config) RecommendOptions() *recommend.Config {
	return &recommend.Config{
		MealMode:          c.Recommend.MealMode,
		StrictPersistence: c.Recommend.StrictPersistence,
		Timeout:           c.Recommend.Timeout,
	}
}

// String summarizes the configuration for the startup log without secrets.
func (c *Config) String() string {
	return fmt.Sprintf("addr=%s env=%s store=%s model=%s cache=%s meal_mode=%s",
		c.Server.Addr(), c.Server.Environment, c.Store.Backend, c.Model.Backend, c.Cache.Backend, c.Recommend.MealMode)
}
