// NutriPlan - Diet and Meal Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nutriplan

package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/tomtom215/nutriplan/internal/cache"
	"github.com/tomtom215/nutriplan/internal/model"
	"github.com/tomtom215/nutriplan/internal/recommend"
	"github.com/tomtom215/nutriplan/internal/store"
)

// Validate checks that required configuration is present and valid.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	if err := c.validateStore(); err != nil {
		return err
	}
	if err := c.validateModel(); err != nil {
		return err
	}
	if err := c.validateCache(); err != nil {
		return err
	}
	return c.validateRecommend()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	switch c.Server.Environment {
	case "development", "production":
	default:
		return fmt.Errorf("ENVIRONMENT must be development or production, got %q", c.Server.Environment)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive, got %v", c.Server.ShutdownTimeout)
	}
	if len(c.Security.CORSOrigins) == 0 {
		return fmt.Errorf("CORS_ORIGINS must list at least one origin")
	}
	return nil
}

var validLogLevels = map[string]bool{
	"trace": true, "debug": true, "info": true, "warn": true, "warning": true,
	"error": true, "fatal": true, "panic": true, "disabled": true,
}

func (c *Config) validateLogging() error {
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		return fmt.Errorf("LOG_LEVEL %q is not a valid level", c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "console":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
	return nil
}

func (c *Config) validateStore() error {
	switch c.Store.Backend {
	case store.BackendMongo:
		u, err := url.Parse(c.Store.MongoURI)
		if err != nil {
			return fmt.Errorf("MONGO_URI is invalid: %w", err)
		}
		if u.Scheme != "mongodb" && u.Scheme != "mongodb+srv" {
			return fmt.Errorf("MONGO_URI scheme must be mongodb or mongodb+srv, got %q", u.Scheme)
		}
		if c.Store.MongoDatabase == "" {
			return fmt.Errorf("MONGO_DATABASE is required when STORE_BACKEND=mongo")
		}
	case store.BackendBadger:
		if c.Store.BadgerPath == "" {
			return fmt.Errorf("BADGER_PATH is required when STORE_BACKEND=badger")
		}
	case store.BackendMemory:
	default:
		return fmt.Errorf("STORE_BACKEND must be mongo, badger or memory, got %q", c.Store.Backend)
	}
	return nil
}

func (c *Config) validateModel() error {
	switch c.Model.Backend {
	case model.BackendForest:
		if c.Model.Path == "" {
			return fmt.Errorf("MODEL_PATH is required when MODEL_BACKEND=forest")
		}
	case model.BackendRemote:
		if err := validateHTTPURL(c.Model.URL, "MODEL_URL"); err != nil {
			return err
		}
		if c.Model.Timeout <= 0 {
			return fmt.Errorf("MODEL_TIMEOUT must be positive, got %v", c.Model.Timeout)
		}
		if c.Model.BreakerFailureRatio < 0 || c.Model.BreakerFailureRatio > 1 {
			return fmt.Errorf("MODEL_BREAKER_FAILURE_RATIO must be between 0 and 1, got %v", c.Model.BreakerFailureRatio)
		}
	default:
		return fmt.Errorf("MODEL_BACKEND must be forest or remote, got %q", c.Model.Backend)
	}
	return nil
}

func (c *Config) validateCache() error {
	switch c.Cache.Backend {
	case cache.BackendNone:
	case cache.BackendLRU:
		if c.Cache.Capacity <= 0 {
			return fmt.Errorf("CACHE_CAPACITY must be positive, got %d", c.Cache.Capacity)
		}
	case cache.BackendRedis:
		if c.Cache.RedisAddr == "" {
			return fmt.Errorf("REDIS_ADDR is required when CACHE_BACKEND=redis")
		}
		if c.Cache.RedisDB < 0 {
			return fmt.Errorf("REDIS_DB must be >= 0, got %d", c.Cache.RedisDB)
		}
	default:
		return fmt.Errorf("CACHE_BACKEND must be none, lru or redis, got %q", c.Cache.Backend)
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("CACHE_TTL must be >= 0, got %v", c.Cache.TTL)
	}
	return nil
}

func (c *Config) validateRecommend() error {
	if err := c.RecommendOptions().Validate(); err != nil {
		return fmt.Errorf("MEAL_MODE/RECOMMEND_TIMEOUT: %w", err)
	}
	if c.Recommend.MealMode == recommend.MealModePerSlot &&
		c.Model.Backend == model.BackendRemote && !c.Model.PerSlot {
		return fmt.Errorf("MEAL_MODE=per_slot with MODEL_BACKEND=remote requires MODEL_PER_SLOT=true")
	}
	return nil
}

// validateHTTPURL checks for an absolute http(s) URL with a host.
func validateHTTPURL(rawURL, fieldName string) error {
	if rawURL == "" {
		return fmt.Errorf("%s is required", fieldName)
	}
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%s failed to parse URL: %w", fieldName, err)
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("%s scheme must be http or https, got: %s", fieldName, parsedURL.Scheme)
	}
	if parsedURL.Host == "" {
		return fmt.Errorf("%s host is required", fieldName)
	}
	return nil
}
