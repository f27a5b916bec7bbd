// NutriPlan - Diet and Meal Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nutriplan

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/nutriplan/config.yaml",
	"/etc/nutriplan/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// DotEnvFile is loaded into the process environment when present.
// Variables already set are not overridden.
const DotEnvFile = ".env"

// defaultConfig returns a Config with every default applied. Defaults load
// first, then the config file, then environment variables.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            5000,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 15 * time.Second,
			Environment:     "development",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Security: SecurityConfig{
			CORSOrigins: []string{"*"},
		},
		Store: StoreConfig{
			Backend:             "mongo",
			MongoURI:            "mongodb://localhost:27017",
			MongoDatabase:       "diet_recommendation",
			MongoConnectTimeout: 10 * time.Second,
			BadgerPath:          "/data/nutriplan",
		},
		Model: ModelConfig{
			Backend:             "forest",
			Path:                "model/diet_model.json",
			Timeout:             5 * time.Second,
			BreakerMaxRequests:  1,
			BreakerInterval:     time.Minute,
			BreakerTimeout:      30 * time.Second,
			BreakerFailureRatio: 0.6,
		},
		Cache: CacheConfig{
			Backend:  "lru",
			Capacity: 10000,
			TTL:      10 * time.Minute,
		},
		Recommend: RecommendConfig{
			MealMode: "shared",
			Timeout:  10 * time.Second,
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

// Load reads .env, the config file (CONFIG_PATH or DefaultConfigPaths) and
// the environment, then validates the result.
func Load() (*Config, error) {
	if err := loadDotEnv(DotEnvFile); err != nil {
		return nil, err
	}
	return load(findConfigFile())
}

// LoadFile is Load with an explicit config file path. An empty path skips
// the file layer.
func LoadFile(path string) (*Config, error) {
	return load(path)
}

func load(configPath string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.ProviderWithValue("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadDotEnv loads path into the environment when it exists.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths are comma-separated when they come from the environment.
var sliceConfigPaths = []string{
	"security.cors_origins",
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envMappings maps lower-cased environment variable names to config keys.
var envMappings = map[string]string{
	"port":             "server.port",
	"http_port":        "server.port",
	"http_host":        "server.host",
	"read_timeout":     "server.read_timeout",
	"write_timeout":    "server.write_timeout",
	"idle_timeout":     "server.idle_timeout",
	"shutdown_timeout": "server.shutdown_timeout",
	"environment":      "server.environment",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	"cors_origins": "security.cors_origins",

	"store_backend":         "store.backend",
	"mongo_uri":             "store.mongo_uri",
	"mongo_database":        "store.mongo_database",
	"mongo_connect_timeout": "store.mongo_connect_timeout",
	"badger_path":           "store.badger_path",
	"badger_sync_writes":    "store.badger_sync_writes",

	"model_backend":               "model.backend",
	"model_path":                  "model.path",
	"model_url":                   "model.url",
	"model_version":               "model.version",
	"model_timeout":               "model.timeout",
	"model_per_slot":              "model.per_slot",
	"model_serialize":             "model.serialize",
	"model_breaker_max_requests":  "model.breaker_max_requests",
	"model_breaker_interval":      "model.breaker_interval",
	"model_breaker_timeout":       "model.breaker_timeout",
	"model_breaker_failure_ratio": "model.breaker_failure_ratio",

	"cache_backend":  "cache.backend",
	"cache_capacity": "cache.capacity",
	"cache_ttl":      "cache.ttl",
	"redis_addr":     "cache.redis_addr",
	"redis_password": "cache.redis_password",
	"redis_db":       "cache.redis_db",

	"meal_mode":          "recommend.meal_mode",
	"strict_persistence": "recommend.strict_persistence",
	"image_seed":         "recommend.image_seed",
	"image_catalog_path": "recommend.image_catalog_path",
	"recommend_timeout":  "recommend.timeout",

	"metrics_enabled": "metrics.enabled",
}

// envTransformFunc maps an environment variable to its config key. Unknown
// names and empty values are skipped.
func envTransformFunc(key, value string) (string, interface{}) {
	if value == "" {
		return "", nil
	}
	mapped, ok := envMappings[strings.ToLower(key)]
	if !ok {
		return "", nil
	}
	return mapped, value
}
