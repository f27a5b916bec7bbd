// NutriPlan - Diet and Meal Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nutriplan

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// IDField is the identifier key some backends add to documents. It never
// leaves the store.
const IDField = "_id"

// Backend names accepted by Open.
const (
	BackendMemory = "memory"
	BackendBadger = "badger"
	BackendMongo  = "mongo"
)

var (
	// ErrNotFound is returned by FindOne when no document matches.
	ErrNotFound = errors.New("document not found")

	// ErrDuplicate is returned when an insert or update would violate a
	// unique field.
	ErrDuplicate = errors.New("duplicate document")

	// ErrClosed is returned after Close.
	ErrClosed = errors.New("store is closed")
)

// Document is a schemaless record.
type Document map[string]interface{}

// Filter selects documents whose top-level fields equal every entry.
// An empty filter matches everything.
type Filter map[string]interface{}

// Collection is a named set of documents.
type Collection interface {
	// InsertOne appends doc and returns its identifier.
	InsertOne(ctx context.Context, doc Document) (string, error)

	// Find returns matching documents in insertion order, without IDField.
	Find(ctx context.Context, filter Filter) ([]Document, error)

	// FindOne returns the first matching document or ErrNotFound.
	FindOne(ctx context.Context, filter Filter) (Document, error)

	// UpdateOne sets every field of patch on the first matching document,
	// leaving other fields untouched. It returns the number of documents
	// modified: 0 when nothing matched or nothing changed.
	UpdateOne(ctx context.Context, filter Filter, patch Document) (int64, error)
}

// Store owns collections and the underlying connection.
type Store interface {
	Collection(name string) Collection
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
	Backend() string
}

// Config selects and configures a backend.
type Config struct {
	Backend string
	Mongo   MongoConfig
	Badger  BadgerConfig

	// UniqueFields maps a collection to a field whose values must be unique.
	UniqueFields map[string]string
}

// MongoConfig configures the MongoDB backend.
type MongoConfig struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration
}

// BadgerConfig configures the embedded BadgerDB backend.
type BadgerConfig struct {
	Path       string
	InMemory   bool
	SyncWrites bool
}

// Open connects the configured backend and wraps it with metrics.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func Open(ctx context.Context, cfg Config, logger zerolog.Logger) (Store, error) {
	logger = logger.With().Str("component", "store").Str("backend", cfg.Backend).Logger()

	var (
		s   Store
		err error
	)
	switch cfg.Backend {
	case BackendMemory, "":
		s = NewMemory(cfg.UniqueFields)
	case BackendBadger:
		s, err = OpenBadger(cfg.Badger, cfg.UniqueFields, logger)
	case BackendMongo:
		s, err = OpenMongo(ctx, cfg.Mongo, cfg.UniqueFields, logger)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
	if err != nil {
		return nil, err
	}

	logger.Info().Msg("Record store opened")
	return NewInstrumented(s), nil
}
