// NutriPlan - Diet and Meal Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nutriplan

//go:build integration

package testinfra

import (
	"context"
	"time"

	"github.com/testcontainers/testcontainers-go"
)

const (
	// DefaultMongoImage is the MongoDB image used for store tests.
	DefaultMongoImage = "mongo:7"

	// DefaultMongoPort is the MongoDB wire protocol port.
	DefaultMongoPort = "27017"
)

// MongoContainer is a running MongoDB server.
type MongoContainer struct {
	testcontainers.Container
	URI string
}

// NewMongoContainer starts a MongoDB container.
//
// Example:
//
//	mongo, err := testinfra.NewMongoContainer(ctx)
//	if err != nil {
//	    t.Fatal(err)
//	}
//	defer testinfra.CleanupContainer(t, ctx, mongo)
func NewMongoContainer(ctx context.Context, opts ...Option) (*MongoContainer, error) {
	cfg := &containerConfig{
		image:        DefaultMongoImage,
		startTimeout: 60 * time.Second,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	container, addr, err := startService(ctx, cfg, DefaultMongoPort)
	if err != nil {
		return nil, err
	}
	return &MongoContainer{
		Container: container,
		URI:       "mongodb://" + addr,
	}, nil
}
