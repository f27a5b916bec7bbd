// NutriPlan - Diet and Meal Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nutriplan

package store

import (
	"context"
	"errors"
	"time"

	"github.com/tomtom215/nutriplan/internal/metrics"
)

// Instrumented records latency and errors for every collection operation.
type Instrumented struct {
	Store
}

type instrumentedCollection struct {
	next    Collection
	backend string
	name    string
}

// NewInstrumented wraps s with Prometheus instrumentation.
func NewInstrumented(s Store) *Instrumented {
	return &Instrumented{Store: s}
}

// Collection implements Store.
func (i *Instrumented) Collection(name string) Collection {
	return &instrumentedCollection{
		next:    i.Store.Collection(name),
		backend: i.Store.Backend(),
		name:    name,
	}
}

// observe records one operation. ErrNotFound is a normal outcome and not
// counted as an error.
func (c *instrumentedCollection) observe(op string, start time.Time, err error) {
	if errors.Is(err, ErrNotFound) {
		err = nil
	}
	metrics.RecordStoreOperation(c.backend, c.name, op, time.Since(start), err)
}

func (c *instrumentedCollection) InsertOne(ctx context.Context, doc Document) (string, error) {
	start := time.Now()
	id, err := c.next.InsertOne(ctx, doc)
	c.observe("insert_one", start, err)
	return id, err
}

func (c *instrumentedCollection) Find(ctx context.Context, filter Filter) ([]Document, error) {
	start := time.Now()
	docs, err := c.next.Find(ctx, filter)
	c.observe("find", start, err)
	return docs, err
}

func (c *instrumentedCollection) FindOne(ctx context.Context, filter Filter) (Document, error) {
	start := time.Now()
	doc, err := c.next.FindOne(ctx, filter)
	c.observe("find_one", start, err)
	return doc, err
}

func (c *instrumentedCollection) UpdateOne(ctx context.Context, filter Filter, patch Document) (int64, error) {
	start := time.Now()
	n, err := c.next.UpdateOne(ctx, filter, patch)
	c.observe("update_one", start, err)
	return n, err
}
