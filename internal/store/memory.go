// NutriPlan - Diet and Meal Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nutriplan

package store

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Memory keeps documents in process memory. Used in tests and for
// throwaway development servers.
type Memory struct {
	mu          sync.RWMutex
	collections map[string]*memoryCollection
	unique      map[string]string
	closed      bool
}

type memoryDoc struct {
	id  string
	doc Document
}

type memoryCollection struct {
	parent *Memory
	name   string
	docs   []memoryDoc
}

// NewMemory creates an empty store. unique maps collection names to a field
// that must not repeat.
func NewMemory(unique map[string]string) *Memory {
	return &Memory{
		collections: make(map[string]*memoryCollection),
		unique:      unique,
	}
}

// Collection implements Store.
func (m *Memory) Collection(name string) Collection {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.collections[name]
	if !ok {
		c = &memoryCollection{parent: m, name: name}
		m.collections[name] = c
	}
	return c
}

// Ping implements Store.
func (m *Memory) Ping(_ context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return ErrClosed
	}
	return nil
}

// Close implements Store.
func (m *Memory) Close(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Backend implements Store.
func (m *Memory) Backend() string { return BackendMemory }

// conflicts reports whether doc repeats the unique field value of another
// document. Callers hold parent.mu.
func (c *memoryCollection) conflicts(doc Document, skip int) bool {
	field, ok := c.parent.unique[c.name]
	if !ok {
		return false
	}
	v, ok := doc[field]
	if !ok {
		return false
	}
	for i, d := range c.docs {
		if i != skip && valuesEqual(d.doc[field], v) {
			return true
		}
	}
	return false
}

func (c *memoryCollection) InsertOne(_ context.Context, doc Document) (string, error) {
	c.parent.mu.Lock()
	defer c.parent.mu.Unlock()

	if c.parent.closed {
		return "", ErrClosed
	}

	stored := cloneDocument(doc.WithoutID())
	if c.conflicts(stored, -1) {
		return "", ErrDuplicate
	}

	id := uuid.New().String()
	c.docs = append(c.docs, memoryDoc{id: id, doc: stored})
	return id, nil
}

func (c *memoryCollection) Find(_ context.Context, filter Filter) ([]Document, error) {
	c.parent.mu.RLock()
	defer c.parent.mu.RUnlock()

	if c.parent.closed {
		return nil, ErrClosed
	}

	out := make([]Document, 0, len(c.docs))
	for _, d := range c.docs {
		if filter.Matches(d.doc) {
			out = append(out, cloneDocument(d.doc))
		}
	}
	return out, nil
}

func (c *memoryCollection) FindOne(_ context.Context, filter Filter) (Document, error) {
	c.parent.mu.RLock()
	defer c.parent.mu.RUnlock()

	if c.parent.closed {
		return nil, ErrClosed
	}

	for _, d := range c.docs {
		if filter.Matches(d.doc) {
			return cloneDocument(d.doc), nil
		}
	}
	return nil, ErrNotFound
}

func (c *memoryCollection) UpdateOne(_ context.Context, filter Filter, patch Document) (int64, error) {
	c.parent.mu.Lock()
	defer c.parent.mu.Unlock()

	if c.parent.closed {
		return 0, ErrClosed
	}

	for i, d := range c.docs {
		if !filter.Matches(d.doc) {
			continue
		}
		updated := cloneDocument(d.doc)
		if !merge(updated, patch) {
			return 0, nil
		}
		if c.conflicts(updated, i) {
			return 0, ErrDuplicate
		}
		c.docs[i].doc = updated
		return 1, nil
	}
	return 0, nil
}

var _ Store = (*Memory)(nil)
