// NutriPlan - Diet and Meal Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nutriplan

package model

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/nutriplan/internal/cache"
	"github.com/tomtom215/nutriplan/internal/metrics"
	"github.com/tomtom215/nutriplan/internal/models"
)

// asModel gives a bare Predictor a no-op Close.
type asModel struct{ Predictor }

func (asModel) Close() error { return nil }

func toModel(p Predictor) Model {
	if m, ok := p.(Model); ok {
		return m
	}
	return asModel{p}
}

func predictSlot(ctx context.Context, p Predictor, slot models.Slot, f Features) (string, error) {
	sp, ok := p.(SlotPredictor)
	if !ok {
		return "", ErrSlotsUnsupported
	}
	return sp.PredictSlot(ctx, slot, f)
}

// Instrumented records prediction counts and latency per backend.
type Instrumented struct {
	inner   Model
	backend string
}

// NewInstrumented wraps p with metrics labeled by backend.
func NewInstrumented(p Predictor, backend string) *Instrumented {
	return &Instrumented{inner: toModel(p), backend: backend}
}

// Predict implements Predictor.
func (m *Instrumented) Predict(ctx context.Context, f Features) (string, error) {
	start := time.Now()
	label, err := m.inner.Predict(ctx, f)
	metrics.RecordPrediction(m.backend, time.Since(start), err)
	return label, err
}

// PredictSlot implements SlotPredictor.
func (m *Instrumented) PredictSlot(ctx context.Context, slot models.Slot, f Features) (string, error) {
	start := time.Now()
	label, err := predictSlot(ctx, m.inner, slot, f)
	metrics.RecordPrediction(m.backend, time.Since(start), err)
	return label, err
}

// SupportsSlots implements SlotPredictor.
func (m *Instrumented) SupportsSlots() bool { return SupportsSlots(m.inner) }

// Close implements Model.
func (m *Instrumented) Close() error { return m.inner.Close() }

// Serialized runs one prediction at a time, for backends that are not
// reentrant.
type Serialized struct {
	mu    sync.Mutex
	inner Model
}

// NewSerialized wraps p behind a mutex.
func NewSerialized(p Predictor) *Serialized {
	return &Serialized{inner: toModel(p)}
}

// Predict implements Predictor.
func (m *Serialized) Predict(ctx context.Context, f Features) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.inner.Predict(ctx, f)
}

// PredictSlot implements SlotPredictor.
func (m *Serialized) PredictSlot(ctx context.Context, slot models.Slot, f Features) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return predictSlot(ctx, m.inner, slot, f)
}

// SupportsSlots implements SlotPredictor.
func (m *Serialized) SupportsSlots() bool { return SupportsSlots(m.inner) }

// Close implements Model.
func (m *Serialized) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.inner.Close()
}

// Cached memoizes predictions by feature vector. Keys are scoped by a
// namespace naming the model that produced them. Cache failures are logged
// and fall through to the wrapped model.
type Cached struct {
	inner     Model
	store     cache.Store
	namespace string
	logger    zerolog.Logger
}

// NewCached wraps p with store. namespace must change whenever the
// model's answers can change, e.g. Forest.CacheNamespace.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewCached(p Predictor, store cache.Store, namespace string, logger zerolog.Logger) *Cached {
	return &Cached{
		inner:     toModel(p),
		store:     store,
		namespace: namespace,
		logger:    logger.With().Str("component", "model_cache").Str("namespace", namespace).Logger(),
	}
}

func (m *Cached) key(scope string, f Features) string {
	return m.namespace + "|" + scope + "|" + f.Key()
}

// Predict implements Predictor.
func (m *Cached) Predict(ctx context.Context, f Features) (string, error) {
	return m.lookup(ctx, m.key("all", f), func() (string, error) {
		return m.inner.Predict(ctx, f)
	})
}

// PredictSlot implements SlotPredictor.
func (m *Cached) PredictSlot(ctx context.Context, slot models.Slot, f Features) (string, error) {
	return m.lookup(ctx, m.key(string(slot), f), func() (string, error) {
		return predictSlot(ctx, m.inner, slot, f)
	})
}

// SupportsSlots implements SlotPredictor.
func (m *Cached) SupportsSlots() bool { return SupportsSlots(m.inner) }

// Close closes the wrapped model and the cache.
func (m *Cached) Close() error {
	err := m.inner.Close()
	if cerr := m.store.Close(); err == nil {
		err = cerr
	}
	return err
}

func (m *Cached) lookup(ctx context.Context, key string, miss func() (string, error)) (string, error) {
	label, ok, err := m.store.Get(ctx, key)
	metrics.RecordPredictionCache(ok, err)
	if err != nil {
		m.logger.Warn().Err(err).Msg("Prediction cache read failed")
	}
	if ok {
		return label, nil
	}

	label, err = miss()
	if err != nil {
		return "", err
	}
	if err := m.store.Set(ctx, key, label); err != nil {
		m.logger.Warn().Err(err).Msg("Prediction cache write failed")
	}
	return label, nil
}

var (
	_ SlotPredictor = (*Instrumented)(nil)
	_ SlotPredictor = (*Serialized)(nil)
	_ SlotPredictor = (*Cached)(nil)
	_ Model         = (*Cached)(nil)
)
