// NutriPlan - Diet and Meal Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nutriplan

package model

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/nutriplan/internal/cache"
	"github.com/tomtom215/nutriplan/internal/models"
)

// countingPredictor returns a fixed label and counts calls.
type countingPredictor struct {
	label    string
	err      error
	calls    atomic.Int32
	inFlight atomic.Int32
	maxSeen  atomic.Int32
	closed   bool
}

func (p *countingPredictor) Predict(_ context.Context, _ Features) (string, error) {
	n := p.inFlight.Add(1)
	defer p.inFlight.Add(-1)
	for {
		m := p.maxSeen.Load()
		if n <= m || p.maxSeen.CompareAndSwap(m, n) {
			break
		}
	}
	p.calls.Add(1)
	time.Sleep(time.Millisecond)
	return p.label, p.err
}

func (p *countingPredictor) Close() error {
	p.closed = true
	return nil
}

type failingStore struct{}

func (failingStore) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("redis down")
}
func (failingStore) Set(context.Context, string, string) error { return errors.New("redis down") }
func (failingStore) Close() error                              { return nil }

func TestCached_MemoizesByFeatures(t *testing.T) {
	t.Parallel()

	inner := &countingPredictor{label: "Pasta Primavera"}
	m := NewCached(inner, cache.NewLRU(16, time.Minute), "test", zerolog.Nop())

	x := Features{Weight: 70, Height: 175, Age: 30, TDEE: 2555.5625}
	for i := 0; i < 3; i++ {
		got, err := m.Predict(context.Background(), x)
		if err != nil || got != "Pasta Primavera" {
			t.Fatalf("Predict() = %q, %v", got, err)
		}
	}
	if inner.calls.Load() != 1 {
		t.Errorf("inner called %d times, want 1", inner.calls.Load())
	}

	_, _ = m.Predict(context.Background(), Features{Weight: 71})
	if inner.calls.Load() != 2 {
		t.Errorf("different features should miss the cache")
	}
}

func TestCached_DoesNotCacheErrors(t *testing.T) {
	t.Parallel()

	inner := &countingPredictor{err: errors.New("boom")}
	m := NewCached(inner, cache.NewLRU(16, time.Minute), "test", zerolog.Nop())

	for i := 0; i < 2; i++ {
		if _, err := m.Predict(context.Background(), Features{}); err == nil {
			t.Fatal("expected error")
		}
	}
	if inner.calls.Load() != 2 {
		t.Errorf("errors must not be cached; calls = %d", inner.calls.Load())
	}
}

func TestCached_BackendFailureFallsThrough(t *testing.T) {
	t.Parallel()

	inner := &countingPredictor{label: "Tofu Wrap"}
	m := NewCached(inner, failingStore{}, "test", zerolog.Nop())

	got, err := m.Predict(context.Background(), Features{})
	if err != nil || got != "Tofu Wrap" {
		t.Errorf("Predict() = %q, %v", got, err)
	}
}

func TestCached_SlotKeysAreSeparate(t *testing.T) {
	t.Parallel()

	f, err := NewForest(&Artifact{
		Classifier: Classifier{Classes: []string{"Shared", "Other"}, Trees: []Tree{stump(3, 1)}},
		Slots: map[models.Slot]*Classifier{
			models.SlotBreakfast: {Classes: []string{"Eggs", "Toast"}, Trees: []Tree{stump(3, 2000)}},
			models.SlotLunch:     {Classes: []string{"Soup", "Salad"}, Trees: []Tree{stump(3, 2000)}},
			models.SlotDinner:    {Classes: []string{"Fish", "Steak"}, Trees: []Tree{stump(3, 2000)}},
		},
	})
	if err != nil {
		t.Fatalf("NewForest: %v", err)
	}

	m := NewCached(NewInstrumented(f, BackendForest), cache.NewLRU(16, time.Minute), f.CacheNamespace(), zerolog.Nop())
	if !SupportsSlots(m) {
		t.Fatal("cached wrapper should report slot support of the wrapped forest")
	}

	x := Features{TDEE: 2500}
	b, _ := m.PredictSlot(context.Background(), models.SlotBreakfast, x)
	d, _ := m.PredictSlot(context.Background(), models.SlotDinner, x)
	if b != "Toast" || d != "Steak" {
		t.Errorf("PredictSlot breakfast=%q dinner=%q", b, d)
	}
}

func TestSerialized_OneAtATime(t *testing.T) {
	t.Parallel()

	inner := &countingPredictor{label: "x"}
	m := NewSerialized(inner)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = m.Predict(context.Background(), Features{})
		}()
	}
	wg.Wait()

	if inner.maxSeen.Load() != 1 {
		t.Errorf("max concurrent predictions = %d, want 1", inner.maxSeen.Load())
	}
	if err := m.Close(); err != nil || !inner.closed {
		t.Error("Close should close the wrapped predictor")
	}
	if SupportsSlots(m) {
		t.Error("wrapper over plain predictor should not support slots")
	}
	if _, err := m.PredictSlot(context.Background(), models.SlotLunch, Features{}); !errors.Is(err, ErrSlotsUnsupported) {
		t.Errorf("PredictSlot = %v", err)
	}
}

func writeArtifact(t *testing.T) string {
	t.Helper()
	data, err := json.Marshal(testArtifact())
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	path := filepath.Join(t.TempDir(), "model.json")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestOpen(t *testing.T) {
	t.Parallel()

	path := writeArtifact(t)

	t.Run("forest", func(t *testing.T) {
		t.Parallel()
		m, err := Open(Config{Backend: BackendForest, Path: path}, nil, zerolog.Nop())
		if err != nil {
			t.Fatalf("Open: %v", err)
		}
		defer m.Close()
		if _, ok := m.(*Instrumented); !ok {
			t.Errorf("Open without cache returned %T", m)
		}
		got, err := m.Predict(context.Background(), Features{TDEE: 2500})
		if err != nil || got != "Grilled Chicken" {
			t.Errorf("Predict() = %q, %v", got, err)
		}
	})

	t.Run("forest with cache and lock", func(t *testing.T) {
		t.Parallel()
		m, err := Open(Config{Path: path, Serialize: true}, cache.NewLRU(8, time.Minute), zerolog.Nop())
		if err != nil {
			t.Fatalf("Open: %v", err)
		}
		defer m.Close()
		if _, ok := m.(*Cached); !ok {
			t.Errorf("Open with cache returned %T", m)
		}
	})

	t.Run("remote", func(t *testing.T) {
		t.Parallel()
		m, err := Open(Config{Backend: BackendRemote, Remote: RemoteConfig{URL: "http://model:8500/predict"}}, nil, zerolog.Nop())
		if err != nil {
			t.Fatalf("Open: %v", err)
		}
		_ = m.Close()
	})

	errCases := []struct {
		name string
		cfg  Config
	}{
		{"forest without path", Config{Backend: BackendForest}},
		{"missing file", Config{Path: filepath.Join(t.TempDir(), "nope.json")}},
		{"remote without url", Config{Backend: BackendRemote}},
		{"unknown backend", Config{Backend: "onnx"}},
	}
	for _, tc := range errCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if _, err := Open(tc.cfg, nil, zerolog.Nop()); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestCached_NamespaceIsolatesModels(t *testing.T) {
	t.Parallel()

	shared := cache.NewLRU(16, time.Minute)
	x := Features{Weight: 70, Height: 175, Age: 30, TDEE: 2555.5625}

	before := &countingPredictor{label: "Oatmeal Bowl"}
	if _, err := NewCached(before, shared, "forest:2026.01:aaaa", zerolog.Nop()).Predict(context.Background(), x); err != nil {
		t.Fatalf("Predict: %v", err)
	}

	after := &countingPredictor{label: "Grilled Chicken"}
	got, err := NewCached(after, shared, "forest:2026.02:bbbb", zerolog.Nop()).Predict(context.Background(), x)
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if got != "Grilled Chicken" || after.calls.Load() != 1 {
		t.Errorf("redeployed model got %q (calls=%d), want its own label", got, after.calls.Load())
	}
}
