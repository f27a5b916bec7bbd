// NutriPlan - Diet and Meal Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nutriplan

package model

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
	"github.com/goccy/go-json"

	"github.com/tomtom215/nutriplan/internal/models"
)

// ArtifactFormat identifies the JSON layout read by LoadForest.
const ArtifactFormat = "nutriplan-forest/v1"

// leaf marks a terminal node in children_left / children_right.
const leaf = -1

// Tree is one fitted decision tree in array form: node i splits on
// Feature[i] at Threshold[i] (go left when x <= threshold) until
// ChildrenLeft[i] is -1, where Value[i] holds per-class weights.
type Tree struct {
	ChildrenLeft  []int       `json:"children_left"`
	ChildrenRight []int       `json:"children_right"`
	Feature       []int       `json:"feature"`
	Threshold     []float64   `json:"threshold"`
	Value         [][]float64 `json:"value"`
}

// Classifier is an ensemble of trees over a shared class list. A single
// tree is an ensemble of one.
type Classifier struct {
	Classes []string `json:"classes"`
	Trees   []Tree   `json:"trees"`
}

// Artifact is the persisted model file.
type Artifact struct {
	Format       string                     `json:"format"`
	Version      string                     `json:"version,omitempty"`
	FeatureNames []string                   `json:"feature_names,omitempty"`
	Classifier
	Slots map[models.Slot]*Classifier `json:"slots,omitempty"`
}

// Forest serves predictions from a loaded artifact. It is immutable after
// load, so Predict is safe to call from many goroutines.
type Forest struct {
	version     string
	fingerprint string
	main        *Classifier
	slots   map[models.Slot]*Classifier
	closed  atomic.Bool
}

// LoadForest reads and validates an artifact.
func LoadForest(r io.Reader) (*Forest, error) {
	var a Artifact
	if err := json.NewDecoder(r).Decode(&a); err != nil {
		return nil, fmt.Errorf("decode model artifact: %w", err)
	}
	return NewForest(&a)
}

// LoadForestFile opens path and calls LoadForest.
func LoadForestFile(path string) (*Forest, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from operator configuration
	if err != nil {
		return nil, fmt.Errorf("open model artifact: %w", err)
	}
	defer f.Close()
	return LoadForest(f)
}

// NewForest validates an in-memory artifact.
func NewForest(a *Artifact) (*Forest, error) {
	if a.Format != "" && a.Format != ArtifactFormat {
		return nil, fmt.Errorf("unsupported model format %q", a.Format)
	}
	if len(a.FeatureNames) != 0 && len(a.FeatureNames) != NumFeatures {
		return nil, fmt.Errorf("model expects %d features, artifact declares %d", NumFeatures, len(a.FeatureNames))
	}

	main := a.Classifier
	if err := main.validate(); err != nil {
		return nil, err
	}

	slots := make(map[models.Slot]*Classifier, len(a.Slots))
	for slot, c := range a.Slots {
		if !slot.Valid() {
			return nil, fmt.Errorf("model artifact: unknown meal slot %q", slot)
		}
		if c == nil {
			continue
		}
		if err := c.validate(); err != nil {
			return nil, fmt.Errorf("slot %s: %w", slot, err)
		}
		slots[slot] = c
	}

	canonical, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("fingerprint model artifact: %w", err)
	}

	return &Forest{
		version:     a.Version,
		fingerprint: fmt.Sprintf("%016x", xxhash.Sum64(canonical)),
		main:        &main,
		slots:       slots,
	}, nil
}

// Predict implements Predictor.
func (f *Forest) Predict(_ context.Context, x Features) (string, error) {
	if f.closed.Load() {
		return "", ErrClosed
	}
	return f.main.predict(x.Vector()), nil
}

// PredictSlot implements SlotPredictor.
func (f *Forest) PredictSlot(_ context.Context, slot models.Slot, x Features) (string, error) {
	if f.closed.Load() {
		return "", ErrClosed
	}
	c, ok := f.slots[slot]
	if !ok {
		return "", fmt.Errorf("%w: no classifier for %s", ErrSlotsUnsupported, slot)
	}
	return c.predict(x.Vector()), nil
}

// SupportsSlots is true when every meal slot has its own classifier.
func (f *Forest) SupportsSlots() bool {
	for _, s := range models.Slots() {
		if _, ok := f.slots[s]; !ok {
			return false
		}
	}
	return true
}

// Classes returns the labels the main classifier can emit.
func (f *Forest) Classes() []string {
	return append([]string(nil), f.main.Classes...)
}

// Version returns the artifact version string, if any.
func (f *Forest) Version() string {
	return f.version
}

// CacheNamespace identifies this artifact in shared prediction caches:
// the declared version plus a hash of the trees, so a retrained model
// never reads labels cached for its predecessor.
func (f *Forest) CacheNamespace() string {
	if f.version == "" {
		return BackendForest + ":" + f.fingerprint
	}
	return BackendForest + ":" + f.version + ":" + f.fingerprint
}

// Close implements Model.
func (f *Forest) Close() error {
	f.closed.Store(true)
	return nil
}

// predict averages normalized leaf distributions across trees and returns
// the class with the highest mean probability; ties go to the lower index.
func (c *Classifier) predict(x []float64) string {
	proba := make([]float64, len(c.Classes))
	for i := range c.Trees {
		dist := c.Trees[i].leafValue(x)
		var total float64
		for _, v := range dist {
			total += v
		}
		if total == 0 {
			continue
		}
		for k, v := range dist {
			proba[k] += v / total
		}
	}

	best := 0
	for k := 1; k < len(proba); k++ {
		if proba[k] > proba[best] {
			best = k
		}
	}
	return c.Classes[best]
}

func (t *Tree) leafValue(x []float64) []float64 {
	node := 0
	for t.ChildrenLeft[node] != leaf {
		if x[t.Feature[node]] <= t.Threshold[node] {
			node = t.ChildrenLeft[node]
		} else {
			node = t.ChildrenRight[node]
		}
	}
	return t.Value[node]
}

func (c *Classifier) validate() error {
	if len(c.Classes) == 0 {
		return errors.New("model artifact has no classes")
	}
	for i, name := range c.Classes {
		if name == "" {
			return fmt.Errorf("model artifact: class %d has an empty label", i)
		}
	}
	if len(c.Trees) == 0 {
		return errors.New("model artifact has no trees")
	}
	for i := range c.Trees {
		if err := c.Trees[i].validate(len(c.Classes)); err != nil {
			return fmt.Errorf("tree %d: %w", i, err)
		}
	}
	return nil
}

// validate checks array shapes and that every child index points forward,
// which rules out cycles and guarantees leafValue terminates.
func (t *Tree) validate(numClasses int) error {
	n := len(t.ChildrenLeft)
	if n == 0 {
		return errors.New("empty tree")
	}
	if len(t.ChildrenRight) != n || len(t.Feature) != n || len(t.Threshold) != n || len(t.Value) != n {
		return fmt.Errorf("node arrays have mismatched lengths (%d nodes)", n)
	}
	for i := 0; i < n; i++ {
		l, r := t.ChildrenLeft[i], t.ChildrenRight[i]
		if l == leaf || r == leaf {
			if l != r {
				return fmt.Errorf("node %d: half-leaf (left=%d right=%d)", i, l, r)
			}
			if len(t.Value[i]) != numClasses {
				return fmt.Errorf("node %d: value has %d entries, want %d", i, len(t.Value[i]), numClasses)
			}
			continue
		}
		if l <= i || r <= i || l >= n || r >= n {
			return fmt.Errorf("node %d: child index out of range (left=%d right=%d)", i, l, r)
		}
		if f := t.Feature[i]; f < 0 || f >= NumFeatures {
			return fmt.Errorf("node %d: feature index %d out of range", i, f)
		}
	}
	return nil
}

var (
	_ Model         = (*Forest)(nil)
	_ SlotPredictor = (*Forest)(nil)
)
