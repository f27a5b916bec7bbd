// NutriPlan - Diet and Meal Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nutriplan

package model

import (
	"context"
	"errors"
	"strconv"

	"github.com/tomtom215/nutriplan/internal/models"
)

// NumFeatures is the width of the feature vector the classifier was trained on.
const NumFeatures = 4

var (
	// ErrSlotsUnsupported is returned by PredictSlot when the loaded model
	// has no per-slot classifiers.
	ErrSlotsUnsupported = errors.New("model does not support per-slot prediction")

	// ErrClosed is returned after Close.
	ErrClosed = errors.New("model is closed")
)

// Features is the engineered input of one prediction.
type Features struct {
	Weight float64
	Height float64
	Age    float64
	TDEE   float64
}

// Vector returns the features in training order: weight, height, age, tdee.
func (f Features) Vector() []float64 {
	return []float64{f.Weight, f.Height, f.Age, f.TDEE}
}

// Key is a stable string form of the vector, used as a cache key.
func (f Features) Key() string {
	buf := make([]byte, 0, 64)
	for i, v := range f.Vector() {
		if i > 0 {
			buf = append(buf, '|')
		}
		buf = strconv.AppendFloat(buf, v, 'g', -1, 64)
	}
	return string(buf)
}

// Predictor returns one recipe label for a feature vector.
type Predictor interface {
	Predict(ctx context.Context, f Features) (string, error)
}

// SlotPredictor is implemented by models that can predict a different label
// per meal slot. SupportsSlots reports whether the loaded artifact actually
// carries per-slot classifiers.
type SlotPredictor interface {
	Predictor
	PredictSlot(ctx context.Context, slot models.Slot, f Features) (string, error)
	SupportsSlots() bool
}

// Model is a Predictor with an explicit teardown.
type Model interface {
	Predictor
	Close() error
}

// SupportsSlots reports whether p can be asked once per meal slot.
func SupportsSlots(p Predictor) bool {
	sp, ok := p.(SlotPredictor)
	return ok && sp.SupportsSlots()
}
