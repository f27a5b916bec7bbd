// NutriPlan - Diet and Meal Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nutriplan

package recommend

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/nutriplan/internal/apperr"
	"github.com/tomtom215/nutriplan/internal/energy"
	"github.com/tomtom215/nutriplan/internal/metrics"
	"github.com/tomtom215/nutriplan/internal/model"
	"github.com/tomtom215/nutriplan/internal/models"
	"github.com/tomtom215/nutriplan/internal/store"
)

// ImageResolver picks an illustration for a meal.
type ImageResolver interface {
	Resolve(recipeName string, slot models.Slot) string
}

// RecordWriter appends recommendation records.
type RecordWriter interface {
	InsertOne(ctx context.Context, doc store.Document) (string, error)
}

// Engine turns a profile into a daily meal plan. It is safe for concurrent
// use; collaborators are shared read-only.
type Engine struct {
	config  *Config
	logger  zerolog.Logger
	model   model.Predictor
	images  ImageResolver
	records RecordWriter

	requestCount    atomic.Int64
	errorCount      atomic.Int64
	persistFailures atomic.Int64
}

// Stats is a snapshot of engine counters.
type Stats struct {
	Requests        int64 `json:"requests"`
	Errors          int64 `json:"errors"`
	PersistFailures int64 `json:"persist_failures"`
}

// NewEngine creates an engine. In MealModePerSlot the predictor must
// support per-slot prediction.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, predictor model.Predictor, images ImageResolver, records RecordWriter, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if predictor == nil || images == nil || records == nil {
		return nil, fmt.Errorf("recommend engine requires a model, an image resolver and a record writer")
	}
	if cfg.MealMode == MealModePerSlot && !model.SupportsSlots(predictor) {
		return nil, fmt.Errorf("meal mode %q: %w", MealModePerSlot, model.ErrSlotsUnsupported)
	}

	return &Engine{
		config:  cfg,
		logger:  logger.With().Str("component", "recommend").Logger(),
		model:   predictor,
		images:  images,
		records: records,
	}, nil
}

// Recommend runs the pipeline: energy estimate, model prediction, slot
// expansion, image lookup and record persistence.
//
//nolint:gocritic // hugeParam: p passed by value for immutability
func (e *Engine) Recommend(ctx context.Context, p Profile) (*models.Recommendation, error) {
	start := time.Now()
	e.requestCount.Add(1)

	if err := p.Validate(); err != nil {
		e.finish("invalid", start)
		return nil, err
	}

	if e.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.config.Timeout)
		defer cancel()
	}

	est := energy.Calculate(p.Weight, p.Height, p.Age, p.Gender, p.ActivityLevel)

	plan, err := e.plan(ctx, p.features(est.TDEE))
	if err != nil {
		e.errorCount.Add(1)
		e.finish("error", start)
		return nil, apperr.Internal("recommend.predict", err)
	}

	if err := e.persist(ctx, &p, plan); err != nil {
		e.errorCount.Add(1)
		e.finish("error", start)
		return nil, apperr.Internal("recommend.persist", err)
	}

	e.finish("success", start)
	e.logger.Debug().
		Float64("tdee", est.TDEE).
		Str("breakfast", plan.Breakfast.Name).
		Dur("latency", time.Since(start)).
		Msg("recommendation complete")

	return &models.Recommendation{
		TDEE:  energy.Round2(est.TDEE),
		BMR:   energy.Round2(est.BMR),
		Meals: plan,
	}, nil
}

// plan predicts labels and expands them into the three meal slots.
func (e *Engine) plan(ctx context.Context, f model.Features) (models.MealPlan, error) {
	var plan models.MealPlan

	var shared string
	if e.config.MealMode == MealModeShared {
		label, err := e.model.Predict(ctx, f)
		if err != nil {
			return plan, fmt.Errorf("predict: %w", err)
		}
		shared = label
	}

	for _, slot := range models.Slots() {
		label := shared
		if e.config.MealMode == MealModePerSlot {
			sp, ok := e.model.(model.SlotPredictor)
			if !ok {
				return plan, model.ErrSlotsUnsupported
			}
			var err error
			label, err = sp.PredictSlot(ctx, slot, f)
			if err != nil {
				return plan, fmt.Errorf("predict %s: %w", slot, err)
			}
		}

		name := slot.MealName(label)
		plan.Set(slot, models.Meal{
			Name:  name,
			Image: e.images.Resolve(name, slot),
		})
	}
	return plan, nil
}

// persist writes the audit record. A failure is returned only under
// StrictPersistence.
func (e *Engine) persist(ctx context.Context, p *Profile, plan models.MealPlan) error {
	rec := p.record(plan)
	if _, err := e.records.InsertOne(ctx, store.Document(rec.Fields())); err != nil {
		e.persistFailures.Add(1)
		metrics.RecordPersistFailures.Inc()
		if e.config.StrictPersistence {
			return fmt.Errorf("store recommendation: %w", err)
		}
		e.logger.Warn().Err(err).Msg("Failed to store recommendation record")
	}
	return nil
}

func (e *Engine) finish(result string, start time.Time) {
	metrics.RecordRecommendation(e.config.MealMode, result, time.Since(start))
}

// MealMode returns the configured meal mode.
func (e *Engine) MealMode() string {
	return e.config.MealMode
}

// Stats returns the engine counters.
func (e *Engine) Stats() Stats {
	return Stats{
		Requests:        e.requestCount.Load(),
		Errors:          e.errorCount.Load(),
		PersistFailures: e.persistFailures.Load(),
	}
}
