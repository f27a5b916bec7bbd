// NutriPlan - Diet and Meal Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nutriplan

package recommend

import (
	"fmt"
	"time"
)

// Meal modes.
const (
	// MealModeShared asks the model once and reuses the label for every slot.
	MealModeShared = "shared"

	// MealModePerSlot asks the model once per slot. The model must
	// implement model.SlotPredictor.
	MealModePerSlot = "per_slot"
)

// Config controls the recommendation pipeline.
type Config struct {
	// MealMode is MealModeShared or MealModePerSlot.
	MealMode string `json:"meal_mode"`

	// StrictPersistence fails the request when the record cannot be stored.
	// When false the failure is logged and the recommendation is returned.
	StrictPersistence bool `json:"strict_persistence"`

	// Timeout bounds one Recommend call. Zero disables the deadline.
	Timeout time.Duration `json:"timeout"`
}

// DefaultConfig returns the production defaults.
func DefaultConfig() *Config {
	return &Config{
		MealMode: MealModeShared,
		Timeout:  10 * time.Second,
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	switch c.MealMode {
	case MealModeShared, MealModePerSlot:
	default:
		return fmt.Errorf("meal mode must be %q or %q, got %q", MealModeShared, MealModePerSlot, c.MealMode)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must be >= 0, got %v", c.Timeout)
	}
	return nil
}
