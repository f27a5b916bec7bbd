// NutriPlan - Diet and Meal Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nutriplan

package models

import "strings"

// Slot is one of the fixed meal slots of a daily recommendation.
type Slot string

const (
	SlotBreakfast Slot = "breakfast"
	SlotLunch     Slot = "lunch"
	SlotDinner    Slot = "dinner"
)

// Slots returns the meal slots in serving order.
func Slots() []Slot {
	return []Slot{SlotBreakfast, SlotLunch, SlotDinner}
}

// Valid reports whether s is one of the three known slots.
func (s Slot) Valid() bool {
	switch s {
	case SlotBreakfast, SlotLunch, SlotDinner:
		return true
	}
	return false
}

// Label returns the display suffix for the slot, e.g. "Breakfast".
func (s Slot) Label() string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(string(s[:1])) + string(s[1:])
}

// MealName appends the slot label to a predicted recipe label:
// "Grilled Chicken" -> "Grilled Chicken (Lunch)".
func (s Slot) MealName(label string) string {
	return label + " (" + s.Label() + ")"
}

// Meal is a single recommended dish with its illustration.
type Meal struct {
	Name  string `json:"name" bson:"name"`
	Image string `json:"image" bson:"image"`
}

// MealPlan holds exactly one meal per slot.
type MealPlan struct {
	Breakfast Meal `json:"breakfast" bson:"breakfast"`
	Lunch     Meal `json:"lunch" bson:"lunch"`
	Dinner    Meal `json:"dinner" bson:"dinner"`
}

// Set stores meal under slot. Unknown slots are ignored.
func (p *MealPlan) Set(slot Slot, meal Meal) {
	switch slot {
	case SlotBreakfast:
		p.Breakfast = meal
	case SlotLunch:
		p.Lunch = meal
	case SlotDinner:
		p.Dinner = meal
	}
}

// Get returns the meal stored under slot.
func (p *MealPlan) Get(slot Slot) (Meal, bool) {
	switch slot {
	case SlotBreakfast:
		return p.Breakfast, true
	case SlotLunch:
		return p.Lunch, true
	case SlotDinner:
		return p.Dinner, true
	}
	return Meal{}, false
}

// Complete reports whether every slot has both a name and an image.
func (p *MealPlan) Complete() bool {
	for _, slot := range Slots() {
		m, _ := p.Get(slot)
		if m.Name == "" || m.Image == "" {
			return false
		}
	}
	return true
}

// fields renders the plan as a nested document keyed by slot.
func (p *MealPlan) fields() map[string]interface{} {
	out := make(map[string]interface{}, 3)
	for _, slot := range Slots() {
		m, _ := p.Get(slot)
		out[string(slot)] = map[string]interface{}{
			"name":  m.Name,
			"image": m.Image,
		}
	}
	return out
}
