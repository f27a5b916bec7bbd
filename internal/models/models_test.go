// NutriPlan - Diet and Meal Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nutriplan

package models

import (
	"testing"

	"github.com/goccy/go-json"
)

func TestSlot_MealName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		slot Slot
		want string
	}{
		{SlotBreakfast, "Oatmeal Bowl (Breakfast)"},
		{SlotLunch, "Oatmeal Bowl (Lunch)"},
		{SlotDinner, "Oatmeal Bowl (Dinner)"},
	}
	for _, tt := range tests {
		if got := tt.slot.MealName("Oatmeal Bowl"); got != tt.want {
			t.Errorf("MealName(%s) = %q, want %q", tt.slot, got, tt.want)
		}
	}
}

func TestSlot_Valid(t *testing.T) {
	t.Parallel()

	for _, s := range Slots() {
		if !s.Valid() {
			t.Errorf("%s should be valid", s)
		}
	}
	if Slot("brunch").Valid() {
		t.Error("brunch should not be valid")
	}
}

func TestMealPlan_SetGetComplete(t *testing.T) {
	t.Parallel()

	var plan MealPlan
	if plan.Complete() {
		t.Fatal("empty plan reported complete")
	}

	for _, s := range Slots() {
		plan.Set(s, Meal{Name: s.MealName("Soup"), Image: "https://img/" + string(s)})
	}
	plan.Set(Slot("brunch"), Meal{Name: "ignored"})

	if !plan.Complete() {
		t.Fatal("plan with all slots set should be complete")
	}
	if m, ok := plan.Get(SlotLunch); !ok || m.Name != "Soup (Lunch)" {
		t.Errorf("Get(lunch) = %+v, %v", m, ok)
	}
	if _, ok := plan.Get(Slot("brunch")); ok {
		t.Error("Get(brunch) should report false")
	}
}

func TestMealPlan_JSONShape(t *testing.T) {
	t.Parallel()

	plan := MealPlan{
		Breakfast: Meal{Name: "a", Image: "x"},
		Lunch:     Meal{Name: "b", Image: "y"},
		Dinner:    Meal{Name: "c", Image: "z"},
	}
	data, err := json.Marshal(plan)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var decoded map[string]map[string]string
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(decoded) != 3 {
		t.Fatalf("expected 3 slots, got %d", len(decoded))
	}
	if decoded["dinner"]["name"] != "c" || decoded["breakfast"]["image"] != "x" {
		t.Errorf("unexpected payload: %s", data)
	}
}

func TestRecommendationRecord_Fields(t *testing.T) {
	t.Parallel()

	rec := RecommendationRecord{
		Weight:        70,
		Height:        175,
		Age:           30,
		Gender:        "male",
		ActivityLevel: "moderate",
	}
	fields := rec.Fields()

	if fields["email"] != AnonymousEmail {
		t.Errorf("email = %v, want %q", fields["email"], AnonymousEmail)
	}
	if fields["age"] != 30 {
		t.Errorf("age = %v", fields["age"])
	}
	nested, ok := fields["recommendation"].(map[string]interface{})
	if !ok || len(nested) != 3 {
		t.Fatalf("recommendation = %#v", fields["recommendation"])
	}
	if _, ok := fields["_id"]; ok {
		t.Error("record fields must not carry an identifier")
	}
}
