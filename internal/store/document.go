// NutriPlan - Diet and Meal Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nutriplan

package store

import (
	"reflect"
)

// String returns doc[key] when it is a string.
func (d Document) String(key string) (string, bool) {
	s, ok := d[key].(string)
	return s, ok
}

// WithoutID returns a shallow copy of d without IDField.
func (d Document) WithoutID() Document {
	out := make(Document, len(d))
	for k, v := range d {
		if k != IDField {
			out[k] = v
		}
	}
	return out
}

// Matches reports whether every filter entry equals the document field.
func (f Filter) Matches(doc Document) bool {
	for k, want := range f {
		got, ok := doc[k]
		if !ok || !valuesEqual(got, want) {
			return false
		}
	}
	return true
}

// merge applies patch to doc in place and reports whether anything changed.
func merge(doc, patch Document) bool {
	changed := false
	for k, v := range patch {
		if k == IDField {
			continue
		}
		if old, ok := doc[k]; ok && valuesEqual(old, v) {
			continue
		}
		doc[k] = cloneValue(v)
		changed = true
	}
	return changed
}

// valuesEqual compares decoded values, treating all numeric kinds as
// float64 so 30 (int) equals 30.0 (JSON number).
func valuesEqual(a, b interface{}) bool {
	if fa, ok := toFloat(a); ok {
		fb, ok := toFloat(b)
		return ok && fa == fb
	}
	switch av := a.(type) {
	case map[string]interface{}:
		return mapsEqual(av, asMap(b))
	case Document:
		return mapsEqual(av, asMap(b))
	case []interface{}:
		bv, ok := b.([]interface{})
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !valuesEqual(av[i], bv[i]) {
				return false
			}
		}
		return true
	}
	return reflect.DeepEqual(a, b)
}

func mapsEqual(a, b map[string]interface{}) bool {
	if b == nil || len(a) != len(b) {
		return false
	}
	for k, v := range a {
		w, ok := b[k]
		if !ok || !valuesEqual(v, w) {
			return false
		}
	}
	return true
}

func asMap(v interface{}) map[string]interface{} {
	switch m := v.(type) {
	case map[string]interface{}:
		return m
	case Document:
		return m
	}
	return nil
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}

// cloneDocument deep-copies maps and slices so callers never share state
// with the store.
func cloneDocument(d Document) Document {
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		m := make(map[string]interface{}, len(t))
		for k, e := range t {
			m[k] = cloneValue(e)
		}
		return m
	case Document:
		return map[string]interface{}(cloneDocument(t))
	case []interface{}:
		s := make([]interface{}, len(t))
		for i, e := range t {
			s[i] = cloneValue(e)
		}
		return s
	}
	return v
}
