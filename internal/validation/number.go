// NutriPlan - Diet and Meal Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nutriplan

package validation

import (
	"bytes"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
)

// Validation tags for Number and Integer fields.
const (
	tagNumeric = "numeric_value"
	tagInteger = "integer_value"
)

// Number is a request field that accepts a JSON number or a numeric
// string such as "70.5". Unparseable input is kept and reported by the
// numeric_value validation tag rather than failing the whole decode.
type Number struct {
	value float64
	raw   string
	valid bool
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*n = Number{raw: string(data)}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		n.raw = s
		data = []byte(strings.TrimSpace(s))
	}

	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	n.value = f
	n.valid = true
	return nil
}

// Valid reports whether the input parsed as a finite number.
func (n Number) Valid() bool { return n.valid }

// Float64 returns the parsed value.
func (n Number) Float64() float64 { return n.value }

// numberValue exposes a Number to the validator as a float64, or as its raw
// text when it did not parse.
func numberValue(v reflect.Value) interface{} {
	n, ok := v.Interface().(Number)
	if !ok {
		return nil
	}
	if n.valid {
		return n.value
	}
	return n.raw
}

func validateNumeric(fl validator.FieldLevel) bool {
	switch fl.Field().Kind() {
	case reflect.Float32, reflect.Float64,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	}
	return false
}

// Integer is a request field holding a whole number in the int32 range.
// A JSON number is truncated toward zero; a string must spell an integer
// ("30", " 30 ", "+30"), so "30.9" and "1e2" are rejected.
type Integer struct {
	value int
	raw   string
	valid bool
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *Integer) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*n = Integer{raw: string(data)}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		n.raw = s
		i, err := strconv.ParseInt(strings.TrimSpace(s), 10, 32)
		if err != nil {
			return nil
		}
		n.value = int(i)
		n.valid = true
		return nil
	}

	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	f = math.Trunc(f)
	if f < math.MinInt32 || f > math.MaxInt32 {
		return nil
	}
	n.value = int(f)
	n.valid = true
	return nil
}

// Valid reports whether the input was an in-range integer.
func (n Integer) Valid() bool { return n.valid }

// Int returns the parsed value.
func (n Integer) Int() int { return n.value }

// integerValue exposes an Integer to the validator as an int64, or as its
// raw text when it did not parse.
func integerValue(v reflect.Value) interface{} {
	n, ok := v.Interface().(Integer)
	if !ok {
		return nil
	}
	if n.valid {
		return int64(n.value)
	}
	return n.raw
}

func validateInteger(fl validator.FieldLevel) bool {
	return fl.Field().Kind() == reflect.Int64
}
