// NutriPlan - Diet and Meal Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nutriplan

package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/tomtom215/nutriplan/internal/apperr"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// FieldError is one rejected request field.
type FieldError struct {
	field   string
	tag     string
	message string
}

// Field returns the JSON name of the field.
func (e FieldError) Field() string { return e.field }

// Tag returns the failed validation tag.
func (e FieldError) Tag() string { return e.tag }

// Error returns the client-facing message, e.g. "weight is required".
func (e FieldError) Error() string { return e.message }

// RequestValidationError collects every rejected field of one request.
type RequestValidationError struct {
	fields []FieldError
}

// Errors returns the rejected fields in struct order.
func (e *RequestValidationError) Errors() []FieldError {
	return e.fields
}

// Error joins the field messages with "; ".
func (e *RequestValidationError) Error() string {
	if len(e.fields) == 0 {
		return "validation failed"
	}
	parts := make([]string, len(e.fields))
	for i := range e.fields {
		parts[i] = e.fields[i].message
	}
	return strings.Join(parts, "; ")
}

// AppError converts the failure into a KindValidation error whose public
// message lists every rejected field.
func (e *RequestValidationError) AppError(op string) *apperr.Error {
	return apperr.Validation(op, e.Error())
}

// GetValidator returns the shared validator, building it on first use.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = newValidator()
	})
	return validate
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonFieldName)
	v.RegisterCustomTypeFunc(numberValue, Number{})
	v.RegisterCustomTypeFunc(integerValue, Integer{})
	for tag, fn := range map[string]validator.Func{
		tagNumeric: validateNumeric,
		tagInteger: validateInteger,
	} {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("register %s validator: %v", tag, err))
		}
	}
	return v
}

// jsonFieldName makes messages use the request body's field names.
func jsonFieldName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return fld.Name
	}
	return name
}

// ValidateStruct checks s against its validate tags. It returns nil when
// every field passes.
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    respondAppError(w, r, verr.AppError(op))
//	    return
//	}
func ValidateStruct(s interface{}) *RequestValidationError {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &RequestValidationError{fields: []FieldError{{
			field:   "body",
			tag:     "invalid",
			message: err.Error(),
		}}}
	}

	out := &RequestValidationError{fields: make([]FieldError, 0, len(fieldErrs))}
	for _, fe := range fieldErrs {
		out.fields = append(out.fields, FieldError{
			field:   fe.Field(),
			tag:     fe.Tag(),
			message: fe.Field() + " " + constraint(fe),
		})
	}
	return out
}

// constraint phrases the failed rule, e.g. "must be a number".
func constraint(fe validator.FieldError) string {
	param := fe.Param()
	switch fe.Tag() {
	case "required":
		return "is required"
	case tagNumeric:
		return "must be a number"
	case tagInteger:
		return "must be an integer"
	case "email":
		return "must be a valid email address"
	case "oneof":
		return "must be one of: " + param
	case "gte":
		return "must be greater than or equal to " + param
	case "lte":
		return "must be less than or equal to " + param
	case "gt":
		return "must be greater than " + param
	case "lt":
		return "must be less than " + param
	case "min", "max":
		bound := "at least "
		if fe.Tag() == "max" {
			bound = "at most "
		}
		if fe.Kind() == reflect.String {
			return "must be " + bound + param + " characters"
		}
		return "must be " + bound + param
	}
	return "failed " + fe.Tag() + " validation"
}
