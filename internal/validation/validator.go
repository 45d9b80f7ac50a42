// Barkeep - Whisky Collection Analysis and Bottle Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// ErrorCode is the API error code for validation failures.
const ErrorCode = "VALIDATION_ERROR"

var (
	validate     *validator.Validate
	validateOnce sync.Once

	slugPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]{0,63}$`)
)

// ValidationError is one failed field.
type ValidationError struct {
	field   string
	tag     string
	param   string
	value   any
	message string
}

// Field returns the struct field name.
func (e *ValidationError) Field() string { return e.field }

// Tag returns the failed tag.
func (e *ValidationError) Tag() string { return e.tag }

// Param returns the tag parameter, "50" for max=50.
func (e *ValidationError) Param() string { return e.param }

// Value returns the rejected value.
func (e *ValidationError) Value() any { return e.value }

// Error returns the readable message.
func (e *ValidationError) Error() string { return e.message }

// RequestValidationError collects every failed field of one struct.
type RequestValidationError struct {
	errors []ValidationError
}

// Errors returns the failed fields in declaration order.
func (ve *RequestValidationError) Errors() []ValidationError {
	return ve.errors
}

// Error joins the field messages.
func (ve *RequestValidationError) Error() string {
	if len(ve.errors) == 0 {
		return "validation failed"
	}
	msgs := make([]string, len(ve.errors))
	for i := range ve.errors {
		msgs[i] = ve.errors[i].message
	}
	return strings.Join(msgs, "; ")
}

// APIError is the error body shape used by the api package. It is declared
// here to avoid an import cycle.
type APIError struct {
	Code    string
	Message string
	Details map[string]any
}

// ToAPIError converts the failure into an API error.
func (ve *RequestValidationError) ToAPIError() *APIError {
	switch len(ve.errors) {
	case 0:
		return &APIError{Code: ErrorCode, Message: "Validation failed"}
	case 1:
		e := ve.errors[0]
		return &APIError{
			Code:    ErrorCode,
			Message: e.message,
			Details: map[string]any{"field": e.field, "tag": e.tag},
		}
	}

	fields := make([]map[string]any, len(ve.errors))
	for i, e := range ve.errors {
		fields[i] = map[string]any{"field": e.field, "tag": e.tag, "message": e.message}
	}
	return &APIError{
		Code:    ErrorCode,
		Message: ve.Error(),
		Details: map[string]any{"fields": fields},
	}
}

// GetValidator returns the shared validator, creating it on first use.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		if err := validate.RegisterValidation("slug", validateSlug); err != nil {
			panic(fmt.Sprintf("register slug validator: %v", err))
		}
	})
	return validate
}

func validateSlug(fl validator.FieldLevel) bool {
	return slugPattern.MatchString(fl.Field().String())
}

// IsSlug reports whether s satisfies the slug tag.
func IsSlug(s string) bool {
	return slugPattern.MatchString(s)
}

// ValidateStruct validates s. It returns nil on success.
func ValidateStruct(s any) *RequestValidationError {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &RequestValidationError{errors: []ValidationError{{
			field:   "request",
			tag:     "invalid",
			message: err.Error(),
		}}}
	}

	out := make([]ValidationError, len(fieldErrs))
	for i, fe := range fieldErrs {
		out[i] = ValidationError{
			field:   fe.Field(),
			tag:     fe.Tag(),
			param:   fe.Param(),
			value:   fe.Value(),
			message: translate(fe),
		}
	}
	return &RequestValidationError{errors: out}
}

var plainMessages = map[string]string{
	"required": "%s is required",
	"slug":     "%s must be 1-64 letters, digits, '.', '_' or '-'",
	"url":      "%s must be a valid URL",
}

var paramMessages = map[string]string{
	"oneof": "%s must be one of: %s",
	"gte":   "%s must be greater than or equal to %s",
	"lte":   "%s must be less than or equal to %s",
	"gt":    "%s must be greater than %s",
	"lt":    "%s must be less than %s",
}

func translate(fe validator.FieldError) string {
	field, tag, param := fe.Field(), fe.Tag(), fe.Param()

	if tmpl, ok := plainMessages[tag]; ok {
		return fmt.Sprintf(tmpl, field)
	}
	if tmpl, ok := paramMessages[tag]; ok {
		return fmt.Sprintf(tmpl, field, param)
	}

	unit := ""
	switch fe.Kind().String() {
	case "string":
		unit = " characters"
	case "slice", "map":
		unit = " entries"
	}
	switch {
	case tag == "min" && unit != "":
		return fmt.Sprintf("%s must have at least %s%s", field, param, unit)
	case tag == "max" && unit != "":
		return fmt.Sprintf("%s must have at most %s%s", field, param, unit)
	case tag == "min":
		return fmt.Sprintf("%s must be at least %s", field, param)
	case tag == "max":
		return fmt.Sprintf("%s must be at most %s", field, param)
	default:
		return fmt.Sprintf("%s failed %s validation", field, tag)
	}
}
