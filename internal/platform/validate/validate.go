// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package validate provides a chainable Validator that collects field-level
// errors for a form submission.
//
// # Architecture
//
// This package is used exclusively in the service layer, never in handlers or
// storage. Every field reports at most one message: once a rule fails for a
// field, later rules for the same field are skipped. Different fields are all
// evaluated, so a submission reports every failing field at once.
package validate

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/taibuivan/locallibrary/internal/platform/apperr"
)

var (
	// ErrInvalidJSON is returned when the request body cannot be decoded.
	ErrInvalidJSON = apperr.BadRequest("Invalid JSON payload")

	// ErrInvalidForm is returned when a form-encoded body cannot be parsed.
	ErrInvalidForm = apperr.BadRequest("Invalid form payload")
)

// dateLayouts are the ISO-8601 shapes accepted for calendar dates.
// Reduced precision forms (a year, or a year and month) resolve to the first day.
var dateLayouts = []string{
	time.DateOnly,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01",
	"2006",
}

// Validator collects field-level validation errors via a fluent, chainable API.
//
// # Concurrency
//
// Validator is not safe for concurrent use. A new instance must be created
// for every submission.
type Validator struct {
	errs []apperr.FieldError
}

// Required fails if the trimmed value is empty.
func (v *Validator) Required(field, value, message string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.add(field, message)
	}
	return v
}

// MinLen fails with message if the Unicode character count is below min.
func (v *Validator) MinLen(field, value string, min int, message string) *Validator {
	if utf8.RuneCountInString(value) < min {
		v.add(field, message)
	}
	return v
}

// Alphanumeric fails if value contains anything other than ASCII letters and digits.
// An empty value is left to [Validator.Required].
func (v *Validator) Alphanumeric(field, value, message string) *Validator {
	if err := is.Alphanumeric.Validate(value); err != nil {
		v.add(field, message)
	}
	return v
}

// Date parses an optional ISO-8601 date.
//
// It returns nil when value is empty or does not parse; in the latter case the
// failure is recorded against field.
func (v *Validator) Date(field, value, message string) *time.Time {
	if strings.TrimSpace(value) == "" {
		return nil
	}

	parsed, err := ParseDate(value)
	if err != nil {
		v.add(field, message)
		return nil
	}
	return &parsed
}

// Failed reports whether field already has a recorded failure.
func (v *Validator) Failed(field string) bool {
	for _, e := range v.errs {
		if e.Field == field {
			return true
		}
	}
	return false
}

// Errors returns the collected failures in the order they were recorded.
func (v *Validator) Errors() []apperr.FieldError {
	return v.errs
}

// add appends a [apperr.FieldError] unless the field has already failed.
func (v *Validator) add(field, message string) {
	if v.Failed(field) {
		return
	}
	v.errs = append(v.errs, apperr.FieldError{Field: field, Message: message})
}

// ParseDate parses a trimmed ISO-8601 date or timestamp.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("validate: %q is not an ISO-8601 date", value)
}
