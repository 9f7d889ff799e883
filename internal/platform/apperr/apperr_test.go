// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/locallibrary/internal/platform/apperr"
)

/*
TestConstructors checks the code and status assigned by every constructor.
*/
func TestConstructors(t *testing.T) {
	tests := []struct {
		name   string
		err    *apperr.AppError
		code   string
		status int
	}{
		{"not_found", apperr.NotFound("Author"), "NOT_FOUND", http.StatusNotFound},
		{"bad_request", apperr.BadRequest("Invalid ID"), "BAD_REQUEST", http.StatusBadRequest},
		{"conflict", apperr.Conflict("in use", nil), "CONFLICT", http.StatusConflict},
		{"validation", apperr.ValidationError("Validation failed"), "VALIDATION_ERROR", http.StatusUnprocessableEntity},
		{"rate_limited", apperr.RateLimited(3), "RATE_LIMITED", http.StatusTooManyRequests},
		{"unprocessable", apperr.Unprocessable("too long", nil), "UNPROCESSABLE", http.StatusUnprocessableEntity},
		{"internal", apperr.Internal(errors.New("boom")), "INTERNAL_ERROR", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.status, tt.err.HTTPStatus)
		})
	}
}

/*
TestNotFound_Message verifies the resource name is used in the client message.
*/
func TestNotFound_Message(t *testing.T) {
	assert.Equal(t, "Book copy not found", apperr.NotFound("Book copy").Error())
}

/*
TestInternal_HidesCause ensures the cause is reachable through the chain but not
part of the client message.
*/
func TestInternal_HidesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := apperr.Internal(cause)

	assert.Equal(t, "An unexpected error occurred", err.Error())
	assert.ErrorIs(t, err, cause)
}

/*
TestAs extracts an AppError from a wrapped chain.
*/
func TestAs(t *testing.T) {
	wrapped := fmt.Errorf("service: %w", apperr.NotFound("Genre"))

	ae := apperr.As(wrapped)
	require.NotNil(t, ae)
	assert.Equal(t, "Genre not found", ae.Message)
	assert.True(t, apperr.IsCode(wrapped, "NOT_FOUND"))

	assert.Nil(t, apperr.As(errors.New("plain")))
	assert.False(t, apperr.IsCode(errors.New("plain"), "NOT_FOUND"))
}
