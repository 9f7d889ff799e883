// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package respond_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/locallibrary/internal/platform/apperr"
	"github.com/taibuivan/locallibrary/internal/platform/respond"
)

/*
TestError_AppError renders the status and code of an AppError.
*/
func TestError_AppError(t *testing.T) {
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/catalog/author/9", nil)

	respond.Error(recorder, request, apperr.NotFound("Author"))

	assert.Equal(t, http.StatusNotFound, recorder.Code)

	var body respond.ErrorEnvelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "NOT_FOUND", body.Code)
	assert.Equal(t, "Author not found", body.Error)
}

/*
TestError_PlainError hides unexpected errors behind a 500.
*/
func TestError_PlainError(t *testing.T) {
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/catalog", nil)

	respond.Error(recorder, request, errors.New("dial tcp: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.NotContains(t, recorder.Body.String(), "connection refused")
}

/*
TestRejected carries entity, details and status 422.
*/
func TestRejected(t *testing.T) {
	recorder := httptest.NewRecorder()
	details := []apperr.FieldError{{Field: "name", Message: "Genre name must contain at least 3 characters"}}

	respond.Rejected(recorder, map[string]string{"name": "SF"}, nil, details)

	assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "VALIDATION_ERROR", body["code"])
	assert.Equal(t, map[string]any{"name": "SF"}, body["data"])
	assert.NotContains(t, body, "form")
	assert.Len(t, body["details"], 1)
}

/*
TestCreated sets the Location header.
*/
func TestCreated(t *testing.T) {
	recorder := httptest.NewRecorder()

	respond.Created(recorder, "/catalog/genre/4", map[string]int{"id": 4})

	assert.Equal(t, http.StatusCreated, recorder.Code)
	assert.Equal(t, "/catalog/genre/4", recorder.Header().Get("Location"))
}

/*
TestSeeOther redirects with 303.
*/
func TestSeeOther(t *testing.T) {
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/catalog/author/7/delete", nil)

	respond.SeeOther(recorder, request, "/catalog/authors")

	assert.Equal(t, http.StatusSeeOther, recorder.Code)
	assert.Equal(t, "/catalog/authors", recorder.Header().Get("Location"))
}
