// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package respond provides HTTP response helpers used by all API handlers.
//
// # Architecture
//
// This package centralizes the presentation logic for HTTP responses.
// It ensures that every response (Success or Error) across the entire application
// follows a strict, predictable JSON envelope structure.
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/taibuivan/locallibrary/internal/platform/apperr"
	"github.com/taibuivan/locallibrary/internal/platform/constants"
	"github.com/taibuivan/locallibrary/internal/platform/ctxutil"
)

// SuccessEnvelope is the JSON envelope for successful single-resource responses.
type SuccessEnvelope struct {
	Data interface{} `json:"data"`
}

// ErrorEnvelope is the JSON envelope for error responses.
type ErrorEnvelope struct {
	Error   string              `json:"error"`
	Code    string              `json:"code"`
	Details []apperr.FieldError `json:"details,omitempty"`
}

// RejectedEnvelope is returned for a form submission that failed validation.
//
// Data holds the sanitized entity so the client can redisplay what was typed;
// Form optionally carries the pick-lists needed to redraw the form.
type RejectedEnvelope struct {
	Data    interface{}         `json:"data"`
	Form    interface{}         `json:"form,omitempty"`
	Error   string              `json:"error"`
	Code    string              `json:"code"`
	Details []apperr.FieldError `json:"details"`
}

// JSON writes a JSON response with the given status code.
func JSON(writer http.ResponseWriter, statusCode int, payload interface{}) {
	writer.Header().Set(constants.HeaderContentType, "application/json; charset=utf-8")
	writer.WriteHeader(statusCode)
	_ = json.NewEncoder(writer).Encode(payload)
}

// OK writes a 200 OK response with data wrapped in the standard success envelope.
func OK(writer http.ResponseWriter, data interface{}) {
	JSON(writer, http.StatusOK, SuccessEnvelope{Data: data})
}

// Created writes a 201 Created response pointing at location.
func Created(writer http.ResponseWriter, location string, data interface{}) {
	writer.Header().Set(constants.HeaderLocation, location)
	JSON(writer, http.StatusCreated, SuccessEnvelope{Data: data})
}

// Located writes a 200 OK response pointing at the canonical location of data.
func Located(writer http.ResponseWriter, location string, data interface{}) {
	writer.Header().Set(constants.HeaderLocation, location)
	OK(writer, data)
}

// Conflict writes a 409 response carrying data (e.g. a blocked deletion and its dependents).
func Conflict(writer http.ResponseWriter, data interface{}) {
	JSON(writer, http.StatusConflict, SuccessEnvelope{Data: data})
}

// Rejected writes a 422 response for a submission that failed validation.
func Rejected(writer http.ResponseWriter, data, form interface{}, details []apperr.FieldError) {
	validation := apperr.ValidationError("Validation failed", details...)
	JSON(writer, validation.HTTPStatus, RejectedEnvelope{
		Data:    data,
		Form:    form,
		Error:   validation.Message,
		Code:    validation.Code,
		Details: validation.Details,
	})
}

// SeeOther redirects the client to location with 303.
func SeeOther(writer http.ResponseWriter, request *http.Request, location string) {
	http.Redirect(writer, request, location, http.StatusSeeOther)
}

// NoContent writes a 204 No Content response.
func NoContent(writer http.ResponseWriter) {
	writer.WriteHeader(http.StatusNoContent)
}

// Error converts any Go error into a standardized JSON API error response.
func Error(writer http.ResponseWriter, request *http.Request, err error) {
	logger := ctxutil.GetLogger(request.Context())

	appError := apperr.As(err)
	if appError == nil {
		// Unexpected internal error: log full details but hide them from the client for security.
		logger.ErrorContext(request.Context(), "unhandled_error_swallowed",
			slog.String("error", err.Error()),
			slog.String("request_id", ctxutil.GetRequestID(request.Context())),
		)
		appError = apperr.Internal(err)
	}

	// Always log 5xx errors as they indicate server-side issues.
	if appError.HTTPStatus >= 500 {
		logger.ErrorContext(request.Context(), "api_server_error",
			slog.String("code", appError.Code),
			slog.String("request_id", ctxutil.GetRequestID(request.Context())),
			slog.Any("cause", appError.Cause),
		)
	}

	JSON(writer, appError.HTTPStatus, ErrorEnvelope{
		Error:   appError.Message,
		Code:    appError.Code,
		Details: appError.Details,
	})
}
