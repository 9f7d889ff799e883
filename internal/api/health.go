// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/taibuivan/locallibrary/internal/platform/constants"
	"github.com/taibuivan/locallibrary/internal/platform/respond"
)

// HealthCheck probes one dependency. A nil error means healthy.
type HealthCheck func(context.Context) error

// HealthDependencies holds the injectable dependency checkers for the /ready endpoint.
type HealthDependencies struct {
	// DatabaseName labels the store in the readiness report ("postgres" or "sqlite").
	DatabaseName string

	// CheckDatabase pings the entity store.
	CheckDatabase HealthCheck

	// CheckCache pings Redis. Nil when the server runs without it.
	CheckCache HealthCheck
}

type healthHandler struct {
	dependencies HealthDependencies
	logger       *slog.Logger
}

type checkResult struct {
	Name  string `json:"name"`
	IsOK  bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// NewHealthHandlers creates the /health and /ready http.HandlerFuncs.
func NewHealthHandlers(deps HealthDependencies, logger *slog.Logger) (liveness, readiness http.HandlerFunc) {
	if deps.DatabaseName == "" {
		deps.DatabaseName = "database"
	}
	handler := &healthHandler{dependencies: deps, logger: logger}
	return handler.liveness, handler.readiness
}

// liveness handles GET /health (Liveness probe).
func (handler *healthHandler) liveness(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, map[string]string{constants.FieldStatus: "ok"})
}

// readiness handles GET /ready (Readiness probe).
func (handler *healthHandler) readiness(writer http.ResponseWriter, request *http.Request) {
	results := make([]checkResult, 0, 2)
	isSystemReady := true

	probe := func(name string, check HealthCheck) {
		if check == nil {
			return
		}
		result := checkResult{Name: name, IsOK: true}
		if err := check(request.Context()); err != nil {
			result.IsOK = false
			result.Error = err.Error()
			isSystemReady = false
			handler.logger.ErrorContext(request.Context(), "readiness_check_failed",
				slog.String("dependency", name),
				slog.Any("error", err),
			)
		}
		results = append(results, result)
	}

	probe(handler.dependencies.DatabaseName, handler.dependencies.CheckDatabase)
	probe("redis", handler.dependencies.CheckCache)

	payload := map[string]any{constants.FieldStatus: "ready", constants.FieldChecks: results}
	if !isSystemReady {
		payload[constants.FieldStatus] = "degraded"
		respond.JSON(writer, http.StatusServiceUnavailable, respond.SuccessEnvelope{Data: payload})
		return
	}

	respond.OK(writer, payload)
}
