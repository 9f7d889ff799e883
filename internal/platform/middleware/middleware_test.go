// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/locallibrary/internal/platform/ctxutil"
	"github.com/taibuivan/locallibrary/internal/platform/middleware"
)

var okHandler = http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
	writer.WriteHeader(http.StatusOK)
})

/*
TestRequestID checks that a client ID is kept and a missing one is generated.
*/
func TestRequestID(t *testing.T) {
	var seen string
	handler := middleware.RequestID()(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		seen = ctxutil.GetRequestID(request.Context())
	}))

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set("X-Request-ID", "abc-123")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, "abc-123", seen)
	assert.Equal(t, "abc-123", recorder.Header().Get("X-Request-ID"))

	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Len(t, seen, 36)
	assert.Equal(t, seen, recorder.Header().Get("X-Request-ID"))
}

func TestRealIP(t *testing.T) {
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.RemoteAddr = "10.0.0.9:5555"
	assert.Equal(t, "10.0.0.9", middleware.RealIP(request))

	request.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	assert.Equal(t, "203.0.113.7", middleware.RealIP(request))

	request.Header.Set("X-Real-IP", "198.51.100.2")
	assert.Equal(t, "198.51.100.2", middleware.RealIP(request))
}

/*
TestPanicRecovery checks that a panicking handler answers 500.
*/
func TestPanicRecovery(t *testing.T) {
	handler := middleware.PanicRecovery(slog.New(slog.NewTextHandler(io.Discard, nil)))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	recorder := httptest.NewRecorder()
	require.NotPanics(t, func() {
		handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	})
	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.JSONEq(t, `{"error":"An unexpected error occurred","code":"INTERNAL_ERROR"}`, recorder.Body.String())
}

type corsConfig struct {
	development bool
	origins     []string
}

func (c corsConfig) IsDevelopment() bool { return c.development }
func (c corsConfig) Origins() []string   { return c.origins }

/*
TestCORS checks origin matching by suffix outside development.
*/
func TestCORS(t *testing.T) {
	tests := []struct {
		name    string
		cfg     corsConfig
		origin  string
		allowed bool
	}{
		{"development allows any", corsConfig{development: true}, "http://anything.test", true},
		{"suffix match", corsConfig{origins: []string{"library.example"}}, "https://www.library.example", true},
		{"no match", corsConfig{origins: []string{"library.example"}}, "https://evil.test", false},
		{"blank suffix ignored", corsConfig{origins: []string{" "}}, "https://evil.test", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodOptions, "/catalog", nil)
			request.Header.Set("Origin", tt.origin)
			recorder := httptest.NewRecorder()

			middleware.CORS(tt.cfg)(okHandler).ServeHTTP(recorder, request)

			assert.Equal(t, http.StatusNoContent, recorder.Code)
			if tt.allowed {
				assert.Equal(t, tt.origin, recorder.Header().Get("Access-Control-Allow-Origin"))
			} else {
				assert.Empty(t, recorder.Header().Get("Access-Control-Allow-Origin"))
			}
		})
	}
}

/*
TestRateLimit_MemoryLimiter checks that the burst is enforced per client.
*/
func TestRateLimit_MemoryLimiter(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	handler := middleware.RateLimit(middleware.NewMemoryLimiter(ctx, 0.001, 2))(okHandler)

	send := func(ip string) *httptest.ResponseRecorder {
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.RemoteAddr = ip + ":1234"
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)
		return recorder
	}

	assert.Equal(t, http.StatusOK, send("192.0.2.1").Code)
	assert.Equal(t, http.StatusOK, send("192.0.2.1").Code)

	limited := send("192.0.2.1")
	assert.Equal(t, http.StatusTooManyRequests, limited.Code)
	assert.Equal(t, "1", limited.Header().Get("Retry-After"))
	assert.JSONEq(t, `{"error":"Too many requests. Try again in 1s.","code":"RATE_LIMITED"}`, limited.Body.String())

	assert.Equal(t, http.StatusOK, send("192.0.2.2").Code)
}

type brokenLimiter struct{}

func (brokenLimiter) Allow(context.Context, string) (bool, error) {
	return false, errors.New("redis down")
}

func TestRateLimit_FailsOpen(t *testing.T) {
	recorder := httptest.NewRecorder()
	middleware.RateLimit(brokenLimiter{})(okHandler).ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
}
