// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/hrdesk/internal/platform/ctxutil"
	"github.com/taibuivan/hrdesk/internal/platform/middleware"
	"github.com/taibuivan/hrdesk/internal/platform/sec"
)

type stubVerifier struct {
	claims *sec.AuthClaims
}

func (v stubVerifier) VerifyToken(token string) (*sec.AuthClaims, error) {
	if token != "good" {
		return nil, errors.New("bad token")
	}
	return v.claims, nil
}

var okHandler = http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
	writer.WriteHeader(http.StatusNoContent)
})

func serve(handler http.Handler, authorization string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	if authorization != "" {
		request.Header.Set("Authorization", authorization)
	}
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

/*
TestRequireRole covers the anonymous, malformed, insufficient and accepted
paths through Authenticate + RequireRole.
*/
func TestRequireRole(t *testing.T) {
	verifier := stubVerifier{claims: &sec.AuthClaims{UserID: "u1", Role: string(sec.RoleStaff)}}
	chain := middleware.Authenticate(verifier)

	tests := []struct {
		name   string
		role   sec.UserRole
		header string
		status int
	}{
		{"anonymous", sec.RoleStaff, "", http.StatusUnauthorized},
		{"malformed", sec.RoleStaff, "Token good", http.StatusUnauthorized},
		{"invalid", sec.RoleStaff, "Bearer nope", http.StatusUnauthorized},
		{"insufficient", sec.RoleAdmin, "Bearer good", http.StatusForbidden},
		{"accepted", sec.RoleStaff, "Bearer good", http.StatusNoContent},
		{"case-insensitive scheme", sec.RoleStaff, "bearer good", http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := chain(middleware.RequireRole(tt.role)(okHandler))
			assert.Equal(t, tt.status, serve(handler, tt.header).Code)
		})
	}
}

func TestAuthenticate_InjectsClaims(t *testing.T) {
	verifier := stubVerifier{claims: &sec.AuthClaims{UserID: "u1", Role: string(sec.RoleManager)}}

	var seen *sec.AuthClaims
	handler := middleware.Authenticate(verifier)(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		seen = ctxutil.GetAuthUser(request.Context())
	}))

	serve(handler, "Bearer good")
	if assert.NotNil(t, seen) {
		assert.Equal(t, "u1", seen.UserID)
	}
}

func TestRateLimiter(t *testing.T) {
	limiter := middleware.NewRateLimiter(0.001, 2)
	handler := limiter.Middleware(okHandler)

	request := func(ip string) int {
		r := httptest.NewRequest(http.MethodPost, "/", nil)
		r.Header.Set("X-Real-IP", ip)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)
		return w.Code
	}

	assert.Equal(t, http.StatusNoContent, request("10.0.0.1"))
	assert.Equal(t, http.StatusNoContent, request("10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, request("10.0.0.1"))

	// Buckets are per client.
	assert.Equal(t, http.StatusNoContent, request("10.0.0.2"))

	// Evicted clients start with a full bucket.
	limiter.Cleanup(-time.Second)
	assert.Equal(t, http.StatusNoContent, request("10.0.0.1"))
}

type corsConfig struct {
	dev     bool
	origins []string
}

func (c corsConfig) IsDevelopment() bool      { return c.dev }
func (c corsConfig) AllowedOrigins() []string { return c.origins }

func TestCORS(t *testing.T) {
	handler := middleware.CORS(corsConfig{origins: []string{"https://hr.example.com"}})(okHandler)

	allowed := httptest.NewRequest(http.MethodGet, "/", nil)
	allowed.Header.Set("Origin", "https://hr.example.com")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, allowed)
	assert.Equal(t, "https://hr.example.com", recorder.Header().Get("Access-Control-Allow-Origin"))

	denied := httptest.NewRequest(http.MethodGet, "/", nil)
	denied.Header.Set("Origin", "https://evil.example.org")
	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, denied)
	assert.Empty(t, recorder.Header().Get("Access-Control-Allow-Origin"))

	preflight := httptest.NewRequest(http.MethodOptions, "/", nil)
	preflight.Header.Set("Origin", "https://hr.example.com")
	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, preflight)
	assert.Equal(t, http.StatusNoContent, recorder.Code)
}

func TestRealIP(t *testing.T) {
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.RemoteAddr = "192.0.2.7:5555"
	assert.Equal(t, "192.0.2.7", middleware.RealIP(request))

	request.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	assert.Equal(t, "203.0.113.9", middleware.RealIP(request))
}
