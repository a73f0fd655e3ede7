package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"leaseo-backend/internal/domain"
	"leaseo-backend/internal/security"
)

const testSecret = "http-test-secret-0123456789abcdef012345"

func TestAuthMiddleware(t *testing.T) {
	tm := security.NewTokenManager(testSecret, time.Hour, 7*24*time.Hour)
	mw := NewAuthMiddleware(tm)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := PrincipalFromContext(r.Context())
		assert.True(t, ok)
		assert.Equal(t, int32(42), p.UserID)
		assert.Equal(t, domain.RoleVendor, p.Role)
		w.WriteHeader(http.StatusOK)
	})

	t.Run("Valid Access Token", func(t *testing.T) {
		token, err := tm.GenerateAccessToken(42, "vendor@test.com", domain.RoleVendor)
		assert.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/vendor/orders", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		mw.Handler(next).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("Missing Header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/vendor/orders", nil)
		rec := httptest.NewRecorder()

		mw.Handler(next).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("Wrong Scheme", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/vendor/orders", nil)
		req.Header.Set("Authorization", "Basic abc123")
		rec := httptest.NewRecorder()

		mw.Handler(next).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("Refresh Token Rejected", func(t *testing.T) {
		token, err := tm.GenerateRefreshToken(42, "vendor@test.com")
		assert.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/vendor/orders", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		mw.Handler(next).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRequireRole(t *testing.T) {
	handler := RequireRole(domain.RoleVendor, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("Matching Role", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		ctx := ContextWithPrincipal(req.Context(), domain.Principal{UserID: 1, Role: domain.RoleVendor})
		rec := httptest.NewRecorder()

		handler(rec, req.WithContext(ctx))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("Wrong Role", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		ctx := ContextWithPrincipal(req.Context(), domain.Principal{UserID: 1, Role: domain.RoleCustomer})
		rec := httptest.NewRecorder()

		handler(rec, req.WithContext(ctx))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("No Principal", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()

		handler(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"Validation", domain.ErrValidation, http.StatusBadRequest},
		{"Unauthorized", domain.ErrUnauthorized, http.StatusForbidden},
		{"Not Found", domain.ErrNotFound, http.StatusNotFound},
		{"State Conflict", domain.ErrStateConflict, http.StatusConflict},
		{"External Service", domain.ErrExternalService, http.StatusBadGateway},
		{"Persistence", domain.ErrPersistence, http.StatusInternalServerError},
		{"Timeout", context.DeadlineExceeded, http.StatusGatewayTimeout},
		{"Unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				writeError(w, r, tc.err)
			})
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			assert.Equal(t, tc.status, rec.Code)
			assert.Contains(t, rec.Body.String(), "error")
		})
	}
}
