package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gymstack/gymcore/app/services"
)

type body struct {
	Msg    string            `json:"msg"`
	Errors map[string]string `json:"errors"`
}

func TestFailMapsServiceErrors(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"credentials", services.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid credentials"},
		{"cross tenant", fmt.Errorf("assign: %w", services.ErrCrossTenant), http.StatusForbidden, "Access denied"},
		{"not found", fmt.Errorf("get member: %w", services.ErrNotFound), http.StatusNotFound, "Not found"},
		{"email taken", services.ErrEmailTaken, http.StatusUnprocessableEntity, "Validation failed"},
		{"validation", &services.ValidationError{Fields: map[string]string{"currentDietPlan": "diet plan not found"}}, http.StatusUnprocessableEntity, "Validation failed"},
		{"throttled", services.ErrTooManyAttempts, http.StatusTooManyRequests, "Too many login attempts, try again later"},
		{"store", errors.New("database is locked"), http.StatusInternalServerError, "Server error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			fail(rec, httptest.NewRequest(http.MethodGet, "/", nil), tc.err)

			assert.Equal(t, tc.status, rec.Code)
			var b body
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &b))
			assert.Equal(t, tc.msg, b.Msg)
		})
	}
}

func TestFailKeepsValidationFields(t *testing.T) {
	rec := httptest.NewRecorder()
	fail(rec, httptest.NewRequest(http.MethodPost, "/", nil), services.ErrEmailTaken)

	var b body
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &b))
	assert.Equal(t, "The email has already been taken.", b.Errors["email"])
}

func TestStoreErrorsDoNotLeak(t *testing.T) {
	rec := httptest.NewRecorder()
	fail(rec, httptest.NewRequest(http.MethodGet, "/", nil), errors.New("dial tcp 10.0.0.3:5432: refused"))

	assert.NotContains(t, rec.Body.String(), "10.0.0.3")
}

func TestDecodeRejectsMalformedBody(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":`))

	var in services.LoginInput
	assert.False(t, decode(rec, req, &in))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestPathIDTreatsBadIDsAsNotFound(t *testing.T) {
	for _, raw := range []string{"abc", "0", "-1"} {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/members/"+raw, nil)
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("id", raw)
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

		_, ok := pathID(rec, req)
		assert.False(t, ok, raw)
		assert.Equal(t, http.StatusNotFound, rec.Code, raw)
	}
}
