package resp_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/xy-planning-network/prestapp"
	"github.com/xy-planning-network/prestapp/auth"
	"github.com/xy-planning-network/prestapp/http/req"
	"github.com/xy-planning-network/prestapp/http/resp"
	"github.com/xy-planning-network/prestapp/logger"
)

func newTestResponder() *resp.Responder {
	return resp.NewResponder(
		resp.WithLogger(logger.New(logger.WithWriter(io.Discard))),
		resp.WithContactErrMsg("contact us"),
	)
}

func testUser() prestapp.User {
	return prestapp.User{
		Model: prestapp.Model{ID: 1, CreatedAt: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)},
		Email: "ada@example.com",
		Name:  "Ada Lovelace",
	}
}

func withUser(r *http.Request, u prestapp.User) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), prestapp.CurrentUserKey, u))
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	m := make(map[string]any)
	require.Nil(t, json.NewDecoder(w.Body).Decode(&m))
	return m
}

func TestResponderJson(t *testing.T) {
	// Arrange
	d := newTestResponder()
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/loan/list", nil)

	// Act
	err := d.Json(w, r, resp.Data([]string{"a", "b"}))

	// Assert
	require.Nil(t, err)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "application/json; charset=UTF-8", w.Header().Get("Content-Type"))
	require.Equal(t, map[string]any{"data": []any{"a", "b"}}, decode(t, w))
}

func TestResponderJsonAuthed(t *testing.T) {
	// Arrange
	d := newTestResponder()
	w := httptest.NewRecorder()
	r := withUser(httptest.NewRequest(http.MethodGet, "/api/auth/session", nil), testUser())

	// Act
	err := d.Json(w, r, resp.Authed(), resp.Code(http.StatusCreated))

	// Assert
	require.Nil(t, err)
	require.Equal(t, http.StatusCreated, w.Code)

	m := decode(t, w)
	u, ok := m["currentUser"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "ada@example.com", u["email"])
	require.NotContains(t, m, "data")

	// Arrange
	w = httptest.NewRecorder()
	r = httptest.NewRequest(http.MethodGet, "/api/auth/session", nil)

	// Act
	err = d.Json(w, r, resp.Authed())

	// Assert
	require.ErrorIs(t, err, resp.ErrNoUser)
}

func TestResponderJsonNoContent(t *testing.T) {
	// Arrange
	d := newTestResponder()
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/auth/logoff", nil)

	// Act
	err := d.Json(w, r, resp.Code(http.StatusNoContent), resp.Data("ignored"))

	// Assert
	require.Nil(t, err)
	require.Equal(t, http.StatusNoContent, w.Code)
	require.Zero(t, w.Body.Len())
}

func TestResponderJsonCtxDone(t *testing.T) {
	// Arrange
	d := newTestResponder()
	w := httptest.NewRecorder()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx)

	// Act
	err := d.Json(w, r, resp.Data("x"))

	// Assert
	require.ErrorIs(t, err, resp.ErrDone)
}

func TestResponderErr(t *testing.T) {
	tcs := []struct {
		name     string
		err      error
		code     int
		expected map[string]any
	}{
		{
			"validation",
			fmt.Errorf("wrapped: %w", req.ValidationErrors{{Field: "email", Got: "", Rule: "required; string"}}),
			http.StatusBadRequest,
			map[string]any{
				"error": "Bad Request",
				"validationErrors": []any{
					map[string]any{"field": "email", "got": "", "rule": "required; string"},
				},
			},
		},
		{"not-authenticated", auth.ErrNotAuthenticated, http.StatusUnauthorized, map[string]any{"error": "Unauthorized"}},
		{"not-found", prestapp.ErrNotFound, http.StatusNotFound, map[string]any{"error": "Not Found"}},
		{"exists", prestapp.ErrExists, http.StatusConflict, map[string]any{"error": "Conflict"}},
		{"provider", fmt.Errorf("%w: secret stuff", auth.ErrProvider), http.StatusBadGateway, map[string]any{"error": "contact us"}},
		{"unexpected", errors.New("db password is hunter2"), http.StatusInternalServerError, map[string]any{"error": "contact us"}},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			d := newTestResponder()
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodPost, "/api/loan/create", nil)

			// Act
			d.Err(w, r, tc.err)

			// Assert
			require.Equal(t, tc.code, w.Code)
			require.Equal(t, tc.expected, decode(t, w))
		})
	}
}

func TestResponderErrCode(t *testing.T) {
	// Arrange
	d := newTestResponder()
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/user/list", nil)

	// Act
	d.Err(w, r, prestapp.ErrNotValid, resp.Code(http.StatusForbidden))

	// Assert
	require.Equal(t, http.StatusForbidden, w.Code)
	require.Equal(t, map[string]any{"error": "Forbidden"}, decode(t, w))
}

func TestResponderCurrentUser(t *testing.T) {
	// Arrange
	d := newTestResponder()
	ctx := context.Background()

	// Act
	_, err := d.CurrentUser(ctx)

	// Assert
	require.ErrorIs(t, err, resp.ErrNoUser)

	// Arrange
	ctx = context.WithValue(ctx, prestapp.CurrentUserKey, testUser())

	// Act
	u, err := d.CurrentUser(ctx)

	// Assert
	require.Nil(t, err)
	require.Equal(t, testUser(), u)
}

func TestStatusFor(t *testing.T) {
	tcs := []struct {
		err      error
		expected int
	}{
		{nil, http.StatusOK},
		{prestapp.ErrBadFormat, http.StatusBadRequest},
		{prestapp.ErrMissingData, http.StatusBadRequest},
		{resp.ErrNoUser, http.StatusUnauthorized},
		{prestapp.ErrUnexpected, http.StatusInternalServerError},
	}

	for _, tc := range tcs {
		require.Equal(t, tc.expected, resp.StatusFor(tc.err))
	}
}
