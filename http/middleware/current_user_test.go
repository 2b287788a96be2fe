package middleware_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xy-planning-network/prestapp"
	"github.com/xy-planning-network/prestapp/http/middleware"
	"github.com/xy-planning-network/prestapp/http/session"
)

type testUserStore map[uint]prestapp.User

func (s testUserStore) GetByID(_ context.Context, id uint) (prestapp.User, error) {
	u, ok := s[id]
	if !ok {
		return prestapp.User{}, fmt.Errorf("%w: user %d", prestapp.ErrNotFound, id)
	}

	return u, nil
}

func TestCurrentUser(t *testing.T) {
	// Arrange + Act
	actual := middleware.CurrentUser(nil, nil)

	// Assert
	require.Equal(t, fmt.Sprintf("%p", middleware.NoopAdapter), fmt.Sprintf("%p", actual))

	users := testUserStore{1: testUser(1), 2: {Email: "no-access@example.com"}}

	tcs := []struct {
		name     string
		store    session.SessionStorer
		expected int
		user     bool
	}{
		{"No-Session", nil, http.StatusUnauthorized, false},
		{"Anonymous", session.NewStub(0), http.StatusTeapot, false},
		{"Signed-In", session.NewStub(1), http.StatusTeapot, true},
		{"Unknown-User", session.NewStub(3), http.StatusUnauthorized, false},
		{"No-Access", session.NewStub(2), http.StatusUnauthorized, false},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			var found bool
			h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, found = r.Context().Value(prestapp.CurrentUserKey).(prestapp.User)
				w.WriteHeader(http.StatusTeapot)
			})

			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/api/auth/session", nil)

			// Act
			middleware.Chain(
				h,
				middleware.InjectSession(tc.store),
				middleware.CurrentUser(newTestResponder(), users),
			).ServeHTTP(w, r)

			// Assert
			require.Equal(t, tc.expected, w.Code)
			require.Equal(t, tc.user, found)
			if tc.user {
				require.Equal(t, "no-store", w.Header().Get("Cache-Control"))
			}
		})
	}
}

type failingUserStore struct{ err error }

func (s failingUserStore) GetByID(context.Context, uint) (prestapp.User, error) {
	return prestapp.User{}, s.err
}

func TestCurrentUserLookupFails(t *testing.T) {
	tcs := []struct {
		name     string
		err      error
		expected int
		maxAge   int
	}{
		{"Not-Found", fmt.Errorf("%w: user 1", prestapp.ErrNotFound), http.StatusUnauthorized, -1},
		{"Database-Down", fmt.Errorf("%w: connection refused", prestapp.ErrUnexpected), http.StatusInternalServerError, 0},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			stub := session.NewStub(1)
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/api/auth/session", nil)

			// Act
			middleware.Chain(
				teapotHandler(),
				middleware.InjectSession(stub),
				middleware.CurrentUser(newTestResponder(), failingUserStore{tc.err}),
			).ServeHTTP(w, r)

			// Assert
			require.Equal(t, tc.expected, w.Code)

			s, err := stub.Get(r, "stub")
			require.Nil(t, err)
			require.Equal(t, tc.maxAge, s.Options.MaxAge)
		})
	}
}

func TestRequireAuthed(t *testing.T) {
	// Arrange
	d := newTestResponder()
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/loan/list", nil)

	// Act
	middleware.RequireAuthed(d)(teapotHandler()).ServeHTTP(w, r)

	// Assert
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.JSONEq(t, `{"error":"Unauthorized"}`, w.Body.String())

	// Arrange
	w = httptest.NewRecorder()
	r = withUser(httptest.NewRequest(http.MethodPost, "/api/loan/list", nil), testUser(1))

	// Act
	middleware.RequireAuthed(d)(teapotHandler()).ServeHTTP(w, r)

	// Assert
	require.Equal(t, http.StatusTeapot, w.Code)
}

func TestRequireUnauthed(t *testing.T) {
	// Arrange
	d := newTestResponder()
	w := httptest.NewRecorder()
	r := withUser(httptest.NewRequest(http.MethodPost, "/api/auth/login", nil), testUser(1))

	// Act
	middleware.RequireUnauthed(d)(teapotHandler()).ServeHTTP(w, r)

	// Assert
	require.Equal(t, http.StatusBadRequest, w.Code)

	// Arrange
	w = httptest.NewRecorder()
	r = httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)

	// Act
	middleware.RequireUnauthed(d)(teapotHandler()).ServeHTTP(w, r)

	// Assert
	require.Equal(t, http.StatusTeapot, w.Code)
}
