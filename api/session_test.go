package api_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xy-planning-network/prestapp"
	"github.com/xy-planning-network/prestapp/auth"
)

func TestLogin(t *testing.T) {
	tcs := []struct {
		name     string
		authErr  error
		body     string
		expected int
		uid      uint
	}{
		{"Signed-In", nil, `{"username":"ada@example.com","password":"hunter22"}`, http.StatusOK, 1},
		{"Bad-Credentials", auth.ErrNotAuthenticated, `{"username":"ada@example.com","password":"nope"}`, http.StatusUnauthorized, 0},
		{"Provider-Down", fmt.Errorf("%w: throttled", auth.ErrProvider), `{"username":"ada@example.com","password":"hunter22"}`, http.StatusBadGateway, 0},
		{"No-Local-User", nil, `{"username":"ghost@example.com","password":"hunter22"}`, http.StatusUnauthorized, 0},
		{"Not-JSON", nil, `username=ada`, http.StatusBadRequest, 0},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			a := newTestApp(t, 0, func(a *testApp) { a.auth.err = tc.authErr })

			// Act
			w := a.do(http.MethodPost, "/api/auth/login", tc.body)

			// Assert
			require.Equal(t, tc.expected, w.Code)
			require.Equal(t, tc.uid, a.sessionUserID(t))
			if tc.expected != http.StatusOK {
				return
			}

			p := decode(t, w)
			var principal auth.Principal
			require.Nil(t, json.Unmarshal(p.Data, &principal))
			require.Equal(t, auth.Principal{ID: "sub-1", Email: "ada@example.com"}, principal)
			require.NotNil(t, p.CurrentUser)
			require.Equal(t, "Ada Lovelace", p.CurrentUser.Name)
		})
	}
}

func TestLoginWhenSignedIn(t *testing.T) {
	// Arrange
	a := newTestApp(t, 1)

	// Act
	w := a.do(http.MethodPost, "/api/auth/login", `{"username":"ada@example.com","password":"hunter22"}`)

	// Assert
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogoff(t *testing.T) {
	for _, uid := range []uint{0, 1} {
		t.Run(fmt.Sprint("uid-", uid), func(t *testing.T) {
			// Arrange
			a := newTestApp(t, uid)

			// Act
			w := a.do(http.MethodPost, "/api/auth/logoff", "")

			// Assert
			require.Equal(t, http.StatusNoContent, w.Code)
			require.Zero(t, w.Body.Len())
		})
	}
}

func TestSession(t *testing.T) {
	// Arrange
	a := newTestApp(t, 0)

	// Act
	w := a.do(http.MethodGet, "/api/auth/session", "")

	// Assert
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// Arrange
	a = newTestApp(t, 1)

	// Act
	w = a.do(http.MethodGet, "/api/auth/session", "")

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	p := decode(t, w)
	require.NotNil(t, p.CurrentUser)
	require.Equal(t, "ada@example.com", p.CurrentUser.Email)
}

func TestSignUp(t *testing.T) {
	tcs := []struct {
		name     string
		regErr   error
		body     string
		expected int
		invalid  []string
	}{
		{
			"Created",
			nil,
			`{"email":"grace@example.com","password":"cobol1","name":"Grace Hopper","phone":"5550000"}`,
			http.StatusCreated,
			nil,
		},
		{
			"Phone-Optional",
			nil,
			`{"email":"grace@example.com","password":"cobol1","name":"Grace Hopper"}`,
			http.StatusCreated,
			nil,
		},
		{
			"Not-Valid",
			nil,
			`{"email":"grace","password":"cob","name":"","phone":"555-0000"}`,
			http.StatusBadRequest,
			[]string{"email", "name", "password", "phone"},
		},
		{
			"Exists",
			fmt.Errorf("%w: grace@example.com", prestapp.ErrExists),
			`{"email":"grace@example.com","password":"cobol1","name":"Grace Hopper"}`,
			http.StatusConflict,
			nil,
		},
		{
			"Provider-Down",
			auth.ErrProvider,
			`{"email":"grace@example.com","password":"cobol1","name":"Grace Hopper"}`,
			http.StatusBadGateway,
			nil,
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			a := newTestApp(t, 0, func(a *testApp) { a.reg.err = tc.regErr })

			// Act
			w := a.do(http.MethodPost, "/api/signup", tc.body)

			// Assert
			require.Equal(t, tc.expected, w.Code)

			p := decode(t, w)
			if tc.invalid != nil {
				var fields []string
				for _, ve := range p.ValidationErrors {
					fields = append(fields, ve["field"].(string))
				}

				require.ElementsMatch(t, tc.invalid, fields)
				require.Empty(t, a.reg.got.Email)
				return
			}

			if tc.expected != http.StatusCreated {
				require.Zero(t, a.sessionUserID(t))
				return
			}

			var u prestapp.User
			require.Nil(t, json.Unmarshal(p.Data, &u))
			require.Equal(t, "grace@example.com", u.Email)
			require.Equal(t, uint(42), a.sessionUserID(t))
		})
	}
}
