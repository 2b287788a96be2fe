package session_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xy-planning-network/prestapp"
	"github.com/xy-planning-network/prestapp/http/session"
)

func TestNewStoreService(t *testing.T) {
	notHex := "ðŸ˜…"
	hex := "ABCD"

	tcs := []struct {
		name string
		cfg  session.Config
	}{
		{"no-env", session.Config{SessionName: "s", AuthKey: hex, EncryptKey: hex}},
		{"no-name", session.Config{Env: prestapp.Testing, AuthKey: hex, EncryptKey: hex}},
		{"bad-auth-key", session.Config{Env: prestapp.Testing, SessionName: "s", AuthKey: notHex, EncryptKey: hex}},
		{"bad-encrypt-key", session.Config{Env: prestapp.Testing, SessionName: "s", AuthKey: hex, EncryptKey: notHex}},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			svc, err := session.NewStoreService(tc.cfg)

			// Assert
			require.ErrorIs(t, err, prestapp.ErrBadConfig)
			require.Zero(t, svc)
		})
	}

	// Arrange
	r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)
	cfg := session.Config{Env: prestapp.Testing, SessionName: "prestapp", AuthKey: hex, EncryptKey: hex}

	// Act
	svc, err := session.NewStoreService(cfg, session.WithMaxAge(60))

	// Assert
	require.Nil(t, err)
	require.NotZero(t, svc)
	require.NotPanics(t, func() { svc.GetSession(r) })
}

func TestServiceRoundTrip(t *testing.T) {
	// Arrange
	cfg := session.Config{
		Env:         prestapp.Testing,
		SessionName: "prestapp",
		AuthKey:     "0123456789abcdef0123456789abcdef",
		EncryptKey:  "0123456789abcdef0123456789abcdef",
	}
	svc, err := session.NewStoreService(cfg)
	require.Nil(t, err)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	s, err := svc.GetSession(r)
	require.Nil(t, err)

	// Act
	err = s.RegisterUser(w, r, 7, "sub-7")

	// Assert
	require.Nil(t, err)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, "prestapp", cookies[0].Name)
	require.True(t, cookies[0].HttpOnly)

	// Arrange
	next := httptest.NewRequest(http.MethodGet, "/api/auth/session", nil)
	next.AddCookie(cookies[0])

	// Act
	s, err = svc.GetSession(next)

	// Assert
	require.Nil(t, err)
	id, err := s.UserID()
	require.Nil(t, err)
	require.Equal(t, uint(7), id)
	require.Equal(t, "sub-7", s.Subject())
	require.False(t, s.AuthenticatedAt().IsZero())
}
