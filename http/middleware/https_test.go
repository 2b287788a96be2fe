package middleware_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xy-planning-network/prestapp"
	"github.com/xy-planning-network/prestapp/http/middleware"
)

func TestForceHTTPS(t *testing.T) {
	// Arrange + Act
	actual := middleware.ForceHTTPS(prestapp.Development)

	// Assert
	require.Equal(t, fmt.Sprintf("%p", middleware.NoopAdapter), fmt.Sprintf("%p", actual))

	tcs := []struct {
		name     string
		method   string
		proto    string
		expected int
	}{
		{"Forwarded-HTTPS", http.MethodPost, "https", http.StatusTeapot},
		{"Redirect-GET", http.MethodGet, "", http.StatusPermanentRedirect},
		{"Refuse-POST", http.MethodPost, "http", http.StatusForbidden},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			w := httptest.NewRecorder()
			r := httptest.NewRequest(tc.method, "http://example.com/api/loan/list?email=a", nil)
			if tc.proto != "" {
				r.Header.Set("X-Forwarded-Proto", tc.proto)
			}

			// Act
			middleware.ForceHTTPS(prestapp.Production)(teapotHandler()).ServeHTTP(w, r)

			// Assert
			require.Equal(t, tc.expected, w.Code)
			if tc.expected == http.StatusPermanentRedirect {
				require.Equal(t, "https://example.com/api/loan/list?email=a", w.Header().Get("Location"))
			}
		})
	}
}
