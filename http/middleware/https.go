package middleware

import (
	"net/http"
	"net/url"

	"github.com/xy-planning-network/prestapp"
)

// ForceHTTPS redirects HTTP requests to HTTPS when env requires secure cookies.
//
// "X-Forwarded-Proto" is checked since prestapp runs behind a load balancer terminating TLS.
// Only GET and HEAD are redirected; other methods get 403, since clients do not replay bodies on redirect.
func ForceHTTPS(env prestapp.Environment) Adapter {
	if !env.SecureCookies() {
		return NoopAdapter
	}

	return func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("X-Forwarded-Proto") == "https" || r.TLS != nil {
				handler.ServeHTTP(w, r)
				return
			}

			if r.Method != http.MethodGet && r.Method != http.MethodHead {
				http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
				return
			}

			u := new(url.URL)
			*u = *r.URL
			u.Scheme = "https"
			u.Host = r.Host

			http.Redirect(w, r, u.String(), http.StatusPermanentRedirect)
		})
	}
}
