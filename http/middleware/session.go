package middleware

import (
	"context"
	"net/http"

	"github.com/xy-planning-network/prestapp"
	"github.com/xy-planning-network/prestapp/http/session"
)

// InjectSession stores the session associated with the *http.Request in *http.Request.Context
// under prestapp.SessionKey.
//
// If store is nil, NoopAdapter returns and this middleware does nothing.
func InjectSession(store session.SessionStorer) Adapter {
	if store == nil {
		return NoopAdapter
	}

	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// NOTE: a cookie that fails to decode still yields a fresh session
			s, _ := store.GetSession(r)
			ctx := context.WithValue(r.Context(), prestapp.SessionKey, s)
			h.ServeHTTP(w, r.Clone(ctx))
		})
	}
}

// GetSession pulls the session.Session InjectSession stored in ctx.
func GetSession(ctx context.Context) (session.Session, bool) {
	s, ok := ctx.Value(prestapp.SessionKey).(session.Session)
	return s, ok
}
