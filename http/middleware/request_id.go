package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/xy-planning-network/prestapp"
)

// RequestIDHeader carries a request's ID to and from clients.
const RequestIDHeader = "X-Request-Id"

// RequestID adds a UUID to the request context under prestapp.RequestIDKey
// and echoes it in the response's RequestIDHeader.
//
// A UUID the client already sent in RequestIDHeader is reused.
func RequestID() Adapter {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := uuid.Parse(r.Header.Get(RequestIDHeader))
			if err != nil {
				id = uuid.New()
			}

			w.Header().Set(RequestIDHeader, id.String())
			ctx := context.WithValue(r.Context(), prestapp.RequestIDKey, id.String())
			h.ServeHTTP(w, r.Clone(ctx))
		})
	}
}
