package middleware

import (
	"net/http"

	"github.com/gorilla/handlers"
)

// CORS sets "Access-Control-Allow" style headers on a response
// so the single-page client served from origins can call the API with its session cookie.
//
// Routes including this middleware must also handle http.MethodOptions.
func CORS(origins ...string) Adapter {
	return handlers.CORS(
		handlers.AllowCredentials(),
		handlers.AllowedHeaders([]string{
			"Content-Type",
			IdempotencyHeader,
			RequestIDHeader,
		}),
		handlers.AllowedOrigins(origins),
		handlers.AllowedMethods([]string{
			http.MethodGet,
			http.MethodHead,
			http.MethodOptions,
			http.MethodPost,
		}),
		handlers.ExposedHeaders([]string{RequestIDHeader}),
	)
}
