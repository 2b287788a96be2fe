package middleware

import (
	"net/http"

	sentryhttp "github.com/getsentry/sentry-go/http"

	"github.com/xy-planning-network/prestapp"
)

// ReportPanic recovers panics in handlers and reports them to Sentry,
// except in development, where panics crash loudly.
func ReportPanic(env prestapp.Environment) Adapter {
	if env.IsDevelopment() {
		return NoopAdapter
	}

	sh := sentryhttp.New(sentryhttp.Options{
		Repanic:         false,
		WaitForDelivery: true,
	})

	return func(h http.Handler) http.Handler { return sh.Handle(h) }
}
