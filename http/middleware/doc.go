/*
Package middleware defines what a middleware is in prestapp and the set prestapp's router applies.

The available middlewares are:
- CORS
- CurrentUser
- ForceHTTPS
- Idempotent
- InjectIPAddress
- InjectSession
- LogRequest
- RateLimit
- ReportPanic
- RequestID
- RequireAuthed
- RequireUnauthed

A typical chain looks like:

	adpts := []middleware.Adapter{
		middleware.ReportPanic(env),
		middleware.RequestID(),
		middleware.InjectIPAddress(),
		middleware.LogRequest(log.Slog()),
		middleware.RateLimit(responder, middleware.NewVisitors()),
		middleware.ForceHTTPS(env),
		middleware.CORS(origin),
		middleware.InjectSession(sessionStore),
		middleware.CurrentUser(responder, userStore),
	}
*/
package middleware
