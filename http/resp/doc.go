/*
The resp package provides a high-level API for responding to HTTP requests
with JSON, configured once application-wide.

Handlers compose a response from [Fn] options:

	err := responder.Json(w, r, resp.Authed(), resp.Data(loans))

Errors are written with [*Responder.Err], which picks a status code from the prestapp sentinel
the error wraps and never exposes the internals of a server error to the client.
*/
package resp
