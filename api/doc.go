/*
Package api handles prestapp's JSON endpoints.

Handlers are thin: they parse and validate the request with [req.Parser],
check the signed in user may touch the resource,
call a service, and respond through [resp.Responder].

	POST /api/signup          sign up and sign in
	POST /api/auth/login      sign in
	POST /api/auth/logoff     sign out
	GET  /api/auth/session    the signed in user
	POST /api/loan/create     apply for a loan
	POST /api/loan/list       loans applied for by an email, newest first
	GET  /api/loan/list       same, with ?email=
	POST /api/user/list       the user with an email
	POST /api/user/update     change a user's name and phone number
	GET  /healthz             liveness, including the database

Endpoints carrying an email only serve the signed in user's own email.
*/
package api
