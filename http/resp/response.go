package resp

import (
	"net/http"

	"github.com/xy-planning-network/prestapp"
)

// A Fn is a functional option that mutates the state of the Response.
type Fn func(Responder, *Response) error

// A Response is the internal object a Responder response method builds while applying all
// functional options.
type Response struct {
	w    http.ResponseWriter
	r    *http.Request
	code int
	data any
	user *prestapp.User
}

// Authed sets the response's user to the one in the request's context.
//
// If there is none, it is assumed a user is not logged in and ErrNoUser returns.
func Authed() Fn {
	return func(d Responder, r *Response) error {
		if r.user != nil {
			return nil
		}

		u, err := d.CurrentUser(r.r.Context())
		if err != nil {
			return err
		}

		return User(u)(d, r)
	}
}

// Code sets the response status code.
func Code(c int) Fn {
	return func(_ Responder, r *Response) error {
		r.code = c
		return nil
	}
}

// Data stores d for writing to the client under "data".
func Data(d any) Fn {
	return func(_ Responder, r *Response) error {
		r.data = d
		return nil
	}
}

// User stores u for writing to the client under "currentUser".
func User(u prestapp.User) Fn {
	return func(_ Responder, r *Response) error {
		r.user = &u
		return nil
	}
}
