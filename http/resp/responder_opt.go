package resp

import "github.com/xy-planning-network/prestapp/logger"

// A ResponderOptFn is a functional option configuring a Responder when constructing a new one.
type ResponderOptFn func(*Responder)

// WithContactErrMsg sets the message clients see when a server error occurs.
func WithContactErrMsg(msg string) ResponderOptFn {
	return func(d *Responder) {
		d.contactErrMsg = msg
	}
}

// WithLogger sets the logger.Logger the Responder uses.
func WithLogger(log logger.Logger) ResponderOptFn {
	return func(d *Responder) {
		d.logger = log
	}
}
