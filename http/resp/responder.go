package resp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/xy-planning-network/prestapp"
	"github.com/xy-planning-network/prestapp/http/req"
	"github.com/xy-planning-network/prestapp/logger"
)

const (
	responderFrames = 1

	defaultContactErrMsg = "Something went wrong on our end. Please try again later."
)

// Responder maintains reusable pieces for responding to HTTP requests with JSON.
//
// Most oftentimes, setting up a single instance of a Responder suffices for an application.
//
// When handling a specific HTTP request, calling code supplies additional data
// and so forth through Fn functions.
type Responder struct {
	logger logger.Logger

	// Pool of *bytes.Buffer to prerender responses into
	pool *sync.Pool

	// Message clients see in place of a server error
	contactErrMsg string
}

// NewResponder constructs a *Responder using the ResponderOptFns passed in.
func NewResponder(opts ...ResponderOptFn) *Responder {
	d := &Responder{
		contactErrMsg: defaultContactErrMsg,
		pool:          &sync.Pool{New: func() any { return new(bytes.Buffer) }},
	}

	for _, opt := range opts {
		opt(d)
	}

	if d.logger == nil {
		d.logger = logger.New()
	}

	if l, ok := d.logger.(logger.SkipLogger); ok {
		d.logger = l.AddSkip(l.Skip() + responderFrames)
	}

	return d
}

// CurrentUser retrieves the user set in the context.
//
// If the context.Context has no user, ErrNoUser returns.
func (doer Responder) CurrentUser(ctx context.Context) (prestapp.User, error) {
	u, ok := ctx.Value(prestapp.CurrentUserKey).(prestapp.User)
	if !ok || !u.HasAccess() {
		return prestapp.User{}, fmt.Errorf("%w: none in %s", ErrNoUser, prestapp.CurrentUserKey)
	}

	return u, nil
}

type jsonSchema struct {
	D any `json:"data,omitempty"`
	U any `json:"currentUser,omitempty"`
}

type errSchema struct {
	Error            string               `json:"error"`
	ValidationErrors []req.ValidationError `json:"validationErrors,omitempty"`
}

// Err logs err and writes it as JSON with the status code StatusFor picks for it,
// unless Code is passed in opts.
//
// Validation failures are written with their "validationErrors".
// For server errors, clients only see the Responder's contact message.
func (doer *Responder) Err(w http.ResponseWriter, r *http.Request, err error, opts ...Fn) {
	if err == nil {
		err = fmt.Errorf("%w: Err called without an error", prestapp.ErrUnexpected)
	}

	rr, nested := doer.do(w, r, append([]Fn{Code(StatusFor(err))}, opts...)...)
	if errors.Is(nested, ErrDone) {
		return
	}

	if nested != nil {
		err = errors.Join(err, nested)
	}

	lc := newLogContext(r, err, rr.data, rr.user)
	payload := errSchema{Error: http.StatusText(rr.code)}
	switch {
	case rr.code >= http.StatusInternalServerError:
		doer.logger.Error(err.Error(), lc)
		payload.Error = doer.contactErrMsg

	case rr.code == http.StatusBadRequest:
		doer.logger.Info(err.Error(), lc)
		var ve req.ValidationErrors
		if errors.As(err, &ve) {
			payload.ValidationErrors = ve
		}

	default:
		doer.logger.Info(err.Error(), lc)
	}

	doer.write(w, rr.code, payload)
}

// Json responds with data in JSON format, collating it from User(), Data() and setting appropriate headers.
//
// When standard 2xx codes are supplied, the JSON schema will look like this:
//
//	{
//		"currentUser": {},
//		"data": {}
//	}
//
// Otherwise, "currentUser" is elided.
// With http.StatusNoContent, no body is written.
func (doer *Responder) Json(w http.ResponseWriter, r *http.Request, opts ...Fn) error {
	rr, err := doer.do(w, r, opts...)
	if err != nil {
		return err
	}

	if rr.code == 0 {
		rr.code = http.StatusOK
	}

	if rr.code == http.StatusNoContent {
		w.WriteHeader(rr.code)
		return nil
	}

	payload := jsonSchema{D: rr.data}
	if rr.code >= http.StatusOK && rr.code < http.StatusMultipleChoices && rr.user != nil {
		payload.U = rr.user
	}

	return doer.write(w, rr.code, payload)
}

// write encodes payload before writing any of the response,
// so an encoding failure can still become a 500.
func (doer *Responder) write(w http.ResponseWriter, code int, payload any) error {
	b := doer.pool.Get().(*bytes.Buffer)
	b.Reset()
	defer doer.pool.Put(b)

	if err := json.NewEncoder(b).Encode(payload); err != nil {
		doer.logger.Error("unable to encode response", &logger.LogContext{Error: err})
		http.Error(w, doer.contactErrMsg, http.StatusInternalServerError)
		return fmt.Errorf("%w: %s", prestapp.ErrUnexpected, err)
	}

	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(code)
	if _, err := b.WriteTo(w); err != nil {
		return err
	}

	return nil
}

// do applies all options to the passed in http.ResponseWriter and *http.Request.
//
// Calling code ought to pass Options in the correct order.
// An option requiring something set by another one should come after.
// do nonetheless retries options that return errors until all succeed
// or a set of options unable to succeed is reached.
func (doer *Responder) do(w http.ResponseWriter, r *http.Request, opts ...Fn) (*Response, error) {
	resp := &Response{w: w, r: r}

	redos := make([]Fn, 0)
	for _, opt := range opts {
		if r.Context().Err() != nil {
			return resp, ErrDone
		}

		if err := opt(*doer, resp); err != nil {
			redos = append(redos, opt)
		}
	}

	// NOTE: stop once a pass leaves the same number of failing options
	for n := -1; len(redos) > 0 && len(redos) != n; {
		if r.Context().Err() != nil {
			return resp, ErrDone
		}

		n = len(redos)
		redos = doer.redo(resp, redos...)
	}

	var err error
	for _, opt := range redos {
		err = errors.Join(err, opt(*doer, resp))
	}

	return resp, err
}

// redo applies as many Options as it can, returning those Options that continue to return an error.
func (doer *Responder) redo(r *Response, opts ...Fn) []Fn {
	bad := make([]Fn, 0)
	for _, opt := range opts {
		if err := opt(*doer, r); err != nil {
			bad = append(bad, opt)
		}
	}

	return bad
}

// newLogContext helps structure a logger.LogContext from the provided parts.
func newLogContext(r *http.Request, err error, data any, user *prestapp.User) *logger.LogContext {
	lc := &logger.LogContext{Request: r, Error: err}
	if mapped, ok := data.(map[string]any); ok {
		lc.Data = mapped
	}

	if user != nil {
		lc.User = *user
	}

	return lc
}
