package logger

import (
	"bytes"
	"encoding"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/xy-planning-network/prestapp"
)

var (
	_ encoding.TextMarshaler = LogContext{}
	_ slog.LogValuer         = LogContext{}
)

// maskedKeys are form and JSON keys whose values never reach a log.
var maskedKeys = []string{"password", "secretHash", "clientSecret"}

// LogUser is the interface exposing attributes of a user to a LogContext.
type LogUser interface {
	// GetID retrieves the application's identifier for a user.
	GetID() uint

	// GetEmail retrieves the email address of the user.
	GetEmail() string
}

// A LogContext provides additional information
// for a [Logger] method that cannot be tersely captured in the message itself.
type LogContext struct {
	// Data is any information pertinent at the time of the logging event.
	Data map[string]any

	// Error is the error that may or may not have instigated a logging event.
	Error error

	// Request is the *http.Request that may or may not have been open during the logging event.
	Request *http.Request

	// User is the user whose session was active during the logging event.
	User LogUser
}

// LogValue groups the non-zero fields of LogContext.
//
// LogValue implements [log/slog.LogValuer].
func (lc LogContext) LogValue() slog.Value {
	var attrs []slog.Attr
	if lc.Data != nil {
		attrs = append(attrs, slog.Any("data", lc.Data))
	}

	if lc.Error != nil {
		attrs = append(attrs, slog.String("error", lc.Error.Error()))
	}

	if r := lc.request(); len(r) > 0 {
		attrs = append(attrs, slog.Any("request", r))
	}

	if u := lc.user(); len(u) > 0 {
		attrs = append(attrs, slog.Any("user", u))
	}

	return slog.GroupValue(attrs...)
}

// MarshalText converts LogContext into a JSON representation,
// eliminating zero-value fields or fields not requiring logging.
//
// Values in LogContext.Data that cannot be represented in JSON will cause an error to be returned.
//
// MarshalText implements [encoding.TextMarshaler].
func (lc LogContext) MarshalText() ([]byte, error) {
	m := make(map[string]any)
	if lc.Data != nil {
		m["data"] = lc.Data
	}

	if lc.Error != nil {
		m["error"] = lc.Error.Error()
	}

	if r := lc.request(); len(r) > 0 {
		m["request"] = r
	}

	if u := lc.user(); len(u) > 0 {
		m["user"] = u
	}

	return json.Marshal(m)
}

// String stringifies LogContext as a JSON representation of it.
func (lc LogContext) String() string {
	b, err := lc.MarshalText()
	if err != nil {
		return ""
	}

	return string(b)
}

// request collects loggable parts of LogContext.Request.
// When the body is JSON, request reads it and restores it for later readers.
func (lc LogContext) request() map[string]any {
	if lc.Request == nil {
		return nil
	}

	r := make(map[string]any)
	r["method"] = lc.Request.Method
	r["url"] = lc.Request.URL.String()
	r["header"] = lc.Request.Header

	if ct := lc.Request.Header.Get("Content-Type"); ct == "application/json" && lc.Request.Body != nil {
		j := make(map[string]any)
		b := new(bytes.Buffer)
		tee := io.TeeReader(lc.Request.Body, b)
		if err := json.NewDecoder(tee).Decode(&j); err == nil {
			for _, k := range maskedKeys {
				if _, ok := j[k]; ok {
					j[k] = prestapp.LogMaskVal
				}
			}

			r["json"] = j
		}

		// NOTE: drain what the decoder did not read so the body is restored whole
		_, _ = io.Copy(b, lc.Request.Body)
		lc.Request.Body.Close()
		lc.Request.Body = io.NopCloser(b)
	}

	if lc.Request.Form != nil {
		form := make(url.Values, len(lc.Request.Form))
		for k, v := range lc.Request.Form {
			form[k] = v
		}

		for _, k := range maskedKeys {
			prestapp.Mask(form, k)
		}

		r["form"] = form
	}

	return r
}

func (lc LogContext) user() map[string]any {
	if lc.User == nil {
		return nil
	}

	u := make(map[string]any)
	if id := lc.User.GetID(); id != 0 {
		u["id"] = id
	}

	if email := lc.User.GetEmail(); email != "" {
		u["email"] = email
	}

	return u
}
