package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/xy-planning-network/prestapp"
)

// A LogRequestRecord is the access log entry LogRequest writes for each request.
type LogRequestRecord struct {
	BodySize       int    `json:"bodySize"`
	Duration       int64  `json:"durationMs"`
	Host           string `json:"host"`
	ID             string `json:"id"`
	IPAddr         string `json:"ipAddr"`
	Method         string `json:"method"`
	Path           string `json:"path"`
	Protocol       string `json:"protocol"`
	ReqContentType string `json:"reqContentType"`
	Referrer       string `json:"referrer"`
	Scheme         string `json:"scheme"`
	Status         int    `json:"status"`
	URI            string `json:"uri"`
	UserAgent      string `json:"userAgent"`
}

func (rec LogRequestRecord) attrs() []slog.Attr {
	return []slog.Attr{
		{Key: prestapp.LogKindKey, Value: prestapp.HTTPLogKind},
		slog.Int("bodySize", rec.BodySize),
		slog.Int64("durationMs", rec.Duration),
		slog.String("host", rec.Host),
		slog.String("id", rec.ID),
		slog.String("ipAddr", rec.IPAddr),
		slog.String("method", rec.Method),
		slog.String("path", rec.Path),
		slog.String("protocol", rec.Protocol),
		slog.String("reqContentType", rec.ReqContentType),
		slog.String("referrer", rec.Referrer),
		slog.String("scheme", rec.Scheme),
		slog.Int("status", rec.Status),
		slog.String("uri", rec.URI),
		slog.String("userAgent", rec.UserAgent),
	}
}

// LogRequest writes a LogRequestRecord for every request once it has been handled.
//
// LogRequest masks the values for the following query params:
// - password
//
// If l is nil, NoopAdapter returns and this middleware does nothing.
func LogRequest(l *slog.Logger) Adapter {
	if l == nil {
		return NoopAdapter
	}

	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			lw := &loggingWriter{ResponseWriter: w}
			h.ServeHTTP(lw, r)

			rec := newLogRequestRecord(r)
			rec.BodySize = lw.size
			rec.Duration = time.Since(start).Milliseconds()
			rec.Status = lw.status
			if rec.Status == 0 {
				rec.Status = http.StatusOK
			}

			l.LogAttrs(r.Context(), levelFor(rec.Status), "request", rec.attrs()...)
		})
	}
}

func newLogRequestRecord(r *http.Request) LogRequestRecord {
	uri := r.URL.Path
	q := r.URL.Query()
	prestapp.Mask(q, "password")
	if query := q.Encode(); query != "" {
		uri += "?" + query
	}

	rec := LogRequestRecord{
		Host:           r.Host,
		Method:         r.Method,
		Path:           r.URL.Path,
		Protocol:       r.Proto,
		ReqContentType: r.Header.Get("Content-Type"),
		Referrer:       r.Header.Get("Referrer"),
		Scheme:         r.URL.Scheme,
		URI:            uri,
		UserAgent:      r.UserAgent(),
	}

	rec.ID, _ = r.Context().Value(prestapp.RequestIDKey).(string)
	rec.IPAddr, _ = r.Context().Value(prestapp.IpAddrKey).(string)

	return rec
}

func levelFor(status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status >= http.StatusBadRequest:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

// A loggingWriter records the status code and number of bytes a handler writes.
type loggingWriter struct {
	http.ResponseWriter
	size   int
	status int
}

func (lw *loggingWriter) Write(b []byte) (int, error) {
	if lw.status == 0 {
		lw.status = http.StatusOK
	}

	n, err := lw.ResponseWriter.Write(b)
	lw.size += n
	return n, err
}

func (lw *loggingWriter) WriteHeader(status int) {
	if lw.status == 0 {
		lw.status = status
	}

	lw.ResponseWriter.WriteHeader(status)
}

func (lw *loggingWriter) Unwrap() http.ResponseWriter { return lw.ResponseWriter }
