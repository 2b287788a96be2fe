package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/gob"
	"io"
	"net/http"

	"github.com/xy-planning-network/prestapp"
	"github.com/xy-planning-network/prestapp/http/resp"
)

// IdempotencyHeader carries the client-chosen key identifying a single submission.
const IdempotencyHeader = "Idempotency-Key"

var _ http.ResponseWriter = idemReqWriter{}

// Idempotent guards a POST endpoint against the same submission being processed twice,
// e.g. a loan application re-sent by a double click or a flaky connection.
//
// Requests without an IdempotencyHeader pass through untouched.
//
// If a previous request has not used the key,
// Idempotent pairs all of the following values to it:
// - the hash of the request body
// - the body of the resulting response
// - the status code of the resulting response
//
// If that key has been used before (and has not expired),
// Idempotent falls into one of these scenarios:
//
//   - if a status code has not been set for that key,
//     Idempotent responds with 409 since the original request is still processing
//
//   - if the requested URI or the request body do not match the original's,
//     Idempotent responds with 422
//
//   - otherwise, Idempotent replays the status code and body stored for the key
//
// If cache is nil, Idempotent uses an IdemResMap.
//
// Idempotent follows the draft Idempotency-Key HTTP Header Field specification:
// https://tools.ietf.org/id/draft-idempotency-header-01.html
func Idempotent(d *resp.Responder, cache IdempotencyCacher) Adapter {
	if d == nil {
		return NoopAdapter
	}

	if cache == nil {
		cache = NewIdemResMap()
	}

	return func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get(IdempotencyHeader)
			if key == "" || r.Method != http.MethodPost {
				handler.ServeHTTP(w, r)
				return
			}

			body, err := io.ReadAll(r.Body)
			if err != nil {
				d.Err(w, r, err)
				return
			}

			r.Body = io.NopCloser(bytes.NewReader(body))
			sum := sha256.Sum256(body)

			ir, ok := cache.Get(r.Context(), key)
			if ok {
				switch {
				case ir.Status == 0:
					d.Err(w, r, prestapp.ErrExists, resp.Code(http.StatusConflict))

				case ir.URI != r.URL.RequestURI() || !bytes.Equal(ir.Req, sum[:]):
					d.Err(w, r, prestapp.ErrNotValid, resp.Code(http.StatusUnprocessableEntity))

				default:
					w.Header().Set("Content-Type", "application/json; charset=UTF-8")
					w.WriteHeader(ir.Status)
					w.Write(ir.Body.Bytes())
				}

				return
			}

			ir = NewIdemRes(r.URL.RequestURI(), sum[:])
			cache.Set(r.Context(), key, ir)

			handler.ServeHTTP(idemReqWriter{ctx: r.Context(), c: cache, i: &ir, k: key, w: w}, r)
		})
	}
}

// An IdemRes is data from an HTTP response
// that can be reused when another request
// matches the same idempotency key.
type IdemRes struct {
	Body   *bytes.Buffer
	Req    []byte
	Status int
	URI    string
}

// An idemResGob is an intermediate representation of
// an IdemRes for the purposes of gob encoding/decoding.
type idemResGob struct {
	B []byte
	R []byte
	S int
	U string
}

// NewIdemRes constructs a new IdemRes.
func NewIdemRes(uri string, hashedBody []byte) IdemRes {
	return IdemRes{Body: bytes.NewBuffer(nil), URI: uri, Req: hashedBody}
}

// GobDecode implements gob.GobDecoder.
func (i *IdemRes) GobDecode(b []byte) error {
	g := new(idemResGob)
	if err := gob.NewDecoder(bytes.NewReader(b)).Decode(g); err != nil {
		return err
	}

	i.Body = bytes.NewBuffer(g.B)
	i.Req, i.Status, i.URI = g.R, g.S, g.U
	return nil
}

// GobEncode implements gob.GobEncoder.
func (i IdemRes) GobEncode() ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	g := idemResGob{i.Body.Bytes(), i.Req, i.Status, i.URI}
	if err := gob.NewEncoder(buf).Encode(g); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// An idemReqWriter pairs an IdemRes with an http.ResponseWriter
// so both are written to by an HTTP handler.
// Changes to the IdemRes are saved in the cache.
type idemReqWriter struct {
	ctx context.Context
	c   IdempotencyCacher
	i   *IdemRes
	k   string
	w   http.ResponseWriter
}

func (irw idemReqWriter) Header() http.Header { return irw.w.Header() }

func (irw idemReqWriter) Write(b []byte) (int, error) {
	if irw.i.Status == 0 {
		irw.WriteHeader(http.StatusOK)
	}

	n, err := irw.w.Write(b)
	if err != nil {
		return n, err
	}

	irw.i.Body.Write(b)
	irw.c.Set(irw.ctx, irw.k, *irw.i)
	return n, nil
}

func (irw idemReqWriter) WriteHeader(s int) {
	irw.w.WriteHeader(s)
	irw.i.Status = s
	irw.c.Set(irw.ctx, irw.k, *irw.i)
}
