// Package response defines the interface the core request pipeline
// consumes from its response collaborator (spec.md §4's "Response
// bridge"), plus a default implementation that writes a real HTTP/1.x
// response onto the underlying stream.
package response

import (
	"fmt"
	"io"
	"net/textproto"
	"sort"
	"strconv"

	"httpfront/internal/wire"
)

// StatusCode is an HTTP/1.x response status.
type StatusCode int

const (
	OK                  StatusCode = 200
	BadRequest          StatusCode = 400
	NotFound            StatusCode = 404
	MethodNotAllowed    StatusCode = 405
	PayloadTooLarge     StatusCode = 413
	InternalServerError StatusCode = 500
)

var reason = map[StatusCode]string{
	OK:                  "OK",
	BadRequest:          "Bad Request",
	NotFound:            "Not Found",
	MethodNotAllowed:    "Method Not Allowed",
	PayloadTooLarge:     "Payload Too Large",
	InternalServerError: "Internal Server Error",
}

const httpVersion = "HTTP/1.1"

// Bridge is what the pipeline needs from a response: a way to tell it
// which method/origin the request carried, a one-shot error shortcut,
// a completion callback carrying the reusable bit, and access to the
// underlying stream for the rare handler that wants to take it over
// directly (spec.md §4's component table).
type Bridge interface {
	SetMethod(method string)
	SetOrigin(origin string)
	// Error writes a bodyless status-only reply and finishes the
	// response as non-reusable.
	Error(code StatusCode) error
	// OnDone registers the callback the pipeline uses to learn when
	// the response is finished and whether the stream may be reused.
	OnDone(func(reusable bool))
	// Stream returns the underlying connection.
	Stream() io.ReadWriteCloser
}

// Writer is the default Bridge implementation: an HTTP/1.x status
// line/header/body writer over an io.ReadWriteCloser, adapted from the
// teacher's response.Writer (status-line/header writing, sorted header
// emission) and extended with the construct/method/origin/done-callback
// surface spec.md §4.6 requires.
type Writer struct {
	stream io.ReadWriteCloser
	method string
	origin string

	Status  StatusCode
	Headers wire.Headers

	doneCB func(reusable bool)
	done   bool
}

// NewWriter constructs a Writer over stream (the "construct" operation
// of the response bridge).
func NewWriter(stream io.ReadWriteCloser) *Writer {
	return &Writer{
		stream:  stream,
		Status:  OK,
		Headers: wire.NewHeaders(),
	}
}

func (w *Writer) SetMethod(method string) { w.method = method }
func (w *Writer) SetOrigin(origin string) { w.origin = origin }

func (w *Writer) Stream() io.ReadWriteCloser { return w.stream }

func (w *Writer) OnDone(cb func(reusable bool)) { w.doneCB = cb }

// Finish signals completion to the pipeline. reusable tells the
// pipeline whether the underlying stream may carry another request
// (spec.md glossary "Reusable"). Calling Finish more than once is a
// no-op — a response completes exactly once.
func (w *Writer) Finish(reusable bool) {
	if w.done {
		return
	}
	w.done = true
	if w.doneCB != nil {
		w.doneCB(reusable)
	}
}

// Error writes a minimal status-only reply for code and finishes the
// response non-reusable — error replies always close the connection in
// this implementation, matching §4.2's "DISPATCH: ... write the
// corresponding status with no body" for a delayed reply.
func (w *Writer) Error(code StatusCode) error {
	w.Status = code
	if err := w.WriteStatusLine(code); err != nil {
		w.Finish(false)
		return err
	}
	h := wire.NewHeaders()
	h.Set("Content-Length", "0")
	h.Set("Connection", "close")
	if err := w.WriteHeaders(h); err != nil {
		w.Finish(false)
		return err
	}
	w.Finish(false)
	return nil
}

// WriteStatusLine writes "HTTP/1.1 <code> <reason>\r\n".
func (w *Writer) WriteStatusLine(code StatusCode) error {
	r, ok := reason[code]
	if !ok {
		r = "Unknown"
	}
	_, err := fmt.Fprintf(w.stream, "%s %d %s\r\n", httpVersion, int(code), r)
	return err
}

// WriteHeaders writes h (overlaid with any headers already set on
// w.Headers) in sorted, canonicalized order, followed by the blank
// line terminating the header block.
func (w *Writer) WriteHeaders(h wire.Headers) error {
	if h == nil {
		h = wire.NewHeaders()
	}
	for k := range w.Headers {
		h.Override(k, w.Headers.Get(k))
	}

	keys := make([]string, 0, len(h))
	for k := range h {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		display := textproto.CanonicalMIMEHeaderKey(k)
		if _, err := fmt.Fprintf(w.stream, "%s: %s\r\n", display, h.Get(k)); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w.stream, "\r\n")
	return err
}

// WriteBody writes p to the stream verbatim; the caller is responsible
// for having set a correct Content-Length header beforehand.
func (w *Writer) WriteBody(p []byte) (int, error) {
	return w.stream.Write(p)
}

// DefaultHeaders returns a fresh header set with Content-Length set to
// len(body) and Connection/Content-Type filled with sensible defaults,
// mirroring the teacher's GetDefaultHeaders.
func DefaultHeaders(bodyLen int, reusable bool) wire.Headers {
	h := wire.NewHeaders()
	h.Set("Content-Length", strconv.Itoa(bodyLen))
	h.Set("Content-Type", "text/plain")
	if reusable {
		h.Set("Connection", "keep-alive")
	} else {
		h.Set("Connection", "close")
	}
	return h
}
