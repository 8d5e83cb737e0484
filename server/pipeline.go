package server

import (
	"errors"
	"io"
	"net"
	"time"

	"go.uber.org/zap"

	"httpfront/request"
	"httpfront/response"
)

// readChunk is one result from the connection's background reader
// goroutine: either bytes received or the error that ended reading.
type readChunk struct {
	data []byte
	err  error
}

// servePipeline owns one accepted connection end to end: it runs a
// background reader so the per-request timer can race a blocking
// conn.Read, then loops constructing a fresh request.Request for every
// HTTP/1.x request the connection carries until something says to stop
// (spec.md §3 "Lifecycle" / §5's reactor loop, translated into Go's
// one-goroutine-per-connection idiom with net.Conn standing in for the
// non-blocking socket and a time.Timer standing in for the single-shot
// timer source).
func (s *Server) servePipeline(conn net.Conn, meta *request.Metadata) {
	defer conn.Close()

	reads := make(chan readChunk, 4)
	go func() {
		buf := make([]byte, request.RequestMax+1)
		for {
			n, err := conn.Read(buf)
			if n > 0 {
				cp := make([]byte, n)
				copy(cp, buf[:n])
				reads <- readChunk{data: cp}
			}
			if err != nil {
				reads <- readChunk{err: err}
				return
			}
		}
	}()

	var leftover []byte
	for {
		req := request.New(s.urlRootSnapshot(), meta)
		s.addLive(req)

		timer := time.NewTimer(RequestTimeout)
		reusable, shouldClose := s.runRequest(conn, req, leftover, timer, reads)
		timer.Stop()

		s.removeLive(req)
		leftover = nil

		if shouldClose || !reusable {
			return
		}
		leftover = req.Leftover()
	}
}

// runRequest drives a single request.Request through head-parsing
// (fed first by any seed bytes left over from the previous request,
// then by the connection's reader goroutine) and, once complete,
// through dispatch. It returns whether the connection may be reused
// for another request and whether the caller should close it.
func (s *Server) runRequest(conn net.Conn, req *request.Request, seed []byte, timer *time.Timer, reads <-chan readChunk) (reusable, shouldClose bool) {
	if len(seed) > 0 {
		out := req.Consume(seed)
		if out.Oversize {
			s.log.Warn("request exceeded maximum buffered size", zap.Int("limit", 2*request.RequestMax))
			return false, true
		}
		if out.Complete {
			return s.dispatch(conn, req, timer)
		}
	}

	for {
		select {
		case c, ok := <-reads:
			if !ok {
				return false, true
			}
			if c.err != nil {
				s.logReadError(req, c.err)
				return false, true
			}
			if req.EOFOkay {
				req.EOFOkay = false
			}
			out := req.Consume(c.data)
			if out.Oversize {
				s.log.Warn("request exceeded maximum buffered size", zap.Int("limit", 2*request.RequestMax))
				return false, true
			}
			if out.Complete {
				return s.dispatch(conn, req, timer)
			}
			// NeedMore: loop for the next chunk.

		case <-timer.C:
			if req.EOFOkay {
				s.log.Debug("connection idle past timeout, closing")
			} else {
				s.log.Warn("request timed out mid-head, closing")
			}
			return false, true
		}
	}
}

// logReadError logs a connection read failure at a severity that
// reflects whether any bytes had been received yet for the current
// request (spec.md §7: a clean close before any bytes arrive is
// routine; anything else is noteworthy).
func (s *Server) logReadError(req *request.Request, err error) {
	if errors.Is(err, io.EOF) {
		if req.EOFOkay {
			s.log.Debug("connection closed by peer")
		} else {
			s.log.Warn("connection closed by peer mid-request")
		}
		return
	}
	if req.EOFOkay {
		s.log.Debug("connection read failed before any bytes arrived", zap.Error(err))
		return
	}
	s.log.Warn("connection read failed mid-request", zap.Error(err))
}

// dispatch applies forwarded-header overrides, replies immediately if
// parsing already recorded a delayed status, and otherwise offers the
// request to the stream handlers and then the resource handlers in
// turn (spec.md §4.3's broadcast-dispatch-with-first-claim model). It
// blocks until the response reports completion or the request's timer
// fires, whichever comes first — the same timer that bounded the head
// read also bounds the wait for a handler to finish, so a request that
// nobody claims is held open only until the configured timeout instead
// of leaking the connection forever.
func (s *Server) dispatch(conn net.Conn, req *request.Request, timer *time.Timer) (reusable, shouldClose bool) {
	s.applyForwardedHeaders(req)

	resp := response.NewWriter(conn)
	resp.SetMethod(req.Method)
	resp.SetOrigin(req.Origin)

	done := make(chan bool, 1)
	resp.OnDone(func(ok bool) { done <- ok })

	if req.DelayedReply != 0 {
		if err := resp.Error(response.StatusCode(req.DelayedReply)); err != nil {
			s.log.Debug("failed writing delayed reply", zap.Error(err))
		}
	} else if !s.dispatchStream(req, resp) {
		if !s.dispatchResource(req, resp) {
			s.log.Error("request unclaimed by any handler", zap.String("path", req.Path))
			// Fall through to the shared wait below: the request stays
			// open, exactly as if a slow handler had claimed it, until
			// the timer fires.
		}
	}

	select {
	case ok := <-done:
		return ok, false
	case <-timer.C:
		s.log.Error("response did not complete before timeout, closing", zap.String("path", req.Path))
		return false, true
	}
}
