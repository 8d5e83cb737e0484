package server

import (
	"strings"

	"httpfront/internal/wire"
	"httpfront/request"
	"httpfront/response"
)

// StreamHandler is a handle-stream registration (spec.md §4.3): it
// receives the fully-parsed request and the response bridge, and
// returns true iff it claimed the request. Unclaimed means the next
// registered handler gets a turn.
type StreamHandler func(req *request.Request, resp response.Bridge) bool

// ResourceHandler is a handle-resource registration, scoped to a detail
// token (spec.md §4.3 "the first path segment after the URL root").
// detail is the token the request matched on; path is the full
// post-root path.
type ResourceHandler func(detail, path string, headers wire.Headers, resp response.Bridge) bool

// OnStream registers h as a stream handler. Handlers are tried in
// registration order; the first to return true wins (spec.md's
// broadcast-dispatch-with-first-claim model).
func (s *Server) OnStream(h StreamHandler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.streamHandlers = append(s.streamHandlers, h)
}

// OnResource registers h for the given detail token. An empty detail
// registers a catch-all tried after every token-specific handler for
// the matched token has declined.
func (s *Server) OnResource(detail string, h ResourceHandler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if detail == "" {
		s.resourceCatchAll = append(s.resourceCatchAll, h)
		return
	}
	if s.resourceHandlers == nil {
		s.resourceHandlers = make(map[string][]ResourceHandler)
	}
	s.resourceHandlers[detail] = append(s.resourceHandlers[detail], h)
}

func (s *Server) dispatchStream(req *request.Request, resp response.Bridge) bool {
	s.mu.Lock()
	handlers := append([]StreamHandler(nil), s.streamHandlers...)
	s.mu.Unlock()

	for _, h := range handlers {
		if h(req, resp) {
			return true
		}
	}
	return false
}

func (s *Server) dispatchResource(req *request.Request, resp response.Bridge) bool {
	detail := detailToken(req.Path)

	s.mu.Lock()
	handlers := append([]ResourceHandler(nil), s.resourceHandlers[detail]...)
	handlers = append(handlers, s.resourceCatchAll...)
	s.mu.Unlock()

	for _, h := range handlers {
		if h(detail, req.Path, req.Headers, resp) {
			return true
		}
	}
	return false
}

// detailToken extracts the first path segment after the URL root has
// already been stripped, e.g. "/widgets/42" -> "/widgets" (spec.md
// §4.3). A bare "/foo" with no further slash is its own token.
func detailToken(path string) string {
	if len(path) == 0 || path[0] != '/' {
		return path
	}
	rest := path[1:]
	if idx := strings.IndexByte(rest, '/'); idx != -1 {
		return path[:idx+1]
	}
	return path
}
