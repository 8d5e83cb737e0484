// Package server implements the embeddable HTTP/1.x front end: the
// listener set, the handle-stream/handle-resource dispatch registries,
// and the per-connection pipeline that drives request.Request and
// response.Writer. It is grounded on the teacher's internal/server
// (Serve/accept-loop shape) generalized from a single fixed handler to
// the broadcast-dispatch model spec.md §4 describes.
package server

import (
	"strings"
	"sync"

	"go.uber.org/zap"

	"httpfront/request"
)

// Server owns a set of listeners, the registered handlers, and the
// requests currently in flight across all of them.
type Server struct {
	mu sync.Mutex

	urlRoot string

	forwardedHostHeader  string
	forwardedProtoHeader string
	forwardedForHeader   string

	listeners []*trackedListener
	started   bool

	streamHandlers   []StreamHandler
	resourceHandlers map[string][]ResourceHandler
	resourceCatchAll []ResourceHandler

	live map[*request.Request]struct{}

	log *zap.Logger
}

// New creates a Server. A nil logger falls back to zap.NewNop, matching
// the teacher's style of never requiring a logger to exercise core
// behavior in tests.
func New(log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{
		live: make(map[*request.Request]struct{}),
		log:  log,
	}
}

// SetURLRoot configures the path prefix stripped from every request
// target before dispatch (spec.md §2 "url_root"). A trailing slash is
// trimmed so "/app/" and "/app" behave identically.
func (s *Server) SetURLRoot(root string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	root = strings.TrimSuffix(root, "/")
	s.urlRoot = root
}

func (s *Server) urlRootSnapshot() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.urlRoot
}

// SetForwardedHostHeader configures the header name the server reads in
// preference to the request's own Host header; at dispatch a non-empty
// value of that header replaces Host and Origin (see
// applyForwardedHeaders). No forwarded header is read unless its name
// was configured here or by the sibling setters.
func (s *Server) SetForwardedHostHeader(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.forwardedHostHeader = name
}

// SetForwardedProtocolHeader configures the header name consulted for
// the original scheme (e.g. "X-Forwarded-Proto").
func (s *Server) SetForwardedProtocolHeader(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.forwardedProtoHeader = name
}

// SetForwardedForHeader configures the header name consulted for the
// original client address (e.g. "X-Forwarded-For").
func (s *Server) SetForwardedForHeader(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.forwardedForHeader = name
}

func (s *Server) addLive(req *request.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.live[req] = struct{}{}
}

func (s *Server) removeLive(req *request.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.live, req)
}

// LiveRequests reports how many requests are currently mid-flight
// across every connection this server owns.
func (s *Server) LiveRequests() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.live)
}
