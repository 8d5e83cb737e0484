package server

import (
	"net"
	"os"
	"strconv"
	"sync"

	"go.uber.org/zap"

	"httpfront/request"
)

// trackedListener pairs a net.Listener with the flag that says whether
// its accept loop has been started yet, so listeners registered before
// and after Start both end up served exactly once.
type trackedListener struct {
	mu      sync.Mutex
	l       net.Listener
	started bool
}

// AddInetListener opens a TCP listener on addr:port and registers it.
// If the server is already started, its accept loop begins immediately;
// otherwise it begins when Start is called (spec.md §2's "add listeners
// either before or after the server is running").
func (s *Server) AddInetListener(addr string, port int) (int, error) {
	l, err := net.Listen("tcp", net.JoinHostPort(addr, strconv.Itoa(port)))
	if err != nil {
		return 0, err
	}
	actual := l.Addr().(*net.TCPAddr).Port
	s.register(l, nil)
	return actual, nil
}

// AddFDListener adopts an already-open, already-bound/listening file
// descriptor (spec.md §2's "socket activation" / externally-managed
// listener) as a listener.
func (s *Server) AddFDListener(fd int) error {
	f := os.NewFile(uintptr(fd), "httpfront-listener")
	l, err := net.FileListener(f)
	if err != nil {
		return err
	}
	s.register(l, nil)
	return nil
}

// Connect synthesizes an in-memory stream pair (spec.md §4.6's
// `connect()` operation), attaches the server side as a new request the
// same way an accepted socket connection would be, and returns the
// client side. It bypasses any registered listener entirely, which
// makes it the tool of choice for exercising handlers in tests without
// opening a real socket.
func (s *Server) Connect() net.Conn {
	client, srv := net.Pipe()
	go s.servePipeline(srv, nil)
	return client
}

func (s *Server) register(l net.Listener, meta *request.Metadata) {
	tl := &trackedListener{l: l}
	s.mu.Lock()
	s.listeners = append(s.listeners, tl)
	started := s.started
	s.mu.Unlock()

	if started {
		s.startOne(tl, meta)
	}
}

// Start begins accepting on every listener registered so far (and is a
// no-op for listeners added afterward, which start on registration).
func (s *Server) Start() {
	s.mu.Lock()
	s.started = true
	listeners := append([]*trackedListener(nil), s.listeners...)
	s.mu.Unlock()

	for _, tl := range listeners {
		s.startOne(tl, nil)
	}
}

func (s *Server) startOne(tl *trackedListener, meta *request.Metadata) {
	tl.mu.Lock()
	if tl.started {
		tl.mu.Unlock()
		return
	}
	tl.started = true
	tl.mu.Unlock()

	go s.acceptLoop(tl.l, meta)
}

func (s *Server) acceptLoop(l net.Listener, meta *request.Metadata) {
	for {
		conn, err := l.Accept()
		if err != nil {
			s.log.Debug("listener closed", zap.Error(err))
			return
		}
		go s.servePipeline(conn, meta)
	}
}

// Close shuts down every registered listener. In-flight connections are
// left to finish on their own.
func (s *Server) Close() error {
	s.mu.Lock()
	listeners := append([]*trackedListener(nil), s.listeners...)
	s.mu.Unlock()

	var firstErr error
	for _, tl := range listeners {
		if err := tl.l.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
