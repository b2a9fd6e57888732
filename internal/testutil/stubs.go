package testutil

import (
	"context"
	"net/http"
	"sync"
)

// StubSaver records SaveNow calls and returns Err.
type StubSaver struct {
	Calls int
	Err   error
}

func (s *StubSaver) SaveNow(ctx context.Context) error {
	_ = ctx
	s.Calls++
	return s.Err
}

// StubHTTPServer stands in for the server's http listener. ListenAndServe fails
// with ListenErr when set, otherwise it blocks until Shutdown like net/http does.
type StubHTTPServer struct {
	AddrVal     string
	HandlerVal  http.Handler
	ListenErr   error
	ShutdownErr error

	mu            sync.Mutex
	listenCalls   int
	shutdownCalls int
	closed        chan struct{}
}

func (s *StubHTTPServer) ListenAndServe() error {
	s.mu.Lock()
	s.listenCalls++
	closed := s.closedLocked()
	s.mu.Unlock()

	if s.ListenErr != nil {
		return s.ListenErr
	}
	<-closed
	return http.ErrServerClosed
}

func (s *StubHTTPServer) Shutdown(ctx context.Context) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shutdownCalls++
	if s.shutdownCalls == 1 {
		close(s.closedLocked())
	}
	return s.ShutdownErr
}

func (s *StubHTTPServer) Addr() string {
	return s.AddrVal
}

func (s *StubHTTPServer) Handler() http.Handler {
	return s.HandlerVal
}

// Calls reports how often ListenAndServe and Shutdown ran.
func (s *StubHTTPServer) Calls() (listen, shutdown int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listenCalls, s.shutdownCalls
}

func (s *StubHTTPServer) closedLocked() chan struct{} {
	if s.closed == nil {
		s.closed = make(chan struct{})
	}
	return s.closed
}
