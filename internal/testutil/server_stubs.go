package testutil

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/preston-bernstein/team-matches-service/internal/coordinator"
	"github.com/preston-bernstein/team-matches-service/internal/domain/matches"
)

// StubCoordinator implements the coordinator surface used by the server and handlers.
type StubCoordinator struct {
	mu           sync.Mutex
	StartCalls   int
	StopCalls    int
	RefreshCalls int
	Err          error
	RefreshErr   error
	StatusVal    coordinator.Status
	Snapshot     *matches.Snapshot
	subs         []func(*matches.Snapshot)
}

func (c *StubCoordinator) Start(ctx context.Context) {
	_ = ctx
	c.mu.Lock()
	defer c.mu.Unlock()
	c.StartCalls++
}

func (c *StubCoordinator) Stop(ctx context.Context) error {
	_ = ctx
	c.mu.Lock()
	defer c.mu.Unlock()
	c.StopCalls++
	return c.Err
}

func (c *StubCoordinator) Status() coordinator.Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.StatusVal
}

func (c *StubCoordinator) Current() *matches.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.Snapshot
}

func (c *StubCoordinator) Refresh(ctx context.Context) error {
	_ = ctx
	c.mu.Lock()
	defer c.mu.Unlock()
	c.RefreshCalls++
	return c.RefreshErr
}

func (c *StubCoordinator) Subscribe(fn func(*matches.Snapshot)) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subs = append(c.subs, fn)
	return func() {}
}

// Publish replaces the snapshot and notifies subscribers.
func (c *StubCoordinator) Publish(snap *matches.Snapshot) {
	c.mu.Lock()
	c.Snapshot = snap
	subs := append(([]func(*matches.Snapshot))(nil), c.subs...)
	c.mu.Unlock()
	for _, fn := range subs {
		fn(snap)
	}
}

// Calls returns the start and stop counters under the lock.
func (c *StubCoordinator) Calls() (start, stop int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.StartCalls, c.StopCalls
}

// StubHTTPServer implements httpServer for tests.
type StubHTTPServer struct {
	AddrVal       string
	HandlerVal    http.Handler
	ListenCalls   int
	ShutdownCalls int
	ListenErr     error
	ShutdownErr   error
}

func (s *StubHTTPServer) ListenAndServe() error {
	s.ListenCalls++
	return s.ListenErr
}

func (s *StubHTTPServer) Shutdown(ctx context.Context) error {
	_ = ctx
	s.ShutdownCalls++
	return s.ShutdownErr
}

func (s *StubHTTPServer) Addr() string {
	return s.AddrVal
}

func (s *StubHTTPServer) Handler() http.Handler {
	return s.HandlerVal
}

// ErrHTTPServer returns an error on ListenAndServe; Shutdown increments a counter.
type ErrHTTPServer struct {
	mu            sync.Mutex
	shutdownCalls int
}

func (e *ErrHTTPServer) ListenAndServe() error {
	return errors.New("listen failure")
}

func (e *ErrHTTPServer) Shutdown(ctx context.Context) error {
	_ = ctx
	e.mu.Lock()
	defer e.mu.Unlock()
	e.shutdownCalls++
	return nil
}

func (e *ErrHTTPServer) Addr() string {
	return ":0"
}

func (e *ErrHTTPServer) Handler() http.Handler {
	return http.NewServeMux()
}

// ShutdownCalls returns how many times Shutdown ran.
func (e *ErrHTTPServer) ShutdownCalls() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.shutdownCalls
}
