// Package server hosts game sessions. A Runner drives one session on its own
// goroutine with a frame tick, a one-second clock tick and a spawn tick; the
// Server keeps one runner per connected player.
package server

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/tomz197/swarm/internal/game"
)

// ErrServerClosed is returned by Register after Shutdown has begun.
var ErrServerClosed = errors.New("server closed")

// Handle is a registered player's connection to the server.
type Handle struct {
	ID       uuid.UUID
	Username string
	Runner   *Runner
	cancel   context.CancelFunc
}

// Server manages the running sessions of all connected players.
type Server struct {
	params  game.Params
	clock   Clock
	logger  *log.Logger
	mu      sync.RWMutex
	clients map[uuid.UUID]*Handle
	closed  bool
	wg      sync.WaitGroup
}

// Options configures the server.
type Options struct {
	Clock  Clock       // Defaults to RealClock
	Logger *log.Logger // Defaults to log.Default
}

// NewServer creates a server whose sessions use params.
func NewServer(params game.Params, opts Options) *Server {
	if opts.Clock == nil {
		opts.Clock = RealClock()
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	return &Server{
		params:  params,
		clock:   opts.Clock,
		logger:  opts.Logger,
		clients: make(map[uuid.UUID]*Handle),
	}
}

// Register creates a session for username and starts its runner.
func (s *Server) Register(username string) (*Handle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrServerClosed
	}

	id := uuid.New()
	logger := s.logger.With("session", id.String(), "user", username)
	runner := NewRunner(game.NewSession(s.params), RunnerOptions{Clock: s.clock, Logger: logger})

	ctx, cancel := context.WithCancel(context.Background())
	handle := &Handle{ID: id, Username: username, Runner: runner, cancel: cancel}
	s.clients[id] = handle

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		_ = runner.Run(ctx)
	}()

	logger.Info("session registered", "players", len(s.clients))
	return handle, nil
}

// Unregister stops the session and closes its event channel.
func (s *Server) Unregister(id uuid.UUID) {
	s.mu.Lock()
	handle, ok := s.clients[id]
	if ok {
		delete(s.clients, id)
	}
	remaining := len(s.clients)
	s.mu.Unlock()
	if !ok {
		return
	}

	handle.cancel()
	<-handle.Runner.Done()
	close(handle.Runner.events)
	s.logger.Info("session unregistered", "session", id.String(), "user", handle.Username, "players", remaining)
}

// Players returns the number of registered sessions.
func (s *Server) Players() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// Shutdown refuses new sessions, notifies every connected client, and waits
// for them to disconnect, up to timeout. Sessions still registered afterwards
// are stopped.
func (s *Server) Shutdown(timeout time.Duration) {
	s.mu.Lock()
	s.closed = true
	for _, handle := range s.clients {
		select {
		case handle.Runner.events <- Event{Type: EventServerShutdown}:
		default:
		}
	}
	s.logger.Info("shutdown broadcast", "players", len(s.clients))
	s.mu.Unlock()

	deadline := time.After(timeout)
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

wait:
	for s.Players() > 0 {
		select {
		case <-deadline:
			break wait
		case <-ticker.C:
		}
	}

	s.mu.RLock()
	ids := make([]uuid.UUID, 0, len(s.clients))
	for id := range s.clients {
		ids = append(ids, id)
	}
	s.mu.RUnlock()
	for _, id := range ids {
		s.Unregister(id)
	}
	s.wg.Wait()
}
