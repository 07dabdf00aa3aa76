package server

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/swarm/internal/game"
)

func newTestServer() *Server {
	return NewServer(game.DefaultParams(), Options{Clock: newFakeClock(epoch), Logger: log.New(io.Discard)})
}

func TestServerRegisterUnregister(t *testing.T) {
	s := newTestServer()
	a, err := s.Register("alice")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	b, err := s.Register("bob")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if a.ID == b.ID {
		t.Fatal("two sessions share an ID")
	}
	if got := s.Players(); got != 2 {
		t.Errorf("Players = %d, want 2", got)
	}

	if err := a.Runner.Send(context.Background(), Command{Type: CommandStart}); err != nil {
		t.Fatalf("start: %v", err)
	}

	s.Unregister(a.ID)
	if got := s.Players(); got != 1 {
		t.Errorf("Players = %d, want 1", got)
	}
	if _, ok := <-a.Runner.Events(); ok {
		t.Error("events channel still open after Unregister")
	}
	if err := a.Runner.Send(context.Background(), Command{Type: CommandShoot}); !errors.Is(err, ErrRunnerStopped) {
		t.Errorf("send after Unregister = %v, want ErrRunnerStopped", err)
	}

	s.Unregister(a.ID)
	s.Shutdown(0)
}

func TestServerShutdownNotifiesClients(t *testing.T) {
	s := newTestServer()
	h, err := s.Register("carol")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	got := make(chan Event, 1)
	go func() {
		for ev := range h.Runner.Events() {
			if ev.Type == EventServerShutdown {
				got <- ev
				s.Unregister(h.ID)
			}
		}
	}()

	done := make(chan struct{})
	go func() {
		s.Shutdown(5 * time.Second)
		close(done)
	}()

	select {
	case <-got:
	case <-time.After(5 * time.Second):
		t.Fatal("no shutdown event")
	}
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Shutdown did not return after the client left")
	}

	if _, err := s.Register("dave"); !errors.Is(err, ErrServerClosed) {
		t.Errorf("Register after Shutdown = %v, want ErrServerClosed", err)
	}
}

func TestServerShutdownStopsLingeringSessions(t *testing.T) {
	s := newTestServer()
	h, err := s.Register("erin")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	s.Shutdown(10 * time.Millisecond)

	select {
	case <-h.Runner.Done():
	default:
		t.Error("runner still running after Shutdown")
	}
	if got := s.Players(); got != 0 {
		t.Errorf("Players = %d, want 0", got)
	}
}
