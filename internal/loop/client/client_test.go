package client

import (
	"bufio"
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/swarm/internal/game"
	"github.com/tomz197/swarm/internal/loop/server"
	"github.com/tomz197/swarm/internal/object"
)

type fakeSession struct {
	commands chan server.Command
	events   chan server.Event
	snap     *game.Snapshot
}

func newFakeSession() *fakeSession {
	return &fakeSession{
		commands: make(chan server.Command, 16),
		events:   make(chan server.Event, 1),
		snap:     &game.Snapshot{Phase: game.PhaseNotStarted, Arena: object.DefaultArena(), Level: 1},
	}
}

func (f *fakeSession) Send(_ context.Context, cmd server.Command) error {
	f.commands <- cmd
	return nil
}

func (f *fakeSession) Snapshot() *game.Snapshot { return f.snap }
func (f *fakeSession) Events() <-chan server.Event { return f.events }

// syncWriter guards the buffer the client renders into.
type syncWriter struct {
	mu  sync.Mutex
	buf strings.Builder
}

func (w *syncWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.Write(p)
}

func (w *syncWriter) String() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.String()
}

func TestClientStartsAndQuits(t *testing.T) {
	session := newFakeSession()
	pr, pw := io.Pipe()
	out := &syncWriter{}
	c := NewClient(session, bufio.NewReader(pr), out, ClientOptions{
		TermSizeFunc: func() (int, int, error) { return 80, 24, nil },
		Logger:       log.New(io.Discard),
	})

	errc := make(chan error, 1)
	go func() { errc <- c.Run(context.Background()) }()

	if _, err := pw.Write([]byte(" ")); err != nil {
		t.Fatalf("write: %v", err)
	}
	select {
	case cmd := <-session.commands:
		if cmd.Type != server.CommandStart {
			t.Errorf("command = %v, want start", cmd.Type)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no command sent")
	}

	pw.Close()
	select {
	case err := <-errc:
		if err != nil {
			t.Errorf("Run = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("client did not stop after input closed")
	}
	if !strings.Contains(out.String(), "Press SPACE to Start") && !strings.Contains(out.String(), "Controls") {
		t.Error("start screen not drawn")
	}
}

func TestClientShowsShutdown(t *testing.T) {
	session := newFakeSession()
	session.events <- server.Event{Type: server.EventServerShutdown}
	pr, pw := io.Pipe()
	defer pw.Close()
	out := &syncWriter{}
	c := NewClient(session, bufio.NewReader(pr), out, ClientOptions{
		TermSizeFunc: func() (int, int, error) { return 80, 24, nil },
		Logger:       log.New(io.Discard),
	})

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- c.Run(ctx) }()

	deadline := time.After(5 * time.Second)
	for !strings.Contains(out.String(), "SERVER SHUTTING DOWN") {
		select {
		case <-deadline:
			t.Fatal("shutdown screen not drawn")
		case <-time.After(10 * time.Millisecond):
		}
	}
	cancel()
	if err := <-errc; err != nil {
		t.Errorf("Run = %v", err)
	}
}
