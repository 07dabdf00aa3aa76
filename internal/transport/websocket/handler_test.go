package websocket

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/tomz197/swarm/internal/game"
	"github.com/tomz197/swarm/internal/loop/server"
)

func newTestServer(t *testing.T) (*server.Server, string) {
	t.Helper()
	logger := log.New(io.Discard)
	srv := server.NewServer(game.DefaultParams(), server.Options{Logger: logger})
	ts := httptest.NewServer(NewHandler(srv, HandlerOptions{Logger: logger, Interval: 5 * time.Millisecond}))
	t.Cleanup(ts.Close)
	return srv, "ws" + strings.TrimPrefix(ts.URL, "http")
}

// readUntil reads messages until match accepts one.
func readUntil(ctx context.Context, t *testing.T, conn *websocket.Conn, match func(map[string]any) bool) map[string]any {
	t.Helper()
	for {
		var msg map[string]any
		if err := wsjson.Read(ctx, conn, &msg); err != nil {
			t.Fatalf("read: %v", err)
		}
		if match(msg) {
			return msg
		}
	}
}

func TestHandlerPlaysSession(t *testing.T) {
	srv, url := newTestServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.CloseNow()

	var hello HelloMessage
	if err := wsjson.Read(ctx, conn, &hello); err != nil {
		t.Fatalf("read hello: %v", err)
	}
	if hello.Type != "hello" || hello.Session == "" || hello.Arena.Width != 1000 {
		t.Errorf("hello = %+v", hello)
	}

	if err := wsjson.Write(ctx, conn, CommandMessage{Type: "start"}); err != nil {
		t.Fatalf("write start: %v", err)
	}
	readUntil(ctx, t, conn, func(m map[string]any) bool {
		return m["type"] == "snapshot" && m["phase"] == "running"
	})

	if err := wsjson.Write(ctx, conn, CommandMessage{Type: "jump"}); err != nil {
		t.Fatalf("write jump: %v", err)
	}
	msg := readUntil(ctx, t, conn, func(m map[string]any) bool { return m["type"] == "error" })
	if s, _ := msg["message"].(string); !strings.Contains(s, "unknown command") {
		t.Errorf("error message = %q", s)
	}

	conn.Close(websocket.StatusNormalClosure, "")
	for srv.Players() > 0 {
		select {
		case <-ctx.Done():
			t.Fatal("session not unregistered after close")
		case <-time.After(5 * time.Millisecond):
		}
	}
	srv.Shutdown(0)
}

func TestHandlerForwardsShutdown(t *testing.T) {
	srv, url := newTestServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.CloseNow()
	readUntil(ctx, t, conn, func(m map[string]any) bool { return m["type"] == "hello" })

	done := make(chan struct{})
	go func() {
		srv.Shutdown(5 * time.Second)
		close(done)
	}()

	readUntil(ctx, t, conn, func(m map[string]any) bool {
		return m["type"] == "event" && m["event"] == "shutdown"
	})
	select {
	case <-done:
	case <-ctx.Done():
		t.Fatal("Shutdown did not return")
	}
}
