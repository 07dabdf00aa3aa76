package websocket

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/tomz197/swarm/internal/game"
	"github.com/tomz197/swarm/internal/loop/config"
	"github.com/tomz197/swarm/internal/loop/server"
	"golang.org/x/sync/errgroup"
)

// Handler upgrades requests to websocket connections, each playing its own session.
type Handler struct {
	server   *server.Server
	logger   *log.Logger
	interval time.Duration
	accept   *websocket.AcceptOptions
}

// HandlerOptions configures a Handler.
type HandlerOptions struct {
	Logger *log.Logger // Defaults to log.Default
	// Snapshot push period. Defaults to the frame time.
	Interval time.Duration
	// Origin patterns allowed besides the request host, see websocket.AcceptOptions.
	OriginPatterns []string
}

// NewHandler creates a handler registering sessions on srv.
func NewHandler(srv *server.Server, opts HandlerOptions) *Handler {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Interval <= 0 {
		opts.Interval = config.FrameTime
	}
	return &Handler{
		server:   srv,
		logger:   opts.Logger,
		interval: opts.Interval,
		accept:   &websocket.AcceptOptions{OriginPatterns: opts.OriginPatterns},
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, h.accept)
	if err != nil {
		h.logger.Error("failed to accept", "remote", r.RemoteAddr, "err", err)
		return
	}
	defer conn.CloseNow()

	handle, err := h.server.Register(r.RemoteAddr)
	if err != nil {
		conn.Close(websocket.StatusTryAgainLater, err.Error())
		return
	}
	defer h.server.Unregister(handle.ID)

	logger := h.logger.With("session", handle.ID.String(), "remote", r.RemoteAddr)
	logger.Debug("accepted connection")

	ctx := r.Context()
	hello := newHelloMessage(handle.ID.String(), handle.Runner.Snapshot().Arena)
	if err := wsjson.Write(ctx, conn, hello); err != nil {
		logger.Warn("failed to send hello", "err", err)
		return
	}

	err = serve(ctx, conn, handle.Runner, h.interval)
	switch {
	case err == nil:
		conn.Close(websocket.StatusNormalClosure, "")
	case errors.Is(err, errShutdown):
		conn.Close(websocket.StatusGoingAway, "server shutting down")
	default:
		logger.Warn("connection failed", "err", err)
		return
	}
	logger.Debug("connection closed")
}

var errShutdown = errors.New("server shutting down")

// serve pumps commands from conn into session and snapshots and events back,
// until the peer closes, ctx ends, or the server shuts down.
func serve(ctx context.Context, conn *websocket.Conn, session server.GameSession, interval time.Duration) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		return readLoop(ctx, conn, session)
	})
	g.Go(func() error {
		return writeLoop(ctx, conn, session, interval)
	})
	return g.Wait()
}

func readLoop(ctx context.Context, conn *websocket.Conn, session server.GameSession) error {
	for {
		var msg CommandMessage
		if err := wsjson.Read(ctx, conn, &msg); err != nil {
			if closedNormally(ctx, err) {
				return nil
			}
			return err
		}

		cmd, err := msg.Command()
		if err == nil {
			err = session.Send(ctx, cmd)
		}
		switch {
		case err == nil:
		case errors.Is(err, server.ErrRunnerStopped):
			return nil
		case errors.Is(err, context.Canceled):
			return nil
		default:
			if werr := wsjson.Write(ctx, conn, ErrorMessage{Type: "error", Message: err.Error()}); werr != nil {
				return werr
			}
		}
	}
}

func writeLoop(ctx context.Context, conn *websocket.Conn, session server.GameSession, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var last *game.Snapshot
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-session.Events():
			if !ok {
				return nil
			}
			if err := wsjson.Write(ctx, conn, newEventMessage(ev)); err != nil {
				return writeErr(ctx, err)
			}
			if ev.Type == server.EventServerShutdown {
				return errShutdown
			}

		case <-ticker.C:
			snap := session.Snapshot()
			if snap == last {
				continue
			}
			last = snap
			if err := wsjson.Write(ctx, conn, newSnapshotMessage(snap)); err != nil {
				return writeErr(ctx, err)
			}
		}
	}
}

func closedNormally(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return true
	}
	switch websocket.CloseStatus(err) {
	case websocket.StatusNormalClosure, websocket.StatusGoingAway:
		return true
	}
	return false
}

func writeErr(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return nil
	}
	return err
}
