// Package client presents a game session on an ANSI terminal and turns
// keystrokes into session commands.
package client

import (
	"bufio"
	"context"
	"errors"
	"io"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/swarm/internal/draw"
	"github.com/tomz197/swarm/internal/game"
	"github.com/tomz197/swarm/internal/input"
	"github.com/tomz197/swarm/internal/loop/config"
	"github.com/tomz197/swarm/internal/loop/server"
	"github.com/tomz197/swarm/internal/object"
)

// Client handles rendering and input for a single connection.
type Client struct {
	session      server.GameSession
	state        *ClientState
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter // Accumulates UI text for chunked output
	writer       io.Writer
	inputStream  *input.Stream
	lastInput    time.Time
	termSizeFunc draw.TermSizeFunc
	logger       *log.Logger
	rng          *rand.Rand
}

// ClientOptions configures the client.
type ClientOptions struct {
	TermSizeFunc draw.TermSizeFunc
	Logger       *log.Logger
}

// NewClient creates a client that drives session.
func NewClient(session server.GameSession, r *bufio.Reader, w io.Writer, opts ClientOptions) *Client {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	arena := object.DefaultArena()
	if snap := session.Snapshot(); snap != nil {
		arena = snap.Arena
	}

	// Create canvas with clamped dimensions for max render resolution
	termWidth, termHeight, _ := termSizeFunc()
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, arena.Width, arena.Height)
	canvas.SetOffset(offsetCol, offsetRow)

	return &Client{
		session:      session,
		state:        NewClientState(),
		canvas:       canvas,
		chunkWriter:  draw.NewChunkWriter(w, offsetCol, offsetRow),
		writer:       w,
		lastInput:    time.Now(),
		inputStream:  input.StartStream(r),
		termSizeFunc: termSizeFunc,
		logger:       logger,
		rng:          rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
}

// Run starts the client loop. Blocks until the player quits, the session
// stops, or ctx is cancelled.
func (c *Client) Run(ctx context.Context) error {
	draw.HideCursor(c.writer)
	defer draw.ShowCursor(c.writer)
	draw.ClearScreen(c.writer)

	lastTime := time.Now()

	for c.state.Running {
		if ctx.Err() != nil {
			break
		}

		frameStart := time.Now()
		c.state.delta = frameStart.Sub(lastTime)
		lastTime = frameStart

		c.processInput(ctx)
		c.processServerEvents()
		c.updateScreen()

		snapshot := c.session.Snapshot()
		c.observe(snapshot)

		if c.state.GameState == GameStateShutdown {
			c.updateShutdownState()
		}

		if err := c.drawFrame(snapshot); err != nil {
			return err
		}

		// Frame timing
		elapsed := time.Since(frameStart)
		if elapsed < config.ClientTargetFrameTime {
			time.Sleep(config.ClientTargetFrameTime - elapsed)
		}
	}

	for _, p := range c.state.particles {
		p.Release()
	}
	c.state.particles = nil

	draw.ClearScreen(c.writer)
	return nil
}

// processInput reads input and sends the resulting commands to the session.
func (c *Client) processInput(ctx context.Context) {
	c.state.prevInput = c.state.Input
	c.state.Input = input.ReadInput(c.inputStream)

	if len(c.state.Input.Pressed) > 0 {
		c.lastInput = time.Now()
		c.state.isInactive = false
	} else if time.Since(c.lastInput).Seconds() > config.InactivityDisconnectUser {
		c.state.Running = false
	} else if time.Since(c.lastInput).Seconds() > config.InactivityWarnUser {
		c.state.isInactive = true
	}

	if c.state.Input.Quit {
		c.state.Running = false
		return
	}
	if c.state.GameState == GameStateShutdown {
		return
	}

	phase := game.PhaseNotStarted
	if snap := c.session.Snapshot(); snap != nil {
		phase = snap.Phase
	}
	for _, cmd := range commandsFor(c.state.prevInput, c.state.Input, phase) {
		if cmd.Type == server.CommandStart {
			// Keys held on a menu must not carry into the run.
			c.inputStream.Reset()
			c.state.Input = input.Input{}
		}
		err := c.session.Send(ctx, cmd)
		switch {
		case err == nil, errors.Is(err, game.ErrSessionRunning):
		case errors.Is(err, server.ErrRunnerStopped), errors.Is(err, context.Canceled):
			c.state.Running = false
			return
		default:
			c.logger.Warn("command failed", "command", cmd.Type, "err", err)
		}
	}
}

// processServerEvents handles events from the session.
func (c *Client) processServerEvents() {
	for {
		select {
		case event, ok := <-c.session.Events():
			if !ok {
				// Server closed the channel
				c.state.Running = false
				return
			}
			if event.Type == server.EventServerShutdown {
				c.state.GameState = GameStateShutdown
				c.state.shutdownTimer = config.ShutdownDisplaySeconds
			}
		default:
			return
		}
	}
}

// observe derives presentation state from the latest snapshot: the screen to
// show, and kill bursts for enemies that vanished while the score rose.
func (c *Client) observe(snap *game.Snapshot) {
	prev := c.state.lastSnapshot
	c.state.lastSnapshot = snap

	if c.state.GameState != GameStateShutdown {
		c.state.GameState = screenFor(snap.Phase)
	}

	dt := c.state.delta.Seconds()
	c.state.particles = slices.DeleteFunc(c.state.particles, func(p *object.Particle) bool {
		if p.Update(dt) {
			return false
		}
		p.Release()
		return true
	})

	for _, e := range killedEnemies(prev, snap) {
		x, y := e.Center()
		c.state.particles = append(c.state.particles,
			object.Burst(c.rng, x, y, config.BurstParticles, config.BurstSpeed, config.BurstLifetime)...)
	}
}

// killedEnemies lists enemies of prev that are gone from cur, provided cur
// is the same run with a higher score.
func killedEnemies(prev, cur *game.Snapshot) []object.Enemy {
	if prev == nil || cur == nil || cur.Phase != game.PhaseRunning || cur.Score <= prev.Score {
		return nil
	}
	alive := make(map[int64]struct{}, len(cur.Enemies))
	for _, e := range cur.Enemies {
		alive[e.ID] = struct{}{}
	}
	var gone []object.Enemy
	for _, e := range prev.Enemies {
		if _, ok := alive[e.ID]; !ok {
			gone = append(gone, e)
		}
	}
	return gone
}

// updateScreen handles terminal resize, clamping to max render resolution.
// On actual size changes, clears the terminal to remove residual pixels
// outside the new canvas area (e.g. old borders or offset content).
func (c *Client) updateScreen() {
	termWidth, termHeight, err := c.termSizeFunc()
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)

	if renderWidth != c.canvas.TerminalWidth() || renderHeight != c.canvas.TerminalHeight() ||
		offsetCol != c.canvas.OffsetCol() || offsetRow != c.canvas.OffsetRow() {
		draw.ClearScreen(c.writer)
		c.canvas.ForceRedraw()
	}

	c.canvas.Resize(renderWidth, renderHeight)
	c.canvas.SetOffset(offsetCol, offsetRow)
	c.chunkWriter.SetOffset(offsetCol, offsetRow)
}

// clampTermSize clamps terminal dimensions to the max render resolution and computes
// the centering offset for the render area.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = min(termWidth, config.MaxTermWidth)
	renderHeight = min(termHeight, config.MaxTermHeight)
	offsetCol = (termWidth - renderWidth) / 2
	offsetRow = (termHeight - renderHeight) / 2
	return
}

// updateShutdownState handles the shutdown screen countdown.
func (c *Client) updateShutdownState() {
	c.state.shutdownTimer -= c.state.delta.Seconds()
	if c.state.shutdownTimer <= 0 {
		c.state.Running = false
	}
}
