package server

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/swarm/internal/game"
	"github.com/tomz197/swarm/internal/loop/config"
)

// ErrRunnerStopped is returned for commands sent after the runner's loop exited.
var ErrRunnerStopped = errors.New("runner stopped")

// GameSession is what clients use to drive one game. It decouples the client
// from the concrete Runner so transports and tests can supply their own.
type GameSession interface {
	Send(ctx context.Context, cmd Command) error
	Snapshot() *game.Snapshot
	Events() <-chan Event
}

// Compile-time check that Runner implements GameSession.
var _ GameSession = (*Runner)(nil)

// Runner owns one game.Session and drives it from its own goroutine. It
// schedules three recurring timers while the session is running: the frame
// tick, the one-second clock tick, and the spawn tick whose period follows the
// difficulty. Commands are serialized with the ticks, so the session is only
// ever touched by the loop. Every change is published as an immutable snapshot.
type Runner struct {
	session  *game.Session
	clock    Clock
	logger   *log.Logger
	commands chan commandRequest
	events   chan Event
	snapshot atomic.Pointer[game.Snapshot]
	done     chan struct{}

	// Timers; nil while stopped
	frame  Ticker
	second Ticker
	spawn  Ticker
}

type commandRequest struct {
	cmd   Command
	reply chan error
}

// RunnerOptions configures a runner.
type RunnerOptions struct {
	Clock  Clock       // Defaults to RealClock
	Logger *log.Logger // Defaults to log.Default
}

// NewRunner creates a runner for session. Call Run to start it.
func NewRunner(session *game.Session, opts RunnerOptions) *Runner {
	if opts.Clock == nil {
		opts.Clock = RealClock()
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	r := &Runner{
		session:  session,
		clock:    opts.Clock,
		logger:   opts.Logger,
		commands: make(chan commandRequest),
		events:   make(chan Event, 16),
		done:     make(chan struct{}),
	}
	r.publish(r.clock.Now())
	return r
}

// Run processes ticks and commands until ctx is cancelled. On exit the
// session is ended, all timers are stopped, and a final snapshot is published.
func (r *Runner) Run(ctx context.Context) error {
	defer close(r.done)

	for {
		select {
		case <-ctx.Done():
			r.session.End()
			r.stopTimers()
			r.publish(r.clock.Now())
			return nil

		case req := <-r.commands:
			req.reply <- r.handleCommand(req.cmd, r.clock.Now())

		case now := <-tickC(r.frame):
			r.handleFrame(now)

		case now := <-tickC(r.second):
			r.handleSecond(now)

		case now := <-tickC(r.spawn):
			r.handleSpawn(now)
		}
	}
}

// Send delivers cmd to the loop and waits for it to be applied.
func (r *Runner) Send(ctx context.Context, cmd Command) error {
	req := commandRequest{cmd: cmd, reply: make(chan error, 1)}
	select {
	case r.commands <- req:
	case <-r.done:
		return ErrRunnerStopped
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-req.reply:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Snapshot returns the latest published snapshot. Never nil.
func (r *Runner) Snapshot() *game.Snapshot {
	return r.snapshot.Load()
}

// Events delivers game-over, level-up and shutdown notifications.
func (r *Runner) Events() <-chan Event {
	return r.events
}

// Done is closed when Run returns.
func (r *Runner) Done() <-chan struct{} {
	return r.done
}

func (r *Runner) handleCommand(cmd Command, now time.Time) error {
	switch cmd.Type {
	case CommandStart:
		if err := r.session.Start(now); err != nil {
			return err
		}
		r.startTimers()
		r.logger.Info("session started", "seed", r.session.Params().Seed)
	case CommandPress:
		r.session.Press(cmd.Dir)
	case CommandRelease:
		r.session.Release(cmd.Dir)
	case CommandSet:
		r.session.SetDirection(cmd.Dir)
	case CommandClear:
		r.session.ClearDirections()
	case CommandShoot:
		r.session.Shoot()
	case CommandEnd:
		if r.session.Phase() == game.PhaseRunning {
			r.session.End()
			r.gameOver(now)
		}
	default:
		return fmt.Errorf("unknown command %v", cmd.Type)
	}
	r.publish(now)
	return nil
}

func (r *Runner) handleFrame(now time.Time) {
	if r.session.Frame(now) {
		r.gameOver(now)
	}
	r.publish(now)
}

func (r *Runner) handleSecond(now time.Time) {
	if r.session.ClockTick(now) {
		r.levelUp(now)
	}
	r.publish(now)
}

// levelUp re-arms the spawn ticker at the new cadence.
func (r *Runner) levelUp(now time.Time) {
	if r.spawn != nil {
		r.spawn.Reset(r.session.SpawnInterval())
	}
	snap := r.session.Snapshot(now)
	r.logger.Debug("level up", "level", snap.Level, "spawn", snap.SpawnInterval, "fire", snap.FireInterval)
	r.emit(Event{
		Type:            EventLevelUp,
		Score:           snap.Score,
		Level:           snap.Level,
		Elapsed:         snap.Elapsed,
		FireRatePercent: snap.FireRatePercent,
	})
}

func (r *Runner) handleSpawn(now time.Time) {
	r.session.SpawnTick(now)
	r.publish(now)
}

// gameOver stops the schedule and tells the client how the run ended.
func (r *Runner) gameOver(now time.Time) {
	r.stopTimers()
	snap := r.session.Snapshot(now)
	r.logger.Info("game over", "score", snap.Score, "level", snap.Level, "elapsed", snap.Elapsed)
	r.emit(Event{Type: EventGameOver, Score: snap.Score, Level: snap.Level, Elapsed: snap.Elapsed})
}

func (r *Runner) startTimers() {
	r.stopTimers()
	r.frame = r.clock.NewTicker(config.FrameTime)
	r.second = r.clock.NewTicker(config.ClockInterval)
	r.spawn = r.clock.NewTicker(r.session.SpawnInterval())
}

func (r *Runner) stopTimers() {
	for _, t := range []*Ticker{&r.frame, &r.second, &r.spawn} {
		if *t != nil {
			(*t).Stop()
			*t = nil
		}
	}
}

func (r *Runner) publish(now time.Time) {
	snap := r.session.Snapshot(now)
	r.snapshot.Store(&snap)
}

// emit drops the event when the client is not keeping up.
func (r *Runner) emit(ev Event) {
	select {
	case r.events <- ev:
	default:
	}
}
