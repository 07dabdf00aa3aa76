package game

import (
	"errors"
	"math/rand/v2"
	"time"

	"github.com/tomz197/swarm/internal/input"
)

// ErrSessionRunning is returned by Start while a session is already running.
var ErrSessionRunning = errors.New("session already running")

// Session is the state machine for one player:
// NotStarted → Running → GameOver → Running (restart).
// It holds the current input and owns the random source for spawning.
// A Session is not safe for concurrent use; the runner serializes access.
type Session struct {
	params Params
	rng    *rand.Rand
	state  State
	dirs   input.Directions
	shoot  bool
}

// NewSession creates a session in the not-started phase.
func NewSession(p Params) *Session {
	seed := p.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	return &Session{
		params: p,
		rng:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		state:  IdleState(p),
	}
}

// Params returns the tuning the session was created with.
func (s *Session) Params() Params { return s.params }

// Phase returns the current lifecycle phase.
func (s *Session) Phase() Phase { return s.state.Phase }

// State returns the current simulation state.
func (s *Session) State() State { return s.state }

// Directions returns the directions currently held.
func (s *Session) Directions() input.Directions { return s.dirs }

// Start resets everything and begins a run. It is valid from NotStarted and GameOver.
func (s *Session) Start(now time.Time) error {
	if s.state.Phase == PhaseRunning {
		return ErrSessionRunning
	}
	s.state = NewState(s.params, now)
	s.dirs = 0
	s.shoot = false
	return nil
}

// End stops a running session as if the character had been hit.
func (s *Session) End() {
	if s.state.Phase == PhaseRunning {
		s.state.Phase = PhaseGameOver
	}
}

// Press adds d to the held directions.
func (s *Session) Press(d input.Direction) { s.dirs = s.dirs.Press(d) }

// Release removes d from the held directions.
func (s *Session) Release(d input.Direction) { s.dirs = s.dirs.Release(d) }

// SetDirection replaces the held directions with d alone.
func (s *Session) SetDirection(d input.Direction) { s.dirs = input.Only(d) }

// ClearDirections releases every direction.
func (s *Session) ClearDirections() { s.dirs = 0 }

// Shoot requests an immediate volley on the next frame. Ignored unless running.
func (s *Session) Shoot() {
	if s.state.Phase == PhaseRunning {
		s.shoot = true
	}
}

// Frame runs one simulation step. It reports whether this frame ended the game.
func (s *Session) Frame(now time.Time) bool {
	if s.state.Phase != PhaseRunning {
		return false
	}
	s.state = Step(s.state, TickInput{Now: now, Directions: s.dirs, Shoot: s.shoot}, s.params)
	s.shoot = false
	return s.state.Phase == PhaseGameOver
}

// ClockTick counts one elapsed second. It reports a level-up, after which
// SpawnInterval returns the new cadence.
func (s *Session) ClockTick(now time.Time) bool {
	var up bool
	s.state, up = AdvanceClock(s.state, now, s.params)
	return up
}

// SpawnTick spawns one wave of enemies.
func (s *Session) SpawnTick(now time.Time) {
	s.state = SpawnWave(s.state, s.rng, now, s.params)
}

// SpawnInterval is the current delay between waves.
func (s *Session) SpawnInterval() time.Duration {
	return s.state.Difficulty.SpawnInterval
}

// Snapshot returns a presentation view at now.
func (s *Session) Snapshot(now time.Time) Snapshot {
	return s.state.Snapshot(now, s.params)
}
