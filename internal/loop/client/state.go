package client

import (
	"time"

	"github.com/tomz197/swarm/internal/game"
	"github.com/tomz197/swarm/internal/input"
	"github.com/tomz197/swarm/internal/object"
)

// GameState represents the screen the client is showing.
type GameState int

const (
	GameStateStart    GameState = iota // Title screen
	GameStatePlaying                   // Active gameplay
	GameStateOver                      // Run ended, show final score and restart prompt
	GameStateShutdown                  // Server is shutting down
)

// screenFor maps a session phase to the screen that presents it.
func screenFor(p game.Phase) GameState {
	switch p {
	case game.PhaseRunning:
		return GameStatePlaying
	case game.PhaseGameOver:
		return GameStateOver
	default:
		return GameStateStart
	}
}

// ClientState holds per-connection presentation state.
type ClientState struct {
	Input         input.Input
	prevInput     input.Input
	GameState     GameState
	prevGameState GameState
	Running       bool          // Client loop running
	delta         time.Duration // Frame delta time (client-side)
	shutdownTimer float64       // Countdown before auto-disconnect on shutdown
	isInactive    bool          // Whether the client is in inactive warning state
	wasInactive   bool

	lastSnapshot *game.Snapshot
	particles    []*object.Particle
}

// NewClientState creates a new initialized client state.
func NewClientState() *ClientState {
	return &ClientState{
		GameState:     GameStateStart,
		prevGameState: GameStateStart,
		Running:       true,
	}
}
