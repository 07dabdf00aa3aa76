package server

import (
	"fmt"

	"github.com/tomz197/swarm/internal/input"
)

// CommandType identifies a player command.
type CommandType int

const (
	CommandStart CommandType = iota
	CommandPress
	CommandRelease
	CommandSet   // Hold only Dir, as a touch d-pad does
	CommandClear // Release every direction
	CommandShoot
	CommandEnd // Abandon the current run
)

func (t CommandType) String() string {
	switch t {
	case CommandStart:
		return "start"
	case CommandPress:
		return "press"
	case CommandRelease:
		return "release"
	case CommandSet:
		return "set"
	case CommandClear:
		return "clear"
	case CommandShoot:
		return "shoot"
	case CommandEnd:
		return "end"
	default:
		return fmt.Sprintf("CommandType(%d)", int(t))
	}
}

// Command is one player action delivered to a runner.
type Command struct {
	Type CommandType
	Dir  input.Direction // For press, release and set
}

// EventType identifies an event sent from a runner or the server to a client.
type EventType int

const (
	EventGameOver EventType = iota
	EventLevelUp
	EventServerShutdown
)

// Event is a notification for the client. Score, Level and Elapsed describe the
// session when the event happened.
type Event struct {
	Type            EventType
	Score           int
	Level           int
	Elapsed         int
	FireRatePercent int // For level-up
}
