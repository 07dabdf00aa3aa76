// Package websocket serves game sessions to browsers. Clients send JSON
// commands and receive JSON snapshots at the frame cadence.
package websocket

import (
	"errors"
	"fmt"

	"github.com/tomz197/swarm/internal/game"
	"github.com/tomz197/swarm/internal/input"
	"github.com/tomz197/swarm/internal/loop/server"
	"github.com/tomz197/swarm/internal/object"
)

// ErrUnknownCommand is returned for a command message whose type is not recognized.
var ErrUnknownCommand = errors.New("unknown command")

// CommandMessage is a client → server message, e.g. {"type":"press","dir":"left"}.
type CommandMessage struct {
	Type string `json:"type"`
	Dir  string `json:"dir,omitempty"`
}

var commandTypes = map[string]server.CommandType{
	"start":   server.CommandStart,
	"press":   server.CommandPress,
	"release": server.CommandRelease,
	"set":     server.CommandSet,
	"clear":   server.CommandClear,
	"shoot":   server.CommandShoot,
	"end":     server.CommandEnd,
}

// Command converts the message to a session command.
func (m CommandMessage) Command() (server.Command, error) {
	t, ok := commandTypes[m.Type]
	if !ok {
		return server.Command{}, fmt.Errorf("%w: %q", ErrUnknownCommand, m.Type)
	}
	cmd := server.Command{Type: t}
	switch t {
	case server.CommandPress, server.CommandRelease, server.CommandSet:
		d, err := input.ParseDirection(m.Dir)
		if err != nil {
			return server.Command{}, fmt.Errorf("%s: %w", m.Type, err)
		}
		cmd.Dir = d
	}
	return cmd, nil
}

// Entity is a positioned object on the wire. Positions are top-left corners.
type Entity struct {
	ID int64   `json:"id,omitempty"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

// Size is a width and height on the wire.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// SnapshotMessage is a server → client view of the session.
type SnapshotMessage struct {
	Type            string   `json:"type"` // Always "snapshot"
	Phase           string   `json:"phase"`
	Arena           Size     `json:"arena"`
	Character       Entity   `json:"character"`
	Projectiles     []Entity `json:"projectiles"`
	Enemies         []Entity `json:"enemies"`
	Score           int      `json:"score"`
	Elapsed         int      `json:"elapsed"`
	Level           int      `json:"level"`
	FireRatePercent int      `json:"fireRatePercent"`
	LevelUp         bool     `json:"levelUp"`
}

// Sprites holds sprite sizes so the page can draw without duplicating constants.
type Sprites struct {
	Character  float64 `json:"character"`
	Projectile float64 `json:"projectile"`
	Enemy      float64 `json:"enemy"`
}

// HelloMessage is the first message on a connection.
type HelloMessage struct {
	Type    string  `json:"type"` // Always "hello"
	Session string  `json:"session"`
	Arena   Size    `json:"arena"`
	Sprites Sprites `json:"sprites"`
}

// EventMessage forwards a session event.
type EventMessage struct {
	Type    string `json:"type"` // Always "event"
	Event   string `json:"event"`
	Score   int    `json:"score"`
	Level   int    `json:"level"`
	Elapsed int    `json:"elapsed"`
}

// ErrorMessage reports a rejected command. The connection stays open.
type ErrorMessage struct {
	Type    string `json:"type"` // Always "error"
	Message string `json:"message"`
}

func newSnapshotMessage(s *game.Snapshot) SnapshotMessage {
	msg := SnapshotMessage{
		Type:            "snapshot",
		Phase:           s.Phase.String(),
		Arena:           Size{Width: s.Arena.Width, Height: s.Arena.Height},
		Character:       Entity{X: s.Character.X, Y: s.Character.Y},
		Projectiles:     make([]Entity, len(s.Projectiles)),
		Enemies:         make([]Entity, len(s.Enemies)),
		Score:           s.Score,
		Elapsed:         s.Elapsed,
		Level:           s.Level,
		FireRatePercent: s.FireRatePercent,
		LevelUp:         s.LevelUp,
	}
	for i, p := range s.Projectiles {
		msg.Projectiles[i] = Entity{ID: p.ID, X: p.X, Y: p.Y}
	}
	for i, e := range s.Enemies {
		msg.Enemies[i] = Entity{ID: e.ID, X: e.X, Y: e.Y}
	}
	return msg
}

func newHelloMessage(session string, arena object.Arena) HelloMessage {
	return HelloMessage{
		Type:    "hello",
		Session: session,
		Arena:   Size{Width: arena.Width, Height: arena.Height},
		Sprites: Sprites{
			Character:  object.CharacterSize,
			Projectile: object.ProjectileSize,
			Enemy:      object.EnemySize,
		},
	}
}

func newEventMessage(ev server.Event) EventMessage {
	var name string
	switch ev.Type {
	case server.EventGameOver:
		name = "game_over"
	case server.EventLevelUp:
		name = "level_up"
	case server.EventServerShutdown:
		name = "shutdown"
	}
	return EventMessage{Type: "event", Event: name, Score: ev.Score, Level: ev.Level, Elapsed: ev.Elapsed}
}
