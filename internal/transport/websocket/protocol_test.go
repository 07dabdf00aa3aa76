package websocket

import (
	"errors"
	"testing"

	"github.com/tomz197/swarm/internal/game"
	"github.com/tomz197/swarm/internal/input"
	"github.com/tomz197/swarm/internal/loop/server"
	"github.com/tomz197/swarm/internal/object"
)

func TestCommandMessage(t *testing.T) {
	tests := []struct {
		msg     CommandMessage
		want    server.Command
		wantErr error
	}{
		{CommandMessage{Type: "start"}, server.Command{Type: server.CommandStart}, nil},
		{CommandMessage{Type: "press", Dir: "left"}, server.Command{Type: server.CommandPress, Dir: input.Left}, nil},
		{CommandMessage{Type: "release", Dir: "up"}, server.Command{Type: server.CommandRelease, Dir: input.Up}, nil},
		{CommandMessage{Type: "set", Dir: "down"}, server.Command{Type: server.CommandSet, Dir: input.Down}, nil},
		{CommandMessage{Type: "clear"}, server.Command{Type: server.CommandClear}, nil},
		{CommandMessage{Type: "shoot"}, server.Command{Type: server.CommandShoot}, nil},
		{CommandMessage{Type: "end"}, server.Command{Type: server.CommandEnd}, nil},
		{CommandMessage{Type: "press", Dir: "sideways"}, server.Command{}, input.ErrUnknownDirection},
		{CommandMessage{Type: "set"}, server.Command{}, input.ErrUnknownDirection},
		{CommandMessage{Type: "jump"}, server.Command{}, ErrUnknownCommand},
	}
	for _, tt := range tests {
		got, err := tt.msg.Command()
		if !errors.Is(err, tt.wantErr) {
			t.Errorf("%+v: err = %v, want %v", tt.msg, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("%+v: Command = %+v, want %+v", tt.msg, got, tt.want)
		}
	}
}

func TestSnapshotMessage(t *testing.T) {
	snap := &game.Snapshot{
		Phase:           game.PhaseRunning,
		Arena:           object.DefaultArena(),
		Character:       object.Character{X: 450, Y: 300},
		Projectiles:     []object.Projectile{{ID: 5, X: 1, Y: 2, VY: -3.5}},
		Enemies:         []object.Enemy{{ID: 9, X: -30, Y: 40}},
		Score:           20,
		Elapsed:         16,
		Level:           2,
		FireRatePercent: 25,
		LevelUp:         true,
	}
	msg := newSnapshotMessage(snap)
	if msg.Type != "snapshot" || msg.Phase != "running" {
		t.Errorf("Type, Phase = %q, %q, want snapshot, running", msg.Type, msg.Phase)
	}
	if msg.Arena != (Size{Width: 1000, Height: 700}) {
		t.Errorf("Arena = %+v", msg.Arena)
	}
	if len(msg.Projectiles) != 1 || msg.Projectiles[0] != (Entity{ID: 5, X: 1, Y: 2}) {
		t.Errorf("Projectiles = %+v", msg.Projectiles)
	}
	if len(msg.Enemies) != 1 || msg.Enemies[0] != (Entity{ID: 9, X: -30, Y: 40}) {
		t.Errorf("Enemies = %+v", msg.Enemies)
	}
	if msg.Score != 20 || msg.Level != 2 || msg.FireRatePercent != 25 || !msg.LevelUp {
		t.Errorf("status = %+v", msg)
	}
}
