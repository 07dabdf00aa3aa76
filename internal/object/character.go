package object

import (
	"github.com/tomz197/swarm/internal/input"
	"github.com/tomz197/swarm/internal/physics"
)

// Character is the player-controlled figure. There is exactly one per session.
type Character struct {
	X, Y float64 // Top-left corner
}

// NewCharacter places the character so its center is the arena center.
func NewCharacter(a Arena) Character {
	cx, cy := a.Center()
	return Character{X: cx - CharacterSize/2, Y: cy - CharacterSize/2}
}

// Center returns the center of the character's sprite.
func (c Character) Center() (x, y float64) {
	return c.X + CharacterSize/2, c.Y + CharacterSize/2
}

// Move steps the character by step along every held axis and clamps it to
// [0, extent-size]. Opposite directions cancel. Diagonals are not
// normalized, so diagonal speed is step·√2.
func (c Character) Move(dirs input.Directions, a Arena, step float64) Character {
	var dx, dy float64
	if dirs.Has(input.Up) {
		dy -= step
	}
	if dirs.Has(input.Down) {
		dy += step
	}
	if dirs.Has(input.Left) {
		dx -= step
	}
	if dirs.Has(input.Right) {
		dx += step
	}
	if dx == 0 && dy == 0 {
		return c
	}

	return Character{
		X: physics.Clamp(c.X+dx, 0, a.Width-CharacterSize),
		Y: physics.Clamp(c.Y+dy, 0, a.Height-CharacterSize),
	}
}
