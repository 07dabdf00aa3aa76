// Package object defines the entities that live in the arena and the rules
// that move and create them. Entities are plain values; the game package owns
// the collections.
package object

import "github.com/tomz197/swarm/internal/loop/config"

// Fixed entity dimensions. Positions are top-left anchored; collisions use
// centers and circular hitboxes.
const (
	CharacterSize    = config.CharacterSize
	CharacterHitbox  = config.CharacterHitbox
	ProjectileSize   = config.ProjectileSize
	ProjectileHitbox = config.ProjectileHitbox
	EnemySize        = config.EnemySize
	EnemyHitbox      = config.EnemyHitbox
)

// Arena is the bounded rectangle [0, Width] × [0, Height].
type Arena struct {
	Width  float64
	Height float64
}

// DefaultArena returns the arena at its configured size.
func DefaultArena() Arena {
	return Arena{Width: config.ArenaWidth, Height: config.ArenaHeight}
}

// Center returns the midpoint of the arena.
func (a Arena) Center() (x, y float64) {
	return a.Width / 2, a.Height / 2
}

// Outside reports whether (x, y) lies more than margin beyond any edge.
func (a Arena) Outside(x, y, margin float64) bool {
	return x < -margin || x > a.Width+margin || y < -margin || y > a.Height+margin
}
