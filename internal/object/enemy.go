package object

import "github.com/tomz197/swarm/internal/physics"

// Enemy chases the character until shot or until it reaches it.
type Enemy struct {
	ID   int64
	X, Y float64 // Top-left corner
}

// Center returns the center of the enemy's sprite.
func (e Enemy) Center() (x, y float64) {
	return e.X + EnemySize/2, e.Y + EnemySize/2
}

// Advance moves the enemy speed units from its position toward (tx, ty).
// An enemy already at the target stays put.
func (e Enemy) Advance(tx, ty, speed float64) Enemy {
	vx, vy := physics.Homing(e.X, e.Y, tx, ty, speed)
	e.X += vx
	e.Y += vy
	return e
}
