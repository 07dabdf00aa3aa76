package object

// Projectile is a shot travelling in a straight line.
type Projectile struct {
	ID     int64
	X, Y   float64 // Top-left corner
	VX, VY float64 // Per-tick velocity
}

// Advance moves the projectile by one tick of its velocity.
func (p Projectile) Advance() Projectile {
	p.X += p.VX
	p.Y += p.VY
	return p
}

// Center returns the center of the projectile's sprite.
func (p Projectile) Center() (x, y float64) {
	return p.X + ProjectileSize/2, p.Y + ProjectileSize/2
}

// Escaped reports whether the projectile has left the arena by more than margin.
func (p Projectile) Escaped(a Arena, margin float64) bool {
	return a.Outside(p.X, p.Y, margin)
}
