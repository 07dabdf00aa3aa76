package object

import "math/rand/v2"

// VolleySize is the number of projectiles one fire event creates.
const VolleySize = 4

// Volley returns the four projectiles of one fire event, one per cardinal
// direction, leaving the character's edges. IDs are base+1 .. base+4.
func Volley(c Character, speed float64, base int64) [VolleySize]Projectile {
	half := CharacterSize / 2
	offset := half - ProjectileSize/2
	return [VolleySize]Projectile{
		{ID: base + 1, X: c.X + offset, Y: c.Y, VX: 0, VY: -speed},
		{ID: base + 2, X: c.X + offset, Y: c.Y + CharacterSize, VX: 0, VY: speed},
		{ID: base + 3, X: c.X, Y: c.Y + offset, VX: -speed, VY: 0},
		{ID: base + 4, X: c.X + CharacterSize, Y: c.Y + offset, VX: speed, VY: 0},
	}
}

// Side is an arena edge enemies can enter from.
type Side int

const (
	SideTop Side = iota
	SideRight
	SideBottom
	SideLeft
)

// EdgeSpawner picks enemy spawn points just outside the arena.
type EdgeSpawner struct {
	Arena  Arena
	Margin float64 // How far outside the edge enemies appear
}

// PointOn returns the spawn point on side at fraction t ∈ [0, 1) along it.
func (s EdgeSpawner) PointOn(side Side, t float64) (x, y float64) {
	switch side {
	case SideTop:
		return t * s.Arena.Width, -s.Margin
	case SideRight:
		return s.Arena.Width + s.Margin, t * s.Arena.Height
	case SideBottom:
		return t * s.Arena.Width, s.Arena.Height + s.Margin
	case SideLeft:
		return -s.Margin, t * s.Arena.Height
	default:
		return 0, 0
	}
}

// Point picks a side uniformly, then a uniform position along it.
func (s EdgeSpawner) Point(rng *rand.Rand) (x, y float64) {
	side := Side(rng.IntN(4))
	return s.PointOn(side, rng.Float64())
}

// Batch creates count enemies at independent random edge points with IDs base, base+1, ...
func (s EdgeSpawner) Batch(rng *rand.Rand, count int, base int64) []Enemy {
	if count <= 0 {
		return nil
	}
	enemies := make([]Enemy, count)
	for i := range enemies {
		x, y := s.Point(rng)
		enemies[i] = Enemy{ID: base + int64(i), X: x, Y: y}
	}
	return enemies
}
