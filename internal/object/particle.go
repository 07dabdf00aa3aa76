package object

import (
	"math"
	"math/rand/v2"
	"sync"
)

// particlePool is a sync.Pool for reusing Particle objects to reduce allocations.
var particlePool = sync.Pool{
	New: func() any {
		return &Particle{}
	},
}

// Particle is a short-lived visual effect. Particles live only in a
// presenter; they never take part in the simulation.
type Particle struct {
	X, Y        float64 // Position
	VX, VY      float64 // Velocity (units per second)
	Lifetime    float64 // Seconds remaining
	MaxLifetime float64 // Initial lifetime (for fade calculation)
	Drag        float64 // Velocity decay (1.0 = no drag)
}

// NewParticle creates a single particle from the pool.
func NewParticle(x, y, vx, vy, lifetime float64) *Particle {
	p := particlePool.Get().(*Particle)
	p.X = x
	p.Y = y
	p.VX = vx
	p.VY = vy
	p.Lifetime = lifetime
	p.MaxLifetime = lifetime
	p.Drag = 0.95
	return p
}

// Release returns the particle to the pool for reuse.
func (p *Particle) Release() {
	particlePool.Put(p)
}

// Burst creates count particles flying out of (x, y) in random directions.
func Burst(rng *rand.Rand, x, y float64, count int, speed, lifetime float64) []*Particle {
	out := make([]*Particle, 0, count)
	for i := 0; i < count; i++ {
		angle := rng.Float64() * 2 * math.Pi
		// Speed varies 50% to 150%, lifetime 50% to 100%
		spd := speed * (0.5 + rng.Float64())
		life := lifetime * (0.5 + rng.Float64()*0.5)
		out = append(out, NewParticle(x, y, math.Cos(angle)*spd, math.Sin(angle)*spd, life))
	}
	return out
}

// Update advances the particle by dt seconds. Returns false once it has expired.
func (p *Particle) Update(dt float64) bool {
	p.Lifetime -= dt
	if p.Lifetime <= 0 {
		return false
	}

	dragFactor := math.Pow(p.Drag, dt*60) // Normalize drag to ~60fps
	p.VX *= dragFactor
	p.VY *= dragFactor
	p.X += p.VX * dt
	p.Y += p.VY * dt
	return true
}

// Faded reports whether the particle is in the last quarter of its life.
func (p *Particle) Faded() bool {
	return p.MaxLifetime > 0 && p.Lifetime/p.MaxLifetime < 0.25
}
