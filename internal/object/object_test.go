package object

import (
	"math"
	"math/rand/v2"
	"testing"
)

func TestProjectile_Advance(t *testing.T) {
	p := Projectile{ID: 1, X: 10, Y: 10, VX: 3.5, VY: 0}
	p = p.Advance().Advance()
	if p.X != 17 || p.Y != 10 {
		t.Errorf("position = (%v, %v), want (17, 10)", p.X, p.Y)
	}
}

func TestProjectile_Escaped(t *testing.T) {
	a := DefaultArena()
	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"inside", 500, 350, false},
		{"on margin left", -20, 100, false},
		{"past margin left", -20.1, 100, true},
		{"past margin right", 1020.5, 100, true},
		{"past margin top", 100, -21, true},
		{"past margin bottom", 100, 721, true},
	}
	for _, tc := range tests {
		p := Projectile{X: tc.x, Y: tc.y}
		if got := p.Escaped(a, 20); got != tc.want {
			t.Errorf("%s: Escaped = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestEnemy_Advance(t *testing.T) {
	e := Enemy{ID: 1, X: 0, Y: 0}
	moved := e.Advance(30, 40, 0.5)
	if math.Abs(moved.X-0.3) > 1e-12 || math.Abs(moved.Y-0.4) > 1e-12 {
		t.Errorf("Advance = (%v, %v), want (0.3, 0.4)", moved.X, moved.Y)
	}
}

func TestEnemy_AdvanceAtTargetStaysPut(t *testing.T) {
	e := Enemy{ID: 1, X: 500, Y: 350}
	moved := e.Advance(500, 350, 0.5)
	if moved != e {
		t.Errorf("Advance at target = %+v, want %+v", moved, e)
	}
	if math.IsNaN(moved.X) || math.IsNaN(moved.Y) {
		t.Error("position became NaN")
	}
}

func TestParticle_Lifecycle(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 7))
	ps := Burst(rng, 10, 10, 5, 100, 0.4)
	if len(ps) != 5 {
		t.Fatalf("len = %d, want 5", len(ps))
	}
	p := ps[0]
	if !p.Update(0.01) {
		t.Fatal("particle expired after first tick")
	}
	if p.Update(1) {
		t.Error("particle alive past its lifetime")
	}
	for _, p := range ps {
		p.Release()
	}
}
