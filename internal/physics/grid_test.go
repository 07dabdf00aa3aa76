package physics

import (
	"testing"

	"pgregory.net/rapid"
)

type point struct{ x, y float64 }

func TestSpatialGrid_QueryAround(t *testing.T) {
	g := NewSpatialGrid(0, 0, 100, 100, 10)
	g.Insert(5, 5, 0)
	g.Insert(15, 5, 1)
	g.Insert(55, 55, 2)

	found := map[int]bool{}
	g.QueryAround(5, 5, func(i int) bool {
		found[i] = true
		return false
	})

	if !found[0] || !found[1] {
		t.Errorf("found = %v, want 0 and 1", found)
	}
	if found[2] {
		t.Errorf("found = %v, far item 2 should not be returned", found)
	}
}

func TestSpatialGrid_StopEarly(t *testing.T) {
	g := NewSpatialGrid(0, 0, 100, 100, 10)
	for i := 0; i < 5; i++ {
		g.Insert(5, 5, i)
	}
	calls := 0
	g.QueryAround(5, 5, func(int) bool {
		calls++
		return true
	})
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestSpatialGrid_Clear(t *testing.T) {
	g := NewSpatialGrid(0, 0, 100, 100, 10)
	g.Insert(5, 5, 0)
	g.Clear()
	g.QueryAround(5, 5, func(i int) bool {
		t.Errorf("item %d returned after Clear", i)
		return false
	})
}

// Every pair closer than the cell size must be reported, including points
// outside the grid bounds.
func TestSpatialGrid_FindsAllNearPairs(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		const cell = 40.0
		g := NewSpatialGrid(-50, -50, 1050, 750, cell)

		n := rapid.IntRange(1, 30).Draw(t, "n")
		pts := make([]point, n)
		for i := range pts {
			pts[i] = point{
				x: rapid.Float64Range(-120, 1120).Draw(t, "x"),
				y: rapid.Float64Range(-120, 820).Draw(t, "y"),
			}
			g.Insert(pts[i].x, pts[i].y, i)
		}

		q := point{
			x: rapid.Float64Range(-120, 1120).Draw(t, "qx"),
			y: rapid.Float64Range(-120, 820).Draw(t, "qy"),
		}
		found := map[int]bool{}
		g.QueryAround(q.x, q.y, func(i int) bool {
			found[i] = true
			return false
		})

		for i, p := range pts {
			if Distance(q.x, q.y, p.x, p.y) < cell && !found[i] {
				t.Fatalf("point %d at %v within %v of %v not returned", i, p, cell, q)
			}
		}
	})
}
