// Package physics provides collision detection, distance, and steering utilities.
package physics

import "math"

// Distance calculates the Euclidean distance between two points.
func Distance(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return math.Sqrt(dx*dx + dy*dy)
}

// DistanceSquared calculates the squared distance between two points.
// Use this when comparing distances to avoid the sqrt cost.
func DistanceSquared(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return dx*dx + dy*dy
}

// CirclesOverlap checks if two circles overlap. Touching circles do not overlap.
func CirclesOverlap(x1, y1, r1, x2, y2, r2 float64) bool {
	minDist := r1 + r2
	return DistanceSquared(x1, y1, x2, y2) < minDist*minDist
}

// Homing returns a velocity of magnitude speed pointing from (x, y) toward (tx, ty).
// When the points coincide the direction is undefined and the zero vector is
// returned, so a NaN never reaches the caller's position.
func Homing(x, y, tx, ty, speed float64) (vx, vy float64) {
	dx := tx - x
	dy := ty - y
	dist := math.Sqrt(dx*dx + dy*dy)
	if !(dist > 0) || math.IsInf(dist, 0) {
		return 0, 0
	}
	return dx / dist * speed, dy / dist * speed
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
