package game

import (
	"github.com/tomz197/swarm/internal/object"
	"github.com/tomz197/swarm/internal/physics"
)

// gridThreshold is the projectile×enemy pair count above which the resolver
// switches from the pairwise scan to a spatial grid.
const gridThreshold = 256

// Collisions is what one resolution pass decided. Applying it is the caller's job.
type Collisions struct {
	SpentProjectiles []int64 // Projectiles that hit an enemy, in projectile order
	KilledEnemies    []int64 // Enemies those projectiles hit, same order
	CharacterHit     bool
	HitBy            int64 // Enemy that reached the character, when CharacterHit
}

// Kills is the number of enemies destroyed.
func (c Collisions) Kills() int {
	return len(c.KilledEnemies)
}

// Resolve matches projectiles against enemies, then checks the surviving
// enemies against the character.
//
// Matching is greedy in list order: each projectile takes the first enemy it
// overlaps that no earlier projectile took, so every projectile and every
// enemy is consumed at most once. Projectiles already in removed are skipped.
// An enemy destroyed in this pass cannot also end the game.
func Resolve(projectiles []object.Projectile, enemies []object.Enemy, c object.Character, removed map[int64]struct{}) Collisions {
	var out Collisions
	killed := make([]bool, len(enemies))

	match := matchPairwise
	if len(projectiles)*len(enemies) > gridThreshold {
		match = matchGrid
	}
	match(projectiles, enemies, removed, killed, &out)

	cx, cy := c.Center()
	for i, e := range enemies {
		if killed[i] {
			continue
		}
		ex, ey := e.Center()
		if physics.CirclesOverlap(cx, cy, object.CharacterHitbox, ex, ey, object.EnemyHitbox) {
			out.CharacterHit = true
			out.HitBy = e.ID
			break
		}
	}
	return out
}

type matchFunc func(projectiles []object.Projectile, enemies []object.Enemy, removed map[int64]struct{}, killed []bool, out *Collisions)

func projectileHits(p object.Projectile, e object.Enemy) bool {
	px, py := p.Center()
	ex, ey := e.Center()
	return physics.CirclesOverlap(px, py, object.ProjectileHitbox, ex, ey, object.EnemyHitbox)
}

func matchPairwise(projectiles []object.Projectile, enemies []object.Enemy, removed map[int64]struct{}, killed []bool, out *Collisions) {
	for _, p := range projectiles {
		if _, gone := removed[p.ID]; gone {
			continue
		}
		for j, e := range enemies {
			if killed[j] || !projectileHits(p, e) {
				continue
			}
			killed[j] = true
			out.SpentProjectiles = append(out.SpentProjectiles, p.ID)
			out.KilledEnemies = append(out.KilledEnemies, e.ID)
			break
		}
	}
}

// matchGrid gives the same answer as matchPairwise: for each projectile it
// picks the lowest-index live enemy among the grid candidates.
func matchGrid(projectiles []object.Projectile, enemies []object.Enemy, removed map[int64]struct{}, killed []bool, out *Collisions) {
	reach := object.ProjectileHitbox + object.EnemyHitbox
	minX, minY, maxX, maxY := enemyBounds(enemies)
	grid := physics.NewSpatialGrid(minX, minY, maxX, maxY, reach)
	for j, e := range enemies {
		ex, ey := e.Center()
		grid.Insert(ex, ey, j)
	}

	for _, p := range projectiles {
		if _, gone := removed[p.ID]; gone {
			continue
		}
		px, py := p.Center()
		best := -1
		grid.QueryAround(px, py, func(j int) bool {
			if killed[j] || (best >= 0 && j > best) {
				return false
			}
			if projectileHits(p, enemies[j]) {
				best = j
			}
			return false
		})
		if best < 0 {
			continue
		}
		killed[best] = true
		out.SpentProjectiles = append(out.SpentProjectiles, p.ID)
		out.KilledEnemies = append(out.KilledEnemies, enemies[best].ID)
	}
}

func enemyBounds(enemies []object.Enemy) (minX, minY, maxX, maxY float64) {
	minX, minY = enemies[0].Center()
	maxX, maxY = minX, minY
	for _, e := range enemies[1:] {
		x, y := e.Center()
		minX, maxX = min(minX, x), max(maxX, x)
		minY, maxY = min(minY, y), max(maxY, y)
	}
	return minX, minY, maxX, maxY
}
