package game

import (
	"math/rand/v2"
	"slices"
	"time"

	"github.com/tomz197/swarm/internal/input"
	"github.com/tomz197/swarm/internal/object"
)

// TickInput is what the outside world feeds one frame.
type TickInput struct {
	Now        time.Time
	Directions input.Directions
	Shoot      bool // Fire now regardless of cadence
}

// Step advances a running session by one frame. Order within the frame:
// fire if due, move the character, move projectiles and drop the escaped
// ones, move enemies toward the character, resolve collisions.
// States other than running are returned unchanged.
func Step(s State, in TickInput, p Params) State {
	if s.Phase != PhaseRunning {
		return s
	}

	next := s
	if in.Shoot || in.Now.Sub(s.LastShot) >= s.Difficulty.FireInterval {
		next = Fire(next, in.Now, p)
	}

	next.Character = next.Character.Move(in.Directions, p.Arena, p.CharacterSpeed)

	projectiles := make([]object.Projectile, 0, len(next.Projectiles))
	for _, pr := range next.Projectiles {
		pr = pr.Advance()
		if pr.Escaped(p.Arena, p.ProjectileMargin) {
			continue
		}
		if _, gone := next.Removed[pr.ID]; gone {
			continue
		}
		projectiles = append(projectiles, pr)
	}

	tx, ty := next.Character.Center()
	enemies := make([]object.Enemy, len(next.Enemies))
	for i, e := range next.Enemies {
		enemies[i] = e.Advance(tx, ty, p.EnemySpeed)
	}

	hits := Resolve(projectiles, enemies, next.Character, next.Removed)
	if kills := hits.Kills(); kills > 0 {
		spent := idSet(hits.SpentProjectiles)
		projectiles = slices.DeleteFunc(projectiles, func(pr object.Projectile) bool {
			_, ok := spent[pr.ID]
			return ok
		})
		dead := idSet(hits.KilledEnemies)
		enemies = slices.DeleteFunc(enemies, func(e object.Enemy) bool {
			_, ok := dead[e.ID]
			return ok
		})
		next.Removed = next.withRemoved(hits.SpentProjectiles)
		next.Score += kills * p.ScorePerKill
	}

	next.Projectiles = projectiles
	next.Enemies = enemies
	if hits.CharacterHit {
		next.Phase = PhaseGameOver
	}
	return next
}

// Fire adds one volley at the character's position and restarts the fire cadence.
func Fire(s State, now time.Time, p Params) State {
	if s.Phase != PhaseRunning {
		return s
	}
	base := s.nextProjectileBase(now)
	volley := object.Volley(s.Character, p.ProjectileSpeed, base)

	projectiles := make([]object.Projectile, 0, len(s.Projectiles)+len(volley))
	projectiles = append(projectiles, s.Projectiles...)
	projectiles = append(projectiles, volley[:]...)

	s.Projectiles = projectiles
	s.lastProjectileID = base + object.VolleySize
	s.LastShot = now
	return s
}

// AdvanceClock counts one elapsed second and lets the difficulty controller react.
// The second return reports a level-up, after which the spawn cadence changed.
func AdvanceClock(s State, now time.Time, p Params) (State, bool) {
	if s.Phase != PhaseRunning {
		return s, false
	}
	s.Elapsed++
	d, up := s.Difficulty.Advance(s.Elapsed, p)
	if up {
		s.Difficulty = d
		s.LevelUpAt = now
	}
	return s, up
}

// SpawnWave adds one batch of EnemiesPerSpawn enemies on the arena edges.
func SpawnWave(s State, rng *rand.Rand, now time.Time, p Params) State {
	if s.Phase != PhaseRunning || s.Difficulty.EnemiesPerSpawn <= 0 {
		return s
	}
	base := s.nextEnemyBase(now)
	batch := p.spawner().Batch(rng, s.Difficulty.EnemiesPerSpawn, base)

	enemies := make([]object.Enemy, 0, len(s.Enemies)+len(batch))
	enemies = append(enemies, s.Enemies...)
	enemies = append(enemies, batch...)

	s.Enemies = enemies
	s.lastEnemyID = base + int64(len(batch)) - 1
	return s
}

func idSet(ids []int64) map[int64]struct{} {
	set := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
