package game

import (
	"math"
	"time"
)

// Difficulty is the controller state derived from elapsed session time.
type Difficulty struct {
	Level           int
	LastLevelUp     int // Elapsed second at which the last level-up happened
	EnemiesPerSpawn int
	SpawnInterval   time.Duration
	FireInterval    time.Duration
}

// NewDifficulty returns the level-1 difficulty.
func NewDifficulty(p Params) Difficulty {
	return Difficulty{
		Level:           1,
		EnemiesPerSpawn: p.InitialEnemiesPerSpawn,
		SpawnInterval:   p.SpawnIntervalAt(1),
		FireInterval:    p.FireIntervalAt(1),
	}
}

// Advance re-evaluates the difficulty after the clock reached elapsed seconds.
// The level rises by one on each positive multiple of DifficultyInterval, at
// most once per boundary, and never beyond MaxDifficulty. Each level-up grows
// the spawn batch by EnemyCountMultiplier, rounded up.
func (d Difficulty) Advance(elapsed int, p Params) (Difficulty, bool) {
	if elapsed <= 0 || p.DifficultyInterval <= 0 || elapsed%p.DifficultyInterval != 0 {
		return d, false
	}
	if elapsed == d.LastLevelUp || d.Level >= p.MaxDifficulty {
		return d, false
	}

	d.Level++
	d.LastLevelUp = elapsed
	d.EnemiesPerSpawn = min(p.MaxEnemiesPerSpawn, int(math.Ceil(float64(d.EnemiesPerSpawn)*p.EnemyCountMultiplier)))
	d.SpawnInterval = p.SpawnIntervalAt(d.Level)
	d.FireInterval = p.FireIntervalAt(d.Level)
	return d, true
}

// LevelAt is the level reached after elapsed seconds when the clock ticks every second.
func (p Params) LevelAt(elapsed int) int {
	if elapsed <= 0 || p.DifficultyInterval <= 0 {
		return 1
	}
	return min(p.MaxDifficulty, 1+elapsed/p.DifficultyInterval)
}

// SpawnIntervalAt decays linearly with level down to MinSpawnInterval.
func (p Params) SpawnIntervalAt(level int) time.Duration {
	return max(p.MinSpawnInterval, p.InitialSpawnInterval-time.Duration(level-1)*p.SpawnDecreaseStep)
}

// FireIntervalAt decays geometrically with level down to MinFireInterval,
// rounded to whole milliseconds.
func (p Params) FireIntervalAt(level int) time.Duration {
	factor := math.Pow(1-p.FireRateIncrease, float64(level-1))
	ms := math.Round(float64(p.InitialFireInterval.Milliseconds()) * factor)
	return max(p.MinFireInterval, time.Duration(ms)*time.Millisecond)
}

// FireRatePercent is how much faster than the level-1 rate the given interval fires.
func (p Params) FireRatePercent(fire time.Duration) int {
	if fire <= 0 {
		return 0
	}
	ratio := float64(p.InitialFireInterval) / float64(fire)
	return int(math.Round((ratio - 1) * 100))
}
