// Package game is the simulation core: the per-frame update rules, the
// difficulty controller, collision resolution, and the session state machine.
// Nothing here touches a clock, a terminal, or a network; time comes in as
// arguments and results go out as values.
package game

import (
	"time"

	"github.com/tomz197/swarm/internal/config"
	loopconfig "github.com/tomz197/swarm/internal/loop/config"
	"github.com/tomz197/swarm/internal/object"
)

// Params holds every tunable the simulation reads.
type Params struct {
	Arena object.Arena

	CharacterSpeed   float64 // Units per tick
	ProjectileSpeed  float64 // Units per tick
	EnemySpeed       float64 // Units per tick
	ProjectileMargin float64 // Projectiles past this distance outside the arena are dropped
	SpawnMargin      float64 // Enemies spawn this far outside the arena

	InitialSpawnInterval time.Duration
	MinSpawnInterval     time.Duration
	SpawnDecreaseStep    time.Duration
	InitialFireInterval  time.Duration
	MinFireInterval      time.Duration

	DifficultyInterval     int // Seconds between level-ups
	MaxDifficulty          int
	FireRateIncrease       float64
	EnemyCountMultiplier   float64
	InitialEnemiesPerSpawn int
	MaxEnemiesPerSpawn     int
	LevelUpDisplay         time.Duration

	ScorePerKill int

	// Seed for enemy placement. Zero picks a random seed per session.
	Seed uint64
}

// DefaultParams returns the configured game tuning.
func DefaultParams() Params {
	return Params{
		Arena:                  object.DefaultArena(),
		CharacterSpeed:         loopconfig.CharacterSpeed,
		ProjectileSpeed:        loopconfig.ProjectileSpeed,
		EnemySpeed:             loopconfig.EnemySpeed,
		ProjectileMargin:       loopconfig.ProjectileExitMargin,
		SpawnMargin:            loopconfig.EnemySpawnMargin,
		InitialSpawnInterval:   loopconfig.InitialSpawnInterval * time.Millisecond,
		MinSpawnInterval:       loopconfig.MinSpawnInterval * time.Millisecond,
		SpawnDecreaseStep:      loopconfig.SpawnDecreaseStep * time.Millisecond,
		InitialFireInterval:    loopconfig.InitialFireInterval * time.Millisecond,
		MinFireInterval:        loopconfig.MinFireInterval * time.Millisecond,
		DifficultyInterval:     loopconfig.DifficultyInterval,
		MaxDifficulty:          loopconfig.MaxDifficulty,
		FireRateIncrease:       loopconfig.FireRateIncrease,
		EnemyCountMultiplier:   loopconfig.EnemyCountMultiplier,
		InitialEnemiesPerSpawn: loopconfig.InitialEnemiesPerSpawn,
		MaxEnemiesPerSpawn:     loopconfig.MaxEnemiesPerSpawn,
		LevelUpDisplay:         loopconfig.LevelUpDisplay,
		ScorePerKill:           loopconfig.ScorePerKill,
	}
}

// ParamsFromEnv returns DefaultParams with SWARM_DIFFICULTY_INTERVAL,
// SWARM_MAX_DIFFICULTY and SWARM_SEED applied. Non-positive overrides are ignored.
func ParamsFromEnv() Params {
	p := DefaultParams()
	if v := config.GetEnvInt("SWARM_DIFFICULTY_INTERVAL", p.DifficultyInterval); v > 0 {
		p.DifficultyInterval = v
	}
	if v := config.GetEnvInt("SWARM_MAX_DIFFICULTY", p.MaxDifficulty); v > 0 {
		p.MaxDifficulty = v
	}
	if v := config.GetEnvInt64("SWARM_SEED", 0); v > 0 {
		p.Seed = uint64(v)
	}
	return p
}

func (p Params) spawner() object.EdgeSpawner {
	return object.EdgeSpawner{Arena: p.Arena, Margin: p.SpawnMargin}
}
