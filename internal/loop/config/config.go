// Package config centralizes all tunable game parameters.
package config

import "time"

// Arena dimensions in logical units. Rendering scales to fit the terminal.
const (
	ArenaWidth  = 1000
	ArenaHeight = 700
)

// Per-tick speeds. Movement is frame-locked, not delta-scaled.
const (
	CharacterSpeed  = 1.5
	ProjectileSpeed = 3.5
	EnemySpeed      = 0.5
)

// Entity sizes. Hitbox values are radii used for center-to-center tests.
const (
	CharacterSize        = 100.0
	CharacterHitbox      = 20.0
	ProjectileSize       = 40.0
	ProjectileHitbox     = 20.0
	EnemySize            = 45.0
	EnemyHitbox          = 20.0
	ProjectileExitMargin = 20.0 // Distance past the arena edge before a projectile is dropped
	EnemySpawnMargin     = 30.0 // Enemies appear this far outside the arena
)

// Spawning and firing cadence (milliseconds).
const (
	InitialSpawnInterval = 2000
	MinSpawnInterval     = 500
	SpawnDecreaseStep    = 50
	InitialFireInterval  = 500
	MinFireInterval      = 50
)

// Difficulty
const (
	DifficultyInterval     = 15  // Seconds between level-ups
	MaxDifficulty          = 100 // Level cap
	FireRateIncrease       = 0.2 // Fire interval shrinks by this fraction per level
	EnemyCountMultiplier   = 1.3 // Spawn batch growth per level-up (rounded up)
	InitialEnemiesPerSpawn = 1
	MaxEnemiesPerSpawn     = 500
	LevelUpDisplay         = 3 * time.Second
)

// Scoring
const (
	ScorePerKill = 10
)

// Frame and clock cadence
const (
	TargetFPS     = 60
	FrameTime     = time.Second / TargetFPS
	ClockInterval = time.Second // Elapsed-time tick driving the difficulty controller
)

// Client rendering
const (
	ClientTargetFPS       = 60
	ClientTargetFrameTime = time.Second / ClientTargetFPS
	MaxTermWidth          = 160
	MaxTermHeight         = 56
	BurstParticles        = 10
	BurstSpeed            = 120.0 // Logical units per second
	BurstLifetime         = 0.4   // Seconds
)

// Shutdown
const (
	ShutdownDisplaySeconds = 10.0 // Seconds to show shutdown message before auto-disconnect
)

// Inactivity
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)
