package game

import (
	"fmt"
	"maps"
	"time"

	"github.com/tomz197/swarm/internal/object"
)

// Phase is where a session is in its lifecycle.
type Phase int

const (
	PhaseNotStarted Phase = iota
	PhaseRunning
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "not_started"
	case PhaseRunning:
		return "running"
	case PhaseGameOver:
		return "game_over"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// State is the whole simulation at one instant. Updates never write into the
// slices or the map of an existing State; they build new ones, so a State
// handed out stays valid.
type State struct {
	Phase      Phase
	Score      int
	Elapsed    int // Whole seconds since start
	Difficulty Difficulty

	Character   object.Character
	Projectiles []object.Projectile
	Enemies     []object.Enemy

	// Removed holds IDs of projectiles consumed by a collision this session.
	// It survives until the next start.
	Removed map[int64]struct{}

	LastShot  time.Time
	LevelUpAt time.Time // Zero until the first level-up

	lastProjectileID int64
	lastEnemyID      int64
}

// IdleState is a session that has not been started.
func IdleState(p Params) State {
	return State{
		Phase:      PhaseNotStarted,
		Difficulty: NewDifficulty(p),
		Character:  object.NewCharacter(p.Arena),
	}
}

// NewState is a freshly started session: everything reset, character at the
// arena center, fire cadence counted from now.
func NewState(p Params, now time.Time) State {
	s := IdleState(p)
	s.Phase = PhaseRunning
	s.Removed = map[int64]struct{}{}
	s.LastShot = now
	return s
}

// LevelUpVisible reports whether the level-up notice is still on display at now.
func (s State) LevelUpVisible(now time.Time, p Params) bool {
	return !s.LevelUpAt.IsZero() && now.Sub(s.LevelUpAt) < p.LevelUpDisplay
}

func (s State) withRemoved(ids []int64) map[int64]struct{} {
	if len(ids) == 0 {
		return s.Removed
	}
	next := maps.Clone(s.Removed)
	if next == nil {
		next = make(map[int64]struct{}, len(ids))
	}
	for _, id := range ids {
		next[id] = struct{}{}
	}
	return next
}

// nextProjectileBase returns b such that b+1 .. b+VolleySize are unused
// projectile IDs derived from now.
func (s State) nextProjectileBase(now time.Time) int64 {
	return max(now.UnixMilli(), s.lastProjectileID)
}

// nextEnemyBase returns the first unused enemy ID derived from now.
func (s State) nextEnemyBase(now time.Time) int64 {
	return max(now.UnixMilli(), s.lastEnemyID+1)
}

// Snapshot is a read-only view of a session for presentation.
type Snapshot struct {
	Phase           Phase
	Arena           object.Arena
	Character       object.Character
	Projectiles     []object.Projectile
	Enemies         []object.Enemy
	Score           int
	Elapsed         int
	Level           int
	FireInterval    time.Duration
	SpawnInterval   time.Duration
	FireRatePercent int
	LevelUp         bool // Level-up notice is showing
}

// Snapshot views s at now. The slices are shared with s, which never mutates them.
func (s State) Snapshot(now time.Time, p Params) Snapshot {
	return Snapshot{
		Phase:           s.Phase,
		Arena:           p.Arena,
		Character:       s.Character,
		Projectiles:     s.Projectiles,
		Enemies:         s.Enemies,
		Score:           s.Score,
		Elapsed:         s.Elapsed,
		Level:           s.Difficulty.Level,
		FireInterval:    s.Difficulty.FireInterval,
		SpawnInterval:   s.Difficulty.SpawnInterval,
		FireRatePercent: p.FireRatePercent(s.Difficulty.FireInterval),
		LevelUp:         s.LevelUpVisible(now, p),
	}
}
