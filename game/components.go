package game

import "skystrike/fixmath"

// Entity is an opaque id. Ids increase monotonically and are never reused
// within a session; an entity's "type" is purely the set of components
// attached to it.
type Entity uint32

// Layer tags partition colliders for the fixed pairwise collision passes.
type Layer uint8

const (
	LayerPlayer Layer = iota
	LayerPlayerBullet
	LayerEnemy
	LayerEnemyBullet
	LayerDrop
)

// AIKind selects an enemy movement behavior. The set is closed: every kind
// is handled exhaustively by the enemy AI system.
type AIKind uint8

const (
	AILinear AIKind = iota
	AIZigzag
	AISwoop
	AICircle
	AITracking
	AISweep
)

// PatternKind selects a bullet pattern. Closed set, dispatched exhaustively.
type PatternKind uint8

const (
	PatternAimed PatternKind = iota
	PatternRadial
	PatternSpiral
	PatternSpread
	PatternAimedBurst
)

// DropKind identifies a pickup.
type DropKind uint8

const (
	DropWeaponUpgrade DropKind = iota
	DropBomb
	DropShield
	DropScoreSmall
	DropScoreLarge
)

type Position struct {
	X, Y fixmath.Fixed
}

type Velocity struct {
	VX, VY fixmath.Fixed
}

type Health struct {
	Current     int
	Max         int
	InvulnTicks int
}

type Collider struct {
	Radius fixmath.Fixed
	Layer  Layer
	Damage int
}

type Weapon struct {
	FireRate int // ticks between shots
	Cooldown int // ticks until next shot
	Level    int
}

type EnemyAI struct {
	Kind   AIKind
	Phase  int
	Timer  int
	Params [4]fixmath.Fixed
}

type BulletPattern struct {
	Kind     PatternKind
	Timer    int
	Interval int
	Params   [4]int32 // pattern-specific: [0] bullet count, [1] spiral angle
}

type PlayerTag struct {
	PlayerID    int
	Bombs       int
	Score       int
	WeaponLevel int
}

type DropTag struct {
	Kind     DropKind
	Lifetime int // ticks remaining
}

type BossTag struct {
	ID        string
	Phase     int
	MaxPhases int
}

// TransientEffect drives expiry of non-interactive entities (explosions).
type TransientEffect struct {
	TicksLeft int
}
