package game

import "skystrike/fixmath"

// Playfield logical dimensions. The renderer may scale; the simulation
// never does.
const (
	GameWidth  = 480
	GameHeight = 720

	TicksPerSecond = 60
)

var (
	GameWidthF  = fixmath.FromInt(GameWidth)
	GameHeightF = fixmath.FromInt(GameHeight)
)

// Player tuning.
var (
	PlayerSpeed        = fixmath.ToFixed(4)
	PlayerSlowSpeed    = fixmath.ToFixed(1.5)
	PlayerHitboxRadius = fixmath.ToFixed(2)
	PlayerBulletSpeed  = fixmath.ToFixed(-10)
	PlayerBoundsMargin = fixmath.FromInt(16)
)

const (
	PlayerStartHP     = 5
	PlayerStartBombs  = 3
	PlayerInvulnTicks = 120 // 2 seconds
	PlayerFireRate    = 6   // ticks between shots
	MaxWeaponLevel    = 5
	MaxBombs          = 9
)

// Collision / drops.
const (
	DropRollPercent   = 20
	DropLifetime      = 600 // 10 seconds
	EnemyKillScore    = 100
	DropScoreSmallPts = 200
	DropScoreLargePts = 1000
)

var (
	DropAttractRadius = 100.0 // px, compared in float space
	DropAttractSpeed  = fixmath.ToFixed(3)
	DropFallSpeed     = fixmath.ToFixed(0.5)
)

// Combo scoring.
const (
	ComboWindowTicks  = 120 // 2 seconds to chain
	ComboBonusPerKill = 50
)

// Boss.
const (
	BossWarningTicks   = 180 // 3 seconds of warning before spawn
	BossSpawnInvuln    = 60
	BossDefeatBonus    = 10000
	BossMinionInterval = 300 // 5 seconds
	BossMinionCount    = 3
)

// Cleanup bounds margin around the playfield, in pixels.
const CleanupMargin = 50
