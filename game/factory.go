package game

import "skystrike/fixmath"

// Factory helpers build the pre-configured entity shapes. All spawning in
// systems funnels through these.

// CreatePlayer spawns a player ship near the bottom, spread horizontally by
// index so ships never overlap at session start.
func CreatePlayer(w *World, playerID, playerCount int) Entity {
	e := w.Create()
	xOffset := (2*playerID - (playerCount - 1)) * 40
	w.Position[e] = &Position{
		X: fixmath.FromInt(GameWidth/2 + xOffset),
		Y: fixmath.FromInt(GameHeight - 80),
	}
	w.Velocity[e] = &Velocity{}
	w.Health[e] = &Health{
		Current:     PlayerStartHP,
		Max:         PlayerStartHP,
		InvulnTicks: PlayerInvulnTicks,
	}
	w.Collider[e] = &Collider{
		Radius: PlayerHitboxRadius,
		Layer:  LayerPlayer,
	}
	w.Weapon[e] = &Weapon{
		FireRate: PlayerFireRate,
		Level:    1,
	}
	w.PlayerTag[e] = &PlayerTag{
		PlayerID:    playerID,
		Bombs:       PlayerStartBombs,
		WeaponLevel: 1,
	}
	return e
}

func CreatePlayerBullet(w *World, x, y, vx, vy fixmath.Fixed, damage int) Entity {
	e := w.Create()
	w.Position[e] = &Position{X: x, Y: y}
	w.Velocity[e] = &Velocity{VX: vx, VY: vy}
	w.Collider[e] = &Collider{
		Radius: fixmath.FromInt(3),
		Layer:  LayerPlayerBullet,
		Damage: damage,
	}
	return e
}

func CreateEnemyBullet(w *World, x, y, vx, vy fixmath.Fixed, damage, radius int) Entity {
	e := w.Create()
	w.Position[e] = &Position{X: x, Y: y}
	w.Velocity[e] = &Velocity{VX: vx, VY: vy}
	w.Collider[e] = &Collider{
		Radius: fixmath.FromInt(radius),
		Layer:  LayerEnemyBullet,
		Damage: damage,
	}
	return e
}

// CreateEnemy spawns an enemy at a fixed-point position. speed is in px/tick
// (already fixed); pattern may be nil for enemies that never fire.
func CreateEnemy(w *World, x, y fixmath.Fixed, hp int, speed fixmath.Fixed, radius int, ai AIKind, pattern *BulletPattern) Entity {
	e := w.Create()
	w.Position[e] = &Position{X: x, Y: y}
	w.Velocity[e] = &Velocity{VY: speed}
	w.Health[e] = &Health{Current: hp, Max: hp}
	w.Collider[e] = &Collider{
		Radius: fixmath.FromInt(radius),
		Layer:  LayerEnemy,
		Damage: 1,
	}
	w.EnemyAI[e] = &EnemyAI{
		Kind:   ai,
		Params: [4]fixmath.Fixed{speed},
	}
	if pattern != nil {
		p := *pattern
		w.BulletPattern[e] = &p
	}
	return e
}

func CreateDrop(w *World, x, y fixmath.Fixed, kind DropKind) Entity {
	e := w.Create()
	w.Position[e] = &Position{X: x, Y: y}
	w.Velocity[e] = &Velocity{VY: fixmath.FromInt(1)}
	w.Collider[e] = &Collider{
		Radius: fixmath.FromInt(8),
		Layer:  LayerDrop,
	}
	w.DropTag[e] = &DropTag{Kind: kind, Lifetime: DropLifetime}
	return e
}

// CreateExplosion spawns a purely visual entity that expires on its own.
func CreateExplosion(w *World, x, y fixmath.Fixed) Entity {
	e := w.Create()
	w.Position[e] = &Position{X: x, Y: y}
	w.Effect[e] = &TransientEffect{TicksLeft: 20}
	return e
}
