package game

import "skystrike/fixmath"

// circleOverlap compares in float space: squaring fixed-point distances
// overflows Mul past ~180px and the answer is only a boolean, so it never
// feeds back into fixed state.
func circleOverlap(x1, y1, r1, x2, y2, r2 fixmath.Fixed) bool {
	dx := fixmath.ToFloat(x1 - x2)
	dy := fixmath.ToFloat(y1 - y2)
	radSum := fixmath.ToFloat(r1 + r2)
	return dx*dx+dy*dy < radSum*radSum
}

// CollisionSystem partitions colliders into layer buckets once per tick and
// runs the four fixed pairwise passes: player bullets vs enemies, enemy
// bullets vs players, enemy bodies vs players, drops vs players. Each bullet
// and each enemy is consumed at most once per tick. Boss entities never take
// the generic lethal-destroy path; the boss director finalizes them.
func CollisionSystem(s *Simulation) {
	w := s.World

	var players, playerBullets, enemies, enemyBullets, drops []Entity
	for _, e := range w.Entities() {
		col, ok := w.Collider[e]
		if !ok {
			continue
		}
		if _, ok := w.Position[e]; !ok {
			continue
		}
		switch col.Layer {
		case LayerPlayer:
			players = append(players, e)
		case LayerPlayerBullet:
			playerBullets = append(playerBullets, e)
		case LayerEnemy:
			enemies = append(enemies, e)
		case LayerEnemyBullet:
			enemyBullets = append(enemyBullets, e)
		case LayerDrop:
			drops = append(drops, e)
		}
	}

	// Player bullets vs enemies.
	for _, bullet := range playerBullets {
		bPos := w.Position[bullet]
		bCol := w.Collider[bullet]
		for _, enemy := range enemies {
			ePos := w.Position[enemy]
			eCol := w.Collider[enemy]
			if !circleOverlap(bPos.X, bPos.Y, bCol.Radius, ePos.X, ePos.Y, eCol.Radius) {
				continue
			}
			if hp, ok := w.Health[enemy]; ok {
				if hp.InvulnTicks > 0 {
					w.Destroy(bullet)
					break
				}
				hp.Current -= bCol.Damage
				s.Logf("HIT", "enemy#%d dmg=%d hp=%d/%d", enemy, bCol.Damage, hp.Current, hp.Max)
				if hp.Current <= 0 {
					if _, isBoss := w.BossTag[enemy]; !isBoss {
						killEnemy(s, enemy, ePos)
					}
				}
			}
			w.Destroy(bullet)
			break
		}
	}

	// Enemy bullets vs players.
	for _, bullet := range enemyBullets {
		bPos := w.Position[bullet]
		bCol := w.Collider[bullet]
		for _, player := range players {
			pPos := w.Position[player]
			pCol := w.Collider[player]
			hp, ok := w.Health[player]
			if !ok || hp.InvulnTicks > 0 {
				continue
			}
			if !circleOverlap(bPos.X, bPos.Y, bCol.Radius, pPos.X, pPos.Y, pCol.Radius) {
				continue
			}
			hp.Current -= bCol.Damage
			hp.InvulnTicks = PlayerInvulnTicks
			s.Logf("DMG", "player#%d hit by bullet hp=%d/%d", player, hp.Current, hp.Max)
			if hp.Current <= 0 {
				CreateExplosion(w, pPos.X, pPos.Y)
			}
			w.Destroy(bullet)
			break
		}
	}

	// Enemy bodies vs players. Enemies already killed by bullets this tick
	// are skipped; they stay visible until the flush.
	for _, enemy := range enemies {
		if eHp, ok := w.Health[enemy]; ok && eHp.Current <= 0 {
			continue
		}
		ePos := w.Position[enemy]
		eCol := w.Collider[enemy]
		for _, player := range players {
			pPos := w.Position[player]
			pCol := w.Collider[player]
			hp, ok := w.Health[player]
			if !ok || hp.InvulnTicks > 0 {
				continue
			}
			if !circleOverlap(ePos.X, ePos.Y, eCol.Radius, pPos.X, pPos.Y, pCol.Radius) {
				continue
			}
			hp.Current -= eCol.Damage
			hp.InvulnTicks = PlayerInvulnTicks
			s.Logf("DMG", "player#%d rammed by enemy#%d hp=%d/%d", player, enemy, hp.Current, hp.Max)
			if hp.Current <= 0 {
				CreateExplosion(w, pPos.X, pPos.Y)
			}
			break
		}
	}

	// Drops vs players.
	for _, drop := range drops {
		dPos := w.Position[drop]
		dCol := w.Collider[drop]
		dTag, ok := w.DropTag[drop]
		if !ok {
			continue
		}
		for _, player := range players {
			pPos := w.Position[player]
			pCol := w.Collider[player]
			if !circleOverlap(dPos.X, dPos.Y, dCol.Radius, pPos.X, pPos.Y, pCol.Radius) {
				continue
			}
			if tag, ok := w.PlayerTag[player]; ok {
				applyDrop(s, player, tag, dTag.Kind)
			}
			w.Destroy(drop)
			break
		}
	}

	// Invulnerability windows tick down exactly once per tick, here.
	for _, e := range w.Entities() {
		if hp, ok := w.Health[e]; ok && hp.InvulnTicks > 0 {
			hp.InvulnTicks--
		}
	}
}

// killEnemy finalizes a non-boss kill: explosion, score for every player,
// and the fixed 20% drop roll with a uniform choice over the rollable kinds.
func killEnemy(s *Simulation, enemy Entity, ePos *Position) {
	w := s.World
	s.Logf("KILL", "enemy#%d killed at (%.0f, %.0f)", enemy,
		fixmath.ToFloat(ePos.X), fixmath.ToFloat(ePos.Y))
	CreateExplosion(w, ePos.X, ePos.Y)

	for _, pe := range w.Entities() {
		if tag, ok := w.PlayerTag[pe]; ok {
			tag.Score += EnemyKillScore
		}
	}

	if s.Rand.NextInt(100) < DropRollPercent {
		rollable := [...]DropKind{DropWeaponUpgrade, DropBomb, DropScoreSmall, DropScoreLarge}
		kind := rollable[s.Rand.NextInt(len(rollable))]
		CreateDrop(w, ePos.X, ePos.Y, kind)
	}
	w.Destroy(enemy)
}

func applyDrop(s *Simulation, player Entity, tag *PlayerTag, kind DropKind) {
	w := s.World
	switch kind {
	case DropWeaponUpgrade:
		if tag.WeaponLevel < MaxWeaponLevel {
			tag.WeaponLevel++
		}
	case DropBomb:
		if tag.Bombs < MaxBombs {
			tag.Bombs++
		}
	case DropShield:
		if hp, ok := w.Health[player]; ok && hp.Current < hp.Max {
			hp.Current++
		}
	case DropScoreSmall:
		tag.Score += DropScoreSmallPts
	case DropScoreLarge:
		tag.Score += DropScoreLargePts
	}
	s.Logf("DROP", "player#%d picked up kind=%d", player, kind)
}
