package game

import "skystrike/fixmath"

// ShootingSystem runs per-player fire cooldowns and spawns the bullet fan
// for the player's weapon level when shoot is held.
func ShootingSystem(s *Simulation) {
	w := s.World

	for _, e := range w.Entities() {
		weapon, ok := w.Weapon[e]
		if !ok {
			continue
		}
		tag, ok := w.PlayerTag[e]
		if !ok {
			continue
		}
		if hp, ok := w.Health[e]; ok && hp.Current <= 0 {
			continue // dead players don't shoot
		}
		pos, ok := w.Position[e]
		if !ok {
			continue
		}

		weapon.Level = tag.WeaponLevel

		if weapon.Cooldown > 0 {
			weapon.Cooldown--
			continue
		}
		if !s.Input(tag.PlayerID).Shoot {
			continue
		}
		weapon.Cooldown = weapon.FireRate

		spawnBulletFan(w, pos, weapon.Level)
	}
}

// spawnBulletFan emits the literal offset/angle set for a weapon level.
// Level 4 and up share the wide five-bullet fan with a stronger center shot.
func spawnBulletFan(w *World, pos *Position, level int) {
	vy := PlayerBulletSpeed
	x, y := pos.X, pos.Y

	off := func(px float64) fixmath.Fixed { return fixmath.ToFixed(px) }

	switch level {
	case 1:
		CreatePlayerBullet(w, x, fixmath.Add(y, off(-20)), 0, vy, 1)
	case 2:
		CreatePlayerBullet(w, fixmath.Add(x, off(-8)), fixmath.Add(y, off(-20)), 0, vy, 1)
		CreatePlayerBullet(w, fixmath.Add(x, off(8)), fixmath.Add(y, off(-20)), 0, vy, 1)
	case 3:
		CreatePlayerBullet(w, x, fixmath.Add(y, off(-20)), 0, vy, 1)
		CreatePlayerBullet(w, fixmath.Add(x, off(-12)), fixmath.Add(y, off(-16)), off(-1), vy, 1)
		CreatePlayerBullet(w, fixmath.Add(x, off(12)), fixmath.Add(y, off(-16)), off(1), vy, 1)
	default:
		CreatePlayerBullet(w, x, fixmath.Add(y, off(-20)), 0, vy, 2)
		CreatePlayerBullet(w, fixmath.Add(x, off(-10)), fixmath.Add(y, off(-18)), off(-0.5), vy, 1)
		CreatePlayerBullet(w, fixmath.Add(x, off(10)), fixmath.Add(y, off(-18)), off(0.5), vy, 1)
		CreatePlayerBullet(w, fixmath.Add(x, off(-16)), fixmath.Add(y, off(-14)), off(-1.5), vy, 1)
		CreatePlayerBullet(w, fixmath.Add(x, off(16)), fixmath.Add(y, off(-14)), off(1.5), vy, 1)
	}
}
