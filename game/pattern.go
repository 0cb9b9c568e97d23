package game

import "skystrike/fixmath"

// BulletPatternSystem fires enemy bullets. Each emitter has a timer; on
// interval expiry it spawns one volley of its pattern kind.
func BulletPatternSystem(s *Simulation) {
	w := s.World

	for _, e := range w.Entities() {
		pattern, ok := w.BulletPattern[e]
		if !ok {
			continue
		}
		pos, ok := w.Position[e]
		if !ok {
			continue
		}

		pattern.Timer++
		if pattern.Timer < pattern.Interval {
			continue
		}
		pattern.Timer = 0

		switch pattern.Kind {
		case PatternAimed:
			fireAimed(w, pos)
		case PatternRadial:
			count := int(pattern.Params[0])
			if count == 0 {
				count = 8
			}
			fireRadial(w, pos, count)
		case PatternSpiral:
			fireSpiral(w, pos, pattern)
		case PatternSpread:
			fireSpread(s, pos)
		case PatternAimedBurst:
			fireAimedBurst(w, pos)
		}
	}
}

// fireAimed shoots a single bullet at the nearest player, or straight down
// when no player is alive.
func fireAimed(w *World, pos *Position) {
	speed := fixmath.ToFixed(3)
	_, target, ok := nearestPlayer(w, pos.X, pos.Y)
	if !ok {
		CreateEnemyBullet(w, pos.X, pos.Y, 0, speed, 1, 4)
		return
	}
	angle := fixmath.Atan2(fixmath.Sub(target.Y, pos.Y), fixmath.Sub(target.X, pos.X))
	vx := fixmath.Mul(speed, fixmath.Cos(angle))
	vy := fixmath.Mul(speed, fixmath.Sin(angle))
	CreateEnemyBullet(w, pos.X, pos.Y, vx, vy, 1, 4)
}

// fireRadial shoots count bullets in an even ring.
func fireRadial(w *World, pos *Position, count int) {
	speed := fixmath.ToFixed(2)
	step := fixmath.AngleFull / count
	for i := 0; i < count; i++ {
		angle := i * step
		vx := fixmath.Mul(speed, fixmath.Cos(angle))
		vy := fixmath.Mul(speed, fixmath.Sin(angle))
		CreateEnemyBullet(w, pos.X, pos.Y, vx, vy, 1, 3)
	}
}

// fireSpiral shoots three arms and rotates the base angle each volley. The
// rotation state lives in the pattern's parameter array.
func fireSpiral(w *World, pos *Position, pattern *BulletPattern) {
	speed := fixmath.ToFixed(2)
	baseAngle := int(pattern.Params[1])
	const arms = 3
	for i := 0; i < arms; i++ {
		angle := (baseAngle + i*(fixmath.AngleFull/arms)) & fixmath.AngleMask
		vx := fixmath.Mul(speed, fixmath.Cos(angle))
		vy := fixmath.Mul(speed, fixmath.Sin(angle))
		CreateEnemyBullet(w, pos.X, pos.Y, vx, vy, 1, 3)
	}
	pattern.Params[1] = int32((baseAngle + 64) % fixmath.AngleFull)
}

// fireSpread shoots a randomized-count fan roughly downward. The count draw
// comes from the session PRNG, like every other stochastic decision.
func fireSpread(s *Simulation, pos *Position) {
	w := s.World
	speed := fixmath.ToFixed(2.5)
	count := 3 + s.Rand.NextInt(3)
	startAngle := fixmath.AngleQuarter - (count*64)>>1
	for i := 0; i < count; i++ {
		angle := (startAngle + i*64) & fixmath.AngleMask
		vx := fixmath.Mul(speed, fixmath.Cos(angle))
		vy := fixmath.Mul(speed, fixmath.Sin(angle))
		CreateEnemyBullet(w, pos.X, pos.Y, vx, vy, 1, 3)
	}
}

// fireAimedBurst shoots five bullets centered on the nearest player with a
// slight spread.
func fireAimedBurst(w *World, pos *Position) {
	speed := fixmath.ToFixed(3.5)
	baseAngle := fixmath.AngleQuarter // straight down
	if _, target, ok := nearestPlayer(w, pos.X, pos.Y); ok {
		baseAngle = fixmath.Atan2(fixmath.Sub(target.Y, pos.Y), fixmath.Sub(target.X, pos.X))
	}
	for i := -2; i <= 2; i++ {
		angle := (baseAngle + i*48) & fixmath.AngleMask
		vx := fixmath.Mul(speed, fixmath.Cos(angle))
		vy := fixmath.Mul(speed, fixmath.Sin(angle))
		CreateEnemyBullet(w, pos.X, pos.Y, vx, vy, 1, 4)
	}
}
