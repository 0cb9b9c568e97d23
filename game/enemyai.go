package game

import "skystrike/fixmath"

// EnemyAISystem drives enemy movement. Each behavior is a deterministic
// function of the timer, phase, and parameter array — no unbounded state.
func EnemyAISystem(s *Simulation) {
	w := s.World

	for _, e := range w.Entities() {
		ai, ok := w.EnemyAI[e]
		if !ok {
			continue
		}
		vel, ok := w.Velocity[e]
		if !ok {
			continue
		}
		pos, ok := w.Position[e]
		if !ok {
			continue
		}

		ai.Timer++

		switch ai.Kind {
		case AILinear:
			// Straight down at constant speed.
			vel.VX = 0
			vel.VY = ai.Params[0]

		case AIZigzag:
			// Down with horizontal sine oscillation.
			speed := ai.Params[0]
			amplitude := ai.Params[1]
			if amplitude == 0 {
				amplitude = fixmath.FromInt(2)
			}
			freq := int(ai.Params[2])
			if freq == 0 {
				freq = 32
			}
			vel.VY = speed
			angle := (ai.Timer * (fixmath.AngleFull / freq)) % fixmath.AngleFull
			vel.VX = fixmath.Mul(amplitude, fixmath.Sin(angle))

		case AISwoop:
			// Dive in, pause, exit to the side.
			speed := ai.Params[0]
			switch {
			case ai.Timer < 60:
				vel.VY = speed
				vel.VX = 0
			case ai.Timer < 120:
				vel.VY = 0
				vel.VX = 0
			default:
				vel.VY = fixmath.FromInt(-1)
				if pos.X > GameWidthF>>1 {
					vel.VX = speed
				} else {
					vel.VX = -speed
				}
			}

		case AICircle:
			speed := ai.Params[0]
			radius := ai.Params[1]
			if radius == 0 {
				radius = fixmath.FromInt(1)
			}
			angle := (ai.Timer * 16) % fixmath.AngleFull
			vel.VX = fixmath.Mul(radius, fixmath.Cos(angle))
			vel.VY = fixmath.Add(fixmath.Mul(radius, fixmath.Sin(angle)), speed>>2)

		case AITracking:
			// Slow tracking toward the nearest live player.
			speed := ai.Params[0]
			targetX := GameWidthF >> 1
			targetY := GameHeightF
			if _, tPos, ok := nearestPlayer(w, pos.X, pos.Y); ok {
				targetX = tPos.X
				targetY = tPos.Y
			}
			dx := fixmath.Sub(targetX, pos.X)
			dy := fixmath.Sub(targetY, pos.Y)
			trackSpeed := speed >> 1
			vel.VX = signSpeed(dx, trackSpeed)
			vel.VY = signSpeed(dy, trackSpeed)

		case AISweep:
			// Horizontal sweeping near the top; phase flips at the margins.
			speed := ai.Params[0]
			margin := fixmath.FromInt(60)
			if pos.X <= margin {
				ai.Phase = 0
			} else if pos.X >= fixmath.Sub(GameWidthF, margin) {
				ai.Phase = 1
			}
			if ai.Phase == 0 {
				vel.VX = speed
			} else {
				vel.VX = -speed
			}
			vel.VY = 0
		}
	}
}

func signSpeed(delta, speed fixmath.Fixed) fixmath.Fixed {
	switch {
	case delta > 0:
		return speed
	case delta < 0:
		return -speed
	default:
		return 0
	}
}

// nearestPlayer scans live players in id order and returns the closest one.
// Strict less-than keeps the lowest id on distance ties.
func nearestPlayer(w *World, fromX, fromY fixmath.Fixed) (Entity, *Position, bool) {
	var (
		best     Entity
		bestPos  *Position
		bestDist = 0.0
		found    bool
	)
	for _, e := range w.Entities() {
		if _, ok := w.PlayerTag[e]; !ok {
			continue
		}
		pos, ok := w.Position[e]
		if !ok {
			continue
		}
		d := fixmath.DistSq(fixmath.Sub(fromX, pos.X), fixmath.Sub(fromY, pos.Y))
		if !found || d < bestDist {
			best = e
			bestPos = pos
			bestDist = d
			found = true
		}
	}
	return best, bestPos, found
}
