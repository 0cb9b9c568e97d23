package game

import "skystrike/fixmath"

// MovementSystem derives player velocity from held directions (two speed
// tiers: normal and focused-slow), applies velocity to every entity that has
// both position and velocity, and clamps players to the playfield bounds.
func MovementSystem(s *Simulation) {
	w := s.World

	for _, e := range w.Entities() {
		tag, ok := w.PlayerTag[e]
		if !ok {
			continue
		}
		vel, ok := w.Velocity[e]
		if !ok {
			continue
		}

		in := s.Input(tag.PlayerID)
		speed := PlayerSpeed
		if in.Slow {
			speed = PlayerSlowSpeed
		}

		var vx, vy fixmath.Fixed
		if in.Left {
			vx = fixmath.Add(vx, -speed)
		}
		if in.Right {
			vx = fixmath.Add(vx, speed)
		}
		if in.Up {
			vy = fixmath.Add(vy, -speed)
		}
		if in.Down {
			vy = fixmath.Add(vy, speed)
		}
		vel.VX = vx
		vel.VY = vy
	}

	for _, e := range w.Entities() {
		pos, ok := w.Position[e]
		if !ok {
			continue
		}
		vel, ok := w.Velocity[e]
		if !ok {
			continue
		}

		pos.X = fixmath.Add(pos.X, vel.VX)
		pos.Y = fixmath.Add(pos.Y, vel.VY)

		if tag, ok := w.PlayerTag[e]; ok {
			pos.X = fixmath.Clamp(pos.X, PlayerBoundsMargin, fixmath.Sub(GameWidthF, PlayerBoundsMargin))
			pos.Y = fixmath.Clamp(pos.Y, PlayerBoundsMargin, fixmath.Sub(GameHeightF, PlayerBoundsMargin))

			if w.Tick%30 == 0 {
				s.Logf("MOVE", "P%d pos=(%.1f, %.1f)", tag.PlayerID+1,
					fixmath.ToFloat(pos.X), fixmath.ToFloat(pos.Y))
			}
		}
	}
}
