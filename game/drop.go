package game

import "skystrike/fixmath"

// DropSystem steers drops toward the nearest player once within the
// attraction radius, otherwise drifts them gently downward. Expiry is
// handled by the cleanup system.
func DropSystem(s *Simulation) {
	w := s.World

	for _, e := range w.Entities() {
		if _, ok := w.DropTag[e]; !ok {
			continue
		}
		pos, ok := w.Position[e]
		if !ok {
			continue
		}
		vel, ok := w.Velocity[e]
		if !ok {
			continue
		}

		_, target, found := nearestPlayer(w, pos.X, pos.Y)
		if found {
			dx := fixmath.Sub(target.X, pos.X)
			dy := fixmath.Sub(target.Y, pos.Y)
			if fixmath.DistSq(dx, dy) < DropAttractRadius*DropAttractRadius {
				vel.VX = signSpeed(dx, DropAttractSpeed)
				vel.VY = signSpeed(dy, DropAttractSpeed)
				continue
			}
		}
		vel.VX = 0
		vel.VY = DropFallSpeed
	}
}
