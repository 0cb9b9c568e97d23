package game

import "skystrike/fixmath"

// CleanupSystem retires entities the rest of the pipeline is done with:
// bullets and enemies that drifted past the play field margin, expired
// drops, and finished transient effects. Players are never culled here.
func CleanupSystem(s *Simulation) {
	w := s.World
	minX := fixmath.FromInt(-CleanupMargin)
	maxX := fixmath.FromInt(GameWidth + CleanupMargin)
	minY := fixmath.FromInt(-CleanupMargin)
	maxY := fixmath.FromInt(GameHeight + CleanupMargin)

	for _, e := range w.Entities() {
		if _, isPlayer := w.PlayerTag[e]; isPlayer {
			continue
		}
		if fx, ok := w.Effect[e]; ok {
			fx.TicksLeft--
			if fx.TicksLeft <= 0 {
				w.Destroy(e)
			}
			continue
		}
		if drop, ok := w.DropTag[e]; ok {
			drop.Lifetime--
			if drop.Lifetime <= 0 {
				w.Destroy(e)
				continue
			}
		}
		pos, ok := w.Position[e]
		if !ok {
			continue
		}
		if pos.X < minX || pos.X > maxX || pos.Y < minY || pos.Y > maxY {
			w.Destroy(e)
		}
	}
}
