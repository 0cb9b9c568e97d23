package game

import "skystrike/fixmath"

// WaveState tracks progress through a level's ordered trigger list. It is
// shared with the score system (kill counting) and the boss director.
type WaveState struct {
	Level         *Level
	WaveIndex     int
	KillCount     int
	BossIncoming  bool
	LevelComplete bool

	pending []pendingSpawn
}

type pendingSpawn struct {
	ticksUntil int
	enemy      WaveEnemy
	positions  []spawnPos
}

type spawnPos struct {
	x, y fixmath.Fixed
}

// NewWaveState binds a level config.
func NewWaveState(level *Level) *WaveState {
	return &WaveState{Level: level}
}

// NewWaveSystem spawns formations when wave triggers fire (elapsed ticks or
// cumulative kills), drains the staggered-spawn queue, and raises the
// boss-incoming flag once every wave is exhausted and the field is clear.
func NewWaveSystem(state *WaveState) System {
	return func(s *Simulation) {
		w := s.World
		level := state.Level

		for state.WaveIndex < len(level.Waves) {
			wave := &level.Waves[state.WaveIndex]
			triggered := false
			switch wave.TriggerKind {
			case TriggerTime:
				triggered = w.Tick >= uint64(wave.TriggerValue)
			case TriggerKills:
				triggered = state.KillCount >= wave.TriggerValue
			}
			if !triggered {
				break
			}
			s.Logf("WAVE", "wave %d/%d triggered at tick %d",
				state.WaveIndex+1, len(level.Waves), w.Tick)
			spawnWave(s, wave, state)
			state.WaveIndex++
		}

		// Staggered spawns count down independently of wave triggers.
		remaining := state.pending[:0]
		for i := range state.pending {
			ps := &state.pending[i]
			ps.ticksUntil--
			if ps.ticksUntil <= 0 {
				for _, p := range ps.positions {
					spawnEnemy(w, ps.enemy.Kind, p.x, p.y)
				}
				continue
			}
			remaining = append(remaining, *ps)
		}
		state.pending = remaining

		if !state.BossIncoming &&
			state.WaveIndex >= len(level.Waves) &&
			len(state.pending) == 0 &&
			len(w.EnemyAI) == 0 &&
			level.Boss != nil {
			state.BossIncoming = true
			s.Logf("BOSS", "all waves cleared, boss incoming")
		}
	}
}

func spawnWave(s *Simulation, wave *Wave, state *WaveState) {
	for _, def := range wave.Enemies {
		positions := computeFormation(s, def)
		if def.Delay > 0 {
			for i, p := range positions {
				state.pending = append(state.pending, pendingSpawn{
					ticksUntil: i * def.Delay,
					enemy:      def,
					positions:  []spawnPos{p},
				})
			}
			continue
		}
		for _, p := range positions {
			spawnEnemy(s.World, def.Kind, p.x, p.y)
		}
	}
}

func spawnEnemy(w *World, kind string, x, y fixmath.Fixed) {
	st := statsFor(kind)
	var pattern *BulletPattern
	if st.HasPattern {
		pattern = &BulletPattern{
			Kind:     st.Pattern,
			Interval: st.FireRate,
			Params:   [4]int32{st.PatternN},
		}
	}
	CreateEnemy(w, x, y, st.HP, fixmath.ToFixed(st.Speed), st.Radius, st.AI, pattern)
}

// computeFormation lays out spawn positions from normalized parameters.
// The random formation draws from the session PRNG.
func computeFormation(s *Simulation, def WaveEnemy) []spawnPos {
	const spacing = 40
	centerX := fixmath.ToFixed(def.SpawnX * GameWidth)
	baseY := fixmath.ToFixed(def.SpawnY)
	count := def.Count
	positions := make([]spawnPos, 0, count)

	switch def.Formation {
	case FormationLine:
		for i := 0; i < count; i++ {
			x := fixmath.Add(centerX, fixmath.FromInt(i*spacing-(count-1)*spacing/2))
			positions = append(positions, spawnPos{x, baseY})
		}
	case FormationV:
		for i := 0; i < count; i++ {
			offset := i*2 - (count - 1) // doubled to stay integral
			lift := offset
			if lift < 0 {
				lift = -lift
			}
			positions = append(positions, spawnPos{
				x: fixmath.Add(centerX, fixmath.FromInt(offset*spacing/2)),
				y: fixmath.Sub(baseY, fixmath.FromInt(lift*10)),
			})
		}
	case FormationCircle:
		for i := 0; i < count; i++ {
			angle := i * fixmath.AngleFull / count
			positions = append(positions, spawnPos{
				x: fixmath.Add(centerX, fixmath.Mul(fixmath.Cos(angle), fixmath.FromInt(spacing))),
				y: fixmath.Add(baseY, fixmath.Mul(fixmath.Sin(angle), fixmath.FromInt(spacing))),
			})
		}
	case FormationRandom:
		for i := 0; i < count; i++ {
			positions = append(positions, spawnPos{
				x: fixmath.FromInt(40 + s.Rand.NextInt(GameWidth-80)),
				y: fixmath.Sub(baseY, fixmath.FromInt(s.Rand.NextInt(60))),
			})
		}
	default: // single column
		for i := 0; i < count; i++ {
			positions = append(positions, spawnPos{
				x: centerX,
				y: fixmath.Sub(baseY, fixmath.FromInt(i*spacing)),
			})
		}
	}
	return positions
}
