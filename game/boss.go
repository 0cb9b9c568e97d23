package game

import "skystrike/fixmath"

// BossState is the boss director's finite state machine:
// Warning (fixed duration) → Active (phase 0..N-1) → Defeated.
type BossState struct {
	Config       *BossConfig
	Entity       Entity // 0 while no boss entity exists
	Phase        int
	Defeated     bool
	WarningTicks int

	minionTimer int
}

// NewBossState binds a boss config; cfg may be nil for boss-less levels.
func NewBossState(cfg *BossConfig) *BossState {
	return &BossState{Config: cfg}
}

// NewBossSystem runs the boss FSM. Phase transitions atomically swap the
// live boss entity's AI behavior, bullet pattern, and max HP; the final
// defeat marks the level complete and pays the bonus to every player.
// Collision never destroys a boss — this system is the only finalizer.
func NewBossSystem(wave *WaveState, state *BossState) System {
	return func(s *Simulation) {
		if state.Config == nil || state.Defeated {
			return
		}
		w := s.World

		if wave.BossIncoming && state.Entity == 0 && state.WarningTicks == 0 {
			state.WarningTicks = BossWarningTicks
		}
		if state.WarningTicks > 0 {
			state.WarningTicks--
			if state.WarningTicks == 0 {
				spawnBoss(s, state)
			}
			return
		}
		if state.Entity == 0 {
			return
		}

		boss := state.Entity
		hp, ok := w.Health[boss]
		if !ok {
			return
		}

		if hp.Current <= 0 {
			state.Phase++
			if state.Phase >= len(state.Config.Phases) {
				defeatBoss(s, wave, state, boss)
				return
			}
			advancePhase(s, state, boss, hp)
		}

		// Phases that declare minions trickle in escorts while active.
		if state.Config.Phases[state.Phase].Minions {
			state.minionTimer++
			if state.minionTimer >= BossMinionInterval {
				state.minionTimer = 0
				if pos, ok := w.Position[boss]; ok {
					for i := 0; i < BossMinionCount; i++ {
						offsetX := fixmath.FromInt(s.Rand.NextInt(100) - 50)
						spawnEnemy(w, "small",
							fixmath.Add(pos.X, offsetX),
							fixmath.Add(pos.Y, fixmath.FromInt(40)))
					}
				}
			}
		}
	}
}

func spawnBoss(s *Simulation, state *BossState) {
	w := s.World
	cfg := state.Config
	phase := cfg.Phases[0]
	s.Logf("BOSS", "%s spawned, phase 1/%d", cfg.Name, len(cfg.Phases))

	e := w.Create()
	state.Entity = e
	state.Phase = 0

	w.Position[e] = &Position{
		X: fixmath.FromInt(GameWidth / 2),
		Y: fixmath.FromInt(80),
	}
	w.Velocity[e] = &Velocity{}
	w.Health[e] = &Health{
		Current:     phase.HP,
		Max:         phase.HP,
		InvulnTicks: BossSpawnInvuln,
	}
	w.Collider[e] = &Collider{
		Radius: fixmath.FromInt(phase.Radius),
		Layer:  LayerEnemy,
		Damage: 1,
	}
	w.EnemyAI[e] = &EnemyAI{
		Kind:   phase.AI,
		Params: [4]fixmath.Fixed{fixmath.ToFixed(phase.Speed)},
	}
	if phase.FireRate > 0 {
		w.BulletPattern[e] = &BulletPattern{
			Kind:     phase.Pattern,
			Interval: phase.FireRate,
			Params:   [4]int32{phase.PatternParam},
		}
	}
	w.BossTag[e] = &BossTag{
		ID:        cfg.ID,
		MaxPhases: len(cfg.Phases),
	}
}

// advancePhase swaps behavior, pattern and HP on the live entity in one
// tick, so no system ever observes a half-transitioned boss.
func advancePhase(s *Simulation, state *BossState, boss Entity, hp *Health) {
	w := s.World
	phase := state.Config.Phases[state.Phase]
	s.Logf("BOSS", "phase %d/%d started", state.Phase+1, len(state.Config.Phases))

	hp.Current = phase.HP
	hp.Max = phase.HP
	state.minionTimer = 0

	if tag, ok := w.BossTag[boss]; ok {
		tag.Phase = state.Phase
	}
	if ai, ok := w.EnemyAI[boss]; ok {
		ai.Kind = phase.AI
		ai.Params[0] = fixmath.ToFixed(phase.Speed)
		ai.Timer = 0
		ai.Phase = 0
	}
	if pattern, ok := w.BulletPattern[boss]; ok {
		pattern.Kind = phase.Pattern
		pattern.Interval = phase.FireRate
		pattern.Timer = 0
		pattern.Params = [4]int32{phase.PatternParam}
	}
	if pos, ok := w.Position[boss]; ok {
		CreateExplosion(w, pos.X, pos.Y)
	}
}

func defeatBoss(s *Simulation, wave *WaveState, state *BossState, boss Entity) {
	w := s.World
	if pos, ok := w.Position[boss]; ok {
		for i := 0; i < 8; i++ {
			CreateExplosion(w,
				fixmath.Add(pos.X, fixmath.FromInt(s.Rand.NextInt(80)-40)),
				fixmath.Add(pos.Y, fixmath.FromInt(s.Rand.NextInt(60)-30)))
		}
	}
	s.Logf("BOSS", "%s defeated", state.Config.Name)
	w.Destroy(boss)
	state.Entity = 0
	state.Defeated = true
	wave.LevelComplete = true

	for _, e := range w.Entities() {
		if tag, ok := w.PlayerTag[e]; ok {
			tag.Score += BossDefeatBonus
		}
	}
}
