package game

import (
	"fmt"
	"hash/fnv"

	"skystrike/debuglog"
)

// Session wires the fixed system pipeline around a simulation plus the
// per-run director state. The registration order below is load-bearing:
// every instance must run the same stages in the same order.
type Session struct {
	Sim   *Simulation
	Level *Level
	Wave  *WaveState
	Score *ScoreState
	Boss  *BossState
}

// NewSession loads the configured level, spawns the player ships and
// registers the pipeline. The sink may be nil.
func NewSession(cfg Config, sink debuglog.Sink) (*Session, error) {
	level, err := LoadLevel(cfg.LevelIndex)
	if err != nil {
		return nil, fmt.Errorf("load level %d: %w", cfg.LevelIndex, err)
	}
	return NewSessionWithLevel(cfg, level, sink), nil
}

// NewSessionWithLevel is NewSession with a caller-supplied level, used by
// tests and custom lobbies.
func NewSessionWithLevel(cfg Config, level *Level, sink debuglog.Sink) *Session {
	sim := NewSimulation(cfg, sink)
	wave := NewWaveState(level)
	score := NewScoreState()
	boss := NewBossState(level.Boss)

	for i := 0; i < cfg.PlayerCount; i++ {
		CreatePlayer(sim.World, i, cfg.PlayerCount)
	}

	sim.AddSystem(MovementSystem)
	sim.AddSystem(EnemyAISystem)
	sim.AddSystem(ShootingSystem)
	sim.AddSystem(BulletPatternSystem)
	sim.AddSystem(CollisionSystem)
	sim.AddSystem(DropSystem)
	sim.AddSystem(NewWaveSystem(wave))
	sim.AddSystem(NewScoreSystem(score, wave))
	sim.AddSystem(NewBossSystem(wave, boss))
	sim.AddSystem(CleanupSystem)

	return &Session{Sim: sim, Level: level, Wave: wave, Score: score, Boss: boss}
}

// Step advances the session one tick with the given confirmed input vector.
func (s *Session) Step(inputs []PlayerInput) {
	s.Sim.Step(inputs)
}

// Victory reports whether the level has been cleared.
func (s *Session) Victory() bool {
	return s.Wave.LevelComplete
}

// GameOver reports whether every player ship is destroyed.
func (s *Session) GameOver() bool {
	w := s.Sim.World
	for _, e := range w.Entities() {
		if _, ok := w.PlayerTag[e]; !ok {
			continue
		}
		if hp, ok := w.Health[e]; ok && hp.Current > 0 {
			return false
		}
	}
	return true
}

// PlayerSnapshot is the HUD view of one ship.
type PlayerSnapshot struct {
	PlayerID    int
	Score       int
	HP          int
	MaxHP       int
	Bombs       int
	WeaponLevel int
	Alive       bool
}

// Snapshot is the read-only session state a client renders from.
type Snapshot struct {
	Tick        uint64
	Players     []PlayerSnapshot
	WaveIndex   int
	WaveCount   int
	Multiplier  int
	ComboKills  int
	BossActive  bool
	BossWarning bool
	BossPhase   int
	BossHP      int
	BossMaxHP   int
	Victory     bool
	GameOver    bool
}

// Snapshot captures the current HUD state. It reads, never mutates.
func (s *Session) Snapshot() Snapshot {
	w := s.Sim.World
	snap := Snapshot{
		Tick:        w.Tick,
		WaveIndex:   s.Wave.WaveIndex,
		WaveCount:   len(s.Level.Waves),
		Multiplier:  s.Score.Multiplier,
		ComboKills:  s.Score.ComboKills,
		BossWarning: s.Boss.WarningTicks > 0,
		Victory:     s.Victory(),
	}
	for _, e := range w.Entities() {
		tag, ok := w.PlayerTag[e]
		if !ok {
			continue
		}
		ps := PlayerSnapshot{
			PlayerID:    tag.PlayerID,
			Score:       tag.Score,
			Bombs:       tag.Bombs,
			WeaponLevel: tag.WeaponLevel,
		}
		if hp, ok := w.Health[e]; ok {
			ps.HP = hp.Current
			ps.MaxHP = hp.Max
			ps.Alive = hp.Current > 0
		}
		snap.Players = append(snap.Players, ps)
	}
	if boss := s.Boss.Entity; boss != 0 {
		snap.BossActive = true
		snap.BossPhase = s.Boss.Phase
		if hp, ok := w.Health[boss]; ok {
			snap.BossHP = hp.Current
			snap.BossMaxHP = hp.Max
		}
	}
	snap.GameOver = s.GameOver()
	return snap
}

// Checksum folds the entire dynamic state into a 64-bit hash. Two instances
// in lockstep must report equal checksums every tick; a mismatch means the
// simulations diverged.
func (s *Session) Checksum() uint64 {
	w := s.Sim.World
	h := fnv.New64a()

	put32 := func(v int32) {
		h.Write([]byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)})
	}
	putInt := func(v int) { put32(int32(v)) }

	put32(int32(w.Tick))
	for _, word := range s.Sim.Rand.Snapshot() {
		put32(int32(word))
	}
	for _, e := range w.Entities() {
		put32(int32(e))
		if pos, ok := w.Position[e]; ok {
			put32(int32(pos.X))
			put32(int32(pos.Y))
		}
		if vel, ok := w.Velocity[e]; ok {
			put32(int32(vel.VX))
			put32(int32(vel.VY))
		}
		if hp, ok := w.Health[e]; ok {
			putInt(hp.Current)
			putInt(hp.InvulnTicks)
		}
		if tag, ok := w.PlayerTag[e]; ok {
			putInt(tag.Score)
			putInt(tag.Bombs)
			putInt(tag.WeaponLevel)
		}
	}
	putInt(s.Score.Multiplier)
	putInt(s.Score.ComboKills)
	putInt(s.Wave.WaveIndex)
	putInt(s.Wave.KillCount)
	return h.Sum64()
}
