package game

// ScoreState carries the kill-combo window and multiplier across ticks.
type ScoreState struct {
	Multiplier int
	ComboTimer int
	ComboKills int
	TotalKills int
}

// NewScoreState starts at multiplier 1 with no combo running.
func NewScoreState() *ScoreState {
	return &ScoreState{Multiplier: 1}
}

// NewScoreSystem detects kills by the drop in live-enemy count, feeds the
// wave director's kill counter, and grants combo bonus score at four
// discrete multiplier tiers while the window is open.
func NewScoreSystem(score *ScoreState, wave *WaveState) System {
	lastEnemyCount := 0

	return func(s *Simulation) {
		w := s.World
		current := len(w.EnemyAI)

		if current < lastEnemyCount {
			kills := lastEnemyCount - current
			score.TotalKills += kills
			score.ComboKills += kills
			score.ComboTimer = ComboWindowTicks
			wave.KillCount += kills

			switch {
			case score.ComboKills >= 20:
				score.Multiplier = 4
			case score.ComboKills >= 10:
				score.Multiplier = 3
			case score.ComboKills >= 5:
				score.Multiplier = 2
			}

			if bonus := kills * ComboBonusPerKill * (score.Multiplier - 1); bonus > 0 {
				for _, e := range w.Entities() {
					if tag, ok := w.PlayerTag[e]; ok {
						tag.Score += bonus
					}
				}
			}
		}
		lastEnemyCount = current

		if score.ComboTimer > 0 {
			score.ComboTimer--
			if score.ComboTimer == 0 {
				score.ComboKills = 0
				score.Multiplier = 1
			}
		}
	}
}
