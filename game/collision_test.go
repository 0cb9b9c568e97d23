package game

import (
	"testing"

	"skystrike/fixmath"
)

func newTestSim(players int) *Simulation {
	return NewSimulation(Config{Seed: 1, PlayerCount: players}, nil)
}

func runCollision(s *Simulation) {
	CollisionSystem(s)
	s.World.Flush()
}

func TestBulletDamagesEnemyAndIsConsumed(t *testing.T) {
	s := newTestSim(1)
	w := s.World
	x := fixmath.FromInt(100)
	y := fixmath.FromInt(100)

	enemy := CreateEnemy(w, x, y, 3, 0, 10, AILinear, nil)
	bullet := CreatePlayerBullet(w, x, y, 0, 0, 1)

	runCollision(s)

	if w.Alive(bullet) {
		t.Fatalf("bullet survived a hit")
	}
	if !w.Alive(enemy) {
		t.Fatalf("enemy with hp 3 destroyed by 1 damage")
	}
	if got := w.Health[enemy].Current; got != 2 {
		t.Fatalf("enemy hp = %d, want 2", got)
	}
}

func TestInvulnerableEnemyBlocksDamageButEatsBullet(t *testing.T) {
	s := newTestSim(1)
	w := s.World
	x := fixmath.FromInt(100)
	y := fixmath.FromInt(100)

	enemy := CreateEnemy(w, x, y, 3, 0, 10, AILinear, nil)
	w.Health[enemy].InvulnTicks = 5
	bullet := CreatePlayerBullet(w, x, y, 0, 0, 1)

	runCollision(s)

	if w.Alive(bullet) {
		t.Fatalf("bullet survived hitting an invulnerable enemy")
	}
	hp := w.Health[enemy]
	if hp.Current != 3 {
		t.Fatalf("invulnerable enemy hp = %d, want 3", hp.Current)
	}
	if hp.InvulnTicks != 4 {
		t.Fatalf("invuln ticks = %d, want 4 (one decrement per tick)", hp.InvulnTicks)
	}
}

func TestKillAwardsScoreToEveryPlayer(t *testing.T) {
	s := newTestSim(2)
	w := s.World
	p0 := CreatePlayer(w, 0, 2)
	p1 := CreatePlayer(w, 1, 2)

	x := fixmath.FromInt(100)
	y := fixmath.FromInt(100)
	enemy := CreateEnemy(w, x, y, 1, 0, 10, AILinear, nil)
	CreatePlayerBullet(w, x, y, 0, 0, 1)

	runCollision(s)

	if w.Alive(enemy) {
		t.Fatalf("enemy with hp 1 survived a hit")
	}
	if got := w.PlayerTag[p0].Score; got != EnemyKillScore {
		t.Fatalf("p0 score = %d, want %d", got, EnemyKillScore)
	}
	if got := w.PlayerTag[p1].Score; got != EnemyKillScore {
		t.Fatalf("p1 score = %d, want %d", got, EnemyKillScore)
	}
}

func TestPlayerHitOpensInvulnWindow(t *testing.T) {
	s := newTestSim(1)
	w := s.World
	player := CreatePlayer(w, 0, 1)
	w.Health[player].InvulnTicks = 0
	pos := w.Position[player]

	CreateEnemyBullet(w, pos.X, pos.Y, 0, 0, 1, 4)
	runCollision(s)

	hp := w.Health[player]
	if hp.Current != PlayerStartHP-1 {
		t.Fatalf("player hp = %d, want %d", hp.Current, PlayerStartHP-1)
	}
	if hp.InvulnTicks != PlayerInvulnTicks-1 {
		t.Fatalf("invuln = %d, want %d", hp.InvulnTicks, PlayerInvulnTicks-1)
	}

	// Window open: a second bullet must not connect.
	CreateEnemyBullet(w, pos.X, pos.Y, 0, 0, 1, 4)
	runCollision(s)
	if hp.Current != PlayerStartHP-1 {
		t.Fatalf("invulnerable player took damage, hp = %d", hp.Current)
	}
}

func TestBossNeverDiesInCollision(t *testing.T) {
	s := newTestSim(1)
	w := s.World
	x := fixmath.FromInt(100)
	y := fixmath.FromInt(100)

	boss := CreateEnemy(w, x, y, 1, 0, 30, AILinear, nil)
	w.BossTag[boss] = &BossTag{ID: "b", MaxPhases: 2}
	CreatePlayerBullet(w, x, y, 0, 0, 1)

	runCollision(s)

	if !w.Alive(boss) {
		t.Fatalf("boss destroyed by collision pass")
	}
	if got := w.Health[boss].Current; got != 0 {
		t.Fatalf("boss hp = %d, want 0 (left for the boss director)", got)
	}
}

func TestDropPickupEffects(t *testing.T) {
	cases := []struct {
		name  string
		kind  DropKind
		check func(t *testing.T, w *World, player Entity)
	}{
		{"weapon upgrade", DropWeaponUpgrade, func(t *testing.T, w *World, p Entity) {
			if got := w.PlayerTag[p].WeaponLevel; got != 2 {
				t.Fatalf("weapon level = %d, want 2", got)
			}
		}},
		{"bomb", DropBomb, func(t *testing.T, w *World, p Entity) {
			if got := w.PlayerTag[p].Bombs; got != PlayerStartBombs+1 {
				t.Fatalf("bombs = %d, want %d", got, PlayerStartBombs+1)
			}
		}},
		{"shield heals missing hp", DropShield, func(t *testing.T, w *World, p Entity) {
			if got := w.Health[p].Current; got != PlayerStartHP {
				t.Fatalf("hp = %d, want %d", got, PlayerStartHP)
			}
		}},
		{"small score", DropScoreSmall, func(t *testing.T, w *World, p Entity) {
			if got := w.PlayerTag[p].Score; got != DropScoreSmallPts {
				t.Fatalf("score = %d, want %d", got, DropScoreSmallPts)
			}
		}},
		{"large score", DropScoreLarge, func(t *testing.T, w *World, p Entity) {
			if got := w.PlayerTag[p].Score; got != DropScoreLargePts {
				t.Fatalf("score = %d, want %d", got, DropScoreLargePts)
			}
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestSim(1)
			w := s.World
			player := CreatePlayer(w, 0, 1)
			if tc.kind == DropShield {
				w.Health[player].Current = PlayerStartHP - 1
			}
			pos := w.Position[player]
			drop := CreateDrop(w, pos.X, pos.Y, tc.kind)

			runCollision(s)

			if w.Alive(drop) {
				t.Fatalf("drop survived pickup")
			}
			tc.check(t, w, player)
		})
	}
}

func TestWeaponAndBombCaps(t *testing.T) {
	s := newTestSim(1)
	w := s.World
	player := CreatePlayer(w, 0, 1)
	tag := w.PlayerTag[player]
	tag.WeaponLevel = MaxWeaponLevel
	tag.Bombs = MaxBombs
	pos := w.Position[player]

	CreateDrop(w, pos.X, pos.Y, DropWeaponUpgrade)
	runCollision(s)
	CreateDrop(w, pos.X, pos.Y, DropBomb)
	runCollision(s)

	if tag.WeaponLevel != MaxWeaponLevel {
		t.Fatalf("weapon level = %d, want capped %d", tag.WeaponLevel, MaxWeaponLevel)
	}
	if tag.Bombs != MaxBombs {
		t.Fatalf("bombs = %d, want capped %d", tag.Bombs, MaxBombs)
	}
}
