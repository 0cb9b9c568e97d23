// Command headless runs a rendererless lockstep client: it creates or joins
// a room, then plays with a fixed input (shoot held) while printing the HUD
// state. Useful for soak-testing the relay and verifying that peers stay in
// lockstep.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"skystrike/game"
	"skystrike/lockstep"
	"skystrike/protocol"
)

type confirmedTick struct {
	tick   uint64
	inputs []int
}

func main() {
	addr := flag.String("addr", "ws://localhost:8080/ws", "relay websocket URL")
	create := flag.Bool("create", false, "create a room instead of joining")
	code := flag.String("code", "", "room code to join")
	level := flag.Int("level", 0, "level index when creating")
	players := flag.Int("players", 2, "player cap when creating")
	flag.Parse()

	if !*create && *code == "" {
		log.Fatal("either -create or -code is required")
	}

	starts := make(chan protocol.GameStart, 1)
	confirms := make(chan confirmedTick, 256)
	fatal := make(chan string, 1)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := lockstep.Dial(ctx, *addr, lockstep.Events{
		OnRoomCreated: func(code string, maxPlayers int) {
			log.Printf("room created: %s (cap %d) — waiting for players", code, maxPlayers)
		},
		OnPlayerJoined: func(count, maxPlayers int) {
			log.Printf("players: %d/%d", count, maxPlayers)
		},
		OnGameStart: func(start protocol.GameStart) {
			starts <- start
		},
		OnTickInputs: func(tick uint64, inputs []int) {
			confirms <- confirmedTick{tick, inputs}
		},
		OnError: func(message string) {
			fatal <- message
		},
		OnDisconnect: func(err error) {
			fatal <- err.Error()
		},
	})
	if err != nil {
		log.Fatalf("connect: %v", err)
	}
	defer client.Close()

	if *create {
		err = client.CreateRoom(*level, *players)
	} else {
		err = client.JoinRoom(*code)
	}
	if err != nil {
		log.Fatalf("lobby request: %v", err)
	}

	var start protocol.GameStart
	select {
	case start = <-starts:
	case msg := <-fatal:
		log.Fatalf("lobby: %s", msg)
	}
	log.Printf("game start: player %d/%d, seed %d, level %d",
		start.PlayerID, start.PlayerCount, start.Seed, start.LevelIndex)

	run(client, start, confirms, fatal)
}

func run(client *lockstep.Client, start protocol.GameStart, confirms <-chan confirmedTick, fatal <-chan string) {
	sess, err := game.NewSession(game.Config{
		Seed:        start.Seed,
		PlayerCount: start.PlayerCount,
		LevelIndex:  start.LevelIndex,
	}, nil)
	if err != nil {
		log.Fatalf("session: %v", err)
	}

	ls := lockstep.NewManager(start.PlayerID, start.PlayerCount, func(tick uint64, input int) {
		if err := client.SendTickInput(tick, input); err != nil {
			log.Printf("send tick %d: %v", tick, err)
		}
	})
	runner := lockstep.NewRunner(game.TicksPerSecond)
	localInput := game.EncodeInput(game.PlayerInput{Shoot: true})

	step := func() bool {
		tick := sess.Sim.World.Tick
		ls.SetLocalInput(tick, localInput)
		raw, ok := ls.InputsForTick(tick)
		if !ok {
			return false
		}
		inputs := make([]game.PlayerInput, len(raw))
		for i, bits := range raw {
			inputs[i] = game.DecodeInput(bits)
		}
		sess.Step(inputs)
		if tick%60 == 0 {
			printHUD(sess)
		}
		return true
	}

	frame := time.NewTicker(time.Second / game.TicksPerSecond)
	defer frame.Stop()
	last := time.Now()

	for {
		select {
		case msg := <-fatal:
			log.Printf("session ended: %s", msg)
			return
		case c := <-confirms:
			ls.Confirm(c.tick, c.inputs)
		case now := <-frame.C:
			runner.Advance(now.Sub(last), step)
			last = now
			if sess.Victory() {
				log.Printf("level complete at tick %d, checksum %x",
					sess.Sim.World.Tick, sess.Checksum())
				return
			}
			if sess.GameOver() {
				log.Printf("all ships down at tick %d", sess.Sim.World.Tick)
				return
			}
		}
	}
}

func printHUD(sess *game.Session) {
	snap := sess.Snapshot()
	for _, p := range snap.Players {
		log.Printf("tick %d: P%d score=%d hp=%d/%d bombs=%d weapon=%d x%d",
			snap.Tick, p.PlayerID+1, p.Score, p.HP, p.MaxHP, p.Bombs,
			p.WeaponLevel, snap.Multiplier)
	}
	if snap.BossActive {
		log.Printf("tick %d: boss phase %d hp=%d/%d",
			snap.Tick, snap.BossPhase+1, snap.BossHP, snap.BossMaxHP)
	}
}
