// Package room implements the relay server's session rooms. A room is an
// actor: one goroutine owns all state and everything reaches it through the
// Inbox, so per-tick aggregation needs no locks.
package room

import (
	"errors"
	"log"

	"skystrike/protocol"
)

var (
	ErrBadCode         = errors.New("invalid room code")
	ErrUnknownRoom     = errors.New("unknown room code")
	ErrRoomFull        = errors.New("room is full")
	ErrRoomNotJoinable = errors.New("room is no longer joinable")
	ErrBadPlayerCap    = errors.New("player cap must be between 2 and 4")
)

type Phase uint8

const (
	Waiting Phase = iota
	Playing
	Finished
)

// RetentionTicks bounds the relay buffer: tick slots this far behind the
// newest seen tick are discarded even if incomplete, so one stalled peer
// cannot grow server memory without bound.
const RetentionTicks = 100

// Room relays per-tick inputs among the members of one session. It holds no
// game state; every member runs its own simulation from the shared seed.
type Room struct {
	Inbox chan any

	Code    string
	OnEmpty func(code string)

	seed       uint32
	levelIndex int
	maxPlayers int

	phase   Phase
	members []Conn // position == player index

	// buffer holds incomplete ticks: tick → player index → input bits.
	buffer      map[uint64]map[int]int
	maxSeenTick uint64

	quit chan struct{}
}

// New builds a room in the Waiting phase. Run must be started on its own
// goroutine before the first command is sent.
func New(code string, seed uint32, levelIndex, maxPlayers int) *Room {
	return &Room{
		Inbox:      make(chan any, 256),
		Code:       code,
		seed:       seed,
		levelIndex: levelIndex,
		maxPlayers: maxPlayers,
		buffer:     make(map[uint64]map[int]int),
		quit:       make(chan struct{}),
	}
}

func (r *Room) Stop() {
	close(r.quit)
}

func (r *Room) Run() {
	for {
		select {
		case <-r.quit:
			return
		case cmd := <-r.Inbox:
			r.handleCommand(cmd)
		}
	}
}

func (r *Room) handleCommand(cmd any) {
	switch c := cmd.(type) {
	case Join:
		r.handleJoin(c)
	case TickInput:
		r.handleTickInput(c)
	case Leave:
		r.handleLeave(c.Conn)
	}
}

func (r *Room) indexOf(conn Conn) int {
	for i, m := range r.members {
		if m == conn {
			return i
		}
	}
	return -1
}

func (r *Room) handleJoin(c Join) {
	if r.phase != Waiting {
		c.Reply <- JoinResult{Err: ErrRoomNotJoinable}
		return
	}
	if len(r.members) >= r.maxPlayers {
		c.Reply <- JoinResult{Err: ErrRoomFull}
		return
	}

	playerID := len(r.members)
	r.members = append(r.members, c.Conn)
	c.Reply <- JoinResult{PlayerID: playerID}

	r.broadcast(protocol.EncodePlayerJoined(len(r.members), r.maxPlayers))

	if len(r.members) == r.maxPlayers {
		r.start()
	}
}

// start fires the Waiting→Playing transition: every member receives the
// shared seed and its own index, the single source of truth for building
// identical initial state.
func (r *Room) start() {
	r.phase = Playing
	log.Printf("room %s: starting with %d players, seed %d, level %d",
		r.Code, len(r.members), r.seed, r.levelIndex)
	for id, conn := range r.members {
		r.send(id, conn, protocol.EncodeGameStart(r.seed, id, len(r.members), r.levelIndex))
	}
}

// handleTickInput aggregates one input per player index per tick. Payloads
// out of range, outside the Playing phase, or from strangers are dropped
// without a reply.
func (r *Room) handleTickInput(c TickInput) {
	if r.phase != Playing {
		return
	}
	if !protocol.ValidTickInput(c.Tick, c.Input) {
		return
	}
	playerID := r.indexOf(c.Conn)
	if playerID < 0 {
		return
	}

	slot, ok := r.buffer[c.Tick]
	if !ok {
		slot = make(map[int]int, len(r.members))
		r.buffer[c.Tick] = slot
	}
	if _, dup := slot[playerID]; dup {
		return
	}
	slot[playerID] = c.Input

	if c.Tick > r.maxSeenTick {
		r.maxSeenTick = c.Tick
		r.pruneStale()
	}

	if len(slot) == len(r.members) {
		r.completeTick(c.Tick, slot)
	}
}

// completeTick broadcasts the index-ordered vector exactly once; deleting
// the slot first makes the completion check unrepeatable for this tick.
func (r *Room) completeTick(tick uint64, slot map[int]int) {
	delete(r.buffer, tick)
	inputs := make([]int, len(r.members))
	for id, input := range slot {
		inputs[id] = input
	}
	r.broadcast(protocol.EncodeTickInputs(tick, inputs))
}

func (r *Room) pruneStale() {
	if r.maxSeenTick < RetentionTicks {
		return
	}
	horizon := r.maxSeenTick - RetentionTicks
	for tick := range r.buffer {
		if tick < horizon {
			delete(r.buffer, tick)
		}
	}
}

// handleLeave removes a member. A disconnect while Playing is fatal to the
// whole session: lockstep cannot continue with a missing input column.
func (r *Room) handleLeave(conn Conn) {
	playerID := r.indexOf(conn)
	if playerID < 0 {
		return
	}

	switch r.phase {
	case Waiting:
		// Indices are provisional until game_start, so compacting the
		// member list on leave is safe.
		_ = conn.Close()
		r.members = append(r.members[:playerID], r.members[playerID+1:]...)
		if len(r.members) == 0 {
			r.finish()
			return
		}
		r.broadcast(protocol.EncodePlayerJoined(len(r.members), r.maxPlayers))

	case Playing:
		log.Printf("room %s: player %d disconnected, ending session", r.Code, playerID)
		_ = conn.Close()
		r.members[playerID] = nil
		r.broadcast(protocol.EncodeError("a player disconnected; the session has ended"))
		r.finish()

	case Finished:
		// Already torn down.
	}
}

// finish is the terminal transition: close every remaining connection,
// drop the relay buffer, and hand the code back to the manager.
func (r *Room) finish() {
	r.phase = Finished
	for _, conn := range r.members {
		if conn != nil {
			_ = conn.Close()
		}
	}
	r.members = nil
	r.buffer = make(map[uint64]map[int]int)
	if r.OnEmpty != nil {
		r.OnEmpty(r.Code)
	}
}

func (r *Room) broadcast(frame []byte) {
	for id, conn := range r.members {
		if conn == nil {
			continue
		}
		r.send(id, conn, frame)
	}
}

// send is fire-and-forget; a send failure is handled like a disconnect on
// the next Leave, not retried here.
func (r *Room) send(id int, conn Conn, frame []byte) {
	if err := conn.Send(frame); err != nil {
		log.Printf("room %s: send to player %d failed: %v", r.Code, id, err)
	}
}
