package room

import (
	"errors"
	"testing"
	"time"

	"skystrike/protocol"
)

type fakeConn struct {
	sendCh chan []byte
	closed chan struct{}
}

func newFakeConn() *fakeConn {
	return &fakeConn{
		sendCh: make(chan []byte, 64),
		closed: make(chan struct{}),
	}
}

func (f *fakeConn) Send(b []byte) error {
	cp := make([]byte, len(b))
	copy(cp, b)
	f.sendCh <- cp
	return nil
}

func (f *fakeConn) Close() error {
	select {
	case <-f.closed:
	default:
		close(f.closed)
	}
	return nil
}

func (f *fakeConn) isClosed() bool {
	select {
	case <-f.closed:
		return true
	default:
		return false
	}
}

// waitFor reads frames until one with the wanted type tag arrives.
func waitFor(t *testing.T, fc *fakeConn, msgType string) []byte {
	t.Helper()
	timeout := time.After(300 * time.Millisecond)
	for {
		select {
		case b := <-fc.sendCh:
			tag, err := protocol.MessageType(b)
			if err != nil {
				t.Fatalf("undecodable frame: %v", err)
			}
			if tag == msgType {
				return b
			}
		case <-timeout:
			t.Fatalf("timed out waiting for %q", msgType)
		}
	}
}

func expectSilence(t *testing.T, fc *fakeConn, msgType string) {
	t.Helper()
	timeout := time.After(80 * time.Millisecond)
	for {
		select {
		case b := <-fc.sendCh:
			tag, _ := protocol.MessageType(b)
			if tag == msgType {
				t.Fatalf("unexpected %q frame", msgType)
			}
		case <-timeout:
			return
		}
	}
}

func TestCreateAndJoinStartsTwoPlayerGame(t *testing.T) {
	m := NewManager()
	fc1 := newFakeConn()
	fc2 := newFakeConn()

	r, id1, err := m.Create(fc1, 0, 2)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if id1 != 0 {
		t.Fatalf("creator index = %d, want 0", id1)
	}
	if len(r.Code) != protocol.CodeLength {
		t.Fatalf("room code = %q, want %d chars", r.Code, protocol.CodeLength)
	}

	// Join is case-insensitive.
	lower := ""
	for _, c := range r.Code {
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		lower += string(c)
	}
	if _, id2, err := m.Join(lower, fc2); err != nil {
		t.Fatalf("join: %v", err)
	} else if id2 != 1 {
		t.Fatalf("joiner index = %d, want 1", id2)
	}

	var starts [2]protocol.GameStart
	for i, fc := range []*fakeConn{fc1, fc2} {
		if err := protocol.Decode(waitFor(t, fc, protocol.MsgGameStart), &starts[i]); err != nil {
			t.Fatalf("decode game_start: %v", err)
		}
	}
	if starts[0].Seed != starts[1].Seed {
		t.Fatalf("seeds differ: %d vs %d", starts[0].Seed, starts[1].Seed)
	}
	if starts[0].PlayerID != 0 || starts[1].PlayerID != 1 {
		t.Fatalf("player ids = %d, %d, want 0, 1", starts[0].PlayerID, starts[1].PlayerID)
	}
	if starts[0].LevelIndex != 0 || starts[0].PlayerCount != 2 {
		t.Fatalf("game_start payload = %+v", starts[0])
	}
}

func TestCompletedTickBroadcastsOnceAndDiscardsBuffer(t *testing.T) {
	m := NewManager()
	fc1 := newFakeConn()
	fc2 := newFakeConn()

	r, _, err := m.Create(fc1, 0, 2)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, _, err := m.Join(r.Code, fc2); err != nil {
		t.Fatalf("join: %v", err)
	}
	waitFor(t, fc1, protocol.MsgGameStart)
	waitFor(t, fc2, protocol.MsgGameStart)

	r.Inbox <- TickInput{Conn: fc1, Tick: 100, Input: 0}
	r.Inbox <- TickInput{Conn: fc2, Tick: 100, Input: 16}

	for _, fc := range []*fakeConn{fc1, fc2} {
		var msg protocol.TickInputs
		if err := protocol.Decode(waitFor(t, fc, protocol.MsgTickInputs), &msg); err != nil {
			t.Fatalf("decode tick_inputs: %v", err)
		}
		if msg.Tick != 100 {
			t.Fatalf("tick = %d, want 100", msg.Tick)
		}
		if len(msg.Inputs) != 2 || msg.Inputs[0] != 0 || msg.Inputs[1] != 16 {
			t.Fatalf("inputs = %v, want [0 16]", msg.Inputs)
		}
	}

	// The tick-100 slot is gone: a late duplicate rebuilds a one-entry
	// slot and must not trigger a second broadcast.
	r.Inbox <- TickInput{Conn: fc1, Tick: 100, Input: 5}
	expectSilence(t, fc1, protocol.MsgTickInputs)
	expectSilence(t, fc2, protocol.MsgTickInputs)
}

func TestOverCapacityJoinRejectedWithoutStateChange(t *testing.T) {
	m := NewManager()
	fc1 := newFakeConn()
	fc2 := newFakeConn()
	fc3 := newFakeConn()

	r, _, err := m.Create(fc1, 0, 2)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, _, err := m.Join(r.Code, fc2); err != nil {
		t.Fatalf("join: %v", err)
	}
	waitFor(t, fc1, protocol.MsgGameStart)

	if _, _, err := m.Join(r.Code, fc3); !errors.Is(err, ErrRoomNotJoinable) {
		t.Fatalf("third join error = %v, want %v", err, ErrRoomNotJoinable)
	}

	// Members see nothing from the rejected attempt, and the session
	// still relays normally.
	expectSilence(t, fc1, protocol.MsgPlayerJoined)
	r.Inbox <- TickInput{Conn: fc1, Tick: 0, Input: 1}
	r.Inbox <- TickInput{Conn: fc2, Tick: 0, Input: 2}
	waitFor(t, fc1, protocol.MsgTickInputs)
}

func TestJoinErrors(t *testing.T) {
	m := NewManager()

	if _, _, err := m.Join("????", newFakeConn()); !errors.Is(err, ErrBadCode) {
		t.Fatalf("malformed code error = %v, want %v", err, ErrBadCode)
	}
	if _, _, err := m.Join("AAAA", newFakeConn()); !errors.Is(err, ErrUnknownRoom) {
		t.Fatalf("unknown code error = %v, want %v", err, ErrUnknownRoom)
	}
	if _, _, err := m.Create(newFakeConn(), 0, 5); !errors.Is(err, ErrBadPlayerCap) {
		t.Fatalf("bad cap error = %v, want %v", err, ErrBadPlayerCap)
	}
	if _, _, err := m.Create(newFakeConn(), 0, 1); !errors.Is(err, ErrBadPlayerCap) {
		t.Fatalf("bad cap error = %v, want %v", err, ErrBadPlayerCap)
	}
}

func TestDisconnectWhilePlayingEndsSession(t *testing.T) {
	m := NewManager()
	fc1 := newFakeConn()
	fc2 := newFakeConn()

	r, _, err := m.Create(fc1, 0, 2)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, _, err := m.Join(r.Code, fc2); err != nil {
		t.Fatalf("join: %v", err)
	}
	waitFor(t, fc2, protocol.MsgGameStart)

	r.Inbox <- Leave{Conn: fc1}

	var msg protocol.Error
	if err := protocol.Decode(waitFor(t, fc2, protocol.MsgError), &msg); err != nil {
		t.Fatalf("decode error frame: %v", err)
	}
	if msg.Message == "" {
		t.Fatalf("disconnect notification has no message")
	}

	deadline := time.After(300 * time.Millisecond)
	for !fc2.isClosed() {
		select {
		case <-deadline:
			t.Fatalf("remaining member connection not closed")
		case <-time.After(10 * time.Millisecond):
		}
	}

	// The code is reaped: a new join must not find the finished room.
	if _, _, err := m.Join(r.Code, newFakeConn()); !errors.Is(err, ErrUnknownRoom) {
		t.Fatalf("join after teardown error = %v, want %v", err, ErrUnknownRoom)
	}
}

func TestLeaveWhileWaitingCompactsRoom(t *testing.T) {
	m := NewManager()
	fc1 := newFakeConn()
	fc2 := newFakeConn()

	r, _, err := m.Create(fc1, 0, 3)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, _, err := m.Join(r.Code, fc2); err != nil {
		t.Fatalf("join: %v", err)
	}
	waitFor(t, fc2, protocol.MsgPlayerJoined)

	r.Inbox <- Leave{Conn: fc1}

	var msg protocol.PlayerJoined
	if err := protocol.Decode(waitFor(t, fc2, protocol.MsgPlayerJoined), &msg); err != nil {
		t.Fatalf("decode player_joined: %v", err)
	}
	if msg.Count != 1 || msg.MaxPlayers != 3 {
		t.Fatalf("membership after leave = %d/%d, want 1/3", msg.Count, msg.MaxPlayers)
	}
}

// The validation and pruning paths are exercised synchronously against an
// unstarted room; handleCommand is what Run dispatches to anyway.
func TestRelayDropsInvalidPayloads(t *testing.T) {
	fc1 := newFakeConn()
	fc2 := newFakeConn()
	stranger := newFakeConn()

	r := New("TEST", 1, 0, 2)
	reply := make(chan JoinResult, 2)
	r.handleCommand(Join{Conn: fc1, Reply: reply})
	r.handleCommand(Join{Conn: fc2, Reply: reply})
	if r.phase != Playing {
		t.Fatalf("room phase = %d, want playing", r.phase)
	}

	r.handleCommand(TickInput{Conn: fc1, Tick: protocol.MaxTick, Input: 0})
	r.handleCommand(TickInput{Conn: fc1, Tick: 1, Input: protocol.MaxInputBits + 1})
	r.handleCommand(TickInput{Conn: fc1, Tick: 1, Input: -1})
	r.handleCommand(TickInput{Conn: stranger, Tick: 1, Input: 0})
	if len(r.buffer) != 0 {
		t.Fatalf("invalid payloads were buffered: %d slots", len(r.buffer))
	}

	// A duplicate from the same player keeps the first value.
	r.handleCommand(TickInput{Conn: fc1, Tick: 2, Input: 7})
	r.handleCommand(TickInput{Conn: fc1, Tick: 2, Input: 9})
	if got := r.buffer[2][0]; got != 7 {
		t.Fatalf("duplicate overwrote input: %d, want 7", got)
	}
}

func TestStaleTickSlotsArePruned(t *testing.T) {
	fc1 := newFakeConn()
	fc2 := newFakeConn()

	r := New("TEST", 1, 0, 2)
	reply := make(chan JoinResult, 2)
	r.handleCommand(Join{Conn: fc1, Reply: reply})
	r.handleCommand(Join{Conn: fc2, Reply: reply})

	r.handleCommand(TickInput{Conn: fc1, Tick: 3, Input: 1})
	if _, ok := r.buffer[3]; !ok {
		t.Fatalf("tick 3 slot missing")
	}

	r.handleCommand(TickInput{Conn: fc1, Tick: 3 + RetentionTicks + 1, Input: 1})
	if _, ok := r.buffer[3]; ok {
		t.Fatalf("stale tick 3 slot survived pruning")
	}
}
