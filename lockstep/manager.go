// Package lockstep implements the client side of the input-delay protocol:
// local inputs are scheduled a fixed number of ticks ahead, and the
// simulation only advances on ticks whose full input vector the relay has
// confirmed.
package lockstep

// InputDelay is D, the number of ticks a local input is deferred before it
// applies. It hides roughly one round trip of latency at the cost of D
// ticks of input lag.
const InputDelay = 3

// retentionTicks is how far behind a successful read confirmed vectors are
// kept before pruning.
const retentionTicks = 10

// SendFunc delivers a local input for a tick to the relay. Fire-and-forget:
// there is no acknowledgement and no retry.
type SendFunc func(tick uint64, input int)

// Manager buffers confirmed per-tick input vectors and schedules local
// sends. It is not goroutine-safe; the driving loop owns it.
type Manager struct {
	localIndex  int
	playerCount int
	send        SendFunc

	confirmed map[uint64][]int
	sent      map[uint64]bool
}

// NewManager pre-sends neutral input for ticks [0, InputDelay) so the first
// real tick can confirm before any local input exists.
func NewManager(localIndex, playerCount int, send SendFunc) *Manager {
	m := &Manager{
		localIndex:  localIndex,
		playerCount: playerCount,
		send:        send,
		confirmed:   make(map[uint64][]int),
		sent:        make(map[uint64]bool),
	}
	for tick := uint64(0); tick < InputDelay; tick++ {
		m.sent[tick] = true
		m.send(tick, 0)
	}
	return m
}

func (m *Manager) LocalIndex() int  { return m.localIndex }
func (m *Manager) PlayerCount() int { return m.playerCount }

// SetLocalInput schedules the current local input: it is sent for tick
// current+InputDelay, once per tick.
func (m *Manager) SetLocalInput(currentTick uint64, input int) {
	target := currentTick + InputDelay
	if m.sent[target] {
		return
	}
	m.sent[target] = true
	m.send(target, input)
}

// Confirm records a completed vector broadcast by the relay. Vectors of the
// wrong width are dropped; the relay is the authority on membership.
func (m *Manager) Confirm(tick uint64, inputs []int) {
	if len(inputs) != m.playerCount {
		return
	}
	cp := make([]int, len(inputs))
	copy(cp, inputs)
	m.confirmed[tick] = cp
}

// InputsForTick returns the confirmed vector for a tick, or not-ready. The
// caller must stall on not-ready, never substitute a guess. Old entries are
// pruned on each successful read.
func (m *Manager) InputsForTick(tick uint64) ([]int, bool) {
	inputs, ok := m.confirmed[tick]
	if !ok {
		return nil, false
	}
	if tick >= retentionTicks {
		horizon := tick - retentionTicks
		for t := range m.confirmed {
			if t < horizon {
				delete(m.confirmed, t)
				delete(m.sent, t)
			}
		}
	}
	return inputs, true
}
