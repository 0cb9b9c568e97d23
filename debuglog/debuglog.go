// Package debuglog is the event sink the simulation pipeline writes gameplay
// events to. The default sink is a no-op with zero per-tick cost; sinks only
// observe the simulation and never influence it.
package debuglog

// Event is one recorded gameplay event.
type Event struct {
	Tick     uint64
	Category string
	Message  string
}

// Sink receives simulation events.
type Sink interface {
	// Enabled gates formatting work at call sites; systems skip building
	// messages entirely when it reports false.
	Enabled() bool
	Write(ev Event)
}

type nopSink struct{}

func (nopSink) Enabled() bool { return false }
func (nopSink) Write(Event)   {}

// Nop returns the disabled sink.
func Nop() Sink { return nopSink{} }

// Memory retains the most recent events in a bounded ring.
type Memory struct {
	events []Event
	max    int
}

// NewMemory returns a sink retaining at most max events.
func NewMemory(max int) *Memory {
	if max <= 0 {
		max = 200
	}
	return &Memory{max: max}
}

func (m *Memory) Enabled() bool { return true }

func (m *Memory) Write(ev Event) {
	m.events = append(m.events, ev)
	if len(m.events) > m.max {
		m.events = m.events[len(m.events)-m.max:]
	}
}

// Recent returns the most recent n events, oldest first.
func (m *Memory) Recent(n int) []Event {
	if n >= len(m.events) {
		n = len(m.events)
	}
	return m.events[len(m.events)-n:]
}

// Clear discards all retained events.
func (m *Memory) Clear() {
	m.events = m.events[:0]
}
