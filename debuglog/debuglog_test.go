package debuglog

import "testing"

func TestNopSinkIsDisabled(t *testing.T) {
	s := Nop()
	if s.Enabled() {
		t.Fatalf("nop sink reports enabled")
	}
	s.Write(Event{Tick: 1, Category: "X", Message: "ignored"})
}

func TestMemoryRetainsMostRecent(t *testing.T) {
	m := NewMemory(3)
	if !m.Enabled() {
		t.Fatalf("memory sink reports disabled")
	}
	for i := 0; i < 5; i++ {
		m.Write(Event{Tick: uint64(i), Category: "T"})
	}

	got := m.Recent(10)
	if len(got) != 3 {
		t.Fatalf("retained %d events, want 3", len(got))
	}
	if got[0].Tick != 2 || got[2].Tick != 4 {
		t.Fatalf("retained window = ticks %d..%d, want 2..4", got[0].Tick, got[2].Tick)
	}

	if got := m.Recent(2); len(got) != 2 || got[1].Tick != 4 {
		t.Fatalf("Recent(2) = %v", got)
	}

	m.Clear()
	if len(m.Recent(10)) != 0 {
		t.Fatalf("events survived Clear")
	}
}

func TestNewMemoryDefaultsCapacity(t *testing.T) {
	m := NewMemory(0)
	for i := 0; i < 500; i++ {
		m.Write(Event{Tick: uint64(i)})
	}
	if got := len(m.Recent(1000)); got != 200 {
		t.Fatalf("default capacity retained %d, want 200", got)
	}
}
