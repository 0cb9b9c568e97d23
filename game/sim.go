package game

import (
	"fmt"

	"skystrike/debuglog"
	"skystrike/rng"
)

// Config fixes everything two instances must agree on up front.
type Config struct {
	Seed        uint32
	PlayerCount int
	LevelIndex  int
}

// System is one pipeline stage. Systems run in registration order against
// the shared world; the order is part of the determinism contract.
type System func(s *Simulation)

// Simulation advances a world by exactly one tick per Step call. Step is a
// pure function of (world, rng state, inputs): identical starting states and
// input sequences produce bit-identical worlds on any two instances.
type Simulation struct {
	World  *World
	Rand   *rng.Source
	Config Config

	// Inputs holds the current tick's input vector, padded to PlayerCount.
	// Systems read it by player index.
	Inputs []PlayerInput

	systems []System
	log     debuglog.Sink
}

// NewSimulation builds an empty simulation. Systems are registered once via
// AddSystem; the sink may be nil for no logging.
func NewSimulation(cfg Config, sink debuglog.Sink) *Simulation {
	if sink == nil {
		sink = debuglog.Nop()
	}
	return &Simulation{
		World:  NewWorld(),
		Rand:   rng.New(cfg.Seed),
		Config: cfg,
		Inputs: make([]PlayerInput, cfg.PlayerCount),
		log:    sink,
	}
}

// AddSystem appends a stage to the fixed pipeline.
func (s *Simulation) AddSystem(sys System) {
	s.systems = append(s.systems, sys)
}

// Step advances one tick. Missing input entries default to neutral; extra
// entries beyond the configured player count are ignored.
func (s *Simulation) Step(inputs []PlayerInput) {
	for i := range s.Inputs {
		if i < len(inputs) {
			s.Inputs[i] = inputs[i]
		} else {
			s.Inputs[i] = EmptyInput()
		}
	}

	for _, sys := range s.systems {
		sys(s)
	}

	s.World.Flush()
	s.World.Tick++
}

// Input returns the current input for a player index, neutral when out of
// range.
func (s *Simulation) Input(playerID int) PlayerInput {
	if playerID < 0 || playerID >= len(s.Inputs) {
		return EmptyInput()
	}
	return s.Inputs[playerID]
}

// Logf records a gameplay event when the sink is enabled. Disabled sinks
// skip the formatting entirely.
func (s *Simulation) Logf(category, format string, args ...any) {
	if !s.log.Enabled() {
		return
	}
	s.log.Write(debuglog.Event{
		Tick:     s.World.Tick,
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	})
}
