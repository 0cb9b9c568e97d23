package lockstep

import "time"

// maxCatchUpTicks caps how many ticks a single Advance may burst after the
// loop fell behind, bounding the cost of one long frame.
const maxCatchUpTicks = 5

// Runner is the fixed-timestep accumulator that drives a lockstep
// simulation. Ticks advance only when a full tick interval of real time has
// accumulated AND the next tick's inputs are confirmed; on a stall the
// accumulator resets to zero instead of bursting when data arrives,
// trading latency for smoothness.
type Runner struct {
	tickInterval time.Duration
	accumulator  time.Duration
}

// NewRunner builds a runner for the given tick rate.
func NewRunner(ticksPerSecond int) *Runner {
	return &Runner{
		tickInterval: time.Second / time.Duration(ticksPerSecond),
	}
}

// Advance feeds elapsed real time into the accumulator and steps as many
// ticks as it covers, up to the catch-up cap. step returns false to signal
// a stall (inputs not ready); the pending time is then discarded. Advance
// returns the number of ticks actually stepped.
func (r *Runner) Advance(elapsed time.Duration, step func() bool) int {
	r.accumulator += elapsed

	stepped := 0
	for r.accumulator >= r.tickInterval && stepped < maxCatchUpTicks {
		if !step() {
			r.accumulator = 0
			return stepped
		}
		r.accumulator -= r.tickInterval
		stepped++
	}
	if stepped == maxCatchUpTicks && r.accumulator > r.tickInterval {
		// Still behind after a full burst: drop the backlog rather than
		// spiral.
		r.accumulator = r.tickInterval
	}
	return stepped
}
