// Package rng provides the per-session seeded PRNG. Every stochastic
// gameplay decision draws from one Source, never from an ambient generator,
// or instances diverge.
package rng

import "skystrike/fixmath"

// Source is a 128-bit xorshift generator seeded from a single 32-bit seed.
type Source struct {
	s0, s1, s2, s3 uint32
}

// State is a full snapshot of a Source, suitable for save/restore.
type State [4]uint32

// New seeds the four state words by chaining splitmix32 from the seed.
func New(seed uint32) *Source {
	r := &Source{}
	r.s0 = splitmix32(seed)
	r.s1 = splitmix32(r.s0)
	r.s2 = splitmix32(r.s1)
	r.s3 = splitmix32(r.s2)
	return r
}

func splitmix32(state uint32) uint32 {
	state += 0x9e3779b9
	state = (state ^ (state >> 16)) * 0x85ebca6b
	state = (state ^ (state >> 13)) * 0xc2b2ae35
	return state ^ (state >> 16)
}

// NextU32 returns the next 32-bit value.
func (r *Source) NextU32() uint32 {
	t := r.s3
	s := r.s0
	r.s3 = r.s2
	r.s2 = r.s1
	r.s1 = s
	s ^= s << 11
	s ^= s >> 8
	r.s0 = s ^ t ^ (t >> 19)
	return r.s0
}

// NextInt returns an integer in [0, max). max must be positive.
func (r *Source) NextInt(max int) int {
	return int(r.NextU32() % uint32(max))
}

// NextFixed returns a fixed-point value in [0, 1).
func (r *Source) NextFixed() fixmath.Fixed {
	return fixmath.Fixed(r.NextU32() & 0xFFFF)
}

// NextFixedRange returns a fixed-point value in [min, max). The scaled
// multiply wraps at 32 bits before the down-shift, matching the canonical
// algorithm.
func (r *Source) NextFixedRange(min, max fixmath.Fixed) fixmath.Fixed {
	rangeF := max - min
	p := int32(int64(r.NextFixed()) * int64(rangeF))
	return min + fixmath.Fixed(p>>16)
}

// Snapshot returns the current state.
func (r *Source) Snapshot() State {
	return State{r.s0, r.s1, r.s2, r.s3}
}

// Restore overwrites the state with a snapshot.
func (r *Source) Restore(st State) {
	r.s0, r.s1, r.s2, r.s3 = st[0], st[1], st[2], st[3]
}
