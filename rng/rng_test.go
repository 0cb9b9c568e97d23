package rng

import (
	"testing"

	"skystrike/fixmath"
)

func TestSameSeedSameSequence(t *testing.T) {
	a := New(12345)
	b := New(12345)
	for i := 0; i < 1000; i++ {
		if av, bv := a.NextU32(), b.NextU32(); av != bv {
			t.Fatalf("sequences diverged at draw %d: %d vs %d", i, av, bv)
		}
	}
}

func TestDifferentSeedsDiffer(t *testing.T) {
	a := New(1)
	b := New(2)
	same := 0
	for i := 0; i < 100; i++ {
		if a.NextU32() == b.NextU32() {
			same++
		}
	}
	if same > 2 {
		t.Fatalf("%d/100 draws equal across seeds", same)
	}
}

func TestZeroSeedIsNonDegenerate(t *testing.T) {
	r := New(0)
	if r.NextU32() == 0 && r.NextU32() == 0 && r.NextU32() == 0 {
		t.Fatalf("zero seed produced a stuck-at-zero stream")
	}
}

func TestNextIntStaysInRange(t *testing.T) {
	r := New(99)
	seen := make(map[int]bool)
	for i := 0; i < 1000; i++ {
		v := r.NextInt(10)
		if v < 0 || v >= 10 {
			t.Fatalf("NextInt(10) = %d", v)
		}
		seen[v] = true
	}
	if len(seen) != 10 {
		t.Fatalf("NextInt(10) hit %d/10 values over 1000 draws", len(seen))
	}
}

func TestNextFixedStaysInUnitInterval(t *testing.T) {
	r := New(7)
	for i := 0; i < 1000; i++ {
		v := r.NextFixed()
		if v < 0 || v >= fixmath.One {
			t.Fatalf("NextFixed = %v", fixmath.ToFloat(v))
		}
	}
}

func TestNextFixedRangeBounds(t *testing.T) {
	r := New(7)
	lo := fixmath.FromInt(-5)
	hi := fixmath.FromInt(5)
	for i := 0; i < 1000; i++ {
		v := r.NextFixedRange(lo, hi)
		if v < lo || v >= hi {
			t.Fatalf("NextFixedRange(-5,5) = %v", fixmath.ToFloat(v))
		}
	}
}

func TestSnapshotRestoreResumesStream(t *testing.T) {
	r := New(55)
	for i := 0; i < 17; i++ {
		r.NextU32()
	}
	st := r.Snapshot()
	want := make([]uint32, 8)
	for i := range want {
		want[i] = r.NextU32()
	}

	r.Restore(st)
	for i := range want {
		if got := r.NextU32(); got != want[i] {
			t.Fatalf("restored stream diverged at draw %d: %d vs %d", i, got, want[i])
		}
	}
}
