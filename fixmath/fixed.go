// Package fixmath implements Q16.16 fixed-point arithmetic. All simulation
// math goes through these so that independently running instances compute
// bit-identical state.
package fixmath

import "math"

// Fixed is a Q16.16 value: a 32-bit signed integer with 16 fractional bits.
type Fixed int32

const (
	Shift = 16
	One   = Fixed(1) << Shift // 65536
	Half  = One >> 1
)

// ToFixed converts a float to Q16.16, truncating toward zero.
func ToFixed(n float64) Fixed {
	return Fixed(int32(n * float64(One)))
}

// ToFloat converts a Q16.16 value back to a float.
func ToFloat(f Fixed) float64 {
	return float64(f) / float64(One)
}

// FromInt converts an integer to Q16.16.
func FromInt(n int) Fixed {
	return Fixed(int32(n)) << Shift
}

// Add and Sub wrap around at 32 bits, like the underlying integer ops.
func Add(a, b Fixed) Fixed { return a + b }
func Sub(a, b Fixed) Fixed { return a - b }

// Mul multiplies two Q16.16 values using the canonical scaled algorithm:
// pre-shift one operand right by 8, multiply, post-shift the 32-bit wrapped
// product right by 8. The rounding of this exact sequence is part of the
// cross-instance determinism contract; a widened 64-bit multiply is NOT a
// drop-in replacement.
func Mul(a, b Fixed) Fixed {
	p := int32(int64(a) * int64(b>>8))
	return Fixed(p >> 8)
}

// Div divides two Q16.16 values: pre-shift the numerator left by 8 (32-bit
// wrap), integer-divide, post-shift the quotient left by 8 (32-bit wrap).
// Division by zero yields zero.
func Div(a, b Fixed) Fixed {
	t := int32(a) << 8
	return Fixed(div32(t, int32(b)) << 8)
}

// div32 is 32-bit truncating division with the two edge cases pinned:
// zero divisor yields zero, MinInt32/-1 wraps to MinInt32.
func div32(a, b int32) int32 {
	if b == 0 {
		return 0
	}
	if a == math.MinInt32 && b == -1 {
		return math.MinInt32
	}
	return a / b
}

func Neg(a Fixed) Fixed { return -a }

func Abs(a Fixed) Fixed {
	if a < 0 {
		return -a
	}
	return a
}

func Min(a, b Fixed) Fixed {
	if a < b {
		return a
	}
	return b
}

func Max(a, b Fixed) Fixed {
	if a > b {
		return a
	}
	return b
}

func Clamp(v, lo, hi Fixed) Fixed {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Sqrt computes the square root via integer Newton iteration. The left shift
// of the argument wraps at 32 bits; the iteration is deterministic either way.
func Sqrt(a Fixed) Fixed {
	if a <= 0 {
		return 0
	}
	x := int32(a)
	y := (x + 1) >> 1
	for y < x {
		x = y
		q := div32(int32(a)<<Shift, x)
		y = (x + q) >> 1
	}
	return Fixed(x)
}

// DistSq returns the squared distance for a fixed-point delta as a float.
// Squaring large deltas overflows Mul, so comparisons that only need a
// boolean answer go through floats; the result never feeds back into
// persisted fixed-point state.
func DistSq(dx, dy Fixed) float64 {
	fdx := float64(dx) / float64(One)
	fdy := float64(dy) / float64(One)
	return fdx*fdx + fdy*fdy
}
