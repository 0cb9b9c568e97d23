package fixmath

import "math"

// Sin/cos come from a precomputed table of 4096 entries covering one full
// turn, ~0.088 degrees per step. Angles are plain integers 0..4095.
const (
	TableSize = 4096
	AngleMask = TableSize - 1

	AngleFull    = TableSize
	AngleHalf    = TableSize >> 1
	AngleQuarter = TableSize >> 2
)

var (
	sinTable [TableSize]Fixed
	cosTable [TableSize]Fixed
)

func init() {
	for i := 0; i < TableSize; i++ {
		rad := float64(i) / TableSize * math.Pi * 2
		sinTable[i] = ToFixed(math.Sin(rad))
		cosTable[i] = ToFixed(math.Cos(rad))
	}
}

// Sin looks up sin for an angle in table units. Wraps automatically.
func Sin(angle int) Fixed {
	return sinTable[angle&AngleMask]
}

// Cos looks up cos for an angle in table units. Wraps automatically.
func Cos(angle int) Fixed {
	return cosTable[angle&AngleMask]
}

// DegToAngle converts degrees to table units.
func DegToAngle(deg float64) int {
	return int(deg / 360 * TableSize)
}

// Atan2 approximates atan2 in table units. This is the one deliberate
// non-fixed-point operation: the host's float atan2 only ever yields a
// direction index, never a persisted fixed value.
func Atan2(y, x Fixed) int {
	if x == 0 && y == 0 {
		return 0
	}
	rad := math.Atan2(float64(y), float64(x))
	angle := int(rad / (math.Pi * 2) * TableSize)
	if angle < 0 {
		angle += TableSize
	}
	return angle & AngleMask
}
