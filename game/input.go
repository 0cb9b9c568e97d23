package game

// PlayerInput is the per-tick intent vector for one player. It is the only
// gameplay payload that ever crosses the network.
type PlayerInput struct {
	Up    bool
	Down  bool
	Left  bool
	Right bool
	Shoot bool
	Bomb  bool
	Slow  bool
}

// Input bit assignments for the wire encoding.
const (
	BitUp    = 1
	BitDown  = 2
	BitLeft  = 4
	BitRight = 8
	BitShoot = 16
	BitBomb  = 32
	BitSlow  = 64

	// InputBitsMax is one past the highest encodable value.
	InputBitsMax = 128
)

// EmptyInput returns the neutral input.
func EmptyInput() PlayerInput {
	return PlayerInput{}
}

// EncodeInput packs the seven intents into an integer 0..127.
func EncodeInput(in PlayerInput) int {
	bits := 0
	if in.Up {
		bits |= BitUp
	}
	if in.Down {
		bits |= BitDown
	}
	if in.Left {
		bits |= BitLeft
	}
	if in.Right {
		bits |= BitRight
	}
	if in.Shoot {
		bits |= BitShoot
	}
	if in.Bomb {
		bits |= BitBomb
	}
	if in.Slow {
		bits |= BitSlow
	}
	return bits
}

// DecodeInput unpacks an input integer.
func DecodeInput(bits int) PlayerInput {
	return PlayerInput{
		Up:    bits&BitUp != 0,
		Down:  bits&BitDown != 0,
		Left:  bits&BitLeft != 0,
		Right: bits&BitRight != 0,
		Shoot: bits&BitShoot != 0,
		Bomb:  bits&BitBomb != 0,
		Slow:  bits&BitSlow != 0,
	}
}
