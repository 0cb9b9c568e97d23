package room

// Conn is the transport a room talks to a member through. Sends are
// fire-and-forget; a failed send is treated like a disconnect. Commands are
// keyed by connection identity, so callers never track player indices.
type Conn interface {
	Send([]byte) error
	Close() error
}

// Join asks the room to admit a connection. The reply carries the assigned
// player index or the refusal. Indices are provisional until game_start.
type Join struct {
	Conn  Conn
	Reply chan<- JoinResult
}

type JoinResult struct {
	PlayerID int
	Err      error
}

// TickInput is one member's packed input bits for one future tick.
type TickInput struct {
	Conn  Conn
	Tick  uint64
	Input int
}

// Leave is issued when a member's connection goes away.
type Leave struct {
	Conn Conn
}
