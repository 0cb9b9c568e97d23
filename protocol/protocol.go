// Package protocol defines the wire messages exchanged between clients and
// the relay server. Every message is one flat JSON object in a text frame,
// tagged by its "type" field.
package protocol

// Message type tags.
const (
	MsgCreateRoom   = "create_room"
	MsgRoomCreated  = "room_created"
	MsgJoinRoom     = "join_room"
	MsgPlayerJoined = "player_joined"
	MsgGameStart    = "game_start"
	MsgTickInput    = "tick_input"
	MsgTickInputs   = "tick_inputs"
	MsgError        = "error"
)

// Protocol limits. Ticks and inputs outside these ranges are dropped by the
// relay without a reply.
const (
	MaxTick      = 1_000_000
	MaxInputBits = 127

	MinPlayers = 2
	MaxPlayers = 4

	CodeLength = 4
)

// CreateRoom is sent by a client to open a new session.
type CreateRoom struct {
	Type       string `json:"type"`
	LevelIndex int    `json:"levelIndex"`
	MaxPlayers int    `json:"maxPlayers"`
}

// RoomCreated answers a successful create_room.
type RoomCreated struct {
	Type       string `json:"type"`
	Code       string `json:"code"`
	MaxPlayers int    `json:"maxPlayers"`
}

// JoinRoom is sent by a client to enter an existing session by code.
type JoinRoom struct {
	Type string `json:"type"`
	Code string `json:"code"`
}

// PlayerJoined is broadcast to every member whenever membership changes
// while the room is still waiting.
type PlayerJoined struct {
	Type       string `json:"type"`
	Count      int    `json:"count"`
	MaxPlayers int    `json:"maxPlayers"`
}

// GameStart is sent to every member the instant the room fills. It carries
// everything an instance needs to build identical initial state.
type GameStart struct {
	Type        string `json:"type"`
	Seed        uint32 `json:"seed"`
	PlayerID    int    `json:"playerId"`
	PlayerCount int    `json:"playerCount"`
	LevelIndex  int    `json:"levelIndex"`
}

// TickInput carries one player's packed input bits for one future tick.
type TickInput struct {
	Type  string `json:"type"`
	Tick  uint64 `json:"tick"`
	Input int    `json:"input"`
}

// TickInputs is the relay's completed, index-ordered input vector for one
// tick, broadcast to every member exactly once.
type TickInputs struct {
	Type   string `json:"type"`
	Tick   uint64 `json:"tick"`
	Inputs []int  `json:"inputs"`
}

// Error carries a short human-readable failure message.
type Error struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}
