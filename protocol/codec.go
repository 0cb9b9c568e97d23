package protocol

import (
	"encoding/json"
	"fmt"
	"strings"
)

// CodeAlphabet is the room code character set: uppercase letters and digits
// with the lookalikes (I, O, 0, 1) removed.
const CodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// MessageType peeks the type tag without decoding the full message.
func MessageType(b []byte) (string, error) {
	if len(b) == 0 {
		return "", fmt.Errorf("empty frame")
	}
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(b, &head); err != nil {
		return "", fmt.Errorf("decode frame: %w", err)
	}
	if head.Type == "" {
		return "", fmt.Errorf("frame has no type tag")
	}
	return head.Type, nil
}

// Decode unmarshals a frame into the given message struct.
func Decode(b []byte, v any) error {
	return json.Unmarshal(b, v)
}

func marshal(v any) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		// All message structs are plain data; this cannot fail.
		panic(fmt.Sprintf("marshal %T: %v", v, err))
	}
	return b
}

// Encode helpers tag and marshal outgoing frames.

func EncodeRoomCreated(code string, maxPlayers int) []byte {
	return marshal(RoomCreated{Type: MsgRoomCreated, Code: code, MaxPlayers: maxPlayers})
}

func EncodePlayerJoined(count, maxPlayers int) []byte {
	return marshal(PlayerJoined{Type: MsgPlayerJoined, Count: count, MaxPlayers: maxPlayers})
}

func EncodeGameStart(seed uint32, playerID, playerCount, levelIndex int) []byte {
	return marshal(GameStart{
		Type:        MsgGameStart,
		Seed:        seed,
		PlayerID:    playerID,
		PlayerCount: playerCount,
		LevelIndex:  levelIndex,
	})
}

func EncodeTickInputs(tick uint64, inputs []int) []byte {
	return marshal(TickInputs{Type: MsgTickInputs, Tick: tick, Inputs: inputs})
}

func EncodeError(message string) []byte {
	return marshal(Error{Type: MsgError, Message: message})
}

func EncodeCreateRoom(levelIndex, maxPlayers int) []byte {
	return marshal(CreateRoom{Type: MsgCreateRoom, LevelIndex: levelIndex, MaxPlayers: maxPlayers})
}

func EncodeJoinRoom(code string) []byte {
	return marshal(JoinRoom{Type: MsgJoinRoom, Code: code})
}

func EncodeTickInput(tick uint64, input int) []byte {
	return marshal(TickInput{Type: MsgTickInput, Tick: tick, Input: input})
}

// NormalizeCode upper-cases a join code and reports whether it is a
// well-formed room code. Join is case-insensitive.
func NormalizeCode(code string) (string, bool) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) != CodeLength {
		return "", false
	}
	for _, c := range code {
		if !strings.ContainsRune(CodeAlphabet, c) {
			return "", false
		}
	}
	return code, true
}

// ValidTickInput reports whether a tick_input payload is in range.
func ValidTickInput(tick uint64, input int) bool {
	return tick < MaxTick && input >= 0 && input <= MaxInputBits
}
