package room

import (
	"crypto/rand"
	"encoding/binary"
	"log"
	"sync"

	"skystrike/protocol"
)

// Manager owns the live rooms by code. Rooms are fully isolated from each
// other; the manager only routes create/join and reaps finished rooms.
type Manager struct {
	mu    sync.Mutex
	rooms map[string]*Room
}

func NewManager() *Manager {
	return &Manager{
		rooms: make(map[string]*Room),
	}
}

// Create allocates a fresh code and session seed, starts the room actor,
// and admits the creator as player 0.
func (m *Manager) Create(conn Conn, levelIndex, maxPlayers int) (*Room, int, error) {
	if maxPlayers < protocol.MinPlayers || maxPlayers > protocol.MaxPlayers {
		return nil, 0, ErrBadPlayerCap
	}

	r := m.addRoom(levelIndex, maxPlayers)

	reply := make(chan JoinResult, 1)
	r.Inbox <- Join{Conn: conn, Reply: reply}
	res := <-reply
	if res.Err != nil {
		return nil, 0, res.Err
	}
	log.Printf("room %s: created (level %d, cap %d)", r.Code, levelIndex, maxPlayers)
	return r, res.PlayerID, nil
}

// Join admits a connection to an existing room. The code is matched
// case-insensitively.
func (m *Manager) Join(code string, conn Conn) (*Room, int, error) {
	normalized, ok := protocol.NormalizeCode(code)
	if !ok {
		return nil, 0, ErrBadCode
	}

	m.mu.Lock()
	r, exists := m.rooms[normalized]
	m.mu.Unlock()
	if !exists {
		return nil, 0, ErrUnknownRoom
	}

	reply := make(chan JoinResult, 1)
	r.Inbox <- Join{Conn: conn, Reply: reply}
	res := <-reply
	if res.Err != nil {
		return nil, 0, res.Err
	}
	return r, res.PlayerID, nil
}

func (m *Manager) addRoom(levelIndex, maxPlayers int) *Room {
	m.mu.Lock()
	defer m.mu.Unlock()
	for {
		code := generateCode(protocol.CodeLength)
		if _, exists := m.rooms[code]; exists {
			continue
		}
		r := New(code, randomSeed(), levelIndex, maxPlayers)
		r.OnEmpty = m.removeRoom
		m.rooms[code] = r
		go r.Run()
		return r
	}
}

func (m *Manager) removeRoom(code string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.rooms[code]; ok {
		r.Stop()
		delete(m.rooms, code)
		log.Printf("room %s: removed", code)
	}
}

func generateCode(n int) string {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		panic("room: crypto/rand unavailable: " + err.Error())
	}
	for i := range b {
		b[i] = protocol.CodeAlphabet[int(b[i])%len(protocol.CodeAlphabet)]
	}
	return string(b)
}

func randomSeed() uint32 {
	var b [4]byte
	if _, err := rand.Read(b[:]); err != nil {
		panic("room: crypto/rand unavailable: " + err.Error())
	}
	return binary.LittleEndian.Uint32(b[:])
}
