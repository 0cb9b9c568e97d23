// Package network exposes the relay over websockets. Each connection gets a
// read loop that decodes flat JSON frames and forwards them to the room
// layer; everything stateful lives in the rooms.
package network

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"skystrike/protocol"
	"skystrike/room"
)

const (
	readLimit    = 64 << 10
	readTimeout  = 60 * time.Second
	writeTimeout = 10 * time.Second
	pingInterval = 25 * time.Second
)

var upgrader = websocket.Upgrader{
	// The relay carries no credentials and no per-origin state; lock this
	// down if that ever changes.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Server routes websocket connections to the room manager.
type Server struct {
	rooms *room.Manager
}

func NewServer(rooms *room.Manager) *Server {
	return &Server{rooms: rooms}
}

// Handler returns the http handler serving the websocket endpoint.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	return mux
}

// wsConn adapts a websocket connection to the room.Conn interface. Sends
// from the room goroutine and the read loop are serialized by the mutex.
type wsConn struct {
	id string
	ws *websocket.Conn
	mu sync.Mutex
}

func (c *wsConn) Send(b []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.ws.SetWriteDeadline(time.Now().Add(writeTimeout))
	return c.ws.WriteMessage(websocket.TextMessage, b)
}

func (c *wsConn) Close() error {
	return c.ws.Close()
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("upgrade:", err)
		return
	}

	conn := &wsConn{id: uuid.NewString(), ws: ws}
	log.Printf("session %s: connected from %s", conn.id, r.RemoteAddr)

	ws.SetReadLimit(readLimit)
	_ = ws.SetReadDeadline(time.Now().Add(readTimeout))
	ws.SetPongHandler(func(string) error {
		_ = ws.SetReadDeadline(time.Now().Add(readTimeout))
		return nil
	})

	done := make(chan struct{})
	go pingLoop(conn, done)

	s.readLoop(conn)
	close(done)
}

func pingLoop(conn *wsConn, done chan struct{}) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			conn.mu.Lock()
			_ = conn.ws.SetWriteDeadline(time.Now().Add(writeTimeout))
			err := conn.ws.WriteMessage(websocket.PingMessage, nil)
			conn.mu.Unlock()
			if err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

// readLoop drives one connection until it drops. A connection belongs to at
// most one room; the first successful create or join binds it.
func (s *Server) readLoop(conn *wsConn) {
	var current *room.Room

	defer func() {
		if current != nil {
			current.Inbox <- room.Leave{Conn: conn}
		}
		_ = conn.Close()
		log.Printf("session %s: closed", conn.id)
	}()

	for {
		_, frame, err := conn.ws.ReadMessage()
		if err != nil {
			return
		}

		tag, err := protocol.MessageType(frame)
		if err != nil {
			// Undecodable frames never crash the session.
			continue
		}

		switch tag {
		case protocol.MsgCreateRoom:
			if current != nil {
				_ = conn.Send(protocol.EncodeError("already in a room"))
				continue
			}
			var msg protocol.CreateRoom
			if protocol.Decode(frame, &msg) != nil {
				continue
			}
			r, _, err := s.rooms.Create(conn, msg.LevelIndex, msg.MaxPlayers)
			if err != nil {
				_ = conn.Send(protocol.EncodeError(err.Error()))
				continue
			}
			current = r
			_ = conn.Send(protocol.EncodeRoomCreated(r.Code, msg.MaxPlayers))

		case protocol.MsgJoinRoom:
			if current != nil {
				_ = conn.Send(protocol.EncodeError("already in a room"))
				continue
			}
			var msg protocol.JoinRoom
			if protocol.Decode(frame, &msg) != nil {
				continue
			}
			r, _, err := s.rooms.Join(msg.Code, conn)
			if err != nil {
				_ = conn.Send(protocol.EncodeError(err.Error()))
				continue
			}
			current = r

		case protocol.MsgTickInput:
			if current == nil {
				continue
			}
			var msg protocol.TickInput
			if protocol.Decode(frame, &msg) != nil {
				continue
			}
			current.Inbox <- room.TickInput{Conn: conn, Tick: msg.Tick, Input: msg.Input}
		}
	}
}
