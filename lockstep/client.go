package lockstep

import (
	"context"
	"fmt"
	"sync"

	"github.com/gorilla/websocket"

	"skystrike/protocol"
)

// Events are the callbacks a Client invokes from its read loop. Nil entries
// are skipped. Callbacks run on the read goroutine; hand off to the driving
// loop rather than doing heavy work in them.
type Events struct {
	OnRoomCreated  func(code string, maxPlayers int)
	OnPlayerJoined func(count, maxPlayers int)
	OnGameStart    func(start protocol.GameStart)
	OnTickInputs   func(tick uint64, inputs []int)
	OnError        func(message string)
	OnDisconnect   func(err error)
}

// Client is a websocket connection to the relay speaking the lockstep
// protocol.
type Client struct {
	conn    *websocket.Conn
	events  Events
	writeMu sync.Mutex
}

// Dial connects to a relay endpoint (e.g. ws://host:port/ws) and starts the
// read loop.
func Dial(ctx context.Context, url string, events Events) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}
	c := &Client{conn: conn, events: events}
	go c.readLoop()
	return c, nil
}

func (c *Client) Close() error {
	return c.conn.Close()
}

func (c *Client) CreateRoom(levelIndex, maxPlayers int) error {
	return c.write(protocol.EncodeCreateRoom(levelIndex, maxPlayers))
}

func (c *Client) JoinRoom(code string) error {
	return c.write(protocol.EncodeJoinRoom(code))
}

func (c *Client) SendTickInput(tick uint64, input int) error {
	return c.write(protocol.EncodeTickInput(tick, input))
}

func (c *Client) write(frame []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, frame)
}

func (c *Client) readLoop() {
	for {
		_, frame, err := c.conn.ReadMessage()
		if err != nil {
			if c.events.OnDisconnect != nil {
				c.events.OnDisconnect(err)
			}
			return
		}
		c.dispatch(frame)
	}
}

func (c *Client) dispatch(frame []byte) {
	tag, err := protocol.MessageType(frame)
	if err != nil {
		return
	}
	switch tag {
	case protocol.MsgRoomCreated:
		var msg protocol.RoomCreated
		if protocol.Decode(frame, &msg) == nil && c.events.OnRoomCreated != nil {
			c.events.OnRoomCreated(msg.Code, msg.MaxPlayers)
		}
	case protocol.MsgPlayerJoined:
		var msg protocol.PlayerJoined
		if protocol.Decode(frame, &msg) == nil && c.events.OnPlayerJoined != nil {
			c.events.OnPlayerJoined(msg.Count, msg.MaxPlayers)
		}
	case protocol.MsgGameStart:
		var msg protocol.GameStart
		if protocol.Decode(frame, &msg) == nil && c.events.OnGameStart != nil {
			c.events.OnGameStart(msg)
		}
	case protocol.MsgTickInputs:
		var msg protocol.TickInputs
		if protocol.Decode(frame, &msg) == nil && c.events.OnTickInputs != nil {
			c.events.OnTickInputs(msg.Tick, msg.Inputs)
		}
	case protocol.MsgError:
		var msg protocol.Error
		if protocol.Decode(frame, &msg) == nil && c.events.OnError != nil {
			c.events.OnError(msg.Message)
		}
	}
}
