package websocket

import (
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024
	sendBuffer     = 32
)

// CommandHandler consumes command frames read from the socket.
type CommandHandler interface {
	HandleCommand(raw []byte)
}

// FrameObserver sees every outbound frame before it is queued. The
// dashboard controller uses this to keep its mirrors current.
type FrameObserver interface {
	ObserveFrame(data []byte)
}

type Client struct {
	hub      *Hub
	conn     *websocket.Conn
	userID   uuid.UUID
	send     chan []byte
	handler  CommandHandler
	observer FrameObserver

	mu     sync.Mutex
	closed bool
}

func NewClient(hub *Hub, conn *websocket.Conn, userID uuid.UUID) *Client {
	return &Client{
		hub:    hub,
		conn:   conn,
		userID: userID,
		send:   make(chan []byte, sendBuffer),
	}
}

// Attach wires the per-connection command handler and frame observer.
// Must happen before Serve.
func (c *Client) Attach(handler CommandHandler, observer FrameObserver) {
	c.handler = handler
	c.observer = observer
}

// Enqueue pushes a frame to this connection only.
func (c *Client) Enqueue(data []byte) {
	c.deliver(data)
}

func (c *Client) UserID() uuid.UUID {
	return c.userID
}

// Register makes the client visible to the hub. Called before the
// initial snapshots go out so a change feed firing in between still
// reaches this connection; frames queue in send until Serve drains
// them.
func (c *Client) Register() {
	c.hub.register(c)
}

// Serve blocks pumping the connection until it drops. The client must
// already be registered.
func (c *Client) Serve() {
	go c.writePump()
	c.readPump()
}

func (c *Client) deliver(data []byte) {
	if c.observer != nil {
		c.observer.ObserveFrame(data)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.send <- data:
	default:
		// Slow consumer. Dropping the frame is fine because the next
		// snapshot replaces it wholesale.
	}
}

func (c *Client) closeSend() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

func (c *Client) readPump() {
	defer func() {
		c.hub.unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		if c.handler != nil {
			c.handler.HandleCommand(message)
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
