package websocket

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"creatorconnect/internal/domain/entity"
	"creatorconnect/pkg/logger"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 8 * 1024
	sendBuffer     = 64
)

// Client is one websocket connection. It owns every stream it opened and
// releases them when it unregisters.
type Client struct {
	ID        string
	Principal entity.Principal
	Conn      *websocket.Conn
	Send      chan []byte

	mu     sync.Mutex
	closed bool
	subs   map[string]func()
}

func NewClient(conn *websocket.Conn, principal entity.Principal) *Client {
	return &Client{
		ID:        uuid.New().String(),
		Principal: principal,
		Conn:      conn,
		Send:      make(chan []byte, sendBuffer),
		subs:      make(map[string]func()),
	}
}

// enqueue never blocks. A full buffer means the peer is not keeping up, and
// the connection is dropped rather than skipping a snapshot.
func (c *Client) enqueue(msg []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}

	select {
	case c.Send <- msg:
		return true
	default:
		logger.Warn("WebSocket: send buffer full for client %s, closing", c.ID)
		if c.Conn != nil {
			go c.Conn.Close()
		}
		return false
	}
}

// track records a stream under id, replacing any stream with the same id.
func (c *Client) track(id string, unsubscribe func()) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		unsubscribe()
		return
	}
	prev := c.subs[id]
	c.subs[id] = unsubscribe
	c.mu.Unlock()

	if prev != nil {
		prev()
	}
}

func (c *Client) untrack(id string) bool {
	c.mu.Lock()
	unsubscribe, ok := c.subs[id]
	delete(c.subs, id)
	c.mu.Unlock()

	if ok {
		unsubscribe()
	}
	return ok
}

// SubscriptionCount reports the streams currently open on this connection.
func (c *Client) SubscriptionCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.subs)
}

// release closes Send and every open stream. Safe to call more than once.
func (c *Client) release() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	subs := c.subs
	c.subs = nil
	close(c.Send)
	c.mu.Unlock()

	for _, unsubscribe := range subs {
		unsubscribe()
	}
}

// Manager tracks active connections and routes their stream requests to a
// StreamSource.
type Manager struct {
	source     StreamSource
	clients    map[string]*Client
	Register   chan *Client
	Unregister chan *Client
	mutex      sync.RWMutex

	// done is closed once the main loop exits; Register and Unregister
	// have no reader after that.
	done chan struct{}
}

func NewManager(source StreamSource) *Manager {
	return &Manager{
		source:     source,
		clients:    make(map[string]*Client),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Start runs the manager's main loop until ctx is done. Remaining clients are
// released on exit.
func (m *Manager) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case client := <-m.Register:
				m.mutex.Lock()
				m.clients[client.ID] = client
				m.mutex.Unlock()
				logger.Debug("WebSocket: client %s registered for user %s", client.ID, client.Principal.UID)

			case client := <-m.Unregister:
				m.mutex.Lock()
				delete(m.clients, client.ID)
				m.mutex.Unlock()
				client.release()
				logger.Debug("WebSocket: client %s unregistered", client.ID)

			case <-ctx.Done():
				close(m.done)
				m.mutex.Lock()
				clients := m.clients
				m.clients = make(map[string]*Client)
				m.mutex.Unlock()
				for _, client := range clients {
					client.release()
				}
				return
			}
		}
	}()
}

func (m *Manager) ClientCount() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.clients)
}

// Serve registers conn and blocks until the connection ends. Connections
// arriving after the manager stopped are closed at once.
func (m *Manager) Serve(ctx context.Context, conn *websocket.Conn, principal entity.Principal) {
	client := NewClient(conn, principal)
	select {
	case m.Register <- client:
	case <-m.done:
		client.release()
		conn.Close()
		return
	}

	go client.WritePump()
	client.ReadPump(ctx, m)
}

// ReadPump reads client frames until the connection fails.
func (c *Client) ReadPump(ctx context.Context, m *Manager) {
	ctx, cancel := context.WithCancel(ctx)
	defer func() {
		cancel()
		select {
		case m.Unregister <- c:
		case <-m.done:
			c.release()
		}
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	_ = c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
				logger.Warn("WebSocket: read error for client %s: %v", c.ID, err)
			}
			return
		}

		m.HandleClientMessage(ctx, c, message)
	}
}

// WritePump drains Send and keeps the connection alive with pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				logger.Warn("WebSocket: write error for client %s: %v", c.ID, err)
				return
			}

		case <-ticker.C:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
