package websocket

import (
	"context"
	"sync"
	"time"

	"github.com/cristianortiz/escrowAuction/internal/shared/logger"
	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"
)

var log = logger.GetLogger()

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512

	// SendBufferSize is the outbound queue length of a single client
	SendBufferSize = 256

	hubQueueSize = 64
)

// Hub keeps client's registry and handle messages broadcasting
type Hub struct {
	// Registered clients, grouped by room (the auction ID).
	// The inner map keys are clients, and the boolean value is ignored.
	clients map[string]map[*Client]bool
	// Outbound messages for a whole room
	broadcast chan *Message
	// Register requests from the clients.
	register chan *Client
	// Unregister requests from clients.
	unregister      chan *Client
	InboundMessages chan *ClientMessage // listened to by module-specific handlers (e.g, auction handler)
	// closed when Run returns
	done chan struct{}
}

// Client represents a ws individual connection
type Client struct {
	Hub *Hub
	// The websocket connection.
	Conn *websocket.Conn
	// Buffered channel of outbound messages.
	Send chan []byte
	// The room this client is subscribed to.
	Room string
	// Account the client acts as when it sends commands
	AccountID string
	// Unique identifier for the client
	ID string

	// mu guards closed, Send is only written or closed while holding it
	mu     sync.Mutex
	closed bool
}

func NewClient(hub *Hub, conn *websocket.Conn, id, room, accountID string) *Client {
	return &Client{
		Hub:       hub,
		Conn:      conn,
		Send:      make(chan []byte, SendBufferSize),
		Room:      room,
		AccountID: accountID,
		ID:        id,
	}
}

func (c *Client) remoteAddr() string {
	if c.Conn == nil || c.Conn.Conn == nil {
		return ""
	}
	return c.Conn.RemoteAddr().String()
}

type Message struct {
	Room string
	Data []byte
}

// ClientMessage is used for wraping the client and data message received.
// is used to send inbound messages from the client to the hub handlers
type ClientMessage struct {
	Client *Client
	Data   []byte
}

func NewHub() *Hub {
	return &Hub{
		broadcast:       make(chan *Message, hubQueueSize),
		register:        make(chan *Client),
		unregister:      make(chan *Client),
		clients:         make(map[string]map[*Client]bool),
		InboundMessages: make(chan *ClientMessage, hubQueueSize),
		done:            make(chan struct{}),
	}
}

func (h *Hub) clientCount() int {
	count := 0
	for _, room := range h.clients {
		count += len(room)
	}
	return count
}

// Run starts the hub listening in their channels, it owns the client registry until ctx is cancelled
func (h *Hub) Run(ctx context.Context) {
	log.Info("Websocket Hub started")
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for _, room := range h.clients {
				for client := range room {
					client.closeSend()
				}
			}
			h.clients = make(map[string]map[*Client]bool)
			log.Info("WebSocket Hub shutting down due to context cancellation")
			return

		case client := <-h.register:
			if _, ok := h.clients[client.Room]; !ok {
				h.clients[client.Room] = make(map[*Client]bool)
			}
			h.clients[client.Room][client] = true
			log.Info("Client registered",
				zap.String("clientID", client.ID),
				zap.String("room", client.Room),
				zap.String("remote_addr", client.remoteAddr()),
				zap.Int("total_clients", h.clientCount()),
			)

		case client := <-h.unregister:
			h.remove(client)

		case message := <-h.broadcast:
			clients, ok := h.clients[message.Room]
			if !ok {
				continue
			}
			log.Debug("Broadcasting message to room", zap.String("room", message.Room), zap.Int("clients", len(clients)))
			for client := range clients {
				if !client.SendTo(message.Data) {
					// slow consumer, drop it
					log.Warn("Failed to Send message to client, unregistering",
						zap.String("clientID", client.ID),
						zap.String("room", client.Room),
						zap.String("remote_addr", client.remoteAddr()),
					)
					h.remove(client)
				}
			}
		}
	}
}

func (h *Hub) remove(client *Client) {
	clients, ok := h.clients[client.Room]
	if !ok {
		return
	}
	if _, ok := clients[client]; !ok {
		return
	}
	delete(clients, client)
	client.closeSend()
	log.Info("Client unregistered",
		zap.String("clientID", client.ID),
		zap.String("room", client.Room),
		zap.String("remote_addr", client.remoteAddr()),
		zap.Int("total_clients", h.clientCount()),
	)
	if len(clients) == 0 {
		delete(h.clients, client.Room)
		log.Info("Room removed as empty", zap.String("room", client.Room))
	}
}

// RegisterClient hands the client to the hub, broadcasts queued afterwards reach it.
// It returns false once the hub has stopped.
func (h *Hub) RegisterClient(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		log.Warn("Hub stopped, client registration failed",
			zap.String("clientID", client.ID),
			zap.String("room", client.Room),
		)
		return false
	}
}

// UnregisterClient delete a client from the hub
func (h *Hub) UnregisterClient(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Broadcast queues data for every client subscribed to room
func (h *Hub) Broadcast(room string, data []byte) {
	select {
	case h.broadcast <- &Message{Room: room, Data: data}:
		log.Debug("Message queued for broadcast", zap.String("room", room))
	default:
		log.Error("Broadcast channel is full, message dropped", zap.String("room", room))
	}
}

// SendTo queues data for a single client without blocking, it reports false when the client queue
// is full or the hub has already dropped the client
func (c *Client) SendTo(data []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.Send <- data:
		return true
	default:
		return false
	}
}

// closeSend closes the outbound queue once, the write pump then sends a close frame
func (c *Client) closeSend() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.Send)
}
