package server

import (
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/worklinehq/workline/models"
)

const sendBufferSize = 256

// Client is one live websocket connection belonging to one user. A user with
// several tabs open has several clients.
type Client struct {
	ID     uuid.UUID
	UserID uint
	conn   *websocket.Conn
	send   chan *models.Message
}

func NewClient(userID uint, conn *websocket.Conn) *Client {
	return &Client{
		ID:     uuid.New(),
		UserID: userID,
		conn:   conn,
		send:   make(chan *models.Message, sendBufferSize),
	}
}

// Hub is the process-local registry of live connections keyed by user id.
// It is rebuilt from scratch on restart and never persisted. All access goes
// through the mutex since registrations and fan-outs race freely.
type Hub struct {
	mu      sync.RWMutex
	clients map[uint]map[*Client]bool
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[uint]map[*Client]bool),
	}
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.clients[c.UserID] == nil {
		h.clients[c.UserID] = make(map[*Client]bool)
	}
	h.clients[c.UserID][c] = true
}

// Unregister removes one client only; other connections of the same user
// stay registered. Safe to call more than once for the same client.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.clients[c.UserID]
	if !ok {
		return
	}
	if _, ok := clients[c]; !ok {
		return
	}
	delete(clients, c)
	close(c.send)
	if len(clients) == 0 {
		delete(h.clients, c.UserID)
	}
}

func (h *Hub) IsOnline(userID uint) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID]) > 0
}

// SendToUsers fans the message out to every live connection of the given
// users. Delivery is best effort at the moment of the call: a client whose
// buffer is full is dropped from the registry, and users with no connection
// are skipped without queuing. Pushes happen in store-commit order; nothing
// here reorders messages.
func (h *Hub) SendToUsers(msg *models.Message, userIDs ...uint) {
	h.mu.Lock()
	defer h.mu.Unlock()

	seen := make(map[uint]bool, len(userIDs))
	for _, userID := range userIDs {
		if seen[userID] {
			continue
		}
		seen[userID] = true

		for client := range h.clients[userID] {
			select {
			case client.send <- msg:
			default:
				log.Printf("client %s of user %d too slow, dropping connection", client.ID, userID)
				delete(h.clients[userID], client)
				close(client.send)
			}
		}
		if len(h.clients[userID]) == 0 {
			delete(h.clients, userID)
		}
	}
}
