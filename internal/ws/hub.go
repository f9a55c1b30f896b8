package ws

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/driftchat/backend/internal/matchmaking"
)

// Event is the outbound wire envelope.
type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

// WSMessage is the inbound wire envelope.
type WSMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// Hub maintains the set of active connections and their channel
// memberships. It implements the matchmaking engine's Transport.
type Hub struct {
	clients    map[string]*Client            // connID -> Client
	channels   map[string]map[string]*Client // channel -> connID -> Client
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex

	engine *matchmaking.Engine
}

// NewHub creates a new Hub. SetEngine must be called before Run.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		channels:   make(map[string]map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// SetEngine wires the matchmaking engine. Separate from NewHub because
// the engine needs the hub as its transport.
func (h *Hub) SetEngine(engine *matchmaking.Engine) {
	h.engine = engine
}

// Run processes connect and disconnect events. Call in its own
// goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.connID] = client
			h.mu.Unlock()
			log.Printf("[WS] User %d connected (conn %s)", client.userID, client.connID)

		case client := <-h.unregister:
			h.mu.Lock()
			cur, ok := h.clients[client.connID]
			if ok && cur == client {
				delete(h.clients, client.connID)
				for name, members := range h.channels {
					delete(members, client.connID)
					if len(members) == 0 {
						delete(h.channels, name)
					}
				}
				// Emit and Broadcast send under the read lock, so
				// closing here under the write lock cannot race them.
				close(client.send)
			}
			h.mu.Unlock()

			if ok && cur == client {
				log.Printf("[WS] User %d disconnected (conn %s)", client.userID, client.connID)
				// Engine cleanup runs after the connection is gone so
				// IsConnected already reports false for it.
				h.engine.OnDisconnect(context.Background(), client.connID)
			}
		}
	}
}

// Join adds the connection to a broadcast channel.
func (h *Hub) Join(channel, connID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	client, exists := h.clients[connID]
	if !exists {
		return
	}
	if _, ok := h.channels[channel]; !ok {
		h.channels[channel] = make(map[string]*Client)
	}
	h.channels[channel][connID] = client
}

// Leave removes the connection from a broadcast channel.
func (h *Hub) Leave(channel, connID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	members, ok := h.channels[channel]
	if !ok {
		return
	}
	delete(members, connID)
	if len(members) == 0 {
		delete(h.channels, channel)
	}
}

// Emit sends an event to one connection.
func (h *Hub) Emit(connID, event string, payload interface{}) {
	data, err := json.Marshal(Event{Type: event, Data: payload})
	if err != nil {
		log.Printf("Error marshaling message: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	if client, exists := h.clients[connID]; exists {
		select {
		case client.send <- data:
		default:
			log.Printf("[WS] Emit dropped %s for conn %s (buffer full)", event, connID)
		}
	}
}

// Broadcast sends an event to every member of a channel.
func (h *Hub) Broadcast(channel, event string, payload interface{}) {
	data, err := json.Marshal(Event{Type: event, Data: payload})
	if err != nil {
		log.Printf("Error marshaling message: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.channels[channel] {
		select {
		case client.send <- data:
		default:
			log.Printf("[WS] Broadcast dropped %s for conn %s in %s (buffer full)", event, client.connID, channel)
		}
	}
}

// IsConnected reports whether the connection is still registered.
func (h *Hub) IsConnected(connID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.clients[connID]
	return ok
}
