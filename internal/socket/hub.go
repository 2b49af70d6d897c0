package socket

import (
	"encoding/json"
	"log"
	"sync"

	"bajaj-rental-api-server/internal/booking"

	"github.com/gorilla/websocket"
)

// Hub tracks connected WebSocket clients, keyed by user ID. It implements
// booking.EventSink by broadcasting every booking event to all clients;
// only admins are allowed to connect, so no per-client filtering is needed.
type Hub struct {
	clients map[string]*websocket.Conn
	mu      sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*websocket.Conn),
	}
}

// Register adds a client connection to the hub.
func (h *Hub) Register(userID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[userID] = conn
	log.Printf("WebSocket client registered: %s", userID)
}

// Unregister removes a client connection from the hub.
func (h *Hub) Unregister(userID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[userID]; ok {
		delete(h.clients, userID)
		log.Printf("WebSocket client unregistered: %s", userID)
	}
}

// Publish sends a booking event to every connected client. Delivery is
// best-effort: a client that cannot be written to is just logged.
func (h *Hub) Publish(event booking.Event) {
	message, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal booking event: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for userID, conn := range h.clients {
		if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
			log.Printf("Failed to push event to client %s: %v", userID, err)
		}
	}
}
